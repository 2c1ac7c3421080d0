// Command sender encrypts a message, frames it, modulates it as a
// BFSK waveform (optionally mixed under a cover WAV) and writes the
// result to a WAV file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"aethersteg/internal/config"
	"aethersteg/internal/link"
	"aethersteg/internal/modem"
	"aethersteg/internal/wav"
)

func main() {
	out := flag.String("o", "encoded_signal.wav", "output WAV path")
	rate := flag.Float64("rate", 44100, "output sample rate")
	configPath := flag.String("config", "", "optional YAML config overriding wire defaults")
	verbose := flag.Bool("v", false, "verbose acquisition/encoding diagnostics")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-o out.wav] [-config file.yml] \"message\" [cover.wav]\n", os.Args[0])
		os.Exit(2)
	}
	message := args[0]
	var coverPath string
	if len(args) >= 2 {
		coverPath = args[1]
	}

	var cfg *config.Config
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			logrus.WithError(err).Fatal("loading config")
		}
		cfg = loaded
	}

	params := cfg.ApplyParams(modem.DefaultParams(*rate))

	key, iv, err := cfg.KeyIV()
	if err != nil {
		logrus.WithError(err).Fatal("resolving key/IV")
	}

	var cover []float64
	if coverPath != "" {
		f, err := os.Open(coverPath)
		if err != nil {
			logrus.WithError(err).Fatal("opening cover WAV")
		}
		coverSamples, coverRate, err := wav.Read(f)
		f.Close()
		if err != nil {
			logrus.WithError(err).Fatal("reading cover WAV")
		}
		if float64(coverRate) != params.SampleRate {
			logrus.WithFields(logrus.Fields{"cover_rate": coverRate, "tx_rate": params.SampleRate}).
				Warn("cover WAV sample rate differs from TX rate; mixing as-is")
		}
		cover = coverSamples
	}

	samples, err := link.Encode([]byte(message), params, cover, key, iv)
	if err != nil {
		logrus.WithError(err).Fatal("encoding message")
	}

	f, err := os.Create(*out)
	if err != nil {
		logrus.WithError(err).Fatal("creating output WAV")
	}
	defer f.Close()

	if err := wav.Write(f, samples, int(params.SampleRate)); err != nil {
		logrus.WithError(err).Fatal("writing output WAV")
	}

	logrus.WithFields(logrus.Fields{
		"out":     *out,
		"samples": len(samples),
		"seconds": float64(len(samples)) / params.SampleRate,
	}).Info("wrote encoded signal")
}
