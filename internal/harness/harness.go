// Package harness drives encode -> channel degradation -> decode
// across a matrix of channel conditions and scores the result. Sender,
// channel simulation and receiver all live in this module, so there
// is nothing to subprocess: it calls internal/link and
// internal/channel directly.
package harness

import (
	"regexp"
	"strings"

	"golang.org/x/exp/rand"

	"aethersteg/internal/channel"
	"aethersteg/internal/link"
	"aethersteg/internal/modem"
)

// Case is one row of the test matrix: a compression preset, a noise
// model, a target SNR in dB, and a PRNG seed.
type Case struct {
	Name   string
	Preset channel.Preset
	Noise  channel.NoiseType
	SNRdB  float64
	Seed   uint64
}

// DefaultCases is a fixed spread of presets, noise types and SNRs
// meant to exercise the acquisition pipeline's claimed tolerances
// without being so harsh every case is expected to fail.
var DefaultCases = []Case{
	{"none_awgn_40db", channel.PresetNone, channel.NoiseAWGN, 40.0, 123},
	{"none_awgn_25db", channel.PresetNone, channel.NoiseAWGN, 25.0, 123},
	{"voip_mix_22db", channel.PresetVOIP, channel.NoiseMix, 22.0, 123},
	{"voip_mix_18db", channel.PresetVOIP, channel.NoiseMix, 18.0, 123},
	{"voip_pink_18db", channel.PresetVOIP, channel.NoisePink, 18.0, 123},
	{"pstn_mix_18db", channel.PresetPSTN, channel.NoiseMix, 18.0, 123},
	{"pstn_hum_20db", channel.PresetPSTN, channel.NoiseHum, 20.0, 123},
	{"lowbit_mix_22db", channel.PresetLowBit, channel.NoiseMix, 22.0, 123},
	{"lowbit_clicks_25db", channel.PresetLowBit, channel.NoiseClicks, 25.0, 123},
}

// Result is one case's outcome.
type Result struct {
	Case         Case
	ExactMatch   bool
	Similarity   float64
	DecryptedLen int
	Err          error
}

// Run encodes message once, then for every case degrades a fresh copy
// of the encoded waveform and attempts to decode it, scoring an exact
// match plus a character-similarity ratio.
func Run(cases []Case, message string, params modem.Params, cover []float64, key, iv []byte) []Result {
	base, err := link.Encode([]byte(message), params, cover, key, iv)
	if err != nil {
		results := make([]Result, len(cases))
		for i, c := range cases {
			results[i] = Result{Case: c, Err: err}
		}
		return results
	}

	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		results = append(results, runCase(c, base, message, params, key, iv))
	}
	return results
}

func runCase(c Case, base []float64, message string, params modem.Params, key, iv []byte) Result {
	rng := rand.New(rand.NewSource(c.Seed))

	stressed := channel.ApplyCompressionPreset(base, params.SampleRate, c.Preset)
	stressed = channel.ApplyNoise(stressed, params.SampleRate, c.Noise, c.SNRdB, rng)

	result, err := link.Decode(stressed, params, key, iv)
	if err != nil {
		return Result{Case: c, Err: err}
	}

	decrypted := string(result.Plaintext)
	return Result{
		Case:         c,
		ExactMatch:   normalizeText(decrypted) == normalizeText(message),
		Similarity:   similarityQuick(message, decrypted),
		DecryptedLen: len(decrypted),
	}
}

var whitespaceRun = regexp.MustCompile(`[ \t]+`)
var newlineRun = regexp.MustCompile(`\n+`)

// normalizeText collapses Windows/old-Mac line endings, squeezes runs
// of horizontal whitespace and blank lines, and trims edges.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSpace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = newlineRun.ReplaceAllString(s, "\n")
	return s
}

// similarityQuick returns the fraction of character positions that
// agree, over the longer of the two strings.
func similarityQuick(a, b string) float64 {
	na, nb := normalizeText(a), normalizeText(b)
	if na == "" && nb == "" {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}
	ra, rb := []rune(na), []rune(nb)
	n := len(ra)
	if len(rb) < n {
		n = len(rb)
	}
	eq := 0
	for i := 0; i < n; i++ {
		if ra[i] == rb[i] {
			eq++
		}
	}
	max := len(ra)
	if len(rb) > max {
		max = len(rb)
	}
	return float64(eq) / float64(max)
}
