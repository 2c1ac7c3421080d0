// Package link ties the acoustic stack together into the two
// operations the wire format exists for: Encode (plaintext ->
// waveform) and Decode (waveform -> plaintext). It is a thin layer
// above the modem that owns the encrypt/frame/modulate and
// demodulate/parse/decrypt sequencing for a single one-shot
// file-to-file pass.
package link

import (
	"github.com/sirupsen/logrus"

	"aethersteg/internal/aesctr"
	"aethersteg/internal/frame"
	"aethersteg/internal/frontend"
	"aethersteg/internal/linkerr"
	"aethersteg/internal/modem"
)

// Encode encrypts plaintext, wraps it in a wire frame, and modulates
// the frame (optionally mixed under cover) into a BFSK waveform at
// params.SampleRate.
func Encode(plaintext []byte, params modem.Params, cover []float64, key, iv []byte) ([]float64, error) {
	ciphertext, err := aesctr.Encrypt(key, iv, plaintext)
	if err != nil {
		return nil, err
	}

	frameBytes, err := frame.Build(ciphertext)
	if err != nil {
		return nil, err
	}

	mod := modem.Modulator{Params: params, Cover: cover}
	samples := mod.Modulate(frameBytes)

	logrus.WithFields(logrus.Fields{
		"plaintext_bytes":  len(plaintext),
		"ciphertext_bytes": len(ciphertext),
		"frame_bytes":      len(frameBytes),
		"samples":          len(samples),
	}).Debug("encoded frame")

	return samples, nil
}

// Result carries a successful Decode's acquisition diagnostics
// alongside the recovered plaintext, so a caller that wants verbose
// reporting (the receiver CLI's -v flag) doesn't need to re-run
// acquisition itself.
type Result struct {
	Plaintext []byte
	Coarse    modem.CoarseResult
	Refined   modem.RefineResult
	CRC       uint32
}

// Decode conditions a raw recording, acquires frame sync, extracts
// and verifies the frame, and decrypts the recovered ciphertext.
func Decode(samples []float64, params modem.Params, key, iv []byte) (*Result, error) {
	x := make([]float64, len(samples))
	copy(x, samples)
	frontend.Condition(x, params.SampleRate)

	refined, coarse, err := modem.Acquire(x, params)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"coarse_offset": coarse.Offset,
		"coarse_score":  coarse.Score,
		"coarse_invert": coarse.Invert,
		"refined_pos":   refined.Pos,
		"refined_invert": refined.Invert,
	}).Debug("acquisition locked")

	rawFrame, err := modem.ExtractFrame(x, params, refined.Pos, refined.Invert)
	if err != nil {
		return nil, err
	}

	parsed, err := frame.Parse(rawFrame)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesctr.Decrypt(key, iv, parsed.Ciphertext)
	if err != nil {
		return nil, linkerr.Wrap(linkerr.DecryptFailed, err, "decrypting %d-byte ciphertext", len(parsed.Ciphertext))
	}

	return &Result{
		Plaintext: plaintext,
		Coarse:    *coarse,
		Refined:   *refined,
		CRC:       parsed.CRCCalc,
	}, nil
}
