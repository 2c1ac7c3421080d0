// Package frontend conditions a receiver's raw PCM buffer before
// acquisition: DC removal, RMS normalisation, and a high-pass/low-pass
// band-pass chain.
package frontend

import (
	"math"

	"aethersteg/internal/biquad"
)

const (
	// HighpassHz is the band-pass chain's high-pass cutoff.
	HighpassHz = 700.0
	// LowpassHz is the band-pass chain's low-pass cutoff.
	LowpassHz = 2600.0
	// FilterQ is the Butterworth Q used for both filter stages.
	FilterQ = 0.707

	// targetRMS is the level RMS normalisation aims for.
	targetRMS = 0.25
	// rmsFloor below this, scaling is skipped to avoid amplifying
	// near-silence into noise.
	rmsFloor = 1e-6
)

// RemoveDC subtracts the arithmetic mean from x in place.
func RemoveDC(x []float64) {
	if len(x) == 0 {
		return
	}
	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	for i := range x {
		x[i] -= mean
	}
}

// NormalizeRMS scales x in place so its RMS is targetRMS, unless the
// input RMS is below rmsFloor, in which case scaling is skipped.
func NormalizeRMS(x []float64) {
	if len(x) == 0 {
		return
	}
	var sumSq float64
	for _, v := range x {
		sumSq += v * v
	}
	r := math.Sqrt(sumSq / float64(len(x)))
	if r < rmsFloor {
		return
	}
	gain := targetRMS / r
	for i := range x {
		x[i] *= gain
	}
}

// Bandpass applies a high-pass at HighpassHz followed by a low-pass at
// LowpassHz, both Butterworth (Q=0.707), sequentially over the whole
// buffer in place.
func Bandpass(x []float64, fs float64) {
	hp := biquad.Highpass(fs, HighpassHz, FilterQ)
	lp := biquad.Lowpass(fs, LowpassHz, FilterQ)
	hp.Process(x)
	lp.Process(x)
}

// Condition runs the full receiver front-end: DC removal, RMS
// normalisation, then band-pass. Applying it twice is harmless but
// not idempotent: the second pass rescales the band-passed signal
// back to the target RMS and filters it once more.
func Condition(x []float64, fs float64) {
	RemoveDC(x)
	NormalizeRMS(x)
	Bandpass(x, fs)
}
