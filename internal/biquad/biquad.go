// Package biquad implements second-order IIR filter sections from the
// RBJ audio-EQ cookbook, direct-form-II transposed: a small struct
// carrying the two state variables (z1, z2) across samples within one
// filtering pass, with a Process method.
package biquad

import "math"

// Biquad holds normalized transfer-function coefficients and the two
// state variables carried across samples within one filtering pass.
// A filter instance must be zeroed (via Highpass or Lowpass) before first use and is
// not safe to share across concurrent passes.
type Biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	z1, z2     float64
}

// Process filters x in place, direct-form-II transposed:
//
//	out  = b0*in + z1
//	z1' = b1*in - a1*out + z2
//	z2' = b2*in - a2*out
func (f *Biquad) Process(x []float64) {
	z1, z2 := f.z1, f.z2
	for i, in := range x {
		out := f.b0*in + z1
		z1 = f.b1*in - f.a1*out + z2
		z2 = f.b2*in - f.a2*out
		x[i] = out
	}
	f.z1, f.z2 = z1, z2
}

// Reset zeroes the filter's internal state, leaving coefficients
// untouched.
func (f *Biquad) Reset() {
	f.z1, f.z2 = 0, 0
}

// Highpass builds an RBJ high-pass biquad at cutoff f0 (Hz), Q,
// sampled at fs (Hz).
func Highpass(fs, f0, q float64) Biquad {
	w0 := 2 * math.Pi * f0 / fs
	alpha := math.Sin(w0) / (2 * q)
	c := math.Cos(w0)

	b0, b1, b2 := (1+c)/2, -(1 + c), (1+c)/2
	a0, a1, a2 := 1+alpha, -2*c, 1-alpha

	return Biquad{b0: b0 / a0, b1: b1 / a0, b2: b2 / a0, a1: a1 / a0, a2: a2 / a0}
}

// Lowpass builds an RBJ low-pass biquad at cutoff f0 (Hz), Q, sampled
// at fs (Hz).
func Lowpass(fs, f0, q float64) Biquad {
	w0 := 2 * math.Pi * f0 / fs
	alpha := math.Sin(w0) / (2 * q)
	c := math.Cos(w0)

	b0, b1, b2 := (1-c)/2, 1-c, (1-c)/2
	a0, a1, a2 := 1+alpha, -2*c, 1-alpha

	return Biquad{b0: b0 / a0, b1: b1 / a0, b2: b2 / a0, a1: a1 / a0, a2: a2 / a0}
}
