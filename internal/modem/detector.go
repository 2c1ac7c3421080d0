package modem

import "math"

// Detector performs coherent I/Q energy detection at F0 and F1 over a
// single symbol window, computing two complex (in-phase/quadrature)
// correlations on the fly rather than a single real correlation
// against a stored carrier table. The basis restarts at each symbol's
// local n=0, so only energy, not absolute phase, is compared. This
// keeps detection robust to an unknown phase offset or a polarity
// inversion of the recording.
type Detector struct {
	Params Params
}

// DetectBit returns the demodulated bit at sample offset p over one
// symbol window (length spb), XORed with invert. p+spb must not
// exceed len(x); callers are responsible for bounds-checking before
// calling (acquisition and decoding both do this explicitly so they
// can fail with a specific diagnostic rather than a panic).
func (d Detector) DetectBit(x []float64, p int64, invert bool) bool {
	p0, p1 := d.Energies(x, p)
	bit := p1 > p0
	if invert {
		bit = !bit
	}
	return bit
}

// Energies returns the I/Q energies P0, P1 at F0 and F1 over the
// symbol window starting at sample p.
func (d Detector) Energies(x []float64, p int64) (p0, p1 float64) {
	params := d.Params
	spb := params.SamplesPerBit()
	fs := params.SampleRate

	var i0, q0, i1, q1 float64
	w0 := 2 * math.Pi * params.F0 / fs
	w1 := 2 * math.Pi * params.F1 / fs

	for n := 0; n < spb; n++ {
		s := x[int(p)+n]
		i0 += s * math.Cos(w0*float64(n))
		q0 += s * math.Sin(w0*float64(n))
		i1 += s * math.Cos(w1*float64(n))
		q1 += s * math.Sin(w1*float64(n))
	}

	p0 = i0*i0 + q0*q0
	p1 = i1*i1 + q1*q1
	return
}
