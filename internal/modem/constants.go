// Package modem implements the BFSK link layer: tone generation with
// repetition coding (Modulator), coherent I/Q energy detection
// (Detector), majority-vote symbol decoding (Decoder), and the
// two-stage acquisition pipeline that locates a frame in an
// unsynchronised recording (Acquire). Carrier and preamble parameters
// are collected into plain structs with a correlation core built on
// dot products against reference tones, operating on float64 PCM and
// an alternating-bit preamble.
package modem

// Params collects every wire-visible constant needed to modulate or
// demodulate a frame at a given sample rate. Implementers MUST match
// F0, F1, BitDuration, PreambleSeconds and Rep bit-for-bit for
// interop; SampleRate varies receiver-side with the file's native
// rate.
type Params struct {
	F0              float64 // Hz, bit 0 tone
	F1              float64 // Hz, bit 1 tone
	BitDuration     float64 // seconds per symbol
	PreambleSeconds float64
	Rep             int // repetition count per data bit
	Amplitude       float64
	StegoStrength   float64
	CoverGain       float64
	SampleRate      float64

	// SearchSeconds and EarlyExitFraction tune CoarseSearch; they are
	// not wire-visible (TX/RX need not agree on them) but live here so
	// internal/config can override them without threading extra
	// arguments through the acquisition call chain.
	SearchSeconds     float64
	EarlyExitFraction float64
}

// DefaultParams returns the wire-mandated constants, parameterised
// only by the sample rate (TX uses 44100; RX uses whatever rate the
// file was recorded at).
func DefaultParams(sampleRate float64) Params {
	return Params{
		F0:              1200.0,
		F1:              2200.0,
		BitDuration:     0.015,
		PreambleSeconds: 1.5,
		Rep:             3,
		Amplitude:       0.87,
		StegoStrength:   0.2,
		CoverGain:       0.3,
		SampleRate:      sampleRate,

		SearchSeconds:     SearchSeconds,
		EarlyExitFraction: EarlyExitFraction,
	}
}

// MinSamplesPerBit is the smallest spb the protocol tolerates; below
// this the receiver's I/Q windows carry too few cycles to
// discriminate F0 from F1 reliably.
const MinSamplesPerBit = 40

// MinPreambleBits is the floor pre_bits is clamped to, independent of
// sample rate, so very short PreambleSeconds still gives acquisition
// enough alternating symbols to correlate against.
const MinPreambleBits = 32

// SamplesPerBit returns spb = round(sample_rate * BitDuration).
func (p Params) SamplesPerBit() int {
	return intRound(p.SampleRate * p.BitDuration)
}

// PreambleBits returns pre_bits = max(32, round(PreambleSeconds / BitDuration)).
func (p Params) PreambleBits() int {
	bits := intRound(p.PreambleSeconds / p.BitDuration)
	if bits < MinPreambleBits {
		return MinPreambleBits
	}
	return bits
}

func intRound(x float64) int {
	if x < 0 {
		return -intRound(-x)
	}
	return int(x + 0.5)
}
