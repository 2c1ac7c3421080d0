package modem

// Decoder reassembles coded bits and bytes from a detector's
// per-symbol decisions: bits are built up symbol by symbol, then
// packed MSB-first, with each wire bit recovered by a majority vote
// over its triple repetition.
type Decoder struct {
	Detector Detector
}

// DecodeCodedBit calls the detector Rep times at p, p+spb, p+2*spb,
// ... and returns the majority bit. Rep is odd (3) so a tie cannot
// occur.
func (d Decoder) DecodeCodedBit(x []float64, p int64, invert bool) bool {
	params := d.Detector.Params
	spb := int64(params.SamplesPerBit())

	ones := 0
	for r := 0; r < params.Rep; r++ {
		if d.Detector.DetectBit(x, p+int64(r)*spb, invert) {
			ones++
		}
	}
	return ones > params.Rep/2
}

// DecodeByte decodes one byte (8 coded bits, MSB first) starting at
// *cursor, advancing *cursor by Rep*spb per bit (so by 8*Rep*spb in
// total).
func (d Decoder) DecodeByte(x []float64, cursor *int64, invert bool) byte {
	params := d.Detector.Params
	spb := int64(params.SamplesPerBit())

	var v byte
	for k := 0; k < 8; k++ {
		bit := d.DecodeCodedBit(x, *cursor, invert)
		v <<= 1
		if bit {
			v |= 1
		}
		*cursor += int64(params.Rep) * spb
	}
	return v
}

// CodedBitSpan returns the number of samples one coded (repeated) bit
// occupies: Rep*spb.
func (p Params) CodedBitSpan() int64 {
	return int64(p.Rep) * int64(p.SamplesPerBit())
}

// CodedByteSpan returns the number of samples one coded byte (8 coded
// bits) occupies.
func (p Params) CodedByteSpan() int64 {
	return 8 * p.CodedBitSpan()
}
