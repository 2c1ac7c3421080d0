package modem

import (
	"aethersteg/internal/frame"
	"aethersteg/internal/linkerr"
)

// ExtractFrame decodes the complete frame (header, ciphertext, CRC
// trailer) starting at pos with the given polarity, using the
// repetition+I/Q decode path throughout. It does not itself validate
// the CRC or decrypt (that is frame.Parse's and the caller's job); it
// only turns samples into frame bytes, walking the fixed
// STEG+LEN+cipher+CRC layout one byte at a time.
func ExtractFrame(x []float64, params Params, pos int64, invert bool) ([]byte, error) {
	dec := Decoder{Detector: Detector{Params: params}}
	cursor := pos

	header := make([]byte, frame.HeaderSize)
	for i := range header {
		if cursor+params.CodedByteSpan() > int64(len(x)) {
			return nil, linkerr.New(linkerr.InputError, "recording ends before header byte %d could be decoded", i)
		}
		header[i] = dec.DecodeByte(x, &cursor, invert)
	}

	if !frame.MagicMatches(header[:4]) {
		return nil, linkerr.New(linkerr.InternalInconsistency, "magic mismatch re-reading header at pos=%d after successful refinement: %q", pos, header[:4])
	}

	length, err := frame.ParseHeader(header)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, frame.HeaderSize+int(length)+frame.TrailerSize)
	copy(buf, header)

	for i := 0; i < int(length); i++ {
		if cursor+params.CodedByteSpan() > int64(len(x)) {
			return nil, linkerr.New(linkerr.InputError, "recording ends before ciphertext byte %d of %d could be decoded", i, length)
		}
		buf[frame.HeaderSize+i] = dec.DecodeByte(x, &cursor, invert)
	}

	for i := 0; i < frame.TrailerSize; i++ {
		if cursor+params.CodedByteSpan() > int64(len(x)) {
			return nil, linkerr.New(linkerr.InputError, "recording ends before CRC byte %d could be decoded", i)
		}
		buf[frame.HeaderSize+int(length)+i] = dec.DecodeByte(x, &cursor, invert)
	}

	return buf, nil
}
