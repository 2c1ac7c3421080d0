// Package frame builds and parses the self-delimiting wire frame:
//
//	offset 0..3        'S','T','E','G'       (magic)
//	offset 4..7        LEN                   (ciphertext length, BE uint32)
//	offset 8..8+LEN-1   CIPHERTEXT
//	offset 8+LEN..+3    CRC32                 (BE, over bytes [0, 8+LEN))
//
// All multi-byte fields are big-endian. Frame buffers are owned by the
// caller; this package never retains a reference to one it is handed.
package frame

import (
	"encoding/binary"

	"aethersteg/internal/crc32"
	"aethersteg/internal/linkerr"
)

// Magic is the fixed 4-byte frame marker.
var Magic = [4]byte{'S', 'T', 'E', 'G'}

const (
	// HeaderSize is the magic + LEN prefix, before the ciphertext.
	HeaderSize = 8
	// TrailerSize is the trailing CRC32 field.
	TrailerSize = 4
	// MaxCiphertextLen is the largest LEN the wire format permits.
	MaxCiphertextLen = 2_000_000
)

// Build assembles a complete frame around ciphertext: magic, big-endian
// length, the ciphertext itself, and a trailing big-endian CRC32 over
// everything that precedes it.
func Build(ciphertext []byte) ([]byte, error) {
	n := len(ciphertext)
	if n == 0 || n > MaxCiphertextLen {
		return nil, linkerr.New(linkerr.InvalidLength, "ciphertext length %d out of range (0, %d]", n, MaxCiphertextLen)
	}

	out := make([]byte, HeaderSize+n+TrailerSize)
	copy(out[0:4], Magic[:])
	binary.BigEndian.PutUint32(out[4:8], uint32(n))
	copy(out[8:8+n], ciphertext)

	crc := crc32.Checksum(out[:HeaderSize+n])
	binary.BigEndian.PutUint32(out[HeaderSize+n:], crc)

	return out, nil
}

// Parsed holds the result of a successful Parse.
type Parsed struct {
	Ciphertext []byte
	CRCStored  uint32
	CRCCalc    uint32
}

// Parse validates and decomposes a complete frame buffer: magic must
// match, LEN must be in range, and the trailing CRC32 must match the
// bytes that precede it. buf must contain exactly one frame (no
// trailing garbage) — callers that only have a prefix should use
// ParseHeader first to learn LEN.
func Parse(buf []byte) (*Parsed, error) {
	if len(buf) < HeaderSize+TrailerSize {
		return nil, linkerr.New(linkerr.InputError, "frame buffer too short: %d bytes", len(buf))
	}

	length, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}

	want := HeaderSize + int(length) + TrailerSize
	if len(buf) != want {
		return nil, linkerr.New(linkerr.InputError, "frame buffer length %d does not match header-declared %d", len(buf), want)
	}

	frameNoCRC := buf[:HeaderSize+int(length)]
	stored := binary.BigEndian.Uint32(buf[HeaderSize+int(length):])
	calc := crc32.Checksum(frameNoCRC)

	if stored != calc {
		return nil, linkerr.New(linkerr.CrcMismatch, "computed %#08X, stored %#08X", calc, stored)
	}

	ciphertext := make([]byte, length)
	copy(ciphertext, buf[HeaderSize:HeaderSize+int(length)])

	return &Parsed{Ciphertext: ciphertext, CRCStored: stored, CRCCalc: calc}, nil
}

// ParseHeader reads and validates the 8-byte magic+LEN prefix, without
// requiring the rest of the frame to be present yet. It is what the
// receiver's header-decoding state uses before it knows how many
// ciphertext bytes to pull off the bit cursor.
func ParseHeader(buf []byte) (uint32, error) {
	if len(buf) < HeaderSize {
		return 0, linkerr.New(linkerr.InputError, "header buffer too short: %d bytes", len(buf))
	}
	if !MagicMatches(buf[:4]) {
		return 0, linkerr.New(linkerr.InternalInconsistency, "magic mismatch in header: %q", buf[:4])
	}

	length := binary.BigEndian.Uint32(buf[4:8])
	if length == 0 || length > MaxCiphertextLen {
		return 0, linkerr.New(linkerr.InvalidLength, "LEN=%d out of range (0, %d]", length, MaxCiphertextLen)
	}
	return length, nil
}

// MagicMatches reports whether the first 4 bytes equal the STEG magic.
func MagicMatches(b []byte) bool {
	return len(b) >= 4 && b[0] == Magic[0] && b[1] == Magic[1] && b[2] == Magic[2] && b[3] == Magic[3]
}
