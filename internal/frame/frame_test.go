package frame

import (
	"bytes"
	"testing"

	"aethersteg/internal/linkerr"
)

func TestBuildParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ct   []byte
	}{
		{"single byte", []byte{0x42}},
		{"short", []byte("hello")},
		{"exact 2000000", bytes.Repeat([]byte{0xAB}, MaxCiphertextLen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Build(tt.ct)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			parsed, err := Parse(buf)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !bytes.Equal(parsed.Ciphertext, tt.ct) {
				t.Errorf("round trip mismatch: got %v want %v", parsed.Ciphertext, tt.ct)
			}
		})
	}
}

func TestBuildRejectsOutOfRangeLength(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Error("expected error for empty ciphertext")
	}
	if _, err := Build(bytes.Repeat([]byte{1}, MaxCiphertextLen+1)); err == nil {
		t.Error("expected error for over-max ciphertext")
	}
}

func TestParseDetectsCorruption(t *testing.T) {
	buf, err := Build([]byte("hi"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	buf[HeaderSize] ^= 0xFF // flip first ciphertext byte

	_, err = Parse(buf)
	if err == nil {
		t.Fatal("expected CRC mismatch error")
	}
	if le, ok := err.(*linkerr.Error); !ok || le.Kind != linkerr.CrcMismatch {
		t.Errorf("expected CrcMismatch, got %v", err)
	}
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	buf := []byte{'X', 'X', 'X', 'X', 0, 0, 0, 1}
	if _, err := ParseHeader(buf); err == nil {
		t.Error("expected magic mismatch error")
	}
}

func TestParseHeaderRejectsZeroLength(t *testing.T) {
	buf := []byte{'S', 'T', 'E', 'G', 0, 0, 0, 0}
	_, err := ParseHeader(buf)
	if err == nil {
		t.Fatal("expected InvalidLength error")
	}
	if le, ok := err.(*linkerr.Error); !ok || le.Kind != linkerr.InvalidLength {
		t.Errorf("expected InvalidLength, got %v", err)
	}
}
