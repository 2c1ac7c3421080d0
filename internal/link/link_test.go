package link

import (
	"bytes"
	"testing"

	"aethersteg/internal/linkerr"
	"aethersteg/internal/modem"
)

func testKeyIV() ([]byte, []byte) {
	key := make([]byte, 32)
	iv := make([]byte, 16)
	for i := range key {
		key[i] = byte(i * 3)
	}
	for i := range iv {
		iv[i] = byte(i * 5)
	}
	return key, iv
}

func TestEncodeDecodeRoundTripZeroNoise(t *testing.T) {
	key, iv := testKeyIV()
	params := modem.DefaultParams(44100)
	plaintext := []byte("the quick brown fox jumps over the lazy dog")

	samples, err := Encode(plaintext, params, nil, key, iv)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	result, err := Decode(samples, params, key, iv)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(result.Plaintext, plaintext) {
		t.Fatalf("got %q, want %q", result.Plaintext, plaintext)
	}
}

func TestEncodeDecodeRoundTripWithLeadingSilence(t *testing.T) {
	key, iv := testKeyIV()
	params := modem.DefaultParams(44100)
	plaintext := []byte("hello over the wire")

	samples, err := Encode(plaintext, params, nil, key, iv)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	silence := make([]float64, int(params.SampleRate*0.5))
	padded := append(silence, samples...)

	result, err := Decode(padded, params, key, iv)
	if err != nil {
		t.Fatalf("Decode with leading silence: %v", err)
	}
	if !bytes.Equal(result.Plaintext, plaintext) {
		t.Fatalf("got %q, want %q", result.Plaintext, plaintext)
	}
}

func TestEncodeDecodeRoundTripAcrossSampleRates(t *testing.T) {
	rates := []float64{8000, 16000, 22050, 44100, 48000}
	key, iv := testKeyIV()
	plaintext := []byte("sample rate independence check")

	for _, rate := range rates {
		params := modem.DefaultParams(rate)
		samples, err := Encode(plaintext, params, nil, key, iv)
		if err != nil {
			t.Fatalf("rate=%v Encode: %v", rate, err)
		}
		result, err := Decode(samples, params, key, iv)
		if err != nil {
			t.Fatalf("rate=%v Decode: %v", rate, err)
		}
		if !bytes.Equal(result.Plaintext, plaintext) {
			t.Fatalf("rate=%v got %q, want %q", rate, result.Plaintext, plaintext)
		}
	}
}

func TestDecodeTolerantToPolarityInversion(t *testing.T) {
	key, iv := testKeyIV()
	params := modem.DefaultParams(44100)
	plaintext := []byte("polarity should not matter")

	samples, err := Encode(plaintext, params, nil, key, iv)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for i := range samples {
		samples[i] = -samples[i]
	}

	result, err := Decode(samples, params, key, iv)
	if err != nil {
		t.Fatalf("Decode inverted signal: %v", err)
	}
	if !bytes.Equal(result.Plaintext, plaintext) {
		t.Fatalf("got %q, want %q", result.Plaintext, plaintext)
	}
}

func TestDecodeWrongKeyProducesGarbageNotError(t *testing.T) {
	key, iv := testKeyIV()
	params := modem.DefaultParams(44100)
	plaintext := []byte("secret message")

	samples, err := Encode(plaintext, params, nil, key, iv)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	wrongKey := make([]byte, 32)
	copy(wrongKey, key)
	wrongKey[0] ^= 0xFF

	result, err := Decode(samples, params, wrongKey, iv)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if bytes.Equal(result.Plaintext, plaintext) {
		t.Fatal("expected garbage plaintext with wrong key, got original")
	}
}

func TestDecodeEmptyRecordingFailsSyncNotFound(t *testing.T) {
	params := modem.DefaultParams(44100)
	key, iv := testKeyIV()

	_, err := Decode(make([]float64, 1000), params, key, iv)
	if err == nil {
		t.Fatal("expected error decoding silence")
	}
	lerr, ok := err.(*linkerr.Error)
	if !ok {
		t.Fatalf("expected *linkerr.Error, got %T", err)
	}
	if lerr.Kind != linkerr.SyncNotFound {
		t.Fatalf("got kind %v, want SyncNotFound", lerr.Kind)
	}
}

func TestDecodeCorruptedFrameFailsCrcMismatch(t *testing.T) {
	key, iv := testKeyIV()
	params := modem.DefaultParams(44100)
	plaintext := []byte("a message that will be corrupted in flight")

	samples, err := Encode(plaintext, params, nil, key, iv)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Silence one whole coded byte deep inside the ciphertext region
	// (frame byte 12, well after the preamble+header) so its decoded
	// value changes without destroying acquisition.
	spb := params.SamplesPerBit()
	start := (params.PreambleBits() + 12*8*params.Rep) * spb
	end := start + 8*params.Rep*spb
	if end <= len(samples) {
		for i := start; i < end; i++ {
			samples[i] = 0
		}
	}

	_, err = Decode(samples, params, key, iv)
	if err == nil {
		t.Skip("corruption did not flip a decoded bit this run")
	}
	lerr, ok := err.(*linkerr.Error)
	if !ok {
		t.Fatalf("expected *linkerr.Error, got %T", err)
	}
	if lerr.Kind != linkerr.CrcMismatch && lerr.Kind != linkerr.MagicNotFound {
		t.Fatalf("got kind %v, want CrcMismatch or MagicNotFound", lerr.Kind)
	}
}
