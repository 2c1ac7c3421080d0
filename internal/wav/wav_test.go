package wav

import (
	"bytes"
	"math"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/8000.0)
	}

	var buf bytes.Buffer
	if err := Write(&buf, samples, 8000); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, rate, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if rate != 8000 {
		t.Errorf("got sample rate %d, want 8000", rate)
	}
	if len(got) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(got), len(samples))
	}
	for i := range samples {
		if math.Abs(got[i]-samples[i]) > 1.0/32767.0+1e-9 {
			t.Fatalf("sample %d: got %v, want %v", i, got[i], samples[i])
		}
	}
}

func TestWriteClampsOutOfRangeSamples(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []float64{2.0, -2.0, 0.0}, 44100); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got[0] < 0.999 {
		t.Errorf("expected clamped +1 sample, got %v", got[0])
	}
	if got[1] > -0.999 {
		t.Errorf("expected clamped -1 sample, got %v", got[1])
	}
}

func TestReadRejectsNonRIFF(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte("not a wav file at all......")))
	if err == nil {
		t.Fatal("expected error for non-RIFF input")
	}
}

func TestReadDownmixesStereo(t *testing.T) {
	// Build a minimal stereo WAV by hand: left=+1.0, right=-1.0 -> mono avg 0.
	var header [44]byte
	copy(header[0:4], "RIFF")
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	putU32 := func(b []byte, v uint32) {
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
		b[3] = byte(v >> 24)
	}
	putU16 := func(b []byte, v uint16) {
		b[0] = byte(v)
		b[1] = byte(v >> 8)
	}
	putU32(header[16:20], 16)
	putU16(header[20:22], 1)
	putU16(header[22:24], 2) // stereo
	putU32(header[24:28], 8000)
	putU32(header[28:32], 8000*2*2)
	putU16(header[32:34], 4)
	putU16(header[34:36], 16)
	copy(header[36:40], "data")
	putU32(header[40:44], 4)

	frame := make([]byte, 4)
	var maxS16 int16 = 32767
	var minS16 int16 = -32768
	putU16(frame[0:2], uint16(maxS16))
	putU16(frame[2:4], uint16(minS16))

	buf := append(append([]byte{}, header[:]...), frame...)
	putU32(buf[4:8], uint32(36+4))

	samples, rate, err := Read(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if rate != 8000 {
		t.Errorf("got rate %d, want 8000", rate)
	}
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}
	if math.Abs(samples[0]) > 0.01 {
		t.Errorf("expected near-zero downmix average, got %v", samples[0])
	}
}
