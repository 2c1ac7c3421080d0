package biquad

import (
	"math"
	"testing"
)

func sineAt(freq, fs float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / fs)
	}
	return out
}

func rms(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

func TestHighpassAttenuatesDC(t *testing.T) {
	fs := 44100.0
	x := make([]float64, 2000)
	for i := range x {
		x[i] = 1.0 // pure DC
	}

	hp := Highpass(fs, 700, 0.707)
	hp.Process(x)

	if got := rms(x[len(x)-200:]); got > 0.01 {
		t.Errorf("expected DC to be attenuated near zero, steady-state rms = %v", got)
	}
}

func TestLowpassAttenuatesHighFrequency(t *testing.T) {
	fs := 44100.0
	x := sineAt(18000, fs, 4000)
	before := rms(x[len(x)-1000:])

	lp := Lowpass(fs, 2600, 0.707)
	lp.Process(x)

	after := rms(x[len(x)-1000:])
	if after >= before*0.5 {
		t.Errorf("expected strong attenuation at 18kHz through a 2600Hz lowpass: before=%v after=%v", before, after)
	}
}

func TestBandpassPassesMidBandTone(t *testing.T) {
	fs := 44100.0
	x := sineAt(1700, fs, 4000) // inside [700, 2600]
	before := rms(x[len(x)-1000:])

	hp := Highpass(fs, 700, 0.707)
	lp := Lowpass(fs, 2600, 0.707)
	hp.Process(x)
	lp.Process(x)

	after := rms(x[len(x)-1000:])
	if after < before*0.5 {
		t.Errorf("expected passband tone to survive with moderate attenuation: before=%v after=%v", before, after)
	}
}

func TestResetClearsState(t *testing.T) {
	f := Highpass(44100, 700, 0.707)
	x := sineAt(1200, 44100, 500)
	f.Process(x)
	if f.z1 == 0 && f.z2 == 0 {
		t.Fatal("expected non-zero state after processing")
	}
	f.Reset()
	if f.z1 != 0 || f.z2 != 0 {
		t.Error("expected Reset to zero filter state")
	}
}
