// Package channel degrades a waveform the way a real acoustic path
// would: bit-depth loss, resampling, codec-style bandlimiting, and
// additive noise, all driven by a seeded PRNG so a degradation run is
// reproducible.
package channel

import (
	"math"

	"golang.org/x/exp/rand"

	"aethersteg/internal/biquad"
)

func clampSample(x float64) float64 {
	if x > 1.0 {
		return 1.0
	}
	if x < -1.0 {
		return -1.0
	}
	return x
}

// Clamp clips every sample in x to [-1, 1] in place.
func Clamp(x []float64) {
	for i, v := range x {
		x[i] = clampSample(v)
	}
}

// RMS returns the root-mean-square amplitude of x, floored so a
// silent buffer never divides by zero downstream.
func RMS(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum/float64(len(x))) + 1e-12
}

// ResampleLinear linearly resamples x from fsIn to fsOut. It is a
// dependency-free stand-in for a real polyphase resampler.
func ResampleLinear(x []float64, fsIn, fsOut int) []float64 {
	if fsIn == fsOut {
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}
	nIn := len(x)
	dur := float64(nIn) / float64(fsIn)
	nOut := int(math.Round(dur * float64(fsOut)))
	if nOut <= 1 {
		if nIn == 0 {
			return []float64{}
		}
		return []float64{x[0]}
	}

	out := make([]float64, nOut)
	for i := 0; i < nOut; i++ {
		tOut := dur * float64(i) / float64(nOut)
		srcPos := tOut / dur * float64(nIn)
		lo := int(math.Floor(srcPos))
		if lo < 0 {
			lo = 0
		}
		if lo >= nIn-1 {
			out[i] = x[nIn-1]
			continue
		}
		frac := srcPos - float64(lo)
		out[i] = x[lo]*(1-frac) + x[lo+1]*frac
	}
	return out
}

// Quantize simulates bit-depth reduction to bits bits by rounding
// through a [0, 2^bits-1] integer grid. bits >= 16 is a no-op.
func Quantize(x []float64, bits int) []float64 {
	out := make([]float64, len(x))
	if bits >= 16 {
		copy(out, x)
		return out
	}
	levels := float64((int64(1) << bits) - 1)
	for i, v := range x {
		v = clampSample(v)
		y := math.Round((v*0.5+0.5)*levels) / levels
		y = (y - 0.5) * 2.0
		out[i] = clampSample(y)
	}
	return out
}

// BandlimitTelephony applies a highpass-then-lowpass RBJ filter pair.
func BandlimitTelephony(x []float64, fs float64, lo, hi float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)

	hp := biquad.Highpass(fs, lo, 0.707)
	hp.Process(out)
	lp := biquad.Lowpass(fs, hi, 0.707)
	lp.Process(out)
	return out
}

// AddAWGN adds white Gaussian noise sized to hit the given SNR in dB.
// snrDB > 200 is treated as "no noise."
func AddAWGN(x []float64, snrDB float64, rng *rand.Rand) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if snrDB > 200 {
		return out
	}
	sigR := RMS(x)
	snrLin := math.Pow(10, snrDB/20.0)
	noiseR := sigR / snrLin
	for i := range out {
		n := noiseR * gaussian(rng)
		out[i] = clampSample(out[i] + n)
	}
	return out
}

// AddPinkNoise adds 1/f-shaped noise via a leaky-integrator filter
// over white noise.
func AddPinkNoise(x []float64, snrDB float64, rng *rand.Rand) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if snrDB > 200 {
		return out
	}

	pink := make([]float64, len(x))
	const a = 0.98
	acc := 0.0
	for i := range pink {
		acc = a*acc + (1-a)*gaussian(rng)
		pink[i] = acc
	}
	pinkR := RMS(pink)
	for i := range pink {
		pink[i] /= pinkR
	}

	sigR := RMS(x)
	snrLin := math.Pow(10, snrDB/20.0)
	noiseR := sigR / snrLin
	for i := range out {
		out[i] = clampSample(out[i] + pink[i]*noiseR)
	}
	return out
}

// AddHum adds mains-frequency hum with harmonics at a random phase.
func AddHum(x []float64, snrDB, fs, freqHz float64, harmonics int, rng *rand.Rand) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if snrDB > 200 {
		return out
	}

	phase := rng.Float64() * 2 * math.Pi
	hum := make([]float64, len(x))
	for i := range hum {
		t := float64(i) / fs
		for k := 1; k <= harmonics; k++ {
			hum[i] += (1.0 / float64(k)) * math.Sin(2*math.Pi*freqHz*float64(k)*t+phase)
		}
	}
	humR := RMS(hum)
	for i := range hum {
		hum[i] /= humR
	}

	sigR := RMS(x)
	snrLin := math.Pow(10, snrDB/20.0)
	noiseR := sigR / snrLin
	for i := range out {
		out[i] = clampSample(out[i] + hum[i]*noiseR)
	}
	return out
}

// AddClicks scatters short decaying impulses through x.
func AddClicks(x []float64, snrDB, fs, rateHz, clickMs float64, rng *rand.Rand) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if snrDB > 200 {
		return out
	}

	n := len(x)
	clicks := make([]float64, n)
	expected := int(rateHz * (float64(n) / fs))
	L := int(fs * (clickMs / 1000.0))
	if L < 1 {
		L = 1
	}
	for c := 0; c < expected; c++ {
		span := n - L
		if span < 1 {
			span = 1
		}
		pos := int(rng.Int63n(int64(span)))
		amp := rng.Float64()*2 - 1
		for k := 0; k < L && pos+k < n; k++ {
			pulse := amp * math.Exp(-6*float64(k)/float64(L))
			clicks[pos+k] += pulse
		}
	}

	clicksR := RMS(clicks)
	if clicksR < 1e-9+1e-12 {
		return out
	}
	for i := range clicks {
		clicks[i] /= clicksR
	}

	sigR := RMS(x)
	snrLin := math.Pow(10, snrDB/20.0)
	noiseR := sigR / snrLin
	for i := range out {
		out[i] = clampSample(out[i] + clicks[i]*noiseR)
	}
	return out
}

func gaussian(rng *rand.Rand) float64 {
	// Box-Muller, standard normal.
	u1 := rng.Float64()
	u2 := rng.Float64()
	if u1 < 1e-12 {
		u1 = 1e-12
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// NoiseType selects one of the additive noise models ApplyNoise
// dispatches on.
type NoiseType int

const (
	NoiseAWGN NoiseType = iota
	NoisePink
	NoiseHum
	NoiseClicks
	NoiseMix
)

// ApplyNoise dispatches to the noise model selected by t. NoiseMix
// layers AWGN, hum, and clicks at staggered SNR offsets.
func ApplyNoise(x []float64, fs float64, t NoiseType, snrDB float64, rng *rand.Rand) []float64 {
	switch t {
	case NoiseAWGN:
		return AddAWGN(x, snrDB, rng)
	case NoisePink:
		return AddPinkNoise(x, snrDB, rng)
	case NoiseHum:
		return AddHum(x, snrDB, fs, 50.0, 5, rng)
	case NoiseClicks:
		return AddClicks(x, snrDB, fs, 2.0, 3.0, rng)
	case NoiseMix:
		y := AddAWGN(x, snrDB+3.0, rng)
		y = AddHum(y, snrDB+6.0, fs, 50.0, 3, rng)
		y = AddClicks(y, snrDB+6.0, fs, 1.0, 2.0, rng)
		Clamp(y)
		return y
	default:
		return x
	}
}

// Preset selects one of the crude codec-like compression stand-ins
// ApplyCompressionPreset implements.
type Preset int

const (
	PresetNone Preset = iota
	PresetVOIP
	PresetPSTN
	PresetLowBit
)

// ApplyCompressionPreset runs x through a bandlimit+resample+quantize
// (or mu-law) chain modeling a lossy codec.
func ApplyCompressionPreset(x []float64, fs float64, preset Preset) []float64 {
	switch preset {
	case PresetNone:
		out := make([]float64, len(x))
		copy(out, x)
		return out

	case PresetVOIP:
		y := BandlimitTelephony(x, fs, 80.0, 7000.0)
		y16 := ResampleLinear(y, int(fs), 16000)
		y16 = Quantize(y16, 12)
		y = ResampleLinear(y16, 16000, int(fs))
		Clamp(y)
		return y

	case PresetPSTN:
		y := BandlimitTelephony(x, fs, 300.0, 3400.0)
		y8 := ResampleLinear(y, int(fs), 8000)
		y8 = ApplyMuLaw(y8)
		y = ResampleLinear(y8, 8000, int(fs))
		Clamp(y)
		return y

	case PresetLowBit:
		y := BandlimitTelephony(x, fs, 120.0, 6000.0)
		y12 := ResampleLinear(y, int(fs), 12000)
		y12 = Quantize(y12, 8)
		y = ResampleLinear(y12, 12000, int(fs))
		Clamp(y)
		return y

	default:
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}
}
