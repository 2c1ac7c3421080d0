package modem

import (
	"aethersteg/internal/frame"
	"aethersteg/internal/linkerr"
)

// CoarseResult is the outcome of stage 1 (preamble search): the
// sample offset and polarity that best matched the alternating
// preamble pattern, plus the score (bits matched, out of PreambleBits)
// that earned it.
type CoarseResult struct {
	Offset int64
	Invert bool
	Score  int
}

// SearchSeconds bounds how much of the recording stage 1 scans before
// giving up.
const SearchSeconds = 3.0

// EarlyExitFraction is the fraction of PreambleBits a score must
// exceed to stop stage 1 early instead of scanning to SearchSeconds.
const EarlyExitFraction = 0.93

// CoarseSearch implements acquisition stage 1: a correlation-style
// scan over candidate bit-grid offsets, scoring each against the
// expected alternating preamble (bit b expected = b mod 2) under both
// signal polarities. It slides a window across the recording, scores
// each offset against the known preamble pattern, and tracks the
// best-scoring candidate.
func CoarseSearch(x []float64, params Params) (*CoarseResult, error) {
	spb := params.SamplesPerBit()
	if spb < MinSamplesPerBit {
		return nil, linkerr.New(linkerr.ConfigError, "samples per bit %d below minimum %d", spb, MinSamplesPerBit)
	}

	preBits := params.PreambleBits()
	n := int64(len(x))

	searchMax := int64(params.SampleRate * params.SearchSeconds)
	if searchMax > n {
		searchMax = n
	}

	step := int64(spb / 6)
	if step < 1 {
		step = 1
	}

	det := Detector{Params: params}

	best := CoarseResult{Offset: -1, Score: -1}
	tried := false

	for off := int64(0); off+int64(preBits)*int64(spb) < searchMax; off += step {
		tried = true

		for _, invert := range [2]bool{false, true} {
			score := scorePreamble(det, x, off, preBits, spb, invert)
			if score > best.Score {
				best = CoarseResult{Offset: off, Invert: invert, Score: score}
			}
		}

		if float64(best.Score) > params.EarlyExitFraction*float64(preBits) {
			break
		}
	}

	if !tried {
		return nil, linkerr.New(linkerr.SyncNotFound, "recording too short to contain a preamble (n=%d, need > %d samples)", n, int64(preBits)*int64(spb))
	}
	if best.Offset < 0 {
		return nil, linkerr.New(linkerr.SyncNotFound, "no candidate offset scored above zero within search_max=%d", searchMax)
	}

	return &best, nil
}

func scorePreamble(det Detector, x []float64, off int64, preBits, spb int, invert bool) int {
	score := 0
	for b := 0; b < preBits; b++ {
		pos := off + int64(b)*int64(spb)
		if pos+int64(spb) >= int64(len(x)) {
			break
		}
		expected := b%2 == 1
		got := det.DetectBit(x, pos, invert)
		if got == expected {
			score++
		}
	}
	return score
}

// RefineSteps is the number of subdivisions of +-spb stage 2 searches.
const RefineSteps = 24

// RefineResult is the outcome of stage 2 (magic-anchored refinement):
// the exact sample position of the frame's first header byte and the
// polarity that produced a matching "STEG" magic there.
type RefineResult struct {
	Pos    int64
	Invert bool
}

// Refine implements acquisition stage 2: starting from the coarse
// estimate's end-of-preamble position, search a symmetric +-spb
// window (step spb/RefineSteps) and both polarities for the exact
// offset at which decoding 4 bytes yields the "STEG" magic. The first
// match wins: cheap per-bit correlation (stage 1) narrows to roughly
// +-half a bit, then 32 bits that must decode exactly lock the grid
// and resolve polarity.
func Refine(x []float64, params Params, coarse CoarseResult) (*RefineResult, error) {
	spb := int64(params.SamplesPerBit())
	preBits := int64(params.PreambleBits())
	base := coarse.Offset + preBits*spb

	step := spb / int64(RefineSteps)
	if step < 1 {
		step = 1
	}

	dec := Decoder{Detector: Detector{Params: params}}
	n := int64(len(x))

	for delta := -spb; delta <= spb; delta += step {
		p := base + delta
		if p < 0 {
			continue
		}
		if p+4*params.CodedByteSpan() >= n {
			continue
		}

		for _, inv := range [2]bool{false, true} {
			cursor := p
			var magic [4]byte
			for i := 0; i < 4; i++ {
				magic[i] = dec.DecodeByte(x, &cursor, inv)
			}
			if frame.MagicMatches(magic[:]) {
				return &RefineResult{Pos: p, Invert: inv}, nil
			}
		}
	}

	return nil, linkerr.New(linkerr.MagicNotFound, "no STEG magic found within +-%d samples of base=%d (coarse score=%d/%d)", spb, base, coarse.Score, preBits)
}

// Acquire runs both acquisition stages in sequence and returns the
// locked frame-start position and polarity.
func Acquire(x []float64, params Params) (*RefineResult, *CoarseResult, error) {
	coarse, err := CoarseSearch(x, params)
	if err != nil {
		return nil, nil, err
	}
	refined, err := Refine(x, params, *coarse)
	if err != nil {
		return nil, coarse, err
	}
	return refined, coarse, nil
}
