package frontend

import (
	"math"
	"testing"
)

func TestRemoveDCZeroesMean(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	RemoveDC(x)

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))

	if math.Abs(mean) > 1e-9 {
		t.Errorf("expected zero mean after RemoveDC, got %v", mean)
	}
}

func TestNormalizeRMSHitsTarget(t *testing.T) {
	x := make([]float64, 1000)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / 44100)
	}
	NormalizeRMS(x)

	var sumSq float64
	for _, v := range x {
		sumSq += v * v
	}
	r := math.Sqrt(sumSq / float64(len(x)))
	if math.Abs(r-targetRMS) > 1e-3 {
		t.Errorf("expected RMS close to %v, got %v", targetRMS, r)
	}
}

func TestNormalizeRMSSkipsNearSilence(t *testing.T) {
	x := make([]float64, 100)
	NormalizeRMS(x) // all zero; must not divide by ~0
	for _, v := range x {
		if v != 0 {
			t.Errorf("expected silence to remain silence, got %v", v)
		}
	}
}

func TestConditionIsHarmlessWhenRepeated(t *testing.T) {
	x := make([]float64, 4000)
	for i := range x {
		x[i] = math.Sin(2*math.Pi*1500*float64(i)/44100) + 0.3
	}
	Condition(x, 44100)

	y := append([]float64{}, x...)
	Condition(y, 44100)

	for i := range x {
		if math.IsNaN(y[i]) || math.Abs(y[i]) > 10 {
			t.Fatalf("re-applying Condition blew up at index %d: %v", i, y[i])
		}
	}
}
