package acesrender

import (
	"math"
	"testing"
)

func TestFitRangeNormalizes(t *testing.T) {
	const width = 1024
	for _, x := range []float32{0, 1, 511, 1023} {
		got := FitRange(x, 0, width, 0, 1)
		if got < 0 || got >= 1 {
			t.Fatalf("FitRange(%v) = %v, want in [0, 1)", x, got)
		}
	}
	if got := FitRange(0, 0, width, 0, 1); got != 0 {
		t.Fatalf("FitRange(0) = %v, want exactly 0", got)
	}
}

func TestFitRangeExtrapolates(t *testing.T) {
	// No clamping: out-of-range input extrapolates linearly.
	if got := FitRange(20, 0, 10, 0, 1); got != 2 {
		t.Fatalf("FitRange(20, 0, 10, 0, 1) = %v, want 2", got)
	}
	if got := FitRange(-5, 0, 10, 0, 1); got != -0.5 {
		t.Fatalf("FitRange(-5, 0, 10, 0, 1) = %v, want -0.5", got)
	}
}

func TestFitRangeEqualBoundsIsNonFinite(t *testing.T) {
	// inMin == inMax violates the precondition; the divide by zero must
	// surface as a non-finite value rather than pass unnoticed.
	got := FitRange(5, 3, 3, 0, 1)
	if !math.IsNaN(float64(got)) && !math.IsInf(float64(got), 0) {
		t.Fatalf("FitRange with equal bounds = %v, want NaN or Inf", got)
	}
}

func TestSRGBCurveAnchors(t *testing.T) {
	if got := srgbOetf(0); got != 0 {
		t.Fatalf("srgbOetf(0) = %v, want 0", got)
	}
	if got := srgbOetf(1); got < 0.9999 || got > 1.0001 {
		t.Fatalf("srgbOetf(1) = %v, want 1", got)
	}
}

func TestSRGBCurveRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 0.001, 0.0031308, 0.04, 0.18, 0.5, 1} {
		back := srgbInvOetf(srgbOetf(v))
		if diff := math.Abs(float64(back - v)); diff > 1e-5 {
			t.Fatalf("round trip of %v drifted to %v", v, back)
		}
	}
}
