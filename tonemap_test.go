package acesrender

import "testing"

func TestTonemapBlackStaysBlack(t *testing.T) {
	got := tonemap(rgb{}, DefaultTonemapParams())
	if got != (rgb{}) {
		t.Fatalf("tonemap(black) = %+v, want black", got)
	}
}

func TestTonemapBounded(t *testing.T) {
	p := DefaultTonemapParams()
	inputs := []rgb{
		{r: 1, g: 0, b: 0},
		{r: 10, g: 5, b: 0.1},
		{r: 1e6, g: 1e6, b: 1e6},
		{r: 0.5, g: 2000, b: 3},
	}
	for _, in := range inputs {
		out := tonemap(in, p)
		for _, v := range [3]float32{out.r, out.g, out.b} {
			if v < 0 || v >= 1 {
				t.Fatalf("tonemap(%+v) = %+v, want channels in [0, 1)", in, out)
			}
		}
	}
}

func TestTonemapIdentityNearBlack(t *testing.T) {
	p := DefaultTonemapParams()
	in := rgb{r: 0.001, g: 0.0005, b: 0.0002}
	out := tonemap(in, p)
	if !closeTo(out.r, in.r) || !closeTo(out.g, in.g) || !closeTo(out.b, in.b) {
		t.Fatalf("tonemap near black %+v = %+v, want ~identity", in, out)
	}
}

func TestTonemapMonotonicInExposure(t *testing.T) {
	p := DefaultTonemapParams()
	prev := float32(-1)
	for exposure := float32(0.01); exposure < 100; exposure *= 2 {
		out := tonemap(rgb{r: exposure, g: exposure * 0.5, b: exposure * 0.25}, p)
		if out.r <= prev {
			t.Fatalf("peak channel not increasing at exposure %v: %v <= %v", exposure, out.r, prev)
		}
		prev = out.r
	}
}

func TestTonemapClampsNegatives(t *testing.T) {
	out := tonemap(rgb{r: -0.5, g: 0.25, b: -1}, DefaultTonemapParams())
	if out.r < 0 || out.g < 0 || out.b < 0 {
		t.Fatalf("tonemap with negative input = %+v, want non-negative output", out)
	}
}
