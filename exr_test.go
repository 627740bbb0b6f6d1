package acesrender

import (
	"math"
	"path/filepath"
	"testing"
)

func TestEncodeDecodeEXRRoundTrip(t *testing.T) {
	// 20 rows crosses a 16-line ZIP block boundary.
	const w, h = 32, 20
	src := NewSceneImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			src.Pix[i] = float32(x) / w * 3 // HDR values above 1.0
			src.Pix[i+1] = float32(y) / h
			src.Pix[i+2] = -0.25 + float32(x+y)/64
			src.Pix[i+3] = 1
		}
	}

	data, err := EncodeEXR(src)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeEXR(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.W != w || got.H != h {
		t.Fatalf("dims %dx%d, want %dx%d", got.W, got.H, w, h)
	}
	for i := range src.Pix {
		want := float64(src.Pix[i])
		have := float64(got.Pix[i])
		tol := math.Max(2e-3, math.Abs(want)*1e-3) // half-float precision
		if math.Abs(have-want) > tol {
			t.Fatalf("channel %d = %v, want %v", i, have, want)
		}
	}
	// Alpha 1.0 is exactly representable in half precision.
	for i := 3; i < len(got.Pix); i += 4 {
		if got.Pix[i] != 1 {
			t.Fatalf("alpha at %d = %v, want exactly 1", i, got.Pix[i])
		}
	}
}

func TestWriteReadEXRFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradient.exr")
	src := RenderGradient(16, 16)
	if err := WriteEXRFile(path, src); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadEXRFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.W != 16 || got.H != 16 {
		t.Fatalf("dims %dx%d, want 16x16", got.W, got.H)
	}
}

func TestDecodeEXRRejectsGarbage(t *testing.T) {
	if _, err := DecodeEXR([]byte("not an exr file at all")); err == nil {
		t.Fatal("expected error for non-EXR data")
	}
}

func TestEncodeEXRRejectsBadBuffer(t *testing.T) {
	if _, err := EncodeEXR(nil); err == nil {
		t.Fatal("expected error for nil image")
	}
	if _, err := EncodeEXR(&SceneImage{W: 4, H: 4, Pix: make([]float32, 7)}); err == nil {
		t.Fatal("expected error for mismatched buffer length")
	}
}

func TestHalfConversionRoundTrip(t *testing.T) {
	values := []float32{0, 1, -1, 0.5, 2.5, 65504, 1e-5, -0.333}
	for _, v := range values {
		back := halfToFloat32(float32ToHalf(v))
		tol := math.Max(1e-6, math.Abs(float64(v))*1e-3)
		if math.Abs(float64(back-v)) > tol {
			t.Fatalf("half round trip of %v = %v", v, back)
		}
	}
	if halfToFloat32(float32ToHalf(1)) != 1 {
		t.Fatal("1.0 must survive half conversion exactly")
	}
}
