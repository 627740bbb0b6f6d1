package acesrender

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestWithExt(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "sample_file", want: "sample_file.exr"},
		{in: "render.exr", want: "render.exr"},
		{in: "render.PNG", want: "render.PNG"},
		{in: "out.webp", want: "out.webp"},
		{in: "archive.tar", want: "archive.tar.exr"},
	}
	for _, tt := range tests {
		if got := WithExt(tt.in); got != tt.want {
			t.Fatalf("WithExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSavePNG(t *testing.T) {
	scene := RenderGradient(16, 8)
	display := EncodeDisplay(scene, DefaultTonemapParams())
	path := filepath.Join(t.TempDir(), "out.png")
	if err := Save(path, scene, display); err != nil {
		t.Fatalf("save: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 8 {
		t.Fatalf("dims %v, want 16x8", img.Bounds())
	}
}

func TestSaveWebP(t *testing.T) {
	scene := RenderGradient(8, 8)
	display := EncodeDisplay(scene, DefaultTonemapParams())
	path := filepath.Join(t.TempDir(), "out.webp")
	if err := Save(path, scene, display); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WEBP")) {
		t.Fatal("output is not a WebP container")
	}
}

func TestSaveEXRWritesSceneBuffer(t *testing.T) {
	scene := RenderGradient(8, 8)
	display := EncodeDisplay(scene, DefaultTonemapParams())
	path := filepath.Join(t.TempDir(), "out.exr")
	if err := Save(path, scene, display); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := ReadEXRFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	// Bottom-left pixel of the gradient is pure red in scene space.
	c := got.At(0, 7)
	if !within(c.r, 1, 1e-3) || !within(c.g, 0, 1e-3) || !within(c.b, 0, 1e-3) {
		t.Fatalf("bottom-left scene pixel = %+v, want pure red", c)
	}
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	scene := RenderGradient(4, 4)
	display := EncodeDisplay(scene, DefaultTonemapParams())
	if err := Save(filepath.Join(t.TempDir(), "out.bmp"), scene, display); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestSaveRequiresImages(t *testing.T) {
	dir := t.TempDir()
	if err := Save(filepath.Join(dir, "a.exr"), nil, nil); err == nil {
		t.Fatal("expected error saving EXR without a scene image")
	}
	if err := Save(filepath.Join(dir, "a.png"), nil, nil); err == nil {
		t.Fatal("expected error saving PNG without a display image")
	}
}
