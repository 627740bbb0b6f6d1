package acesrender

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// WithExt appends the default ".exr" extension unless the name already
// carries a supported one.
func WithExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".exr", ".png", ".webp":
		return name
	}
	return name + ".exr"
}

// Save writes a rendered image to path, picking the format from the
// extension: ".exr" stores the scene-linear buffer, ".png" and ".webp"
// store the 8-bit display buffer.
func Save(path string, scene *SceneImage, display *DisplayImage) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".exr":
		if scene == nil {
			return errors.New("no scene-linear image to save")
		}
		return WriteEXRFile(path, scene)
	case ".png", ".webp":
		if display == nil {
			return errors.New("no display image to save")
		}
		f, err := os.Create(filepath.Clean(path))
		if err != nil {
			return err
		}
		if ext == ".png" {
			err = png.Encode(f, display.ToNRGBA())
		} else {
			err = nativewebp.Encode(f, display.ToNRGBA(), nil)
		}
		if err != nil {
			f.Close()
			return fmt.Errorf("encode %s: %w", path, err)
		}
		return f.Close()
	default:
		return fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
	}
}
