package acesrender

import (
	"image"
	"image/draw"

	"github.com/nfnt/resize"
)

// ToNRGBA copies the display buffer into a standard library image.
func (d *DisplayImage) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, d.W, d.H))
	copy(img.Pix, d.Pix)
	return img
}

// Preview returns the display image scaled down to fit within
// maxW by maxH, preserving aspect ratio. Images that already fit are
// returned at full size.
func Preview(d *DisplayImage, maxW, maxH int) *image.NRGBA {
	if maxW <= 0 || maxH <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	src := d.ToNRGBA()
	if d.W <= maxW && d.H <= maxH {
		return src
	}
	w := maxW
	h := d.H * maxW / d.W
	if h > maxH {
		h = maxH
		w = d.W * maxH / d.H
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	scaled := resize.Resize(uint(w), uint(h), src, resize.Lanczos3)
	if nrgba, ok := scaled.(*image.NRGBA); ok {
		return nrgba
	}
	out := image.NewNRGBA(scaled.Bounds())
	draw.Draw(out, out.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	return out
}
