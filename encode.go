package acesrender

// EncodeDisplay converts a scene-linear image into an 8-bit sRGB display
// image: perceptual tonemap, ACEScg to linear sRGB, sRGB transfer curve,
// quantization. The transform is pointwise, so rows are encoded in
// parallel; the output does not depend on the worker count.
//
// Color channels are rounded to the nearest 8-bit value. Alpha is
// truncated instead, matching the established output byte for byte.
func EncodeDisplay(scene *SceneImage, params TonemapParams) *DisplayImage {
	out := NewDisplayImage(scene.W, scene.H)
	w := scene.W
	parallelFor(scene.H, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := (y*w + x) * 4
				c := tonemap(rgb{r: scene.Pix[i], g: scene.Pix[i+1], b: scene.Pix[i+2]}, params)
				c = acescgToLinearSRGB(c)
				out.Pix[i] = quantize8(srgbOetf(clamp01(c.r)))
				out.Pix[i+1] = quantize8(srgbOetf(clamp01(c.g)))
				out.Pix[i+2] = quantize8(srgbOetf(clamp01(c.b)))
				out.Pix[i+3] = uint8(255.0 * scene.Pix[i+3])
			}
		}
	})
	return out
}

// quantize8 rounds v in [0, 1] to the nearest 8-bit value.
func quantize8(v float32) uint8 {
	return uint8(v*255.0 + 0.5)
}
