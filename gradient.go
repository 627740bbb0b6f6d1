package acesrender

// Gradient corners, in ACEScg.
var (
	gradientRed   = rgb{r: 1}
	gradientGreen = rgb{g: 1}
	gradientBlue  = rgb{b: 1}
)

// RenderGradient synthesizes the scene-linear test gradient. Normalized
// coordinates u and v come from FitRange over [0, w) and [0, h); red
// blends to green along u and to blue along v, and the two results blend
// 50/50. Rows are written from v near 1 down to v = 0, so the bottom row
// of the buffer holds v = 0 and its left corner is pure red. Alpha is
// fully opaque everywhere.
func RenderGradient(w, h int) *SceneImage {
	img := NewSceneImage(w, h)
	i := 0
	for y := h - 1; y >= 0; y-- {
		v := FitRange(float32(y), 0, float32(h), 0, 1)
		for x := 0; x < w; x++ {
			u := FitRange(float32(x), 0, float32(w), 0, 1)
			c := blend(blend(gradientRed, gradientGreen, u), blend(gradientRed, gradientBlue, v), 0.5)
			img.Pix[i] = c.r
			img.Pix[i+1] = c.g
			img.Pix[i+2] = c.b
			img.Pix[i+3] = 1
			i += 4
		}
	}
	return img
}

// blend interpolates between two colors componentwise in the working
// space. Interpolating before display encoding avoids gamma artifacts.
func blend(a, b rgb, t float32) rgb {
	return rgb{
		r: lerp(a.r, b.r, t),
		g: lerp(a.g, b.g, t),
		b: lerp(a.b, b.b, t),
	}
}
