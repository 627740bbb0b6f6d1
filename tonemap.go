package acesrender

// TonemapParams parameterize the perceptual tonemap operator.
type TonemapParams struct {
	// Desaturation controls how strongly compressed highlights bleed
	// toward white, in [0, 1].
	Desaturation float32
	// Crosstalk sets how late the desaturation kicks in. Higher values
	// confine it to the brightest pixels.
	Crosstalk float32
}

// DefaultTonemapParams returns the parameters used by the standard
// SDR pipeline.
func DefaultTonemapParams() TonemapParams {
	return TonemapParams{Desaturation: 0.6, Crosstalk: 4.0}
}

// tonemap compresses an unbounded non-negative scene-linear color into
// the display-referred range [0, 1). The curve is monotonic and close to
// identity near black. Channel ratios are preserved except in bright
// highlights, where crosstalk pulls the color toward white instead of
// letting the hue skew.
//
// Negative channels are clamped to zero; NaN propagates unspecified.
func tonemap(c rgb, p TonemapParams) rgb {
	c = clampRGB(c)
	peak := max3(c.r, c.g, c.b)
	if peak <= 0 {
		return rgb{}
	}
	compressed := peak / (1 + peak)
	scale := compressed / peak
	cross := powf(compressed, p.Crosstalk) * p.Desaturation
	return rgb{
		r: lerp(c.r*scale, compressed, cross),
		g: lerp(c.g*scale, compressed, cross),
		b: lerp(c.b*scale, compressed, cross),
	}
}
