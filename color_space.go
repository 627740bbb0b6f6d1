package acesrender

// rgb is a working-space color triple. Alpha travels separately through
// the pipeline.
type rgb struct {
	r, g, b float32
}

// Matrices are the standard ACES values: AP1 primaries with a D60 white,
// Bradford-adapted to the BT.709/sRGB D65 white.

func acescgToLinearSRGB(v rgb) rgb {
	return rgb{
		r: 1.70505099*v.r - 0.62179212*v.g - 0.08325887*v.b,
		g: -0.13025642*v.r + 1.14080474*v.g - 0.01054832*v.b,
		b: -0.02400336*v.r - 0.12896898*v.g + 1.15297233*v.b,
	}
}

func linearSRGBToACEScg(v rgb) rgb {
	return rgb{
		r: 0.61309733*v.r + 0.33952285*v.g + 0.04737928*v.b,
		g: 0.07019422*v.r + 0.91635557*v.g + 0.01345021*v.b,
		b: 0.0206156*v.r + 0.10956983*v.g + 0.86981512*v.b,
	}
}

func clampRGB(v rgb) rgb {
	if v.r < 0 {
		v.r = 0
	}
	if v.g < 0 {
		v.g = 0
	}
	if v.b < 0 {
		v.b = 0
	}
	return v
}
