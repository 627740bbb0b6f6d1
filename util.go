package acesrender

import "math"

// FitRange linearly remaps x from [inMin, inMax] to [outMin, outMax].
// No clamping is applied, so values outside the input range extrapolate.
// inMin == inMax violates the precondition: the result is the IEEE
// division by zero (non-finite), not an error.
func FitRange(x, inMin, inMax, outMin, outMax float32) float32 {
	return (outMax-outMin)*(x-inMin)/(inMax-inMin) + outMin
}

func lerp(a, b, t float32) float32 { return a + t*(b-a) }

func powf(v, e float32) float32 { return float32(math.Pow(float64(v), float64(e))) }

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func max3(a, b, c float32) float32 {
	if a >= b && a >= c {
		return a
	}
	if b >= a && b >= c {
		return b
	}
	return c
}

func srgbOetf(v float32) float32 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*powf(v, 1.0/2.4) - 0.055
}

func srgbInvOetf(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return powf((v+0.055)/1.055, 2.4)
}
