package easing

// Clamp01 limits t to [0, 1]. Progress values drift slightly outside the
// range when frames are sampled as frameIndex/totalFrames.
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseOutCubic decelerates towards the end: 1 - (1-t)^3
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	return 1 - pow(1-t, 3)
}

// EaseInOutCubic accelerates until t=0.5 and decelerates after it
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 + 4*pow(t-1, 3)
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
