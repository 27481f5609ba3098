// Package easing holds the curves every fade and entrance is built from.
package easing

// OutCubic decelerates towards 1: fast start, soft landing.
// Callers clamp p to [0, 1].
func OutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// InCubic accelerates away from 0.
func InCubic(p float64) float64 {
	return p * p * p
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
