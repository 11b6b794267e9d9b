package anim

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 {
	return t
}

// InOutCubic accelerates until halfway, then decelerates.
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}

// Lerp interpolates between from and to by p.
func Lerp(from, to, p float64) float64 {
	return from + (to-from)*p
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
