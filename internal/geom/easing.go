package geom

import "errors"

// ErrUnknownEasing is a sentinel error indicating an easing curve name is
// not recognized. It is returned at configuration time so a bad config
// fails fast instead of producing silent linear motion.
var ErrUnknownEasing = errors.New("unknown easing curve")

// EaseFunc maps normalized progress in [0, 1] to an eased response value.
type EaseFunc func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 { return t }

// SmoothStep is the classic 3t^2 - 2t^3 response curve, easing both ends.
func SmoothStep(t float64) float64 { return t * t * (3 - 2*t) }

// EaseInOut is a quadratic ease-in/ease-out response curve.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

// EaseOut is a cubic ease-out response curve, decelerating toward the end.
func EaseOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseForName returns the easing curve registered under the given name.
//
// Valid names are "linear", "smoothstep", "ease-in-out", and "ease-out".
// Returns [ErrUnknownEasing] for anything else.
func EaseForName(name string) (EaseFunc, error) {
	switch name {
	case "linear":
		return Linear, nil
	case "smoothstep":
		return SmoothStep, nil
	case "ease-in-out":
		return EaseInOut, nil
	case "ease-out":
		return EaseOut, nil
	default:
		return nil, ErrUnknownEasing
	}
}
