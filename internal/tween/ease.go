package tween

import "math"

// Ease maps raw progress t ∈ [0,1] to eased progress.
type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

func InQuad(t float64) float64 { return t * t }

func OutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

func InCubic(t float64) float64 { return t * t * t }

func OutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }

func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func OutExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// OutBounce is the standard four-segment bounce curve; gravity drops use it.
func OutBounce(t float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

var byName = map[string]Ease{
	"linear":       Linear,
	"ease_in":      InCubic,
	"ease_out":     OutCubic,
	"ease_in_out":  InOutCubic,
	"in_quad":      InQuad,
	"out_quad":     OutQuad,
	"in_cubic":     InCubic,
	"out_cubic":    OutCubic,
	"in_out_cubic": InOutCubic,
	"out_expo":     OutExpo,
	"out_bounce":   OutBounce,
}

// ByName resolves an easing curve by its wire name. Unknown or empty
// names fall back to linear — command producers are not trusted.
func ByName(name string) Ease {
	if e, ok := byName[name]; ok {
		return e
	}
	return Linear
}
