package tween

import "math"

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

// EaseOutQuart is cubic-bezier(0.25, 1, 0.5, 1), the curve used for reveals.
var EaseOutQuart = CubicBezier(0.25, 1, 0.5, 1)

// CubicBezier builds a CSS-style timing function with control points
// (x1, y1) and (x2, y2). x1 and x2 are clamped into [0, 1].
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	x1 = math.Max(0, math.Min(1, x1))
	x2 = math.Max(0, math.Min(1, x2))

	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx

	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	solve := func(x float64) float64 {
		const epsilon = 1e-7

		t := x
		for i := 0; i < 8; i++ {
			err := sampleX(t) - x
			if math.Abs(err) < epsilon {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= err / d
		}

		// Newton failed to settle, fall back to bisection.
		lo, hi := 0.0, 1.0
		t = x
		for lo < hi {
			v := sampleX(t)
			if math.Abs(v-x) < epsilon {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			next := (lo + hi) / 2
			if next == t {
				break
			}
			t = next
		}
		return t
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return sampleY(solve(t))
	}
}
