// Package scroll turns raw wheel input into a smoothed scroll offset and a
// per-frame velocity signal.
package scroll

import "math"

// Source is what the overlay needs from any smooth-scroll implementation.
type Source interface {
	CurrentOffset() float64
	CurrentVelocity() float64
}

// DefaultLerp matches the smoothing used by the page hosts.
const DefaultLerp = 0.15

// Smooth is a damped scroller. The target moves instantly with input and the
// animated offset chases it every Advance.
type Smooth struct {
	Lerp            float64
	WheelMultiplier float64

	target   float64
	animated float64
	velocity float64
	limit    float64

	isScrolling bool
	isStopped   bool
}

func NewSmooth(lerp float64) *Smooth {
	if lerp <= 0 || lerp > 1 {
		lerp = DefaultLerp
	}
	return &Smooth{Lerp: lerp, WheelMultiplier: 1}
}

func (s *Smooth) CurrentOffset() float64   { return s.animated }
func (s *Smooth) CurrentVelocity() float64 { return s.velocity }

// TargetOffset is where the scroller is heading.
func (s *Smooth) TargetOffset() float64 { return s.target }

// Limit is the largest reachable offset.
func (s *Smooth) Limit() float64 { return s.limit }

// IsScrolling reports whether the animated offset is still moving.
func (s *Smooth) IsScrolling() bool { return s.isScrolling }

// SetLimit sets the scrollable range to [0, limit] and clamps both offsets into it.
func (s *Smooth) SetLimit(limit float64) {
	s.limit = math.Max(0, limit)
	s.target = clamp(s.target, 0, s.limit)
	s.animated = clamp(s.animated, 0, s.limit)
}

// AddDelta feeds a wheel delta in pixels; positive scrolls down the page.
func (s *Smooth) AddDelta(delta float64) {
	if s.isStopped || delta == 0 {
		return
	}
	s.target = clamp(s.target+delta*s.WheelMultiplier, 0, s.limit)
	s.isScrolling = s.target != s.animated
}

// ScrollTo moves the target; immediate jumps without animation and reports zero velocity.
func (s *Smooth) ScrollTo(offset float64, immediate bool) {
	s.target = clamp(offset, 0, s.limit)
	if immediate {
		s.animated = s.target
		s.velocity = 0
		s.isScrolling = false
		return
	}
	s.isScrolling = s.target != s.animated
}

// Stop freezes input until Start.
func (s *Smooth) Stop() {
	s.isStopped = true
	s.target = s.animated
	s.velocity = 0
	s.isScrolling = false
}

func (s *Smooth) Start() { s.isStopped = false }

// Advance steps the animation by dt seconds. Call once per frame.
func (s *Smooth) Advance(dt float64) {
	previous := s.animated

	if s.isScrolling {
		s.animated = damp(s.animated, s.target, s.Lerp*60, dt)
		if math.Abs(s.target-s.animated) < 0.5 {
			s.animated = s.target
			s.isScrolling = false
		}
	}

	s.velocity = s.animated - previous
}

func damp(x, y, lambda, dt float64) float64 {
	return lerp(x, y, 1-math.Exp(-lambda*dt))
}

func lerp(x, y, t float64) float64 {
	return (1-t)*x + t*y
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
