// Package viewport tracks the window size, device pixel ratio and elapsed time
// shared by the camera, the text proxies and the render pipeline.
package viewport

import (
	"math"
	"time"
)

const (
	// DefaultDistanceFromCamera is the camera z used to turn screen height into a field of view.
	DefaultDistanceFromCamera = 1000.0

	// MaxPixelRatio bounds the backing-store scale to keep GPU cost in check.
	MaxPixelRatio = 2.0
)

// Display reports the layout viewport of the host window.
type Display interface {
	ScreenSize() (width, height float64)
	DevicePixelRatio() float64
}

// Surface is the drawing surface resized alongside the viewport.
type Surface interface {
	SetSize(width, height float64)
	SetPixelRatio(ratio float64)
}

// State is the per-window device context. Build one with New and hand the
// pointer to every component that needs screen metrics or time.
type State struct {
	ScreenWidth        float64
	ScreenHeight       float64
	PixelRatio         float64
	ElapsedTime        float64
	DistanceFromCamera float64

	display Display
	surface Surface
	now     func() time.Time
	start   time.Time
}

type Option func(*State)

// WithSurface attaches a surface that follows every size change.
func WithSurface(surface Surface) Option {
	return func(s *State) { s.surface = surface }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// WithDistance overrides DefaultDistanceFromCamera.
func WithDistance(distance float64) Option {
	return func(s *State) {
		if distance > 0 {
			s.DistanceFromCamera = distance
		}
	}
}

func New(display Display, opts ...Option) *State {
	s := &State{
		DistanceFromCamera: DefaultDistanceFromCamera,
		PixelRatio:         1,
		display:            display,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init captures the initial metrics, sizes the surface and starts the clock.
func (s *State) Init() {
	s.start = s.now()
	s.ElapsedTime = 0
	s.OnResize()
}

// OnResize re-reads the display and pushes the result to the surface.
func (s *State) OnResize() {
	width, height := s.display.ScreenSize()
	ratio := ClampPixelRatio(s.display.DevicePixelRatio())

	s.ScreenWidth, s.ScreenHeight, s.PixelRatio = width, height, ratio

	if s.surface != nil {
		s.surface.SetSize(width, height)
		s.surface.SetPixelRatio(ratio)
	}
}

// Update advances ElapsedTime to the clock reading minus the start time.
func (s *State) Update() {
	s.ElapsedTime = s.now().Sub(s.start).Seconds()
}

// Aspect is ScreenWidth / ScreenHeight, or 1 for a degenerate height.
func (s *State) Aspect() float64 {
	if s.ScreenHeight <= 0 {
		return 1
	}
	return s.ScreenWidth / s.ScreenHeight
}

// ClampPixelRatio returns min(dpr, MaxPixelRatio); unusable readings count as 1.
func ClampPixelRatio(dpr float64) float64 {
	if dpr <= 0 || math.IsNaN(dpr) {
		return 1
	}
	return math.Min(dpr, MaxPixelRatio)
}
