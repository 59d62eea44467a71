package viewport

import (
	"testing"
	"time"
)

type fakeDisplay struct {
	width, height, ratio float64
}

func (d *fakeDisplay) ScreenSize() (float64, float64) { return d.width, d.height }
func (d *fakeDisplay) DevicePixelRatio() float64      { return d.ratio }

type fakeSurface struct {
	width, height, ratio float64
	calls                int
}

func (s *fakeSurface) SetSize(w, h float64) {
	s.width, s.height = w, h
	s.calls++
}

func (s *fakeSurface) SetPixelRatio(r float64) { s.ratio = r }

func TestClampPixelRatio(t *testing.T) {
	inputs := []float64{1, 1.5, 2, 3, 4}
	want := []float64{1, 1.5, 2, 2, 2}
	for i, in := range inputs {
		if got := ClampPixelRatio(in); got != want[i] {
			t.Errorf("ClampPixelRatio(%v) = %v, want %v", in, got, want[i])
		}
	}
	if got := ClampPixelRatio(0); got != 1 {
		t.Errorf("ClampPixelRatio(0) = %v, want 1", got)
	}
}

func TestInitCapturesDisplay(t *testing.T) {
	display := &fakeDisplay{width: 1280, height: 800, ratio: 3}
	surface := &fakeSurface{}
	s := New(display, WithSurface(surface))
	s.Init()

	if s.ScreenWidth != 1280 || s.ScreenHeight != 800 {
		t.Fatalf("size = %vx%v", s.ScreenWidth, s.ScreenHeight)
	}
	if s.PixelRatio != 2 {
		t.Errorf("pixel ratio = %v, want 2", s.PixelRatio)
	}
	if surface.width != 1280 || surface.height != 800 || surface.ratio != 2 {
		t.Errorf("surface not sized: %+v", surface)
	}
	if s.DistanceFromCamera != DefaultDistanceFromCamera {
		t.Errorf("distance = %v", s.DistanceFromCamera)
	}
}

func TestResizeIsReentrant(t *testing.T) {
	display := &fakeDisplay{width: 1024, height: 768, ratio: 1.5}
	s := New(display)
	s.Init()

	display.width, display.height = 1440, 900
	s.OnResize()
	first := *s
	s.OnResize()

	if s.ScreenWidth != first.ScreenWidth || s.ScreenHeight != first.ScreenHeight || s.PixelRatio != first.PixelRatio {
		t.Errorf("second resize changed state: %+v vs %+v", s, first)
	}
	if s.ScreenWidth != 1440 || s.ScreenHeight != 900 {
		t.Errorf("resize not applied: %vx%v", s.ScreenWidth, s.ScreenHeight)
	}
}

func TestUpdateAdvancesElapsedTime(t *testing.T) {
	base := time.Unix(100, 0)
	now := base
	s := New(&fakeDisplay{width: 10, height: 10, ratio: 1}, WithClock(func() time.Time { return now }))
	s.Init()

	now = base.Add(1500 * time.Millisecond)
	s.Update()
	if s.ElapsedTime != 1.5 {
		t.Errorf("elapsed = %v, want 1.5", s.ElapsedTime)
	}

	now = base.Add(4 * time.Second)
	s.Update()
	if s.ElapsedTime != 4 {
		t.Errorf("elapsed = %v, want 4", s.ElapsedTime)
	}
}

func TestAspect(t *testing.T) {
	s := New(&fakeDisplay{width: 1600, height: 800, ratio: 1})
	s.Init()
	if s.Aspect() != 2 {
		t.Errorf("aspect = %v", s.Aspect())
	}
	s.ScreenHeight = 0
	if s.Aspect() != 1 {
		t.Errorf("degenerate aspect = %v", s.Aspect())
	}
}
