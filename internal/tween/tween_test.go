package tween

import (
	"math"
	"testing"
)

func TestCubicBezierEndpointsAndShape(t *testing.T) {
	ease := CubicBezier(0.25, 1, 0.5, 1)

	if ease(0) != 0 || ease(1) != 1 {
		t.Fatalf("endpoints = %v, %v", ease(0), ease(1))
	}

	prev := 0.0
	for i := 1; i < 100; i++ {
		x := float64(i) / 100
		y := ease(x)
		if y < prev-1e-9 {
			t.Fatalf("not monotonic at %v: %v < %v", x, y, prev)
		}
		if y < x {
			t.Errorf("ease-out curve below diagonal at %v: %v", x, y)
		}
		prev = y
	}
}

func TestCubicBezierLinearControlPoints(t *testing.T) {
	ease := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		if got := ease(x); math.Abs(got-x) > 1e-5 {
			t.Errorf("ease(%v) = %v", x, got)
		}
	}
}

func TestAnimateReachesTarget(t *testing.T) {
	track := NewTrack()
	value := 0.0
	completed := 0

	track.Animate(&value, 1, Options{Duration: 1.8, Ease: EaseOutQuart, OnComplete: func() { completed++ }})

	for i := 0; i < 60; i++ {
		track.Advance(1.0 / 60)
	}
	if value <= 0 || value >= 1 {
		t.Fatalf("mid-flight value = %v", value)
	}

	for i := 0; i < 60; i++ {
		track.Advance(1.0 / 60)
	}
	if value != 1 {
		t.Errorf("final value = %v, want 1", value)
	}
	if completed != 1 {
		t.Errorf("OnComplete fired %d times", completed)
	}
	if track.Len() != 0 {
		t.Errorf("track still holds %d tweens", track.Len())
	}
}

func TestRetargetReplacesInFlightTween(t *testing.T) {
	track := NewTrack()
	value := 0.0
	showDone, hideDone := false, false

	first := track.Animate(&value, 1, Options{Duration: 1.8, Ease: EaseOutQuart, OnComplete: func() { showDone = true }})
	for i := 0; i < 30; i++ {
		track.Advance(1.0 / 60)
	}
	mid := value

	track.Animate(&value, 0, Options{Duration: 1.8, OnComplete: func() { hideDone = true }})
	if !first.Done() {
		t.Error("replaced tween not marked done")
	}
	if track.Len() != 1 {
		t.Fatalf("expected one tween, got %d", track.Len())
	}

	track.Advance(1.0 / 60)
	if value >= mid {
		t.Errorf("retargeted tween did not start from current value: %v >= %v", value, mid)
	}

	for i := 0; i < 200; i++ {
		track.Advance(1.0 / 60)
	}
	if value != 0 {
		t.Errorf("final value = %v, want 0", value)
	}
	if showDone {
		t.Error("cancelled tween fired OnComplete")
	}
	if !hideDone {
		t.Error("last tween did not complete")
	}
}

func TestOnCompleteMayStartNewTween(t *testing.T) {
	track := NewTrack()
	value := 0.0
	track.Animate(&value, 1, Options{Duration: 0.1, OnComplete: func() {
		track.Animate(&value, 2, Options{Duration: 0.1})
	}})

	track.Advance(0.2)
	if value != 1 || !track.Active(&value) {
		t.Fatalf("value=%v active=%v", value, track.Active(&value))
	}
	track.Advance(0.2)
	if value != 2 {
		t.Errorf("value = %v, want 2", value)
	}
}

func TestZeroDurationSetsImmediately(t *testing.T) {
	track := NewTrack()
	value := 3.0
	called := false
	track.Animate(&value, 7, Options{OnComplete: func() { called = true }})
	if value != 7 || !called || track.Len() != 0 {
		t.Errorf("value=%v called=%v len=%d", value, called, track.Len())
	}
}
