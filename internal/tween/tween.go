// Package tween runs fixed-duration property animations that can be retargeted
// mid-flight. A Track owns every running tween and is advanced once per frame.
package tween

type Options struct {
	Duration   float64 // seconds
	Ease       Easing  // nil means Linear
	OnComplete func()
}

// Tween animates a single float64 cell.
type Tween struct {
	target   *float64
	from, to float64
	elapsed  float64
	opts     Options
	done     bool
}

// To is the value the tween ends on.
func (tw *Tween) To() float64 { return tw.to }

// Done reports whether the tween finished or was replaced.
func (tw *Tween) Done() bool { return tw.done }

// Track holds at most one running tween per target.
type Track struct {
	tweens []*Tween
}

func NewTrack() *Track { return &Track{} }

// Animate starts animating target from its current value to `to`. A tween
// already driving target is dropped without firing its OnComplete.
func (tr *Track) Animate(target *float64, to float64, opts Options) *Tween {
	tr.Cancel(target)

	if opts.Ease == nil {
		opts.Ease = Linear
	}

	tw := &Tween{target: target, from: *target, to: to, opts: opts}
	if opts.Duration <= 0 {
		*target = to
		tw.done = true
		if opts.OnComplete != nil {
			opts.OnComplete()
		}
		return tw
	}

	tr.tweens = append(tr.tweens, tw)
	return tw
}

// Cancel stops whatever tween drives target, leaving the value where it is.
func (tr *Track) Cancel(target *float64) {
	for i, tw := range tr.tweens {
		if tw.target == target {
			tw.done = true
			tr.tweens = append(tr.tweens[:i], tr.tweens[i+1:]...)
			return
		}
	}
}

// Active reports whether a tween currently drives target.
func (tr *Track) Active(target *float64) bool {
	for _, tw := range tr.tweens {
		if tw.target == target {
			return true
		}
	}
	return false
}

// Len is the number of running tweens.
func (tr *Track) Len() int { return len(tr.tweens) }

// Advance moves every tween forward by dt seconds. Completion callbacks run
// after the track is updated, so they may start new tweens.
func (tr *Track) Advance(dt float64) {
	if len(tr.tweens) == 0 {
		return
	}

	var finished []*Tween
	running := tr.tweens[:0]
	for _, tw := range tr.tweens {
		tw.elapsed += dt
		progress := tw.elapsed / tw.opts.Duration
		if progress >= 1 {
			*tw.target = tw.to
			tw.done = true
			finished = append(finished, tw)
			continue
		}
		*tw.target = tw.from + (tw.to-tw.from)*tw.opts.Ease(progress)
		running = append(running, tw)
	}
	for i := len(running); i < len(tr.tweens); i++ {
		tr.tweens[i] = nil
	}
	tr.tweens = running

	for _, tw := range finished {
		if tw.opts.OnComplete != nil {
			tw.opts.OnComplete()
		}
	}
}
