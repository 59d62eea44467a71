// Package visibility reports when observed targets enter and leave the
// viewport, in the style of an intersection observer polled once per frame.
package visibility

// Rect is a viewport-space rectangle in pixels.
type Rect struct {
	Left, Top, Width, Height float64
}

func (r Rect) Bottom() float64 { return r.Top + r.Height }
func (r Rect) Right() float64  { return r.Left + r.Width }

// Intersects reports whether r and o overlap by a positive area. Rects that
// only touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right() && r.Right() > o.Left &&
		r.Top < o.Bottom() && r.Bottom() > o.Top
}

// Target yields the current viewport-space rectangle of an observed element.
type Target interface {
	ViewportRect() (Rect, bool)
}

// EnterFunc runs when a target enters the viewport. A non-nil return value is
// called once the target leaves again.
type EnterFunc func() (onLeave func())

// Viewport yields the visible area, normally (0, 0, screenWidth, screenHeight).
type Viewport func() Rect

type observation struct {
	target  Target
	onEnter EnterFunc
	onLeave func()
	inView  bool
	stopped bool
}

// Gate polls its observations on Check.
type Gate struct {
	viewport     Viewport
	observations []*observation
}

func NewGate(viewport Viewport) *Gate {
	return &Gate{viewport: viewport}
}

// Observe registers target and returns a function that stops observing it.
func (g *Gate) Observe(target Target, onEnter EnterFunc) (stop func()) {
	obs := &observation{target: target, onEnter: onEnter}
	g.observations = append(g.observations, obs)

	return func() {
		if obs.stopped {
			return
		}
		obs.stopped = true
		for i, o := range g.observations {
			if o == obs {
				g.observations = append(g.observations[:i], g.observations[i+1:]...)
				break
			}
		}
	}
}

// Len is the number of live observations.
func (g *Gate) Len() int { return len(g.observations) }

// Check compares every target against the viewport and fires enter or leave
// callbacks on transitions. Targets that cannot be measured are skipped.
func (g *Gate) Check() {
	view := g.viewport()

	for _, obs := range append([]*observation(nil), g.observations...) {
		if obs.stopped {
			continue
		}
		rect, ok := obs.target.ViewportRect()
		if !ok {
			continue
		}

		visible := rect.Intersects(view)
		switch {
		case visible && !obs.inView:
			obs.inView = true
			obs.onLeave = obs.onEnter()
		case !visible && obs.inView:
			obs.inView = false
			if obs.onLeave != nil {
				leave := obs.onLeave
				obs.onLeave = nil
				leave()
			}
		}
	}
}
