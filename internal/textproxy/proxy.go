// Package textproxy mirrors page text elements as GPU text meshes whose
// position, typography and reveal state follow the page.
package textproxy

import (
	"fmt"

	"scrollgl/internal/dom"
	"scrollgl/internal/fonts"
	"scrollgl/internal/scroll"
	"scrollgl/internal/tween"
	"scrollgl/internal/utils"
	"scrollgl/internal/viewport"
	"scrollgl/internal/visibility"
)

const (
	// RevealDuration is the length of both the show and hide animations, in seconds.
	RevealDuration = 1.8

	defaultFontSize = 16.0
)

// Anchor selects which point of the source box the mesh is pinned to.
type Anchor int

const (
	AnchorLeft Anchor = iota
	AnchorCenter
)

// Phase is the reveal state of a proxy.
type Phase int

const (
	Hidden Phase = iota
	Appearing
	Visible
	Disappearing
)

func (p Phase) String() string {
	switch p {
	case Hidden:
		return "hidden"
	case Appearing:
		return "appearing"
	case Visible:
		return "visible"
	case Disappearing:
		return "disappearing"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Deps are the collaborators every proxy shares.
type Deps struct {
	DOM      dom.DOM
	Viewport *viewport.State
	Scroll   scroll.Source
	Fonts    fonts.Map
	Scene    Scene
	Track    *tween.Track
	Gate     *visibility.Gate
}

type options struct {
	anchor        Anchor
	exitAnimation bool
}

type Option func(*options)

// WithAnchor picks left-edge or centre anchoring. The default is AnchorLeft.
func WithAnchor(anchor Anchor) Option {
	return func(o *options) { o.anchor = anchor }
}

// WithExitAnimation enables Hide when the element leaves the viewport. When
// disabled, text stays revealed for good once it has been shown.
func WithExitAnimation(enabled bool) Option {
	return func(o *options) { o.exitAnimation = enabled }
}

// Proxy is the GPU stand-in for one page element.
type Proxy struct {
	deps Deps
	node dom.Node
	opts options

	style         dom.Style
	originalColor string
	bounds        dom.Rect
	y             float64
	isFixed       bool

	mesh      *Mesh
	isVisible bool
	phase     Phase

	stopObserving func()
}

// New builds the mesh for node, adds it to the scene, hides the source text
// and starts observing visibility.
func New(node dom.Node, deps Deps, opts ...Option) *Proxy {
	o := options{anchor: AnchorLeft, exitAnimation: true}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Proxy{deps: deps, node: node, opts: o}
	p.style = deps.DOM.ComputedStyle(node)
	p.originalColor = p.style.Color

	p.createBounds()
	p.createMesh()
	p.setStaticValues()

	deps.Scene.Add(p.mesh)
	deps.DOM.SetTextColor(node, "transparent")

	if deps.Gate != nil {
		p.stopObserving = deps.Gate.Observe(target{p}, p.onEnter)
	}
	return p
}

func (p *Proxy) createBounds() {
	rect, ok := p.deps.DOM.BoundingClientRect(p.node)
	if !ok {
		utils.Warn("TextProxy: %s has no layout, keeping previous bounds", p.node.ID())
		return
	}

	p.bounds = rect
	p.isFixed = p.deps.DOM.IsFixed(p.node)
	p.y = rect.Top
	if !p.isFixed {
		p.y += p.deps.Scroll.CurrentOffset()
	}
}

func (p *Proxy) createMesh() {
	color, _, ok := dom.ParseColor(p.style.Color)
	if !ok {
		utils.Debug("TextProxy: %s has unparsable color %q", p.node.ID(), p.style.Color)
	}

	anchorX := 0.0
	if p.opts.anchor == AnchorCenter {
		anchorX = 0.5
	}

	p.mesh = &Mesh{
		Text:    p.deps.DOM.InnerText(p.node),
		Font:    p.deps.Fonts.Resolve(p.style.FontWeight),
		AnchorX: anchorX,
		AnchorY: 0.5,
		Material: Material{
			Progress: 0,
			Height:   p.bounds.Height,
			Color:    color,
		},
	}
}

// setStaticValues copies the typographic values that only change on resize.
func (p *Proxy) setStaticValues() {
	fontSize, ok := parseCSSFloat(p.style.FontSize)
	if !ok || fontSize <= 0 {
		utils.Debug("TextProxy: %s has unusable font-size %q", p.node.ID(), p.style.FontSize)
		fontSize = defaultFontSize
	}

	m := p.mesh
	before := [4]float64{m.FontSize, m.LetterSpacing, m.LineHeight, m.MaxWidth}
	beforeText := m.TextAlign + "|" + m.WhiteSpace

	m.FontSize = fontSize
	m.TextAlign = p.style.TextAlign
	m.LetterSpacing = emRatio(p.style.LetterSpacing, fontSize, 0)
	m.LineHeight = emRatio(p.style.LineHeight, fontSize, 1)
	m.MaxWidth = p.bounds.Width
	m.WhiteSpace = p.style.WhiteSpace

	after := [4]float64{m.FontSize, m.LetterSpacing, m.LineHeight, m.MaxWidth}
	if before != after || beforeText != m.TextAlign+"|"+m.WhiteSpace {
		m.Version++
	}
}

// OnResize re-reads style and layout. Calling it repeatedly with an unchanged
// page leaves the proxy untouched.
func (p *Proxy) OnResize() {
	p.style = p.deps.DOM.ComputedStyle(p.node)
	p.createBounds()
	p.setStaticValues()
	p.mesh.Material.Height = p.bounds.Height
}

// Update positions the mesh for the current scroll offset. It never panics;
// a failure is logged and the frame continues.
func (p *Proxy) Update() {
	defer func() {
		if r := recover(); r != nil {
			utils.Error("TextProxy: update of %s failed: %v", p.node.ID(), r)
		}
	}()

	if !p.isVisible {
		return
	}

	vp := p.deps.Viewport
	p.mesh.X, p.mesh.Y = MeshPosition(p.y, p.deps.Scroll.CurrentOffset(), vp.ScreenWidth, vp.ScreenHeight, p.bounds, p.isFixed, p.opts.anchor)
}

// MeshPosition converts a document-space box into scene coordinates.
// Fixed elements keep their viewport-space y and ignore the scroll offset.
func MeshPosition(documentY, scrollOffset, screenWidth, screenHeight float64, bounds dom.Rect, fixed bool, anchor Anchor) (x, y float64) {
	viewportY := documentY
	if !fixed {
		viewportY -= scrollOffset
	}
	y = -viewportY + screenHeight/2 - bounds.Height/2

	left := bounds.Left
	if anchor == AnchorCenter {
		left += bounds.Width / 2
	}
	x = left - screenWidth/2
	return x, y
}

// Show starts the reveal. It only acts from Hidden or Disappearing.
func (p *Proxy) Show() {
	if p.phase == Appearing || p.phase == Visible {
		return
	}
	p.isVisible = true
	p.phase = Appearing
	p.deps.Track.Animate(&p.mesh.Material.Progress, 1, tween.Options{
		Duration: RevealDuration,
		Ease:     tween.EaseOutQuart,
		OnComplete: func() {
			p.phase = Visible
		},
	})
}

// Hide fades the text out. Without exit animation it does nothing.
func (p *Proxy) Hide() {
	if !p.opts.exitAnimation || p.phase == Hidden || p.phase == Disappearing {
		return
	}
	p.phase = Disappearing
	p.deps.Track.Animate(&p.mesh.Material.Progress, 0, tween.Options{
		Duration: RevealDuration,
		Ease:     tween.Linear,
		OnComplete: func() {
			p.isVisible = false
			p.phase = Hidden
		},
	})
}

func (p *Proxy) onEnter() func() {
	p.Show()
	if p.opts.exitAnimation {
		return p.Hide
	}
	return nil
}

// Destroy stops observing, removes the mesh and restores the source colour.
func (p *Proxy) Destroy() {
	if p.stopObserving != nil {
		p.stopObserving()
		p.stopObserving = nil
	}
	p.deps.Track.Cancel(&p.mesh.Material.Progress)
	p.deps.Scene.Remove(p.mesh)
	p.deps.DOM.SetTextColor(p.node, p.originalColor)
	p.isVisible = false
	p.phase = Hidden
}

func (p *Proxy) Mesh() *Mesh        { return p.mesh }
func (p *Proxy) Node() dom.Node     { return p.node }
func (p *Proxy) Phase() Phase       { return p.phase }
func (p *Proxy) IsVisible() bool    { return p.isVisible }
func (p *Proxy) IsFixed() bool      { return p.isFixed }
func (p *Proxy) Bounds() dom.Rect   { return p.bounds }
func (p *Proxy) DocumentY() float64 { return p.y }

// target adapts a proxy's source element to the visibility gate.
type target struct{ p *Proxy }

func (t target) ViewportRect() (visibility.Rect, bool) {
	r, ok := t.p.deps.DOM.BoundingClientRect(t.p.node)
	if !ok {
		return visibility.Rect{}, false
	}
	return visibility.Rect{Left: r.Left, Top: r.Top, Width: r.Width, Height: r.Height}, true
}
