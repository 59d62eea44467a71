package textproxy

import (
	"math"
	"testing"

	"scrollgl/internal/dom"
	"scrollgl/internal/fonts"
	"scrollgl/internal/tween"
	"scrollgl/internal/viewport"
	"scrollgl/internal/visibility"
)

type node string

func (n node) ID() string { return string(n) }

type element struct {
	style dom.Style
	rect  dom.Rect // document space
	text  string
	fixed bool
	color string
}

type fakeDOM struct {
	scroll   float64
	elements map[string]*element
}

func (d *fakeDOM) el(n dom.Node) *element { return d.elements[n.ID()] }

func (d *fakeDOM) ComputedStyle(n dom.Node) dom.Style {
	e := d.el(n)
	s := e.style
	if e.color != "" {
		s.Color = e.color
	}
	return s
}

func (d *fakeDOM) BoundingClientRect(n dom.Node) (dom.Rect, bool) {
	e := d.el(n)
	if e == nil {
		return dom.Rect{}, false
	}
	r := e.rect
	if !e.fixed {
		r.Top -= d.scroll
	}
	return r, true
}

func (d *fakeDOM) InnerText(n dom.Node) string { return d.el(n).text }
func (d *fakeDOM) IsFixed(n dom.Node) bool     { return d.el(n).fixed }

func (d *fakeDOM) SetTextColor(n dom.Node, color string) {
	d.el(n).color = color
}

type fakeScroll struct{ offset float64 }

func (s *fakeScroll) CurrentOffset() float64   { return s.offset }
func (s *fakeScroll) CurrentVelocity() float64 { return 0 }

type fakeDisplay struct{ w, h float64 }

func (d fakeDisplay) ScreenSize() (float64, float64) { return d.w, d.h }
func (d fakeDisplay) DevicePixelRatio() float64      { return 1 }

type harness struct {
	dom    *fakeDOM
	scroll *fakeScroll
	view   *viewport.State
	scene  *MeshScene
	track  *tween.Track
	gate   *visibility.Gate
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		dom: &fakeDOM{elements: map[string]*element{
			"title": {
				style: dom.Style{
					FontSize:      "20px",
					FontWeight:    "700",
					LetterSpacing: "4px",
					LineHeight:    "normal",
					Color:         "rgb(255, 0, 0)",
					TextAlign:     "start",
					WhiteSpace:    "normal",
				},
				rect: dom.Rect{Left: 500, Top: 120, Width: 800, Height: 40},
				text: "Hello",
			},
		}},
		scroll: &fakeScroll{},
		scene:  &MeshScene{},
		track:  tween.NewTrack(),
	}
	h.view = viewport.New(fakeDisplay{w: 1280, h: 800})
	h.view.Init()
	h.gate = visibility.NewGate(func() visibility.Rect {
		return visibility.Rect{Width: h.view.ScreenWidth, Height: h.view.ScreenHeight}
	})
	return h
}

func (h *harness) deps() Deps {
	return Deps{
		DOM:      h.dom,
		Viewport: h.view,
		Scroll:   h.scroll,
		Fonts:    fonts.DefaultMap(),
		Scene:    h.scene,
		Track:    h.track,
		Gate:     h.gate,
	}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNewBuildsMesh(t *testing.T) {
	h := newHarness(t)
	p := New(node("title"), h.deps())
	m := p.Mesh()

	if m.Text != "Hello" || m.Font != fonts.GoBold {
		t.Fatalf("text/font = %q/%q", m.Text, m.Font)
	}
	if !approx(m.LetterSpacing, 0.2) {
		t.Errorf("letter spacing = %v, want 0.2", m.LetterSpacing)
	}
	if m.LineHeight != 1 {
		t.Errorf("line height = %v, want fallback 1", m.LineHeight)
	}
	if m.FontSize != 20 || m.MaxWidth != 800 || m.Material.Height != 40 {
		t.Errorf("static values = %+v", m)
	}
	if m.Material.Color != (dom.RGB{R: 1}) {
		t.Errorf("color = %+v", m.Material.Color)
	}
	if m.Material.Progress != 0 || p.Phase() != Hidden || p.IsVisible() {
		t.Error("new proxy should start hidden")
	}
	if len(h.scene.Meshes()) != 1 {
		t.Error("mesh not added to scene")
	}
	if h.dom.elements["title"].color != "transparent" {
		t.Error("source text not hidden")
	}
	if h.gate.Len() != 1 {
		t.Error("proxy not observed")
	}
}

func TestEmRatioFallbacks(t *testing.T) {
	tests := []struct {
		value    string
		size     float64
		fallback float64
		want     float64
	}{
		{"4px", 20, 0, 0.2},
		{"normal", 20, 0, 0},
		{"normal", 20, 1, 1},
		{"0px", 20, 1, 1},
		{"30px", 20, 1, 1.5},
		{"-2px", 64, 0, -2.0 / 64},
		{"10px", 0, 1, 1},
	}
	for _, tt := range tests {
		if got := emRatio(tt.value, tt.size, tt.fallback); !approx(got, tt.want) {
			t.Errorf("emRatio(%q, %v, %v) = %v, want %v", tt.value, tt.size, tt.fallback, got, tt.want)
		}
	}
}

func TestParseCSSFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"20px", 20, true},
		{"57.6px", 57.6, true},
		{"-0.5em", -0.5, true},
		{".5", 0.5, true},
		{"1e2px", 100, true},
		{"2em", 2, true},
		{"normal", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseCSSFloat(tt.in)
		if ok != tt.ok || !approx(got, tt.want) {
			t.Errorf("parseCSSFloat(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMeshPosition(t *testing.T) {
	b := dom.Rect{Left: 500, Top: 120, Width: 800, Height: 40}

	x, y := MeshPosition(120, 0, 1280, 800, b, false, AnchorLeft)
	if x != -140 || y != 260 {
		t.Errorf("left anchor = (%v, %v), want (-140, 260)", x, y)
	}

	x, _ = MeshPosition(120, 0, 1280, 800, b, false, AnchorCenter)
	if x != 260 {
		t.Errorf("center anchor x = %v, want 260", x)
	}

	// An element scrolled to the vertical centre sits on y = 0.
	_, y = MeshPosition(500, 500-(800/2-40/2), 1280, 800, b, false, AnchorLeft)
	if y != 0 {
		t.Errorf("centred y = %v, want 0", y)
	}

	// Fixed elements ignore scroll.
	_, y1 := MeshPosition(10, 0, 1280, 800, b, true, AnchorLeft)
	_, y2 := MeshPosition(10, 900, 1280, 800, b, true, AnchorLeft)
	if y1 != y2 {
		t.Errorf("fixed element moved with scroll: %v vs %v", y1, y2)
	}
}

func TestUpdateFollowsScroll(t *testing.T) {
	h := newHarness(t)
	p := New(node("title"), h.deps())

	p.Update()
	if p.Mesh().X != 0 || p.Mesh().Y != 0 {
		t.Fatal("hidden proxy should not be positioned")
	}

	p.Show()
	p.Update()
	y0 := p.Mesh().Y

	h.scroll.offset = 100
	h.dom.scroll = 100
	p.Update()
	if got := p.Mesh().Y - y0; got != 100 {
		t.Errorf("mesh moved %v for 100px of scroll, want 100", got)
	}
}

func TestFixedElementIgnoresScroll(t *testing.T) {
	h := newHarness(t)
	h.dom.elements["nav"] = &element{
		style: h.dom.elements["title"].style,
		rect:  dom.Rect{Left: 20, Top: 10, Width: 200, Height: 30},
		text:  "Menu",
		fixed: true,
	}
	h.scroll.offset = 300
	h.dom.scroll = 300

	p := New(node("nav"), h.deps())
	if !p.IsFixed() || p.DocumentY() != 10 {
		t.Fatalf("fixed = %v, document y = %v; want true, 10", p.IsFixed(), p.DocumentY())
	}

	p.Show()
	p.Update()
	x0, y0 := p.Mesh().X, p.Mesh().Y
	if x0 != -620 || y0 != 375 {
		t.Fatalf("mesh at (%v, %v), want (-620, 375)", x0, y0)
	}

	h.scroll.offset = 900
	h.dom.scroll = 900
	p.Update()
	if p.Mesh().X != x0 || p.Mesh().Y != y0 {
		t.Errorf("fixed mesh moved to (%v, %v) after scrolling", p.Mesh().X, p.Mesh().Y)
	}

	p.OnResize()
	if p.DocumentY() != 10 {
		t.Errorf("document y after resize = %v, want 10", p.DocumentY())
	}
	p.Update()
	if p.Mesh().Y != y0 {
		t.Errorf("mesh y after resize = %v, want %v", p.Mesh().Y, y0)
	}
}

func TestDocumentYIncludesScrollAtConstruction(t *testing.T) {
	h := newHarness(t)
	h.scroll.offset = 300
	h.dom.scroll = 300

	p := New(node("title"), h.deps())
	if p.DocumentY() != 120 {
		t.Errorf("document y = %v, want 120", p.DocumentY())
	}
}

func TestShowHideStateMachine(t *testing.T) {
	h := newHarness(t)
	p := New(node("title"), h.deps(), WithExitAnimation(true))
	progress := &p.Mesh().Material.Progress

	p.Show()
	if p.Phase() != Appearing || !p.IsVisible() {
		t.Fatalf("phase after show = %v", p.Phase())
	}
	h.track.Advance(0.9)
	mid := *progress
	if mid <= 0 || mid >= 1 {
		t.Fatalf("progress mid-reveal = %v", mid)
	}

	// Hide before the reveal finishes: the show tween is replaced and its
	// completion never fires.
	p.Hide()
	if p.Phase() != Disappearing {
		t.Fatalf("phase after hide = %v", p.Phase())
	}
	for i := 0; i < 200; i++ {
		h.track.Advance(1.0 / 60)
	}
	if *progress != 0 || p.Phase() != Hidden || p.IsVisible() {
		t.Errorf("after hide: progress=%v phase=%v visible=%v", *progress, p.Phase(), p.IsVisible())
	}

	p.Show()
	for i := 0; i < 200; i++ {
		h.track.Advance(1.0 / 60)
	}
	if *progress != 1 || p.Phase() != Visible {
		t.Errorf("after show: progress=%v phase=%v", *progress, p.Phase())
	}
}

func TestHideWithoutExitAnimation(t *testing.T) {
	h := newHarness(t)
	p := New(node("title"), h.deps(), WithExitAnimation(false))

	p.Show()
	h.track.Advance(RevealDuration)
	p.Hide()
	if p.Phase() != Visible || p.Mesh().Material.Progress != 1 {
		t.Errorf("hide should be ignored, phase=%v", p.Phase())
	}
}

func TestGateDrivesReveal(t *testing.T) {
	h := newHarness(t)
	h.dom.elements["far"] = &element{
		style: dom.Style{FontSize: "16px", Color: "#000"},
		rect:  dom.Rect{Left: 0, Top: 2000, Width: 100, Height: 20},
		text:  "Below",
	}
	p := New(node("far"), h.deps())

	h.gate.Check()
	if p.Phase() != Hidden {
		t.Fatal("offscreen element revealed")
	}

	h.scroll.offset = 1500
	h.dom.scroll = 1500
	h.gate.Check()
	if p.Phase() != Appearing {
		t.Fatalf("phase in view = %v", p.Phase())
	}

	h.scroll.offset = 0
	h.dom.scroll = 0
	h.gate.Check()
	if p.Phase() != Disappearing {
		t.Fatalf("phase out of view = %v", p.Phase())
	}
}

func TestOnResizeIdempotent(t *testing.T) {
	h := newHarness(t)
	p := New(node("title"), h.deps())

	p.OnResize()
	first := *p.Mesh()
	bounds := p.Bounds()
	p.OnResize()
	p.OnResize()
	if *p.Mesh() != first || p.Bounds() != bounds {
		t.Error("repeated resize changed the proxy")
	}

	h.dom.elements["title"].rect.Width = 600
	h.dom.elements["title"].rect.Height = 80
	p.OnResize()
	m := p.Mesh()
	if m.MaxWidth != 600 || m.Material.Height != 80 || m.Version == first.Version {
		t.Errorf("resize not applied: %+v", m)
	}
}

func TestOnResizeKeepsColor(t *testing.T) {
	h := newHarness(t)
	p := New(node("title"), h.deps())

	// The source colour is now transparent; the mesh must keep its own.
	p.OnResize()
	if p.Mesh().Material.Color != (dom.RGB{R: 1}) {
		t.Errorf("color changed on resize: %+v", p.Mesh().Material.Color)
	}
}

func TestUnknownWeightFallsBack(t *testing.T) {
	h := newHarness(t)
	h.dom.elements["title"].style.FontWeight = "950"
	p := New(node("title"), h.deps())
	if p.Mesh().Font != fonts.GoRegular {
		t.Errorf("font = %q, want default", p.Mesh().Font)
	}
}

func TestDestroy(t *testing.T) {
	h := newHarness(t)
	s := NewSet([]dom.Node{node("title")}, h.deps())
	p := s.Proxies()[0]
	p.Show()

	s.Destroy()
	if len(h.scene.Meshes()) != 0 || h.gate.Len() != 0 || h.track.Len() != 0 {
		t.Error("destroy left state behind")
	}
	if h.dom.elements["title"].color != "rgb(255, 0, 0)" {
		t.Errorf("source color = %q", h.dom.elements["title"].color)
	}
	if s.Len() != 0 {
		t.Error("set not emptied")
	}
}

func TestEmptySet(t *testing.T) {
	h := newHarness(t)
	s := NewSet(nil, h.deps())
	s.Update()
	s.OnResize()
	if s.Len() != 0 || len(h.scene.Meshes()) != 0 {
		t.Error("empty set should be inert")
	}
}

func TestMeshOriginMatchesSourceBox(t *testing.T) {
	for _, anchor := range []Anchor{AnchorLeft, AnchorCenter} {
		h := newHarness(t)
		p := New(node("title"), h.deps(), WithAnchor(anchor))
		p.Show()
		p.Update()

		// The box's top-left at (500, 120) in the viewport is world
		// (500-640, 400-120) with y pointing up.
		x, y := p.Mesh().Origin()
		if x != -140 || y != 280 {
			t.Errorf("anchor %v: origin = (%v, %v), want (-140, 280)", anchor, x, y)
		}
	}
}
