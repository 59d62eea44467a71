package render

import (
	"math"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scrollgl/internal/dom"
	"scrollgl/internal/page"
	"scrollgl/internal/particle"
)

// PageLayer draws what the browser would: the page background, every block
// whose text is not transparent, and the falling glyphs.
type PageLayer struct {
	page      *page.Page
	fonts     *FontCache
	particles *particle.System
}

func NewPageLayer(p *page.Page, fc *FontCache, particles *particle.System) *PageLayer {
	return &PageLayer{page: p, fonts: fc, particles: particles}
}

func (l *PageLayer) Clear() {
	rl.ClearBackground(rgbColor(l.page.Background(), 1))
}

// Draw paints the blocks and particles in window pixels.
func (l *PageLayer) Draw(screenWidth, screenHeight float64) {
	for _, b := range l.page.Blocks() {
		l.drawBlock(b, screenHeight)
	}
	if l.particles != nil {
		l.drawParticles()
	}
}

func (l *PageLayer) drawBlock(b *page.Block, screenHeight float64) {
	layout := b.TextLayout()
	if len(layout.Lines) == 0 {
		return
	}
	style := b.Computed()
	color, alpha, ok := dom.ParseColor(style.Color)
	if !ok || alpha <= 0 {
		return
	}

	r, ok := l.page.BoundingClientRect(b)
	if !ok || r.Top > screenHeight || r.Top+r.Height < 0 {
		return
	}

	size := cssPixels(style.FontSize, 16)
	spacing := cssPixels(style.LetterSpacing, 0)
	lineBox := layout.Height / float64(len(layout.Lines))
	font := l.fonts.Get(b.Font(), size)
	tint := rgbColor(color, alpha)

	for _, line := range layout.Lines {
		pos := rl.NewVector2(float32(r.Left+line.X), float32(r.Top+line.Y+(lineBox-size)/2))
		rl.DrawTextEx(font, line.Text, pos, float32(size), float32(spacing), tint)
	}
}

func (l *PageLayer) drawParticles() {
	fg := rl.NewColor(128, 128, 128, 200)
	if c, a, ok := dom.ParseColor(l.page.Document().Style["color"]); ok {
		fg = rgbColor(c, a*0.8)
	}

	glyph := l.particles.Glyph()
	for _, p := range l.particles.Particles {
		font := l.fonts.Get(l.fonts.Default(), p.Size)
		half := float32(p.Size / 2)
		rl.DrawTextPro(font, glyph,
			rl.NewVector2(float32(p.Position.X), float32(p.Position.Y)),
			rl.NewVector2(half, half),
			float32(p.Rotation*180/math.Pi),
			float32(p.Size), 0, fg)
	}
}

// Colliders reports the viewport rects of blocks marked data-collider.
func Colliders(p *page.Page) particle.Colliders {
	blocks := p.QueryAll("data-collider", "true")
	return func() []particle.Rect {
		out := make([]particle.Rect, 0, len(blocks))
		for _, b := range blocks {
			if r, ok := p.BoundingClientRect(b); ok {
				out = append(out, particle.Rect{Left: r.Left, Top: r.Top, Width: r.Width, Height: r.Height})
			}
		}
		return out
	}
}

func cssPixels(v string, fallback float64) float64 {
	n, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return fallback
	}
	return n
}

func rgbColor(c dom.RGB, alpha float64) rl.Color {
	return rl.NewColor(to8(c.R), to8(c.G), to8(c.B), to8(alpha))
}
