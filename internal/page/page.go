package page

import (
	"math"
	"strconv"
	"strings"

	"scrollgl/internal/dom"
	"scrollgl/internal/fonts"
	"scrollgl/internal/scroll"
	"scrollgl/internal/textlayout"
	"scrollgl/internal/utils"
)

const (
	defaultPadding = 48.0
	defaultGap     = 32.0
)

// Page is a laid-out Document. It implements dom.DOM; bounding rects are
// reported in viewport space using the scroll source's current offset.
type Page struct {
	doc    *Document
	fonts  *fonts.Library
	scroll scroll.Source

	width, height float64
	docHeight     float64
	ordered       []*Block
}

var _ dom.DOM = (*Page)(nil)

func New(doc *Document, lib *fonts.Library, src scroll.Source) *Page {
	p := &Page{doc: doc, fonts: lib, scroll: src}
	var walk func([]*Block)
	walk = func(blocks []*Block) {
		for _, b := range blocks {
			p.ordered = append(p.ordered, b)
			walk(b.Children)
		}
	}
	walk(doc.Blocks)
	return p
}

// Document returns the source document.
func (p *Page) Document() *Document { return p.doc }

// Blocks lists every block in document order.
func (p *Page) Blocks() []*Block { return p.ordered }

// QueryAll returns blocks whose attribute equals value, in document order.
func (p *Page) QueryAll(attr, value string) []*Block {
	var out []*Block
	for _, b := range p.ordered {
		if v, ok := b.Attributes[attr]; ok && v == value {
			out = append(out, b)
		}
	}
	return out
}

// Height is the document height produced by the last Layout.
func (p *Page) Height() float64 { return p.docHeight }

// ScrollLimit is the largest useful scroll offset for the current viewport.
func (p *Page) ScrollLimit() float64 { return math.Max(0, p.docHeight-p.height) }

// Background is the page clear colour.
func (p *Page) Background() dom.RGB {
	if c, _, ok := dom.ParseColor(p.doc.Background); ok {
		return c
	}
	return dom.RGB{R: 1, G: 1, B: 1}
}

func (p *Page) padding() float64 {
	if p.doc.Padding > 0 {
		return p.doc.Padding
	}
	return defaultPadding
}

func (p *Page) gap() float64 {
	if p.doc.Gap > 0 {
		return p.doc.Gap
	}
	return defaultGap
}

// Layout flows every block for a viewport of width x height.
func (p *Page) Layout(width, height float64) {
	p.width, p.height = width, height

	root := cascade(nil, p.doc.Style, nil)
	pad := p.padding()
	end := p.flow(p.doc.Blocks, root, pad, pad, width-2*pad, false)
	p.docHeight = end + pad
}

// flow lays out siblings starting at (x, y) and returns the bottom edge.
func (p *Page) flow(blocks []*Block, parent *resolved, x, y, width float64, inFixed bool) float64 {
	first := true
	for _, b := range blocks {
		style := cascade(parent, b.Style, b.inline)
		b.computed = style.style()

		if b.computed.Position == "fixed" {
			p.place(b, style)
			continue
		}

		if !first {
			y += p.gap()
		}
		first = false

		marginTop, _ := style.length("margin-top", width)
		marginLeft, _ := style.length("margin-left", width)
		marginRight, _ := style.length("margin-right", width)
		marginBottom, _ := style.length("margin-bottom", width)

		w := width - marginLeft - marginRight
		if declared, ok := style.length("width", width); ok && declared > 0 {
			w = math.Min(declared, w)
		}

		top := y + marginTop
		h := p.measure(b, style, x+marginLeft, top, w, inFixed)
		y = top + h + marginBottom
	}
	return y
}

// place positions a fixed block against the viewport.
func (p *Page) place(b *Block, style *resolved) {
	pad := p.padding()
	left := pad
	if v, ok := style.length("left", p.width); ok {
		left = v
	}
	top := pad
	if v, ok := style.length("top", p.height); ok {
		top = v
	}
	w := p.width - left - pad
	if declared, ok := style.length("width", p.width); ok && declared > 0 {
		w = declared
	}
	p.measure(b, style, left, top, w, true)
}

// measure sizes a block's box, laying out its text or its children.
func (p *Page) measure(b *Block, style *resolved, x, y, w float64, fixed bool) float64 {
	h := 0.0
	if len(b.Children) > 0 {
		h = p.flow(b.Children, style, x, y, w, fixed) - y
	}
	b.text = textlayout.Layout{}
	b.font = p.fonts.Map().Resolve(style.props["font-weight"])
	if text := strings.TrimSpace(b.Text); text != "" {
		b.text = p.typeset(b.Text, style, w)
		h = math.Max(h, b.text.Height)
	}
	if declared, ok := style.length("height", p.height); ok && declared > 0 {
		h = declared
	}

	b.rect = dom.Rect{Left: x, Top: y, Width: math.Max(0, w), Height: h}
	b.fixed = fixed
	b.laidOut = true
	return h
}

func (p *Page) typeset(text string, style *resolved, w float64) textlayout.Layout {
	resource := p.fonts.Map().Resolve(style.props["font-weight"])
	face := p.fonts.Face(resource, style.fontSize)

	params := textlayout.Params{
		FontSize:   style.fontSize,
		MaxWidth:   w,
		WhiteSpace: style.props["white-space"],
		TextAlign:  style.props["text-align"],
	}
	if v, ok := pxValue(style.props["letter-spacing"]); ok {
		params.LetterSpacing = v / style.fontSize
	}
	if v, ok := pxValue(style.props["line-height"]); ok {
		params.LineHeight = v / style.fontSize
	} else if face != nil {
		params.LineHeight = float64(face.Metrics().Height) / 64 / style.fontSize
	}
	return textlayout.Lay(text, textlayout.FaceMeasurer(face), params)
}

func pxValue(v string) (float64, bool) {
	if !strings.HasSuffix(v, "px") {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	return n, err == nil
}

func (p *Page) block(node dom.Node) (*Block, bool) {
	b, ok := node.(*Block)
	if !ok || b == nil {
		utils.Warn("Page: node %v is not a page block", node)
		return nil, false
	}
	return b, true
}

// ComputedStyle reports the style resolved by the last layout.
func (p *Page) ComputedStyle(node dom.Node) dom.Style {
	b, ok := p.block(node)
	if !ok {
		return cascade(nil, p.doc.Style, nil).style()
	}
	return b.computed
}

// BoundingClientRect is the block's box in viewport space.
func (p *Page) BoundingClientRect(node dom.Node) (dom.Rect, bool) {
	b, ok := p.block(node)
	if !ok || !b.laidOut {
		return dom.Rect{}, false
	}
	r := b.rect
	if !b.fixed && p.scroll != nil {
		r.Top -= p.scroll.CurrentOffset()
	}
	return r, true
}

// InnerText is the rendered text, with white-space processing applied.
func (p *Page) InnerText(node dom.Node) string {
	b, ok := p.block(node)
	if !ok {
		return ""
	}
	if len(b.Children) == 0 {
		return textlayout.Collapse(b.Text, b.computed.WhiteSpace)
	}
	parts := []string{}
	if t := textlayout.Collapse(b.Text, b.computed.WhiteSpace); t != "" {
		parts = append(parts, t)
	}
	for _, c := range b.Children {
		if t := p.InnerText(c); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// IsFixed walks the ancestors looking for position: fixed.
func (p *Page) IsFixed(node dom.Node) bool {
	b, ok := p.block(node)
	if !ok {
		return false
	}
	for ; b != nil; b = b.parent {
		if b.computed.Position == "fixed" {
			return true
		}
	}
	return false
}

// SetTextColor sets an inline color, applied immediately and on every relayout.
func (p *Page) SetTextColor(node dom.Node, color string) {
	b, ok := p.block(node)
	if !ok {
		return
	}
	if b.inline == nil {
		b.inline = map[string]string{}
	}
	b.inline["color"] = color

	if c, alpha, ok := dom.ParseColor(color); ok {
		if alpha == 0 {
			b.computed.Color = "rgba(0, 0, 0, 0)"
		} else {
			b.computed.Color = c.CSS()
		}
	}
}
