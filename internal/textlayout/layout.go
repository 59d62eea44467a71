// Package textlayout breaks styled text into positioned lines. The page layer
// and the GPU text meshes share it so both wrap at the same points.
package textlayout

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
)

// Measurer reports the advance width of s in pixels, without letter spacing.
type Measurer interface {
	Advance(s string) float64
}

type faceMeasurer struct {
	face font.Face
}

// FaceMeasurer measures with an x/image font face.
func FaceMeasurer(face font.Face) Measurer {
	return faceMeasurer{face: face}
}

func (m faceMeasurer) Advance(s string) float64 {
	if m.face == nil {
		return 0
	}
	return float64(font.MeasureString(m.face, s)) / 64
}

// Params are the typographic inputs of a layout. LetterSpacing and LineHeight
// are in em, relative to FontSize.
type Params struct {
	FontSize      float64
	LetterSpacing float64
	LineHeight    float64
	MaxWidth      float64 // 0 disables wrapping by width
	WhiteSpace    string
	TextAlign     string
}

type Line struct {
	Text  string
	X     float64 // offset from the box's left edge
	Y     float64 // top of the line from the box's top edge
	Width float64
}

type Layout struct {
	Lines  []Line
	Width  float64
	Height float64
}

// Collapse applies white-space processing the way rendered text is produced.
func Collapse(text, whiteSpace string) string {
	switch whiteSpace {
	case "pre", "pre-wrap", "break-spaces":
		return strings.ReplaceAll(text, "\r\n", "\n")
	case "pre-line":
		lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
		for i, l := range lines {
			lines[i] = strings.Join(strings.Fields(l), " ")
		}
		return strings.Join(lines, "\n")
	default:
		return strings.Join(strings.Fields(text), " ")
	}
}

func wraps(whiteSpace string) bool {
	return whiteSpace != "nowrap" && whiteSpace != "pre"
}

// Lay lays text out into lines.
func Lay(text string, m Measurer, p Params) Layout {
	if p.FontSize <= 0 {
		p.FontSize = 16
	}
	if p.LineHeight <= 0 {
		p.LineHeight = 1
	}
	spacing := p.LetterSpacing * p.FontSize
	lineHeight := p.LineHeight * p.FontSize

	width := func(s string) float64 {
		return m.Advance(s) + spacing*float64(utf8.RuneCountInString(s))
	}

	collapsed := Collapse(text, p.WhiteSpace)
	if collapsed == "" {
		return Layout{}
	}

	var rows []string
	for _, paragraph := range strings.Split(collapsed, "\n") {
		if !wraps(p.WhiteSpace) || p.MaxWidth <= 0 {
			rows = append(rows, paragraph)
			continue
		}
		rows = append(rows, wrap(paragraph, p.MaxWidth, width)...)
	}

	out := Layout{Lines: make([]Line, 0, len(rows))}
	for i, row := range rows {
		w := width(row)
		out.Lines = append(out.Lines, Line{Text: row, Y: float64(i) * lineHeight, Width: w})
		if w > out.Width {
			out.Width = w
		}
	}
	out.Height = float64(len(rows)) * lineHeight

	box := p.MaxWidth
	if box <= 0 {
		box = out.Width
	}
	for i := range out.Lines {
		out.Lines[i].X = alignOffset(p.TextAlign, box, out.Lines[i].Width)
	}
	return out
}

func alignOffset(align string, box, w float64) float64 {
	switch align {
	case "center":
		return (box - w) / 2
	case "right", "end":
		return box - w
	}
	return 0
}

// wrap greedily fills lines up to maxWidth. A word wider than maxWidth gets
// a line of its own rather than being broken.
func wrap(paragraph string, maxWidth float64, width func(string) float64) []string {
	words := strings.Split(paragraph, " ")
	var rows []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && width(candidate) > maxWidth {
			rows = append(rows, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(rows, current)
}
