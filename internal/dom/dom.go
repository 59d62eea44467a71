// Package dom is the narrow, read-mostly view of laid-out page elements that
// the overlay needs: computed style, bounding rectangles and rendered text.
package dom

// Node is an element handle.
type Node interface {
	ID() string
}

// Style holds computed values as CSS strings, e.g. FontSize "20px",
// LetterSpacing "normal" or "4px", Color "rgb(12, 12, 12)".
type Style struct {
	FontSize      string
	FontWeight    string
	LetterSpacing string
	LineHeight    string
	Color         string
	TextAlign     string
	WhiteSpace    string
	Position      string
}

// Rect is a viewport-space box in CSS pixels.
type Rect struct {
	Left, Top, Width, Height float64
}

// DOM is implemented by the page layer. Rect lookups report false for nodes
// that are no longer laid out.
type DOM interface {
	ComputedStyle(node Node) Style
	BoundingClientRect(node Node) (Rect, bool)
	InnerText(node Node) string
	// IsFixed reports whether the node or any ancestor is position: fixed.
	IsFixed(node Node) bool
	SetTextColor(node Node, color string)
}
