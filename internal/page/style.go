package page

import (
	"strconv"
	"strings"

	"scrollgl/internal/dom"
	"scrollgl/internal/fonts"
)

const rootFontSize = 16.0

var inherited = []string{"color", "font-size", "font-weight", "letter-spacing", "line-height", "text-align", "white-space"}

var initial = map[string]string{
	"color":          "rgb(0, 0, 0)",
	"font-size":      "16px",
	"font-weight":    "400",
	"letter-spacing": "normal",
	"line-height":    "normal",
	"text-align":     "left",
	"white-space":    "normal",
	"position":       "static",
}

// resolved is a block's cascaded style with lengths already in pixels.
type resolved struct {
	props    map[string]string
	fontSize float64
}

// cascade merges the parent's inherited properties, the block's declared
// style and any inline overrides, then computes the values dom.Style reports.
func cascade(parent *resolved, declared, inline map[string]string) *resolved {
	props := make(map[string]string, len(initial))
	for k, v := range initial {
		props[k] = v
	}
	parentSize := rootFontSize
	if parent != nil {
		for _, k := range inherited {
			props[k] = parent.props[k]
		}
		parentSize = parent.fontSize
	}
	for k, v := range declared {
		props[strings.ToLower(k)] = strings.TrimSpace(v)
	}
	for k, v := range inline {
		props[k] = v
	}

	r := &resolved{props: props}

	r.fontSize = parentSize
	if size, ok := parseLength(props["font-size"], parentSize, parentSize); ok && size > 0 {
		r.fontSize = size
	}
	props["font-size"] = px(r.fontSize)

	props["font-weight"] = fonts.NormalizeWeight(props["font-weight"])

	if ls := props["letter-spacing"]; ls != "normal" {
		if v, ok := parseLength(ls, r.fontSize, r.fontSize); ok {
			props["letter-spacing"] = px(v)
		} else {
			props["letter-spacing"] = "normal"
		}
	}

	if lh := props["line-height"]; lh != "normal" {
		if n, err := strconv.ParseFloat(lh, 64); err == nil {
			props["line-height"] = px(n * r.fontSize)
		} else if v, ok := parseLength(lh, r.fontSize, r.fontSize); ok {
			props["line-height"] = px(v)
		} else {
			props["line-height"] = "normal"
		}
	}

	if c, alpha, ok := dom.ParseColor(props["color"]); ok {
		if alpha == 0 {
			props["color"] = "rgba(0, 0, 0, 0)"
		} else {
			props["color"] = c.CSS()
		}
	} else if parent != nil {
		props["color"] = parent.props["color"]
	} else {
		props["color"] = initial["color"]
	}

	return r
}

func (r *resolved) style() dom.Style {
	return dom.Style{
		FontSize:      r.props["font-size"],
		FontWeight:    r.props["font-weight"],
		LetterSpacing: r.props["letter-spacing"],
		LineHeight:    r.props["line-height"],
		Color:         r.props["color"],
		TextAlign:     r.props["text-align"],
		WhiteSpace:    r.props["white-space"],
		Position:      r.props["position"],
	}
}

// length resolves a non-inherited length property against percentBase.
func (r *resolved) length(name string, percentBase float64) (float64, bool) {
	v, ok := r.props[name]
	if !ok {
		return 0, false
	}
	return parseLength(v, r.fontSize, percentBase)
}

// parseLength understands px, em, rem, % and a bare 0.
func parseLength(v string, fontSize, percentBase float64) (float64, bool) {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" || v == "auto" || v == "normal" {
		return 0, false
	}

	unit := ""
	for _, suffix := range []string{"rem", "px", "em", "%"} {
		if strings.HasSuffix(v, suffix) {
			unit = suffix
			v = strings.TrimSuffix(v, suffix)
			break
		}
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}

	switch unit {
	case "px":
		return n, true
	case "em":
		return n * fontSize, true
	case "rem":
		return n * rootFontSize, true
	case "%":
		return n / 100 * percentBase, true
	}
	// bare numbers only make sense for zero
	return n, n == 0
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
