// Package fonts maps CSS font weights to font resources and loads them.
package fonts

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultWeight is the bucket used for any weight the map does not name.
const DefaultWeight = "400"

// Weights are the nine numeric CSS weight buckets.
var Weights = []string{"100", "200", "300", "400", "500", "600", "700", "800", "900"}

// Embedded resources served from golang.org/x/image/font/gofont.
const (
	GoRegular = "gofont:regular"
	GoMedium  = "gofont:medium"
	GoBold    = "gofont:bold"
)

// Map is weight -> resource path. Resources are file paths relative to the
// assets directory or one of the gofont: names.
type Map map[string]string

// DefaultMap covers every bucket with the embedded Go fonts.
func DefaultMap() Map {
	return Map{
		"900": GoBold,
		"800": GoBold,
		"700": GoBold,
		"600": GoMedium,
		"500": GoMedium,
		"400": GoRegular,
		"300": GoRegular,
		"200": GoRegular,
		"100": GoRegular,
	}
}

// Resolve returns the resource for a computed font-weight. Keywords are
// normalised first; anything unmapped falls back to the DefaultWeight entry.
func (m Map) Resolve(weight string) string {
	if path, ok := m[NormalizeWeight(weight)]; ok && path != "" {
		return path
	}
	return m[DefaultWeight]
}

// Validate checks the default entry exists.
func (m Map) Validate() error {
	if m[DefaultWeight] == "" {
		return fmt.Errorf("font map has no default entry for weight %s", DefaultWeight)
	}
	return nil
}

// Resources lists the distinct resources of the map in weight order.
func (m Map) Resources() []string {
	seen := make(map[string]bool, len(m))
	var out []string
	add := func(path string) {
		if path != "" && !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}
	for _, w := range Weights {
		add(m[w])
	}
	for w, path := range m {
		if !isBucket(w) {
			add(path)
		}
	}
	return out
}

// NormalizeWeight turns "bold"/"normal" and numeric strings such as "700.0"
// into the string form used as a map key. Unknown input is returned trimmed.
func NormalizeWeight(weight string) string {
	w := strings.ToLower(strings.TrimSpace(weight))
	switch w {
	case "normal":
		return "400"
	case "bold":
		return "700"
	}
	if f, err := strconv.ParseFloat(w, 64); err == nil && f == float64(int(f)) {
		return strconv.Itoa(int(f))
	}
	return w
}

func isBucket(w string) bool {
	for _, b := range Weights {
		if b == w {
			return true
		}
	}
	return false
}
