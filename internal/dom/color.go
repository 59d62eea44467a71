package dom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is a linear 0..1 colour triple.
type RGB struct {
	R, G, B float64
}

var namedColors = map[string]RGB{
	"black":   {0, 0, 0},
	"white":   {1, 1, 1},
	"red":     {1, 0, 0},
	"green":   {0, 128.0 / 255, 0},
	"blue":    {0, 0, 1},
	"gray":    {128.0 / 255, 128.0 / 255, 128.0 / 255},
	"grey":    {128.0 / 255, 128.0 / 255, 128.0 / 255},
	"silver":  {192.0 / 255, 192.0 / 255, 192.0 / 255},
	"yellow":  {1, 1, 0},
	"orange":  {1, 165.0 / 255, 0},
	"crimson": {220.0 / 255, 20.0 / 255, 60.0 / 255},
}

// ParseColor reads #rgb, #rrggbb, rgb(), rgba() and a few named colours.
// The second result is the alpha channel; ok is false for unparsable input.
func ParseColor(s string) (c RGB, alpha float64, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return RGB{}, 0, true
	}
	if named, found := namedColors[s]; found {
		return named, 1, true
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return RGB{}, 0, false
	}
	fn := s[:open]
	if fn != "rgb" && fn != "rgba" {
		return RGB{}, 0, false
	}

	parts := strings.FieldsFunc(s[open+1:len(s)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) != 3 && len(parts) != 4 {
		return RGB{}, 0, false
	}

	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := parseChannel(parts[i])
		if err != nil {
			return RGB{}, 0, false
		}
		ch[i] = v
	}

	alpha = 1
	if len(parts) == 4 {
		a, err := parseAlpha(parts[3])
		if err != nil {
			return RGB{}, 0, false
		}
		alpha = a
	}
	return RGB{ch[0], ch[1], ch[2]}, alpha, true
}

// CSS formats c as an rgb() string, the form computed styles use.
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", to255(c.R), to255(c.G), to255(c.B))
}

func parseHex(h string) (RGB, float64, bool) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return RGB{}, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return RGB{}, 0, false
	}
	alpha := 1.0
	if len(h) == 8 {
		alpha = float64(v&0xff) / 255
		v >>= 8
	}
	return RGB{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, alpha, true
}

func parseChannel(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return clamp01(v / 100), err
	}
	v, err := strconv.ParseFloat(s, 64)
	return clamp01(v / 255), err
}

func parseAlpha(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		return clamp01(v / 100), err
	}
	v, err := strconv.ParseFloat(s, 64)
	return clamp01(v), err
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func to255(v float64) int {
	return int(math.Round(clamp01(v) * 255))
}
