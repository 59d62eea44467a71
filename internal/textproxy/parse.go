package textproxy

import (
	"strconv"
	"strings"
)

// parseCSSFloat reads the leading number of a CSS value the way
// parseFloat does: "20px" gives 20, "normal" gives false.
func parseCSSFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	seenDigit, seenDot, seenExp := false, false, false
scan:
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case (c == '+' || c == '-') && (end == 0 || s[end-1] == 'e' || s[end-1] == 'E'):
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp && end+1 < len(s) && isExpTail(s[end+1:]):
			seenExp = true
		default:
			break scan
		}
		end++
	}
	if !seenDigit {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isExpTail(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

// emRatio converts an absolute CSS length into em units of fontSize, using
// fallback when either value is unusable or the ratio is zero.
func emRatio(value string, fontSize, fallback float64) float64 {
	v, ok := parseCSSFloat(value)
	if !ok || fontSize == 0 {
		return fallback
	}
	ratio := v / fontSize
	if ratio == 0 {
		return fallback
	}
	return ratio
}
