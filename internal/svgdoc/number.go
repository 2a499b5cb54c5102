package svgdoc

import (
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// CSS reference pixels per unit.
var unitScale = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 4.0 / 3.0,
	"pc": 16,
	"mm": 96 / 25.4,
	"cm": 96 / 2.54,
	"in": 96,
	"em": defaultFontSize,
	"ex": defaultFontSize / 2,
}

const defaultFontSize = 16

func skipCommaWhitespace(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// parseNumber parses s as a single number.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	v, n := strconv.ParseFloat([]byte(s))
	if n == 0 || n != len(s) || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseNumbers parses a comma or whitespace separated list of numbers.
func parseNumbers(s string) ([]float64, bool) {
	b := []byte(s)
	var out []float64
	i := skipCommaWhitespace(b)
	for i < len(b) {
		v, n := strconv.ParseFloat(b[i:])
		if n == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return out, false
		}
		out = append(out, v)
		i += n
		i += skipCommaWhitespace(b[i:])
	}
	return out, true
}

// parseLength parses an SVG length. Percentages resolve against ref.
func parseLength(s string, ref float64) (float64, bool) {
	s = strings.TrimSpace(s)
	v, n := strconv.ParseFloat([]byte(s))
	if n == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	unit := strings.ToLower(strings.TrimSpace(s[n:]))
	if unit == "%" {
		return v * ref / 100, true
	}
	scale, ok := unitScale[unit]
	if !ok {
		return 0, false
	}
	return v * scale, true
}

// parseFraction parses a number or percentage into [0, 1], as used by
// opacities and gradient stop offsets.
func parseFraction(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	var v float64
	var ok bool
	if pct, found := strings.CutSuffix(s, "%"); found {
		v, ok = parseNumber(pct)
		v /= 100
	} else {
		v, ok = parseNumber(s)
	}
	if !ok {
		return 0, false
	}
	return min(max(v, 0), 1), true
}
