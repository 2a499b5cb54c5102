package svgdoc

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/gogpu/svglite/scene"
)

type paintKind uint8

const (
	paintNone paintKind = iota
	paintColor
	paintServer
)

// paintRef is a specified fill or stroke value before paint servers are
// resolved.
type paintRef struct {
	kind  paintKind
	color scene.Color
	alpha float64

	// For paintServer: the referenced id and an optional fallback color.
	id          string
	hasFallback bool
}

// style holds the computed presentation properties of an element.
type style struct {
	color scene.Color

	fill        paintRef
	fillOpacity float64
	fillRule    scene.FillRule

	stroke        paintRef
	strokeOpacity float64
	strokeWidth   float64

	fontFamily string
	fontSize   float64

	// opacity accumulates group opacity down the tree.
	opacity float64
	hidden  bool
}

func initialStyle() style {
	return style{
		fill:          paintRef{kind: paintColor, alpha: 1},
		fillOpacity:   1,
		fillRule:      scene.RuleNonZero,
		strokeOpacity: 1,
		strokeWidth:   1,
		fontSize:      defaultFontSize,
		opacity:       1,
	}
}

// properties merges presentation attributes with declarations from the
// style attribute. Declarations win.
func properties(e *element) map[string]string {
	props := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		props[k] = strings.TrimSpace(v)
	}
	decls, _ := e.attr("style")
	for decl := range strings.SplitSeq(decls, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
		props[strings.TrimSpace(k)] = v
	}
	return props
}

// cascade computes the style of an element from its parent's.
func cascade(parent style, props map[string]string) style {
	s := parent
	get := func(name string) (string, bool) {
		v, ok := props[name]
		if !ok || v == "" || v == "inherit" {
			return "", false
		}
		return v, true
	}

	if v, ok := get("color"); ok {
		if c, _, ok := parseColor(v); ok {
			s.color = c
		}
	}
	if v, ok := get("fill"); ok {
		if ref, ok := parsePaint(v, s.color); ok {
			s.fill = ref
		}
	}
	if v, ok := get("fill-opacity"); ok {
		if a, ok := parseFraction(v); ok {
			s.fillOpacity = a
		}
	}
	if v, ok := get("fill-rule"); ok {
		switch v {
		case "nonzero":
			s.fillRule = scene.RuleNonZero
		case "evenodd":
			s.fillRule = scene.RuleEvenOdd
		}
	}
	if v, ok := get("stroke"); ok {
		if ref, ok := parsePaint(v, s.color); ok {
			s.stroke = ref
		}
	}
	if v, ok := get("stroke-opacity"); ok {
		if a, ok := parseFraction(v); ok {
			s.strokeOpacity = a
		}
	}
	if v, ok := get("stroke-width"); ok {
		if w, ok := parseLength(v, 0); ok && w >= 0 {
			s.strokeWidth = w
		}
	}
	if v, ok := get("font-family"); ok {
		s.fontFamily = v
	}
	if v, ok := get("font-size"); ok {
		if size, ok := parseFontSize(v, parent.fontSize); ok {
			s.fontSize = size
		}
	}
	if v, ok := get("visibility"); ok {
		s.hidden = v == "hidden" || v == "collapse"
	}
	if v, ok := get("opacity"); ok {
		if a, ok := parseFraction(v); ok {
			s.opacity *= a
		}
	}
	return s
}

func parseFontSize(v string, parent float64) (float64, bool) {
	if em, ok := strings.CutSuffix(v, "em"); ok {
		n, ok := parseNumber(em)
		return n * parent, ok && n > 0
	}
	size, ok := parseLength(v, parent)
	return size, ok && size > 0
}

// parsePaint parses a fill or stroke value. currentColor resolves to
// current. The second result is false for invalid values, which leave
// the inherited paint in place.
func parsePaint(v string, current scene.Color) (paintRef, bool) {
	switch v {
	case "none":
		return paintRef{kind: paintNone}, true
	case "currentColor":
		return paintRef{kind: paintColor, color: current, alpha: 1}, true
	}
	if rest, ok := strings.CutPrefix(v, "url("); ok {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return paintRef{}, false
		}
		id := strings.Trim(strings.TrimSpace(rest[:end]), `"'`)
		ref := paintRef{kind: paintServer, id: strings.TrimPrefix(id, "#")}
		fallback := strings.TrimSpace(rest[end+1:])
		switch fallback {
		case "", "none":
		case "currentColor":
			ref.hasFallback, ref.color, ref.alpha = true, current, 1
		default:
			if c, a, ok := parseColor(fallback); ok {
				ref.hasFallback, ref.color, ref.alpha = true, c, a
			}
		}
		return ref, true
	}
	c, a, ok := parseColor(v)
	if !ok {
		return paintRef{}, false
	}
	return paintRef{kind: paintColor, color: c, alpha: a}, true
}

// parseColor parses a hex, rgb()/rgba() or named color. The second result
// is the alpha carried by the color itself.
func parseColor(v string) (scene.Color, float64, bool) {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasPrefix(v, "#"):
		return parseHex(v)
	case strings.HasPrefix(v, "rgb"):
		return parseRGBFunc(v)
	}
	name := strings.ToLower(v)
	if name == "transparent" {
		return scene.Color{}, 0, true
	}
	if c, ok := colornames.Map[name]; ok {
		return scene.RGB(c.R, c.G, c.B), 1, true
	}
	return scene.Color{}, 0, false
}

func parseHex(v string) (scene.Color, float64, bool) {
	alpha := 1.0
	switch len(v) {
	case 5, 9:
		a, err := colorful.Hex("#" + strings.Repeat(v[len(v)-len(v)/4:], 3))
		if err != nil {
			return scene.Color{}, 0, false
		}
		alpha = a.R
		v = v[:len(v)-len(v)/4]
	}
	c, err := colorful.Hex(strings.ToLower(v))
	if err != nil {
		return scene.Color{}, 0, false
	}
	r, g, b := c.RGB255()
	return scene.RGB(r, g, b), alpha, true
}

func parseRGBFunc(v string) (scene.Color, float64, bool) {
	open := strings.IndexByte(v, '(')
	end := strings.LastIndexByte(v, ')')
	if open < 0 || end < open {
		return scene.Color{}, 0, false
	}
	var ch [3]uint8
	alpha := 1.0
	args := strings.FieldsFunc(v[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return scene.Color{}, 0, false
	}
	for i, arg := range args[:3] {
		var x float64
		if pct, ok := strings.CutSuffix(arg, "%"); ok {
			n, ok := parseNumber(pct)
			if !ok {
				return scene.Color{}, 0, false
			}
			x = n * 255 / 100
		} else {
			n, ok := parseNumber(arg)
			if !ok {
				return scene.Color{}, 0, false
			}
			x = n
		}
		ch[i] = uint8(min(max(x+0.5, 0), 255))
	}
	if len(args) == 4 {
		a, ok := parseFraction(args[3])
		if !ok {
			return scene.Color{}, 0, false
		}
		alpha = a
	}
	return scene.RGB(ch[0], ch[1], ch[2]), alpha, true
}
