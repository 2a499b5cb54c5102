package svgdoc

import (
	"strings"

	"github.com/gogpu/svglite/scene"
)

// maxHrefChain bounds gradient href inheritance.
const maxHrefChain = 16

func (b *builder) fill(st style) *scene.Fill {
	paint := b.paint(st.fill, st.fillOpacity*st.opacity)
	if paint == nil {
		return nil
	}
	return &scene.Fill{Paint: paint, Rule: st.fillRule}
}

func (b *builder) stroke(st style) *scene.Stroke {
	paint := b.paint(st.stroke, st.strokeOpacity*st.opacity)
	if paint == nil || st.strokeWidth <= 0 {
		return nil
	}
	return &scene.Stroke{Paint: paint, Width: st.strokeWidth}
}

// paint resolves a specified paint with the given opacity. It returns nil
// when nothing should be painted.
func (b *builder) paint(ref paintRef, opacity float64) scene.Paint {
	switch ref.kind {
	case paintColor:
		return scene.Solid{Color: ref.color, Opacity: opacity * ref.alpha}
	case paintServer:
		p := b.server(ref.id)
		if p == nil {
			if ref.hasFallback {
				return scene.Solid{Color: ref.color, Opacity: opacity * ref.alpha}
			}
			b.log.Warn("skipping unresolved paint server", "ref", ref.id)
			return nil
		}
		return withOpacity(p, opacity)
	default:
		return nil
	}
}

// withOpacity scales the stop opacities of a gradient. Solid colors and
// patterns are returned unchanged.
func withOpacity(p scene.Paint, opacity float64) scene.Paint {
	if opacity >= 1 {
		return p
	}
	scale := func(stops []scene.Stop) []scene.Stop {
		out := make([]scene.Stop, len(stops))
		for i, s := range stops {
			s.Opacity *= opacity
			out[i] = s
		}
		return out
	}
	switch g := p.(type) {
	case scene.Solid:
		g.Opacity *= opacity
		return g
	case *scene.LinearGradient:
		c := *g
		c.Stops = scale(g.Stops)
		return &c
	case *scene.RadialGradient:
		c := *g
		c.Stops = scale(g.Stops)
		return &c
	default:
		return p
	}
}

// server resolves a paint server by id. Gradients with a single stop
// resolve to a solid color; gradients without stops resolve to nil.
func (b *builder) server(id string) scene.Paint {
	if p, ok := b.servers[id]; ok {
		return p
	}
	e := b.ids[id]
	if e == nil {
		return nil
	}

	var p scene.Paint
	switch e.name {
	case "linearGradient":
		p = b.linearGradient(id, e)
	case "radialGradient":
		p = b.radialGradient(id, e)
	case "pattern":
		p = b.pattern(id, e)
	}
	b.servers[id] = p
	return p
}

// hrefChain returns e followed by the gradients it inherits from.
func (b *builder) hrefChain(e *element) []*element {
	chain := []*element{e}
	seen := map[*element]bool{e: true}
	for len(chain) < maxHrefChain {
		href, _ := chain[len(chain)-1].attr("href")
		next := b.ids[strings.TrimPrefix(href, "#")]
		if !strings.HasPrefix(href, "#") || next == nil || seen[next] {
			break
		}
		if next.name != "linearGradient" && next.name != "radialGradient" && next.name != e.name {
			break
		}
		seen[next] = true
		chain = append(chain, next)
	}
	return chain
}

// inherited returns the first value of attr along the chain.
func inherited(chain []*element, attr string) (string, bool) {
	for _, e := range chain {
		if v, ok := e.attr(attr); ok {
			return v, true
		}
	}
	return "", false
}

type gradientCommon struct {
	units     scene.Units
	transform scene.Transform
	stops     []scene.Stop
}

func (b *builder) gradientCommon(chain []*element) (gradientCommon, bool) {
	g := gradientCommon{units: scene.UnitsObjectBoundingBox, transform: scene.Identity()}
	if v, _ := inherited(chain, "gradientUnits"); v == "userSpaceOnUse" {
		g.units = scene.UnitsUserSpaceOnUse
	}
	for _, e := range chain {
		if _, ok := e.attr("gradientTransform"); ok {
			t, ok := b.transform(e, "gradientTransform")
			if !ok {
				return g, false
			}
			g.transform = t
			break
		}
	}
	for _, e := range chain {
		if stops := stopsOf(e); len(stops) > 0 {
			g.stops = stops
			break
		}
	}
	return g, true
}

// stopsOf parses the stop children of a gradient. Offsets are clamped to
// [0, 1] and made non-decreasing.
func stopsOf(e *element) []scene.Stop {
	var stops []scene.Stop
	prev := 0.0
	for _, c := range e.children {
		if c.name != "stop" {
			continue
		}
		props := properties(c)
		s := scene.Stop{Opacity: 1}
		if v, ok := props["offset"]; ok {
			s.Offset, _ = parseFraction(v)
		}
		s.Offset = max(s.Offset, prev)
		prev = s.Offset

		if v, ok := props["stop-color"]; ok {
			if col, a, ok := parseColor(v); ok {
				s.Color = col
				s.Opacity = a
			}
		}
		if v, ok := props["stop-opacity"]; ok {
			if a, ok := parseFraction(v); ok {
				s.Opacity *= a
			}
		}
		stops = append(stops, s)
	}
	return stops
}

// coord parses a gradient coordinate. In bounding box units percentages
// are fractions; in user space they resolve against ref.
func coord(chain []*element, attr, def string, units scene.Units, ref float64) float64 {
	v, ok := inherited(chain, attr)
	if !ok {
		v = def
	}
	if units == scene.UnitsObjectBoundingBox {
		if pct, ok := strings.CutSuffix(v, "%"); ok {
			n, _ := parseNumber(pct)
			return n / 100
		}
		n, _ := parseNumber(v)
		return n
	}
	n, _ := parseLength(v, ref)
	return n
}

func solidStop(s scene.Stop) scene.Paint {
	return scene.Solid{Color: s.Color, Opacity: s.Opacity}
}

func (b *builder) linearGradient(id string, e *element) scene.Paint {
	chain := b.hrefChain(e)
	g, ok := b.gradientCommon(chain)
	if !ok || len(g.stops) == 0 {
		return nil
	}
	if len(g.stops) == 1 {
		return solidStop(g.stops[0])
	}
	w, h := b.viewport.Width, b.viewport.Height
	return &scene.LinearGradient{
		ID:        id,
		X1:        coord(chain, "x1", "0%", g.units, w),
		Y1:        coord(chain, "y1", "0%", g.units, h),
		X2:        coord(chain, "x2", "100%", g.units, w),
		Y2:        coord(chain, "y2", "0%", g.units, h),
		Units:     g.units,
		Transform: g.transform,
		Stops:     g.stops,
	}
}

func (b *builder) radialGradient(id string, e *element) scene.Paint {
	chain := b.hrefChain(e)
	g, ok := b.gradientCommon(chain)
	if !ok || len(g.stops) == 0 {
		return nil
	}
	if len(g.stops) == 1 {
		return solidStop(g.stops[0])
	}
	w, h := b.viewport.Width, b.viewport.Height
	rg := &scene.RadialGradient{
		ID:        id,
		CX:        coord(chain, "cx", "50%", g.units, w),
		CY:        coord(chain, "cy", "50%", g.units, h),
		R:         coord(chain, "r", "50%", g.units, b.diagonal()),
		Units:     g.units,
		Transform: g.transform,
		Stops:     g.stops,
	}
	rg.FX, rg.FY = rg.CX, rg.CY
	if _, ok := inherited(chain, "fx"); ok {
		rg.FX = coord(chain, "fx", "", g.units, w)
	}
	if _, ok := inherited(chain, "fy"); ok {
		rg.FY = coord(chain, "fy", "", g.units, h)
	}
	return rg
}

func (b *builder) pattern(id string, e *element) scene.Paint {
	if b.resolving[e] {
		b.log.Warn("skipping recursive pattern", "id", id)
		return nil
	}
	b.resolving[e] = true
	defer delete(b.resolving, e)

	units := scene.UnitsObjectBoundingBox
	if v, _ := e.attr("patternUnits"); v == "userSpaceOnUse" {
		units = scene.UnitsUserSpaceOnUse
	}
	t, ok := b.transform(e, "patternTransform")
	if !ok {
		return nil
	}
	p := &scene.Pattern{
		ID:        id,
		Units:     units,
		Transform: t,
		Rect: scene.Rect{
			X:      coord([]*element{e}, "x", "0", units, b.viewport.Width),
			Y:      coord([]*element{e}, "y", "0", units, b.viewport.Height),
			Width:  coord([]*element{e}, "width", "0", units, b.viewport.Width),
			Height: coord([]*element{e}, "height", "0", units, b.viewport.Height),
		},
		Root: scene.NewGroup(),
	}
	if p.Rect.IsEmpty() {
		return nil
	}
	b.children(p.Root, e, cascade(initialStyle(), properties(e)))
	return p
}
