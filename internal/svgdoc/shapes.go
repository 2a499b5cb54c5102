package svgdoc

import (
	"github.com/gogpu/svglite/scene"
)

// kappa places cubic control points for quarter-circle arcs.
const kappa = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)

// shape builds the geometry of a basic shape or path element. It returns
// nil for shapes that SVG defines as not rendered, such as a rect with
// zero width.
func (b *builder) shape(e *element, id string) *scene.Path {
	switch e.name {
	case "path":
		d, _ := e.attr("d")
		p, err := ParsePath(d)
		if err != nil {
			b.log.Warn("truncating path data", "id", id, "error", err)
		}
		if p.IsEmpty() {
			return nil
		}
		return p
	case "rect":
		return b.rect(e)
	case "circle":
		r := b.length(e, "r", b.diagonal())
		if r <= 0 {
			return nil
		}
		return ellipse(b.x(e, "cx"), b.y(e, "cy"), r, r)
	case "ellipse":
		rx, ry := b.x(e, "rx"), b.y(e, "ry")
		if rx <= 0 || ry <= 0 {
			return nil
		}
		return ellipse(b.x(e, "cx"), b.y(e, "cy"), rx, ry)
	case "line":
		return scene.NewPath().
			MoveTo(b.x(e, "x1"), b.y(e, "y1")).
			LineTo(b.x(e, "x2"), b.y(e, "y2"))
	case "polyline", "polygon":
		v, _ := e.attr("points")
		pts, ok := parseNumbers(v)
		if !ok {
			b.log.Warn("truncating points", "id", id)
		}
		if len(pts) < 4 {
			return nil
		}
		p := scene.NewPath().MoveTo(pts[0], pts[1])
		for i := 2; i+1 < len(pts); i += 2 {
			p.LineTo(pts[i], pts[i+1])
		}
		if e.name == "polygon" {
			p.Close()
		}
		return p
	}
	return nil
}

func (b *builder) rect(e *element) *scene.Path {
	x, y := b.x(e, "x"), b.y(e, "y")
	w, h := b.x(e, "width"), b.y(e, "height")
	if w <= 0 || h <= 0 {
		return nil
	}

	_, hasRX := e.attr("rx")
	_, hasRY := e.attr("ry")
	rx, ry := b.x(e, "rx"), b.y(e, "ry")
	switch {
	case hasRX && !hasRY:
		ry = rx
	case hasRY && !hasRX:
		rx = ry
	}
	rx = min(max(rx, 0), w/2)
	ry = min(max(ry, 0), h/2)

	p := scene.NewPath()
	if rx == 0 || ry == 0 {
		return p.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
	}
	ox, oy := rx*kappa, ry*kappa
	return p.MoveTo(x+rx, y).
		LineTo(x+w-rx, y).
		CubicTo(x+w-rx+ox, y, x+w, y+ry-oy, x+w, y+ry).
		LineTo(x+w, y+h-ry).
		CubicTo(x+w, y+h-ry+oy, x+w-rx+ox, y+h, x+w-rx, y+h).
		LineTo(x+rx, y+h).
		CubicTo(x+rx-ox, y+h, x, y+h-ry+oy, x, y+h-ry).
		LineTo(x, y+ry).
		CubicTo(x, y+ry-oy, x+rx-ox, y, x+rx, y).
		Close()
}

func ellipse(cx, cy, rx, ry float64) *scene.Path {
	ox, oy := rx*kappa, ry*kappa
	return scene.NewPath().
		MoveTo(cx+rx, cy).
		CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry).
		CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy).
		CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry).
		CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy).
		Close()
}
