package scene

import (
	"iter"
	"math"
)

// Verb represents a path construction command.
type Verb uint8

// Path verb constants.
const (
	// VerbMoveTo starts a new subpath.
	VerbMoveTo Verb = iota
	// VerbLineTo draws a straight line.
	VerbLineTo
	// VerbQuadTo draws a quadratic Bezier curve.
	VerbQuadTo
	// VerbCubicTo draws a cubic Bezier curve.
	VerbCubicTo
	// VerbClose closes the current subpath.
	VerbClose
)

// String returns a human-readable name for the verb.
func (v Verb) String() string {
	switch v {
	case VerbMoveTo:
		return "MoveTo"
	case VerbLineTo:
		return "LineTo"
	case VerbQuadTo:
		return "QuadTo"
	case VerbCubicTo:
		return "CubicTo"
	case VerbClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// PointCount returns the number of coordinates this verb consumes.
func (v Verb) PointCount() int {
	switch v {
	case VerbMoveTo, VerbLineTo:
		return 2 // x, y
	case VerbQuadTo:
		return 4 // cx, cy, x, y
	case VerbCubicTo:
		return 6 // c1x, c1y, c2x, c2y, x, y
	default:
		return 0
	}
}

// Segment is a single path command with its coordinates.
// Pts holds Verb.PointCount() values; the rest are zero.
type Segment struct {
	Verb Verb
	Pts  [6]float64
}

// Path is a filled (and optionally stroked) vector shape.
// Geometry is stored as separate verb and coordinate streams and is
// built with the fluent MoveTo/LineTo/QuadTo/CubicTo/Close methods.
type Path struct {
	ID        string
	Transform Transform
	Hidden    bool

	// Fill is the interior paint. A nil Fill draws nothing.
	Fill *Fill
	// Stroke is recognized but never rendered.
	Stroke *Stroke

	verbs  []Verb
	points []float64
}

// NewPath creates an empty, visible path with an identity transform.
func NewPath() *Path {
	return &Path{
		Transform: Identity(),
		verbs:     make([]Verb, 0, 8),
		points:    make([]float64, 0, 32),
	}
}

func (*Path) node() {}

// Visible reports whether the path should be rendered.
func (p *Path) Visible() bool { return !p.Hidden }

// LocalTransform returns the node-local transform.
func (p *Path) LocalTransform() Transform { return p.Transform }

// MoveTo begins a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, x, y)
	return p
}

// LineTo draws a line from the current point to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, x, y)
	return p
}

// QuadTo draws a quadratic Bezier curve to (x, y) with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	p.verbs = append(p.verbs, VerbQuadTo)
	p.points = append(p.points, cx, cy, x, y)
	return p
}

// CubicTo draws a cubic Bezier curve to (x, y) with control points
// (c1x, c1y) and (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	p.verbs = append(p.verbs, VerbCubicTo)
	p.points = append(p.points, c1x, c1y, c2x, c2y, x, y)
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.verbs = append(p.verbs, VerbClose)
	return p
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool { return len(p.verbs) == 0 }

// Len returns the number of segments.
func (p *Path) Len() int { return len(p.verbs) }

// Segments iterates over the path in order.
func (p *Path) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		off := 0
		for _, v := range p.verbs {
			seg := Segment{Verb: v}
			n := v.PointCount()
			copy(seg.Pts[:n], p.points[off:off+n])
			off += n
			if !yield(seg) {
				return
			}
		}
	}
}

// BBox returns the tight bounding box of the path geometry in local space.
// The second result is false when the box cannot be computed: the path is
// empty, a coordinate is not finite, or the geometry has neither width nor
// height.
func (p *Path) BBox() (Rect, bool) {
	b := newBounds()
	var cx, cy, sx, sy float64
	for seg := range p.Segments() {
		pt := seg.Pts
		switch seg.Verb {
		case VerbMoveTo:
			cx, cy, sx, sy = pt[0], pt[1], pt[0], pt[1]
			b.add(cx, cy)
		case VerbLineTo:
			cx, cy = pt[0], pt[1]
			b.add(cx, cy)
		case VerbQuadTo:
			// Elevate so that a single extrema routine handles both curve kinds.
			c1x, c1y := cx+2.0/3.0*(pt[0]-cx), cy+2.0/3.0*(pt[1]-cy)
			c2x, c2y := pt[2]+2.0/3.0*(pt[0]-pt[2]), pt[3]+2.0/3.0*(pt[1]-pt[3])
			cubicBounds(&b, cx, cy, c1x, c1y, c2x, c2y, pt[2], pt[3])
			cx, cy = pt[2], pt[3]
		case VerbCubicTo:
			cubicBounds(&b, cx, cy, pt[0], pt[1], pt[2], pt[3], pt[4], pt[5])
			cx, cy = pt[4], pt[5]
		case VerbClose:
			cx, cy = sx, sy
		}
	}
	if b.empty {
		return Rect{}, false
	}
	r := b.rect()
	if !finite(r.X) || !finite(r.Y) || !finite(r.Width) || !finite(r.Height) {
		return Rect{}, false
	}
	if r.Width == 0 && r.Height == 0 {
		return Rect{}, false
	}
	return r, true
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// cubicBounds adds the end point and every axis extremum of the cubic
// (p0, p1, p2, p3) to b.
func cubicBounds(b *bounds, x0, y0, x1, y1, x2, y2, x3, y3 float64) {
	b.add(x0, y0)
	b.add(x3, y3)
	for _, t := range cubicExtrema(x0, x1, x2, x3) {
		b.add(cubicAt(x0, x1, x2, x3, t), cubicAt(y0, y1, y2, y3, t))
	}
	for _, t := range cubicExtrema(y0, y1, y2, y3) {
		b.add(cubicAt(x0, x1, x2, x3, t), cubicAt(y0, y1, y2, y3, t))
	}
}

func cubicAt(p0, p1, p2, p3, t float64) float64 {
	mt := 1 - t
	return mt*mt*mt*p0 + 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t*p3
}

// cubicExtrema returns the parameters in (0, 1) where the derivative of the
// one-dimensional cubic vanishes.
func cubicExtrema(p0, p1, p2, p3 float64) []float64 {
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2 * (p0 - 2*p1 + p2)
	c := p1 - p0
	var ts []float64
	keep := func(t float64) {
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) > eps {
			keep(-c / b)
		}
		return ts
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return ts
	}
	sq := math.Sqrt(disc)
	keep((-b + sq) / (2 * a))
	keep((-b - sq) / (2 * a))
	return ts
}
