package scene

import "math"

// Transform is a 2D affine transformation.
// The six scalars represent the matrix:
//
//	| A  C  E |
//	| B  D  F |
//	| 0  0  1 |
//
// A point (x, y) is mapped to:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// Transform is a value type. Every operation returns a new Transform and
// never mutates the receiver, so a transform can be threaded through a
// recursive walk without aliasing between siblings.
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// NewTranslate creates a translation transformation.
func NewTranslate(tx, ty float64) Transform {
	return Transform{A: 1, D: 1, E: tx, F: ty}
}

// NewScale creates a scaling transformation.
func NewScale(sx, sy float64) Transform {
	return Transform{A: sx, D: sy}
}

// NewRotate creates a rotation transformation. The angle is in degrees;
// positive angles rotate from the +X axis toward the +Y axis.
func NewRotate(degrees float64) Transform {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return Transform{A: c, B: s, C: -s, D: c}
}

// IsInvertible reports whether t has a finite, non-zero determinant.
// A transform that is not invertible collapses the plane onto a line or
// a point.
func (t Transform) IsInvertible() bool {
	det := t.A*t.D - t.B*t.C
	return det != 0 && !math.IsNaN(det) && !math.IsInf(det, 0)
}

// Append returns t composed with local such that, for every point p,
// t.Append(local).Apply(p) equals t.Apply(local.Apply(p)).
func (t Transform) Append(local Transform) Transform {
	return Transform{
		A: t.A*local.A + t.C*local.B,
		B: t.B*local.A + t.D*local.B,
		C: t.A*local.C + t.C*local.D,
		D: t.B*local.C + t.D*local.D,
		E: t.A*local.E + t.C*local.F + t.E,
		F: t.B*local.E + t.D*local.F + t.F,
	}
}

// Translate returns t followed (in local space) by a translation.
func (t Transform) Translate(tx, ty float64) Transform {
	return t.Append(NewTranslate(tx, ty))
}

// Scale returns t followed (in local space) by a scale.
func (t Transform) Scale(sx, sy float64) Transform {
	return t.Append(NewScale(sx, sy))
}

// Rotate returns t followed (in local space) by a rotation in degrees.
func (t Transform) Rotate(degrees float64) Transform {
	return t.Append(NewRotate(degrees))
}

// Apply maps the point (x, y) through the transformation.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// ScaleComponents returns the horizontal and vertical scale factors encoded
// in the transform: the lengths of the first and second matrix rows.
func (t Transform) ScaleComponents() (sx, sy float64) {
	return math.Hypot(t.A, t.C), math.Hypot(t.B, t.D)
}

// IsIdentity reports whether t is the identity transformation.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Invert returns the inverse transformation.
// The second result is false if t is singular.
func (t Transform) Invert() (Transform, bool) {
	if !t.IsInvertible() {
		return Transform{}, false
	}
	inv := 1 / (t.A*t.D - t.B*t.C)
	return Transform{
		A: t.D * inv,
		B: -t.B * inv,
		C: -t.C * inv,
		D: t.A * inv,
		E: (t.C*t.F - t.D*t.E) * inv,
		F: (t.B*t.E - t.A*t.F) * inv,
	}, true
}

// Rect is an axis-aligned rectangle given by its origin and size.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// bounds accumulates a bounding box over a set of points.
type bounds struct {
	minX, minY, maxX, maxY float64
	empty                  bool
}

func newBounds() bounds {
	return bounds{
		minX:  math.Inf(1),
		minY:  math.Inf(1),
		maxX:  math.Inf(-1),
		maxY:  math.Inf(-1),
		empty: true,
	}
}

func (b *bounds) add(x, y float64) {
	b.minX = math.Min(b.minX, x)
	b.minY = math.Min(b.minY, y)
	b.maxX = math.Max(b.maxX, x)
	b.maxY = math.Max(b.maxY, y)
	b.empty = false
}

func (b bounds) rect() Rect {
	return Rect{X: b.minX, Y: b.minY, Width: b.maxX - b.minX, Height: b.maxY - b.minY}
}
