package scene

// Color is an opaque 8-bit sRGB color. Transparency is carried separately
// as an opacity so that paints and gradient stops can scale it.
type Color struct {
	R, G, B uint8
}

// RGB is a shorthand constructor for Color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// FillRule selects how path interiors are determined.
type FillRule uint8

const (
	// RuleUnset defers to the renderer's configured default.
	RuleUnset FillRule = iota
	// RuleNonZero is the nonzero winding rule.
	RuleNonZero
	// RuleEvenOdd is the even-odd rule.
	RuleEvenOdd
)

// String returns the SVG keyword for the rule.
func (r FillRule) String() string {
	switch r {
	case RuleNonZero:
		return "nonzero"
	case RuleEvenOdd:
		return "evenodd"
	default:
		return "unset"
	}
}

// Fill describes how a shape interior is painted.
type Fill struct {
	Paint Paint
	Rule  FillRule
}

// Stroke describes an outline. Strokes are carried through the scene but
// not rendered.
type Stroke struct {
	Paint Paint
	Width float64
}

// Paint is the source of color for a fill: [Solid], [*LinearGradient],
// [*RadialGradient] or [*Pattern].
type Paint interface {
	paint()
}

// Solid is a single color with an opacity in [0, 1].
type Solid struct {
	Color   Color
	Opacity float64
}

// Units selects the coordinate space of gradient vectors.
type Units uint8

const (
	// UnitsObjectBoundingBox interprets coordinates relative to the bounding
	// box of the painted shape. It is the default.
	UnitsObjectBoundingBox Units = iota
	// UnitsUserSpaceOnUse interprets coordinates in the user space of the
	// painted shape.
	UnitsUserSpaceOnUse
)

// Stop is a gradient color stop.
type Stop struct {
	Offset  float64 // in [0, 1]
	Color   Color
	Opacity float64
}

// LinearGradient is a gradient along the vector (X1, Y1) -> (X2, Y2).
type LinearGradient struct {
	ID             string
	X1, Y1, X2, Y2 float64
	Units          Units
	Transform      Transform
	Stops          []Stop
}

// RadialGradient is a gradient between two circles.
type RadialGradient struct {
	ID             string
	CX, CY, R      float64
	FX, FY         float64
	Units          Units
	Transform      Transform
	Stops          []Stop
}

// Pattern is a tiled sub-scene.
type Pattern struct {
	ID        string
	Rect      Rect
	Units     Units
	Transform Transform
	Root      *Group
}

func (Solid) paint()           {}
func (*LinearGradient) paint() {}
func (*RadialGradient) paint() {}
func (*Pattern) paint()        {}

// SolidFill is a convenience constructor for an opaque solid fill with the
// default fill rule.
func SolidFill(c Color) *Fill {
	return &Fill{Paint: Solid{Color: c, Opacity: 1}}
}
