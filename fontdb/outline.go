package fontdb

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// OutlinePoint is a point in a glyph outline, in pixels at the requested
// size. The Y axis points down, matching scene coordinates.
type OutlinePoint struct {
	X, Y float64
}

// OutlineOp is the type of an outline segment.
type OutlineOp uint8

const (
	// OutlineOpMoveTo starts a new contour.
	OutlineOpMoveTo OutlineOp = iota

	// OutlineOpLineTo draws a straight line.
	OutlineOpLineTo

	// OutlineOpQuadTo draws a quadratic Bezier curve.
	OutlineOpQuadTo

	// OutlineOpCubicTo draws a cubic Bezier curve.
	OutlineOpCubicTo
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return "Unknown"
	}
}

// OutlineSegment is a single outline command.
//
//   - MoveTo, LineTo: Points[0] is the target
//   - QuadTo: Points[0] is the control, Points[1] the target
//   - CubicTo: Points[0], Points[1] are controls, Points[2] the target
type OutlineSegment struct {
	Op     OutlineOp
	Points [3]OutlinePoint
}

// Outline is the vector outline of one glyph. Contours are implicitly
// closed: every MoveTo after the first ends the previous contour.
type Outline struct {
	GID      sfnt.GlyphIndex
	Segments []OutlineSegment
	Advance  float64
}

// IsEmpty reports whether the outline has no segments (for example a space).
func (o *Outline) IsEmpty() bool {
	return len(o.Segments) == 0
}

func fixedPoint(p fixed.Point26_6) OutlinePoint {
	return OutlinePoint{X: float64(p.X) / 64, Y: float64(p.Y) / 64}
}

// convertSegments maps sfnt segments to outline segments.
func convertSegments(segs sfnt.Segments) []OutlineSegment {
	out := make([]OutlineSegment, 0, len(segs))
	for _, seg := range segs {
		var s OutlineSegment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.Op = OutlineOpMoveTo
			s.Points[0] = fixedPoint(seg.Args[0])
		case sfnt.SegmentOpLineTo:
			s.Op = OutlineOpLineTo
			s.Points[0] = fixedPoint(seg.Args[0])
		case sfnt.SegmentOpQuadTo:
			s.Op = OutlineOpQuadTo
			s.Points[0] = fixedPoint(seg.Args[0])
			s.Points[1] = fixedPoint(seg.Args[1])
		case sfnt.SegmentOpCubeTo:
			s.Op = OutlineOpCubicTo
			s.Points[0] = fixedPoint(seg.Args[0])
			s.Points[1] = fixedPoint(seg.Args[1])
			s.Points[2] = fixedPoint(seg.Args[2])
		default:
			continue
		}
		out = append(out, s)
	}
	return out
}
