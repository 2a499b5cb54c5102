package vglite

import (
	"math"

	"github.com/gogpu/svglite/scene"
)

// FillRule selects the winding interpretation of a path interior.
type FillRule uint8

const (
	// FillNonZero fills regions with a nonzero winding number.
	FillNonZero FillRule = iota
	// FillEvenOdd fills regions with an odd crossing count.
	FillEvenOdd
)

// String returns the rule name.
func (r FillRule) String() string {
	switch r {
	case FillNonZero:
		return "NonZero"
	case FillEvenOdd:
		return "EvenOdd"
	default:
		return "Unknown"
	}
}

// BlendMode selects how source pixels are combined with the destination.
type BlendMode uint8

const (
	// BlendNone copies source pixels over the destination.
	BlendNone BlendMode = iota
	// BlendSrcOver is Porter-Duff source-over.
	BlendSrcOver
	// BlendDstOver is Porter-Duff destination-over.
	BlendDstOver
	// BlendSrcIn is Porter-Duff source-in.
	BlendSrcIn
	// BlendDstIn is Porter-Duff destination-in.
	BlendDstIn
	// BlendMultiply multiplies source and destination.
	BlendMultiply
	// BlendScreen is the screen blend.
	BlendScreen
	// BlendAdditive adds source and destination.
	BlendAdditive
)

var blendModeNames = [...]string{
	BlendNone:     "None",
	BlendSrcOver:  "SrcOver",
	BlendDstOver:  "DstOver",
	BlendSrcIn:    "SrcIn",
	BlendDstIn:    "DstIn",
	BlendMultiply: "Multiply",
	BlendScreen:   "Screen",
	BlendAdditive: "Additive",
}

// String returns the blend mode name.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "Unknown"
}

// Filter selects the sampling filter used by Blit.
type Filter uint8

const (
	// FilterPoint samples the nearest source pixel.
	FilterPoint Filter = iota
	// FilterLinear interpolates horizontally only.
	FilterLinear
	// FilterBilinear interpolates in both directions.
	FilterBilinear
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterPoint:
		return "Point"
	case FilterLinear:
		return "Linear"
	case FilterBilinear:
		return "BiLinear"
	default:
		return "Unknown"
	}
}

// Quality is the antialiasing quality hint of a path.
type Quality uint8

const (
	// QualityHigh requests 16x antialiasing.
	QualityHigh Quality = iota
	// QualityMedium requests 4x antialiasing.
	QualityMedium
	// QualityLow disables antialiasing.
	QualityLow
)

// Matrix is a row-major 3x3 transformation matrix as consumed by the
// rasterizer. For an affine transform the last row is (0, 0, 1).
type Matrix [3][3]float32

// IdentityMatrix returns the identity matrix.
func IdentityMatrix() Matrix {
	return Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// MatrixFrom converts a scene transform to a rasterizer matrix.
func MatrixFrom(t scene.Transform) Matrix {
	return Matrix{
		{float32(t.A), float32(t.C), float32(t.E)},
		{float32(t.B), float32(t.D), float32(t.F)},
		{0, 0, 1},
	}
}

// Transform converts m back to a scene transform, dropping any
// projective row.
func (m Matrix) Transform() scene.Transform {
	return scene.Transform{
		A: float64(m[0][0]), C: float64(m[0][1]), E: float64(m[0][2]),
		B: float64(m[1][0]), D: float64(m[1][1]), F: float64(m[1][2]),
	}
}

// Apply maps (x, y) through the affine part of m.
func (m Matrix) Apply(x, y float32) (float32, float32) {
	return m[0][0]*x + m[0][1]*y + m[0][2], m[1][0]*x + m[1][1]*y + m[1][2]
}

// IsFinite reports whether every element is a finite number.
func (m Matrix) IsFinite() bool {
	for _, row := range m {
		for _, v := range row {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	}
	return true
}
