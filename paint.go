package svglite

import (
	"fmt"
	"math"

	"github.com/gogpu/svglite/scene"
	"github.com/gogpu/svglite/vglite"
)

// fill issues the draw call for paint over an encoded path.
func (r *renderer) fill(dst *vglite.Buffer, vp *vglite.Path, rule vglite.FillRule,
	m scene.Transform, bbox scene.Rect, paint scene.Paint, id string) error {
	mat := vglite.MatrixFrom(m)

	switch paint := paint.(type) {
	case scene.Solid:
		color := PackARGB(paint.Color, paint.Opacity)
		return check("draw", r.backend.Draw(dst, vp, rule, &mat, r.opts.blend, color))
	case *scene.LinearGradient:
		return r.drawLinearGradient(dst, vp, rule, &mat, m, bbox, paint)
	case *scene.RadialGradient:
		r.log.Debug("svglite: radial gradient not rendered", "id", id, "gradient", paint.ID)
		return nil
	case *scene.Pattern:
		r.log.Debug("svglite: pattern not rendered", "id", id, "pattern", paint.ID)
		return nil
	default:
		return nil
	}
}

// drawLinearGradient prepares a gradient descriptor and fills the path.
// The descriptor is released on every exit path once initialized.
func (r *renderer) drawLinearGradient(dst *vglite.Buffer, vp *vglite.Path, rule vglite.FillRule,
	mat *vglite.Matrix, m scene.Transform, bbox scene.Rect, lg *scene.LinearGradient) (err error) {
	if len(lg.Stops) > vglite.MaxGradientStops {
		return fmt.Errorf("%w: linear gradient %q has %d stops, limit is %d",
			ErrUnsupportedFeature, lg.ID, len(lg.Stops), vglite.MaxGradientStops)
	}
	if len(lg.Stops) == 0 {
		return nil
	}
	if !lg.Transform.IsInvertible() {
		r.log.Debug("svglite: skipping gradient with singular transform", "gradient", lg.ID)
		return nil
	}

	gm, ok := GradientTransform(lg, m, bbox)
	if !ok {
		// Zero-length vector: the area is painted with the last stop.
		last := lg.Stops[len(lg.Stops)-1]
		color := PackARGB(last.Color, last.Opacity)
		return check("draw", r.backend.Draw(dst, vp, rule, mat, r.opts.blend, color))
	}

	colors := make([]uint32, len(lg.Stops))
	stops := make([]uint32, len(lg.Stops))
	for i, s := range lg.Stops {
		colors[i] = PackStopABGR(s.Color, s.Opacity)
		stops[i] = unitToByte(s.Offset)
	}

	var grad vglite.LinearGradient
	if err := check("init gradient", r.backend.InitGradient(&grad)); err != nil {
		return err
	}
	defer func() {
		if cerr := check("clear gradient", r.backend.ClearGradient(&grad)); err == nil {
			err = cerr
		}
	}()

	if err := check("set gradient", r.backend.SetGradient(&grad, colors, stops)); err != nil {
		return err
	}
	if err := check("update gradient", r.backend.UpdateGradient(&grad)); err != nil {
		return err
	}
	*r.backend.GradientMatrix(&grad) = vglite.MatrixFrom(gm)

	return check("draw gradient", r.backend.DrawGradient(dst, vp, rule, mat, &grad, r.opts.blend))
}

// GradientAngle returns the direction of the gradient vector in degrees.
// Vertical vectors yield exactly +90 (downward) or -90 (upward).
func GradientAngle(x1, y1, x2, y2 float64) float64 {
	if x1 == x2 {
		if y2 >= y1 {
			return 90
		}
		return -90
	}
	return math.Atan2(y2-y1, x2-x1) * 180 / math.Pi
}

// GradientTransform derives the placement matrix that maps the 0..255
// gradient ramp into target space. The node scale is folded in here, so
// backends must not apply the path matrix to it again.
//
// With s = (x2-x1)/255:
//
//	user space:   local * T(x1, y1) * R(angle) * S(s, s)
//	bounding box: local * R(angle) * S(w*sx*s, h*sy*s) * T(x1/s, y1/s)
//
// where w, h is the path's bounding box and sx, sy are the scale components
// of the accumulated node transform m. For vertical vectors, where x2-x1 is
// zero, s is taken from the vector length instead so the matrix stays
// finite. ok is false when the vector has zero length.
func GradientTransform(lg *scene.LinearGradient, m scene.Transform, bbox scene.Rect) (t scene.Transform, ok bool) {
	length := math.Hypot(lg.X2-lg.X1, lg.Y2-lg.Y1)
	if length == 0 || math.IsNaN(length) {
		return scene.Transform{}, false
	}

	angle := GradientAngle(lg.X1, lg.Y1, lg.X2, lg.Y2)
	s := (lg.X2 - lg.X1) / 255
	if s == 0 {
		s = length / 255
	}

	t = lg.Transform
	if lg.Units == scene.UnitsUserSpaceOnUse {
		return t.Translate(lg.X1, lg.Y1).Rotate(angle).Scale(s, s), true
	}
	sx, sy := m.ScaleComponents()
	return t.Rotate(angle).
		Scale(bbox.Width*sx*s, bbox.Height*sy*s).
		Translate(lg.X1/s, lg.Y1/s), true
}

// PackARGB packs a solid fill color as A<<24 | R<<16 | G<<8 | B.
func PackARGB(c scene.Color, opacity float64) uint32 {
	return uint32(unitToByte(opacity))<<24 |
		uint32(c.R)<<16 |
		uint32(c.G)<<8 |
		uint32(c.B)
}

// PackStopABGR packs a gradient stop color as A<<24 | B<<16 | G<<8 | R.
// Gradient stop tables use the reverse channel order of solid fills.
func PackStopABGR(c scene.Color, opacity float64) uint32 {
	return uint32(unitToByte(opacity))<<24 |
		uint32(c.B)<<16 |
		uint32(c.G)<<8 |
		uint32(c.R)
}

// unitToByte maps [0, 1] to 0..255 with rounding, clamping out-of-range
// values.
func unitToByte(v float64) uint32 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint32(math.Round(v * 255))
	}
}
