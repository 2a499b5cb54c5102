package soft

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/gogpu/svglite/vglite"
)

// Draw fills path with a solid ARGB color.
func (b *Backend) Draw(buf *vglite.Buffer, path *vglite.Path, rule vglite.FillRule,
	m *vglite.Matrix, mode vglite.BlendMode, color uint32) error {
	s, err := surfaceOf("draw", buf)
	if err != nil {
		return err
	}
	mat, err := matrixOf("draw", m)
	if err != nil {
		return err
	}
	mask, err := coverage("draw", buf.Width, buf.Height, path, rule, mat)
	if err != nil {
		return err
	}
	src := unpackARGB(color)
	paintMask(s, mask, mode, func(int, int) pixel { return src })
	return nil
}

// DrawGradient fills path with a linear gradient prepared by
// UpdateGradient. The path matrix only places the coverage; device pixel
// centers are mapped back through the gradient matrix alone to the 0..255
// ramp, clamped at both ends.
func (b *Backend) DrawGradient(buf *vglite.Buffer, path *vglite.Path, rule vglite.FillRule,
	m *vglite.Matrix, grad *vglite.LinearGradient, mode vglite.BlendMode) error {
	s, err := surfaceOf("draw gradient", buf)
	if err != nil {
		return err
	}
	if grad == nil {
		return vglite.Check("draw gradient", vglite.InvalidArgument)
	}
	r, ok := grad.Handle.(*ramp)
	if !ok {
		return vglite.Check("draw gradient", vglite.InvalidArgument)
	}
	mat, err := matrixOf("draw gradient", m)
	if err != nil {
		return err
	}
	if !grad.Matrix.IsFinite() {
		return vglite.Check("draw gradient", vglite.InvalidArgument)
	}
	toRamp, ok := grad.Matrix.Transform().Invert()
	if !ok {
		return vglite.Check("draw gradient", vglite.InvalidArgument)
	}
	mask, err := coverage("draw gradient", buf.Width, buf.Height, path, rule, mat)
	if err != nil {
		return err
	}
	paintMask(s, mask, mode, func(x, y int) pixel {
		u, _ := toRamp.Apply(float64(x)+0.5, float64(y)+0.5)
		return r.at(u)
	})
	return nil
}

func matrixOf(op string, m *vglite.Matrix) (vglite.Matrix, error) {
	if m == nil {
		return vglite.IdentityMatrix(), nil
	}
	if !m.IsFinite() {
		return vglite.Matrix{}, vglite.Check(op, vglite.InvalidArgument)
	}
	return *m, nil
}

// coverage rasterizes path into an alpha mask the size of the target.
//
// x/image/vector accumulates absolute signed area, which matches the
// nonzero rule. Even-odd is approximated by rasterizing each subpath on
// its own and combining the layers with a coverage XOR.
func coverage(op string, w, h int, path *vglite.Path, rule vglite.FillRule, m vglite.Matrix) (*image.Alpha, error) {
	if path == nil || path.Data == nil || !path.Data.Terminated() {
		return nil, vglite.Check(op, vglite.InvalidArgument)
	}
	bounds := image.Rect(0, 0, w, h)
	mask := image.NewAlpha(bounds)
	subs := subpaths(path.Data)
	z := vector.NewRasterizer(w, h)

	if rule != vglite.FillEvenOdd {
		z.DrawOp = draw.Src
		for _, sp := range subs {
			trace(z, sp, m)
		}
		z.Draw(mask, bounds, image.Opaque, image.Point{})
		applyQuality(mask, path.Quality)
		return mask, nil
	}

	layer := image.NewAlpha(bounds)
	for _, sp := range subs {
		z.Reset(w, h)
		z.DrawOp = draw.Src
		trace(z, sp, m)
		z.Draw(layer, bounds, image.Opaque, image.Point{})
		for i, a := range layer.Pix {
			c := int(mask.Pix[i])
			mask.Pix[i] = uint8((int(a)*255 + c*255 - 2*int(a)*c + 127) / 255)
		}
	}
	applyQuality(mask, path.Quality)
	return mask, nil
}

// subpaths splits a stream at each move record. Records before the first
// move start at the origin.
func subpaths(d *vglite.PathData) [][]vglite.Record {
	var (
		out [][]vglite.Record
		cur []vglite.Record
	)
	for rec := range d.Records() {
		if rec.Op == vglite.OpEnd {
			break
		}
		if rec.Op == vglite.OpMove && len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
		cur = append(cur, rec)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// trace feeds one subpath into z in device space. Every subpath is closed,
// as filling treats open subpaths as implicitly closed.
func trace(z *vector.Rasterizer, recs []vglite.Record, m vglite.Matrix) {
	x, y := m.Apply(0, 0)
	z.MoveTo(x, y)
	for _, rec := range recs {
		a := rec.Args
		switch rec.Op {
		case vglite.OpMove:
			x, y := m.Apply(a[0], a[1])
			z.MoveTo(x, y)
		case vglite.OpLine:
			x, y := m.Apply(a[0], a[1])
			z.LineTo(x, y)
		case vglite.OpCubic:
			c1x, c1y := m.Apply(a[0], a[1])
			c2x, c2y := m.Apply(a[2], a[3])
			x, y := m.Apply(a[4], a[5])
			z.CubeTo(c1x, c1y, c2x, c2y, x, y)
		case vglite.OpClose:
			z.ClosePath()
		}
	}
	z.ClosePath()
}

// applyQuality removes antialiasing for QualityLow.
func applyQuality(mask *image.Alpha, q vglite.Quality) {
	if q != vglite.QualityLow {
		return
	}
	for i, a := range mask.Pix {
		if a >= 0x80 {
			mask.Pix[i] = 0xff
		} else {
			mask.Pix[i] = 0
		}
	}
}

func paintMask(s *surface, mask *image.Alpha, mode vglite.BlendMode, src func(x, y int) pixel) {
	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := mask.Pix[(y-b.Min.Y)*mask.Stride : (y-b.Min.Y)*mask.Stride+b.Dx()]
		for i, a := range row {
			if a == 0 {
				continue
			}
			x := b.Min.X + i
			s.composite(x, y, src(x, y), mode, float32(a)/255)
		}
	}
}
