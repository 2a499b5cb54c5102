package soft

import (
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/svglite/vglite"
)

// Blit composites src into dst through m, which maps src pixel space
// into dst pixel space.
func (b *Backend) Blit(dst, src *vglite.Buffer, m *vglite.Matrix, mode vglite.BlendMode, filter vglite.Filter) error {
	ds, err := surfaceOf("blit", dst)
	if err != nil {
		return err
	}
	ss, err := surfaceOf("blit", src)
	if err != nil {
		return err
	}
	mat, err := matrixOf("blit", m)
	if err != nil {
		return err
	}
	aff := f64.Aff3{
		float64(mat[0][0]), float64(mat[0][1]), float64(mat[0][2]),
		float64(mat[1][0]), float64(mat[1][1]), float64(mat[1][2]),
	}
	interp := interpolator(filter)
	srcImg := surfaceImage{ss}

	switch mode {
	case vglite.BlendNone:
		interp.Transform(surfaceImage{ds}, aff, srcImg, srcImg.Bounds(), xdraw.Src, nil)
	case vglite.BlendSrcOver:
		interp.Transform(surfaceImage{ds}, aff, srcImg, srcImg.Bounds(), xdraw.Over, nil)
	default:
		// Resample into a scratch layer, then blend only where the
		// source landed.
		tmp := image.NewRGBA(image.Rect(0, 0, dst.Width, dst.Height))
		interp.Transform(tmp, aff, srcImg, srcImg.Bounds(), xdraw.Src, nil)
		for y := 0; y < dst.Height; y++ {
			for x := 0; x < dst.Width; x++ {
				c := tmp.RGBAAt(x, y)
				if c.A == 0 {
					continue
				}
				p := pixel{
					R: float32(c.R) / 255,
					G: float32(c.G) / 255,
					B: float32(c.B) / 255,
					A: float32(c.A) / 255,
				}
				ds.composite(x, y, p, mode, 1)
			}
		}
	}
	return nil
}

func interpolator(f vglite.Filter) xdraw.Interpolator {
	if f == vglite.FilterPoint {
		return xdraw.NearestNeighbor
	}
	return xdraw.BiLinear
}
