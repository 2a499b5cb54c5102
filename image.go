package svglite

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/svglite/fontdb"
	"github.com/gogpu/svglite/internal/raster"
	"github.com/gogpu/svglite/scene"
	"github.com/gogpu/svglite/vglite"
)

// drawImage composites an embedded image into dst at its declared
// placement.
func (r *renderer) drawImage(img *scene.Image, m scene.Transform, dst *vglite.Buffer, fonts *fontdb.DB) error {
	if !img.Visible() {
		return nil
	}
	vb := img.ViewBox
	w, h := bufferSize(vb.Width), bufferSize(vb.Height)
	if w == 0 || h == 0 {
		r.log.Debug("svglite: skipping empty image viewport", "id", img.ID, "width", vb.Width, "height", vb.Height)
		return nil
	}
	place := m.Translate(vb.X, vb.Y)

	switch kind := img.Kind.(type) {
	case scene.VectorData:
		return r.composite(dst, w, h, vglite.FormatRGBA8888, place, func(buf *vglite.Buffer) error {
			if err := check("clear", r.backend.Clear(buf, nil, 0)); err != nil {
				return err
			}
			if kind.Tree == nil || kind.Tree.Root == nil {
				return nil
			}
			return r.renderTree(buf, kind.Tree, fonts)
		})

	case scene.RasterData:
		px, err := r.decodeRaster(img.ID, kind.Data)
		if err != nil {
			return err
		}
		if fw, fh := float64(px.Width), float64(px.Height); vb.Width != fw || vb.Height != fh {
			place = place.Scale(vb.Width/fw, vb.Height/fh)
		}
		return r.composite(dst, px.Width, px.Height, px.Format, place, func(buf *vglite.Buffer) error {
			if err := px.CopyTo(buf); err != nil {
				return fmt.Errorf("%w: image %q: %w", ErrMalformedInput, img.ID, err)
			}
			return nil
		})

	default:
		return fmt.Errorf("%w: image kind %T", ErrUnsupportedFeature, kind)
	}
}

// decodeRaster runs the raster pipeline and maps its errors onto the
// renderer's error categories.
func (r *renderer) decodeRaster(id string, data []byte) (*raster.Pixels, error) {
	decoded, err := raster.Decode(data)
	if err != nil {
		return nil, rasterError(id, err)
	}
	r.log.Debug("svglite: decoded image",
		"id", id, "container", decoded.Container, "layout", decoded.Layout,
		"width", decoded.Width, "height", decoded.Height)

	px, err := raster.Normalize(decoded, r.opts.imagePolicy)
	if err != nil {
		return nil, rasterError(id, err)
	}
	return px, nil
}

func rasterError(id string, err error) error {
	if errors.Is(err, raster.ErrUnsupported) {
		return fmt.Errorf("%w: image %q: %w", ErrUnsupportedFeature, id, err)
	}
	return fmt.Errorf("%w: image %q: %w", ErrMalformedInput, id, err)
}

// composite runs the transient buffer lifecycle of one image visit:
// allocate, fill, blit into dst under place, finish, free.
// The buffer never escapes this frame and, once allocated, is freed
// exactly once on every return path, always after a Finish. On failure
// paths that Finish is best effort and its error is dropped in favor of
// the original one.
func (r *renderer) composite(dst *vglite.Buffer, w, h int, format vglite.Format,
	place scene.Transform, fill func(*vglite.Buffer) error) error {
	buf := &vglite.Buffer{Width: w, Height: h, Format: format}
	if err := check("allocate", r.backend.Allocate(buf)); err != nil {
		return err
	}
	finished := false
	defer func() {
		if !finished {
			_ = r.backend.Finish()
		}
		r.backend.Free(buf)
	}()

	r.log.Debug("svglite: transient buffer", "width", w, "height", h, "format", format)

	if err := fill(buf); err != nil {
		return err
	}
	mat := vglite.MatrixFrom(place)
	if err := check("blit", r.backend.Blit(dst, buf, &mat, vglite.BlendNone, vglite.FilterBilinear)); err != nil {
		return err
	}
	finished = true
	return check("finish", r.backend.Finish())
}

// bufferSize converts a viewport extent to whole pixels.
func bufferSize(v float64) int {
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Ceil(v))
}
