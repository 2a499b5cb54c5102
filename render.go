package svglite

import (
	"log/slog"

	"github.com/gogpu/svglite/fontdb"
	"github.com/gogpu/svglite/scene"
	"github.com/gogpu/svglite/vglite"
)

// Render draws tree into target.
//
// The target must already be allocated by b and stays owned by the
// caller. Render clears it, maps the tree's viewbox onto the full target
// size, walks the scene and finishes the backend session before returning.
//
// The first backend failure or malformed image aborts the walk; no
// partial result is salvaged and no call is retried.
func Render(b vglite.Backend, target *vglite.Buffer, tree *scene.Tree, opts ...Option) error {
	if b == nil {
		return ErrNilBackend
	}
	if target == nil {
		return ErrNilTarget
	}
	if tree == nil || tree.Root == nil {
		return ErrNilTree
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &renderer{backend: b, opts: o, log: renderLogger(o)}

	if err := check("clear", b.Clear(target, nil, o.clearColor)); err != nil {
		return err
	}
	if err := r.renderTree(target, tree, o.fonts); err != nil {
		return err
	}
	return check("finish", b.Finish())
}

// renderer holds the per-call state shared by every frame of the walk.
// Transforms and the font database travel as arguments so that each stack
// frame owns its own copy.
type renderer struct {
	backend vglite.Backend
	opts    options
	log     *slog.Logger
}

// ViewBoxTransform returns the matrix that maps the document viewbox onto
// a width x height device surface: the viewbox origin lands on (0, 0) and
// its far corner on (width, height).
func ViewBoxTransform(vb scene.Rect, width, height int) scene.Transform {
	return scene.Identity().
		Scale(float64(width)/vb.Width, float64(height)/vb.Height).
		Translate(-vb.X, -vb.Y)
}

// renderTree walks tree into dst with a fresh viewbox transform.
func (r *renderer) renderTree(dst *vglite.Buffer, tree *scene.Tree, fonts *fontdb.DB) error {
	if tree.ViewBox.IsEmpty() {
		r.log.Warn("svglite: skipping tree with empty viewbox",
			"width", tree.ViewBox.Width, "height", tree.ViewBox.Height)
		return nil
	}
	m := ViewBoxTransform(tree.ViewBox, dst.Width, dst.Height)
	return r.walk(tree.Root, m, dst, fonts)
}
