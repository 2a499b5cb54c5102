package svglite

import (
	"fmt"

	"github.com/gogpu/svglite/fontdb"
	"github.com/gogpu/svglite/scene"
	"github.com/gogpu/svglite/vglite"
)

// walk visits n and its descendants in document order.
// parent is the accumulated transform of n's parent; the transform passed
// to children is parent composed with n's local transform. A node whose
// local transform is singular covers no area and is skipped with its
// subtree.
func (r *renderer) walk(n scene.Node, parent scene.Transform, dst *vglite.Buffer, fonts *fontdb.DB) error {
	local := n.LocalTransform()
	if !local.IsInvertible() {
		r.log.Debug("svglite: skipping node with singular transform", "node", fmt.Sprintf("%T", n))
		return nil
	}
	m := parent.Append(local)

	switch n := n.(type) {
	case *scene.Group:
		if !n.Visible() {
			r.log.Debug("svglite: skipping hidden group", "id", n.ID)
			return nil
		}
		for _, child := range n.Children {
			if err := r.walk(child, m, dst, fonts); err != nil {
				return err
			}
		}
		return nil
	case *scene.Path:
		return r.drawPath(n, m, dst)
	case *scene.Image:
		return r.drawImage(n, m, dst, fonts)
	case *scene.Text:
		return r.drawText(n, m, dst, fonts)
	default:
		return fmt.Errorf("%w: node %T", ErrUnsupportedFeature, n)
	}
}

// fillRule resolves a path's rule against the configured default.
func (r *renderer) fillRule(rule scene.FillRule) vglite.FillRule {
	switch rule {
	case scene.RuleNonZero:
		return vglite.FillNonZero
	case scene.RuleEvenOdd:
		return vglite.FillEvenOdd
	default:
		return r.opts.fillRule
	}
}

// drawPath fills a visible, non-empty path.
func (r *renderer) drawPath(p *scene.Path, m scene.Transform, dst *vglite.Buffer) error {
	if !p.Visible() || p.IsEmpty() {
		return nil
	}
	if p.Stroke != nil {
		r.log.Debug("svglite: stroke not rendered", "id", p.ID)
	}
	if p.Fill == nil || p.Fill.Paint == nil {
		return nil
	}

	bbox, ok := p.BBox()
	if !ok {
		r.log.Warn("svglite: skipping path",
			"id", p.ID, "reason", fmt.Errorf("%w: bounding box unavailable", ErrMissingCapability))
		return nil
	}

	data := vglite.GetPathData()
	defer vglite.PutPathData(data)
	data.Encode(p)

	vp := &vglite.Path{
		Bounds:  vglite.BoundsFrom(bbox),
		Quality: r.opts.quality,
		Data:    data,
	}
	return r.fill(dst, vp, r.fillRule(p.Fill.Rule), m, bbox, p.Fill.Paint, p.ID)
}
