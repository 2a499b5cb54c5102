package svglite

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/svglite/fontdb"
	"github.com/gogpu/svglite/scene"
	"github.com/gogpu/svglite/vglite"
)

// DefaultFontSize is used for text runs without a positive size.
const DefaultFontSize = 12

// drawText renders a text run as glyph outline paths. The resulting
// sub-scene is walked without a font database so it can never expand
// text again.
func (r *renderer) drawText(t *scene.Text, m scene.Transform, dst *vglite.Buffer, fonts *fontdb.DB) error {
	if !t.Visible() || t.Content == "" || t.Fill == nil {
		return nil
	}
	if fonts == nil {
		r.log.Warn("svglite: skipping text",
			"id", t.ID, "reason", fmt.Errorf("%w: no font database", ErrMissingCapability))
		return nil
	}

	face, err := fonts.Query(families(t.Family)...)
	if err != nil {
		r.log.Warn("svglite: skipping text",
			"id", t.ID, "reason", fmt.Errorf("%w: %w", ErrMissingCapability, err))
		return nil
	}

	glyphs := r.layoutText(t, face)
	if len(glyphs.Children) == 0 {
		return nil
	}
	return r.walk(glyphs, m, dst, nil)
}

// layoutText places one path per visible glyph along the baseline,
// advancing the pen by glyph advance plus pair kerning.
func (r *renderer) layoutText(t *scene.Text, face *fontdb.Face) *scene.Group {
	size := t.Size
	if !(size > 0) {
		size = DefaultFontSize
	}
	fill := &scene.Fill{Paint: t.Fill.Paint, Rule: scene.RuleNonZero}

	g := scene.NewGroup()
	g.ID = t.ID
	pen := t.X
	var (
		prev    sfnt.GlyphIndex
		hasPrev bool
	)
	for _, ch := range norm.NFC.String(t.Content) {
		gid, err := face.GlyphIndex(ch)
		if err != nil {
			r.log.Warn("svglite: skipping glyph",
				"id", t.ID, "rune", string(ch), "reason", fmt.Errorf("%w: %w", ErrMissingCapability, err))
			hasPrev = false
			continue
		}
		if hasPrev {
			pen += face.Kern(prev, gid, size)
		}
		prev, hasPrev = gid, true

		outline, err := face.Outline(gid, size)
		if err != nil {
			r.log.Warn("svglite: skipping glyph",
				"id", t.ID, "rune", string(ch), "reason", fmt.Errorf("%w: %w", ErrMissingCapability, err))
			pen += face.Advance(gid, size)
			continue
		}
		if !outline.IsEmpty() {
			p := outlinePath(outline, pen, t.Y)
			p.ID = t.ID
			p.Fill = fill
			g.Add(p)
		}
		pen += outline.Advance
	}
	return g
}

// outlinePath converts a glyph outline to a path with its origin at
// (x, baseline). Each contour is closed explicitly.
func outlinePath(o *fontdb.Outline, x, baseline float64) *scene.Path {
	p := scene.NewPath()
	open := false
	for _, s := range o.Segments {
		pt := s.Points
		switch s.Op {
		case fontdb.OutlineOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(x+pt[0].X, baseline+pt[0].Y)
			open = true
		case fontdb.OutlineOpLineTo:
			p.LineTo(x+pt[0].X, baseline+pt[0].Y)
		case fontdb.OutlineOpQuadTo:
			p.QuadTo(x+pt[0].X, baseline+pt[0].Y, x+pt[1].X, baseline+pt[1].Y)
		case fontdb.OutlineOpCubicTo:
			p.CubicTo(x+pt[0].X, baseline+pt[0].Y, x+pt[1].X, baseline+pt[1].Y, x+pt[2].X, baseline+pt[2].Y)
		}
	}
	if open {
		p.Close()
	}
	return p
}

// families splits a CSS font-family list.
func families(list string) []string {
	var out []string
	for _, f := range strings.Split(list, ",") {
		f = strings.Trim(strings.TrimSpace(f), `"'`)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
