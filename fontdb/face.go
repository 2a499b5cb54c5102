package fontdb

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face is one parsed font face.
type Face struct {
	Family   string
	FullName string
	Source   string

	font *sfnt.Font

	// mu guards buf, which sfnt requires per call.
	mu  sync.Mutex
	buf sfnt.Buffer
}

func newFace(f *sfnt.Font, source string) *Face {
	face := &Face{font: f, Source: source}
	if name, err := f.Name(&face.buf, sfnt.NameIDFamily); err == nil {
		face.Family = name
	}
	if name, err := f.Name(&face.buf, sfnt.NameIDFull); err == nil {
		face.FullName = name
	}
	return face
}

// UnitsPerEm returns the design units per em square.
func (f *Face) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// NumGlyphs returns the number of glyphs in the face.
func (f *Face) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// GlyphIndex returns the glyph for r. It returns ErrGlyphNotFound if the
// face maps r to the missing-glyph index 0.
func (f *Face) GlyphIndex(r rune) (sfnt.GlyphIndex, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gid, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0, fmt.Errorf("fontdb: glyph index %q: %w", r, err)
	}
	if gid == 0 {
		return 0, fmt.Errorf("%w: %q in %s", ErrGlyphNotFound, r, f.Family)
	}
	return gid, nil
}

func ppem(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// Outline extracts the outline of gid scaled to size pixels per em.
// Coordinates are relative to the glyph origin on the baseline with Y
// pointing down.
func (f *Face) Outline(gid sfnt.GlyphIndex, size float64) (*Outline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := &Outline{GID: gid, Advance: f.advance(gid, size)}

	segs, err := f.font.LoadGlyph(&f.buf, gid, ppem(size), nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return nil, fmt.Errorf("fontdb: glyph %d is a color glyph: %w", gid, err)
		}
		return nil, fmt.Errorf("fontdb: load glyph %d: %w", gid, err)
	}
	out.Segments = convertSegments(segs)
	return out, nil
}

// Advance returns the horizontal advance of gid at size pixels per em.
func (f *Face) Advance(gid sfnt.GlyphIndex, size float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.advance(gid, size)
}

func (f *Face) advance(gid sfnt.GlyphIndex, size float64) float64 {
	adv, err := f.font.GlyphAdvance(&f.buf, gid, ppem(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return float64(adv) / 64
}

// Kern returns the kerning adjustment between a and b at size pixels per
// em, or 0 when the face has no kerning for the pair.
func (f *Face) Kern(a, b sfnt.GlyphIndex, size float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	k, err := f.font.Kern(&f.buf, a, b, ppem(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return float64(k) / 64
}
