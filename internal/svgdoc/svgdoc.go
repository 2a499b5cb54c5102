// Package svgdoc loads SVG documents into scene trees.
//
// The loader covers the static subset of SVG 1.1 the renderer can draw:
// structural elements (svg, g, a, switch, use, symbol, defs), basic shapes,
// path data, embedded images, single-run text and gradient paint servers.
// Stroke attributes are parsed and carried on paths but never rendered.
// Scripts, animation, filters, masks, clip paths and CSS style sheets are
// ignored.
//
// Documents are read in two passes. The first pass builds a generic
// element tree with encoding/xml and indexes ids, so paint servers and
// use targets may be referenced before they are defined. The second pass
// converts elements to scene nodes with inherited presentation properties.
package svgdoc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/svglite/scene"
)

// Loader errors.
var (
	// ErrMalformed is returned when the document is not well-formed XML.
	ErrMalformed = errors.New("svgdoc: malformed document")

	// ErrNotSVG is returned when the root element is not <svg>.
	ErrNotSVG = errors.New("svgdoc: root element is not svg")

	// ErrNoSize is returned when the root element has neither a usable
	// viewBox nor a positive width and height.
	ErrNoSize = errors.New("svgdoc: document has no viewBox or size")

	// ErrBadPathData is returned by ParsePath for invalid path data.
	ErrBadPathData = errors.New("svgdoc: bad path data")
)

// maxImageDepth bounds how deeply SVG images may embed SVG images.
const maxImageDepth = 8

type options struct {
	logger      *slog.Logger
	resourceDir string
	depth       int
}

// Option configures Parse.
type Option func(*options)

// WithLogger sets the logger that receives warnings about content the
// loader skips or repairs. Warnings are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithResourceDir allows image elements to reference files relative to
// dir. Without it only data: URIs are loaded. References cannot escape
// dir.
func WithResourceDir(dir string) Option {
	return func(o *options) {
		o.resourceDir = dir
	}
}

func withDepth(depth int) Option {
	return func(o *options) {
		o.depth = depth
	}
}

// Parse reads an SVG document and converts it to a scene tree.
func Parse(r io.Reader, opts ...Option) (*scene.Tree, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	root, err := readElements(r)
	if err != nil {
		return nil, err
	}
	if root.name != "svg" {
		return nil, fmt.Errorf("%w: found %q", ErrNotSVG, root.name)
	}
	return newBuilder(o, root).build(root)
}

// ParseFile reads the SVG document at path. Relative image references
// resolve against the directory of path unless WithResourceDir is given.
func ParseFile(path string, opts ...Option) (*scene.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("svgdoc: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	opts = append([]Option{WithResourceDir(filepath.Dir(path))}, opts...)
	return Parse(f, opts...)
}
