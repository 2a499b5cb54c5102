package svglite

import (
	"log/slog"

	"github.com/gogpu/svglite/fontdb"
	"github.com/gogpu/svglite/internal/raster"
	"github.com/gogpu/svglite/vglite"
)

// Option configures a Render call.
//
// Example:
//
//	err := svglite.Render(b, target, tree,
//	    svglite.WithFontDB(db),
//	    svglite.WithFillRule(vglite.FillEvenOdd),
//	)
type Option func(*options)

// ImagePolicy selects how raster images with an unsupported sample layout
// (16-bit, CMYK, indexed, grayscale+alpha, animated) are handled.
type ImagePolicy = raster.Policy

const (
	// ImagePolicyFail aborts the render with ErrUnsupportedFeature.
	ImagePolicyFail = raster.PolicyFail
	// ImagePolicyZeroFill blits a fully transparent image instead.
	ImagePolicyZeroFill = raster.PolicyZeroFill
)

type options struct {
	fonts       *fontdb.DB
	logger      *slog.Logger
	fillRule    vglite.FillRule
	blend       vglite.BlendMode
	quality     vglite.Quality
	clearColor  uint32
	imagePolicy ImagePolicy
}

func defaultOptions() options {
	return options{
		fillRule:    vglite.FillNonZero,
		blend:       vglite.BlendSrcOver,
		quality:     vglite.QualityHigh,
		clearColor:  0x00000000,
		imagePolicy: ImagePolicyFail,
	}
}

// WithFontDB supplies the font database used to render text. Without one,
// text nodes are skipped with a warning.
func WithFontDB(db *fontdb.DB) Option {
	return func(o *options) {
		o.fonts = db
	}
}

// WithLogger overrides the package logger for one call.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithFillRule sets the fill rule used for paths that do not specify one.
// The default is vglite.FillNonZero.
func WithFillRule(r vglite.FillRule) Option {
	return func(o *options) {
		o.fillRule = r
	}
}

// WithBlend sets the blend mode for path fills. The default is
// vglite.BlendSrcOver. Image blits always use vglite.BlendNone.
func WithBlend(m vglite.BlendMode) Option {
	return func(o *options) {
		o.blend = m
	}
}

// WithQuality sets the antialiasing quality hint of every path.
func WithQuality(q vglite.Quality) Option {
	return func(o *options) {
		o.quality = q
	}
}

// WithClearColor sets the color the target is cleared to before drawing,
// packed as A<<24 | R<<16 | G<<8 | B. The default is transparent black.
func WithClearColor(c uint32) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithImagePolicy selects the handling of unsupported raster layouts.
func WithImagePolicy(p ImagePolicy) Option {
	return func(o *options) {
		o.imagePolicy = p
	}
}
