package svglite

import (
	"log/slog"
	"sync/atomic"
)

// silent discards every record; its handler reports every level disabled,
// so attribute arguments are never formatted.
var silent = slog.New(slog.DiscardHandler)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(silent)
}

// SetLogger sets the logger Render uses when no [WithLogger] option is
// given. Pass nil to go back to the silent default. SetLogger may be
// called while renders are running; a render keeps the logger it started
// with.
//
// svglite never fails a render to report something through the logger.
// It logs at two levels:
//   - [slog.LevelWarn]: content left out of the output because a
//     collaborator could not supply it. This covers text without a font
//     database or a matching face, glyphs without an outline, and paths
//     without a bounding box. Every such record carries an "id" attribute
//     and a "reason" wrapping [ErrMissingCapability].
//   - [slog.LevelDebug]: content that draws nothing by definition, such as
//     hidden groups, singular transforms, empty viewports, radial gradients,
//     patterns and strokes. Decoded image layouts and transient buffer
//     sizes are logged at this level too.
//
// The command-line tool installs its charmbracelet/log logger here.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// renderLogger picks the per-call logger, falling back to the package one.
func renderLogger(o options) *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return Logger()
}
