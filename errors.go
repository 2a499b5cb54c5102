package svglite

import (
	"errors"
	"fmt"
)

// Error categories. Use errors.Is to classify an error returned by Render.
var (
	// ErrUnsupportedFeature is returned for content the renderer recognizes
	// but cannot draw: gradients with more than 16 stops and raster images
	// whose sample layout has no rasterizer equivalent.
	ErrUnsupportedFeature = errors.New("svglite: unsupported feature")

	// ErrMissingCapability marks content skipped because a collaborator
	// could not serve it (no font database, missing glyph, unavailable
	// bounding box). Render never returns it; it appears in log records.
	ErrMissingCapability = errors.New("svglite: missing capability")

	// ErrMalformedInput is returned when decoded image data is
	// inconsistent with its dimensions.
	ErrMalformedInput = errors.New("svglite: malformed input")

	// ErrBackendFailure matches every *BackendError.
	ErrBackendFailure = errors.New("svglite: backend failure")

	// ErrNilBackend is returned when Render is called without a backend.
	ErrNilBackend = errors.New("svglite: nil backend")

	// ErrNilTarget is returned when Render is called without a target buffer.
	ErrNilTarget = errors.New("svglite: nil target buffer")

	// ErrNilTree is returned when Render is called without a scene.
	ErrNilTree = errors.New("svglite: nil scene tree")
)

// BackendError reports a rasterizer call that did not succeed.
// Err is normally a *vglite.Status carrying the original code.
type BackendError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *BackendError) Error() string {
	return fmt.Sprintf("svglite: backend %s: %v", e.Op, e.Err)
}

// Unwrap returns the backend status.
func (e *BackendError) Unwrap() error { return e.Err }

// Is reports whether target is ErrBackendFailure.
func (e *BackendError) Is(target error) bool { return target == ErrBackendFailure }

// check wraps a non-nil backend result.
func check(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}
