package vglite

// MaxGradientStops is the capacity of a gradient descriptor's stop table.
const MaxGradientStops = 16

// LinearGradient is a backend-owned linear gradient descriptor.
//
// A descriptor is created with InitGradient, populated with SetGradient,
// prepared with UpdateGradient and positioned by writing through the
// pointer returned from GradientMatrix. The ramp runs along the x axis of
// gradient space from 0 to 255; the matrix maps gradient space into
// target space and is independent of the path matrix passed to
// DrawGradient.
type LinearGradient struct {
	// Colors are stop colors packed as A<<24 | B<<16 | G<<8 | R.
	Colors [MaxGradientStops]uint32
	// Stops are stop positions in 0..255.
	Stops [MaxGradientStops]uint32
	// Count is the number of populated entries.
	Count int
	// Matrix places the ramp in target space.
	Matrix Matrix

	// Handle is backend-private state (for example the ramp image).
	Handle any
}

// Backend is the rasterizer call contract.
//
// All methods are synchronous and must be called from a single goroutine.
// A non-nil error from any method other than Free is a *Status.
type Backend interface {
	// Init prepares the rasterizer for surfaces up to width x height
	// (the tessellation window).
	Init(width, height int) error

	// Close releases the rasterizer session.
	Close() error

	// Allocate assigns Stride, Handle and Memory to buf based on its
	// Width, Height and Format.
	Allocate(buf *Buffer) error

	// Free releases memory assigned by Allocate. Free on a buffer that
	// was not allocated is a no-op.
	Free(buf *Buffer)

	// Clear fills rect (or the whole buffer when rect is nil) with color,
	// packed as A<<24 | R<<16 | G<<8 | B.
	Clear(buf *Buffer, rect *Rect, color uint32) error

	// Draw fills path with a solid color packed as A<<24 | R<<16 | G<<8 | B.
	Draw(buf *Buffer, path *Path, rule FillRule, m *Matrix, blend BlendMode, color uint32) error

	// DrawGradient fills path with a prepared linear gradient.
	DrawGradient(buf *Buffer, path *Path, rule FillRule, m *Matrix, grad *LinearGradient, blend BlendMode) error

	// Blit composites src into dst. m maps src pixel space into dst.
	Blit(dst, src *Buffer, m *Matrix, blend BlendMode, filter Filter) error

	// Finish flushes all queued operations and waits for completion.
	Finish() error

	// InitGradient prepares an empty gradient descriptor.
	InitGradient(grad *LinearGradient) error

	// SetGradient populates the stop table. colors and stops must have
	// equal length, at most MaxGradientStops.
	SetGradient(grad *LinearGradient, colors, stops []uint32) error

	// UpdateGradient builds the backend ramp from the stop table.
	UpdateGradient(grad *LinearGradient) error

	// GradientMatrix returns the gradient's placement matrix for in-place
	// modification.
	GradientMatrix(grad *LinearGradient) *Matrix

	// ClearGradient releases resources held by the descriptor.
	ClearGradient(grad *LinearGradient) error
}
