// Package vglite defines the call contract of a VGLite-style 2D vector
// rasterizer: buffers, pixel formats, encoded path streams, gradient
// descriptors and the [Backend] interface that executes draw calls.
//
// The package contains no rasterization code itself. Concrete backends
// (a hardware driver binding, the software reference backend in
// vglite/soft, or a recording test double) implement [Backend] and may be
// registered by name with [Register], following the database/sql driver
// pattern.
//
// # Session model
//
// A Backend is an implicitly stateful session. Calls happen in program
// order on one goroutine: Clear, any number of Draw/DrawGradient/Blit
// calls, then Finish before the target's pixels are read or the buffer is
// freed. Backends are not safe for concurrent use.
package vglite

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Format is a rasterizer pixel format.
type Format uint8

// Pixel formats understood by the rasterizer.
const (
	FormatRGBA8888 Format = iota
	FormatBGRA8888
	FormatRGBX8888
	FormatBGRX8888
	FormatRGB565
	FormatBGR565
	FormatRGBA4444
	FormatBGRA4444
	FormatA8
	FormatL8
	FormatIndex8

	formatCount
)

// formatInfo describes the memory layout of a Format.
type formatInfo struct {
	name          string
	bytesPerPixel int
	hasAlpha      bool
	grayscale     bool
}

var formatInfoTable = [formatCount]formatInfo{
	FormatRGBA8888: {name: "RGBA8888", bytesPerPixel: 4, hasAlpha: true},
	FormatBGRA8888: {name: "BGRA8888", bytesPerPixel: 4, hasAlpha: true},
	FormatRGBX8888: {name: "RGBX8888", bytesPerPixel: 4},
	FormatBGRX8888: {name: "BGRX8888", bytesPerPixel: 4},
	FormatRGB565:   {name: "RGB565", bytesPerPixel: 2},
	FormatBGR565:   {name: "BGR565", bytesPerPixel: 2},
	FormatRGBA4444: {name: "RGBA4444", bytesPerPixel: 2, hasAlpha: true},
	FormatBGRA4444: {name: "BGRA4444", bytesPerPixel: 2, hasAlpha: true},
	FormatA8:       {name: "A8", bytesPerPixel: 1, hasAlpha: true},
	FormatL8:       {name: "L8", bytesPerPixel: 1, grayscale: true},
	FormatIndex8:   {name: "INDEX8", bytesPerPixel: 1},
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// String returns the driver name of the format.
func (f Format) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
	return formatInfoTable[f].name
}

// BytesPerPixel returns the storage size of one pixel, or 0 for an
// unknown format.
func (f Format) BytesPerPixel() int {
	if !f.IsValid() {
		return 0
	}
	return formatInfoTable[f].bytesPerPixel
}

// HasAlpha reports whether the format stores coverage or transparency.
func (f Format) HasAlpha() bool {
	return f.IsValid() && formatInfoTable[f].hasAlpha
}

// IsGrayscale reports whether the format stores a single luminance channel.
func (f Format) IsGrayscale() bool {
	return f.IsValid() && formatInfoTable[f].grayscale
}

// TextureFormat returns the equivalent GPU texture format, for handing
// buffer memory to a WebGPU pipeline. Formats without an 8-bit unorm
// equivalent map to TextureFormatUndefined.
func (f Format) TextureFormat() gputypes.TextureFormat {
	switch f {
	case FormatRGBA8888, FormatRGBX8888:
		return gputypes.TextureFormatRGBA8Unorm
	case FormatBGRA8888, FormatBGRX8888:
		return gputypes.TextureFormatBGRA8Unorm
	case FormatL8, FormatA8:
		return gputypes.TextureFormatR8Unorm
	default:
		return gputypes.TextureFormatUndefined
	}
}

// Buffer describes a pixel surface.
//
// Width, Height and Format are set by the caller before [Backend.Allocate].
// Allocate fills in Stride, Handle and Memory. The top-level target is owned
// by the caller; transient buffers are created and freed by the renderer
// within a single image visit.
type Buffer struct {
	Width  int
	Height int
	Stride int
	Format Format

	// Handle is an opaque backend-specific object.
	Handle any

	// Memory is the CPU-visible pixel storage, Stride*Height bytes.
	Memory []byte
}

// Size returns the number of bytes spanned by the pixel rows.
func (b *Buffer) Size() int {
	return b.Stride * b.Height
}

// Row returns the bytes of row y, excluding stride padding.
func (b *Buffer) Row(y int) []byte {
	off := y * b.Stride
	return b.Memory[off : off+b.Width*b.Format.BytesPerPixel()]
}

// Rect is an integer pixel rectangle used by Clear.
type Rect struct {
	X, Y          int32
	Width, Height int32
}
