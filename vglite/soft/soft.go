// Package soft is a CPU implementation of the vglite.Backend contract.
//
// It rasterizes encoded paths with golang.org/x/image/vector and
// composites buffers with golang.org/x/image/draw. Pixel memory holds
// straight (non-premultiplied) color in the buffer's format. Supported
// pixel formats for drawing are the 32-bit formats, L8 and A8; other
// valid formats can be allocated but drawing into them reports
// NOT_SUPPORT.
//
// The backend registers itself as "soft":
//
//	import _ "github.com/gogpu/svglite/vglite/soft"
//
//	b, err := vglite.NewBackend("soft")
package soft

import (
	"github.com/gogpu/svglite/vglite"
)

// Name is the registry name of this backend.
const Name = "soft"

func init() {
	vglite.Register(Name, func() vglite.Backend { return New() })
}

// Backend is the software rasterizer.
type Backend struct {
	width, height int
}

// New returns a software backend.
func New() *Backend {
	return &Backend{}
}

// owner marks buffers allocated by a Backend.
type owner struct{ b *Backend }

// Init records the tessellation window.
func (b *Backend) Init(width, height int) error {
	if width <= 0 || height <= 0 {
		return vglite.Check("init", vglite.InvalidArgument)
	}
	b.width, b.height = width, height
	return nil
}

// Close implements vglite.Backend.
func (b *Backend) Close() error {
	b.width, b.height = 0, 0
	return nil
}

// Allocate assigns tightly packed memory: the stride is Width times the
// format's bytes per pixel.
func (b *Backend) Allocate(buf *vglite.Buffer) error {
	if buf == nil || buf.Width <= 0 || buf.Height <= 0 {
		return vglite.Check("allocate", vglite.InvalidArgument)
	}
	if !buf.Format.IsValid() {
		return vglite.Check("allocate", vglite.NotSupport)
	}
	buf.Stride = buf.Width * buf.Format.BytesPerPixel()
	buf.Memory = make([]byte, buf.Stride*buf.Height)
	buf.Handle = owner{b}
	return nil
}

// Free releases memory assigned by Allocate.
func (b *Backend) Free(buf *vglite.Buffer) {
	if buf == nil {
		return
	}
	if o, ok := buf.Handle.(owner); !ok || o.b != b {
		return
	}
	buf.Memory = nil
	buf.Handle = nil
	buf.Stride = 0
}

// Clear fills rect, clipped to the buffer, with color packed as ARGB.
func (b *Backend) Clear(buf *vglite.Buffer, rect *vglite.Rect, color uint32) error {
	s, err := surfaceOf("clear", buf)
	if err != nil {
		return err
	}
	x0, y0, x1, y1 := 0, 0, buf.Width, buf.Height
	if rect != nil {
		x0 = max(x0, int(rect.X))
		y0 = max(y0, int(rect.Y))
		x1 = min(x1, int(rect.X)+int(rect.Width))
		y1 = min(y1, int(rect.Y)+int(rect.Height))
	}
	c := unpackARGB(color)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.store(x, y, c)
		}
	}
	return nil
}

// Finish implements vglite.Backend. All work completes synchronously.
func (b *Backend) Finish() error { return nil }

var _ vglite.Backend = (*Backend)(nil)
