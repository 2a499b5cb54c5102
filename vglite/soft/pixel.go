package soft

import (
	"image"
	"image/color"

	"github.com/gogpu/svglite/vglite"
)

// pixel is a premultiplied color with components in [0, 1].
type pixel struct {
	R, G, B, A float32
}

func (p pixel) scale(k float32) pixel {
	return pixel{p.R * k, p.G * k, p.B * k, p.A * k}
}

func (p pixel) lerp(q pixel, t float32) pixel {
	return pixel{
		p.R + (q.R-p.R)*t,
		p.G + (q.G-p.G)*t,
		p.B + (q.B-p.B)*t,
		p.A + (q.A-p.A)*t,
	}
}

// straight converts p to 8-bit straight alpha.
func (p pixel) straight() color.NRGBA {
	if p.A <= 0 {
		return color.NRGBA{}
	}
	inv := 1 / p.A
	return color.NRGBA{
		R: toByte(p.R * inv),
		G: toByte(p.G * inv),
		B: toByte(p.B * inv),
		A: toByte(p.A),
	}
}

func fromStraight(r, g, b, a uint8) pixel {
	fa := float32(a) / 255
	return pixel{
		R: float32(r) / 255 * fa,
		G: float32(g) / 255 * fa,
		B: float32(b) / 255 * fa,
		A: fa,
	}
}

// unpackARGB decodes a solid color packed as A<<24 | R<<16 | G<<8 | B.
func unpackARGB(c uint32) pixel {
	return fromStraight(uint8(c>>16), uint8(c>>8), uint8(c), uint8(c>>24))
}

// unpackABGR decodes a gradient stop packed as A<<24 | B<<16 | G<<8 | R.
func unpackABGR(c uint32) pixel {
	return fromStraight(uint8(c), uint8(c>>8), uint8(c>>16), uint8(c>>24))
}

func toByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// layout32 holds the byte offsets of each channel within a 32-bit pixel.
// A negative alpha offset marks an opaque X channel.
type layout32 struct{ r, g, b, a int }

var layouts32 = map[vglite.Format]layout32{
	vglite.FormatRGBA8888: {0, 1, 2, 3},
	vglite.FormatBGRA8888: {2, 1, 0, 3},
	vglite.FormatRGBX8888: {0, 1, 2, -1},
	vglite.FormatBGRX8888: {2, 1, 0, -1},
}

// surface gives pixel access to a buffer's memory.
type surface struct {
	buf *vglite.Buffer
	l32 layout32
	bpp int
}

// surfaceOf validates buf as a drawing target.
func surfaceOf(op string, buf *vglite.Buffer) (*surface, error) {
	if buf == nil || buf.Width <= 0 || buf.Height <= 0 {
		return nil, vglite.Check(op, vglite.InvalidArgument)
	}
	s := &surface{buf: buf, bpp: buf.Format.BytesPerPixel()}
	if l, ok := layouts32[buf.Format]; ok {
		s.l32 = l
	} else if buf.Format != vglite.FormatL8 && buf.Format != vglite.FormatA8 {
		return nil, vglite.Check(op, vglite.NotSupport)
	}
	if buf.Stride < buf.Width*s.bpp || len(buf.Memory) < buf.Stride*(buf.Height-1)+buf.Width*s.bpp {
		return nil, vglite.Check(op, vglite.InvalidArgument)
	}
	return s, nil
}

func (s *surface) load(x, y int) pixel {
	off := y*s.buf.Stride + x*s.bpp
	m := s.buf.Memory
	switch s.buf.Format {
	case vglite.FormatL8:
		v := float32(m[off]) / 255
		return pixel{v, v, v, 1}
	case vglite.FormatA8:
		return pixel{A: float32(m[off]) / 255}
	}
	a := uint8(255)
	if s.l32.a >= 0 {
		a = m[off+s.l32.a]
	}
	return fromStraight(m[off+s.l32.r], m[off+s.l32.g], m[off+s.l32.b], a)
}

func (s *surface) store(x, y int, p pixel) {
	off := y*s.buf.Stride + x*s.bpp
	m := s.buf.Memory
	c := p.straight()
	switch s.buf.Format {
	case vglite.FormatL8:
		lum, _, _ := color.RGBToYCbCr(c.R, c.G, c.B)
		m[off] = lum
		return
	case vglite.FormatA8:
		m[off] = c.A
		return
	}
	m[off+s.l32.r] = c.R
	m[off+s.l32.g] = c.G
	m[off+s.l32.b] = c.B
	if s.l32.a >= 0 {
		m[off+s.l32.a] = c.A
	}
}

// surfaceImage adapts a surface to draw.Image for x/image/draw.
type surfaceImage struct{ s *surface }

func (im surfaceImage) ColorModel() color.Model { return color.NRGBAModel }

func (im surfaceImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.s.buf.Width, im.s.buf.Height)
}

func (im surfaceImage) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(im.Bounds()) {
		return color.NRGBA{}
	}
	return im.s.load(x, y).straight()
}

func (im surfaceImage) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}).In(im.Bounds()) {
		return
	}
	r, g, b, a := c.RGBA()
	im.s.store(x, y, pixel{
		R: float32(r) / 0xffff,
		G: float32(g) / 0xffff,
		B: float32(b) / 0xffff,
		A: float32(a) / 0xffff,
	})
}

// blend combines premultiplied source s over destination d.
func blend(mode vglite.BlendMode, s, d pixel) pixel {
	switch mode {
	case vglite.BlendNone:
		return s
	case vglite.BlendDstOver:
		return pixel{
			d.R + s.R*(1-d.A),
			d.G + s.G*(1-d.A),
			d.B + s.B*(1-d.A),
			d.A + s.A*(1-d.A),
		}
	case vglite.BlendSrcIn:
		return s.scale(d.A)
	case vglite.BlendDstIn:
		return d.scale(s.A)
	case vglite.BlendMultiply:
		return pixel{
			s.R*(1-d.A) + d.R*(1-s.A) + s.R*d.R,
			s.G*(1-d.A) + d.G*(1-s.A) + s.G*d.G,
			s.B*(1-d.A) + d.B*(1-s.A) + s.B*d.B,
			s.A + d.A*(1-s.A),
		}
	case vglite.BlendScreen:
		return pixel{
			s.R + d.R - s.R*d.R,
			s.G + d.G - s.G*d.G,
			s.B + d.B - s.B*d.B,
			s.A + d.A - s.A*d.A,
		}
	case vglite.BlendAdditive:
		return pixel{
			min(s.R+d.R, 1),
			min(s.G+d.G, 1),
			min(s.B+d.B, 1),
			min(s.A+d.A, 1),
		}
	default: // BlendSrcOver
		return pixel{
			s.R + d.R*(1-s.A),
			s.G + d.G*(1-s.A),
			s.B + d.B*(1-s.A),
			s.A + d.A*(1-s.A),
		}
	}
}

// composite writes the blend of src into (x, y) weighted by coverage.
func (s *surface) composite(x, y int, src pixel, mode vglite.BlendMode, coverage float32) {
	d := s.load(x, y)
	out := blend(mode, src, d)
	if coverage < 1 {
		out = d.lerp(out, coverage)
	}
	s.store(x, y, out)
}
