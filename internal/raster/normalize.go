package raster

import (
	"fmt"

	"github.com/gogpu/svglite/vglite"
)

// Policy selects how Normalize treats layouts it cannot convert.
type Policy uint8

const (
	// PolicyFail returns ErrUnsupported.
	PolicyFail Policy = iota
	// PolicyZeroFill produces a fully transparent RGBA8888 image of the
	// decoded size.
	PolicyZeroFill
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyFail:
		return "fail"
	case PolicyZeroFill:
		return "zero-fill"
	default:
		return "unknown"
	}
}

// Pixels is an image in a rasterizer pixel format, rows tightly packed.
type Pixels struct {
	Width  int
	Height int
	Format vglite.Format
	Pix    []byte
}

// Normalize converts a decoded image to rasterizer pixels:
//
//	Gray8  -> L8, copied unchanged
//	RGB8   -> RGBA8888, alpha 255 appended to every pixel
//	RGBA8  -> RGBA8888, copied after validating the data length
//
// Any other layout is handled according to policy.
func Normalize(img *Image, policy Policy) (*Pixels, error) {
	n := img.Width * img.Height
	switch img.Layout {
	case LayoutGray8:
		if len(img.Pix) != n {
			return nil, fmt.Errorf("%w: gray data is %d bytes, want %d", ErrMalformed, len(img.Pix), n)
		}
		return &Pixels{
			Width:  img.Width,
			Height: img.Height,
			Format: vglite.FormatL8,
			Pix:    append([]byte(nil), img.Pix...),
		}, nil

	case LayoutRGB8:
		if len(img.Pix) != n*3 {
			return nil, fmt.Errorf("%w: rgb data is %d bytes, want %d", ErrMalformed, len(img.Pix), n*3)
		}
		return &Pixels{
			Width:  img.Width,
			Height: img.Height,
			Format: vglite.FormatRGBA8888,
			Pix:    ExpandRGB(img.Pix),
		}, nil

	case LayoutRGBA8:
		if len(img.Pix) != n*4 {
			return nil, fmt.Errorf("%w: rgba data is %d bytes, want %d", ErrMalformed, len(img.Pix), n*4)
		}
		return &Pixels{
			Width:  img.Width,
			Height: img.Height,
			Format: vglite.FormatRGBA8888,
			Pix:    append([]byte(nil), img.Pix...),
		}, nil
	}

	if policy == PolicyZeroFill {
		return &Pixels{
			Width:  img.Width,
			Height: img.Height,
			Format: vglite.FormatRGBA8888,
			Pix:    make([]byte, n*4),
		}, nil
	}
	return nil, fmt.Errorf("%w: %s %s", ErrUnsupported, img.Container, img.Layout)
}

// ExpandRGB converts packed RGB triples to RGBA quadruples with alpha 255.
func ExpandRGB(rgb []byte) []byte {
	out := make([]byte, len(rgb)/3*4)
	for i, j := 0, 0; i+2 < len(rgb); i, j = i+3, j+4 {
		out[j+0] = rgb[i+0]
		out[j+1] = rgb[i+1]
		out[j+2] = rgb[i+2]
		out[j+3] = 0xff
	}
	return out
}

// CopyTo writes the pixels into an allocated buffer of the same size and
// format, honoring the buffer stride.
func (p *Pixels) CopyTo(buf *vglite.Buffer) error {
	if buf.Width != p.Width || buf.Height != p.Height || buf.Format != p.Format {
		return fmt.Errorf("%w: %dx%d %v into %dx%d %v buffer",
			ErrMalformed, p.Width, p.Height, p.Format, buf.Width, buf.Height, buf.Format)
	}
	row := p.Width * p.Format.BytesPerPixel()
	if buf.Stride < row || len(buf.Memory) < buf.Stride*(p.Height-1)+row {
		return fmt.Errorf("%w: buffer memory too small", ErrMalformed)
	}
	for y := 0; y < p.Height; y++ {
		copy(buf.Memory[y*buf.Stride:y*buf.Stride+row], p.Pix[y*row:(y+1)*row])
	}
	return nil
}
