package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Decode errors.
var (
	// ErrUnsupported is returned for containers or sample layouts that
	// cannot be converted to rasterizer pixels.
	ErrUnsupported = errors.New("raster: unsupported image")

	// ErrMalformed is returned when decoded data is inconsistent with its
	// declared dimensions.
	ErrMalformed = errors.New("raster: malformed image")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("raster: empty data")

	// ErrTooLarge is returned when the image exceeds MaxPixels.
	ErrTooLarge = errors.New("raster: image too large")
)

// MaxPixels bounds width*height of a decoded image.
const MaxPixels = 1 << 26

// Image is a decoded image in its classified layout.
//
// For supported layouts Pix holds tightly packed rows of
// Layout.BytesPerPixel() bytes per pixel with straight (non-premultiplied)
// alpha. For unsupported layouts Pix is nil.
type Image struct {
	Width     int
	Height    int
	Layout    Layout
	Container Container
	Pix       []byte
}

// Decode sniffs, decodes and classifies an encoded image.
func Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	c := Sniff(data)
	if c == ContainerUnknown {
		return nil, fmt.Errorf("%w: unrecognized container", ErrUnsupported)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("raster: decode %s config: %w", c, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrMalformed, cfg.Width, cfg.Height)
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	switch c {
	case ContainerPNG:
		return decodePNG(data)
	case ContainerGIF:
		return decodeGIF(data)
	default:
		img, err := decodeStill(c, data)
		if err != nil {
			return nil, err
		}
		return fromImage(img, c, classify(img)), nil
	}
}

func decodeStill(c Container, data []byte) (image.Image, error) {
	r := bytes.NewReader(data)
	var (
		img image.Image
		err error
	)
	switch c {
	case ContainerJPEG:
		img, err = jpeg.Decode(r)
	case ContainerBMP:
		img, err = bmp.Decode(r)
	case ContainerTIFF:
		img, err = tiff.Decode(r)
	case ContainerWebP:
		img, err = webp.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, c)
	}
	if err != nil {
		return nil, fmt.Errorf("raster: decode %s: %w", c, err)
	}
	return img, nil
}

func decodePNG(data []byte) (*Image, error) {
	hdr, _ := readPNGHeader(data)
	if l, ok := hdr.layout(); ok {
		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("raster: decode png: %w", err)
		}
		return &Image{Width: cfg.Width, Height: cfg.Height, Layout: l, Container: ContainerPNG}, nil
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("raster: decode png: %w", err)
	}
	l := classify(img)
	// The Go decoder returns *image.RGBA for opaque truecolor.
	if hdr.colorType == pngColorRGB && l == LayoutRGBA8 {
		if _, opaque := img.(*image.RGBA); opaque {
			l = LayoutRGB8
		}
	}
	return fromImage(img, ContainerPNG, l), nil
}

func decodeGIF(data []byte) (*Image, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("raster: decode gif: %w", err)
	}
	l := LayoutIndexed
	if len(g.Image) > 1 {
		l = LayoutAnimated
	}
	return &Image{
		Width:     g.Config.Width,
		Height:    g.Config.Height,
		Layout:    l,
		Container: ContainerGIF,
	}, nil
}

// classify maps a decoded Go image to its sample layout.
func classify(img image.Image) Layout {
	switch m := img.(type) {
	case *image.Gray:
		return LayoutGray8
	case *image.Gray16:
		return LayoutGray16
	case *image.Paletted:
		return LayoutIndexed
	case *image.CMYK:
		return LayoutCMYK
	case *image.YCbCr:
		return LayoutRGB8
	case *image.NYCbCrA, *image.NRGBA:
		return LayoutRGBA8
	case *image.RGBA64, *image.NRGBA64:
		return LayoutRGBA16
	case *image.RGBA:
		if m.Opaque() {
			return LayoutRGB8
		}
		return LayoutRGBA8
	default:
		if img.ColorModel() == color.GrayModel {
			return LayoutGray8
		}
		return LayoutRGBA8
	}
}

// fromImage packs img into l. Unsupported layouts carry no pixels.
func fromImage(img image.Image, c Container, l Layout) *Image {
	b := img.Bounds()
	out := &Image{Width: b.Dx(), Height: b.Dy(), Layout: l, Container: c}
	if !l.Supported() {
		return out
	}

	bpp := l.BytesPerPixel()
	out.Pix = make([]byte, out.Width*out.Height*bpp)

	if g, ok := img.(*image.Gray); ok && l == LayoutGray8 {
		for y := 0; y < out.Height; y++ {
			src := g.Pix[y*g.Stride : y*g.Stride+out.Width]
			copy(out.Pix[y*out.Width:], src)
		}
		return out
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch l {
			case LayoutGray8:
				out.Pix[i] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			case LayoutRGB8:
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				out.Pix[i+0], out.Pix[i+1], out.Pix[i+2] = c.R, c.G, c.B
			case LayoutRGBA8:
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				out.Pix[i+0], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = c.R, c.G, c.B, c.A
			}
			i += bpp
		}
	}
	return out
}
