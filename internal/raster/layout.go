// Package raster decodes embedded raster images and normalizes their pixels
// into a format the rasterizer can blit.
//
// Decoding happens in two steps. [Decode] sniffs the container, decodes it
// and classifies the sample layout of the result ([Layout]). [Normalize]
// then converts supported layouts (8-bit gray, 8-bit RGB, 8-bit RGBA) to
// rasterizer pixels and rejects or zero-fills everything else according to
// a [Policy].
package raster

// Layout is the sample layout of a decoded image.
type Layout uint8

const (
	// LayoutGray8 is 8-bit grayscale (1 byte per pixel).
	LayoutGray8 Layout = iota

	// LayoutGray16 is 16-bit grayscale (2 bytes per pixel).
	LayoutGray16

	// LayoutGrayAlpha is grayscale with an alpha channel (8 or 16 bit).
	LayoutGrayAlpha

	// LayoutRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	LayoutRGB8

	// LayoutRGB16 is 48-bit RGB.
	LayoutRGB16

	// LayoutRGBA8 is 32-bit RGBA with straight alpha (4 bytes per pixel).
	LayoutRGBA8

	// LayoutRGBA16 is 64-bit RGBA.
	LayoutRGBA16

	// LayoutCMYK is 32-bit CMYK.
	LayoutCMYK

	// LayoutIndexed is palette-indexed color.
	LayoutIndexed

	// LayoutAnimated is a multi-frame image.
	LayoutAnimated

	layoutCount
)

// LayoutInfo contains metadata about a sample layout.
type LayoutInfo struct {
	// Name is a short human-readable name.
	Name string

	// BytesPerPixel is the packed size of one pixel, 0 if not fixed.
	BytesPerPixel int

	// Supported reports whether Normalize converts this layout.
	Supported bool
}

var layoutInfoTable = [layoutCount]LayoutInfo{
	LayoutGray8:     {Name: "Gray8", BytesPerPixel: 1, Supported: true},
	LayoutGray16:    {Name: "Gray16", BytesPerPixel: 2},
	LayoutGrayAlpha: {Name: "GrayAlpha"},
	LayoutRGB8:      {Name: "RGB8", BytesPerPixel: 3, Supported: true},
	LayoutRGB16:     {Name: "RGB16", BytesPerPixel: 6},
	LayoutRGBA8:     {Name: "RGBA8", BytesPerPixel: 4, Supported: true},
	LayoutRGBA16:    {Name: "RGBA16", BytesPerPixel: 8},
	LayoutCMYK:      {Name: "CMYK", BytesPerPixel: 4},
	LayoutIndexed:   {Name: "Indexed", BytesPerPixel: 1},
	LayoutAnimated:  {Name: "Animated"},
}

// Info returns metadata for the layout.
func (l Layout) Info() LayoutInfo {
	if l >= layoutCount {
		return LayoutInfo{Name: "Unknown"}
	}
	return layoutInfoTable[l]
}

// String returns the layout name.
func (l Layout) String() string {
	return l.Info().Name
}

// BytesPerPixel returns the packed pixel size, 0 if not fixed.
func (l Layout) BytesPerPixel() int {
	return l.Info().BytesPerPixel
}

// Supported reports whether Normalize can convert the layout.
func (l Layout) Supported() bool {
	return l.Info().Supported
}

// Container is an encoded image file format.
type Container uint8

// Recognized containers.
const (
	ContainerUnknown Container = iota
	ContainerPNG
	ContainerJPEG
	ContainerGIF
	ContainerBMP
	ContainerTIFF
	ContainerWebP
)

var containerNames = [...]string{
	ContainerUnknown: "unknown",
	ContainerPNG:     "png",
	ContainerJPEG:    "jpeg",
	ContainerGIF:     "gif",
	ContainerBMP:     "bmp",
	ContainerTIFF:    "tiff",
	ContainerWebP:    "webp",
}

// String returns the lowercase format name.
func (c Container) String() string {
	if int(c) < len(containerNames) {
		return containerNames[c]
	}
	return "unknown"
}
