package raster

import (
	"bytes"
	"encoding/binary"
)

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic = []byte{0xff, 0xd8, 0xff}
	gif87     = []byte("GIF87a")
	gif89     = []byte("GIF89a")
	bmpMagic  = []byte("BM")
	tiffLE    = []byte("II*\x00")
	tiffBE    = []byte("MM\x00*")
)

// Sniff identifies the container format from the leading bytes of data.
func Sniff(data []byte) Container {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return ContainerPNG
	case bytes.HasPrefix(data, jpegMagic):
		return ContainerJPEG
	case bytes.HasPrefix(data, gif87), bytes.HasPrefix(data, gif89):
		return ContainerGIF
	case bytes.HasPrefix(data, bmpMagic):
		return ContainerBMP
	case bytes.HasPrefix(data, tiffLE), bytes.HasPrefix(data, tiffBE):
		return ContainerTIFF
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return ContainerWebP
	default:
		return ContainerUnknown
	}
}

// PNG color types from the IHDR chunk.
const (
	pngColorGray      = 0
	pngColorRGB       = 2
	pngColorIndexed   = 3
	pngColorGrayAlpha = 4
	pngColorRGBA      = 6
)

// pngHeader is the subset of PNG metadata that the Go decoder hides by
// promoting samples to a wider image type.
type pngHeader struct {
	bitDepth  uint8
	colorType uint8
	animated  bool
}

// readPNGHeader walks the chunk list up to the first IDAT. It reports
// ok=false if the IHDR is missing or truncated.
func readPNGHeader(data []byte) (h pngHeader, ok bool) {
	if !bytes.HasPrefix(data, pngMagic) {
		return h, false
	}
	off := len(pngMagic)
	for off+8 <= len(data) {
		n := int(binary.BigEndian.Uint32(data[off:]))
		typ := string(data[off+4 : off+8])
		body := off + 8
		if n < 0 || body+n > len(data) {
			return h, ok
		}
		switch typ {
		case "IHDR":
			if n < 13 {
				return h, false
			}
			h.bitDepth = data[body+8]
			h.colorType = data[body+9]
			ok = true
		case "acTL":
			h.animated = true
		case "IDAT":
			return h, ok
		}
		off = body + n + 4 // skip CRC
	}
	return h, ok
}

// layout classifies the PNG header, or reports ok=false when the decoded
// Go image type must decide.
func (h pngHeader) layout() (Layout, bool) {
	switch {
	case h.animated:
		return LayoutAnimated, true
	case h.colorType == pngColorGrayAlpha:
		return LayoutGrayAlpha, true
	case h.colorType == pngColorIndexed:
		return LayoutIndexed, true
	case h.bitDepth == 16:
		switch h.colorType {
		case pngColorGray:
			return LayoutGray16, true
		case pngColorRGB:
			return LayoutRGB16, true
		case pngColorRGBA:
			return LayoutRGBA16, true
		}
	}
	return 0, false
}
