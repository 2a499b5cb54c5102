package svgdoc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF for DecodeConfig
	_ "image/jpeg" // register JPEG for DecodeConfig
	_ "image/png"  // register PNG for DecodeConfig
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP for DecodeConfig
	_ "golang.org/x/image/tiff" // register TIFF for DecodeConfig
	_ "golang.org/x/image/webp" // register WebP for DecodeConfig

	"github.com/gogpu/svglite/scene"
)

// maxResourceSize bounds the size of an image file read from disk.
const maxResourceSize = 64 << 20

var errNoResourceDir = errors.New("svgdoc: external image without resource directory")

// image converts an image element. Vector payloads are parsed into nested
// trees; raster payloads are kept encoded for the renderer to decode.
func (b *builder) image(e *element, id string, t scene.Transform, st style) scene.Node {
	href, _ := e.attr("href")
	data, mime, err := b.resource(href)
	if err != nil {
		b.log.Warn("skipping image", "id", id, "error", err)
		return nil
	}

	img := &scene.Image{ID: id, Transform: t, Hidden: st.hidden}
	var w, h float64
	if isSVG(mime, href, data) {
		if b.opts.depth >= maxImageDepth {
			b.log.Warn("skipping image nested too deeply", "id", id, "depth", b.opts.depth)
			return nil
		}
		tree, err := Parse(bytes.NewReader(data),
			WithLogger(b.log), WithResourceDir(b.opts.resourceDir), withDepth(b.opts.depth+1))
		if err != nil {
			b.log.Warn("skipping image", "id", id, "error", err)
			return nil
		}
		img.Kind = scene.VectorData{Tree: tree}
		w, h = tree.ViewBox.Width, tree.ViewBox.Height
	} else {
		img.Kind = scene.RasterData{Data: data}
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			w, h = float64(cfg.Width), float64(cfg.Height)
		}
	}

	if _, ok := e.attr("width"); ok {
		w = b.x(e, "width")
	}
	if _, ok := e.attr("height"); ok {
		h = b.y(e, "height")
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	img.ViewBox = scene.Rect{X: b.x(e, "x"), Y: b.y(e, "y"), Width: w, Height: h}
	return img
}

// resource loads the bytes an image reference points to. It returns the
// declared media type for data URIs and "" otherwise.
func (b *builder) resource(href string) ([]byte, string, error) {
	if rest, ok := strings.CutPrefix(href, "data:"); ok {
		return decodeDataURI(rest)
	}
	if href == "" {
		return nil, "", errors.New("svgdoc: image without href")
	}
	if u, err := url.Parse(href); err == nil && u.Scheme != "" && u.Scheme != "file" {
		return nil, "", fmt.Errorf("svgdoc: unsupported image scheme %q", u.Scheme)
	}
	if b.opts.resourceDir == "" {
		return nil, "", errNoResourceDir
	}

	root, err := os.OpenRoot(b.opts.resourceDir)
	if err != nil {
		return nil, "", fmt.Errorf("svgdoc: open resource directory: %w", err)
	}
	defer func() { _ = root.Close() }()

	name := filepath.FromSlash(strings.TrimPrefix(href, "file:"))
	f, err := root.Open(name)
	if err != nil {
		return nil, "", fmt.Errorf("svgdoc: open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxResourceSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("svgdoc: read image: %w", err)
	}
	if len(data) > maxResourceSize {
		return nil, "", fmt.Errorf("svgdoc: image %q exceeds %d bytes", href, maxResourceSize)
	}
	return data, "", nil
}

// decodeDataURI decodes the part of a data URI after "data:".
func decodeDataURI(s string) ([]byte, string, error) {
	meta, payload, ok := strings.Cut(s, ",")
	if !ok {
		return nil, "", errors.New("svgdoc: data URI without payload")
	}
	mime, params, _ := strings.Cut(meta, ";")
	if strings.HasSuffix(params, "base64") {
		payload = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				return -1
			}
			return r
		}, payload)
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, "", fmt.Errorf("svgdoc: data URI: %w", err)
		}
		return data, strings.TrimSpace(mime), nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("svgdoc: data URI: %w", err)
	}
	return []byte(text), strings.TrimSpace(mime), nil
}

func isSVG(mime, href string, data []byte) bool {
	switch {
	case mime == "image/svg+xml":
		return true
	case mime != "":
		return false
	case strings.HasSuffix(strings.ToLower(href), ".svg"):
		return true
	}
	head := bytes.TrimSpace(data[:min(len(data), 512)])
	return bytes.HasPrefix(head, []byte("<svg")) ||
		bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg"))
}
