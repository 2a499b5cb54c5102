// Package svglite compiles a vector scene graph into draw calls for a
// VGLite-style 2D vector rasterizer.
//
// # Overview
//
// A [scene.Tree] (nested groups, filled paths, embedded raster or vector
// images, text runs) is walked depth-first in document order. Each node is
// translated into rasterizer operations on a [vglite.Backend]:
//
//   - Path: the geometry is encoded into a tagged command stream and filled
//     with a solid color or a linear gradient.
//   - Image: a transient off-screen buffer is allocated, the image is
//     decoded (raster) or rendered (nested vector document) into it, and
//     the buffer is blitted into the parent target and freed.
//   - Text: glyph outlines from a font database become ordinary paths.
//   - Group: children are visited with the accumulated transform.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/svglite"
//	    "github.com/gogpu/svglite/vglite"
//	    _ "github.com/gogpu/svglite/vglite/soft"
//	)
//
//	b := vglite.MustBackend("soft")
//	target := &vglite.Buffer{Width: 256, Height: 256, Format: vglite.FormatRGBA8888}
//	if err := b.Allocate(target); err != nil {
//	    return err
//	}
//	defer b.Free(target)
//
//	err := svglite.Render(b, target, tree, svglite.WithFontDB(fonts))
//
// # Concurrency
//
// Rendering is synchronous and single-threaded. A backend session and its
// target buffer must not be shared between concurrent renders.
//
// # Errors
//
// A failing backend call aborts the render with a [*BackendError] that
// wraps the backend's [*vglite.Status]. Unsupported content is reported
// with [ErrUnsupportedFeature] or skipped, depending on the feature.
// Missing capabilities (no font database, unreadable bounding box) never
// fail a render; the affected node is skipped and a warning is logged.
package svglite
