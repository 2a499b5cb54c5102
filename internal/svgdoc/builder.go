package svgdoc

import (
	"log/slog"
	"math"
	"strings"

	"github.com/gogpu/svglite/scene"
)

// nonRendering elements never produce nodes where they appear.
var nonRendering = map[string]bool{
	"":               true,
	"defs":           true,
	"title":          true,
	"desc":           true,
	"metadata":       true,
	"style":          true,
	"script":         true,
	"symbol":         true,
	"linearGradient": true,
	"radialGradient": true,
	"pattern":        true,
	"clipPath":       true,
	"mask":           true,
	"marker":         true,
	"filter":         true,
}

type builder struct {
	opts options
	log  *slog.Logger
	ids  map[string]*element

	// viewport is the size percentages resolve against.
	viewport scene.Rect

	servers   map[string]scene.Paint
	resolving map[*element]bool
	using     map[*element]bool
}

func newBuilder(o options, root *element) *builder {
	return &builder{
		opts:      o,
		log:       o.logger,
		ids:       index(root),
		servers:   make(map[string]scene.Paint),
		resolving: make(map[*element]bool),
		using:     make(map[*element]bool),
	}
}

func (b *builder) build(root *element) (*scene.Tree, error) {
	vb, ok := rootViewBox(root)
	if !ok {
		return nil, ErrNoSize
	}
	b.viewport = vb
	tree := scene.NewTree(vb)

	props := properties(root)
	if props["display"] == "none" {
		tree.Root.Hidden = true
		return tree, nil
	}
	st := cascade(initialStyle(), props)
	tree.Root.ID, _ = root.attr("id")
	b.children(tree.Root, root, st)
	return tree, nil
}

// rootViewBox returns the viewBox of the outermost svg element, falling
// back to its width and height.
func rootViewBox(root *element) (scene.Rect, bool) {
	if v, ok := root.attr("viewBox"); ok {
		if vb, ok := parseViewBox(v); ok {
			return vb, true
		}
	}
	w, wok := root.attr("width")
	h, hok := root.attr("height")
	if !wok || !hok || strings.HasSuffix(w, "%") || strings.HasSuffix(h, "%") {
		return scene.Rect{}, false
	}
	width, wok := parseLength(w, 0)
	height, hok := parseLength(h, 0)
	if !wok || !hok || width <= 0 || height <= 0 {
		return scene.Rect{}, false
	}
	return scene.Rect{Width: width, Height: height}, true
}

func parseViewBox(v string) (scene.Rect, bool) {
	n, ok := parseNumbers(v)
	if !ok || len(n) != 4 || n[2] < 0 || n[3] < 0 {
		return scene.Rect{}, false
	}
	return scene.Rect{X: n[0], Y: n[1], Width: n[2], Height: n[3]}, true
}

func (b *builder) children(g *scene.Group, parent *element, st style) {
	for _, c := range parent.children {
		if n := b.node(c, st); n != nil {
			g.Add(n)
		}
	}
}

// node converts e to a scene node, or returns nil if e draws nothing.
func (b *builder) node(e *element, parent style) scene.Node {
	if nonRendering[e.name] {
		return nil
	}
	props := properties(e)
	if props["display"] == "none" {
		return nil
	}
	st := cascade(parent, props)
	id, _ := e.attr("id")

	t, ok := b.transform(e, "transform")
	if !ok {
		b.log.Warn("skipping element with singular transform", "element", e.name, "id", id)
		return nil
	}

	switch e.name {
	case "g", "a":
		g := &scene.Group{ID: id, Transform: t, Hidden: st.hidden}
		b.children(g, e, st)
		return g
	case "switch":
		g := &scene.Group{ID: id, Transform: t, Hidden: st.hidden}
		for _, c := range e.children {
			if n := b.node(c, st); n != nil {
				g.Add(n)
				break
			}
		}
		return g
	case "svg":
		return b.nestedSVG(e, id, t, st)
	case "use":
		return b.use(e, id, t, st)
	case "path", "rect", "circle", "ellipse", "line", "polyline", "polygon":
		p := b.shape(e, id)
		if p == nil {
			return nil
		}
		p.ID = id
		p.Transform = t
		p.Hidden = st.hidden
		p.Fill = b.fill(st)
		p.Stroke = b.stroke(st)
		return p
	case "image":
		return b.image(e, id, t, st)
	case "text":
		return b.text(e, id, t, st)
	default:
		b.log.Debug("ignoring unsupported element", "element", e.name, "id", id)
		return nil
	}
}

// transform parses the named transform attribute of e. The second result
// is false if the transform is singular, which disables rendering.
func (b *builder) transform(e *element, attr string) (scene.Transform, bool) {
	v, ok := e.attr(attr)
	if !ok || v == "" {
		return scene.Identity(), true
	}
	t, err := parseTransform(v)
	if err != nil {
		b.log.Warn("ignoring transform", "element", e.name, "error", err)
		return scene.Identity(), true
	}
	return t, t.IsInvertible()
}

func (b *builder) length(e *element, attr string, ref float64) float64 {
	v, ok := e.attr(attr)
	if !ok {
		return 0
	}
	n, ok := parseLength(v, ref)
	if !ok {
		b.log.Warn("ignoring length", "element", e.name, "attribute", attr, "value", v)
		return 0
	}
	return n
}

func (b *builder) x(e *element, attr string) float64 {
	return b.length(e, attr, b.viewport.Width)
}

func (b *builder) y(e *element, attr string) float64 {
	return b.length(e, attr, b.viewport.Height)
}

// diagonal is the percentage reference for lengths that are neither
// horizontal nor vertical, such as radii.
func (b *builder) diagonal() float64 {
	w, h := b.viewport.Width, b.viewport.Height
	return math.Sqrt((w*w + h*h) / 2)
}

// nestedSVG places an inner svg element's viewport at (x, y) and maps its
// viewBox into it.
func (b *builder) nestedSVG(e *element, id string, t scene.Transform, st style) scene.Node {
	x, y := b.x(e, "x"), b.y(e, "y")
	w, h := b.viewport.Width, b.viewport.Height
	if _, ok := e.attr("width"); ok {
		w = b.x(e, "width")
	}
	if _, ok := e.attr("height"); ok {
		h = b.y(e, "height")
	}
	if w <= 0 || h <= 0 {
		return nil
	}

	local := t.Translate(x, y)
	saved := b.viewport
	b.viewport = scene.Rect{Width: w, Height: h}
	if v, ok := e.attr("viewBox"); ok {
		if vb, ok := parseViewBox(v); ok {
			if vb.IsEmpty() {
				b.viewport = saved
				return nil
			}
			local = local.Append(fitViewBox(vb, w, h))
			b.viewport = vb
		}
	}
	g := &scene.Group{ID: id, Transform: local, Hidden: st.hidden}
	b.children(g, e, st)
	b.viewport = saved
	return g
}

// use instantiates the referenced element translated by (x, y).
func (b *builder) use(e *element, id string, t scene.Transform, st style) scene.Node {
	href, _ := e.attr("href")
	target := b.ids[strings.TrimPrefix(href, "#")]
	if !strings.HasPrefix(href, "#") || target == nil {
		b.log.Warn("skipping use with unresolved reference", "id", id, "href", href)
		return nil
	}
	if b.using[target] {
		b.log.Warn("skipping recursive use", "id", id, "href", href)
		return nil
	}
	b.using[target] = true
	defer delete(b.using, target)

	g := &scene.Group{ID: id, Transform: t.Translate(b.x(e, "x"), b.y(e, "y")), Hidden: st.hidden}
	if target.name == "symbol" {
		props := properties(target)
		if props["display"] == "none" {
			return g
		}
		inner := &scene.Group{Transform: scene.Identity()}
		if v, ok := target.attr("viewBox"); ok {
			if vb, ok := parseViewBox(v); ok && !vb.IsEmpty() {
				w, h := vb.Width, vb.Height
				if _, ok := e.attr("width"); ok {
					w = b.x(e, "width")
				}
				if _, ok := e.attr("height"); ok {
					h = b.y(e, "height")
				}
				inner.Transform = fitViewBox(vb, w, h)
			}
		}
		b.children(inner, target, cascade(st, props))
		g.Add(inner)
		return g
	}
	if n := b.node(target, st); n != nil {
		g.Add(n)
	}
	return g
}

func (b *builder) text(e *element, id string, t scene.Transform, st style) scene.Node {
	content := strings.Join(strings.Fields(e.text.String()), " ")
	if content == "" {
		return nil
	}
	first := func(attr string, ref float64) float64 {
		v, ok := e.attr(attr)
		if !ok {
			return 0
		}
		list := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
		if len(list) == 0 {
			return 0
		}
		n, _ := parseLength(list[0], ref)
		return n
	}
	return &scene.Text{
		ID:        id,
		Transform: t,
		Hidden:    st.hidden,
		X:         first("x", b.viewport.Width),
		Y:         first("y", b.viewport.Height),
		Size:      st.fontSize,
		Family:    st.fontFamily,
		Content:   content,
		Fill:      b.fill(st),
	}
}
