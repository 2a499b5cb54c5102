package svgdoc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/svglite/scene"
)

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 100 50">`

func parse(t *testing.T, body string, opts ...Option) *scene.Tree {
	t.Helper()
	tree, err := Parse(strings.NewReader(svgOpen+body+`</svg>`), opts...)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tree
}

func child[T scene.Node](t *testing.T, g *scene.Group, i int) T {
	t.Helper()
	if i >= len(g.Children) {
		t.Fatalf("group has %d children, want index %d", len(g.Children), i)
	}
	n, ok := g.Children[i].(T)
	if !ok {
		t.Fatalf("child %d is %T", i, g.Children[i])
	}
	return n
}

func solid(t *testing.T, f *scene.Fill) scene.Solid {
	t.Helper()
	if f == nil {
		t.Fatal("fill is nil")
	}
	s, ok := f.Paint.(scene.Solid)
	if !ok {
		t.Fatalf("paint is %T, want scene.Solid", f.Paint)
	}
	return s
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestParseRect(t *testing.T) {
	tree := parse(t, `<rect id="box" x="10" y="10" width="20" height="10" fill="#00f"/>`)

	if want := (scene.Rect{Width: 100, Height: 50}); tree.ViewBox != want {
		t.Errorf("ViewBox = %+v, want %+v", tree.ViewBox, want)
	}
	p := child[*scene.Path](t, tree.Root, 0)
	if p.ID != "box" {
		t.Errorf("ID = %q, want box", p.ID)
	}
	if got := solid(t, p.Fill); got != (scene.Solid{Color: scene.RGB(0, 0, 255), Opacity: 1}) {
		t.Errorf("fill = %+v, want opaque blue", got)
	}
	if p.Fill.Rule != scene.RuleNonZero {
		t.Errorf("rule = %v, want nonzero", p.Fill.Rule)
	}
	if p.Stroke != nil {
		t.Errorf("stroke = %+v, want nil", p.Stroke)
	}
	if r, _ := p.BBox(); r != (scene.Rect{X: 10, Y: 10, Width: 20, Height: 10}) {
		t.Errorf("BBox() = %+v, want the rect", r)
	}
}

func TestParseDocumentSize(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want scene.Rect
	}{
		{"viewBox", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="5 5 10 20"/>`, scene.Rect{X: 5, Y: 5, Width: 10, Height: 20}},
		{"width and height", `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100"/>`, scene.Rect{Width: 200, Height: 100}},
		{"units", `<svg xmlns="http://www.w3.org/2000/svg" width="1in" height="12pt"/>`, scene.Rect{Width: 96, Height: 16}},
		{"bad viewBox falls back", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1" width="3" height="4"/>`, scene.Rect{Width: 3, Height: 4}},
		{"no namespace", `<svg width="1" height="2"/>`, scene.Rect{Width: 1, Height: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if tree.ViewBox != tt.want {
				t.Errorf("ViewBox = %+v, want %+v", tree.ViewBox, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", ``, ErrMalformed},
		{"unterminated", `<svg viewBox="0 0 1 1">`, ErrMalformed},
		{"not svg", `<html xmlns="http://www.w3.org/1999/xhtml"/>`, ErrNotSVG},
		{"no size", `<svg xmlns="http://www.w3.org/2000/svg"/>`, ErrNoSize},
		{"percent size", `<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%"/>`, ErrNoSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.doc)); !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseInheritance(t *testing.T) {
	tree := parse(t, `
		<g id="layer" fill="red" fill-rule="evenodd" opacity="0.5" transform="translate(5 6)">
			<circle r="5" fill-opacity="0.5"/>
			<rect width="1" height="1" style="fill:#00ff00;fill-opacity:1"/>
		</g>`)

	g := child[*scene.Group](t, tree.Root, 0)
	if g.ID != "layer" || g.Transform != scene.NewTranslate(5, 6) {
		t.Errorf("group = %q %+v, want layer translated by (5, 6)", g.ID, g.Transform)
	}
	c := child[*scene.Path](t, g, 0)
	if got := solid(t, c.Fill); got != (scene.Solid{Color: scene.RGB(255, 0, 0), Opacity: 0.25}) {
		t.Errorf("circle fill = %+v, want red at 0.25", got)
	}
	if c.Fill.Rule != scene.RuleEvenOdd {
		t.Errorf("circle rule = %v, want inherited evenodd", c.Fill.Rule)
	}
	r := child[*scene.Path](t, g, 1)
	if got := solid(t, r.Fill); got != (scene.Solid{Color: scene.RGB(0, 255, 0), Opacity: 0.5}) {
		t.Errorf("rect fill = %+v, want green at 0.5", got)
	}
}

func TestParsePaintValues(t *testing.T) {
	tree := parse(t, `
		<rect width="1" height="1" fill="none" stroke="black" stroke-width="2"/>
		<g color="green"><rect width="1" height="1" fill="currentColor"/></g>
		<rect width="1" height="1" fill="url(#missing) red"/>
		<rect width="1" height="1" fill="url(#missing)"/>`)

	outline := child[*scene.Path](t, tree.Root, 0)
	if outline.Fill != nil {
		t.Errorf("fill = %+v, want nil", outline.Fill)
	}
	if outline.Stroke == nil || outline.Stroke.Width != 2 || outline.Stroke.Paint != (scene.Solid{Opacity: 1}) {
		t.Errorf("stroke = %+v, want black width 2", outline.Stroke)
	}

	current := child[*scene.Path](t, child[*scene.Group](t, tree.Root, 1), 0)
	if got := solid(t, current.Fill).Color; got != scene.RGB(0, 128, 0) {
		t.Errorf("currentColor fill = %v, want green", got)
	}

	if got := solid(t, child[*scene.Path](t, tree.Root, 2).Fill).Color; got != scene.RGB(255, 0, 0) {
		t.Errorf("fallback fill = %v, want red", got)
	}
	if f := child[*scene.Path](t, tree.Root, 3).Fill; f != nil {
		t.Errorf("unresolved fill = %+v, want nil", f)
	}
}

func TestParseVisibility(t *testing.T) {
	tree := parse(t, `
		<rect width="1" height="1" display="none"/>
		<g style="display:none"><rect width="1" height="1"/></g>
		<rect id="hidden" width="1" height="1" visibility="hidden"/>
		<rect id="flat" width="1" height="1" transform="scale(0)"/>
		<rect id="empty" width="0" height="1"/>
		<title>ignored</title>
		<foo:bar xmlns:foo="urn:foo"/>`)

	if len(tree.Root.Children) != 1 {
		t.Fatalf("children = %d, want only the hidden rect", len(tree.Root.Children))
	}
	p := child[*scene.Path](t, tree.Root, 0)
	if p.ID != "hidden" || p.Visible() {
		t.Errorf("got %q visible=%v, want hidden rect", p.ID, p.Visible())
	}
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want scene.Rect
	}{
		{"circle", `<circle cx="10" cy="10" r="5"/>`, scene.Rect{X: 5, Y: 5, Width: 10, Height: 10}},
		{"ellipse", `<ellipse cx="10" cy="10" rx="5" ry="2"/>`, scene.Rect{X: 5, Y: 8, Width: 10, Height: 4}},
		{"rounded rect", `<rect x="1" y="1" width="10" height="4" rx="20"/>`, scene.Rect{X: 1, Y: 1, Width: 10, Height: 4}},
		{"percent rect", `<rect width="50%" height="50%"/>`, scene.Rect{Width: 50, Height: 25}},
		{"polygon", `<polygon points="0,0 10,0 10,5"/>`, scene.Rect{Width: 10, Height: 5}},
		{"polyline odd points", `<polyline points="0 0 4 4 9"/>`, scene.Rect{Width: 4, Height: 4}},
		{"path", `<path d="M1 1 h5 v5 z"/>`, scene.Rect{X: 1, Y: 1, Width: 5, Height: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := child[*scene.Path](t, parse(t, tt.body).Root, 0)
			r, ok := p.BBox()
			if !ok {
				t.Fatal("BBox() ok = false")
			}
			if !near(r.X, tt.want.X) || !near(r.Y, tt.want.Y) || !near(r.Width, tt.want.Width) || !near(r.Height, tt.want.Height) {
				t.Errorf("BBox() = %+v, want %+v", r, tt.want)
			}
		})
	}
}

func TestParseDegenerateShapes(t *testing.T) {
	for _, body := range []string{
		`<circle r="0"/>`,
		`<ellipse rx="3"/>`,
		`<rect width="-1" height="3"/>`,
		`<polyline points="1 1"/>`,
		`<path d=""/>`,
		`<path d="L 5 5"/>`,
	} {
		if n := len(parse(t, body).Root.Children); n != 0 {
			t.Errorf("%s produced %d nodes, want 0", body, n)
		}
	}
}

func TestParseBadPathDataKeepsPrefix(t *testing.T) {
	var logs bytes.Buffer
	tree := parse(t, `<path id="p" d="M0 0 L10 0 L10 10 oops"/>`,
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	if n := child[*scene.Path](t, tree.Root, 0).Len(); n != 3 {
		t.Errorf("segments = %d, want 3", n)
	}
	if !strings.Contains(logs.String(), "truncating path data") {
		t.Errorf("log = %q, want a truncation warning", logs.String())
	}
}

func TestParseLinearGradient(t *testing.T) {
	tree := parse(t, `
		<rect width="10" height="10" fill="url(#g)" fill-opacity="0.5"/>
		<defs>
			<linearGradient id="base" gradientTransform="rotate(90)">
				<stop offset="0" stop-color="red"/>
				<stop offset="50%" style="stop-color:#00f;stop-opacity:0.5"/>
				<stop offset="0.2" stop-color="lime"/>
			</linearGradient>
			<linearGradient id="g" xlink:href="#base" x2="0" y2="1"/>
		</defs>`)

	p := child[*scene.Path](t, tree.Root, 0)
	lg, ok := p.Fill.Paint.(*scene.LinearGradient)
	if !ok {
		t.Fatalf("paint = %T, want *scene.LinearGradient", p.Fill.Paint)
	}
	if lg.ID != "g" || lg.X1 != 0 || lg.Y1 != 0 || lg.X2 != 0 || lg.Y2 != 1 {
		t.Errorf("gradient = %+v, want vector (0,0)-(0,1)", lg)
	}
	if lg.Units != scene.UnitsObjectBoundingBox {
		t.Errorf("units = %v, want bounding box", lg.Units)
	}
	if x, y := lg.Transform.Apply(1, 0); !near(x, 0) || !near(y, 1) {
		t.Errorf("inherited transform maps (1,0) to (%v, %v), want (0, 1)", x, y)
	}

	want := []scene.Stop{
		{Offset: 0, Color: scene.RGB(255, 0, 0), Opacity: 0.5},
		{Offset: 0.5, Color: scene.RGB(0, 0, 255), Opacity: 0.25},
		{Offset: 0.5, Color: scene.RGB(0, 255, 0), Opacity: 0.5},
	}
	if len(lg.Stops) != len(want) {
		t.Fatalf("stops = %+v, want %+v", lg.Stops, want)
	}
	for i := range want {
		if lg.Stops[i] != want[i] {
			t.Errorf("stop %d = %+v, want %+v", i, lg.Stops[i], want[i])
		}
	}
}

func TestParseGradientUserSpace(t *testing.T) {
	tree := parse(t, `
		<linearGradient id="g" gradientUnits="userSpaceOnUse" x1="10%" x2="50">
			<stop offset="0"/><stop offset="1" stop-color="white"/>
		</linearGradient>
		<radialGradient id="r"><stop offset="0"/><stop offset="1"/></radialGradient>
		<linearGradient id="one"><stop offset="0.3" stop-color="blue"/></linearGradient>
		<linearGradient id="none"/>
		<rect width="1" height="1" fill="url(#g)"/>
		<rect width="1" height="1" fill="url(#r)"/>
		<rect width="1" height="1" fill="url(#one)"/>
		<rect width="1" height="1" fill="url(#none)"/>`)

	lg := child[*scene.Path](t, tree.Root, 0).Fill.Paint.(*scene.LinearGradient)
	if lg.Units != scene.UnitsUserSpaceOnUse || lg.X1 != 10 || lg.X2 != 50 {
		t.Errorf("gradient = %+v, want user space x1=10 x2=50", lg)
	}

	rg := child[*scene.Path](t, tree.Root, 1).Fill.Paint.(*scene.RadialGradient)
	if rg.CX != 0.5 || rg.CY != 0.5 || rg.R != 0.5 || rg.FX != 0.5 || rg.FY != 0.5 {
		t.Errorf("radial = %+v, want centered defaults", rg)
	}

	if got := solid(t, child[*scene.Path](t, tree.Root, 2).Fill); got != (scene.Solid{Color: scene.RGB(0, 0, 255), Opacity: 1}) {
		t.Errorf("single stop paint = %+v, want solid blue", got)
	}
	if f := child[*scene.Path](t, tree.Root, 3).Fill; f != nil {
		t.Errorf("stopless gradient fill = %+v, want nil", f)
	}
}

func TestParseUse(t *testing.T) {
	tree := parse(t, `
		<defs><rect id="r" width="5" height="5"/></defs>
		<use id="u1" href="#r" x="10" y="20" fill="red"/>
		<use xlink:href="#r"/>
		<g id="loop"><use href="#loop"/></g>
		<use href="#nowhere"/>
		<symbol id="s" viewBox="0 0 10 10"><rect width="10" height="10"/></symbol>
		<use href="#s" width="20" height="20"/>`)

	if n := len(tree.Root.Children); n != 4 {
		t.Fatalf("children = %d, want 4", n)
	}
	u := child[*scene.Group](t, tree.Root, 0)
	if u.ID != "u1" || u.Transform != scene.NewTranslate(10, 20) {
		t.Errorf("use = %q %+v, want u1 translated by (10, 20)", u.ID, u.Transform)
	}
	if got := solid(t, child[*scene.Path](t, u, 0).Fill).Color; got != scene.RGB(255, 0, 0) {
		t.Errorf("instance fill = %v, want red inherited from use", got)
	}
	if child[*scene.Group](t, tree.Root, 1).Children == nil {
		t.Error("xlink:href use has no children")
	}

	loop := child[*scene.Group](t, tree.Root, 2)
	if depth := nestingDepth(loop); depth > 4 {
		t.Errorf("recursive use nests %d levels", depth)
	}

	sym := child[*scene.Group](t, child[*scene.Group](t, tree.Root, 3), 0)
	if x, y := sym.Transform.Apply(10, 10); !near(x, 20) || !near(y, 20) {
		t.Errorf("symbol maps (10,10) to (%v, %v), want (20, 20)", x, y)
	}
}

func nestingDepth(n scene.Node) int {
	g, ok := n.(*scene.Group)
	if !ok {
		return 0
	}
	d := 0
	for _, c := range g.Children {
		d = max(d, nestingDepth(c))
	}
	return d + 1
}

func TestParseNestedSVG(t *testing.T) {
	tree := parse(t, `<svg x="10" y="10" width="20" height="20" viewBox="0 0 10 10"><rect width="10" height="10"/></svg>`)
	g := child[*scene.Group](t, tree.Root, 0)
	if x, y := g.Transform.Apply(10, 10); !near(x, 30) || !near(y, 30) {
		t.Errorf("nested viewport maps (10,10) to (%v, %v), want (30, 30)", x, y)
	}
}

func TestParseText(t *testing.T) {
	tree := parse(t, `
		<g font-family="Go" font-size="12">
			<text id="t" x="5 6 7" y="20" fill="navy">
				Hello
				<tspan>world</tspan>!
			</text>
			<text x="1" y="1">  </text>
		</g>`)

	g := child[*scene.Group](t, tree.Root, 0)
	if len(g.Children) != 1 {
		t.Fatalf("children = %d, want empty text dropped", len(g.Children))
	}
	txt := child[*scene.Text](t, g, 0)
	if txt.Content != "Hello world !" {
		t.Errorf("Content = %q, want %q", txt.Content, "Hello world !")
	}
	if txt.ID != "t" || txt.X != 5 || txt.Y != 20 || txt.Size != 12 || txt.Family != "Go" {
		t.Errorf("text = %+v, want id t at (5, 20) size 12 family Go", txt)
	}
	if got := solid(t, txt.Fill).Color; got != scene.RGB(0, 0, 128) {
		t.Errorf("fill = %v, want navy", got)
	}
}

func TestParseRasterImage(t *testing.T) {
	data := encodePNG(t, 2, 3)
	tree := parse(t, `
		<image id="a" x="1" y="2" href="data:image/png;base64,`+base64.StdEncoding.EncodeToString(data)+`"/>
		<image width="8" height="9" xlink:href="data:image/png;base64,`+base64.StdEncoding.EncodeToString(data)+`"/>
		<image width="8" height="9" href="data:image/png;base64,!!!"/>
		<image width="8" height="9" href="https://example.com/a.png"/>
		<image width="8" height="9" href="a.png"/>`)

	if n := len(tree.Root.Children); n != 2 {
		t.Fatalf("children = %d, want 2", n)
	}
	img := child[*scene.Image](t, tree.Root, 0)
	if img.ID != "a" || img.ViewBox != (scene.Rect{X: 1, Y: 2, Width: 2, Height: 3}) {
		t.Errorf("image = %q %+v, want intrinsic size at (1, 2)", img.ID, img.ViewBox)
	}
	raster, ok := img.Kind.(scene.RasterData)
	if !ok || !bytes.Equal(raster.Data, data) {
		t.Errorf("kind = %T, want the encoded PNG", img.Kind)
	}
	if vb := child[*scene.Image](t, tree.Root, 1).ViewBox; vb != (scene.Rect{Width: 8, Height: 9}) {
		t.Errorf("sized image ViewBox = %+v, want 8x9", vb)
	}
}

func TestParseVectorImage(t *testing.T) {
	inner := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 4 6"><rect width="4" height="6"/></svg>`
	tree := parse(t, `
		<image href="data:image/svg+xml;base64,`+base64.StdEncoding.EncodeToString([]byte(inner))+`"/>
		<image width="10" height="10" href="data:image/svg+xml,`+url.PathEscape(inner)+`"/>`)

	img := child[*scene.Image](t, tree.Root, 0)
	vec, ok := img.Kind.(scene.VectorData)
	if !ok {
		t.Fatalf("kind = %T, want scene.VectorData", img.Kind)
	}
	if vec.Tree.ViewBox != (scene.Rect{Width: 4, Height: 6}) || len(vec.Tree.Root.Children) != 1 {
		t.Errorf("nested tree = %+v, want a 4x6 document with one rect", vec.Tree.ViewBox)
	}
	if img.ViewBox != (scene.Rect{Width: 4, Height: 6}) {
		t.Errorf("ViewBox = %+v, want the nested document size", img.ViewBox)
	}
	if _, ok := child[*scene.Image](t, tree.Root, 1).Kind.(scene.VectorData); !ok {
		t.Error("percent-encoded data URI did not parse as a vector image")
	}
}

func TestParseFileResources(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pic.png"), encodePNG(t, 4, 4), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "self.svg"), []byte(svgOpen+`<image width="10" height="10" href="self.svg"/></svg>`), 0o600); err != nil {
		t.Fatal(err)
	}
	doc := svgOpen + `
		<image href="pic.png"/>
		<image width="1" height="1" href="../pic.png"/>
		<image width="10" height="10" href="self.svg"/>
	</svg>`
	path := filepath.Join(dir, "doc.svg")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	tree, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if n := len(tree.Root.Children); n != 2 {
		t.Fatalf("children = %d, want pic.png and self.svg", n)
	}
	if vb := child[*scene.Image](t, tree.Root, 0).ViewBox; vb != (scene.Rect{Width: 4, Height: 4}) {
		t.Errorf("file image ViewBox = %+v, want 4x4", vb)
	}

	levels := 0
	img := child[*scene.Image](t, tree.Root, 1)
	for {
		vec, ok := img.Kind.(scene.VectorData)
		if !ok {
			break
		}
		levels++
		if len(vec.Tree.Root.Children) == 0 {
			break
		}
		img = vec.Tree.Root.Children[0].(*scene.Image)
	}
	if levels != maxImageDepth {
		t.Errorf("self-embedding image nests %d documents, want %d", levels, maxImageDepth)
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.svg")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseFile() error = %v, want not exist", err)
	}
}
