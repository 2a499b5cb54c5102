package svgdoc

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/gogpu/svglite/scene"
)

type seg struct {
	verb scene.Verb
	pts  []float64
}

func segments(p *scene.Path) []seg {
	var out []seg
	for s := range p.Segments() {
		out = append(out, seg{s.Verb, slices.Clone(s.Pts[:s.Verb.PointCount()])})
	}
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func sameSegments(got, want []seg) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i].verb != want[i].verb || len(got[i].pts) != len(want[i].pts) {
			return false
		}
		for j := range got[i].pts {
			if !near(got[i].pts[j], want[i].pts[j]) {
				return false
			}
		}
	}
	return true
}

func move(x, y float64) seg { return seg{scene.VerbMoveTo, []float64{x, y}} }
func line(x, y float64) seg { return seg{scene.VerbLineTo, []float64{x, y}} }
func closePath() seg        { return seg{scene.VerbClose, []float64{}} }

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []seg
	}{
		{"empty", "", nil},
		{"whitespace", "  \n", nil},
		{"absolute", "M10 20 L30 40 Z", []seg{move(10, 20), line(30, 40), closePath()}},
		{
			"relative",
			"m10 20 l5 5 h10 v-5 z",
			[]seg{move(10, 20), line(15, 25), line(25, 25), line(25, 20), closePath()},
		},
		{"implicit lineto", "M0 0 10 0 10 10", []seg{move(0, 0), line(10, 0), line(10, 10)}},
		{"implicit relative lineto", "m1 1 2 2", []seg{move(1, 1), line(3, 3)}},
		{"compact numbers", "M.5.5L-1-1", []seg{move(0.5, 0.5), line(-1, -1)}},
		{"commas", "M0,0,L1,1", []seg{move(0, 0), line(1, 1)}},
		{"exponent", "M1e1 2E-1", []seg{move(10, 0.2)}},
		{
			"smooth cubic reflects control",
			"M0,0C1,2,3,4,5,6S9,10,11,12",
			[]seg{
				move(0, 0),
				{scene.VerbCubicTo, []float64{1, 2, 3, 4, 5, 6}},
				{scene.VerbCubicTo, []float64{7, 8, 9, 10, 11, 12}},
			},
		},
		{
			"smooth cubic without previous cubic",
			"M1 1 S2 2 3 3",
			[]seg{move(1, 1), {scene.VerbCubicTo, []float64{1, 1, 2, 2, 3, 3}}},
		},
		{
			"smooth quad reflects control",
			"M0 0Q5 5 10 0T20 0",
			[]seg{
				move(0, 0),
				{scene.VerbQuadTo, []float64{5, 5, 10, 0}},
				{scene.VerbQuadTo, []float64{15, -5, 20, 0}},
			},
		},
		{
			"relative quad",
			"M10 10 q5 5 10 0",
			[]seg{move(10, 10), {scene.VerbQuadTo, []float64{15, 15, 20, 10}}},
		},
		{
			"draw after close starts at subpath start",
			"M1 2 L5 5 Z L7 7",
			[]seg{move(1, 2), line(5, 5), closePath(), move(1, 2), line(7, 7)},
		},
		{
			"relative move after close",
			"M10 10 L20 20 z m5 5 l1 0",
			[]seg{move(10, 10), line(20, 20), closePath(), move(15, 15), line(16, 15)},
		},
		{"zero radius arc is a line", "M0 0 A0 5 0 0 1 10 0", []seg{move(0, 0), line(10, 0)}},
		{"arc to current point is dropped", "M5 5 A5 5 0 0 1 5 5", []seg{move(5, 5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePath(tt.d)
			if err != nil {
				t.Fatalf("ParsePath(%q) error = %v", tt.d, err)
			}
			if got := segments(p); !sameSegments(got, tt.want) {
				t.Errorf("ParsePath(%q) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestParsePathArc(t *testing.T) {
	p, err := ParsePath("M0 0 A10 10 0 0 1 20 0")
	if err != nil {
		t.Fatalf("ParsePath() error = %v", err)
	}
	segs := segments(p)
	if len(segs) != 3 {
		t.Fatalf("semicircle segments = %d, want move and 2 cubics", len(segs))
	}
	mid, end := segs[1].pts, segs[2].pts
	if !near(mid[4], 10) || !near(mid[5], -10) {
		t.Errorf("quarter point = (%v, %v), want (10, -10)", mid[4], mid[5])
	}
	if end[4] != 20 || end[5] != 0 {
		t.Errorf("arc end = (%v, %v), want (20, 0)", end[4], end[5])
	}

	// The other sweep bulges downward.
	p, _ = ParsePath("M0 0 A10 10 0 0 0 20 0")
	if got := segments(p)[1].pts; !near(got[5], 10) {
		t.Errorf("counter-sweep quarter point y = %v, want 10", got[5])
	}
}

func TestParsePathArcScalesSmallRadii(t *testing.T) {
	p, err := ParsePath("M0 0 a1 1 0 0 1 20 0")
	if err != nil {
		t.Fatalf("ParsePath() error = %v", err)
	}
	r, ok := p.BBox()
	if !ok {
		t.Fatal("BBox() ok = false")
	}
	if !near(r.Width, 20) || r.Height < 9.9 || r.Height > 10.1 {
		t.Errorf("BBox() = %+v, want a radius 10 semicircle", r)
	}
}

func TestParsePathErrors(t *testing.T) {
	tests := []struct {
		name     string
		d        string
		wantSegs int
	}{
		{"must start with moveto", "L10 10", 0},
		{"missing coordinate", "M10", 0},
		{"unknown command", "M0 0 L10 10 X", 2},
		{"bad arc flag", "M0 0 A1 1 0 2 1 5 5", 1},
		{"number after close", "M0 0 Z 5", 2},
		{"trailing odd coordinate", "M0 0 L1 1 2", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePath(tt.d)
			if !errors.Is(err, ErrBadPathData) {
				t.Fatalf("ParsePath(%q) error = %v, want %v", tt.d, err, ErrBadPathData)
			}
			if p.Len() != tt.wantSegs {
				t.Errorf("ParsePath(%q) kept %d segments, want %d", tt.d, p.Len(), tt.wantSegs)
			}
		})
	}
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		in           string
		x, y         float64
		wantX, wantY float64
	}{
		{"translate(10)", 1, 1, 11, 1},
		{"translate(10, 20) scale(2)", 1, 1, 12, 22},
		{"scale(2,3)", 1, 1, 2, 3},
		{"rotate(90)", 1, 0, 0, 1},
		{"rotate(90 10 10)", 20, 10, 10, 20},
		{"matrix(1 2 3 4 5 6)", 1, 1, 9, 12},
		{"skewX(45)", 0, 1, 1, 1},
		{"skewY(45)", 1, 0, 1, 1},
		{" translate(1,1),scale(2) ", 1, 1, 3, 3},
		{"", 4, 5, 4, 5},
	}
	for _, tt := range tests {
		tr, err := parseTransform(tt.in)
		if err != nil {
			t.Errorf("parseTransform(%q) error = %v", tt.in, err)
			continue
		}
		if x, y := tr.Apply(tt.x, tt.y); !near(x, tt.wantX) || !near(y, tt.wantY) {
			t.Errorf("parseTransform(%q).Apply(%v, %v) = (%v, %v), want (%v, %v)",
				tt.in, tt.x, tt.y, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestParseTransformErrors(t *testing.T) {
	for _, in := range []string{
		"translate(1,2,3)",
		"scale()",
		"rotate(1 2)",
		"spin(1)",
		"translate(1",
		"translate(a)",
	} {
		if _, err := parseTransform(in); err == nil {
			t.Errorf("parseTransform(%q) error = nil, want error", in)
		}
	}
}

func TestFitViewBox(t *testing.T) {
	tr := fitViewBox(scene.Rect{Width: 10, Height: 10}, 40, 20)
	if x, y := tr.Apply(0, 0); !near(x, 10) || !near(y, 0) {
		t.Errorf("origin maps to (%v, %v), want (10, 0)", x, y)
	}
	if x, y := tr.Apply(10, 10); !near(x, 30) || !near(y, 20) {
		t.Errorf("corner maps to (%v, %v), want (30, 20)", x, y)
	}
	if !fitViewBox(scene.Rect{}, 10, 10).IsIdentity() {
		t.Error("empty viewBox should map to identity")
	}
}
