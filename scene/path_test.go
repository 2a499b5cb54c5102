package scene

import (
	"math"
	"testing"
)

func TestVerbPointCount(t *testing.T) {
	tests := []struct {
		verb Verb
		want int
	}{
		{VerbMoveTo, 2},
		{VerbLineTo, 2},
		{VerbQuadTo, 4},
		{VerbCubicTo, 6},
		{VerbClose, 0},
	}
	for _, tt := range tests {
		t.Run(tt.verb.String(), func(t *testing.T) {
			if got := tt.verb.PointCount(); got != tt.want {
				t.Errorf("PointCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPathSegments(t *testing.T) {
	p := NewPath().MoveTo(1, 2).LineTo(3, 4).QuadTo(5, 6, 7, 8).CubicTo(1, 1, 2, 2, 3, 3).Close()
	if p.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", p.Len())
	}
	var got []Segment
	for s := range p.Segments() {
		got = append(got, s)
	}
	if got[2].Verb != VerbQuadTo || got[2].Pts[3] != 8 {
		t.Errorf("segment 2 = %+v", got[2])
	}
	if got[3].Pts[5] != 3 {
		t.Errorf("segment 3 = %+v", got[3])
	}
	if got[4].Verb != VerbClose {
		t.Errorf("segment 4 verb = %v, want Close", got[4].Verb)
	}
}

func TestPathBBox(t *testing.T) {
	tests := []struct {
		name string
		path *Path
		want Rect
		ok   bool
	}{
		{"empty", NewPath(), Rect{}, false},
		{"point", NewPath().MoveTo(3, 3).LineTo(3, 3), Rect{}, false},
		{"nan", NewPath().MoveTo(0, 0).LineTo(math.NaN(), 1), Rect{}, false},
		{
			"rect",
			NewPath().MoveTo(10, 20).LineTo(30, 20).LineTo(30, 60).LineTo(10, 60).Close(),
			Rect{X: 10, Y: 20, Width: 20, Height: 40},
			true,
		},
		{
			"horizontal line",
			NewPath().MoveTo(0, 5).LineTo(10, 5),
			Rect{X: 0, Y: 5, Width: 10, Height: 0},
			true,
		},
		{
			// Control points overshoot; the curve peaks at y = 75.
			"cubic extrema",
			NewPath().MoveTo(0, 0).CubicTo(0, 100, 100, 100, 100, 0),
			Rect{X: 0, Y: 0, Width: 100, Height: 75},
			true,
		},
		{
			"quad extrema",
			NewPath().MoveTo(0, 0).QuadTo(50, 100, 100, 0),
			Rect{X: 0, Y: 0, Width: 100, Height: 50},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.path.BBox()
			if ok != tt.ok {
				t.Fatalf("BBox() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if math.Abs(got.X-tt.want.X) > 1e-6 || math.Abs(got.Y-tt.want.Y) > 1e-6 ||
				math.Abs(got.Width-tt.want.Width) > 1e-6 || math.Abs(got.Height-tt.want.Height) > 1e-6 {
				t.Errorf("BBox() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
