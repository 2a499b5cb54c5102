package vglite

import (
	"math"
	"testing"

	"github.com/gogpu/svglite/scene"
)

func TestOpcodeArity(t *testing.T) {
	tests := []struct {
		op   Opcode
		want int
	}{
		{OpEnd, 0},
		{OpClose, 0},
		{OpMove, 2},
		{OpLine, 2},
		{OpCubic, 6},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			if got := tt.op.Arity(); got != tt.want {
				t.Errorf("Arity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEncodeEmitsOneRecordPerSegment(t *testing.T) {
	p := scene.NewPath().
		MoveTo(0, 0).
		LineTo(10, 0).
		CubicTo(10, 5, 5, 10, 0, 10).
		Close()

	d := NewPathData()
	d.Encode(p)

	wantOps := []Opcode{OpMove, OpLine, OpCubic, OpClose, OpEnd}
	if len(d.Ops) != len(wantOps) {
		t.Fatalf("len(Ops) = %d, want %d", len(d.Ops), len(wantOps))
	}
	for i, op := range wantOps {
		if d.Ops[i] != op {
			t.Errorf("Ops[%d] = %v, want %v", i, d.Ops[i], op)
		}
	}
	if len(d.Coords) != 2+2+6 {
		t.Errorf("len(Coords) = %d, want 10", len(d.Coords))
	}
	if !d.Terminated() {
		t.Error("Terminated() = false, want true")
	}
}

func TestEncodeEmptyPathIsTerminated(t *testing.T) {
	d := NewPathData()
	d.Encode(scene.NewPath())
	if d.Len() != 1 || d.Ops[0] != OpEnd {
		t.Errorf("Ops = %v, want [End]", d.Ops)
	}
}

func TestEncodeCoordinatesAreLocal(t *testing.T) {
	p := scene.NewPath().MoveTo(1, 2).LineTo(3, 4)
	p.Transform = scene.NewTranslate(100, 100)

	d := NewPathData()
	d.Encode(p)

	want := []float32{1, 2, 3, 4}
	for i, v := range want {
		if d.Coords[i] != v {
			t.Errorf("Coords[%d] = %v, want %v", i, d.Coords[i], v)
		}
	}
}

func TestEncodeElevatesQuadratics(t *testing.T) {
	p := scene.NewPath().MoveTo(0, 0).QuadTo(30, 60, 90, 0)

	d := NewPathData()
	d.Encode(p)

	if d.Ops[1] != OpCubic {
		t.Fatalf("Ops[1] = %v, want Cubic", d.Ops[1])
	}
	var rec Record
	i := 0
	for r := range d.Records() {
		if i == 1 {
			rec = r
		}
		i++
	}
	want := []float32{20, 40, 50, 40, 90, 0}
	for i, v := range want {
		if math.Abs(float64(rec.Args[i]-v)) > 1e-5 {
			t.Errorf("Args[%d] = %v, want %v", i, rec.Args[i], v)
		}
	}

	// The elevated cubic traces the same curve as the quadratic.
	for _, tt := range []float64{0.25, 0.5, 0.75} {
		qx := (1-tt)*(1-tt)*0 + 2*(1-tt)*tt*30 + tt*tt*90
		qy := (1-tt)*(1-tt)*0 + 2*(1-tt)*tt*60 + tt*tt*0
		mt := 1 - tt
		cx := 3*mt*mt*tt*float64(rec.Args[0]) + 3*mt*tt*tt*float64(rec.Args[2]) + tt*tt*tt*float64(rec.Args[4])
		cy := 3*mt*mt*tt*float64(rec.Args[1]) + 3*mt*tt*tt*float64(rec.Args[3]) + tt*tt*tt*float64(rec.Args[5])
		if math.Abs(qx-cx) > 1e-3 || math.Abs(qy-cy) > 1e-3 {
			t.Errorf("t=%v: cubic (%v, %v) != quad (%v, %v)", tt, cx, cy, qx, qy)
		}
	}
}

func TestEncodeQuadAfterClose(t *testing.T) {
	// After Close the current point returns to the subpath start.
	p := scene.NewPath().MoveTo(3, 3).LineTo(9, 3).Close().QuadTo(3, 6, 3, 9)

	d := NewPathData()
	d.Encode(p)

	var last Record
	for r := range d.Records() {
		if r.Op == OpCubic {
			last = r
		}
	}
	if last.Args[0] != 3 || last.Args[1] != 5 {
		t.Errorf("first control = (%v, %v), want (3, 5)", last.Args[0], last.Args[1])
	}
}

func TestBoundsFrom(t *testing.T) {
	got := BoundsFrom(scene.Rect{X: 1, Y: 2, Width: 10, Height: 30})
	want := [4]float32{1, 2, 11, 32}
	if got != want {
		t.Errorf("BoundsFrom() = %v, want %v", got, want)
	}
}

func TestPathDataPool(t *testing.T) {
	d := GetPathData()
	d.Encode(scene.NewPath().MoveTo(1, 1))
	PutPathData(d)

	d2 := GetPathData()
	if d2.Len() != 0 || len(d2.Coords) != 0 {
		t.Errorf("pooled stream not reset: %d ops, %d coords", d2.Len(), len(d2.Coords))
	}
	PutPathData(d2)
	PutPathData(nil)
}
