package vglite

import (
	"iter"
	"sync"

	"github.com/gogpu/svglite/scene"
)

// Opcode identifies a record in an encoded path stream.
// Values match the rasterizer's native opcodes.
type Opcode uint8

// Path opcodes.
const (
	// OpEnd terminates the stream.
	// Data: none
	OpEnd Opcode = 0x00

	// OpClose closes the current subpath.
	// Data: none
	OpClose Opcode = 0x01

	// OpMove starts a new subpath.
	// Data: 2 float32 values [x, y]
	OpMove Opcode = 0x02

	// OpLine draws a straight line.
	// Data: 2 float32 values [x, y]
	OpLine Opcode = 0x04

	// OpCubic draws a cubic Bezier curve.
	// Data: 6 float32 values [c1x, c1y, c2x, c2y, x, y]
	OpCubic Opcode = 0x08
)

// String returns a human-readable name for the opcode.
func (op Opcode) String() string {
	switch op {
	case OpEnd:
		return "End"
	case OpClose:
		return "Close"
	case OpMove:
		return "Move"
	case OpLine:
		return "Line"
	case OpCubic:
		return "Cubic"
	default:
		return "Unknown"
	}
}

// Arity returns the number of float32 payload values the opcode carries.
func (op Opcode) Arity() int {
	switch op {
	case OpMove, OpLine:
		return 2
	case OpCubic:
		return 6
	default:
		return 0
	}
}

// PathData is an encoded path command stream.
//
// Records are stored as two parallel streams: one opcode per record in
// Ops, and the coordinates of all records concatenated in Coords. The
// opcode is an explicit discriminant, so coordinate values can never be
// mistaken for commands. A complete stream ends with exactly one OpEnd.
//
// Coordinates are in the path's local space. The placement transform is
// passed to the draw call separately.
type PathData struct {
	Ops    []Opcode
	Coords []float32
}

// NewPathData creates an empty stream with preallocated capacity.
func NewPathData() *PathData {
	return &PathData{
		Ops:    make([]Opcode, 0, 16),
		Coords: make([]float32, 0, 64),
	}
}

// Reset clears the stream for reuse without deallocating memory.
func (d *PathData) Reset() {
	d.Ops = d.Ops[:0]
	d.Coords = d.Coords[:0]
}

// Len returns the number of records, including the terminator.
func (d *PathData) Len() int { return len(d.Ops) }

// Clone returns a deep copy of the stream.
func (d *PathData) Clone() *PathData {
	return &PathData{
		Ops:    append([]Opcode(nil), d.Ops...),
		Coords: append([]float32(nil), d.Coords...),
	}
}

// Record is a decoded record from a PathData stream.
type Record struct {
	Op   Opcode
	Args []float32
}

// Records iterates over the stream. Args aliases the stream's storage.
func (d *PathData) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		off := 0
		for _, op := range d.Ops {
			n := op.Arity()
			if off+n > len(d.Coords) {
				return
			}
			if !yield(Record{Op: op, Args: d.Coords[off : off+n]}) {
				return
			}
			off += n
		}
	}
}

// Terminated reports whether the stream ends with OpEnd.
func (d *PathData) Terminated() bool {
	return len(d.Ops) > 0 && d.Ops[len(d.Ops)-1] == OpEnd
}

func (d *PathData) emit(op Opcode, args ...float32) {
	d.Ops = append(d.Ops, op)
	d.Coords = append(d.Coords, args...)
}

// Encode appends one record per segment of p followed by OpEnd.
// Quadratic segments are degree-elevated to cubics, since the rasterizer
// has no native quadratic record.
func (d *PathData) Encode(p *scene.Path) {
	var cx, cy, sx, sy float64
	for seg := range p.Segments() {
		pt := seg.Pts
		switch seg.Verb {
		case scene.VerbMoveTo:
			d.emit(OpMove, float32(pt[0]), float32(pt[1]))
			cx, cy, sx, sy = pt[0], pt[1], pt[0], pt[1]
		case scene.VerbLineTo:
			d.emit(OpLine, float32(pt[0]), float32(pt[1]))
			cx, cy = pt[0], pt[1]
		case scene.VerbQuadTo:
			c1x, c1y, c2x, c2y := ElevateQuad(cx, cy, pt[0], pt[1], pt[2], pt[3])
			d.emit(OpCubic,
				float32(c1x), float32(c1y),
				float32(c2x), float32(c2y),
				float32(pt[2]), float32(pt[3]))
			cx, cy = pt[2], pt[3]
		case scene.VerbCubicTo:
			d.emit(OpCubic,
				float32(pt[0]), float32(pt[1]),
				float32(pt[2]), float32(pt[3]),
				float32(pt[4]), float32(pt[5]))
			cx, cy = pt[4], pt[5]
		case scene.VerbClose:
			d.emit(OpClose)
			cx, cy = sx, sy
		}
	}
	d.emit(OpEnd)
}

// ElevateQuad returns the two cubic control points equivalent to the
// quadratic Bezier from (x0, y0) through control (qx, qy) to (x, y).
func ElevateQuad(x0, y0, qx, qy, x, y float64) (c1x, c1y, c2x, c2y float64) {
	const k = 2.0 / 3.0
	c1x = x0 + k*(qx-x0)
	c1y = y0 + k*(qy-y0)
	c2x = x + k*(qx-x)
	c2y = y + k*(qy-y)
	return c1x, c1y, c2x, c2y
}

// Path is a rasterizer path object: the encoded stream plus its bounds
// and quality hint.
type Path struct {
	// Bounds is [minX, minY, maxX, maxY] in path-local space.
	Bounds  [4]float32
	Quality Quality
	Data    *PathData
}

// BoundsFrom converts a local bounding box to the rasterizer bounds layout.
func BoundsFrom(r scene.Rect) [4]float32 {
	return [4]float32{
		float32(r.X),
		float32(r.Y),
		float32(r.X + r.Width),
		float32(r.Y + r.Height),
	}
}

// PathDataPool manages reusable PathData streams.
//
// Usage:
//
//	d := vglite.GetPathData()
//	defer vglite.PutPathData(d)
type PathDataPool struct {
	pool sync.Pool
}

// NewPathDataPool creates a new pool.
func NewPathDataPool() *PathDataPool {
	return &PathDataPool{
		pool: sync.Pool{
			New: func() any { return NewPathData() },
		},
	}
}

// Get retrieves a reset stream from the pool.
func (p *PathDataPool) Get() *PathData {
	d := p.pool.Get().(*PathData)
	d.Reset()
	return d
}

// Put returns a stream to the pool. Backends must not retain streams
// beyond the draw call that received them.
func (p *PathDataPool) Put(d *PathData) {
	if d == nil {
		return
	}
	p.pool.Put(d)
}

// DefaultPathDataPool is the package-level pool.
var DefaultPathDataPool = NewPathDataPool()

// GetPathData retrieves a stream from the default pool.
func GetPathData() *PathData { return DefaultPathDataPool.Get() }

// PutPathData returns a stream to the default pool.
func PutPathData(d *PathData) { DefaultPathDataPool.Put(d) }
