package vglitetest

import (
	"github.com/gogpu/svglite/vglite"
)

type failure struct {
	nth  int
	code vglite.StatusCode
}

// Recorder is a vglite.Backend that records calls.
//
// Without an inner backend, Allocate assigns tightly packed zeroed memory
// and every other call succeeds without touching pixels.
type Recorder struct {
	inner vglite.Backend

	calls    []Call
	counts   [callTypeCount]int
	failures map[CallType]failure
	live     map[*vglite.Buffer]bool
	allocs   int
	frees    int
}

// NewRecorder returns a recorder delegating to inner, which may be nil.
func NewRecorder(inner vglite.Backend) *Recorder {
	return &Recorder{
		inner:    inner,
		failures: make(map[CallType]failure),
		live:     make(map[*vglite.Buffer]bool),
	}
}

// FailOn makes the nth (1-based) call of type t return code instead of
// reaching the inner backend. Free and GradientMatrix cannot fail.
func (r *Recorder) FailOn(t CallType, nth int, code vglite.StatusCode) {
	r.failures[t] = failure{nth: nth, code: code}
}

// Calls returns all recorded calls in order.
func (r *Recorder) Calls() []Call { return r.calls }

// Count returns the number of calls of type t.
func (r *Recorder) Count(t CallType) int { return r.counts[t] }

// Types returns the type of every recorded call in order.
func (r *Recorder) Types() []CallType {
	out := make([]CallType, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Type()
	}
	return out
}

// Allocs returns the number of successful allocations.
func (r *Recorder) Allocs() int { return r.allocs }

// Frees returns the number of frees of buffers this recorder allocated.
func (r *Recorder) Frees() int { return r.frees }

// Live returns the number of allocated buffers not yet freed.
func (r *Recorder) Live() int { return len(r.live) }

// Reset discards recorded calls and counters, keeping failure injections.
func (r *Recorder) Reset() {
	r.calls = nil
	r.counts = [callTypeCount]int{}
	r.allocs, r.frees = 0, 0
	clear(r.live)
}

// record appends c and reports an injected failure, if any.
func (r *Recorder) record(c Call) error {
	t := c.Type()
	r.calls = append(r.calls, c)
	r.counts[t]++
	if f, ok := r.failures[t]; ok && f.nth == r.counts[t] {
		return &vglite.Status{Code: f.code, Op: t.String()}
	}
	return nil
}

func clonePath(p *vglite.Path) vglite.Path {
	if p == nil {
		return vglite.Path{}
	}
	cp := *p
	if p.Data != nil {
		cp.Data = p.Data.Clone()
	}
	return cp
}

// Init implements vglite.Backend.
func (r *Recorder) Init(width, height int) error {
	if err := r.record(InitCall{Width: width, Height: height}); err != nil {
		return err
	}
	if r.inner != nil {
		return r.inner.Init(width, height)
	}
	return nil
}

// Close implements vglite.Backend.
func (r *Recorder) Close() error {
	if err := r.record(CloseCall{}); err != nil {
		return err
	}
	if r.inner != nil {
		return r.inner.Close()
	}
	return nil
}

// Allocate implements vglite.Backend.
func (r *Recorder) Allocate(buf *vglite.Buffer) error {
	if err := r.record(AllocateCall{Buffer: buf, Width: buf.Width, Height: buf.Height, Format: buf.Format}); err != nil {
		return err
	}
	if r.inner != nil {
		if err := r.inner.Allocate(buf); err != nil {
			return err
		}
	} else {
		bpp := buf.Format.BytesPerPixel()
		if buf.Width <= 0 || buf.Height <= 0 || bpp == 0 {
			return &vglite.Status{Code: vglite.InvalidArgument, Op: "allocate"}
		}
		buf.Stride = buf.Width * bpp
		buf.Memory = make([]byte, buf.Stride*buf.Height)
		buf.Handle = r
	}
	r.allocs++
	r.live[buf] = true
	return nil
}

// Free implements vglite.Backend.
func (r *Recorder) Free(buf *vglite.Buffer) {
	_ = r.record(FreeCall{Buffer: buf})
	if r.live[buf] {
		delete(r.live, buf)
		r.frees++
	}
	if r.inner != nil {
		r.inner.Free(buf)
		return
	}
	buf.Memory = nil
	buf.Handle = nil
}

// Clear implements vglite.Backend.
func (r *Recorder) Clear(buf *vglite.Buffer, rect *vglite.Rect, color uint32) error {
	if err := r.record(ClearCall{Buffer: buf, Rect: rect, Color: color}); err != nil {
		return err
	}
	if r.inner != nil {
		return r.inner.Clear(buf, rect, color)
	}
	return nil
}

// Draw implements vglite.Backend.
func (r *Recorder) Draw(buf *vglite.Buffer, path *vglite.Path, rule vglite.FillRule,
	m *vglite.Matrix, blend vglite.BlendMode, color uint32) error {
	c := DrawCall{Target: buf, Path: clonePath(path), Rule: rule, Blend: blend, Color: color}
	if m != nil {
		c.Matrix = *m
	}
	if err := r.record(c); err != nil {
		return err
	}
	if r.inner != nil {
		return r.inner.Draw(buf, path, rule, m, blend, color)
	}
	return nil
}

// DrawGradient implements vglite.Backend.
func (r *Recorder) DrawGradient(buf *vglite.Buffer, path *vglite.Path, rule vglite.FillRule,
	m *vglite.Matrix, grad *vglite.LinearGradient, blend vglite.BlendMode) error {
	c := DrawGradientCall{Target: buf, Path: clonePath(path), Rule: rule, Blend: blend}
	if m != nil {
		c.Matrix = *m
	}
	if grad != nil {
		c.Gradient = *grad
		c.Gradient.Handle = nil
	}
	if err := r.record(c); err != nil {
		return err
	}
	if r.inner != nil {
		return r.inner.DrawGradient(buf, path, rule, m, grad, blend)
	}
	return nil
}

// Blit implements vglite.Backend.
func (r *Recorder) Blit(dst, src *vglite.Buffer, m *vglite.Matrix, blend vglite.BlendMode, filter vglite.Filter) error {
	c := BlitCall{Dst: dst, Src: src, Blend: blend, Filter: filter}
	if m != nil {
		c.Matrix = *m
	}
	if err := r.record(c); err != nil {
		return err
	}
	if r.inner != nil {
		return r.inner.Blit(dst, src, m, blend, filter)
	}
	return nil
}

// Finish implements vglite.Backend.
func (r *Recorder) Finish() error {
	if err := r.record(FinishCall{}); err != nil {
		return err
	}
	if r.inner != nil {
		return r.inner.Finish()
	}
	return nil
}

// InitGradient implements vglite.Backend.
func (r *Recorder) InitGradient(grad *vglite.LinearGradient) error {
	if err := r.record(InitGradientCall{Gradient: grad}); err != nil {
		return err
	}
	if r.inner != nil {
		return r.inner.InitGradient(grad)
	}
	*grad = vglite.LinearGradient{Matrix: vglite.IdentityMatrix()}
	return nil
}

// SetGradient implements vglite.Backend.
func (r *Recorder) SetGradient(grad *vglite.LinearGradient, colors, stops []uint32) error {
	c := SetGradientCall{
		Gradient: grad,
		Colors:   append([]uint32(nil), colors...),
		Stops:    append([]uint32(nil), stops...),
	}
	if err := r.record(c); err != nil {
		return err
	}
	if r.inner != nil {
		return r.inner.SetGradient(grad, colors, stops)
	}
	if len(colors) != len(stops) || len(colors) > vglite.MaxGradientStops {
		return &vglite.Status{Code: vglite.InvalidArgument, Op: "set gradient"}
	}
	grad.Count = copy(grad.Colors[:], colors)
	copy(grad.Stops[:], stops)
	return nil
}

// UpdateGradient implements vglite.Backend.
func (r *Recorder) UpdateGradient(grad *vglite.LinearGradient) error {
	if err := r.record(UpdateGradientCall{Gradient: grad}); err != nil {
		return err
	}
	if r.inner != nil {
		return r.inner.UpdateGradient(grad)
	}
	return nil
}

// GradientMatrix implements vglite.Backend.
func (r *Recorder) GradientMatrix(grad *vglite.LinearGradient) *vglite.Matrix {
	_ = r.record(GradientMatrixCall{Gradient: grad})
	if r.inner != nil {
		return r.inner.GradientMatrix(grad)
	}
	return &grad.Matrix
}

// ClearGradient implements vglite.Backend.
func (r *Recorder) ClearGradient(grad *vglite.LinearGradient) error {
	if err := r.record(ClearGradientCall{Gradient: grad}); err != nil {
		return err
	}
	if r.inner != nil {
		return r.inner.ClearGradient(grad)
	}
	return nil
}

var _ vglite.Backend = (*Recorder)(nil)
