// Package vglitetest provides a recording vglite.Backend for tests.
//
// A [Recorder] captures every call as a typed [Call] value, counts buffer
// allocations, can delegate to a real backend, and can inject a failure
// status into the Nth call of a given type.
//
//	rec := vglitetest.NewRecorder(soft.New())
//	rec.FailOn(vglitetest.CallBlit, 2, vglite.OutOfResources)
//	err := svglite.Render(rec, target, tree)
//	// rec.Allocs() == rec.Frees()
package vglitetest

import (
	"github.com/gogpu/svglite/vglite"
)

// CallType identifies a backend method.
type CallType uint8

// Backend methods.
const (
	CallInit CallType = iota
	CallClose
	CallAllocate
	CallFree
	CallClear
	CallDraw
	CallDrawGradient
	CallBlit
	CallFinish
	CallInitGradient
	CallSetGradient
	CallUpdateGradient
	CallGradientMatrix
	CallClearGradient

	callTypeCount
)

var callTypeNames = [...]string{
	CallInit:           "Init",
	CallClose:          "Close",
	CallAllocate:       "Allocate",
	CallFree:           "Free",
	CallClear:          "Clear",
	CallDraw:           "Draw",
	CallDrawGradient:   "DrawGradient",
	CallBlit:           "Blit",
	CallFinish:         "Finish",
	CallInitGradient:   "InitGradient",
	CallSetGradient:    "SetGradient",
	CallUpdateGradient: "UpdateGradient",
	CallGradientMatrix: "GradientMatrix",
	CallClearGradient:  "ClearGradient",
}

// String returns the method name.
func (c CallType) String() string {
	if int(c) < len(callTypeNames) {
		return callTypeNames[c]
	}
	return "Unknown"
}

// Call is a recorded backend call.
type Call interface {
	// Type returns the CallType for this call.
	Type() CallType
}

// InitCall records Init.
type InitCall struct{ Width, Height int }

// CloseCall records Close.
type CloseCall struct{}

// AllocateCall records Allocate.
type AllocateCall struct {
	Buffer *vglite.Buffer
	Width  int
	Height int
	Format vglite.Format
}

// FreeCall records Free.
type FreeCall struct{ Buffer *vglite.Buffer }

// ClearCall records Clear.
type ClearCall struct {
	Buffer *vglite.Buffer
	Rect   *vglite.Rect
	Color  uint32
}

// DrawCall records Draw. Path.Data is a private copy of the stream.
type DrawCall struct {
	Target *vglite.Buffer
	Path   vglite.Path
	Rule   vglite.FillRule
	Matrix vglite.Matrix
	Blend  vglite.BlendMode
	Color  uint32
}

// DrawGradientCall records DrawGradient with a snapshot of the descriptor.
type DrawGradientCall struct {
	Target   *vglite.Buffer
	Path     vglite.Path
	Rule     vglite.FillRule
	Matrix   vglite.Matrix
	Gradient vglite.LinearGradient
	Blend    vglite.BlendMode
}

// BlitCall records Blit.
type BlitCall struct {
	Dst    *vglite.Buffer
	Src    *vglite.Buffer
	Matrix vglite.Matrix
	Blend  vglite.BlendMode
	Filter vglite.Filter
}

// FinishCall records Finish.
type FinishCall struct{}

// InitGradientCall records InitGradient.
type InitGradientCall struct{ Gradient *vglite.LinearGradient }

// SetGradientCall records SetGradient.
type SetGradientCall struct {
	Gradient *vglite.LinearGradient
	Colors   []uint32
	Stops    []uint32
}

// UpdateGradientCall records UpdateGradient.
type UpdateGradientCall struct{ Gradient *vglite.LinearGradient }

// GradientMatrixCall records GradientMatrix.
type GradientMatrixCall struct{ Gradient *vglite.LinearGradient }

// ClearGradientCall records ClearGradient.
type ClearGradientCall struct{ Gradient *vglite.LinearGradient }

// Type implements Call.
func (InitCall) Type() CallType { return CallInit }

// Type implements Call.
func (CloseCall) Type() CallType { return CallClose }

// Type implements Call.
func (AllocateCall) Type() CallType { return CallAllocate }

// Type implements Call.
func (FreeCall) Type() CallType { return CallFree }

// Type implements Call.
func (ClearCall) Type() CallType { return CallClear }

// Type implements Call.
func (DrawCall) Type() CallType { return CallDraw }

// Type implements Call.
func (DrawGradientCall) Type() CallType { return CallDrawGradient }

// Type implements Call.
func (BlitCall) Type() CallType { return CallBlit }

// Type implements Call.
func (FinishCall) Type() CallType { return CallFinish }

// Type implements Call.
func (InitGradientCall) Type() CallType { return CallInitGradient }

// Type implements Call.
func (SetGradientCall) Type() CallType { return CallSetGradient }

// Type implements Call.
func (UpdateGradientCall) Type() CallType { return CallUpdateGradient }

// Type implements Call.
func (GradientMatrixCall) Type() CallType { return CallGradientMatrix }

// Type implements Call.
func (ClearGradientCall) Type() CallType { return CallClearGradient }
