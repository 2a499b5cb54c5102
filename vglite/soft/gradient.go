package soft

import (
	"slices"

	"github.com/gogpu/svglite/vglite"
)

// rampSize is the number of entries in a gradient ramp.
const rampSize = 256

// ramp is the color lookup table built by UpdateGradient.
type ramp [rampSize]pixel

// at returns the ramp color at position u, clamping outside 0..255.
func (r *ramp) at(u float64) pixel {
	switch {
	case !(u > 0):
		return r[0]
	case u >= rampSize-1:
		return r[rampSize-1]
	default:
		return r[int(u+0.5)]
	}
}

func buildRamp(g *vglite.LinearGradient) *ramp {
	r := new(ramp)
	n := g.Count
	if n == 0 {
		return r
	}
	stops, colors := g.Stops[:n], g.Colors[:n]
	k := 0
	for i := range r {
		t := uint32(i)
		for k < n-1 && stops[k+1] <= t {
			k++
		}
		switch {
		case t <= stops[0]:
			r[i] = unpackABGR(colors[0])
		case k == n-1:
			r[i] = unpackABGR(colors[n-1])
		default:
			span := float32(stops[k+1] - stops[k])
			f := float32(t-stops[k]) / span
			r[i] = unpackABGR(colors[k]).lerp(unpackABGR(colors[k+1]), f)
		}
	}
	return r
}

// InitGradient resets grad to an empty descriptor with an identity matrix.
func (b *Backend) InitGradient(grad *vglite.LinearGradient) error {
	if grad == nil {
		return vglite.Check("init gradient", vglite.InvalidArgument)
	}
	*grad = vglite.LinearGradient{Matrix: vglite.IdentityMatrix()}
	return nil
}

// SetGradient copies the stop table. Stops must be non-decreasing and
// within 0..255.
func (b *Backend) SetGradient(grad *vglite.LinearGradient, colors, stops []uint32) error {
	if grad == nil || len(colors) != len(stops) || len(colors) > vglite.MaxGradientStops {
		return vglite.Check("set gradient", vglite.InvalidArgument)
	}
	if !slices.IsSorted(stops) || (len(stops) > 0 && stops[len(stops)-1] > rampSize-1) {
		return vglite.Check("set gradient", vglite.InvalidArgument)
	}
	grad.Count = copy(grad.Colors[:], colors)
	copy(grad.Stops[:], stops)
	grad.Handle = nil
	return nil
}

// UpdateGradient builds the ramp from the stop table.
func (b *Backend) UpdateGradient(grad *vglite.LinearGradient) error {
	if grad == nil {
		return vglite.Check("update gradient", vglite.InvalidArgument)
	}
	grad.Handle = buildRamp(grad)
	return nil
}

// GradientMatrix returns grad's placement matrix.
func (b *Backend) GradientMatrix(grad *vglite.LinearGradient) *vglite.Matrix {
	return &grad.Matrix
}

// ClearGradient drops the ramp.
func (b *Backend) ClearGradient(grad *vglite.LinearGradient) error {
	if grad == nil {
		return vglite.Check("clear gradient", vglite.InvalidArgument)
	}
	grad.Handle = nil
	grad.Count = 0
	return nil
}
