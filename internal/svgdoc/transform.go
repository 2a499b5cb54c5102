package svgdoc

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/svglite/scene"
)

// parseTransform parses a transform list such as
// "translate(10 20) rotate(45, 5, 5)". Transforms apply right to left,
// so the last one in the list is applied to coordinates first.
func parseTransform(s string) (scene.Transform, error) {
	t := scene.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		closing := strings.IndexByte(rest, ')')
		if open < 0 || closing < open {
			return scene.Identity(), fmt.Errorf("svgdoc: bad transform %q", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, ok := parseNumbers(rest[open+1 : closing])
		if !ok {
			return scene.Identity(), fmt.Errorf("svgdoc: bad %s arguments in %q", name, s)
		}
		local, err := transformFunc(name, args)
		if err != nil {
			return scene.Identity(), err
		}
		t = t.Append(local)
		rest = strings.TrimLeft(rest[closing+1:], " ,\t\r\n")
	}
	return t, nil
}

func transformFunc(name string, args []float64) (scene.Transform, error) {
	arity := func(counts ...int) error {
		for _, n := range counts {
			if len(args) == n {
				return nil
			}
		}
		return fmt.Errorf("svgdoc: %s takes %v arguments, got %d", name, counts, len(args))
	}

	switch name {
	case "matrix":
		if err := arity(6); err != nil {
			return scene.Transform{}, err
		}
		return scene.Transform{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}, nil
	case "translate":
		if err := arity(1, 2); err != nil {
			return scene.Transform{}, err
		}
		ty := 0.0
		if len(args) == 2 {
			ty = args[1]
		}
		return scene.NewTranslate(args[0], ty), nil
	case "scale":
		if err := arity(1, 2); err != nil {
			return scene.Transform{}, err
		}
		sy := args[0]
		if len(args) == 2 {
			sy = args[1]
		}
		return scene.NewScale(args[0], sy), nil
	case "rotate":
		if err := arity(1, 3); err != nil {
			return scene.Transform{}, err
		}
		if len(args) == 1 {
			return scene.NewRotate(args[0]), nil
		}
		cx, cy := args[1], args[2]
		return scene.NewTranslate(cx, cy).Rotate(args[0]).Translate(-cx, -cy), nil
	case "skewX":
		if err := arity(1); err != nil {
			return scene.Transform{}, err
		}
		return scene.Transform{A: 1, C: math.Tan(args[0] * math.Pi / 180), D: 1}, nil
	case "skewY":
		if err := arity(1); err != nil {
			return scene.Transform{}, err
		}
		return scene.Transform{A: 1, B: math.Tan(args[0] * math.Pi / 180), D: 1}, nil
	default:
		return scene.Transform{}, fmt.Errorf("svgdoc: unknown transform %q", name)
	}
}

// fitViewBox maps vb into a width x height viewport, scaling uniformly and
// centering (preserveAspectRatio="xMidYMid meet").
func fitViewBox(vb scene.Rect, width, height float64) scene.Transform {
	if vb.IsEmpty() || width <= 0 || height <= 0 {
		return scene.Identity()
	}
	s := min(width/vb.Width, height/vb.Height)
	tx := (width-vb.Width*s)/2 - vb.X*s
	ty := (height-vb.Height*s)/2 - vb.Y*s
	return scene.NewTranslate(tx, ty).Scale(s, s)
}
