package svgdoc

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"

	"github.com/gogpu/svglite/scene"
)

var pathArgs = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
}

type point struct{ x, y float64 }

func (p point) add(q point) point { return point{p.x + q.x, p.y + q.y} }

// reflect mirrors c about p.
func (p point) reflect(c point) point { return point{2*p.x - c.x, 2*p.y - c.y} }

// ParsePath parses SVG path data. Arcs are converted to cubic curves and
// relative commands to absolute coordinates.
//
// On invalid data ParsePath returns the path parsed up to the error
// together with an error wrapping ErrBadPathData, so callers may render
// the valid prefix as SVG prescribes.
func ParsePath(d string) (*scene.Path, error) {
	p := scene.NewPath()
	s := []byte(d)
	i := skipCommaWhitespace(s)
	if i == len(s) {
		return p, nil
	}
	if s[i] != 'M' && s[i] != 'm' {
		return p, fmt.Errorf("%w: path must start with a moveto, found %q", ErrBadPathData, s[i])
	}

	var f [7]float64
	var cur, start, ctrl point
	closed := false
	prev := byte('z')
	for {
		i += skipCommaWhitespace(s[i:])
		if i >= len(s) {
			break
		}

		cmd := prev
		if prev == 'z' || prev == 'Z' || !isNumberStart(s[i]) {
			cmd = s[i]
			i++
		}
		upper := cmd
		if 'a' <= cmd && cmd <= 'z' {
			upper -= 'a' - 'A'
		}
		n, ok := pathArgs[upper]
		if !ok {
			return p, fmt.Errorf("%w: unknown command %q at offset %d", ErrBadPathData, cmd, i-1)
		}
		for j := range n {
			i += skipCommaWhitespace(s[i:])
			if upper == 'A' && (j == 3 || j == 4) {
				if i < len(s) && (s[i] == '0' || s[i] == '1') {
					f[j] = float64(s[i] - '0')
					i++
					continue
				}
				return p, fmt.Errorf("%w: arc flags must be 0 or 1 at offset %d", ErrBadPathData, i)
			}
			v, m := strconv.ParseFloat(s[i:])
			if m == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return p, fmt.Errorf("%w: command %q takes %d numbers, bad value at offset %d", ErrBadPathData, cmd, n, i)
			}
			f[j] = v
			i += m
		}

		rel := cmd != upper
		origin := point{}
		if rel {
			origin = cur
		}
		if closed && upper != 'M' {
			p.MoveTo(start.x, start.y)
		}
		closed = false

		next := cur
		switch upper {
		case 'M':
			next = point{f[0], f[1]}.add(origin)
			p.MoveTo(next.x, next.y)
			start = next
			// Further coordinate pairs are implicit linetos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z':
			p.Close()
			next = start
			closed = true
		case 'L':
			next = point{f[0], f[1]}.add(origin)
			p.LineTo(next.x, next.y)
		case 'H':
			next.x = f[0] + origin.x
			p.LineTo(next.x, next.y)
		case 'V':
			next.y = f[0] + origin.y
			p.LineTo(next.x, next.y)
		case 'C':
			c1 := point{f[0], f[1]}.add(origin)
			c2 := point{f[2], f[3]}.add(origin)
			next = point{f[4], f[5]}.add(origin)
			p.CubicTo(c1.x, c1.y, c2.x, c2.y, next.x, next.y)
			ctrl = c2
		case 'S':
			c1 := cur
			if prev == 'C' || prev == 'c' || prev == 'S' || prev == 's' {
				c1 = cur.reflect(ctrl)
			}
			c2 := point{f[0], f[1]}.add(origin)
			next = point{f[2], f[3]}.add(origin)
			p.CubicTo(c1.x, c1.y, c2.x, c2.y, next.x, next.y)
			ctrl = c2
		case 'Q':
			c := point{f[0], f[1]}.add(origin)
			next = point{f[2], f[3]}.add(origin)
			p.QuadTo(c.x, c.y, next.x, next.y)
			ctrl = c
		case 'T':
			c := cur
			if prev == 'Q' || prev == 'q' || prev == 'T' || prev == 't' {
				c = cur.reflect(ctrl)
			}
			next = point{f[0], f[1]}.add(origin)
			p.QuadTo(c.x, c.y, next.x, next.y)
			ctrl = c
		case 'A':
			next = point{f[5], f[6]}.add(origin)
			arcTo(p, cur, f[0], f[1], f[2], f[3] == 1, f[4] == 1, next)
		}
		prev = cmd
		cur = next
	}
	return p, nil
}

// arcTo appends an endpoint-parameterized elliptical arc from p0 to p1 as
// cubic curves of at most 90 degrees each.
func arcTo(p *scene.Path, p0 point, rx, ry, rotation float64, large, sweep bool, p1 point) {
	if p0 == p1 {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.LineTo(p1.x, p1.y)
		return
	}

	sinPhi, cosPhi := math.Sincos(rotation * math.Pi / 180)
	dx, dy := (p0.x-p1.x)/2, (p0.y-p1.y)/2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	// Scale up radii that cannot span the endpoints.
	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den != 0 {
		coef = math.Sqrt(math.Max(0, num/den))
	}
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx
	cx := cosPhi*cx1 - sinPhi*cy1 + (p0.x+p1.x)/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (p0.y+p1.y)/2

	theta := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	delta := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx) - theta
	switch {
	case sweep && delta < 0:
		delta += 2 * math.Pi
	case !sweep && delta > 0:
		delta -= 2 * math.Pi
	}

	n := max(int(math.Ceil(math.Abs(delta)/(math.Pi/2)-1e-9)), 1)
	step := delta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	toUser := func(ux, uy float64) (float64, float64) {
		return cx + rx*ux*cosPhi - ry*uy*sinPhi, cy + rx*ux*sinPhi + ry*uy*cosPhi
	}
	for i := range n {
		a1 := theta + float64(i)*step
		s1, c1 := math.Sincos(a1)
		s2, c2 := math.Sincos(a1 + step)
		c1x, c1y := toUser(c1-k*s1, s1+k*c1)
		c2x, c2y := toUser(c2+k*s2, s2-k*c2)
		ex, ey := toUser(c2, s2)
		if i == n-1 {
			ex, ey = p1.x, p1.y
		}
		p.CubicTo(c1x, c1y, c2x, c2y, ex, ey)
	}
}
