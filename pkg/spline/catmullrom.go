package spline

import (
	"fmt"
	"sync"

	"voreencurves/pkg/vec"
)

// minSpan replaces a zero component of the leading direction so the
// synthesized point never coincides with the first real point.
const minSpan = 0.001

// CatmullRom interpolates 2D points sorted by ascending x with cubic Hermite
// segments whose tangents are estimated by finite differences.
//
// A virtual point is placed before the first real point so that every real
// point except the last has a predecessor for its tangent.
//
// Value and Eval may be called concurrently with SetPoints.
type CatmullRom struct {
	mu sync.RWMutex
	// points[0] is the virtual point when more than one point was given.
	points []vec.Vec2
}

// NewCatmullRom creates a Catmull-Rom spline through points.
func NewCatmullRom(points []vec.Vec2) (*CatmullRom, error) {
	s := &CatmullRom{}
	if err := s.SetPoints(points); err != nil {
		return nil, err
	}
	return s, nil
}

// SetPoints replaces the point sequence. Points must be sorted by
// non-decreasing x. On error the previous state is kept.
func (s *CatmullRom) SetPoints(points []vec.Vec2) error {
	if len(points) == 0 {
		return fmt.Errorf("%w: Catmull-Rom spline needs at least 1 point", ErrInvalidArgument)
	}
	for i := 1; i < len(points); i++ {
		if points[i].X < points[i-1].X {
			return fmt.Errorf("%w: x-coordinates must not decrease (x[%d]=%g, x[%d]=%g)",
				ErrInvalidArgument, i-1, points[i-1].X, i, points[i].X)
		}
	}

	var pts []vec.Vec2
	if len(points) > 1 {
		delta := points[1].Sub(points[0])
		if delta.X == 0 {
			delta.X += minSpan
		}
		if delta.Y == 0 {
			delta.Y += minSpan
		}
		pts = make([]vec.Vec2, 0, len(points)+1)
		pts = append(pts, points[0].Sub(delta))
		pts = append(pts, points...)
	} else {
		pts = append([]vec.Vec2(nil), points...)
	}

	s.mu.Lock()
	s.points = pts
	s.mu.Unlock()
	return nil
}

// Value evaluates the spline at x = t*(x[last]-x[first]) where first and
// last are the real end points. x is clamped to [x[first], x[last]], so a
// parameter outside that range yields the y of the nearest real end point.
func (s *CatmullRom) Value(t float64) float64 {
	v, _ := s.eval(t, false)
	return v
}

// Eval is like Value but returns ErrOutOfDomain instead of clamping.
func (s *CatmullRom) Eval(t float64) (float64, error) {
	return s.eval(t, true)
}

func (s *CatmullRom) eval(t float64, strict bool) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.points
	if len(p) == 1 {
		return p[0].Y, nil
	}

	last := len(p) - 1
	delta := p[last].X - p[1].X
	x := t * delta

	// The domain starts at the first real point, never the virtual one.
	if x < p[1].X || x > p[last].X {
		if strict {
			return 0, fmt.Errorf("%w: t=%g maps to x=%g outside [%g, %g]",
				ErrOutOfDomain, t, x, p[1].X, p[last].X)
		}
		x = min(max(x, p[1].X), p[last].X)
	}

	i := 1
	for i < last && p[i].X < x {
		i++
	}

	x1, p1 := p[i-1].X, p[i-1].Y
	x2, p2 := p[i].X, p[i].Y

	var m1 float64
	if i != 1 {
		m1 = 0.5 * (p2 - p[i-2].Y)
	} else {
		m1 = p2 - p1
	}

	i++
	var m2 float64
	if i < len(p) {
		m2 = 0.5 * (p[i].Y - p1)
	} else {
		m2 = p2 - p1
	}

	t2 := (x - x1) / (x2 - x1)
	h00 := (1 + 2*t2) * (1 - t2) * (1 - t2)
	h10 := t2 * (1 - t2) * (1 - t2)
	h01 := t2 * t2 * (3 - 2*t2)
	h11 := t2 * t2 * (t2 - 1)
	return h00*p1 + h10*m1 + h01*p2 + h11*m2, nil
}

// Points returns a copy of the stored sequence including the virtual point.
func (s *CatmullRom) Points() []vec.Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]vec.Vec2(nil), s.points...)
}
