package spline

import (
	"fmt"
	"sync"

	"voreencurves/pkg/vec"
)

// cubicCoeff holds a + b*dx + c*dx^2 + d*dx^3 for one segment.
type cubicCoeff struct {
	a, b, c, d float64
}

// NaturalCubic is a natural cubic spline through 2D points sorted by
// ascending x. The second derivative vanishes at both ends.
//
// Value may be called concurrently with SetPoints.
type NaturalCubic struct {
	mu     sync.RWMutex
	points []vec.Vec2
	coeffs []cubicCoeff
}

// NewNaturalCubic creates a natural cubic spline through points.
func NewNaturalCubic(points []vec.Vec2) (*NaturalCubic, error) {
	s := &NaturalCubic{}
	if err := s.SetPoints(points); err != nil {
		return nil, err
	}
	return s, nil
}

// SetPoints replaces the point sequence and recomputes all segment
// coefficients. At least two points with strictly increasing x are required.
// On error the previous state is kept.
func (s *NaturalCubic) SetPoints(points []vec.Vec2) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: natural cubic spline needs at least 2 points, got %d",
			ErrInvalidArgument, len(points))
	}
	for i := 1; i < len(points); i++ {
		if !(points[i].X > points[i-1].X) {
			return fmt.Errorf("%w: x-coordinates must increase strictly (x[%d]=%g, x[%d]=%g)",
				ErrInvalidArgument, i-1, points[i-1].X, i, points[i].X)
		}
	}

	pts := append([]vec.Vec2(nil), points...)
	coeffs := computeCoefficients(pts)

	s.mu.Lock()
	s.points = pts
	s.coeffs = coeffs
	s.mu.Unlock()
	return nil
}

// computeCoefficients solves for the second derivatives with a forward
// elimination and back substitution sweep over the tridiagonal system, then
// derives the per-segment polynomial coefficients.
func computeCoefficients(p []vec.Vec2) []cubicCoeff {
	n := len(p)

	h := make([]float64, n-1)
	b := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = p[i+1].X - p[i].X
		b[i] = (p[i+1].Y - p[i].Y) / h[i]
	}

	// Forward elimination. Only interior points have an equation.
	u := make([]float64, n-1)
	v := make([]float64, n-1)
	if n > 2 {
		u[1] = 2 * (h[0] + h[1])
		v[1] = 6 * (b[1] - b[0])
		for i := 2; i < n-1; i++ {
			u[i] = 2*(h[i-1]+h[i]) - h[i-1]*h[i-1]/u[i-1]
			v[i] = 6*(b[i]-b[i-1]) - h[i-1]*v[i-1]/u[i-1]
		}
	}

	// Back substitution with natural boundaries z[0] = z[n-1] = 0.
	z := make([]float64, n)
	z[n-1] = 0
	for i := n - 2; i >= 1; i-- {
		z[i] = (v[i] - h[i]*z[i+1]) / u[i]
	}
	z[0] = 0

	coeffs := make([]cubicCoeff, n-1)
	for i := 0; i < n-1; i++ {
		coeffs[i] = cubicCoeff{
			a: p[i].Y,
			b: -(h[i]/6)*z[i+1] - (h[i]/3)*z[i] + (p[i+1].Y-p[i].Y)/h[i],
			c: z[i] / 2,
			d: (z[i+1] - z[i]) / (6 * h[i]),
		}
	}
	return coeffs
}

// Lookup returns the index of the segment containing x. Values left of the
// first point map to segment 0 and values at or right of the second to last
// point map to the last segment.
func (s *NaturalCubic) Lookup(x float64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookup(s.points, x)
}

func lookup(p []vec.Vec2, x float64) int {
	n := len(p)
	if x <= p[0].X {
		return 0
	}
	if x >= p[n-2].X {
		return n - 2
	}

	// p[i1].X <= x < p[i2].X
	i1, i2 := 0, n-2
	for i2-i1 > 1 {
		i3 := i1 + (i2-i1)>>1
		if p[i3].X > x {
			i2 = i3
		} else {
			i1 = i3
		}
	}
	return i1
}

// Value evaluates the spline at x = t*(x[n-1]-x[0]). Parameters outside
// [0, 1] extrapolate with the boundary segment's polynomial.
func (s *NaturalCubic) Value(t float64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.points)
	delta := s.points[n-1].X - s.points[0].X
	x := t * delta
	i := lookup(s.points, x)

	c := s.coeffs[i]
	dx := x - s.points[i].X
	return c.a + dx*(c.b+dx*(c.c+dx*c.d))
}

// SecondDerivative returns the second derivative of segment i at its left
// end, or at its right end when rightEnd is set.
func (s *NaturalCubic) SecondDerivative(i int, rightEnd bool) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.coeffs[i]
	if !rightEnd {
		return 2 * c.c
	}
	h := s.points[i+1].X - s.points[i].X
	return 2*c.c + 6*c.d*h
}

// Points returns a copy of the point sequence.
func (s *NaturalCubic) Points() []vec.Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]vec.Vec2(nil), s.points...)
}

// NumSegments returns the number of polynomial segments.
func (s *NaturalCubic) NumSegments() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.coeffs)
}
