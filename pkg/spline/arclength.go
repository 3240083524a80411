package spline

import (
	"fmt"

	"voreencurves/pkg/vec"
)

// ArcLengthPath is a smooth path through a polyline, parameterized by
// approximate chord length. Each coordinate is a natural cubic spline over
// the knot points produced by KnotPoints2 or KnotPoints3.
type ArcLengthPath struct {
	coords []*NaturalCubic
	length float64
}

// NewArcLengthPath2 builds a path through a 2D polyline. Consecutive points
// must differ.
func NewArcLengthPath2(points []vec.Vec2) (*ArcLengthPath, error) {
	knots := KnotPoints2(points)
	rows := make([][]float64, len(knots))
	for i, k := range knots {
		rows[i] = k.Components()
	}
	return newArcLengthPath(rows)
}

// NewArcLengthPath3 builds a path through a 3D polyline. Consecutive points
// must differ.
func NewArcLengthPath3(points []vec.Vec3) (*ArcLengthPath, error) {
	knots := KnotPoints3(points)
	rows := make([][]float64, len(knots))
	for i, k := range knots {
		rows[i] = k.Components()
	}
	return newArcLengthPath(rows)
}

// newArcLengthPath takes rows of (length, c0, c1, ...).
func newArcLengthPath(rows [][]float64) (*ArcLengthPath, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: path needs at least 2 points, got %d", ErrInvalidArgument, len(rows))
	}

	dims := len(rows[0]) - 1
	path := &ArcLengthPath{
		coords: make([]*NaturalCubic, dims),
		length: rows[len(rows)-1][0],
	}
	for d := 0; d < dims; d++ {
		pts := make([]vec.Vec2, len(rows))
		for i, r := range rows {
			pts[i] = vec.V2(r[0], r[d+1])
		}
		s, err := NewNaturalCubic(pts)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", d, err)
		}
		path.coords[d] = s
	}
	return path, nil
}

// Dim returns the number of coordinates of the path points.
func (p *ArcLengthPath) Dim() int { return len(p.coords) }

// Length returns the total chord length of the underlying polyline.
func (p *ArcLengthPath) Length() float64 { return p.length }

// Point evaluates all coordinates at t in [0, 1].
func (p *ArcLengthPath) Point(t float64) []float64 {
	out := make([]float64, len(p.coords))
	for d, s := range p.coords {
		out[d] = s.Value(t)
	}
	return out
}
