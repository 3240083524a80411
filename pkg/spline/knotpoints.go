package spline

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"voreencurves/pkg/vec"
)

// KnotPoints2 keys a 2D polyline by cumulative chord length. The result's X
// is the accumulated length and Y, Z hold the original X, Y.
//
// The per-segment length is sqrt(|dx|+|dy|), not the Euclidean distance;
// existing curves are keyed this way.
func KnotPoints2(points []vec.Vec2) []vec.Vec3 {
	steps := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		d := points[i].Sub(points[i-1])
		steps[i] = math.Sqrt(math.Abs(d.X) + math.Abs(d.Y))
	}
	lengths := floats.CumSum(make([]float64, len(steps)), steps)

	out := make([]vec.Vec3, len(points))
	for i, p := range points {
		out[i] = vec.V3(lengths[i], p.X, p.Y)
	}
	return out
}

// KnotPoints3 is KnotPoints2 for 3D polylines; the result's W holds the
// original Z.
func KnotPoints3(points []vec.Vec3) []vec.Vec4 {
	steps := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		d := points[i].Sub(points[i-1])
		steps[i] = math.Sqrt(math.Abs(d.X) + math.Abs(d.Y) + math.Abs(d.Z))
	}
	lengths := floats.CumSum(make([]float64, len(steps)), steps)

	out := make([]vec.Vec4, len(points))
	for i, p := range points {
		out[i] = vec.V4(lengths[i], p.X, p.Y, p.Z)
	}
	return out
}
