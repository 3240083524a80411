// Package spline implements the curve evaluation core used by transfer
// function editing and animation: uniform B-splines evaluated with the
// Cox-de Boor recursion, natural cubic splines and Catmull-Rom splines over
// 2D key points, and chord-length keyed paths built on top of them.
package spline

// Point is the control point type a B-spline is built from. vec.Vec2,
// vec.Vec3 and vec.Vec4 satisfy it. The zero value of P must be the zero
// vector.
type Point[P any] interface {
	Add(P) P
	Sub(P) P
	Scale(float64) P
}
