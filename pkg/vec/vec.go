// Package vec provides the small fixed-size vectors used as control points
// and samples by the curve packages. Vec2 and Vec3 share their layout with
// gonum's r2.Vec and r3.Vec and delegate arithmetic to them.
package vec

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec2 is a 2D vector.
type Vec2 r2.Vec

// Vec3 is a 3D vector.
type Vec3 r3.Vec

// Vec4 is a 4D vector. gonum has no 4D space, so arithmetic is componentwise
// here.
type Vec4 struct {
	X, Y, Z, W float64
}

// V2 returns the 2D vector (x, y).
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// V3 returns the 3D vector (x, y, z).
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// V4 returns the 4D vector (x, y, z, w).
func V4(x, y, z, w float64) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

func (v Vec2) Add(u Vec2) Vec2 { return Vec2(r2.Add(r2.Vec(v), r2.Vec(u))) }
func (v Vec2) Sub(u Vec2) Vec2 { return Vec2(r2.Sub(r2.Vec(v), r2.Vec(u))) }

// Scale returns f*v.
func (v Vec2) Scale(f float64) Vec2 { return Vec2(r2.Scale(f, r2.Vec(v))) }

// Norm returns the Euclidean length of v.
func (v Vec2) Norm() float64 { return r2.Norm(r2.Vec(v)) }

func (v Vec2) Components() []float64 { return []float64{v.X, v.Y} }

func (v Vec3) Add(u Vec3) Vec3 { return Vec3(r3.Add(r3.Vec(v), r3.Vec(u))) }
func (v Vec3) Sub(u Vec3) Vec3 { return Vec3(r3.Sub(r3.Vec(v), r3.Vec(u))) }

// Scale returns f*v.
func (v Vec3) Scale(f float64) Vec3 { return Vec3(r3.Scale(f, r3.Vec(v))) }

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return r3.Norm(r3.Vec(v)) }

func (v Vec3) Components() []float64 { return []float64{v.X, v.Y, v.Z} }

func (v Vec4) Scale(f float64) Vec4 { return Vec4{v.X * f, v.Y * f, v.Z * f, v.W * f} }

func (v Vec4) Components() []float64 { return []float64{v.X, v.Y, v.Z, v.W} }

func (v Vec4) Add(u Vec4) Vec4 {
	return Vec4{v.X + u.X, v.Y + u.Y, v.Z + u.Z, v.W + u.W}
}

func (v Vec4) Sub(u Vec4) Vec4 {
	return Vec4{v.X - u.X, v.Y - u.Y, v.Z - u.Z, v.W - u.W}
}

// Vec2s converts rows of at least two components into 2D vectors. Extra
// components are ignored.
func Vec2s(rows [][]float64) []Vec2 {
	out := make([]Vec2, len(rows))
	for i, r := range rows {
		out[i] = Vec2{X: component(r, 0), Y: component(r, 1)}
	}
	return out
}

// Vec3s converts rows into 3D vectors, padding missing components with zero.
func Vec3s(rows [][]float64) []Vec3 {
	out := make([]Vec3, len(rows))
	for i, r := range rows {
		out[i] = Vec3{X: component(r, 0), Y: component(r, 1), Z: component(r, 2)}
	}
	return out
}

func component(r []float64, i int) float64 {
	if i < len(r) {
		return r[i]
	}
	return 0
}
