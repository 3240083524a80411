package sampling

import (
	"voreencurves/pkg/spline"
)

type vectorPoint[P any] interface {
	spline.Point[P]
	Components() []float64
}

type funcCurve struct {
	dim int
	f   func(t float64) []float64
}

func (c funcCurve) Dim() int                 { return c.dim }
func (c funcCurve) Eval(t float64) []float64 { return c.f(t) }

// Func wraps an arbitrary evaluation function producing dim coordinates.
func Func(dim int, f func(t float64) []float64) Curve {
	return funcCurve{dim: dim, f: f}
}

// Scalar wraps a one-dimensional curve such as NaturalCubic.Value or
// CatmullRom.Value.
func Scalar(f func(t float64) float64) Curve {
	return funcCurve{dim: 1, f: func(t float64) []float64 {
		return []float64{f(t)}
	}}
}

// FromBSpline adapts a B-spline over vec.Vec2, vec.Vec3 or vec.Vec4.
func FromBSpline[P vectorPoint[P]](s *spline.BSpline[P]) Curve {
	var zero P
	return funcCurve{dim: len(zero.Components()), f: func(t float64) []float64 {
		return s.Point(t).Components()
	}}
}

// FromArcLength adapts a chord-length keyed path.
func FromArcLength(p *spline.ArcLengthPath) Curve {
	return funcCurve{dim: p.Dim(), f: p.Point}
}
