package config

import (
	"fmt"

	"voreencurves/internal/models"
	"voreencurves/pkg/sampling"
	"voreencurves/pkg/spline"
	"voreencurves/pkg/transfunc"
	"voreencurves/pkg/vec"
)

// BuildCurve constructs the configured curve. Scalar splines evaluate to a
// single coordinate; B-splines and arc-length paths keep the dimension of
// their points.
func (c *Config) BuildCurve() (sampling.Curve, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	kind, _ := models.ParseCurveKind(c.Curve.Kind)
	rows := c.Curve.Points
	is3D := len(rows[0]) == 3

	switch kind {
	case models.BSpline:
		if is3D {
			return buildBSpline(vec.Vec3s(rows), c.Curve.Knots, c.Curve.Degree, c.Curve.StepCount)
		}
		return buildBSpline(vec.Vec2s(rows), c.Curve.Knots, c.Curve.Degree, c.Curve.StepCount)

	case models.NaturalCubic:
		s, err := spline.NewNaturalCubic(vec.Vec2s(rows))
		if err != nil {
			return nil, fmt.Errorf("error building natural cubic spline: %w", err)
		}
		return sampling.Scalar(s.Value), nil

	case models.CatmullRom:
		s, err := spline.NewCatmullRom(vec.Vec2s(rows))
		if err != nil {
			return nil, fmt.Errorf("error building Catmull-Rom spline: %w", err)
		}
		return sampling.Scalar(s.Value), nil

	case models.ArcLength:
		var p *spline.ArcLengthPath
		var err error
		if is3D {
			p, err = spline.NewArcLengthPath3(vec.Vec3s(rows))
		} else {
			p, err = spline.NewArcLengthPath2(vec.Vec2s(rows))
		}
		if err != nil {
			return nil, fmt.Errorf("error building arc-length path: %w", err)
		}
		return sampling.FromArcLength(p), nil
	}
	return nil, fmt.Errorf("%w: unsupported curve kind %s", ErrInvalidConfig, kind)
}

type bsplinePoint[P any] interface {
	spline.Point[P]
	Components() []float64
}

func buildBSpline[P bsplinePoint[P]](pts []P, knots []float64, degree, stepCount int) (sampling.Curve, error) {
	var s *spline.BSpline[P]
	var err error
	if len(knots) > 0 {
		s, err = spline.NewBSplineWithKnots(pts, knots, degree, stepCount)
	} else {
		s, err = spline.NewBSpline(pts, degree, stepCount)
	}
	if err != nil {
		return nil, fmt.Errorf("error building B-spline: %w", err)
	}
	return sampling.FromBSpline(s), nil
}

// BuildTransferFunction constructs the configured transfer function and
// returns it with its lookup table width.
func (c *Config) BuildTransferFunction() (*transfunc.Keys, int, error) {
	tf, err := transfunc.FromDocument(c.TransferFunction)
	if err != nil {
		return nil, 0, fmt.Errorf("error building transfer function: %w", err)
	}
	width := c.TransferFunction.Width
	if width == 0 {
		width = transfunc.DefaultWidth
	}
	return tf, width, nil
}
