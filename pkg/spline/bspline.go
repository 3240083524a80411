package spline

import (
	"fmt"
)

const (
	// DefaultDegree is the degree used when callers have no preference.
	DefaultDegree = 3

	// DefaultStepCount is the tessellation resolution used when callers have
	// no preference.
	DefaultStepCount = 50

	// knotEpsilon widens the upper knot so that the half-open basis test
	// u < knot still covers u == 1 exactly.
	knotEpsilon = 1e-6
)

// BSpline is a clamped uniform B-spline of arbitrary degree over control
// points of type P. It interpolates its first and last control point.
//
// A BSpline is immutable after construction and safe for concurrent use.
type BSpline[P Point[P]] struct {
	controlPoints []P
	knots         []float64
	degree        int
	stepCount     int
}

// NewBSpline creates a B-spline with an implicit uniform knot vector.
//
// The first and last degree+1 knots are 0 and 1+1e-6, the inner knots are
// spaced uniformly in between.
func NewBSpline[P Point[P]](controlPoints []P, degree, stepCount int) (*BSpline[P], error) {
	if err := checkBSplineArgs(len(controlPoints), degree, stepCount); err != nil {
		return nil, err
	}

	s := &BSpline[P]{
		controlPoints: append([]P(nil), controlPoints...),
		degree:        degree,
		stepCount:     stepCount,
	}
	s.generateUniformKnots()
	return s, nil
}

// NewBSplineWithKnots creates a B-spline from one knot value per control
// point. The knots must be non-decreasing. They are rescaled to [0, 1+1e-6]
// and padded with degree boundary values at each end.
func NewBSplineWithKnots[P Point[P]](controlPoints []P, knotValues []float64, degree, stepCount int) (*BSpline[P], error) {
	if err := checkBSplineArgs(len(controlPoints), degree, stepCount); err != nil {
		return nil, err
	}
	if len(knotValues) != len(controlPoints) {
		return nil, fmt.Errorf("%w: got %d knot values for %d control points",
			ErrInvalidConfiguration, len(knotValues), len(controlPoints))
	}
	for i := 1; i < len(knotValues); i++ {
		if knotValues[i] < knotValues[i-1] {
			return nil, fmt.Errorf("%w: knot values decrease at index %d (%g < %g)",
				ErrInvalidArgument, i, knotValues[i], knotValues[i-1])
		}
	}

	s := &BSpline[P]{
		controlPoints: append([]P(nil), controlPoints...),
		degree:        degree,
		stepCount:     stepCount,
	}
	if err := s.generateKnotsFrom(knotValues); err != nil {
		return nil, err
	}
	return s, nil
}

func checkBSplineArgs(numPoints, degree, stepCount int) error {
	if degree <= 0 {
		return fmt.Errorf("%w: degree %d must be positive", ErrInvalidConfiguration, degree)
	}
	if numPoints <= degree {
		return fmt.Errorf("%w: %d control points given, degree %d needs at least %d",
			ErrInvalidConfiguration, numPoints, degree, degree+1)
	}
	if stepCount < 1 {
		return fmt.Errorf("%w: step count %d must be at least 1", ErrInvalidConfiguration, stepCount)
	}
	return nil
}

// generateUniformKnots builds the n+d+1 knots with d+1 fold boundary knots.
func (s *BSpline[P]) generateUniformKnots() {
	total := len(s.controlPoints) + s.degree + 1
	inner := total - 2*(s.degree+1)

	s.knots = make([]float64, 0, total)
	for i := 0; i <= s.degree; i++ {
		s.knots = append(s.knots, 0.0)
	}
	for i := 1; i <= inner; i++ {
		s.knots = append(s.knots, float64(i)/float64(inner+1))
	}
	for i := 0; i <= s.degree; i++ {
		s.knots = append(s.knots, 1.0+knotEpsilon)
	}
}

// generateKnotsFrom rescales the central part of the supplied knots into
// [0, 1+1e-6]. The padding is degree knots per side rather than degree+1;
// the boundary values of the central range supply the remaining one.
func (s *BSpline[P]) generateKnotsFrom(values []float64) error {
	firstKnot := (s.degree+2)/2 - 1
	lastKnot := len(values) - (s.degree+1)/2

	minKnot := values[firstKnot]
	maxKnot := values[lastKnot]
	if maxKnot == minKnot {
		return fmt.Errorf("%w: knot values %d..%d span zero length",
			ErrInvalidArgument, firstKnot, lastKnot)
	}
	shift := -minKnot
	scale := (1.0 + knotEpsilon) / (maxKnot - minKnot)

	s.knots = make([]float64, 0, len(values)+s.degree+1)
	for i := 0; i < s.degree; i++ {
		s.knots = append(s.knots, 0.0)
	}
	for i := firstKnot; i <= lastKnot; i++ {
		s.knots = append(s.knots, (values[i]+shift)*scale)
	}
	for i := 0; i < s.degree; i++ {
		s.knots = append(s.knots, 1.0+knotEpsilon)
	}
	return nil
}

// Point evaluates the spline at t. Parameters outside the knot range get no
// basis support and yield the zero point.
func (s *BSpline[P]) Point(t float64) P {
	var p P
	for i, cp := range s.controlPoints {
		p = p.Add(cp.Scale(s.Basis(i, s.degree, t)))
	}
	return p
}

// Derivative is not implemented and always returns the zero point.
func (s *BSpline[P]) Derivative(t float64) P {
	var zero P
	return zero
}

// Basis evaluates the B-spline basis function of the given degree starting
// at knotID, using the Cox-de Boor recursion. Coincident knots contribute a
// factor of exactly zero.
func (s *BSpline[P]) Basis(knotID, degree int, u float64) float64 {
	k := s.knots
	if degree == 0 {
		if k[knotID] <= u && u < k[knotID+1] {
			return 1.0
		}
		return 0.0
	}

	var factor1, factor2 float64
	if k[knotID+degree] != k[knotID] {
		factor1 = (u - k[knotID]) / (k[knotID+degree] - k[knotID])
	}
	if k[knotID+degree+1] != k[knotID+1] {
		factor2 = (k[knotID+degree+1] - u) / (k[knotID+degree+1] - k[knotID+1])
	}
	return factor1*s.Basis(knotID, degree-1, u) + factor2*s.Basis(knotID+1, degree-1, u)
}

// Tessellate samples the spline at stepCount+1 uniformly spaced parameters
// in [0, 1].
func (s *BSpline[P]) Tessellate() []P {
	out := make([]P, s.stepCount+1)
	for i := range out {
		out[i] = s.Point(float64(i) / float64(s.stepCount))
	}
	return out
}

// Knots returns a copy of the knot vector.
func (s *BSpline[P]) Knots() []float64 {
	return append([]float64(nil), s.knots...)
}

// ControlPoints returns a copy of the control points.
func (s *BSpline[P]) ControlPoints() []P {
	return append([]P(nil), s.controlPoints...)
}

func (s *BSpline[P]) Degree() int    { return s.degree }
func (s *BSpline[P]) StepCount() int { return s.stepCount }
