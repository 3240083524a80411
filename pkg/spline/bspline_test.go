package spline

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"voreencurves/pkg/vec"
)

func vec3Close(a, b vec.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func zigzag() []vec.Vec3 {
	return []vec.Vec3{
		vec.V3(0, 0, 0),
		vec.V3(1, 2, 0),
		vec.V3(2, 0, 0),
		vec.V3(3, 2, 0),
	}
}

// TestNewBSplineValidation verifies that malformed arguments are reported
// with the matching error kind
func TestNewBSplineValidation(t *testing.T) {
	pts := zigzag()

	tests := []struct {
		name    string
		build   func() error
		wantErr error
	}{
		{"zero degree", func() error {
			_, err := NewBSpline(pts, 0, DefaultStepCount)
			return err
		}, ErrInvalidConfiguration},
		{"negative degree", func() error {
			_, err := NewBSpline(pts, -2, DefaultStepCount)
			return err
		}, ErrInvalidConfiguration},
		{"too few points", func() error {
			_, err := NewBSpline(pts[:3], 3, DefaultStepCount)
			return err
		}, ErrInvalidConfiguration},
		{"zero step count", func() error {
			_, err := NewBSpline(pts, 3, 0)
			return err
		}, ErrInvalidConfiguration},
		{"knot count mismatch", func() error {
			_, err := NewBSplineWithKnots(pts, []float64{0, 1, 2}, 3, DefaultStepCount)
			return err
		}, ErrInvalidConfiguration},
		{"decreasing knots", func() error {
			_, err := NewBSplineWithKnots(pts, []float64{0, 2, 1, 3}, 3, DefaultStepCount)
			return err
		}, ErrInvalidArgument},
		{"zero knot span", func() error {
			_, err := NewBSplineWithKnots(pts, []float64{1, 1, 1, 1}, 3, DefaultStepCount)
			return err
		}, ErrInvalidArgument},
		{"valid", func() error {
			_, err := NewBSpline(pts, 3, DefaultStepCount)
			return err
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestUniformKnots verifies the clamped knot vector built without caller knots
func TestUniformKnots(t *testing.T) {
	top := 1.0 + knotEpsilon

	tests := []struct {
		numPoints int
		degree    int
		want      []float64
	}{
		{4, 3, []float64{0, 0, 0, 0, top, top, top, top}},
		{6, 3, []float64{0, 0, 0, 0, 1.0 / 3, 2.0 / 3, top, top, top, top}},
		{3, 1, []float64{0, 0, 0.5, top, top}},
	}

	for _, tt := range tests {
		pts := make([]vec.Vec2, tt.numPoints)
		s, err := NewBSpline(pts, tt.degree, DefaultStepCount)
		if err != nil {
			t.Fatalf("NewBSpline(%d points, degree %d): %v", tt.numPoints, tt.degree, err)
		}

		knots := s.Knots()
		if len(knots) != tt.numPoints+tt.degree+1 {
			t.Errorf("Expected %d knots, got %d", tt.numPoints+tt.degree+1, len(knots))
		}
		if !floats.EqualApprox(knots, tt.want, 1e-12) {
			t.Errorf("Knots for %d points, degree %d: expected %v, got %v",
				tt.numPoints, tt.degree, tt.want, knots)
		}
	}
}

// TestSuppliedKnots verifies rescaling and the degree-fold padding of caller knots
func TestSuppliedKnots(t *testing.T) {
	pts := make([]vec.Vec3, 6)
	s, err := NewBSplineWithKnots(pts, []float64{0, 1, 2, 3, 4, 5}, 3, DefaultStepCount)
	if err != nil {
		t.Fatalf("NewBSplineWithKnots: %v", err)
	}

	top := 1.0 + knotEpsilon
	scale := top / 3
	want := []float64{0, 0, 0, 0, scale, 2 * scale, 3 * scale, top, top, top}

	knots := s.Knots()
	if len(knots) != len(pts)+3+1 {
		t.Fatalf("Expected %d knots, got %d", len(pts)+4, len(knots))
	}
	if !floats.EqualApprox(knots, want, 1e-12) {
		t.Errorf("Expected knots %v, got %v", want, knots)
	}

	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			t.Errorf("Knot vector decreases at %d: %v", i, knots)
		}
	}
}

// TestBSplineEndpoints verifies that a clamped spline interpolates its end points
func TestBSplineEndpoints(t *testing.T) {
	pts := zigzag()
	s, err := NewBSpline(pts, 3, DefaultStepCount)
	if err != nil {
		t.Fatalf("NewBSpline: %v", err)
	}

	if got := s.Point(0); !vec3Close(got, pts[0], 1e-9) {
		t.Errorf("Point(0): expected %v, got %v", pts[0], got)
	}
	if got := s.Point(1); !vec3Close(got, pts[3], 1e-4) {
		t.Errorf("Point(1): expected %v, got %v", pts[3], got)
	}

	// Higher point counts and other degrees behave the same way
	many := []vec.Vec3{
		vec.V3(0, 0, 0), vec.V3(1, 3, 1), vec.V3(2, -1, 2),
		vec.V3(4, 4, 0), vec.V3(5, 0, 1), vec.V3(7, 2, 3),
	}
	for degree := 1; degree <= 5; degree++ {
		s, err := NewBSpline(many, degree, DefaultStepCount)
		if err != nil {
			t.Fatalf("NewBSpline degree %d: %v", degree, err)
		}
		if got := s.Point(0); !vec3Close(got, many[0], 1e-9) {
			t.Errorf("Degree %d Point(0): expected %v, got %v", degree, many[0], got)
		}
		if got := s.Point(1); !vec3Close(got, many[len(many)-1], 1e-4) {
			t.Errorf("Degree %d Point(1): expected %v, got %v", degree, many[len(many)-1], got)
		}
	}
}

// TestLinearBSpline verifies that a degree 1 spline is the polyline
func TestLinearBSpline(t *testing.T) {
	pts := []vec.Vec2{vec.V2(0, 0), vec.V2(2, 4)}
	s, err := NewBSpline(pts, 1, DefaultStepCount)
	if err != nil {
		t.Fatalf("NewBSpline: %v", err)
	}

	for _, u := range []float64{0, 0.25, 0.5, 0.75} {
		got := s.Point(u)
		want := u / (1 + knotEpsilon)
		if math.Abs(got.X-2*want) > 1e-9 || math.Abs(got.Y-4*want) > 1e-9 {
			t.Errorf("Point(%g): expected (%g, %g), got %v", u, 2*want, 4*want, got)
		}
	}
}

// TestBasisPartitionOfUnity verifies that the basis functions sum to one inside the domain
func TestBasisPartitionOfUnity(t *testing.T) {
	pts := make([]vec.Vec2, 7)
	for degree := 1; degree <= 4; degree++ {
		s, err := NewBSpline(pts, degree, DefaultStepCount)
		if err != nil {
			t.Fatalf("NewBSpline degree %d: %v", degree, err)
		}

		for u := 0.0; u <= 1.0; u += 0.05 {
			sum := 0.0
			for i := range pts {
				sum += s.Basis(i, degree, u)
			}
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("Degree %d: basis sum at u=%g is %g", degree, u, sum)
			}
		}
	}
}

// TestDegenerateKnots verifies that coincident knots never divide by zero
func TestDegenerateKnots(t *testing.T) {
	pts := zigzag()
	s, err := NewBSplineWithKnots(pts, []float64{0, 0, 1, 1}, 2, DefaultStepCount)
	if err != nil {
		t.Fatalf("NewBSplineWithKnots: %v", err)
	}

	knots := s.Knots()
	for degree := 0; degree <= 2; degree++ {
		for i := 0; i+degree+1 < len(knots); i++ {
			for _, u := range []float64{0, 0.3, 0.5, 0.99, 1} {
				b := s.Basis(i, degree, u)
				if math.IsNaN(b) || math.IsInf(b, 0) {
					t.Errorf("Basis(%d, %d, %g) = %g", i, degree, u, b)
				}
			}
		}
	}

	// knots[1] == knots[2], so the left factor of the degree 1 basis at
	// knot 1 is exactly zero and only the right term remains
	k := s.Knots()
	if k[1] != k[2] {
		t.Fatalf("Expected coincident leading knots, got %v", k)
	}
	u := 0.0
	right := (k[3] - u) / (k[3] - k[2]) * s.Basis(2, 0, u)
	if got := s.Basis(1, 1, u); got != right {
		t.Errorf("Basis(1, 1, 0): expected %g, got %g", right, got)
	}
}

// TestOutOfRangeParameter verifies that parameters outside the knots give the zero point
func TestOutOfRangeParameter(t *testing.T) {
	s, err := NewBSpline(zigzag(), 3, DefaultStepCount)
	if err != nil {
		t.Fatalf("NewBSpline: %v", err)
	}

	for _, u := range []float64{-0.5, -1e-9, 1.5, 2} {
		if got := s.Point(u); got != (vec.Vec3{}) {
			t.Errorf("Point(%g): expected zero point, got %v", u, got)
		}
	}
}

// TestDerivativeStub verifies that the derivative is the zero point
func TestDerivativeStub(t *testing.T) {
	s, err := NewBSpline(zigzag(), 3, DefaultStepCount)
	if err != nil {
		t.Fatalf("NewBSpline: %v", err)
	}
	for _, u := range []float64{0, 0.5, 1} {
		if got := s.Derivative(u); got != (vec.Vec3{}) {
			t.Errorf("Derivative(%g): expected zero point, got %v", u, got)
		}
	}
}

// TestTessellate verifies the sampled polyline
func TestTessellate(t *testing.T) {
	pts := zigzag()
	s, err := NewBSpline(pts, 3, 10)
	if err != nil {
		t.Fatalf("NewBSpline: %v", err)
	}

	line := s.Tessellate()
	if len(line) != 11 {
		t.Fatalf("Expected 11 points, got %d", len(line))
	}
	if !vec3Close(line[0], pts[0], 1e-9) || !vec3Close(line[10], pts[3], 1e-4) {
		t.Errorf("Tessellation does not start and end at the control polygon ends: %v ... %v",
			line[0], line[10])
	}
	if s.Degree() != 3 || s.StepCount() != 10 {
		t.Errorf("Expected degree 3 and step count 10, got %d and %d", s.Degree(), s.StepCount())
	}
}

// TestControlPointsAreCopied verifies that the spline owns its control points
func TestControlPointsAreCopied(t *testing.T) {
	pts := zigzag()
	s, err := NewBSpline(pts, 3, DefaultStepCount)
	if err != nil {
		t.Fatalf("NewBSpline: %v", err)
	}
	before := s.Point(0.4)

	pts[1] = vec.V3(100, 100, 100)
	if after := s.Point(0.4); after != before {
		t.Errorf("Mutating the input changed the spline: %v -> %v", before, after)
	}

	cp := s.ControlPoints()
	cp[0] = vec.V3(-1, -1, -1)
	if s.Point(0) != (vec.Vec3{}) {
		t.Errorf("Mutating ControlPoints() changed the spline")
	}
}
