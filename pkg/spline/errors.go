package spline

import "errors"

var (
	// ErrInvalidConfiguration reports construction arguments that can never
	// describe a valid spline (non-positive degree, too few control points,
	// mismatched knot count).
	ErrInvalidConfiguration = errors.New("invalid spline configuration")

	// ErrInvalidArgument reports input data that violates a documented
	// precondition, such as unsorted x-coordinates.
	ErrInvalidArgument = errors.New("invalid spline argument")

	// ErrOutOfDomain reports an evaluation parameter outside the curve's
	// defined range.
	ErrOutOfDomain = errors.New("parameter out of spline domain")
)
