package models

import (
	"fmt"
	"strings"
)

// CurveKind selects the spline family a curve is built with
type CurveKind int

const (
	BSpline CurveKind = iota
	NaturalCubic
	CatmullRom
	ArcLength
)

var curveKindNames = map[CurveKind]string{
	BSpline:      "bspline",
	NaturalCubic: "natural-cubic",
	CatmullRom:   "catmull-rom",
	ArcLength:    "arc-length",
}

func (k CurveKind) String() string {
	if name, ok := curveKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CurveKind(%d)", int(k))
}

// ParseCurveKind maps a configuration name to a CurveKind.
// Matching is case-insensitive and accepts underscores for dashes.
func ParseCurveKind(s string) (CurveKind, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for k, n := range curveKindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown curve kind %q", s)
}

// Sample is one evaluated curve position
type Sample struct {
	// T is the curve parameter the sample was taken at
	T float64

	// Value holds the evaluated coordinates; scalar curves have one entry
	Value []float64
}
