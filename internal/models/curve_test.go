package models

import "testing"

// TestParseCurveKind verifies name parsing round trips through String
func TestParseCurveKind(t *testing.T) {
	for _, k := range []CurveKind{BSpline, NaturalCubic, CatmullRom, ArcLength} {
		got, err := ParseCurveKind(k.String())
		if err != nil {
			t.Fatalf("ParseCurveKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Errorf("Expected %v, got %v", k, got)
		}
	}

	if got, err := ParseCurveKind(" Catmull_Rom "); err != nil || got != CatmullRom {
		t.Errorf("Expected CatmullRom, got %v (%v)", got, err)
	}
	if _, err := ParseCurveKind("nurbs"); err == nil {
		t.Error("Expected error for unknown kind")
	}
	if s := CurveKind(42).String(); s != "CurveKind(42)" {
		t.Errorf("Unexpected name for unknown kind: %s", s)
	}
}
