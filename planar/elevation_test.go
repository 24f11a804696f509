package planar

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func TestGridElevationModel(t *testing.T) {
	extent := r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 10})
	m := NewGridElevationModel(extent, 2, 2)
	if !math.IsNaN(m.GetZ(NewCoord(1, 1))) {
		t.Errorf("empty model GetZ = %v, want NaN", m.GetZ(NewCoord(1, 1)))
	}

	m.Add(NewCoordZ(1, 1, 10), NewCoordZ(2, 2, 20), NewCoordZ(9, 9, 100), NewCoord(3, 3), NewCoordZ(20, 20, 1000))
	if !m.HasZ() {
		t.Fatalf("HasZ = false after adding samples")
	}
	tests := []struct {
		p    Coord
		want float64
	}{
		{NewCoord(4, 4), 15},
		{NewCoord(6, 6), 100},
		{NewCoord(10, 10), 100},
		// No samples in this cell: overall average.
		{NewCoord(9, 1), 130.0 / 3},
		// Outside the extent: overall average.
		{NewCoord(50, 50), 130.0 / 3},
	}
	for _, test := range tests {
		if got := m.GetZ(test.p); math.Abs(got-test.want) > 1e-12 {
			t.Errorf("GetZ(%v) = %v, want %v", test.p, got, test.want)
		}
	}
}

func TestPrecisionModel(t *testing.T) {
	tests := []struct {
		pm   PrecisionModel
		in   Coord
		want Coord
	}{
		{FloatingPrecision(), NewCoordZ(1.23456, 2.5, 3.3), NewCoordZ(1.23456, 2.5, 3.3)},
		{FixedPrecision(1), NewCoordZ(1.4, 2.5, 3.3), NewCoordZ(1, 3, 3.3)},
		{FixedPrecision(100), NewCoordZ(1.23456, -2.3449, 7), NewCoordZ(1.23, -2.34, 7)},
		// Ties round up, toward positive infinity.
		{FixedPrecision(4), NewCoordZ(-2.375, 2.375, 7), NewCoordZ(-2.25, 2.5, 7)},
	}
	for _, test := range tests {
		if got := test.pm.MakePrecise(test.in); !got.Equals3D(test.want) {
			t.Errorf("MakePrecise(%v) with scale %v = %v, want %v", test.in, test.pm.Scale(), got, test.want)
		}
	}
}
