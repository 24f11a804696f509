package planar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type segmentCase struct {
	name           string
	p1, p2, q1, q2 Coord
	kind           IntersectionKind
	proper         bool
	pts            []Coord
}

var segmentCases = []segmentCase{
	{
		name: "proper crossing",
		p1:   NewCoord(0, 0), p2: NewCoord(10, 10),
		q1: NewCoord(0, 10), q2: NewCoord(10, 0),
		kind: PointIntersection, proper: true,
		pts: []Coord{NewCoord(5, 5)},
	},
	{
		name: "disjoint envelopes",
		p1:   NewCoord(0, 0), p2: NewCoord(1, 1),
		q1: NewCoord(5, 5), q2: NewCoord(6, 7),
		kind: NoIntersection,
	},
	{
		name: "same side",
		p1:   NewCoord(0, 0), p2: NewCoord(10, 0),
		q1: NewCoord(2, 1), q2: NewCoord(8, 5),
		kind: NoIntersection,
	},
	{
		name: "shared endpoint",
		p1:   NewCoord(0, 0), p2: NewCoord(10, 0),
		q1: NewCoord(10, 0), q2: NewCoord(10, 10),
		kind: PointIntersection,
		pts:  []Coord{NewCoord(10, 0)},
	},
	{
		name: "endpoint in interior",
		p1:   NewCoord(0, 0), p2: NewCoord(10, 0),
		q1: NewCoord(5, 0), q2: NewCoord(5, 10),
		kind: PointIntersection,
		pts:  []Coord{NewCoord(5, 0)},
	},
	{
		name: "collinear overlap",
		p1:   NewCoord(0, 0), p2: NewCoord(10, 0),
		q1: NewCoord(5, 0), q2: NewCoord(15, 0),
		kind: CollinearIntersection,
		pts:  []Coord{NewCoord(5, 0), NewCoord(10, 0)},
	},
	{
		name: "collinear containment",
		p1:   NewCoord(0, 0), p2: NewCoord(10, 10),
		q1: NewCoord(2, 2), q2: NewCoord(3, 3),
		kind: CollinearIntersection,
		pts:  []Coord{NewCoord(2, 2), NewCoord(3, 3)},
	},
	{
		name: "collinear touching at endpoint",
		p1:   NewCoord(0, 0), p2: NewCoord(10, 0),
		q1: NewCoord(10, 0), q2: NewCoord(20, 0),
		kind: PointIntersection,
		pts:  []Coord{NewCoord(10, 0)},
	},
	{
		name: "collinear disjoint",
		p1:   NewCoord(0, 0), p2: NewCoord(1, 1),
		q1: NewCoord(2, 2), q2: NewCoord(3, 3),
		kind: NoIntersection,
	},
}

func sameCoords2D(t *testing.T, want, got []Coord) {
	t.Helper()
	require.Len(t, got, len(want))
	for _, w := range want {
		found := false
		for _, g := range got {
			if g.Equals2D(w) {
				found = true
			}
		}
		require.Truef(t, found, "missing %v in %v", w, got)
	}
}

func intersectionPoints(li *LineIntersector) []Coord {
	var pts []Coord
	for i := 0; i < li.IntersectionNum(); i++ {
		pts = append(pts, li.Intersection(i))
	}
	return pts
}

func TestLineIntersectorCompute(t *testing.T) {
	for _, test := range segmentCases {
		t.Run(test.name, func(t *testing.T) {
			li := NewLineIntersector(nil, FloatingPrecision())
			li.Compute(test.p1, test.p2, test.q1, test.q2)
			require.Equal(t, test.kind, li.Kind())
			require.Equal(t, test.proper, li.IsProper())
			sameCoords2D(t, test.pts, intersectionPoints(li))
		})
	}
}

func TestLineIntersectorSwapSymmetry(t *testing.T) {
	for _, test := range segmentCases {
		t.Run(test.name, func(t *testing.T) {
			var a, b LineIntersector
			a.Compute(test.p1, test.p2, test.q1, test.q2)
			b.Compute(test.q1, test.q2, test.p1, test.p2)
			require.Equal(t, a.Kind(), b.Kind())
			require.Equal(t, a.IsProper(), b.IsProper())
			sameCoords2D(t, intersectionPoints(&a), intersectionPoints(&b))
		})
	}
}

func TestLineIntersectorQueries(t *testing.T) {
	var li LineIntersector
	li.Compute(NewCoord(0, 0), NewCoord(10, 0), NewCoord(5, 0), NewCoord(5, 10))
	require.True(t, li.HasIntersection())
	require.False(t, li.IsProper())
	require.True(t, li.IsIntersection(NewCoord(5, 0)))
	require.False(t, li.IsIntersection(NewCoord(5, 1)))
	// (5 0) is interior to the first segment but an endpoint of the second.
	require.True(t, li.IsInteriorIntersectionOf(0))
	require.False(t, li.IsInteriorIntersectionOf(1))
	require.True(t, li.IsInteriorIntersection())
	require.Equal(t, 5.0, li.EdgeDistance(0, 0))
	require.Equal(t, 0.0, li.EdgeDistance(1, 0))

	li.Compute(NewCoord(0, 0), NewCoord(10, 0), NewCoord(8, 0), NewCoord(2, 0))
	require.True(t, li.IsCollinear())
	require.Equal(t, NewCoord(2, 0).Point(), li.IntersectionAlongSegment(0, 0).Point())
	require.Equal(t, NewCoord(8, 0).Point(), li.IntersectionAlongSegment(0, 1).Point())
}

func TestComputePoint(t *testing.T) {
	tests := []struct {
		p, p1, p2 Coord
		want      bool
		proper    bool
	}{
		{NewCoord(5, 5), NewCoord(0, 0), NewCoord(10, 10), true, true},
		{NewCoord(0, 0), NewCoord(0, 0), NewCoord(10, 10), true, false},
		{NewCoord(5, 6), NewCoord(0, 0), NewCoord(10, 10), false, false},
		{NewCoord(11, 11), NewCoord(0, 0), NewCoord(10, 10), false, false},
	}
	var li LineIntersector
	for _, test := range tests {
		li.ComputePoint(test.p, test.p1, test.p2)
		if got := li.HasIntersection(); got != test.want {
			t.Errorf("ComputePoint(%v, %v, %v) = %v, want %v", test.p, test.p1, test.p2, got, test.want)
		}
		if got := li.IsProper(); got != test.proper {
			t.Errorf("ComputePoint(%v, %v, %v) proper = %v, want %v", test.p, test.p1, test.p2, got, test.proper)
		}
	}
}

func TestEdgeDistance(t *testing.T) {
	tests := []struct {
		p, p0, p1 Coord
		want      float64
	}{
		{NewCoord(0, 0), NewCoord(0, 0), NewCoord(10, 2), 0},
		{NewCoord(10, 2), NewCoord(0, 0), NewCoord(10, 2), 10},
		{NewCoord(5, 1), NewCoord(0, 0), NewCoord(10, 2), 5},
		{NewCoord(1, 4), NewCoord(0, 0), NewCoord(2, 8), 4},
		// A point off the dominant axis keeps a non-zero distance.
		{NewCoord(0, 1), NewCoord(0, 0), NewCoord(10, 0), 1},
	}
	for _, test := range tests {
		if got := EdgeDistance(test.p, test.p0, test.p1); got != test.want {
			t.Errorf("EdgeDistance(%v, %v, %v) = %v, want %v", test.p, test.p0, test.p1, got, test.want)
		}
	}
}

func TestIntersectionElevation(t *testing.T) {
	var li LineIntersector

	// Proper: average of the interpolations along both segments.
	li.Compute(NewCoordZ(0, 0, 0), NewCoordZ(10, 10, 10), NewCoordZ(0, 10, 20), NewCoordZ(10, 0, 20))
	require.InDelta(t, 12.5, li.Intersection(0).Z, 1e-9)

	// Endpoint touch: z of the coincident endpoint.
	li.Compute(NewCoordZ(0, 0, 1), NewCoordZ(10, 0, 2), NewCoordZ(10, 0, 3), NewCoordZ(10, 10, 4))
	require.Equal(t, 2.0, li.Intersection(0).Z)

	// Endpoint without z inside the other segment: interpolated.
	li.Compute(NewCoordZ(0, 0, 0), NewCoordZ(10, 0, 10), NewCoord(4, 0), NewCoord(4, 5))
	require.InDelta(t, 4, li.Intersection(0).Z, 1e-9)

	// No z anywhere.
	li.Compute(NewCoord(0, 0), NewCoord(10, 10), NewCoord(0, 10), NewCoord(10, 0))
	require.True(t, math.IsNaN(li.Intersection(0).Z))

	// The elevation model fills what the inputs cannot.
	li.Elevation = ConstantElevation(7)
	li.Compute(NewCoord(0, 0), NewCoord(10, 10), NewCoord(0, 10), NewCoord(10, 0))
	require.Equal(t, 7.0, li.Intersection(0).Z)
}

func TestIntersectionPrecision(t *testing.T) {
	li := NewLineIntersector(nil, FixedPrecision(1))
	li.Compute(NewCoord(0, 0), NewCoord(10, 3), NewCoord(0, 3), NewCoord(10, 0))
	require.True(t, li.IsProper())
	require.Equal(t, NewCoord(5, 2).Point(), li.Intersection(0).Point())
}

func TestIntersectionOfLines(t *testing.T) {
	pt, ok := Intersection(NewCoord(0, 0), NewCoord(10, 10), NewCoord(0, 10), NewCoord(10, 0))
	require.True(t, ok)
	require.Equal(t, NewCoord(5, 5).Point(), pt.Point())

	// Lines, not segments.
	pt, ok = Intersection(NewCoord(0, 0), NewCoord(1, 1), NewCoord(4, 0), NewCoord(3, 1))
	require.True(t, ok)
	require.Equal(t, NewCoord(2, 2).Point(), pt.Point())

	_, ok = Intersection(NewCoord(0, 0), NewCoord(10, 0), NewCoord(0, 1), NewCoord(10, 1))
	require.False(t, ok)
	_, ok = Intersection(NewCoord(0, 0), NewCoord(0, 0), NewCoord(0, 1), NewCoord(10, 1))
	require.False(t, ok)
}
