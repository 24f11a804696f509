package geomgraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidreynolds/gotopo/internal/geomtest"
	"github.com/davidreynolds/gotopo/planar"
)

func lineEdge(xy ...float64) *Edge {
	return NewEdge(geomtest.Coords(xy...), NewArgLineLabel(0, planar.Interior))
}

func TestEdgeIntersectionOrder(t *testing.T) {
	e := lineEdge(0, 0, 10, 0, 10, 10)
	l := e.Intersections()
	l.Add(planar.NewCoord(10, 5), 1, 5)
	l.Add(planar.NewCoord(5, 0), 0, 5)
	l.Add(planar.NewCoord(2, 0), 0, 2)
	dup := l.Add(planar.NewCoord(5, 0), 0, 5)
	require.Equal(t, 3, l.Len())
	require.Equal(t, 0, dup.SegmentIndex)

	var got []planar.Coord
	for _, ei := range l.Items() {
		got = append(got, ei.Coord)
	}
	if diff := geomtest.CoordsDiff(geomtest.Coords(2, 0, 5, 0, 10, 5), got); diff != "" {
		t.Errorf("intersections out of order (-want +got):\n%s", diff)
	}
	require.True(t, l.IsIntersection(planar.NewCoord(10, 5)))
	require.False(t, l.IsIntersection(planar.NewCoord(10, 0)))
}

func TestAddIntersectionUsesLaterSegmentAtVertex(t *testing.T) {
	e := lineEdge(0, 0, 10, 0, 10, 10)
	li := planar.NewLineIntersector(nil, planar.FloatingPrecision())
	// Crosses the edge at its middle vertex.
	li.Compute(e.Coord(0), e.Coord(1), planar.NewCoord(10, -5), planar.NewCoord(10, -1))
	require.False(t, li.HasIntersection())
	li.Compute(e.Coord(0), e.Coord(1), planar.NewCoord(5, 5), planar.NewCoord(15, -5))
	require.True(t, li.HasIntersection())
	e.AddIntersections(li, 0, 0)

	items := e.Intersections().Items()
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].SegmentIndex)
	require.Equal(t, 0.0, items[0].Dist)
}

func TestSplitEdgesReconstructEdge(t *testing.T) {
	tests := []struct {
		name   string
		edge   []float64
		splits [][3]float64 // x, y, segment index
		want   [][]float64
	}{
		{
			name: "no intersections",
			edge: []float64{0, 0, 5, 5, 10, 0},
			want: [][]float64{{0, 0, 5, 5, 10, 0}},
		},
		{
			name:   "interior points",
			edge:   []float64{0, 0, 10, 0, 10, 10},
			splits: [][3]float64{{4, 0, 0}, {10, 3, 1}},
			want:   [][]float64{{0, 0, 4, 0}, {4, 0, 10, 0, 10, 3}, {10, 3, 10, 10}},
		},
		{
			name:   "at a vertex",
			edge:   []float64{0, 0, 10, 0, 10, 10, 0, 10},
			splits: [][3]float64{{10, 10, 2}},
			want:   [][]float64{{0, 0, 10, 0, 10, 10}, {10, 10, 0, 10}},
		},
		{
			name:   "closed ring",
			edge:   []float64{0, 0, 10, 0, 10, 10, 0, 10, 0, 0},
			splits: [][3]float64{{10, 0, 1}, {10, 10, 2}},
			want:   [][]float64{{0, 0, 10, 0}, {10, 0, 10, 10}, {10, 10, 0, 10, 0, 0}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e := lineEdge(test.edge...)
			for _, s := range test.splits {
				seg := int(s[2])
				p := planar.NewCoord(s[0], s[1])
				e.Intersections().Add(p, seg, planar.EdgeDistance(p, e.Coord(seg), e.Coord(seg+1)))
			}
			split := e.Intersections().AddSplitEdges(e, nil)
			require.Len(t, split, len(test.want))

			var joined []planar.Coord
			for i, se := range split {
				if diff := geomtest.CoordsDiff(geomtest.Coords(test.want[i]...), se.Coords()); diff != "" {
					t.Errorf("split edge %d (-want +got):\n%s", i, diff)
				}
				require.Equal(t, *e.Label(), *se.Label())
				if i > 0 {
					require.True(t, joined[len(joined)-1].Equals2D(se.Coord(0)))
					joined = append(joined, se.Coords()[1:]...)
				} else {
					joined = append(joined, se.Coords()...)
				}
			}
			// Dropping the added split points gives back the edge.
			var vertices []planar.Coord
			for _, p := range joined {
				for _, q := range e.Coords() {
					if p.Equals2D(q) {
						vertices = append(vertices, p)
						break
					}
				}
			}
			if diff := geomtest.CoordsDiff(e.Coords(), vertices); diff != "" {
				t.Errorf("reassembled edge (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEdgeEquals(t *testing.T) {
	e := lineEdge(0, 0, 1, 1, 2, 0)
	require.True(t, e.Equals(lineEdge(0, 0, 1, 1, 2, 0)))
	require.True(t, e.Equals(lineEdge(2, 0, 1, 1, 0, 0)))
	require.False(t, e.Equals(lineEdge(0, 0, 1, 2, 2, 0)))
	require.False(t, e.Equals(lineEdge(0, 0, 2, 0)))
	require.False(t, e.IsPointwiseEqual(lineEdge(2, 0, 1, 1, 0, 0)))

	l := NewEdgeList()
	l.Add(e)
	l.Add(lineEdge(5, 5, 6, 6))
	found, ok := l.FindEqualEdge(lineEdge(2, 0, 1, 1, 0, 0))
	require.True(t, ok)
	require.Same(t, e, found)
	_, ok = l.FindEqualEdge(lineEdge(0, 0, 1, 1))
	require.False(t, ok)
	require.Equal(t, 1, l.FindEdgeIndex(l.Get(1)))
}

func TestCollapsedEdge(t *testing.T) {
	e := NewEdge(geomtest.Coords(0, 0, 1, 1, 0, 0), NewArgAreaLabel(0, planar.Boundary, planar.Interior, planar.Exterior))
	require.True(t, e.IsCollapsed())
	c := e.CollapsedEdge()
	require.Equal(t, 2, c.NumPoints())
	require.True(t, c.Label().IsLine(0))
	require.Equal(t, planar.Boundary, c.Label().On(0))
	require.False(t, lineEdge(0, 0, 1, 1, 0, 0).IsCollapsed())
}
