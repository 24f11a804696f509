package geomgraph

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/davidreynolds/gotopo/internal/geomtest"
	"github.com/davidreynolds/gotopo/planar"
)

func newGraph(t *testing.T, argIndex int, wkt string, opts Options) *GeometryGraph {
	t.Helper()
	g, err := NewGeometryGraph(argIndex, geomtest.WKT(t, wkt), opts)
	require.NoError(t, err)
	return g
}

func nodeLocation(t *testing.T, g *GeometryGraph, x, y float64) planar.Location {
	t.Helper()
	n, ok := g.Find(planar.NewCoord(x, y))
	require.True(t, ok, "no node at (%g, %g)", x, y)
	return n.Label().On(g.ArgIndex())
}

func TestInvalidArgIndex(t *testing.T) {
	_, err := NewGeometryGraph(2, geomtest.WKT(t, "POINT (1 1)"), DefaultOptions())
	require.True(t, errors.Is(err, ErrInvalidArgIndex), "got %v", err)
}

func TestPolygonRingLabels(t *testing.T) {
	g := newGraph(t, 0, "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 2 8, 8 8, 8 2, 2 2))", DefaultOptions())
	require.Len(t, g.Edges(), 2)

	shell := g.Edges()[0].Label()
	require.Equal(t, planar.Boundary, shell.On(0))
	require.Equal(t, planar.Interior, shell.Location(0, planar.Left))
	require.Equal(t, planar.Exterior, shell.Location(0, planar.Right))
	require.True(t, shell.IsNull(1))

	hole := g.Edges()[1].Label()
	require.Equal(t, planar.Interior, hole.Location(0, planar.Left))
	require.Equal(t, planar.Exterior, hole.Location(0, planar.Right))

	require.Equal(t, planar.Boundary, nodeLocation(t, g, 0, 0))
	require.Equal(t, planar.Boundary, nodeLocation(t, g, 2, 2))
	require.Equal(t, planar.Interior, g.Locate(planar.NewCoord(1, 1)))
	require.Equal(t, planar.Exterior, g.Locate(planar.NewCoord(5, 5)))
}

func TestTooFewPoints(t *testing.T) {
	for _, wkt := range []string{
		"LINESTRING (1 1, 1 1)",
		"POLYGON ((1 1, 2 2, 2 2, 1 1))",
	} {
		g := newGraph(t, 0, wkt, DefaultOptions())
		require.True(t, g.HasTooFewPoints(), wkt)
		require.True(t, g.InvalidPoint().Equals2D(planar.NewCoord(1, 1)), wkt)
		require.Empty(t, g.Edges(), wkt)
	}
}

func TestPointNodes(t *testing.T) {
	g := newGraph(t, 1, "MULTIPOINT ((1 2), (3 4))", DefaultOptions())
	require.Empty(t, g.Edges())
	require.Equal(t, planar.Interior, nodeLocation(t, g, 1, 2))
	require.Equal(t, planar.Interior, nodeLocation(t, g, 3, 4))
	require.True(t, g.Nodes().Get(0).Label().IsNull(0))
}

func TestLineEndpointsUseBoundaryRule(t *testing.T) {
	const wkt = "MULTILINESTRING ((0 0, 1 0), (1 0, 2 0), (1 0, 1 1))"
	tests := []struct {
		rule       planar.BoundaryNodeRule
		atOrigin   planar.Location
		atJunction planar.Location
	}{
		{planar.Mod2, planar.Boundary, planar.Boundary},
		{planar.Endpoint, planar.Boundary, planar.Boundary},
		{planar.MultivalentEndpoint, planar.Interior, planar.Boundary},
		{planar.MonovalentEndpoint, planar.Boundary, planar.Interior},
	}
	for _, test := range tests {
		t.Run(test.rule.String(), func(t *testing.T) {
			opts := DefaultOptions()
			opts.SetBoundaryNodeRule(test.rule)
			g := newGraph(t, 0, wkt, opts)
			require.Equal(t, test.atOrigin, nodeLocation(t, g, 0, 0))
			require.Equal(t, test.atJunction, nodeLocation(t, g, 1, 0))
			require.Equal(t, 3, g.Nodes().Get(1).BoundaryCount(0))
		})
	}
}

func TestFigureEight(t *testing.T) {
	const wkt = "LINESTRING (0 0, 2 2, 2 0, 0 2, 0 0)"
	g := newGraph(t, 0, wkt, DefaultOptions())
	li := g.Options().NewLineIntersector()
	si := g.ComputeSelfNodes(li, g.Options().ComputeRingSelfNodes())
	require.True(t, si.HasProperIntersection())
	require.True(t, si.ProperIntersectionPoint().Equals2D(planar.NewCoord(1, 1)))

	// Two endpoints meet at the start, so under Mod-2 it is not boundary.
	require.Equal(t, planar.Interior, nodeLocation(t, g, 0, 0))
	require.Equal(t, planar.Interior, nodeLocation(t, g, 1, 1))
	require.Equal(t, 2, g.Nodes().Len())
	require.Empty(t, g.BoundaryNodes())

	var split []*Edge
	g.ComputeSplitEdges(&split)
	require.Len(t, split, 3)
	want := [][]float64{
		{0, 0, 1, 1},
		{1, 1, 2, 2, 2, 0, 1, 1},
		{1, 1, 0, 2, 0, 0},
	}
	for i, e := range split {
		if diff := geomtest.CoordsDiff(geomtest.Coords(want[i]...), e.Coords()); diff != "" {
			t.Errorf("split edge %d (-want +got):\n%s", i, diff)
		}
	}

	ep := newGraph(t, 0, wkt, EndpointOptions())
	ep.ComputeSelfNodes(li, false)
	require.Equal(t, planar.Boundary, nodeLocation(t, ep, 0, 0))
	require.Len(t, ep.BoundaryPoints(), 1)
}

// nodeAbuttingSquares nodes two squares sharing the edge x = 10 and returns
// their graphs and the unique split edges, with the labels of equal edges
// merged.
func nodeAbuttingSquares(t *testing.T) ([2]*GeometryGraph, *EdgeList) {
	opts := DefaultOptions()
	a := newGraph(t, 0, "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))", opts)
	b := newGraph(t, 1, "POLYGON ((10 0, 20 0, 20 10, 10 10, 10 0))", opts)
	li := opts.NewLineIntersector()
	a.ComputeSelfNodes(li, false)
	b.ComputeSelfNodes(li, false)
	si := a.ComputeEdgeIntersections(b, li, false)
	require.True(t, si.HasIntersection())
	require.False(t, si.HasProperIntersection())

	var split []*Edge
	a.ComputeSplitEdges(&split)
	b.ComputeSplitEdges(&split)
	require.Len(t, split, 5)

	edges := NewEdgeList()
	for _, e := range split {
		existing, ok := edges.FindEqualEdge(e)
		if !ok {
			edges.Add(e)
			continue
		}
		lbl := *e.Label()
		if !existing.IsPointwiseEqual(e) {
			lbl.Flip()
		}
		existing.Label().Merge(lbl)
	}
	require.Equal(t, 4, edges.Len())
	return [2]*GeometryGraph{a, b}, edges
}

func TestAbuttingSquaresShareBoundaryEdge(t *testing.T) {
	graphs, edges := nodeAbuttingSquares(t)
	shared, ok := edges.FindEqualEdge(NewEdge(geomtest.Coords(10, 0, 10, 10), Label{}))
	require.True(t, ok)
	want := NewArgAreaLabel(0, planar.Boundary, planar.Interior, planar.Exterior)
	want.elt[1] = NewAreaLocation(planar.Boundary, planar.Exterior, planar.Interior)
	if shared.Coord(0).Equals2D(planar.NewCoord(10, 10)) {
		want.Flip()
	}
	require.Equal(t, want, *shared.Label())

	g := NewPlanarGraph(NewDirectedEdgeNode)
	g.AddEdges(edges.Edges())
	require.Equal(t, 8, len(g.DirEdges()))
	for _, n := range g.Nodes().Nodes() {
		require.NoError(t, n.Star().ComputeLabelling(graphs))
	}
	for _, de := range g.DirEdges() {
		for i := 0; i < 2; i++ {
			require.False(t, de.Label().IsAnyNull(i), "%v", de)
		}
	}

	// Each square on its own is consistently labeled.
	a := graphs[0]
	var own []*Edge
	a.ComputeSplitEdges(&own)
	ag := NewPlanarGraph(NewDirectedEdgeNode)
	ag.AddEdges(own)
	for _, n := range ag.Nodes().Nodes() {
		require.True(t, n.Star().IsAreaLabelsConsistent(a), "%v", n)
	}
}

func TestSideLocationConflict(t *testing.T) {
	lbl := NewArgAreaLabel(0, planar.Boundary, planar.Interior, planar.Exterior)
	g := NewPlanarGraph(NewDirectedEdgeNode)
	g.AddEdges([]*Edge{
		NewEdge(geomtest.Coords(0, 0, 1, 0), lbl),
		NewEdge(geomtest.Coords(0, 0, 0, 1), lbl),
	})
	empty0, err := NewGeometryGraph(0, nil, DefaultOptions())
	require.NoError(t, err)
	empty1, err := NewGeometryGraph(1, nil, DefaultOptions())
	require.NoError(t, err)

	n, ok := g.Find(planar.NewCoord(0, 0))
	require.True(t, ok)
	err = n.Star().ComputeLabelling([2]*GeometryGraph{empty0, empty1})
	require.Error(t, err)
	require.True(t, IsTopologyError(err))
	var te *TopologyError
	require.True(t, errors.As(err, &te))
	require.True(t, te.Coord.Equals2D(planar.NewCoord(0, 0)))
}
