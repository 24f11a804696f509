package overlay

import (
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"

	"github.com/davidreynolds/gotopo/geomgraph"
	"github.com/davidreynolds/gotopo/planar"
)

// PolygonBuilder forms polygons from the result area edges of a graph.
// Maximal rings are built from the linked result edges and split into
// minimal rings where they touch themselves. Holes are then assigned to
// the smallest shell containing them.
type PolygonBuilder struct {
	g      *geomgraph.PlanarGraph
	shells []*geomgraph.EdgeRing
}

// NewPolygonBuilder returns a builder for the result edges of g.
func NewPolygonBuilder(g *geomgraph.PlanarGraph) *PolygonBuilder {
	return &PolygonBuilder{g: g}
}

// Add builds the rings of every directed edge marked in the result.
func (pb *PolygonBuilder) Add() error {
	if err := pb.g.LinkResultDirectedEdges(); err != nil {
		return err
	}
	maxRings, err := pb.buildMaximalEdgeRings()
	if err != nil {
		return err
	}
	var freeHoles []*geomgraph.EdgeRing
	edgeRings, err := pb.buildMinimalEdgeRings(maxRings, &freeHoles)
	if err != nil {
		return err
	}
	for _, er := range edgeRings {
		if er.IsHole() {
			freeHoles = append(freeHoles, er)
		} else {
			pb.shells = append(pb.shells, er)
		}
	}
	return pb.placeFreeHoles(freeHoles)
}

func (pb *PolygonBuilder) buildMaximalEdgeRings() ([]*geomgraph.EdgeRing, error) {
	var out []*geomgraph.EdgeRing
	for _, de := range pb.g.DirEdges() {
		if !de.IsInResult() || !de.Label().IsArea() || de.EdgeRing() != geomgraph.NoRing {
			continue
		}
		er, err := geomgraph.NewMaximalEdgeRing(pb.g, de)
		if err != nil {
			return nil, err
		}
		er.SetInResult(pb.g)
		out = append(out, er)
	}
	return out, nil
}

// buildMinimalEdgeRings splits the maximal rings that pass through a node
// more than once. It returns the rings that need no splitting; holes of
// split rings without a shell of their own are appended to freeHoles.
func (pb *PolygonBuilder) buildMinimalEdgeRings(maxRings []*geomgraph.EdgeRing, freeHoles *[]*geomgraph.EdgeRing) ([]*geomgraph.EdgeRing, error) {
	var edgeRings []*geomgraph.EdgeRing
	for _, er := range maxRings {
		if er.MaxNodeDegree(pb.g) <= 2 {
			edgeRings = append(edgeRings, er)
			continue
		}
		er.LinkDirectedEdgesForMinimalEdgeRings(pb.g)
		minRings, err := er.BuildMinimalRings(pb.g)
		if err != nil {
			return nil, err
		}
		shell, err := findShell(minRings)
		if err != nil {
			return nil, err
		}
		if shell == nil {
			*freeHoles = append(*freeHoles, minRings...)
			continue
		}
		for _, r := range minRings {
			if r.IsHole() {
				r.SetShell(pb.g, shell.ID())
			}
		}
		pb.shells = append(pb.shells, shell)
	}
	return edgeRings, nil
}

// findShell returns the only shell among the minimal rings of a maximal
// ring, or nil if they are all holes.
func findShell(minRings []*geomgraph.EdgeRing) (*geomgraph.EdgeRing, error) {
	var shell *geomgraph.EdgeRing
	n := 0
	for _, r := range minRings {
		if !r.IsHole() {
			shell = r
			n++
		}
	}
	if n > 1 {
		return nil, errors.AssertionFailedf("found %d shells in minimal ring list", n)
	}
	return shell, nil
}

func (pb *PolygonBuilder) placeFreeHoles(freeHoles []*geomgraph.EdgeRing) error {
	for _, hole := range freeHoles {
		if hole.Shell() != geomgraph.NoRing {
			continue
		}
		shell := findEdgeRingContaining(hole, pb.shells)
		if shell == nil {
			return geomgraph.NewTopologyError(hole.Coord(0), "unable to assign hole to a shell")
		}
		hole.SetShell(pb.g, shell.ID())
	}
	return nil
}

// findEdgeRingContaining returns the smallest shell containing the ring,
// or nil. A shell with the same envelope as the ring cannot contain it.
func findEdgeRingContaining(ring *geomgraph.EdgeRing, shells []*geomgraph.EdgeRing) *geomgraph.EdgeRing {
	env := ring.Envelope()
	var minShell *geomgraph.EdgeRing
	for _, s := range shells {
		shellEnv := s.Envelope()
		if shellEnv == env {
			continue
		}
		if !shellEnv.Contains(env) {
			continue
		}
		p, ok := planar.PtNotInList(ring.Coords(), s.Coords())
		if !ok || !planar.IsInRing(p, s.Coords()) {
			continue
		}
		if minShell == nil || minShell.Envelope().Contains(shellEnv) {
			minShell = s
		}
	}
	return minShell
}

// Polygons returns the polygons built, with coordinates in layout. Missing
// elevations come from elev, which may be nil.
func (pb *PolygonBuilder) Polygons(layout geom.Layout, elev planar.ElevationModel) []*geom.Polygon {
	out := make([]*geom.Polygon, 0, len(pb.shells))
	for _, s := range pb.shells {
		out = append(out, s.ToPolygon(pb.g, layout, elev))
	}
	return out
}

// ContainsPoint reports whether p is inside one of the polygons built.
func (pb *PolygonBuilder) ContainsPoint(p planar.Coord) bool {
	for _, s := range pb.shells {
		if s.ContainsPoint(pb.g, p) {
			return true
		}
	}
	return false
}
