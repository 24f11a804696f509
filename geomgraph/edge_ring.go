package geomgraph

import (
	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"

	"github.com/davidreynolds/gotopo/planar"
)

// RingID identifies an edge ring in a PlanarGraph.
type RingID int

// NoRing is the id of a missing ring.
const NoRing RingID = -1

// EdgeRing is a ring of directed edges. A maximal ring follows the Next
// links of its edges and may touch itself at nodes; a minimal ring follows
// NextMin links and does not.
type EdgeRing struct {
	id            RingID
	minimal       bool
	start         DirEdgeID
	maxNodeDegree int
	edges         []DirEdgeID
	pts           []planar.Coord
	env           r2.Rect
	label         Label
	isHole        bool
	shell         RingID
	holes         []RingID
}

// NewMaximalEdgeRing builds the ring of g starting at start and following
// Next links.
func NewMaximalEdgeRing(g *PlanarGraph, start *DirectedEdge) (*EdgeRing, error) {
	return newEdgeRing(g, start, false)
}

// NewMinimalEdgeRing builds the ring of g starting at start and following
// NextMin links.
func NewMinimalEdgeRing(g *PlanarGraph, start *DirectedEdge) (*EdgeRing, error) {
	return newEdgeRing(g, start, true)
}

func newEdgeRing(g *PlanarGraph, start *DirectedEdge, minimal bool) (*EdgeRing, error) {
	r := &EdgeRing{
		minimal:       minimal,
		maxNodeDegree: -1,
		label:         NewLineLabel(planar.None),
		shell:         NoRing,
	}
	g.addRing(r)
	if err := r.computePoints(g, start); err != nil {
		return nil, err
	}
	if len(r.pts) < 4 {
		return nil, NewTopologyError(r.pts[0], "too few points in ring")
	}
	r.env = planar.Envelope(r.pts)
	r.isHole = planar.IsCCW(r.pts)
	return r, nil
}

func (r *EdgeRing) next(g *PlanarGraph, de *DirectedEdge) *DirectedEdge {
	if r.minimal {
		return g.DirEdge(de.nextMin)
	}
	return g.DirEdge(de.next)
}

func (r *EdgeRing) ringOf(de *DirectedEdge) RingID {
	if r.minimal {
		return de.minEdgeRing
	}
	return de.edgeRing
}

func (r *EdgeRing) setEdgeRing(de *DirectedEdge) {
	if r.minimal {
		de.minEdgeRing = r.id
	} else {
		de.edgeRing = r.id
	}
}

func (r *EdgeRing) computePoints(g *PlanarGraph, start *DirectedEdge) error {
	r.start = start.id
	de := start
	first := true
	for {
		if de == nil {
			return newTopologyErrorNoCoord("found null DirectedEdge")
		}
		if r.ringOf(de) == r.id {
			return NewTopologyError(de.Coord(), "directed edge visited twice during ring-building")
		}
		r.edges = append(r.edges, de.id)
		if !de.label.IsArea() {
			panic(errors.AssertionFailedf("ring edge at %v has no area label", de.Coord()))
		}
		r.mergeLabel(de.label)
		r.addPoints(de.edge, de.forward, first)
		first = false
		r.setEdgeRing(de)
		de = r.next(g, de)
		if de == start {
			return nil
		}
	}
}

// mergeLabel takes the location of each geometry from the right side of an
// edge, if not already known.
func (r *EdgeRing) mergeLabel(lbl Label) {
	for i := 0; i < 2; i++ {
		loc := lbl.Location(i, planar.Right)
		if loc == planar.None {
			continue
		}
		if r.label.On(i) == planar.None {
			r.label.SetOn(i, loc)
		}
	}
}

func (r *EdgeRing) addPoints(e *Edge, forward, first bool) {
	pts := e.pts
	if forward {
		start := 1
		if first {
			start = 0
		}
		r.pts = append(r.pts, pts[start:]...)
		return
	}
	start := len(pts) - 2
	if first {
		start = len(pts) - 1
	}
	for i := start; i >= 0; i-- {
		r.pts = append(r.pts, pts[i])
	}
}

func (r *EdgeRing) ID() RingID               { return r.id }
func (r *EdgeRing) IsMinimal() bool          { return r.minimal }
func (r *EdgeRing) IsHole() bool             { return r.isHole }
func (r *EdgeRing) IsShell() bool            { return r.shell == NoRing }
func (r *EdgeRing) Shell() RingID            { return r.shell }
func (r *EdgeRing) Holes() []RingID          { return r.holes }
func (r *EdgeRing) Coords() []planar.Coord   { return r.pts }
func (r *EdgeRing) Coord(i int) planar.Coord { return r.pts[i] }
func (r *EdgeRing) Label() Label             { return r.label }
func (r *EdgeRing) Edges() []DirEdgeID       { return r.edges }
func (r *EdgeRing) Start() DirEdgeID         { return r.start }
func (r *EdgeRing) Envelope() r2.Rect        { return r.env }

// IsIsolated reports whether the ring is labeled by only one geometry.
func (r *EdgeRing) IsIsolated() bool { return r.label.GeometryCount() == 1 }

// SetShell makes r a hole of shell.
func (r *EdgeRing) SetShell(g *PlanarGraph, shell RingID) {
	r.shell = shell
	if shell != NoRing {
		s := g.Ring(shell)
		s.holes = append(s.holes, r.id)
	}
}

// MaxNodeDegree returns twice the largest number of ring edges leaving any
// node of the ring.
func (r *EdgeRing) MaxNodeDegree(g *PlanarGraph) int {
	if r.maxNodeDegree >= 0 {
		return r.maxNodeDegree
	}
	r.maxNodeDegree = 0
	for _, id := range r.edges {
		de := g.DirEdge(id)
		degree := g.NodeOf(de).DirectedEdgeStar().OutgoingDegreeInRing(r.id)
		r.maxNodeDegree = max(r.maxNodeDegree, degree)
	}
	r.maxNodeDegree *= 2
	return r.maxNodeDegree
}

// SetInResult marks the edges of the ring as in the result.
func (r *EdgeRing) SetInResult(g *PlanarGraph) {
	for _, id := range r.edges {
		g.DirEdge(id).edge.SetInResult(true)
	}
}

// LinkDirectedEdgesForMinimalEdgeRings links the edges of a maximal ring
// into minimal rings at each of its nodes.
func (r *EdgeRing) LinkDirectedEdgesForMinimalEdgeRings(g *PlanarGraph) {
	for _, id := range r.edges {
		g.NodeOf(g.DirEdge(id)).DirectedEdgeStar().LinkMinimalDirectedEdges(g, r.id)
	}
}

// BuildMinimalRings splits a maximal ring into its minimal rings. The
// NextMin links must have been set.
func (r *EdgeRing) BuildMinimalRings(g *PlanarGraph) ([]*EdgeRing, error) {
	var out []*EdgeRing
	for _, id := range r.edges {
		de := g.DirEdge(id)
		if de.minEdgeRing != NoRing {
			continue
		}
		minRing, err := NewMinimalEdgeRing(g, de)
		if err != nil {
			return nil, err
		}
		out = append(out, minRing)
	}
	return out, nil
}

// ContainsPoint reports whether p is inside the ring and not inside any of
// its holes.
func (r *EdgeRing) ContainsPoint(g *PlanarGraph, p planar.Coord) bool {
	if !r.env.ContainsPoint(p.Point()) {
		return false
	}
	if !planar.IsInRing(p, r.pts) {
		return false
	}
	for _, h := range r.holes {
		if g.Ring(h).ContainsPoint(g, p) {
			return false
		}
	}
	return true
}

// ToPolygon returns the ring and its holes as a polygon. Missing
// elevations are taken from elev, which may be nil.
func (r *EdgeRing) ToPolygon(g *PlanarGraph, layout geom.Layout, elev planar.ElevationModel) *geom.Polygon {
	flat := planar.ToFlat(planar.Elevate(r.pts, elev), layout)
	ends := []int{len(flat)}
	for _, h := range r.holes {
		flat = append(flat, planar.ToFlat(planar.Elevate(g.Ring(h).pts, elev), layout)...)
		ends = append(ends, len(flat))
	}
	return geom.NewPolygonFlat(layout, flat, ends)
}
