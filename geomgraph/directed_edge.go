package geomgraph

import (
	"fmt"

	"github.com/davidreynolds/gotopo/planar"
)

// DirEdgeID identifies a directed edge in a PlanarGraph.
type DirEdgeID int

// NoDirEdge is the id of a missing directed edge.
const NoDirEdge DirEdgeID = -1

const unsetDepth = -999

// DirectedEdge is one of the two directed uses of an edge in a PlanarGraph.
// Links to other directed edges and rings are ids into the owning graph.
type DirectedEdge struct {
	EdgeEnd
	id       DirEdgeID
	forward  bool
	inResult bool
	visited  bool

	sym, next, nextMin    DirEdgeID
	edgeRing, minEdgeRing RingID
	depth                 [3]int
}

// DepthFactor returns the change in depth when crossing from currLoc to
// nextLoc.
func DepthFactor(currLoc, nextLoc planar.Location) int {
	switch {
	case currLoc == planar.Exterior && nextLoc == planar.Interior:
		return 1
	case currLoc == planar.Interior && nextLoc == planar.Exterior:
		return -1
	}
	return 0
}

func newDirectedEdge(id DirEdgeID, edge *Edge, forward bool) *DirectedEdge {
	de := &DirectedEdge{
		id:          id,
		forward:     forward,
		sym:         NoDirEdge,
		next:        NoDirEdge,
		nextMin:     NoDirEdge,
		edgeRing:    NoRing,
		minEdgeRing: NoRing,
		depth:       [3]int{0, unsetDepth, unsetDepth},
	}
	de.edge = edge
	de.node = NoNode
	if forward {
		de.init(edge.Coord(0), edge.Coord(1))
	} else {
		n := edge.NumPoints() - 1
		de.init(edge.Coord(n), edge.Coord(n-1))
	}
	de.label = edge.label
	if !forward {
		de.label.Flip()
	}
	return de
}

func (de *DirectedEdge) ID() DirEdgeID           { return de.id }
func (de *DirectedEdge) IsForward() bool         { return de.forward }
func (de *DirectedEdge) IsInResult() bool        { return de.inResult }
func (de *DirectedEdge) SetInResult(b bool)      { de.inResult = b }
func (de *DirectedEdge) IsVisited() bool         { return de.visited }
func (de *DirectedEdge) SetVisited(b bool)       { de.visited = b }
func (de *DirectedEdge) Sym() DirEdgeID          { return de.sym }
func (de *DirectedEdge) Next() DirEdgeID         { return de.next }
func (de *DirectedEdge) SetNext(id DirEdgeID)    { de.next = id }
func (de *DirectedEdge) NextMin() DirEdgeID      { return de.nextMin }
func (de *DirectedEdge) SetNextMin(id DirEdgeID) { de.nextMin = id }
func (de *DirectedEdge) EdgeRing() RingID        { return de.edgeRing }
func (de *DirectedEdge) SetEdgeRing(id RingID)   { de.edgeRing = id }
func (de *DirectedEdge) MinEdgeRing() RingID     { return de.minEdgeRing }
func (de *DirectedEdge) SetMinEdgeRing(id RingID) {
	de.minEdgeRing = id
}

// Depth returns the depth of the result area on side pos.
func (de *DirectedEdge) Depth(pos planar.Position) int { return de.depth[pos] }

// SetDepth sets the depth on side pos. Assigning a different depth to a side
// that already has one is a topology error.
func (de *DirectedEdge) SetDepth(pos planar.Position, depth int) error {
	if de.depth[pos] != unsetDepth && de.depth[pos] != depth {
		return NewTopologyError(de.Coord(), "assigned depths do not match")
	}
	de.depth[pos] = depth
	return nil
}

// DepthDelta returns the depth change across the edge in this direction.
func (de *DirectedEdge) DepthDelta() int {
	d := de.edge.DepthDelta()
	if !de.forward {
		d = -d
	}
	return d
}

// SetEdgeDepths sets the depth on side pos and derives the other side from
// the depth delta of the edge.
func (de *DirectedEdge) SetEdgeDepths(pos planar.Position, depth int) error {
	directionFactor := 1
	if pos == planar.Left {
		directionFactor = -1
	}
	oppositeDepth := depth + de.DepthDelta()*directionFactor
	if err := de.SetDepth(pos, depth); err != nil {
		return err
	}
	return de.SetDepth(pos.Opposite(), oppositeDepth)
}

// IsLineEdge reports whether the edge is a line in some geometry and is not
// inside the area of either.
func (de *DirectedEdge) IsLineEdge() bool {
	isLine := de.label.IsLine(0) || de.label.IsLine(1)
	isExteriorIfArea0 := !de.label.IsAreaFor(0) || de.label.AllPositionsEqual(0, planar.Exterior)
	isExteriorIfArea1 := !de.label.IsAreaFor(1) || de.label.AllPositionsEqual(1, planar.Exterior)
	return isLine && isExteriorIfArea0 && isExteriorIfArea1
}

// IsInteriorAreaEdge reports whether both sides of the edge are in the
// interior of both geometries.
func (de *DirectedEdge) IsInteriorAreaEdge() bool {
	for i := 0; i < 2; i++ {
		if !(de.label.IsAreaFor(i) &&
			de.label.Location(i, planar.Left) == planar.Interior &&
			de.label.Location(i, planar.Right) == planar.Interior) {
			return false
		}
	}
	return true
}

func (de *DirectedEdge) String() string {
	return fmt.Sprintf("%s %d/%d (%d)", de.EdgeEnd.String(), de.depth[planar.Left], de.depth[planar.Right], de.DepthDelta())
}
