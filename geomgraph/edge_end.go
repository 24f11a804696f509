package geomgraph

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/davidreynolds/gotopo/planar"
)

// Quadrants of the plane around an edge end, numbered counter-clockwise
// starting from the positive x-axis.
const (
	NE = 0
	NW = 1
	SW = 2
	SE = 3
)

// Quadrant returns the quadrant of the direction (dx, dy), which must not
// be zero.
func Quadrant(dx, dy float64) int {
	if dx == 0 && dy == 0 {
		panic(errors.AssertionFailedf("cannot compute the quadrant of (%g, %g)", dx, dy))
	}
	if dx >= 0 {
		if dy >= 0 {
			return NE
		}
		return SE
	}
	if dy >= 0 {
		return NW
	}
	return SW
}

// IsNorthern reports whether quad lies above the x-axis.
func IsNorthern(quad int) bool { return quad == NE || quad == NW }

// EdgeEnder is anything kept in an EdgeEndStar.
type EdgeEnder interface {
	End() *EdgeEnd
	// ComputeLabel finalizes the label of the end before the star is
	// labeled.
	ComputeLabel(rule planar.BoundaryNodeRule)
}

// EdgeEnd is the start of an edge at a node, with the direction it leaves
// the node in.
type EdgeEnd struct {
	edge     *Edge
	label    Label
	node     NodeID
	p0, p1   planar.Coord
	dx, dy   float64
	quadrant int
}

// NewEdgeEnd returns an end of edge leaving p0 towards p1.
func NewEdgeEnd(edge *Edge, p0, p1 planar.Coord, label Label) *EdgeEnd {
	ee := &EdgeEnd{edge: edge, label: label, node: NoNode}
	ee.init(p0, p1)
	return ee
}

func (ee *EdgeEnd) init(p0, p1 planar.Coord) {
	ee.p0, ee.p1 = p0, p1
	ee.dx = p1.X - p0.X
	ee.dy = p1.Y - p0.Y
	ee.quadrant = Quadrant(ee.dx, ee.dy)
}

func (ee *EdgeEnd) End() *EdgeEnd                        { return ee }
func (ee *EdgeEnd) ComputeLabel(planar.BoundaryNodeRule) {}

func (ee *EdgeEnd) Edge() *Edge                 { return ee.edge }
func (ee *EdgeEnd) Label() *Label               { return &ee.label }
func (ee *EdgeEnd) Coord() planar.Coord         { return ee.p0 }
func (ee *EdgeEnd) DirectedCoord() planar.Coord { return ee.p1 }
func (ee *EdgeEnd) Quadrant() int               { return ee.quadrant }
func (ee *EdgeEnd) Dx() float64                 { return ee.dx }
func (ee *EdgeEnd) Dy() float64                 { return ee.dy }
func (ee *EdgeEnd) Node() NodeID                { return ee.node }
func (ee *EdgeEnd) SetNode(id NodeID)           { ee.node = id }

// CompareDirection orders edge ends counter-clockwise around their common
// origin, starting at the positive x-axis.
func (ee *EdgeEnd) CompareDirection(o *EdgeEnd) int {
	if ee.dx == o.dx && ee.dy == o.dy {
		return 0
	}
	switch {
	case ee.quadrant > o.quadrant:
		return 1
	case ee.quadrant < o.quadrant:
		return -1
	}
	// Same quadrant: ee is greater when it is left of o.
	return int(planar.OrientationIndex(o.p0, o.p1, ee.p1))
}

func (ee *EdgeEnd) String() string {
	return fmt.Sprintf("  %v - %v %d:%g   %v", ee.p0, ee.p1, ee.quadrant, math.Atan2(ee.dy, ee.dx), ee.label)
}
