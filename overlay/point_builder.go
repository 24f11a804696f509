package overlay

import (
	"github.com/twpayne/go-geom"

	"github.com/davidreynolds/gotopo/planar"
)

// pointBuilder collects the result nodes not covered by a result line or
// polygon.
type pointBuilder struct {
	op *OverlayOp
}

func newPointBuilder(op *OverlayOp) *pointBuilder {
	return &pointBuilder{op: op}
}

func (pb *pointBuilder) build(op OpCode) []*geom.Point {
	var points []*geom.Point
	for _, n := range pb.op.graph.Nodes().Nodes() {
		if n.IsIncidentEdgeInResult() {
			continue
		}
		// Nodes with edges can only be points of an intersection, where
		// the inputs touch at a node.
		if n.Star().Degree() != 0 && op != Intersection {
			continue
		}
		if !isLabelResultOf(*n.Label(), op) {
			continue
		}
		c := n.Coord()
		if pb.op.isCoveredByLineOrArea(c) {
			continue
		}
		pts := planar.Elevate([]planar.Coord{c}, pb.op.elevation)
		points = append(points, geom.NewPointFlat(pb.op.layout, planar.ToFlat(pts, pb.op.layout)))
	}
	return points
}
