package relate

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/davidreynolds/gotopo/geomgraph"
	"github.com/davidreynolds/gotopo/planar"
)

// EdgeEndBundle groups the edge ends at a node that leave it in the same
// direction. Its label summarizes the labels of the ends it holds.
type EdgeEndBundle struct {
	geomgraph.EdgeEnd
	ends []*geomgraph.EdgeEnd
}

// NewEdgeEndBundle returns a bundle holding ee.
func NewEdgeEndBundle(ee *geomgraph.EdgeEnd) *EdgeEndBundle {
	b := &EdgeEndBundle{
		EdgeEnd: *geomgraph.NewEdgeEnd(ee.Edge(), ee.Coord(), ee.DirectedCoord(), geomgraph.NewLineLabel(planar.None)),
	}
	b.Insert(ee)
	return b
}

// Insert adds ee to the bundle.
func (b *EdgeEndBundle) Insert(ee *geomgraph.EdgeEnd) {
	b.ends = append(b.ends, ee)
}

// Ends returns the edge ends in the bundle, in insertion order.
func (b *EdgeEndBundle) Ends() []*geomgraph.EdgeEnd { return b.ends }

// ComputeLabel computes the label of the bundle from the labels of its
// ends. The On location of a geometry is Boundary when rule says the number
// of boundary ends is in the boundary. A side is Interior if any areal end
// has it in the interior.
func (b *EdgeEndBundle) ComputeLabel(rule planar.BoundaryNodeRule) {
	isArea := false
	for _, ee := range b.ends {
		if ee.Label().IsArea() {
			isArea = true
			break
		}
	}
	lbl := b.Label()
	if isArea {
		*lbl = geomgraph.NewAreaLabel(planar.None, planar.None, planar.None)
	} else {
		*lbl = geomgraph.NewLineLabel(planar.None)
	}
	for i := 0; i < 2; i++ {
		b.computeLabelOn(i, rule)
		if isArea {
			b.computeLabelSide(i, planar.Left)
			b.computeLabelSide(i, planar.Right)
		}
	}
}

func (b *EdgeEndBundle) computeLabelOn(geomIndex int, rule planar.BoundaryNodeRule) {
	boundaryCount := 0
	foundInterior := false
	for _, ee := range b.ends {
		switch ee.Label().On(geomIndex) {
		case planar.Boundary:
			boundaryCount++
		case planar.Interior:
			foundInterior = true
		}
	}
	loc := planar.None
	if foundInterior {
		loc = planar.Interior
	}
	if boundaryCount > 0 {
		loc = planar.Interior
		if rule.IsInBoundary(boundaryCount) {
			loc = planar.Boundary
		}
	}
	b.Label().SetOn(geomIndex, loc)
}

func (b *EdgeEndBundle) computeLabelSide(geomIndex int, side planar.Position) {
	for _, ee := range b.ends {
		if !ee.Label().IsArea() {
			continue
		}
		switch ee.Label().Location(geomIndex, side) {
		case planar.Interior:
			b.Label().SetLocation(geomIndex, side, planar.Interior)
			return
		case planar.Exterior:
			b.Label().SetLocation(geomIndex, side, planar.Exterior)
		}
	}
}

// UpdateIM updates im with the contribution of the bundle's label.
func (b *EdgeEndBundle) UpdateIM(im *planar.IntersectionMatrix) {
	geomgraph.UpdateIM(*b.Label(), im)
}

func (b *EdgeEndBundle) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "EdgeEndBundle--> Label: %s\n", b.Label())
	for _, ee := range b.ends {
		fmt.Fprintf(&sb, "%s\n", ee)
	}
	return sb.String()
}

// EdgeEndBundleStar is the star of a relate node. Edge ends with the same
// direction are merged into one EdgeEndBundle.
type EdgeEndBundleStar struct {
	geomgraph.EdgeEndStar
}

// NewEdgeEndBundleStar returns an empty star.
func NewEdgeEndBundleStar() *EdgeEndBundleStar {
	return &EdgeEndBundleStar{EdgeEndStar: geomgraph.NewEdgeEndStar()}
}

// Insert adds ee to the bundle with its direction, creating the bundle if
// there is none yet.
func (s *EdgeEndBundleStar) Insert(ee geomgraph.EdgeEnder) {
	e := ee.End()
	if found, ok := s.Find(e); ok {
		found.(*EdgeEndBundle).Insert(e)
		return
	}
	s.InsertEdgeEnd(NewEdgeEndBundle(e))
}

// Bundles returns the bundles of the star in direction order.
func (s *EdgeEndBundleStar) Bundles() []*EdgeEndBundle {
	ends := s.Ends()
	out := make([]*EdgeEndBundle, len(ends))
	for i, ee := range ends {
		out[i] = ee.(*EdgeEndBundle)
	}
	return out
}

// UpdateIM updates im with the labels of every bundle.
func (s *EdgeEndBundleStar) UpdateIM(im *planar.IntersectionMatrix) {
	for _, b := range s.Bundles() {
		b.UpdateIM(im)
	}
}

// newRelateNode creates a node whose star bundles edge ends.
func newRelateNode(id geomgraph.NodeID, c planar.Coord) *geomgraph.Node {
	return geomgraph.NewNode(id, c, NewEdgeEndBundleStar())
}

// updateNodeIM adds the contribution of node n and of its edges to im. The
// node must be labeled for both geometries.
func updateNodeIM(n *geomgraph.Node, im *planar.IntersectionMatrix) error {
	lbl := n.Label()
	if lbl.GeometryCount() < 2 {
		return errors.AssertionFailedf("found partial label at node %s", n.Coord())
	}
	im.SetAtLeastIfValid(lbl.On(0), lbl.On(1), planar.DimPoint)
	if s, ok := n.Star().(*EdgeEndBundleStar); ok {
		s.UpdateIM(im)
	}
	return nil
}
