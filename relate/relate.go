// Package relate computes the DE-9IM intersection matrix of two geometries
// from a topology graph of both.
//
// Both geometries are noded against themselves and each other. Edge ends
// are created at every node and bundled by direction, the bundles are
// labeled with their location in each geometry, and the matrix is assembled
// from the labels of nodes, bundles and isolated edges.
package relate

import (
	"github.com/cockroachdb/errors"
	"github.com/davidreynolds/gotopo/geomgraph"
	"github.com/davidreynolds/gotopo/planar"
	"github.com/golang/glog"
	"github.com/twpayne/go-geom"
)

// ErrGeometryCollection is returned when an argument is a geometry
// collection. Overlapping members would give inconsistent labels.
var ErrGeometryCollection = errors.New("relate does not support geometry collections")

// RelateComputer computes the intersection matrix of two geometries.
type RelateComputer struct {
	opts      geomgraph.Options
	li        *planar.LineIntersector
	ptLocator *planar.PointLocator
	arg       [2]*geomgraph.GeometryGraph
	nodes     *geomgraph.NodeMap
	// Edges of either geometry which do not touch the other.
	isolatedEdges []*geomgraph.Edge
}

// NewRelateComputer builds the graphs of a and b.
func NewRelateComputer(a, b geom.T, opts geomgraph.Options) (*RelateComputer, error) {
	rc := &RelateComputer{
		opts:      opts,
		li:        opts.NewLineIntersector(),
		ptLocator: planar.NewPointLocator(opts.BoundaryNodeRule()),
		nodes:     geomgraph.NewNodeMap(newRelateNode),
	}
	for i, g := range []geom.T{a, b} {
		if _, ok := g.(*geom.GeometryCollection); ok {
			return nil, errors.Wrapf(ErrGeometryCollection, "argument %d", i)
		}
		gg, err := geomgraph.NewGeometryGraph(i, g, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "building graph of argument %d", i)
		}
		rc.arg[i] = gg
	}
	return rc, nil
}

// ComputeIM returns the intersection matrix of the two geometries.
func (rc *RelateComputer) ComputeIM() (*planar.IntersectionMatrix, error) {
	im := planar.NewIntersectionMatrix()
	// The exteriors of two bounded geometries always intersect in an area.
	im.Set(planar.Exterior, planar.Exterior, planar.DimSurface)

	ga, gb := rc.arg[0].Geometry(), rc.arg[1].Geometry()
	if !planar.EnvelopeOf(ga).Intersects(planar.EnvelopeOf(gb)) {
		if err := rc.computeDisjointIM(im); err != nil {
			return nil, err
		}
		return im, nil
	}

	rc.arg[0].ComputeSelfNodes(rc.li, false)
	rc.arg[1].ComputeSelfNodes(rc.li, false)
	si := rc.arg[0].ComputeEdgeIntersections(rc.arg[1], rc.li, false)

	rc.computeIntersectionNodes(0)
	rc.computeIntersectionNodes(1)
	rc.copyNodesAndLabels(0)
	rc.copyNodesAndLabels(1)
	if err := rc.labelIsolatedNodes(); err != nil {
		return nil, err
	}

	if err := rc.computeProperIntersectionIM(si, im); err != nil {
		return nil, err
	}

	var eeb EdgeEndBuilder
	eeb.AddAll(rc.arg[0].Edges())
	eeb.AddAll(rc.arg[1].Edges())
	for _, ee := range eeb.Ends() {
		rc.nodes.AddEnd(ee)
	}

	if err := rc.labelNodeEdges(); err != nil {
		return nil, err
	}
	rc.labelIsolatedEdges(0, 1)
	rc.labelIsolatedEdges(1, 0)

	if err := rc.updateIM(im); err != nil {
		return nil, err
	}
	if glog.V(2) {
		glog.Infof("relate: %d nodes, %d edge ends, %d isolated edges: %s",
			rc.nodes.Len(), len(eeb.Ends()), len(rc.isolatedEdges), im)
	}
	return im, nil
}

// computeDisjointIM fills im for geometries whose envelopes do not meet.
func (rc *RelateComputer) computeDisjointIM(im *planar.IntersectionMatrix) error {
	rule := rc.arg[0].BoundaryNodeRule()
	if ga := rc.arg[0].Geometry(); !planar.IsEmpty(ga) {
		dim, bdim, err := dimensions(ga, rule)
		if err != nil {
			return err
		}
		im.Set(planar.Interior, planar.Exterior, dim)
		im.Set(planar.Boundary, planar.Exterior, bdim)
	}
	if gb := rc.arg[1].Geometry(); !planar.IsEmpty(gb) {
		dim, bdim, err := dimensions(gb, rule)
		if err != nil {
			return err
		}
		im.Set(planar.Exterior, planar.Interior, dim)
		im.Set(planar.Exterior, planar.Boundary, bdim)
	}
	return nil
}

func dimensions(g geom.T, rule planar.BoundaryNodeRule) (dim, boundaryDim planar.Dimension, err error) {
	if dim, err = planar.DimensionOf(g); err != nil {
		return planar.DimFalse, planar.DimFalse, err
	}
	if boundaryDim, err = planar.BoundaryDimensionOf(g, rule); err != nil {
		return planar.DimFalse, planar.DimFalse, err
	}
	return dim, boundaryDim, nil
}

// computeProperIntersectionIM sets the entries implied by a proper
// intersection. A proper intersection of two areas means their interiors
// and boundaries cross, so most entries can be set without labeling.
func (rc *RelateComputer) computeProperIntersectionIM(si *geomgraph.SegmentIntersector, im *planar.IntersectionMatrix) error {
	dimA, err := planar.DimensionOf(rc.arg[0].Geometry())
	if err != nil {
		return err
	}
	dimB, err := planar.DimensionOf(rc.arg[1].Geometry())
	if err != nil {
		return err
	}
	hasProper := si.HasProperIntersection()
	hasProperInterior := si.HasProperInteriorIntersection()

	var patterns []string
	switch {
	case dimA == planar.DimSurface && dimB == planar.DimSurface:
		if hasProper {
			patterns = append(patterns, "212101212")
		}
	case dimA == planar.DimSurface && dimB == planar.DimCurve:
		if hasProper {
			patterns = append(patterns, "FFF0FFFF2")
		}
		if hasProperInterior {
			patterns = append(patterns, "1FFFFF1FF")
		}
	case dimA == planar.DimCurve && dimB == planar.DimSurface:
		if hasProper {
			patterns = append(patterns, "F0FFFFFF2")
		}
		if hasProperInterior {
			patterns = append(patterns, "1F1FFFFFF")
		}
	case dimA == planar.DimCurve && dimB == planar.DimCurve:
		if hasProperInterior {
			patterns = append(patterns, "0FFFFFFFF")
		}
	}
	for _, p := range patterns {
		if err := im.SetAtLeastPattern(p); err != nil {
			return err
		}
	}
	return nil
}

// computeIntersectionNodes adds a node for every intersection found on the
// edges of geometry argIndex and labels it with its location in that
// geometry. Intersections on area boundaries are in the boundary.
func (rc *RelateComputer) computeIntersectionNodes(argIndex int) {
	for _, e := range rc.arg[argIndex].Edges() {
		eLoc := e.Label().On(argIndex)
		for _, ei := range e.Intersections().Items() {
			n := rc.nodes.AddNode(ei.Coord)
			if eLoc == planar.Boundary {
				n.SetOn(argIndex, planar.Boundary)
			} else if n.Label().IsNull(argIndex) {
				n.SetOn(argIndex, planar.Interior)
			}
		}
	}
}

// copyNodesAndLabels copies the nodes of geometry argIndex with their
// labels. The graph labels override those from intersections.
func (rc *RelateComputer) copyNodesAndLabels(argIndex int) {
	for _, gn := range rc.arg[argIndex].Nodes().Nodes() {
		n := rc.nodes.AddNode(gn.Coord())
		n.SetOn(argIndex, gn.Label().On(argIndex))
	}
}

// labelIsolatedNodes locates the nodes that belong to only one geometry in
// the other geometry.
func (rc *RelateComputer) labelIsolatedNodes() error {
	for _, n := range rc.nodes.Nodes() {
		lbl := n.Label()
		if lbl.GeometryCount() == 0 {
			return errors.AssertionFailedf("node with empty label at %s", n.Coord())
		}
		if !n.IsIsolated() {
			continue
		}
		target := 1
		if lbl.IsNull(0) {
			target = 0
		}
		loc := rc.ptLocator.Locate(n.Coord(), rc.arg[target].Geometry())
		lbl.SetAllLocations(target, loc)
	}
	return nil
}

func (rc *RelateComputer) labelNodeEdges() error {
	for _, n := range rc.nodes.Nodes() {
		if err := n.Star().ComputeLabelling(rc.arg); err != nil {
			return err
		}
	}
	return nil
}

// labelIsolatedEdges labels the edges of geometry thisIndex that do not
// touch geometry targetIndex with their location in it.
func (rc *RelateComputer) labelIsolatedEdges(thisIndex, targetIndex int) {
	target := rc.arg[targetIndex].Geometry()
	targetDim, err := planar.DimensionOf(target)
	if err != nil {
		targetDim = planar.DimFalse
	}
	for _, e := range rc.arg[thisIndex].Edges() {
		if !e.IsIsolated() {
			continue
		}
		// An edge cannot be in a point set without meeting it.
		loc := planar.Exterior
		if targetDim > planar.DimPoint {
			loc = rc.ptLocator.Locate(e.Coord(0), target)
		}
		e.Label().SetAllLocations(targetIndex, loc)
		rc.isolatedEdges = append(rc.isolatedEdges, e)
	}
}

func (rc *RelateComputer) updateIM(im *planar.IntersectionMatrix) error {
	for _, e := range rc.isolatedEdges {
		e.ComputeIM(im)
	}
	for _, n := range rc.nodes.Nodes() {
		if err := updateNodeIM(n, im); err != nil {
			return err
		}
	}
	return nil
}
