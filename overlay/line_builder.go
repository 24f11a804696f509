package overlay

import (
	"github.com/twpayne/go-geom"

	"github.com/davidreynolds/gotopo/geomgraph"
	"github.com/davidreynolds/gotopo/planar"
)

// lineBuilder collects the line edges of the result. Each result edge
// becomes one line string; edges are not merged into longer lines.
type lineBuilder struct {
	op        *OverlayOp
	lineEdges []*geomgraph.Edge
}

func newLineBuilder(op *OverlayOp) *lineBuilder {
	return &lineBuilder{op: op}
}

func (lb *lineBuilder) build(op OpCode) []*geom.LineString {
	lb.findCoveredLineEdges()
	lb.collectLines(op)
	lines := make([]*geom.LineString, 0, len(lb.lineEdges))
	for _, e := range lb.lineEdges {
		pts := planar.Elevate(e.Coords(), lb.op.elevation)
		lines = append(lines, geom.NewLineStringFlat(lb.op.layout, planar.ToFlat(pts, lb.op.layout)))
		e.SetInResult(true)
	}
	lb.labelIsolatedLines()
	return lines
}

// findCoveredLineEdges marks the line edges that lie inside the result
// area. Edges at nodes with result area edges are resolved from the star;
// the others are located against the result polygons.
func (lb *lineBuilder) findCoveredLineEdges() {
	g := lb.op.graph
	for _, n := range g.Nodes().Nodes() {
		n.DirectedEdgeStar().FindCoveredLineEdges(g)
	}
	for _, de := range g.DirEdges() {
		e := de.Edge()
		if de.IsLineEdge() && !e.IsCoveredSet() {
			e.SetCovered(lb.op.isCoveredByArea(de.Coord()))
		}
	}
}

func (lb *lineBuilder) collectLines(op OpCode) {
	for _, de := range lb.op.graph.DirEdges() {
		lb.collectLineEdge(de, op)
		lb.collectBoundaryTouchEdge(de, op)
	}
}

func (lb *lineBuilder) collectLineEdge(de *geomgraph.DirectedEdge, op OpCode) {
	if !de.IsLineEdge() || de.IsVisited() {
		return
	}
	e := de.Edge()
	if isLabelResultOf(*de.Label(), op) && !e.IsCovered() {
		lb.lineEdges = append(lb.lineEdges, e)
		lb.op.graph.SetVisitedEdge(de, true)
	}
}

// collectBoundaryTouchEdge collects area edges where the boundaries of the
// inputs touch without the edge being in the result area. They appear as
// lines in an intersection.
func (lb *lineBuilder) collectBoundaryTouchEdge(de *geomgraph.DirectedEdge, op OpCode) {
	if de.IsLineEdge() || de.IsVisited() || de.IsInteriorAreaEdge() || de.Edge().IsInResult() {
		return
	}
	if op == Intersection && isLabelResultOf(*de.Label(), op) {
		lb.lineEdges = append(lb.lineEdges, de.Edge())
		lb.op.graph.SetVisitedEdge(de, true)
	}
}

// labelIsolatedLines locates result edges that meet only one input in the
// other input.
func (lb *lineBuilder) labelIsolatedLines() {
	for _, e := range lb.lineEdges {
		if !e.IsIsolated() {
			continue
		}
		lbl := e.Label()
		target := 1
		if lbl.IsNull(0) {
			target = 0
		}
		lbl.SetOn(target, lb.op.ptLocator.Locate(e.Coord(0), lb.op.arg[target].Geometry()))
	}
}
