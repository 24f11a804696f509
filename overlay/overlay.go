// Package overlay computes the boolean set operations of two geometries
// (intersection, union, difference and symmetric difference).
//
// The geometries are noded together into a single topology graph, each edge
// is labeled with its location in both inputs, and the result is read back
// from the graph: areas first, then lines not covered by the result areas,
// then points not covered by either.
package overlay

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/golang/glog"
	"github.com/twpayne/go-geom"

	"github.com/davidreynolds/gotopo/geomgraph"
	"github.com/davidreynolds/gotopo/planar"
)

// OpCode names an overlay operation.
type OpCode int

const (
	Intersection OpCode = iota + 1
	Union
	Difference
	SymDifference
)

var opNames = map[OpCode]string{
	Intersection:  "intersection",
	Union:         "union",
	Difference:    "difference",
	SymDifference: "symdifference",
}

func (op OpCode) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "unknown"
}

// ParseOpCode parses an operation name as printed by OpCode.String.
func ParseOpCode(s string) (OpCode, error) {
	s = strings.ToLower(s)
	for op, name := range opNames {
		if name == s {
			return op, nil
		}
	}
	return 0, errors.Newf("unknown overlay operation %q", s)
}

// IsResultOf reports whether a component at locations loc0 in the first
// geometry and loc1 in the second belongs to the result of op. Boundary
// locations count as interior.
func IsResultOf(loc0, loc1 planar.Location, op OpCode) bool {
	if loc0 == planar.Boundary {
		loc0 = planar.Interior
	}
	if loc1 == planar.Boundary {
		loc1 = planar.Interior
	}
	switch op {
	case Intersection:
		return loc0 == planar.Interior && loc1 == planar.Interior
	case Union:
		return loc0 == planar.Interior || loc1 == planar.Interior
	case Difference:
		return loc0 == planar.Interior && loc1 != planar.Interior
	case SymDifference:
		return (loc0 == planar.Interior) != (loc1 == planar.Interior)
	}
	return false
}

// isLabelResultOf is IsResultOf for the On locations of lbl.
func isLabelResultOf(lbl geomgraph.Label, op OpCode) bool {
	return IsResultOf(lbl.On(0), lbl.On(1), op)
}

// Overlay returns the result of op applied to a and b.
func Overlay(a, b geom.T, op OpCode, opts geomgraph.Options) (geom.T, error) {
	o, err := NewOverlayOp(a, b, opts)
	if err != nil {
		return nil, err
	}
	return o.Result(op)
}

// OverlayOp computes an overlay of two geometries. An OverlayOp computes a
// single result.
type OverlayOp struct {
	opts      geomgraph.Options
	li        *planar.LineIntersector
	ptLocator *planar.PointLocator
	arg       [2]*geomgraph.GeometryGraph
	graph     *geomgraph.PlanarGraph
	edgeList  *geomgraph.EdgeList
	elevation planar.ElevationModel
	layout    geom.Layout
	done      bool

	resultPolys  []*geom.Polygon
	resultLines  []*geom.LineString
	resultPoints []*geom.Point
}

// NewOverlayOp builds the graphs of a and b. When either input has z and
// opts has no elevation model, a 3x3 grid model of the input elevations is
// used for computed points.
func NewOverlayOp(a, b geom.T, opts geomgraph.Options) (*OverlayOp, error) {
	o := &OverlayOp{
		opts:      opts,
		ptLocator: planar.NewPointLocator(opts.BoundaryNodeRule()),
		graph:     geomgraph.NewPlanarGraph(geomgraph.NewDirectedEdgeNode),
		edgeList:  geomgraph.NewEdgeList(),
		elevation: opts.ElevationModel(),
		layout:    geom.XY,
	}
	if planar.HasZ(a) || planar.HasZ(b) {
		o.layout = geom.XYZ
		if o.elevation == nil {
			o.elevation = newGridElevation(a, b)
		}
	}
	o.li = planar.NewLineIntersector(o.elevation, opts.PrecisionModel())
	for i, g := range []geom.T{a, b} {
		gg, err := geomgraph.NewGeometryGraph(i, g, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "building graph of argument %d", i)
		}
		o.arg[i] = gg
	}
	return o, nil
}

func newGridElevation(a, b geom.T) *planar.GridElevationModel {
	m := planar.NewGridElevationModel(planar.EnvelopeOf(a).Union(planar.EnvelopeOf(b)), 3, 3)
	for _, g := range []geom.T{a, b} {
		m.Add(allCoords(g)...)
	}
	return m
}

// allCoords returns every coordinate of g.
func allCoords(g geom.T) []planar.Coord {
	switch g := g.(type) {
	case nil:
		return nil
	case *geom.GeometryCollection:
		var pts []planar.Coord
		for _, child := range g.Geoms() {
			pts = append(pts, allCoords(child)...)
		}
		return pts
	}
	return planar.FromFlat(g.FlatCoords(), g.Stride(), g.Layout().ZIndex())
}

// Graph returns the overlay graph.
func (o *OverlayOp) Graph() *geomgraph.PlanarGraph { return o.graph }

// Result computes the overlay for op.
func (o *OverlayOp) Result(op OpCode) (geom.T, error) {
	if _, ok := opNames[op]; !ok {
		return nil, errors.Newf("unknown overlay operation %d", int(op))
	}
	if o.done {
		return nil, errors.AssertionFailedf("overlay already computed")
	}
	o.done = true
	if err := o.computeOverlay(op); err != nil {
		return nil, errors.Wrapf(err, "computing %s", op)
	}
	return o.computeGeometry(op)
}

func (o *OverlayOp) computeOverlay(op OpCode) error {
	// Nodes of the inputs (points, line endpoints) are kept in the graph so
	// that isolated points can be found.
	o.copyPoints(0)
	o.copyPoints(1)

	o.arg[0].ComputeSelfNodes(o.li, o.opts.ComputeRingSelfNodes())
	o.arg[1].ComputeSelfNodes(o.li, o.opts.ComputeRingSelfNodes())
	o.arg[0].ComputeEdgeIntersections(o.arg[1], o.li, true)

	var baseSplitEdges []*geomgraph.Edge
	o.arg[0].ComputeSplitEdges(&baseSplitEdges)
	o.arg[1].ComputeSplitEdges(&baseSplitEdges)
	for _, e := range baseSplitEdges {
		o.insertUniqueEdge(e)
	}

	if err := o.computeLabelsFromDepths(); err != nil {
		return err
	}
	edges := o.replaceCollapsedEdges()
	o.graph.AddEdges(edges)

	if err := o.computeLabelling(); err != nil {
		return err
	}
	o.labelIncompleteNodes()

	o.findResultAreaEdges(op)
	o.cancelDuplicateResultEdges()

	pb := NewPolygonBuilder(o.graph)
	if err := pb.Add(); err != nil {
		return err
	}
	o.resultPolys = pb.Polygons(o.layout, o.elevation)

	lb := newLineBuilder(o)
	o.resultLines = lb.build(op)

	pointb := newPointBuilder(o)
	o.resultPoints = pointb.build(op)

	if glog.V(2) {
		glog.Infof("overlay %s: %d split edges, %d unique, %d nodes: %d polygons, %d lines, %d points",
			op, len(baseSplitEdges), len(edges), o.graph.Nodes().Len(),
			len(o.resultPolys), len(o.resultLines), len(o.resultPoints))
	}
	return nil
}

func (o *OverlayOp) copyPoints(argIndex int) {
	for _, gn := range o.arg[argIndex].Nodes().Nodes() {
		n := o.graph.AddNode(gn.Coord())
		n.SetOn(argIndex, gn.Label().On(argIndex))
	}
}

// insertUniqueEdge adds e to the edge list, or merges its label into an
// equal edge already there. The depths of merged edges count how many
// times each side is covered by each input.
func (o *OverlayOp) insertUniqueEdge(e *geomgraph.Edge) {
	existing, ok := o.edgeList.FindEqualEdge(e)
	if !ok {
		o.edgeList.Add(e)
		return
	}
	existingLabel := existing.Label()
	labelToMerge := *e.Label()
	// An edge equal in the opposite direction has its sides swapped.
	if !existing.IsPointwiseEqual(e) {
		labelToMerge.Flip()
	}
	depth := existing.Depth()
	if depth.IsNull() {
		depth.Add(*existingLabel)
	}
	depth.Add(labelToMerge)
	existingLabel.Merge(labelToMerge)
}

// computeLabelsFromDepths updates the labels of merged edges from their
// depths. An edge whose sides have the same depth has collapsed into a
// line for that input.
func (o *OverlayOp) computeLabelsFromDepths() error {
	for _, e := range o.edgeList.Edges() {
		lbl := e.Label()
		depth := e.Depth()
		if depth.IsNull() {
			continue
		}
		depth.Normalize()
		for i := 0; i < 2; i++ {
			if lbl.IsNull(i) || !lbl.IsArea() || depth.IsNullFor(i) {
				continue
			}
			if depth.Delta(i) == 0 {
				lbl.ToLineFor(i)
				continue
			}
			if depth.IsNullAt(i, planar.Left) || depth.IsNullAt(i, planar.Right) {
				return errors.AssertionFailedf("side depth of edge %s has not been initialized", e)
			}
			lbl.SetLocation(i, planar.Left, depth.Location(i, planar.Left))
			lbl.SetLocation(i, planar.Right, depth.Location(i, planar.Right))
		}
	}
	return nil
}

// replaceCollapsedEdges returns the edges of the list with collapsed area
// edges replaced by line edges.
func (o *OverlayOp) replaceCollapsedEdges() []*geomgraph.Edge {
	var edges, collapsed []*geomgraph.Edge
	for _, e := range o.edgeList.Edges() {
		if e.IsCollapsed() {
			collapsed = append(collapsed, e.CollapsedEdge())
			continue
		}
		edges = append(edges, e)
	}
	return append(edges, collapsed...)
}

func (o *OverlayOp) computeLabelling() error {
	nodes := o.graph.Nodes().Nodes()
	for _, n := range nodes {
		if err := n.Star().ComputeLabelling(o.arg); err != nil {
			return err
		}
	}
	for _, n := range nodes {
		n.DirectedEdgeStar().MergeSymLabels(o.graph)
	}
	for _, n := range nodes {
		n.Label().Merge(n.DirectedEdgeStar().Label())
	}
	return nil
}

// labelIncompleteNodes locates isolated nodes in the other input and
// pushes node labels onto the edges of each star.
func (o *OverlayOp) labelIncompleteNodes() {
	for _, n := range o.graph.Nodes().Nodes() {
		lbl := n.Label()
		if n.IsIsolated() {
			target := 1
			if lbl.IsNull(0) {
				target = 0
			}
			n.SetOn(target, o.ptLocator.Locate(n.Coord(), o.arg[target].Geometry()))
		}
		n.DirectedEdgeStar().UpdateLabelling(*lbl)
	}
}

// findResultAreaEdges marks the directed edges that bound the result area
// on their right.
func (o *OverlayOp) findResultAreaEdges(op OpCode) {
	for _, de := range o.graph.DirEdges() {
		lbl := de.Label()
		if lbl.IsArea() && !de.IsInteriorAreaEdge() &&
			IsResultOf(lbl.Location(0, planar.Right), lbl.Location(1, planar.Right), op) {
			de.SetInResult(true)
		}
	}
}

// cancelDuplicateResultEdges removes edges that are in the result in both
// directions. They lie inside the result area.
func (o *OverlayOp) cancelDuplicateResultEdges() {
	for _, de := range o.graph.DirEdges() {
		sym := o.graph.DirEdge(de.Sym())
		if de.IsInResult() && sym.IsInResult() {
			de.SetInResult(false)
			sym.SetInResult(false)
		}
	}
}

// isCoveredByArea reports whether c is in a result polygon.
func (o *OverlayOp) isCoveredByArea(c planar.Coord) bool {
	for _, p := range o.resultPolys {
		if o.ptLocator.Locate(c, p) != planar.Exterior {
			return true
		}
	}
	return false
}

// isCoveredByLineOrArea reports whether c is on a result line or in a
// result polygon.
func (o *OverlayOp) isCoveredByLineOrArea(c planar.Coord) bool {
	for _, l := range o.resultLines {
		if o.ptLocator.Locate(c, l) != planar.Exterior {
			return true
		}
	}
	return o.isCoveredByArea(c)
}
