package geomgraph

import (
	"github.com/cockroachdb/errors"
	"github.com/golang/glog"
	"github.com/twpayne/go-geom"

	"github.com/davidreynolds/gotopo/planar"
)

// GeometryGraph is the topology graph of one argument geometry of a relate
// or overlay computation. Its edges are the lines and rings of the geometry
// and its nodes carry the locations of points, line endpoints and ring
// starts relative to the geometry.
type GeometryGraph struct {
	*PlanarGraph
	argIndex int
	geometry geom.T
	opts     Options

	// Line endpoints are resolved with the boundary node rule unless the
	// geometry holds a MultiPolygon, whose rings only touch at points.
	useBoundaryDeterminationRule bool

	boundaryNodes    []*Node
	boundaryNodesSet bool
	hasTooFewPoints  bool
	invalidPoint     planar.Coord
	locator          *planar.PointLocator
}

// NewGeometryGraph returns the graph of g as argument argIndex, which must
// be 0 or 1. A nil g gives an empty graph.
func NewGeometryGraph(argIndex int, g geom.T, opts Options) (*GeometryGraph, error) {
	if argIndex != 0 && argIndex != 1 {
		return nil, errors.Wrapf(ErrInvalidArgIndex, "argument index %d", argIndex)
	}
	gg := &GeometryGraph{
		PlanarGraph:                  NewPlanarGraph(NewDirectedEdgeNode),
		argIndex:                     argIndex,
		geometry:                     g,
		opts:                         opts,
		useBoundaryDeterminationRule: true,
		locator:                      planar.NewPointLocator(opts.BoundaryNodeRule()),
	}
	if g != nil {
		if err := gg.add(g); err != nil {
			return nil, err
		}
	}
	if glog.V(3) {
		glog.Infof("graph %d: %d edges, %d nodes", argIndex, len(gg.edges), gg.nodes.Len())
	}
	return gg, nil
}

func (gg *GeometryGraph) ArgIndex() int    { return gg.argIndex }
func (gg *GeometryGraph) Geometry() geom.T { return gg.geometry }
func (gg *GeometryGraph) Options() Options { return gg.opts }
func (gg *GeometryGraph) BoundaryNodeRule() planar.BoundaryNodeRule {
	return gg.opts.BoundaryNodeRule()
}

// HasTooFewPoints reports whether a line or ring of the geometry had too
// few distinct points to form an edge. InvalidPoint returns one of its
// points.
func (gg *GeometryGraph) HasTooFewPoints() bool      { return gg.hasTooFewPoints }
func (gg *GeometryGraph) InvalidPoint() planar.Coord { return gg.invalidPoint }

// BoundaryNodes returns the nodes in the boundary of the geometry.
func (gg *GeometryGraph) BoundaryNodes() []*Node {
	if !gg.boundaryNodesSet {
		gg.boundaryNodes = gg.nodes.BoundaryNodes(gg.argIndex)
		gg.boundaryNodesSet = true
	}
	return gg.boundaryNodes
}

// BoundaryPoints returns the locations of the boundary nodes.
func (gg *GeometryGraph) BoundaryPoints() []planar.Coord {
	nodes := gg.BoundaryNodes()
	pts := make([]planar.Coord, len(nodes))
	for i, n := range nodes {
		pts[i] = n.Coord()
	}
	return pts
}

// Locate returns the location of p relative to the geometry.
func (gg *GeometryGraph) Locate(p planar.Coord) planar.Location {
	if gg.geometry == nil {
		return planar.Exterior
	}
	return gg.locator.Locate(p, gg.geometry)
}

func (gg *GeometryGraph) add(g geom.T) error {
	if planar.IsEmpty(g) {
		return nil
	}
	switch g := g.(type) {
	case *geom.Point:
		gg.insertPoint(planar.CoordsOf(g)[0], planar.Interior)
	case *geom.LineString:
		gg.addLineString(planar.CoordsOf(g))
	case *geom.LinearRing:
		gg.addLineString(planar.CoordsOf(g))
	case *geom.Polygon:
		gg.addPolygon(g)
	case *geom.MultiPoint:
		for i := 0; i < g.NumPoints(); i++ {
			if err := gg.add(g.Point(i)); err != nil {
				return err
			}
		}
	case *geom.MultiLineString:
		for i := 0; i < g.NumLineStrings(); i++ {
			if err := gg.add(g.LineString(i)); err != nil {
				return err
			}
		}
	case *geom.MultiPolygon:
		gg.useBoundaryDeterminationRule = false
		for i := 0; i < g.NumPolygons(); i++ {
			gg.addPolygon(g.Polygon(i))
		}
	case *geom.GeometryCollection:
		for _, c := range g.Geoms() {
			if err := gg.add(c); err != nil {
				return err
			}
		}
	default:
		return errors.Newf("unsupported geometry type %T", g)
	}
	return nil
}

func (gg *GeometryGraph) addPolygon(p *geom.Polygon) {
	for i := 0; i < p.NumLinearRings(); i++ {
		ring := planar.CoordsOf(p.LinearRing(i))
		if i == 0 {
			gg.addPolygonRing(ring, planar.Exterior, planar.Interior)
		} else {
			gg.addPolygonRing(ring, planar.Interior, planar.Exterior)
		}
	}
}

// addPolygonRing adds a ring with the side locations it would have if it
// were oriented clockwise.
func (gg *GeometryGraph) addPolygonRing(ring []planar.Coord, cwLeft, cwRight planar.Location) {
	if len(ring) == 0 {
		return
	}
	pts := planar.RemoveRepeated(ring)
	if len(pts) < 4 {
		gg.hasTooFewPoints = true
		gg.invalidPoint = pts[0]
		glog.Warningf("ring at %v has too few points", pts[0])
		return
	}
	left, right := cwLeft, cwRight
	if planar.IsCCW(pts) {
		left, right = cwRight, cwLeft
	}
	gg.InsertEdge(NewEdge(pts, NewArgAreaLabel(gg.argIndex, planar.Boundary, left, right)))
	gg.insertPoint(pts[0], planar.Boundary)
}

func (gg *GeometryGraph) addLineString(line []planar.Coord) {
	pts := planar.RemoveRepeated(line)
	if len(pts) < 2 {
		gg.hasTooFewPoints = true
		gg.invalidPoint = pts[0]
		glog.Warningf("line at %v has too few points", pts[0])
		return
	}
	gg.InsertEdge(NewEdge(pts, NewArgLineLabel(gg.argIndex, planar.Interior)))
	gg.insertBoundaryPoint(pts[0])
	gg.insertBoundaryPoint(pts[len(pts)-1])
}

// AddEdge adds e, with nodes at its endpoints labeled Boundary.
func (gg *GeometryGraph) AddEdge(e *Edge) {
	gg.InsertEdge(e)
	gg.insertPoint(e.pts[0], planar.Boundary)
	gg.insertPoint(e.pts[len(e.pts)-1], planar.Boundary)
}

// AddPoint adds a node at c labeled Interior.
func (gg *GeometryGraph) AddPoint(c planar.Coord) {
	gg.insertPoint(c, planar.Interior)
}

func (gg *GeometryGraph) insertPoint(c planar.Coord, loc planar.Location) {
	gg.AddNode(c).SetOn(gg.argIndex, loc)
}

// insertBoundaryPoint counts a line endpoint at c.
func (gg *GeometryGraph) insertBoundaryPoint(c planar.Coord) {
	gg.AddNode(c).AddBoundaryEndpoint(gg.argIndex, gg.opts.BoundaryNodeRule())
}

// ComputeSelfNodes nodes the edges of the geometry with each other. The
// segments of a ring are only tested against each other when
// computeRingSelfNodes is set or the geometry is not polygonal.
func (gg *GeometryGraph) ComputeSelfNodes(li *planar.LineIntersector, computeRingSelfNodes bool) *SegmentIntersector {
	si := NewSegmentIntersector(li, true, false)
	isRings := false
	switch gg.geometry.(type) {
	case *geom.LinearRing, *geom.Polygon, *geom.MultiPolygon:
		isRings = true
	}
	var esi EdgeSetIntersector
	esi.ComputeIntersections(gg.edges, si, computeRingSelfNodes || !isRings)
	gg.addSelfIntersectionNodes()
	return si
}

// ComputeEdgeIntersections nodes the edges of gg with those of other.
func (gg *GeometryGraph) ComputeEdgeIntersections(other *GeometryGraph, li *planar.LineIntersector, includeProper bool) *SegmentIntersector {
	si := NewSegmentIntersector(li, includeProper, true)
	si.SetBoundaryNodes(gg.BoundaryNodes(), other.BoundaryNodes())
	var esi EdgeSetIntersector
	esi.ComputeIntersectionsBetween(gg.edges, other.edges, si)
	return si
}

func (gg *GeometryGraph) addSelfIntersectionNodes() {
	for _, e := range gg.edges {
		loc := e.label.On(gg.argIndex)
		for _, ei := range e.eiList.Items() {
			gg.addSelfIntersectionNode(ei.Coord, loc)
		}
	}
}

// addSelfIntersectionNode adds a node for a self intersection, unless one
// is already in the boundary.
func (gg *GeometryGraph) addSelfIntersectionNode(c planar.Coord, loc planar.Location) {
	if gg.IsBoundaryNode(gg.argIndex, c) {
		return
	}
	if loc == planar.Boundary && gg.useBoundaryDeterminationRule {
		gg.insertBoundaryPoint(c)
	} else {
		gg.insertPoint(c, loc)
	}
}

// ComputeSplitEdges appends to out the edges of the graph split at their
// intersections.
func (gg *GeometryGraph) ComputeSplitEdges(out *[]*Edge) {
	for _, e := range gg.edges {
		*out = e.eiList.AddSplitEdges(e, *out)
	}
}
