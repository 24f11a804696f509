package geomgraph

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/google/btree"

	"github.com/davidreynolds/gotopo/planar"
)

// EdgeID identifies an edge in a PlanarGraph.
type EdgeID int

// Edge is a labeled polyline of a topology graph.
type Edge struct {
	pts        []planar.Coord
	env        r2.Rect
	envSet     bool
	label      Label
	name       string
	eiList     EdgeIntersectionList
	isolated   bool
	depth      Depth
	depthDelta int

	inResult   bool
	covered    bool
	coveredSet bool
	visited    bool
}

// NewEdge returns an edge over pts, which must be non-empty.
func NewEdge(pts []planar.Coord, label Label) *Edge {
	return &Edge{
		pts:      pts,
		label:    label,
		eiList:   newEdgeIntersectionList(),
		isolated: true,
		depth:    NewDepth(),
	}
}

func (e *Edge) Coords() []planar.Coord               { return e.pts }
func (e *Edge) NumPoints() int                       { return len(e.pts) }
func (e *Edge) Coord(i int) planar.Coord             { return e.pts[i] }
func (e *Edge) Label() *Label                        { return &e.label }
func (e *Edge) Depth() *Depth                        { return &e.depth }
func (e *Edge) DepthDelta() int                      { return e.depthDelta }
func (e *Edge) SetDepthDelta(d int)                  { e.depthDelta = d }
func (e *Edge) MaximumSegmentIndex() int             { return len(e.pts) - 1 }
func (e *Edge) IsIsolated() bool                     { return e.isolated }
func (e *Edge) SetIsolated(b bool)                   { e.isolated = b }
func (e *Edge) SetName(name string)                  { e.name = name }
func (e *Edge) IsInResult() bool                     { return e.inResult }
func (e *Edge) SetInResult(b bool)                   { e.inResult = b }
func (e *Edge) IsVisited() bool                      { return e.visited }
func (e *Edge) SetVisited(b bool)                    { e.visited = b }
func (e *Edge) IsCovered() bool                      { return e.covered }
func (e *Edge) IsCoveredSet() bool                   { return e.coveredSet }
func (e *Edge) IsClosed() bool                       { return e.pts[0].Equals2D(e.pts[len(e.pts)-1]) }
func (e *Edge) Intersections() *EdgeIntersectionList { return &e.eiList }

func (e *Edge) SetCovered(b bool) {
	e.covered = b
	e.coveredSet = true
}

// Envelope returns the bounding box of the edge.
func (e *Edge) Envelope() r2.Rect {
	if !e.envSet {
		e.env = planar.Envelope(e.pts)
		e.envSet = true
	}
	return e.env
}

// IsCollapsed reports whether an areal edge has collapsed to a line going
// out and back.
func (e *Edge) IsCollapsed() bool {
	return e.label.IsArea() && len(e.pts) == 3 && e.pts[0].Equals2D(e.pts[2])
}

// CollapsedEdge returns the line edge that replaces a collapsed edge.
func (e *Edge) CollapsedEdge() *Edge {
	return NewEdge([]planar.Coord{e.pts[0], e.pts[1]}, e.label.ToLine())
}

// AddIntersections records every intersection computed by li for the
// segment starting at segmentIndex, which is input geomIndex of li.
func (e *Edge) AddIntersections(li *planar.LineIntersector, segmentIndex, geomIndex int) {
	for i := 0; i < li.IntersectionNum(); i++ {
		e.AddIntersection(li, segmentIndex, geomIndex, i)
	}
}

// AddIntersection records intersection intIndex of li. An intersection on the
// vertex ending the segment is attributed to the next segment.
func (e *Edge) AddIntersection(li *planar.LineIntersector, segmentIndex, geomIndex, intIndex int) {
	intPt := li.Intersection(intIndex)
	normalizedSegmentIndex := segmentIndex
	dist := li.EdgeDistance(geomIndex, intIndex)

	if next := normalizedSegmentIndex + 1; next < len(e.pts) {
		if intPt.Equals2D(e.pts[next]) {
			normalizedSegmentIndex = next
			dist = 0
		}
	}
	e.eiList.Add(intPt, normalizedSegmentIndex, dist)
}

// ComputeIM updates im with the contribution of the edge.
func (e *Edge) ComputeIM(im *planar.IntersectionMatrix) {
	UpdateIM(e.label, im)
}

// UpdateIM updates im for a component labeled lbl: the On locations meet
// in a line, and for areal labels the sides meet in an area.
func UpdateIM(lbl Label, im *planar.IntersectionMatrix) {
	im.SetAtLeastIfValid(lbl.On(0), lbl.On(1), planar.DimCurve)
	if lbl.IsArea() {
		im.SetAtLeastIfValid(lbl.Location(0, planar.Left), lbl.Location(1, planar.Left), planar.DimSurface)
		im.SetAtLeastIfValid(lbl.Location(0, planar.Right), lbl.Location(1, planar.Right), planar.DimSurface)
	}
}

// Equals reports whether e and o have the same points, in the same or in
// the opposite order.
func (e *Edge) Equals(o *Edge) bool {
	if len(e.pts) != len(o.pts) {
		return false
	}
	forward, reverse := true, true
	n := len(e.pts)
	for i := range e.pts {
		if !e.pts[i].Equals2D(o.pts[i]) {
			forward = false
		}
		if !e.pts[i].Equals2D(o.pts[n-1-i]) {
			reverse = false
		}
		if !forward && !reverse {
			return false
		}
	}
	return true
}

// IsPointwiseEqual reports whether e and o have the same points in the same
// order.
func (e *Edge) IsPointwiseEqual(o *Edge) bool {
	if len(e.pts) != len(o.pts) {
		return false
	}
	for i := range e.pts {
		if !e.pts[i].Equals2D(o.pts[i]) {
			return false
		}
	}
	return true
}

func (e *Edge) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "edge %s: LINESTRING (", e.name)
	for i, p := range e.pts {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%g %g", p.X, p.Y)
	}
	fmt.Fprintf(&b, ")  %v %d", e.label, e.depthDelta)
	return b.String()
}

// orientedCoords keys an edge by its points in a canonical direction, so
// that an edge and its reverse compare equal.
type orientedCoords struct {
	pts         []planar.Coord
	orientation bool
	id          EdgeID
}

func newOrientedCoords(pts []planar.Coord, id EdgeID) *orientedCoords {
	return &orientedCoords{pts: pts, orientation: increasingDirection(pts), id: id}
}

// increasingDirection reports whether pts read forward is not greater than
// pts read backward.
func increasingDirection(pts []planar.Coord) bool {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		if c := pts[i].Compare(pts[j]); c != 0 {
			return c < 0
		}
	}
	return true
}

func (oc *orientedCoords) at(i int) planar.Coord {
	if oc.orientation {
		return oc.pts[i]
	}
	return oc.pts[len(oc.pts)-1-i]
}

func (oc *orientedCoords) Less(than btree.Item) bool {
	o := than.(*orientedCoords)
	for i := 0; i < len(oc.pts) && i < len(o.pts); i++ {
		if c := oc.at(i).Compare(o.at(i)); c != 0 {
			return c < 0
		}
	}
	return len(oc.pts) < len(o.pts)
}

// EdgeList is a list of edges with lookup of edges equal up to direction.
type EdgeList struct {
	edges []*Edge
	index *btree.BTree
}

func NewEdgeList() *EdgeList {
	return &EdgeList{index: btree.New(8)}
}

// Add appends e and returns its position in the list.
func (l *EdgeList) Add(e *Edge) EdgeID {
	id := EdgeID(len(l.edges))
	l.edges = append(l.edges, e)
	l.index.ReplaceOrInsert(newOrientedCoords(e.pts, id))
	return id
}

func (l *EdgeList) AddAll(edges []*Edge) {
	for _, e := range edges {
		l.Add(e)
	}
}

func (l *EdgeList) Edges() []*Edge      { return l.edges }
func (l *EdgeList) Len() int            { return len(l.edges) }
func (l *EdgeList) Get(id EdgeID) *Edge { return l.edges[id] }

// FindEqualEdge returns an edge in the list equal to e in either direction.
func (l *EdgeList) FindEqualEdge(e *Edge) (*Edge, bool) {
	found := l.index.Get(newOrientedCoords(e.pts, -1))
	if found == nil {
		return nil, false
	}
	return l.edges[found.(*orientedCoords).id], true
}

// FindEdgeIndex returns the position of e in the list, or -1.
func (l *EdgeList) FindEdgeIndex(e *Edge) int {
	for i, le := range l.edges {
		if le == e {
			return i
		}
	}
	return -1
}
