package geomgraph

import (
	"fmt"

	"github.com/google/btree"

	"github.com/davidreynolds/gotopo/planar"
)

// EdgeIntersection is a point where an edge is intersected, located by the
// segment it lies on and its distance along that segment.
type EdgeIntersection struct {
	Coord        planar.Coord
	SegmentIndex int
	Dist         float64
}

// Compare orders intersections along the edge.
func (ei *EdgeIntersection) Compare(segmentIndex int, dist float64) int {
	switch {
	case ei.SegmentIndex < segmentIndex:
		return -1
	case ei.SegmentIndex > segmentIndex:
		return 1
	case ei.Dist < dist:
		return -1
	case ei.Dist > dist:
		return 1
	}
	return 0
}

// IsEndPoint reports whether ei is at either end of an edge whose last
// segment has index maxSegmentIndex.
func (ei *EdgeIntersection) IsEndPoint(maxSegmentIndex int) bool {
	return (ei.SegmentIndex == 0 && ei.Dist == 0) || ei.SegmentIndex == maxSegmentIndex
}

func (ei *EdgeIntersection) Less(than btree.Item) bool {
	o := than.(*EdgeIntersection)
	return ei.Compare(o.SegmentIndex, o.Dist) < 0
}

func (ei *EdgeIntersection) String() string {
	return fmt.Sprintf("%v seg # = %d dist = %g", ei.Coord, ei.SegmentIndex, ei.Dist)
}

// EdgeIntersectionList is the ordered set of intersections along an edge.
type EdgeIntersectionList struct {
	tree *btree.BTree
}

func newEdgeIntersectionList() EdgeIntersectionList {
	return EdgeIntersectionList{tree: btree.New(8)}
}

// Add inserts an intersection, returning the existing one if an intersection
// at the same position is already present.
func (l *EdgeIntersectionList) Add(c planar.Coord, segmentIndex int, dist float64) *EdgeIntersection {
	ei := &EdgeIntersection{Coord: c, SegmentIndex: segmentIndex, Dist: dist}
	if found := l.tree.Get(ei); found != nil {
		return found.(*EdgeIntersection)
	}
	l.tree.ReplaceOrInsert(ei)
	return ei
}

func (l *EdgeIntersectionList) Len() int { return l.tree.Len() }

// Items returns the intersections in order along the edge.
func (l *EdgeIntersectionList) Items() []*EdgeIntersection {
	out := make([]*EdgeIntersection, 0, l.tree.Len())
	l.tree.Ascend(func(i btree.Item) bool {
		out = append(out, i.(*EdgeIntersection))
		return true
	})
	return out
}

// IsIntersection reports whether pt is one of the intersections.
func (l *EdgeIntersectionList) IsIntersection(pt planar.Coord) bool {
	found := false
	l.tree.Ascend(func(i btree.Item) bool {
		found = i.(*EdgeIntersection).Coord.Equals2D(pt)
		return !found
	})
	return found
}

// AddEndpoints adds the first and last points of pts as intersections.
func (l *EdgeIntersectionList) AddEndpoints(pts []planar.Coord) {
	maxSegIndex := len(pts) - 1
	l.Add(pts[0], 0, 0)
	l.Add(pts[maxSegIndex], maxSegIndex, 0)
}

// AddSplitEdges adds the endpoints of e and appends to out the edges
// obtained by splitting e at each of its intersections, in order.
func (l *EdgeIntersectionList) AddSplitEdges(e *Edge, out []*Edge) []*Edge {
	l.AddEndpoints(e.pts)
	items := l.Items()
	for i := 1; i < len(items); i++ {
		out = append(out, l.createSplitEdge(e, items[i-1], items[i]))
	}
	return out
}

// createSplitEdge returns the part of e between ei0 and ei1. The last point
// is omitted when ei1 lies on the vertex that starts its segment.
func (l *EdgeIntersectionList) createSplitEdge(e *Edge, ei0, ei1 *EdgeIntersection) *Edge {
	lastSegStartPt := e.pts[ei1.SegmentIndex]
	useIntPt1 := ei1.Dist > 0 || !ei1.Coord.Equals2D(lastSegStartPt)

	pts := make([]planar.Coord, 0, ei1.SegmentIndex-ei0.SegmentIndex+2)
	pts = append(pts, ei0.Coord)
	pts = append(pts, e.pts[ei0.SegmentIndex+1:ei1.SegmentIndex+1]...)
	if useIntPt1 {
		pts = append(pts, ei1.Coord)
	}
	return NewEdge(pts, e.label)
}
