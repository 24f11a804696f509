package geomgraph

import (
	"github.com/davidreynolds/gotopo/planar"
)

// SegmentIntersector computes the intersection of pairs of edge segments
// and records the non-trivial ones in the intersection lists of the edges.
type SegmentIntersector struct {
	li             *planar.LineIntersector
	includeProper  bool
	recordIsolated bool

	hasIntersection   bool
	hasProper         bool
	hasProperInterior bool
	properPoint       planar.Coord

	numIntersections int
	numTests         int

	bdyNodes    [2][]*Node
	hasBdyNodes bool

	isDone              bool
	isDoneWhenProperInt bool
}

// NewSegmentIntersector returns an intersector using li. Proper
// intersections are only recorded when includeProper is set; recordIsolated
// clears the isolated flag of intersecting edges.
func NewSegmentIntersector(li *planar.LineIntersector, includeProper, recordIsolated bool) *SegmentIntersector {
	return &SegmentIntersector{li: li, includeProper: includeProper, recordIsolated: recordIsolated}
}

// SetBoundaryNodes sets the boundary nodes of the two geometries, used to
// tell proper interior intersections apart.
func (si *SegmentIntersector) SetBoundaryNodes(bdyNodes0, bdyNodes1 []*Node) {
	si.bdyNodes = [2][]*Node{bdyNodes0, bdyNodes1}
	si.hasBdyNodes = true
}

// SetIsDoneIfProperInt stops the computation at the first proper
// intersection.
func (si *SegmentIntersector) SetIsDoneIfProperInt(b bool) { si.isDoneWhenProperInt = b }

func (si *SegmentIntersector) IsDone() bool { return si.isDone }

// ProperIntersectionPoint returns the last proper intersection found.
func (si *SegmentIntersector) ProperIntersectionPoint() planar.Coord { return si.properPoint }

func (si *SegmentIntersector) HasIntersection() bool { return si.hasIntersection }

// HasProperIntersection reports whether a proper intersection was found.
func (si *SegmentIntersector) HasProperIntersection() bool { return si.hasProper }

// HasProperInteriorIntersection reports whether a proper intersection was
// found that is not a boundary node of either geometry.
func (si *SegmentIntersector) HasProperInteriorIntersection() bool { return si.hasProperInterior }

func (si *SegmentIntersector) NumTests() int         { return si.numTests }
func (si *SegmentIntersector) NumIntersections() int { return si.numIntersections }

func isAdjacentSegments(i1, i2 int) bool {
	return i1-i2 == 1 || i2-i1 == 1
}

// isTrivialIntersection reports whether an intersection of an edge with
// itself is only the vertex shared by consecutive segments.
func (si *SegmentIntersector) isTrivialIntersection(e0 *Edge, segIndex0 int, e1 *Edge, segIndex1 int) bool {
	if e0 != e1 || si.li.IntersectionNum() != 1 {
		return false
	}
	if isAdjacentSegments(segIndex0, segIndex1) {
		return true
	}
	if e0.IsClosed() {
		maxSegIndex := e0.NumPoints() - 2
		if (segIndex0 == 0 && segIndex1 == maxSegIndex) || (segIndex1 == 0 && segIndex0 == maxSegIndex) {
			return true
		}
	}
	return false
}

// AddIntersections intersects segment segIndex0 of e0 with segment
// segIndex1 of e1.
func (si *SegmentIntersector) AddIntersections(e0 *Edge, segIndex0 int, e1 *Edge, segIndex1 int) {
	if e0 == e1 && segIndex0 == segIndex1 {
		return
	}
	si.numTests++
	p00, p01 := e0.pts[segIndex0], e0.pts[segIndex0+1]
	p10, p11 := e1.pts[segIndex1], e1.pts[segIndex1+1]

	si.li.Compute(p00, p01, p10, p11)
	if !si.li.HasIntersection() {
		return
	}
	if si.recordIsolated {
		e0.SetIsolated(false)
		e1.SetIsolated(false)
	}
	si.numIntersections++
	if si.isTrivialIntersection(e0, segIndex0, e1, segIndex1) {
		return
	}

	si.hasIntersection = true
	if si.includeProper || !si.li.IsProper() {
		e0.AddIntersections(si.li, segIndex0, 0)
		e1.AddIntersections(si.li, segIndex1, 1)
	}
	if si.li.IsProper() {
		si.properPoint = si.li.Intersection(0)
		si.hasProper = true
		if si.isDoneWhenProperInt {
			si.isDone = true
		}
		if !si.isBoundaryPoint() {
			si.hasProperInterior = true
		}
	}
}

func (si *SegmentIntersector) isBoundaryPoint() bool {
	if !si.hasBdyNodes {
		return false
	}
	for _, nodes := range si.bdyNodes {
		for _, n := range nodes {
			if si.li.IsIntersection(n.Coord()) {
				return true
			}
		}
	}
	return false
}
