package geomgraph

import (
	"github.com/golang/glog"

	"github.com/davidreynolds/gotopo/edgeindex"
	"github.com/davidreynolds/gotopo/planar"
)

type segmentRef struct {
	edge, seg int
}

// edgeSegments presents the segments of a set of edges to the edge index.
type edgeSegments struct {
	edges []*Edge
	refs  []segmentRef
}

func newEdgeSegments(edges []*Edge) *edgeSegments {
	s := &edgeSegments{edges: edges}
	for i, e := range edges {
		for j := 0; j < len(e.pts)-1; j++ {
			s.refs = append(s.refs, segmentRef{i, j})
		}
	}
	return s
}

func (s *edgeSegments) NumEdges() int { return len(s.refs) }

func (s *edgeSegments) Edge(i int) (planar.Coord, planar.Coord) {
	r := s.refs[i]
	pts := s.edges[r.edge].pts
	return pts[r.seg], pts[r.seg+1]
}

// EdgeSetIntersector finds the pairs of segments whose envelopes intersect
// and hands them to a SegmentIntersector.
type EdgeSetIntersector struct {
	numCandidates int
}

// ComputeIntersections intersects the edges with each other. Segments of the
// same edge are tested against each other only when testAllSegments is set.
func (esi *EdgeSetIntersector) ComputeIntersections(edges []*Edge, si *SegmentIntersector, testAllSegments bool) {
	segs := newEdgeSegments(edges)
	idx := edgeindex.New(segs)
	idx.PredictAdditionalCalls(segs.NumEdges())
	it := edgeindex.NewIterator(idx)
	for i, r0 := range segs.refs {
		a, b := segs.Edge(i)
		for it.GetCandidates(a, b); !it.Done(); it.Next() {
			j := it.Index()
			if j <= i {
				continue
			}
			r1 := segs.refs[j]
			if !testAllSegments && r0.edge == r1.edge {
				continue
			}
			esi.numCandidates++
			si.AddIntersections(edges[r0.edge], r0.seg, edges[r1.edge], r1.seg)
			if si.IsDone() {
				return
			}
		}
	}
	if glog.V(3) {
		glog.Infof("self intersection of %d segments: %d candidate pairs, %d intersections",
			segs.NumEdges(), esi.numCandidates, si.NumIntersections())
	}
}

// ComputeIntersectionsBetween intersects every edge of edges0 with every
// edge of edges1.
func (esi *EdgeSetIntersector) ComputeIntersectionsBetween(edges0, edges1 []*Edge, si *SegmentIntersector) {
	segs1 := newEdgeSegments(edges1)
	idx := edgeindex.New(segs1)
	n0 := 0
	for _, e := range edges0 {
		n0 += len(e.pts) - 1
	}
	idx.PredictAdditionalCalls(n0)
	it := edgeindex.NewIterator(idx)
	for _, e0 := range edges0 {
		for s := 0; s < len(e0.pts)-1; s++ {
			for it.GetCandidates(e0.pts[s], e0.pts[s+1]); !it.Done(); it.Next() {
				r1 := segs1.refs[it.Index()]
				esi.numCandidates++
				si.AddIntersections(e0, s, edges1[r1.edge], r1.seg)
				if si.IsDone() {
					return
				}
			}
		}
	}
	if glog.V(3) {
		glog.Infof("intersection of %d and %d segments: %d candidate pairs, %d intersections",
			n0, segs1.NumEdges(), esi.numCandidates, si.NumIntersections())
	}
}
