package relate

import "github.com/davidreynolds/gotopo/geomgraph"

// EdgeEndBuilder creates the edge ends of edges that have been noded. Each
// intersection of an edge yields an end pointing back along the edge and one
// pointing forward, so every split piece is represented at both of its
// nodes without building the split edges.
type EdgeEndBuilder struct {
	ends []*geomgraph.EdgeEnd
}

// Add appends the edge ends of e. The endpoints of e are added to its
// intersection list.
func (b *EdgeEndBuilder) Add(e *geomgraph.Edge) {
	eiList := e.Intersections()
	eiList.AddEndpoints(e.Coords())
	items := eiList.Items()
	for i, cur := range items {
		var prev, next *geomgraph.EdgeIntersection
		if i > 0 {
			prev = items[i-1]
		}
		if i+1 < len(items) {
			next = items[i+1]
		}
		b.addEndForPrev(e, cur, prev)
		b.addEndForNext(e, cur, next)
	}
}

// AddAll appends the edge ends of every edge.
func (b *EdgeEndBuilder) AddAll(edges []*geomgraph.Edge) {
	for _, e := range edges {
		b.Add(e)
	}
}

// Ends returns the edge ends built so far.
func (b *EdgeEndBuilder) Ends() []*geomgraph.EdgeEnd { return b.ends }

// addEndForPrev adds the end at cur pointing to the previous vertex or
// intersection. Nothing is added at the start of the edge.
func (b *EdgeEndBuilder) addEndForPrev(e *geomgraph.Edge, cur, prev *geomgraph.EdgeIntersection) {
	iPrev := cur.SegmentIndex
	if cur.Dist == 0 {
		if iPrev == 0 {
			return
		}
		iPrev--
	}
	pPrev := e.Coord(iPrev)
	if prev != nil && prev.SegmentIndex >= iPrev {
		pPrev = prev.Coord
	}
	if pPrev.Equals2D(cur.Coord) {
		return
	}
	lbl := *e.Label()
	lbl.Flip()
	b.ends = append(b.ends, geomgraph.NewEdgeEnd(e, cur.Coord, pPrev, lbl))
}

// addEndForNext adds the end at cur pointing to the next vertex or
// intersection. Nothing is added at the end of the edge.
func (b *EdgeEndBuilder) addEndForNext(e *geomgraph.Edge, cur, next *geomgraph.EdgeIntersection) {
	iNext := cur.SegmentIndex + 1
	if iNext >= e.NumPoints() {
		return
	}
	pNext := e.Coord(iNext)
	if next != nil && next.SegmentIndex == cur.SegmentIndex {
		pNext = next.Coord
	}
	if pNext.Equals2D(cur.Coord) {
		return
	}
	b.ends = append(b.ends, geomgraph.NewEdgeEnd(e, cur.Coord, pNext, *e.Label()))
}
