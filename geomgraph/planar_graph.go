// Package geomgraph implements the topology graph used to compute spatial
// relationships and overlays of planar geometries.
//
// A PlanarGraph owns its edges, directed edges, nodes and edge rings and
// hands out integer ids for them. Links between directed edges, and from
// directed edges to their node and rings, are ids resolved through the
// graph.
package geomgraph

import (
	"github.com/davidreynolds/gotopo/planar"
)

// PlanarGraph is a graph of edges and nodes, optionally with the directed
// edges of each edge.
type PlanarGraph struct {
	edges    []*Edge
	dirEdges []*DirectedEdge
	nodes    *NodeMap
	rings    []*EdgeRing
	// Edge ends added to nodes, in insertion order.
	ends []EdgeEnder
}

// NewPlanarGraph returns an empty graph creating nodes with factory.
func NewPlanarGraph(factory NodeFactory) *PlanarGraph {
	return &PlanarGraph{nodes: NewNodeMap(factory)}
}

func (g *PlanarGraph) Edges() []*Edge            { return g.edges }
func (g *PlanarGraph) Edge(id EdgeID) *Edge      { return g.edges[id] }
func (g *PlanarGraph) Nodes() *NodeMap           { return g.nodes }
func (g *PlanarGraph) Node(id NodeID) *Node      { return g.nodes.Get(id) }
func (g *PlanarGraph) EdgeEnds() []EdgeEnder     { return g.ends }
func (g *PlanarGraph) DirEdges() []*DirectedEdge { return g.dirEdges }
func (g *PlanarGraph) Ring(id RingID) *EdgeRing  { return g.rings[id] }

// DirEdge returns the directed edge with the given id, or nil for NoDirEdge.
func (g *PlanarGraph) DirEdge(id DirEdgeID) *DirectedEdge {
	if id == NoDirEdge {
		return nil
	}
	return g.dirEdges[id]
}

// NodeOf returns the node that de leaves from.
func (g *PlanarGraph) NodeOf(de *DirectedEdge) *Node { return g.nodes.Get(de.node) }

// SetVisitedEdge marks both directions of de.
func (g *PlanarGraph) SetVisitedEdge(de *DirectedEdge, b bool) {
	de.visited = b
	g.DirEdge(de.sym).visited = b
}

// IsBoundaryNode reports whether there is a node at c in the boundary of
// geometry geomIndex.
func (g *PlanarGraph) IsBoundaryNode(geomIndex int, c planar.Coord) bool {
	n, ok := g.nodes.Find(c)
	return ok && n.label.On(geomIndex) == planar.Boundary
}

// InsertEdge adds e without directed edges.
func (g *PlanarGraph) InsertEdge(e *Edge) EdgeID {
	g.edges = append(g.edges, e)
	return EdgeID(len(g.edges) - 1)
}

// AddEnd adds ee to the node at its origin.
func (g *PlanarGraph) AddEnd(ee EdgeEnder) {
	g.nodes.AddEnd(ee)
	g.ends = append(g.ends, ee)
}

// AddNode returns the node at c, creating it if needed.
func (g *PlanarGraph) AddNode(c planar.Coord) *Node { return g.nodes.AddNode(c) }

// Find returns the node at c.
func (g *PlanarGraph) Find(c planar.Coord) (*Node, bool) { return g.nodes.Find(c) }

// AddEdges adds each edge and its two directed edges.
func (g *PlanarGraph) AddEdges(edges []*Edge) {
	for _, e := range edges {
		g.edges = append(g.edges, e)
		id := DirEdgeID(len(g.dirEdges))
		de1 := newDirectedEdge(id, e, true)
		de2 := newDirectedEdge(id+1, e, false)
		de1.sym, de2.sym = de2.id, de1.id
		g.dirEdges = append(g.dirEdges, de1, de2)
		g.AddEnd(de1)
		g.AddEnd(de2)
	}
}

// addRing registers r and returns its id.
func (g *PlanarGraph) addRing(r *EdgeRing) RingID {
	r.id = RingID(len(g.rings))
	g.rings = append(g.rings, r)
	return r.id
}

// LinkResultDirectedEdges links the result edges at every node.
func (g *PlanarGraph) LinkResultDirectedEdges() error {
	for _, n := range g.nodes.Nodes() {
		if err := n.DirectedEdgeStar().LinkResultDirectedEdges(g); err != nil {
			return err
		}
	}
	return nil
}

// LinkAllDirectedEdges links every directed edge at every node.
func (g *PlanarGraph) LinkAllDirectedEdges() {
	for _, n := range g.nodes.Nodes() {
		n.DirectedEdgeStar().LinkAllDirectedEdges(g)
	}
}

// FindEdgeEnd returns the first edge end of e.
func (g *PlanarGraph) FindEdgeEnd(e *Edge) (EdgeEnder, bool) {
	for _, ee := range g.ends {
		if ee.End().Edge() == e {
			return ee, true
		}
	}
	return nil, false
}

// FindEdge returns the edge whose first segment is p0-p1.
func (g *PlanarGraph) FindEdge(p0, p1 planar.Coord) (*Edge, bool) {
	for _, e := range g.edges {
		if p0.Equals2D(e.pts[0]) && p1.Equals2D(e.pts[1]) {
			return e, true
		}
	}
	return nil, false
}

// FindEdgeInSameDirection returns the edge starting or ending with the
// segment p0-p1, in that direction.
func (g *PlanarGraph) FindEdgeInSameDirection(p0, p1 planar.Coord) (*Edge, bool) {
	for _, e := range g.edges {
		n := len(e.pts)
		if p0.Equals2D(e.pts[0]) && p1.Equals2D(e.pts[1]) {
			return e, true
		}
		if p0.Equals2D(e.pts[n-1]) && p1.Equals2D(e.pts[n-2]) {
			return e, true
		}
	}
	return nil, false
}
