package geomgraph

import (
	"fmt"
	"math"

	"github.com/google/btree"

	"github.com/davidreynolds/gotopo/planar"
)

// NodeID identifies a node in a NodeMap.
type NodeID int

// NoNode is the id of a missing node.
const NoNode NodeID = -1

// Node is a point of a topology graph where edges meet, together with the
// star of edge ends leaving it.
type Node struct {
	id    NodeID
	coord planar.Coord
	label Label
	star  Star

	// Number of line endpoints of each geometry at the node.
	boundaryCount [2]int

	zSum   float64
	zCount int
}

// NewNode returns a node at c whose edge ends are kept in star.
func NewNode(id NodeID, c planar.Coord, star Star) *Node {
	n := &Node{id: id, coord: c, star: star, label: NewArgLineLabel(0, planar.None)}
	n.AddZ(c.Z)
	return n
}

func (n *Node) ID() NodeID       { return n.id }
func (n *Node) Label() *Label    { return &n.label }
func (n *Node) Star() Star       { return n.star }
func (n *Node) SetLabel(l Label) { n.label = l }

// Coord returns the location of the node. Its z is the average z of the
// coordinates merged into the node, or NaN if none had one.
func (n *Node) Coord() planar.Coord {
	c := n.coord
	if n.zCount > 0 {
		c.Z = n.zSum / float64(n.zCount)
	}
	return c
}

// AddZ records the z of a coordinate merged into the node.
func (n *Node) AddZ(z float64) {
	if math.IsNaN(z) {
		return
	}
	n.zSum += z
	n.zCount++
}

// DirectedEdgeStar returns the star of a node of a graph holding directed
// edges.
func (n *Node) DirectedEdgeStar() *DirectedEdgeStar {
	return n.star.(*DirectedEdgeStar)
}

// Add inserts ee into the star of the node.
func (n *Node) Add(ee EdgeEnder) {
	n.star.Insert(ee)
	ee.End().SetNode(n.id)
}

// IsIsolated reports whether only one geometry labels the node.
func (n *Node) IsIsolated() bool { return n.label.GeometryCount() == 1 }

// IsIncidentEdgeInResult reports whether some edge at the node is in the
// result.
func (n *Node) IsIncidentEdgeInResult() bool {
	for _, ee := range n.star.Ends() {
		if ee.End().Edge().IsInResult() {
			return true
		}
	}
	return false
}

// SetOn sets the location of the node for geometry argIndex.
func (n *Node) SetOn(argIndex int, loc planar.Location) {
	n.label.SetOn(argIndex, loc)
}

// AddBoundaryEndpoint counts one more line endpoint of geometry argIndex at
// the node and relabels it using rule.
func (n *Node) AddBoundaryEndpoint(argIndex int, rule planar.BoundaryNodeRule) {
	n.boundaryCount[argIndex]++
	loc := planar.Interior
	if rule.IsInBoundary(n.boundaryCount[argIndex]) {
		loc = planar.Boundary
	}
	n.label.SetOn(argIndex, loc)
}

// BoundaryCount returns the number of line endpoints of geometry argIndex
// at the node.
func (n *Node) BoundaryCount(argIndex int) int { return n.boundaryCount[argIndex] }

// MergeLabel sets the null locations of the node from lbl. A Boundary
// location is never overwritten.
func (n *Node) MergeLabel(lbl Label) {
	for i := 0; i < 2; i++ {
		loc := n.computeMergedLocation(lbl, i)
		if n.label.On(i) == planar.None {
			n.label.SetOn(i, loc)
		}
	}
}

func (n *Node) computeMergedLocation(lbl Label, i int) planar.Location {
	loc := n.label.On(i)
	if !lbl.IsNull(i) {
		if nLoc := lbl.On(i); loc != planar.Boundary {
			loc = nLoc
		}
	}
	return loc
}

func (n *Node) String() string {
	return fmt.Sprintf("node %v lbl: %v", n.Coord(), n.label)
}

// nodeItem indexes a node by its coordinate.
type nodeItem struct {
	c  planar.Coord
	id NodeID
}

func (it nodeItem) Less(than btree.Item) bool {
	return it.c.Compare(than.(nodeItem).c) < 0
}

// NodeFactory creates the node at c with the given id.
type NodeFactory func(id NodeID, c planar.Coord) *Node

// NewDirectedEdgeNode is the factory for nodes of graphs holding directed
// edges.
func NewDirectedEdgeNode(id NodeID, c planar.Coord) *Node {
	return NewNode(id, c, NewDirectedEdgeStar())
}

// NodeMap holds the nodes of a graph, indexed by coordinate.
type NodeMap struct {
	nodes   []*Node
	index   *btree.BTree
	factory NodeFactory
}

func NewNodeMap(factory NodeFactory) *NodeMap {
	return &NodeMap{index: btree.New(16), factory: factory}
}

// AddNode returns the node at c, creating it if needed. The z of c is
// merged into the node.
func (m *NodeMap) AddNode(c planar.Coord) *Node {
	if found := m.index.Get(nodeItem{c: c}); found != nil {
		n := m.nodes[found.(nodeItem).id]
		n.AddZ(c.Z)
		return n
	}
	id := NodeID(len(m.nodes))
	n := m.factory(id, c)
	m.nodes = append(m.nodes, n)
	m.index.ReplaceOrInsert(nodeItem{c: c, id: id})
	return n
}

// MergeNode adds a node at the location of o, merging the label of o into an
// existing node.
func (m *NodeMap) MergeNode(o *Node) *Node {
	n := m.AddNode(o.Coord())
	n.MergeLabel(o.label)
	return n
}

// AddEnd adds ee to the node at its origin.
func (m *NodeMap) AddEnd(ee EdgeEnder) {
	m.AddNode(ee.End().Coord()).Add(ee)
}

// Find returns the node at c.
func (m *NodeMap) Find(c planar.Coord) (*Node, bool) {
	found := m.index.Get(nodeItem{c: c})
	if found == nil {
		return nil, false
	}
	return m.nodes[found.(nodeItem).id], true
}

// Get returns the node with the given id.
func (m *NodeMap) Get(id NodeID) *Node { return m.nodes[id] }

func (m *NodeMap) Len() int { return len(m.nodes) }

// Nodes returns the nodes in coordinate order.
func (m *NodeMap) Nodes() []*Node {
	out := make([]*Node, 0, len(m.nodes))
	m.index.Ascend(func(i btree.Item) bool {
		out = append(out, m.nodes[i.(nodeItem).id])
		return true
	})
	return out
}

// BoundaryNodes returns the nodes in the boundary of geometry geomIndex.
func (m *NodeMap) BoundaryNodes(geomIndex int) []*Node {
	var out []*Node
	for _, n := range m.Nodes() {
		if n.label.On(geomIndex) == planar.Boundary {
			out = append(out, n)
		}
	}
	return out
}
