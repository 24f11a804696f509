package geomgraph

import (
	"github.com/cockroachdb/errors"

	"github.com/davidreynolds/gotopo/planar"
)

// DirectedEdgeStar is the star of directed edges leaving a node of a
// PlanarGraph. Methods that follow links take the owning graph.
type DirectedEdgeStar struct {
	EdgeEndStar
	label          Label
	resultAreaList []*DirectedEdge
	resultAreaSet  bool
}

func NewDirectedEdgeStar() *DirectedEdgeStar {
	return &DirectedEdgeStar{EdgeEndStar: NewEdgeEndStar(), label: NewLineLabel(planar.None)}
}

// Insert adds a directed edge to the star.
func (s *DirectedEdgeStar) Insert(ee EdgeEnder) {
	s.InsertEdgeEnd(ee.(*DirectedEdge))
	s.resultAreaSet = false
}

// Label returns the label computed by ComputeLabelling.
func (s *DirectedEdgeStar) Label() Label { return s.label }

// Edges returns the directed edges in counter-clockwise order.
func (s *DirectedEdgeStar) Edges() []*DirectedEdge {
	ends := s.Ends()
	out := make([]*DirectedEdge, len(ends))
	for i, ee := range ends {
		out[i] = ee.(*DirectedEdge)
	}
	return out
}

// OutgoingDegree returns the number of edges in the result.
func (s *DirectedEdgeStar) OutgoingDegree() int {
	n := 0
	for _, de := range s.Edges() {
		if de.inResult {
			n++
		}
	}
	return n
}

// OutgoingDegreeInRing returns the number of edges belonging to ring.
func (s *DirectedEdgeStar) OutgoingDegreeInRing(ring RingID) int {
	n := 0
	for _, de := range s.Edges() {
		if de.edgeRing == ring {
			n++
		}
	}
	return n
}

// RightmostEdge returns the edge whose direction is rightmost, assuming the
// node is the rightmost point of the edges. It returns nil for an empty
// star.
func (s *DirectedEdgeStar) RightmostEdge() *DirectedEdge {
	edges := s.Edges()
	if len(edges) == 0 {
		return nil
	}
	de0 := edges[0]
	if len(edges) == 1 {
		return de0
	}
	deLast := edges[len(edges)-1]
	quad0, quad1 := de0.Quadrant(), deLast.Quadrant()
	switch {
	case IsNorthern(quad0) && IsNorthern(quad1):
		return de0
	case !IsNorthern(quad0) && !IsNorthern(quad1):
		return deLast
	case de0.Dy() != 0:
		return de0
	case deLast.Dy() != 0:
		return deLast
	}
	panic(errors.AssertionFailedf("found two horizontal edges incident on node"))
}

// ComputeLabelling labels the edges of the star, then sets the label of the
// star: Interior for each geometry that has an edge on or in it.
func (s *DirectedEdgeStar) ComputeLabelling(graphs [2]*GeometryGraph) error {
	if err := s.EdgeEndStar.ComputeLabelling(graphs); err != nil {
		return err
	}
	s.label = NewLineLabel(planar.None)
	for _, de := range s.Edges() {
		elbl := de.Edge().Label()
		for i := 0; i < 2; i++ {
			if loc := elbl.On(i); loc == planar.Interior || loc == planar.Boundary {
				s.label.SetOn(i, planar.Interior)
			}
		}
	}
	return nil
}

// MergeSymLabels merges the label of each edge's sym into the edge's own.
func (s *DirectedEdgeStar) MergeSymLabels(g *PlanarGraph) {
	for _, de := range s.Edges() {
		de.label.Merge(g.DirEdge(de.sym).label)
	}
}

// UpdateLabelling fills the null locations of each edge from the node label.
func (s *DirectedEdgeStar) UpdateLabelling(nodeLabel Label) {
	for _, de := range s.Edges() {
		de.label.SetAllLocationsIfNull(0, nodeLabel.On(0))
		de.label.SetAllLocationsIfNull(1, nodeLabel.On(1))
	}
}

func (s *DirectedEdgeStar) resultAreaEdges(g *PlanarGraph) []*DirectedEdge {
	if s.resultAreaSet {
		return s.resultAreaList
	}
	s.resultAreaList = s.resultAreaList[:0]
	for _, de := range s.Edges() {
		if de.inResult || g.DirEdge(de.sym).inResult {
			s.resultAreaList = append(s.resultAreaList, de)
		}
	}
	s.resultAreaSet = true
	return s.resultAreaList
}

// LinkResultDirectedEdges links each incoming result edge to the next
// outgoing result edge counter-clockwise. The star must have been labeled
// and the result edges marked.
func (s *DirectedEdgeStar) LinkResultDirectedEdges(g *PlanarGraph) error {
	var firstOut, incoming *DirectedEdge
	linking := false
	for _, nextOut := range s.resultAreaEdges(g) {
		nextIn := g.DirEdge(nextOut.sym)
		if !nextOut.label.IsArea() {
			continue
		}
		if firstOut == nil && nextOut.inResult {
			firstOut = nextOut
		}
		if !linking {
			if !nextIn.inResult {
				continue
			}
			incoming = nextIn
			linking = true
		} else {
			if !nextOut.inResult {
				continue
			}
			incoming.next = nextOut.id
			linking = false
		}
	}
	if linking {
		if firstOut == nil {
			c, _ := s.Coord()
			return NewTopologyError(c, "no outgoing dirEdge found")
		}
		incoming.next = firstOut.id
	}
	return nil
}

// LinkMinimalDirectedEdges links the edges of the maximal ring er into
// minimal rings, scanning clockwise.
func (s *DirectedEdgeStar) LinkMinimalDirectedEdges(g *PlanarGraph, er RingID) {
	var firstOut, incoming *DirectedEdge
	linking := false
	edges := s.resultAreaEdges(g)
	for i := len(edges) - 1; i >= 0; i-- {
		nextOut := edges[i]
		nextIn := g.DirEdge(nextOut.sym)
		if firstOut == nil && nextOut.edgeRing == er {
			firstOut = nextOut
		}
		if !linking {
			if nextIn.edgeRing != er {
				continue
			}
			incoming = nextIn
			linking = true
		} else {
			if nextOut.edgeRing != er {
				continue
			}
			incoming.nextMin = nextOut.id
			linking = false
		}
	}
	if linking {
		if firstOut == nil {
			panic(errors.AssertionFailedf("found null for first outgoing dirEdge"))
		}
		incoming.nextMin = firstOut.id
	}
}

// LinkAllDirectedEdges links every incoming edge to the next outgoing edge
// clockwise.
func (s *DirectedEdgeStar) LinkAllDirectedEdges(g *PlanarGraph) {
	edges := s.Edges()
	var prevOut, firstIn *DirectedEdge
	for i := len(edges) - 1; i >= 0; i-- {
		nextOut := edges[i]
		nextIn := g.DirEdge(nextOut.sym)
		if firstIn == nil {
			firstIn = nextIn
		}
		if prevOut != nil {
			nextIn.next = prevOut.id
		}
		prevOut = nextOut
	}
	if firstIn != nil {
		firstIn.next = prevOut.id
	}
}

// FindCoveredLineEdges marks each line edge of the star as covered if it
// lies inside the result area.
func (s *DirectedEdgeStar) FindCoveredLineEdges(g *PlanarGraph) {
	startLoc := planar.None
	for _, nextOut := range s.Edges() {
		nextIn := g.DirEdge(nextOut.sym)
		if nextOut.IsLineEdge() {
			continue
		}
		if nextOut.inResult {
			startLoc = planar.Interior
			break
		}
		if nextIn.inResult {
			startLoc = planar.Exterior
			break
		}
	}
	if startLoc == planar.None {
		return
	}

	currLoc := startLoc
	for _, nextOut := range s.Edges() {
		nextIn := g.DirEdge(nextOut.sym)
		if nextOut.IsLineEdge() {
			nextOut.Edge().SetCovered(currLoc == planar.Interior)
			continue
		}
		if nextOut.inResult {
			currLoc = planar.Exterior
		}
		if nextIn.inResult {
			currLoc = planar.Interior
		}
	}
}

// ComputeDepths assigns depths to every edge of the star, starting from the
// depths of de and walking counter-clockwise.
func (s *DirectedEdgeStar) ComputeDepths(de *DirectedEdge) error {
	edgeIndex := s.FindIndex(de)
	startDepth := de.Depth(planar.Left)
	targetLastDepth := de.Depth(planar.Right)
	nextDepth, err := s.computeDepths(edgeIndex+1, s.Degree(), startDepth)
	if err != nil {
		return err
	}
	lastDepth, err := s.computeDepths(0, edgeIndex, nextDepth)
	if err != nil {
		return err
	}
	if lastDepth != targetLastDepth {
		return NewTopologyError(de.Coord(), "depth mismatch")
	}
	return nil
}

func (s *DirectedEdgeStar) computeDepths(start, end, startDepth int) (int, error) {
	edges := s.Edges()
	currDepth := startDepth
	for i := start; i < end; i++ {
		if err := edges[i].SetEdgeDepths(planar.Right, currDepth); err != nil {
			return 0, err
		}
		currDepth = edges[i].Depth(planar.Left)
	}
	return currDepth, nil
}
