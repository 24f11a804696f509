package geomgraph

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/btree"

	"github.com/davidreynolds/gotopo/planar"
)

// Star is the set of edge ends around a node.
type Star interface {
	// Insert adds an edge end to the star.
	Insert(ee EdgeEnder)
	// Ends returns the edge ends in counter-clockwise order.
	Ends() []EdgeEnder
	Degree() int
	// ComputeLabelling labels every edge end of the star relative to the
	// two geometries of a relate or overlay computation.
	ComputeLabelling(graphs [2]*GeometryGraph) error
	// IsAreaLabelsConsistent reports whether the side labels of the star
	// are consistent for the areal geometry of g.
	IsAreaLabelsConsistent(g *GeometryGraph) bool
}

type starItem struct{ ee EdgeEnder }

func (it starItem) Less(than btree.Item) bool {
	return it.ee.End().CompareDirection(than.(starItem).ee.End()) < 0
}

// EdgeEndStar keeps edge ends ordered by direction. It implements the parts
// of Star common to every kind of node.
type EdgeEndStar struct {
	tree     *btree.BTree
	list     []EdgeEnder
	listSet  bool
	ptInArea [2]planar.Location
}

// NewEdgeEndStar returns an empty star.
func NewEdgeEndStar() EdgeEndStar {
	return EdgeEndStar{tree: btree.New(8), ptInArea: [2]planar.Location{planar.None, planar.None}}
}

// InsertEdgeEnd adds ee, replacing an end with the same direction.
func (s *EdgeEndStar) InsertEdgeEnd(ee EdgeEnder) {
	s.tree.ReplaceOrInsert(starItem{ee})
	s.listSet = false
}

// Find returns the end in the star with the same direction as ee.
func (s *EdgeEndStar) Find(ee *EdgeEnd) (EdgeEnder, bool) {
	found := s.tree.Get(starItem{ee})
	if found == nil {
		return nil, false
	}
	return found.(starItem).ee, true
}

func (s *EdgeEndStar) Ends() []EdgeEnder {
	if !s.listSet {
		s.list = s.list[:0]
		s.tree.Ascend(func(i btree.Item) bool {
			s.list = append(s.list, i.(starItem).ee)
			return true
		})
		s.listSet = true
	}
	return s.list
}

func (s *EdgeEndStar) Degree() int { return s.tree.Len() }

// Coord returns the location of the star's node.
func (s *EdgeEndStar) Coord() (planar.Coord, bool) {
	ends := s.Ends()
	if len(ends) == 0 {
		return planar.Coord{}, false
	}
	return ends[0].End().Coord(), true
}

// NextCW returns the end preceding ee in counter-clockwise order.
func (s *EdgeEndStar) NextCW(ee EdgeEnder) EdgeEnder {
	ends := s.Ends()
	i := s.FindIndex(ee)
	if i <= 0 {
		return ends[len(ends)-1]
	}
	return ends[i-1]
}

// FindIndex returns the position of ee in counter-clockwise order, or -1.
func (s *EdgeEndStar) FindIndex(ee EdgeEnder) int {
	for i, e := range s.Ends() {
		if e == ee {
			return i
		}
	}
	return -1
}

func (s *EdgeEndStar) computeEdgeEndLabels(rule planar.BoundaryNodeRule) {
	for _, ee := range s.Ends() {
		ee.ComputeLabel(rule)
	}
}

// ComputeLabelling labels the ends of the star: side labels are propagated
// around the star and the remaining null locations come from the location of
// the node in each geometry.
func (s *EdgeEndStar) ComputeLabelling(graphs [2]*GeometryGraph) error {
	s.computeEdgeEndLabels(graphs[0].BoundaryNodeRule())
	for i := 0; i < 2; i++ {
		if err := s.propagateSideLabels(i); err != nil {
			return err
		}
	}

	// A line end in the boundary of a geometry means an area of that
	// geometry has collapsed here, and the point cannot be in its interior.
	var hasDimensionalCollapseEdge [2]bool
	for _, ee := range s.Ends() {
		lbl := ee.End().Label()
		for i := 0; i < 2; i++ {
			if lbl.IsLine(i) && lbl.On(i) == planar.Boundary {
				hasDimensionalCollapseEdge[i] = true
			}
		}
	}

	for _, ee := range s.Ends() {
		e := ee.End()
		lbl := e.Label()
		for i := 0; i < 2; i++ {
			if !lbl.IsAnyNull(i) {
				continue
			}
			loc := planar.Exterior
			if !hasDimensionalCollapseEdge[i] {
				loc = s.location(i, e.Coord(), graphs)
			}
			lbl.SetAllLocationsIfNull(i, loc)
		}
	}
	return nil
}

// location returns the location of p in the area of geometry geomIndex. The
// result is the same for every end of the star, so it is computed once.
func (s *EdgeEndStar) location(geomIndex int, p planar.Coord, graphs [2]*GeometryGraph) planar.Location {
	if s.ptInArea[geomIndex] == planar.None {
		s.ptInArea[geomIndex] = planar.LocateInArea(p, graphs[geomIndex].Geometry())
	}
	return s.ptInArea[geomIndex]
}

// IsAreaLabelsConsistent reports whether the side labels of the ends agree
// around the star for the areal geometry of g.
func (s *EdgeEndStar) IsAreaLabelsConsistent(g *GeometryGraph) bool {
	s.computeEdgeEndLabels(g.BoundaryNodeRule())
	return s.checkAreaLabelsConsistent(0)
}

func (s *EdgeEndStar) checkAreaLabelsConsistent(geomIndex int) bool {
	ends := s.Ends()
	if len(ends) == 0 {
		return true
	}
	startLoc := ends[len(ends)-1].End().Label().Location(geomIndex, planar.Left)
	if startLoc == planar.None {
		panic(errors.AssertionFailedf("found unlabelled area edge at %v", ends[0].End().Coord()))
	}
	currLoc := startLoc
	for _, ee := range ends {
		lbl := ee.End().Label()
		if !lbl.IsAreaFor(geomIndex) {
			panic(errors.AssertionFailedf("found non-area edge at %v", ee.End().Coord()))
		}
		leftLoc := lbl.Location(geomIndex, planar.Left)
		rightLoc := lbl.Location(geomIndex, planar.Right)
		if leftLoc == rightLoc || rightLoc != currLoc {
			return false
		}
		currLoc = leftLoc
	}
	return true
}

// propagateSideLabels walks the star counter-clockwise carrying the location
// of the region between consecutive area edges, filling the sides of line
// ends and checking that adjacent area edges agree.
func (s *EdgeEndStar) propagateSideLabels(geomIndex int) error {
	startLoc := planar.None
	for _, ee := range s.Ends() {
		lbl := ee.End().Label()
		if lbl.IsAreaFor(geomIndex) && lbl.Location(geomIndex, planar.Left) != planar.None {
			startLoc = lbl.Location(geomIndex, planar.Left)
		}
	}
	if startLoc == planar.None {
		return nil
	}

	currLoc := startLoc
	for _, ee := range s.Ends() {
		e := ee.End()
		lbl := e.Label()
		if lbl.On(geomIndex) == planar.None {
			lbl.SetOn(geomIndex, currLoc)
		}
		if !lbl.IsAreaFor(geomIndex) {
			continue
		}
		leftLoc := lbl.Location(geomIndex, planar.Left)
		rightLoc := lbl.Location(geomIndex, planar.Right)
		if rightLoc != planar.None {
			if rightLoc != currLoc {
				return NewTopologyError(e.Coord(), "side location conflict")
			}
			if leftLoc == planar.None {
				panic(errors.AssertionFailedf("found single null side at %v", e.Coord()))
			}
			currLoc = leftLoc
		} else {
			if leftLoc != planar.None {
				panic(errors.AssertionFailedf("found single null side at %v", e.Coord()))
			}
			lbl.SetLocation(geomIndex, planar.Right, currLoc)
			lbl.SetLocation(geomIndex, planar.Left, currLoc)
		}
	}
	return nil
}

func (s *EdgeEndStar) String() string {
	var b strings.Builder
	c, _ := s.Coord()
	fmt.Fprintf(&b, "EdgeEndStar: %v\n", c)
	for _, ee := range s.Ends() {
		fmt.Fprintln(&b, ee)
	}
	return b.String()
}
