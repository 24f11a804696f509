// Package edgeindex implements a quadtree index over a set of planar
// segments, used to find the segments that may intersect a query segment.
//
// Each segment is covered by at most four quadtree cells whose size is
// commensurate with the segment's length. Candidates for a query segment are
// the segments indexed in the ancestors of its covering cells plus those
// indexed in their descendants. The index is built lazily: until enough
// queries have been made, callers are told to test every segment.
package edgeindex

import (
	"slices"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/davidreynolds/gotopo/planar"
)

// Edges is the set of segments indexed by an Index.
type Edges interface {
	NumEdges() int
	Edge(i int) (a, b planar.Coord)
}

type cellEdge struct {
	cell CellID
	edge int
}

// cellEdgeMultimap is a sorted list of (cell, edge) pairs.
type cellEdgeMultimap []cellEdge

func (m cellEdgeMultimap) Len() int      { return len(m) }
func (m cellEdgeMultimap) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
func (m cellEdgeMultimap) Less(i, j int) bool {
	if m[i].cell != m[j].cell {
		return m[i].cell < m[j].cell
	}
	return m[i].edge < m[j].edge
}

func (m cellEdgeMultimap) lowerBound(id CellID) int {
	return sort.Search(len(m), func(k int) bool { return m[k].cell >= id })
}

func (m cellEdgeMultimap) upperBound(id CellID) int {
	return sort.Search(len(m), func(k int) bool { return m[k].cell > id })
}

const (
	// Descendant ranges holding more edges than this are searched child by
	// child instead.
	maxEdgesInRange = 16

	bruteForceMaxEdges   = 100
	bruteForceMaxQueries = 30
)

// Index is a lazily built quadtree index over Edges.
type Index struct {
	edges        Edges
	grid         grid
	mapping      cellEdgeMultimap
	minLevelUsed int
	queryCount   int
	computed     bool
}

// New returns an index over edges. The index is not computed until
// ComputeIndex or PredictAdditionalCalls decides it is worth it.
func New(edges Edges) *Index {
	return &Index{edges: edges, minLevelUsed: MaxLevel}
}

// Reset discards the computed index.
func (idx *Index) Reset() {
	idx.minLevelUsed = MaxLevel
	idx.computed = false
	idx.queryCount = 0
	idx.mapping = nil
}

// IsComputed reports whether the index has been built.
func (idx *Index) IsComputed() bool { return idx.computed }

// NumEdges returns the number of indexed edges.
func (idx *Index) NumEdges() int { return idx.edges.NumEdges() }

// ComputeIndex builds the index.
func (idx *Index) ComputeIndex() {
	if idx.computed {
		return
	}
	n := idx.edges.NumEdges()
	bound := r2.EmptyRect()
	for i := 0; i < n; i++ {
		a, b := idx.edges.Edge(i)
		bound = bound.AddPoint(a.Point()).AddPoint(b.Point())
	}
	idx.grid = newGrid(bound)

	var cover []CellID
	for i := 0; i < n; i++ {
		a, b := idx.edges.Edge(i)
		var level int
		cover, level = idx.edgeCovering(a, b, cover[:0])
		idx.minLevelUsed = min(idx.minLevelUsed, level)
		for _, c := range cover {
			idx.mapping = append(idx.mapping, cellEdge{c, i})
		}
	}
	sort.Sort(idx.mapping)
	idx.computed = true
}

// PredictAdditionalCalls tells the index that about n more queries will be
// made, so that it can decide whether building the index pays off.
func (idx *Index) PredictAdditionalCalls(n int) {
	if idx.computed {
		return
	}
	if idx.edges.NumEdges() > bruteForceMaxEdges && idx.queryCount+n > bruteForceMaxQueries {
		idx.ComputeIndex()
	}
}

// edgeCovering appends to cover the cells covering the bounding box of a-b and
// returns the result together with the level of the cells.
func (idx *Index) edgeCovering(a, b planar.Coord, cover []CellID) ([]CellID, int) {
	ia, ja := idx.grid.leaf(a.X, a.Y)
	ib, jb := idx.grid.leaf(b.X, b.Y)
	ilo, ihi := min(ia, ib), max(ia, ib)
	jlo, jhi := min(ja, jb), max(ja, jb)

	// The ideal level is the deepest one at which the box spans at most two
	// cells in each direction.
	level := MaxLevel
	for level > 0 {
		shift := uint(MaxLevel - level)
		if ihi>>shift-ilo>>shift <= 1 && jhi>>shift-jlo>>shift <= 1 {
			break
		}
		level--
	}

	// Best case: the box fits in one cell that is not too big.
	containing := cellIDFromIJ(ilo, jlo)
	for !containing.Contains(cellIDFromIJ(ihi, jhi)) {
		containing = containing.Parent(containing.Level() - 1)
	}
	if containing.Level() >= level-2 {
		return append(cover, containing), containing.Level()
	}

	for _, ij := range [4][2]uint32{{ilo, jlo}, {ihi, jlo}, {ilo, jhi}, {ihi, jhi}} {
		c := cellIDFromIJLevel(ij[0], ij[1], level)
		if !slices.Contains(cover, c) {
			cover = append(cover, c)
		}
	}
	return cover, level
}

// FindCandidateCrossings appends to candidates the sorted, unique ids of the
// edges whose bounding boxes may intersect the bounding box of a-b. The index
// must be computed.
func (idx *Index) FindCandidateCrossings(a, b planar.Coord, candidates []int) []int {
	start := len(candidates)
	cover, _ := idx.edgeCovering(a, b, nil)
	candidates = idx.edgesInParentCells(cover, candidates)
	candidates = idx.edgesInChildrenCells(a, b, cover, candidates)
	found := candidates[start:]
	slices.Sort(found)
	return append(candidates[:start], slices.Compact(found)...)
}

// edgesInParentCells appends the edges indexed in strict ancestors of the
// cover cells, down to the coarsest level used by the index.
func (idx *Index) edgesInParentCells(cover []CellID, candidates []int) []int {
	parents := make(map[CellID]struct{})
	for _, c := range cover {
		for level := c.Level() - 1; level >= idx.minLevelUsed; level-- {
			p := c.Parent(level)
			if _, ok := parents[p]; ok {
				break
			}
			parents[p] = struct{}{}
		}
	}
	for p := range parents {
		for i := idx.mapping.lowerBound(p); i < len(idx.mapping) && idx.mapping[i].cell == p; i++ {
			candidates = append(candidates, idx.mapping[i].edge)
		}
	}
	return candidates
}

// edgesInChildrenCells appends the edges indexed in the cover cells or their
// descendants. Dense ranges are searched child by child, skipping children
// that the query box does not touch.
func (idx *Index) edgesInChildrenCells(a, b planar.Coord, cover []CellID, candidates []int) []int {
	ia, ja := idx.grid.leaf(a.X, a.Y)
	ib, jb := idx.grid.leaf(b.X, b.Y)
	ilo, ihi := min(ia, ib), max(ia, ib)
	jlo, jhi := min(ja, jb), max(ja, jb)

	stack := append([]CellID(nil), cover...)
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		start := idx.mapping.lowerBound(cell.RangeMin())
		end := idx.mapping.upperBound(cell.RangeMax())
		if end-start <= maxEdgesInRange || cell.IsLeaf() {
			for i := start; i < end; i++ {
				candidates = append(candidates, idx.mapping[i].edge)
			}
			continue
		}

		// Too many: take the edges in the cell itself and recurse on the
		// children, hopefully some will be empty.
		i := idx.mapping.lowerBound(cell)
		j := idx.mapping.upperBound(cell)
		for k := i; k < j; k++ {
			candidates = append(candidates, idx.mapping[k].edge)
		}
		if i == start && j == end {
			continue
		}
		for _, child := range cell.Children() {
			cilo, cihi, cjlo, cjhi := child.ijBounds()
			if cilo <= ihi && ilo <= cihi && cjlo <= jhi && jlo <= cjhi {
				stack = append(stack, child)
			}
		}
	}
	return candidates
}

// Iterator iterates over the edges that may intersect a query segment. When
// the index is not computed it visits every edge.
type Iterator struct {
	index      *Index
	bruteForce bool
	current    int
	numEdges   int
	candidates []int
	pos        int
}

// NewIterator returns an iterator over idx.
func NewIterator(idx *Index) *Iterator {
	return &Iterator{index: idx}
}

// GetCandidates starts an iteration for the segment a-b.
func (it *Iterator) GetCandidates(a, b planar.Coord) {
	it.index.PredictAdditionalCalls(1)
	it.bruteForce = !it.index.IsComputed()
	if it.bruteForce {
		it.index.queryCount++
		it.current = 0
		it.numEdges = it.index.NumEdges()
		return
	}
	it.candidates = it.index.FindCandidateCrossings(a, b, it.candidates[:0])
	it.pos = 0
	if len(it.candidates) != 0 {
		it.current = it.candidates[0]
	}
}

// Index returns the id of the current edge.
func (it *Iterator) Index() int { return it.current }

// Next advances to the next candidate.
func (it *Iterator) Next() {
	if it.bruteForce {
		it.current++
		return
	}
	it.pos++
	if it.pos < len(it.candidates) {
		it.current = it.candidates[it.pos]
	}
}

// Done reports whether the iteration is finished.
func (it *Iterator) Done() bool {
	if it.bruteForce {
		return it.current >= it.numEdges
	}
	return it.pos >= len(it.candidates)
}
