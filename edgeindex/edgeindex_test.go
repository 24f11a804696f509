package edgeindex

import (
	"math/rand"
	"testing"

	"github.com/davidreynolds/gotopo/planar"
)

type segments [][2]planar.Coord

func (s segments) NumEdges() int                           { return len(s) }
func (s segments) Edge(i int) (planar.Coord, planar.Coord) { return s[i][0], s[i][1] }

func randomSegments(r *rand.Rand, n int, maxLen float64) segments {
	var s segments
	for i := 0; i < n; i++ {
		a := planar.NewCoord(r.Float64()*100, r.Float64()*100)
		b := planar.NewCoord(a.X+(r.Float64()-0.5)*maxLen, a.Y+(r.Float64()-0.5)*maxLen)
		s = append(s, [2]planar.Coord{a, b})
	}
	return s
}

// checkAllCrossings verifies that every pair of intersecting segments is
// reported as a candidate, and that the index prunes a reasonable number of
// pairs.
func checkAllCrossings(t *testing.T, all segments, maxChecksPerEdge int) {
	t.Helper()
	idx := New(all)
	idx.ComputeIndex()
	it := NewIterator(idx)
	var li planar.LineIntersector
	totalChecks := 0
	for in := range all {
		candidates := map[int]bool{}
		for it.GetCandidates(all[in][0], all[in][1]); !it.Done(); it.Next() {
			candidates[it.Index()] = true
			totalChecks++
		}
		for i := range all {
			li.Compute(all[in][0], all[in][1], all[i][0], all[i][1])
			if li.HasIntersection() && !candidates[i] {
				t.Errorf("edge %d %v is not a candidate of edge %d %v", i, all[i], in, all[in])
			}
		}
	}
	if got := totalChecks / len(all); got > maxChecksPerEdge {
		t.Errorf("%d checks per edge, want at most %d", got, maxChecksPerEdge)
	}
}

func TestShortSegments(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	checkAllCrossings(t, randomSegments(r, 1000, 2), 60)
}

func TestMixedSegments(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	all := randomSegments(r, 500, 1)
	all = append(all, randomSegments(r, 50, 60)...)
	checkAllCrossings(t, all, 200)
}

func TestDegenerateSegments(t *testing.T) {
	var all segments
	// Horizontal, vertical and zero-length segments on a grid, all touching.
	for i := 0; i < 20; i++ {
		x := float64(i)
		all = append(all,
			[2]planar.Coord{planar.NewCoord(x, 0), planar.NewCoord(x, 19)},
			[2]planar.Coord{planar.NewCoord(0, x), planar.NewCoord(19, x)},
			[2]planar.Coord{planar.NewCoord(x, x), planar.NewCoord(x, x)},
		)
	}
	checkAllCrossings(t, all, len(all))
}

func TestQueryOutsideDomain(t *testing.T) {
	all := segments{
		{planar.NewCoord(0, 0), planar.NewCoord(1, 1)},
		{planar.NewCoord(5, 5), planar.NewCoord(6, 6)},
	}
	idx := New(all)
	idx.ComputeIndex()
	got := idx.FindCandidateCrossings(planar.NewCoord(-10, 0.5), planar.NewCoord(0.5, 0.5), nil)
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("FindCandidateCrossings = %v, want [0]", got)
	}
}

func TestBruteForceUntilPredicted(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	all := randomSegments(r, 200, 2)
	idx := New(all)
	it := NewIterator(idx)

	it.GetCandidates(all[0][0], all[0][1])
	n := 0
	for ; !it.Done(); it.Next() {
		n++
	}
	if idx.IsComputed() || n != len(all) {
		t.Errorf("first query: computed = %v, visited %d, want false, %d", idx.IsComputed(), n, len(all))
	}

	idx.PredictAdditionalCalls(100)
	if !idx.IsComputed() {
		t.Errorf("index not computed after predicting 100 calls over %d edges", len(all))
	}

	small := New(all[:10])
	small.PredictAdditionalCalls(1000)
	if small.IsComputed() {
		t.Errorf("index over 10 edges was computed")
	}
}
