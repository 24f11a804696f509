package edgeindex

import (
	"math/rand"
	"testing"
)

func TestInterleave(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for n := 0; n < 1000; n++ {
		i := uint32(r.Int63n(maxSize))
		j := uint32(r.Int63n(maxSize))
		gi, gj := deinterleave(interleave(i, j))
		if gi != i || gj != j {
			t.Fatalf("deinterleave(interleave(%d, %d)) = %d, %d", i, j, gi, gj)
		}
	}
}

func TestCellIDHierarchy(t *testing.T) {
	leaf := cellIDFromIJ(12345, 67890)
	if !leaf.IsLeaf() || leaf.Level() != MaxLevel {
		t.Fatalf("leaf level = %d, IsLeaf = %v", leaf.Level(), leaf.IsLeaf())
	}
	root := leaf.Parent(0)
	if root.Level() != 0 || root != cellIDFromIJ(0, 0).Parent(0) {
		t.Errorf("root = %v, want the single level 0 cell", root)
	}
	for level := MaxLevel; level >= 0; level-- {
		c := leaf.Parent(level)
		if got := c.Level(); got != level {
			t.Errorf("Parent(%d).Level() = %d", level, got)
		}
		if !c.Contains(leaf) {
			t.Errorf("%v does not contain its descendant %v", c, leaf)
		}
		ilo, ihi, jlo, jhi := c.ijBounds()
		if ilo > 12345 || ihi < 12345 || jlo > 67890 || jhi < 67890 {
			t.Errorf("%v bounds (%d-%d, %d-%d) do not contain the leaf", c, ilo, ihi, jlo, jhi)
		}
		if size := ihi - ilo + 1; size != uint32(1)<<uint(MaxLevel-level) {
			t.Errorf("%v has size %d", c, size)
		}
	}
}

func TestCellIDChildren(t *testing.T) {
	parent := cellIDFromIJLevel(1<<20, 3<<20, 8)
	children := parent.Children()
	prevMax := parent.RangeMin() - 2
	for k, child := range children {
		if child.Level() != 9 {
			t.Errorf("child %d level = %d, want 9", k, child.Level())
		}
		if child.Parent(8) != parent {
			t.Errorf("child %d parent = %v, want %v", k, child.Parent(8), parent)
		}
		// Children tile the parent's range in order. Leaf ids are odd, so
		// consecutive ranges are two apart.
		if child.RangeMin() != prevMax+2 {
			t.Errorf("child %d range starts at %d, want %d", k, child.RangeMin(), prevMax+2)
		}
		prevMax = child.RangeMax()
	}
	if prevMax != parent.RangeMax() {
		t.Errorf("children end at %d, want %d", prevMax, parent.RangeMax())
	}
}
