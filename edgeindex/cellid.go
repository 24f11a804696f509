package edgeindex

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/golang/geo/r2"
)

// MaxLevel is the level of leaf cells. The domain is divided into
// 2^MaxLevel x 2^MaxLevel leaf cells.
const MaxLevel = 30

const maxSize = 1 << MaxLevel

// CellID identifies a cell of a quadtree over a square domain. Like S2 cell
// ids, the interleaved (i, j) position of the cell is followed by a marker bit
// whose position encodes the level, so that all descendants of a cell form a
// contiguous range of ids.
type CellID uint64

func lsbForLevel(level int) uint64 {
	return 1 << uint(2*(MaxLevel-level))
}

// cellIDFromIJ returns the leaf cell at (i, j).
func cellIDFromIJ(i, j uint32) CellID {
	return CellID(interleave(i, j)<<1 | 1)
}

// cellIDFromIJLevel returns the cell at level containing leaf (i, j).
func cellIDFromIJLevel(i, j uint32, level int) CellID {
	return cellIDFromIJ(i, j).Parent(level)
}

func (c CellID) lsb() uint64 { return uint64(c) & -uint64(c) }

// Level returns the level of c, 0 for the root and MaxLevel for leaves.
func (c CellID) Level() int {
	return MaxLevel - bits.TrailingZeros64(uint64(c))/2
}

// IsLeaf reports whether c is a leaf cell.
func (c CellID) IsLeaf() bool { return uint64(c)&1 != 0 }

// Parent returns the ancestor of c at level, which must not exceed c's
// level.
func (c CellID) Parent(level int) CellID {
	lsb := lsbForLevel(level)
	return CellID((uint64(c) & -lsb) | lsb)
}

// RangeMin returns the smallest leaf id contained in c.
func (c CellID) RangeMin() CellID { return CellID(uint64(c) - (c.lsb() - 1)) }

// RangeMax returns the largest leaf id contained in c.
func (c CellID) RangeMax() CellID { return CellID(uint64(c) + (c.lsb() - 1)) }

// Contains reports whether o is c or a descendant of c.
func (c CellID) Contains(o CellID) bool {
	return o >= c.RangeMin() && o <= c.RangeMax()
}

// Children returns the four children of c. c must not be a leaf.
func (c CellID) Children() [4]CellID {
	lsb := c.lsb()
	first := uint64(c) - lsb + lsb>>2
	var out [4]CellID
	for k := range out {
		out[k] = CellID(first + uint64(k)*(lsb>>1))
	}
	return out
}

// ijBounds returns the range of leaf coordinates covered by c, inclusive.
func (c CellID) ijBounds() (ilo, ihi, jlo, jhi uint32) {
	i, j := deinterleave(uint64(c.RangeMin()) >> 1)
	size := uint32(1) << uint(MaxLevel-c.Level())
	return i, i + size - 1, j, j + size - 1
}

func (c CellID) String() string {
	ilo, _, jlo, _ := c.ijBounds()
	return fmt.Sprintf("%d/(%d,%d)", c.Level(), ilo>>uint(MaxLevel-c.Level()), jlo>>uint(MaxLevel-c.Level()))
}

// interleave spreads the bits of i and j so that bit k of i lands on bit
// 2k+1 and bit k of j on bit 2k.
func interleave(i, j uint32) uint64 {
	return spread(i)<<1 | spread(j)
}

func deinterleave(pos uint64) (uint32, uint32) {
	return compact(pos >> 1), compact(pos)
}

func spread(v uint32) uint64 {
	x := uint64(v)
	x = (x | x<<16) & 0x0000FFFF0000FFFF
	x = (x | x<<8) & 0x00FF00FF00FF00FF
	x = (x | x<<4) & 0x0F0F0F0F0F0F0F0F
	x = (x | x<<2) & 0x3333333333333333
	x = (x | x<<1) & 0x5555555555555555
	return x
}

func compact(x uint64) uint32 {
	x &= 0x5555555555555555
	x = (x | x>>1) & 0x3333333333333333
	x = (x | x>>2) & 0x0F0F0F0F0F0F0F0F
	x = (x | x>>4) & 0x00FF00FF00FF00FF
	x = (x | x>>8) & 0x0000FFFF0000FFFF
	x = (x | x>>16) & 0x00000000FFFFFFFF
	return uint32(x)
}

// grid maps planar points onto leaf coordinates of a square domain. Points
// outside the domain are clamped onto its border, which keeps the mapping
// monotone in x and y.
type grid struct {
	lo    r2.Point
	scale float64
}

func newGrid(bound r2.Rect) grid {
	if bound.IsEmpty() {
		return grid{scale: 0}
	}
	size := math.Max(bound.X.Length(), bound.Y.Length())
	if size == 0 {
		size = 1
	}
	return grid{lo: bound.Lo(), scale: maxSize / size}
}

func (g grid) leaf(x, y float64) (uint32, uint32) {
	return g.coord(x - g.lo.X), g.coord(y - g.lo.Y)
}

func (g grid) coord(v float64) uint32 {
	s := v * g.scale
	switch {
	case !(s > 0):
		// Also catches NaN.
		return 0
	case s >= maxSize-1:
		return maxSize - 1
	}
	return uint32(s)
}
