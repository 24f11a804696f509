package geomgraph

import (
	"fmt"

	"github.com/davidreynolds/gotopo/planar"
)

const nullDepth = -1

// Depth records, for each geometry, the number of times the left and right
// sides of an edge are inside the geometry.
type Depth struct {
	depth [2][3]int
}

// NewDepth returns a depth with every entry null.
func NewDepth() Depth {
	var d Depth
	for i := range d.depth {
		for j := range d.depth[i] {
			d.depth[i][j] = nullDepth
		}
	}
	return d
}

// DepthAtLocation returns 1 for Interior, 0 for Exterior and the null depth
// otherwise.
func DepthAtLocation(loc planar.Location) int {
	switch loc {
	case planar.Exterior:
		return 0
	case planar.Interior:
		return 1
	}
	return nullDepth
}

func (d *Depth) Get(geomIndex int, pos planar.Position) int { return d.depth[geomIndex][pos] }

func (d *Depth) Set(geomIndex int, pos planar.Position, depth int) {
	d.depth[geomIndex][pos] = depth
}

// Location returns Exterior for a depth of zero or less and Interior
// otherwise.
func (d *Depth) Location(geomIndex int, pos planar.Position) planar.Location {
	if d.depth[geomIndex][pos] <= 0 {
		return planar.Exterior
	}
	return planar.Interior
}

// AddLocation increments the depth at pos when loc is Interior.
func (d *Depth) AddLocation(geomIndex int, pos planar.Position, loc planar.Location) {
	if loc == planar.Interior {
		d.depth[geomIndex][pos]++
	}
}

// IsNull reports whether all depths are null.
func (d *Depth) IsNull() bool {
	for i := range d.depth {
		for j := range d.depth[i] {
			if d.depth[i][j] != nullDepth {
				return false
			}
		}
	}
	return true
}

func (d *Depth) IsNullFor(geomIndex int) bool {
	return d.depth[geomIndex][planar.Left] == nullDepth
}

func (d *Depth) IsNullAt(geomIndex int, pos planar.Position) bool {
	return d.depth[geomIndex][pos] == nullDepth
}

// Add accumulates the side locations of lbl.
func (d *Depth) Add(lbl Label) {
	for i := 0; i < 2; i++ {
		for _, pos := range [2]planar.Position{planar.Left, planar.Right} {
			loc := lbl.Location(i, pos)
			if loc != planar.Exterior && loc != planar.Interior {
				continue
			}
			if d.IsNullAt(i, pos) {
				d.depth[i][pos] = DepthAtLocation(loc)
			} else {
				d.depth[i][pos] += DepthAtLocation(loc)
			}
		}
	}
}

// Delta returns the right depth minus the left depth.
func (d *Depth) Delta(geomIndex int) int {
	return d.depth[geomIndex][planar.Right] - d.depth[geomIndex][planar.Left]
}

// Normalize reduces the side depths of each non-null geometry so that the
// smaller one is 0 and the larger one is 0 or 1. Negative minimums are
// treated as 0.
func (d *Depth) Normalize() {
	for i := range d.depth {
		if d.IsNullFor(i) {
			continue
		}
		minDepth := min(d.depth[i][planar.Left], d.depth[i][planar.Right])
		if minDepth < 0 {
			minDepth = 0
		}
		for j := planar.Left; j <= planar.Right; j++ {
			v := 0
			if d.depth[i][j] > minDepth {
				v = 1
			}
			d.depth[i][j] = v
		}
	}
}

func (d Depth) String() string {
	return fmt.Sprintf("A: %d,%d B: %d,%d",
		d.depth[0][planar.Left], d.depth[0][planar.Right],
		d.depth[1][planar.Left], d.depth[1][planar.Right])
}
