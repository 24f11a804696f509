package planar

// IsCCW reports whether the closed ring is oriented counter-clockwise. The
// ring must have its first and last points equal. Degenerate rings (fewer
// than three distinct points, or flat) report false.
//
// The test finds the highest point of the ring and inspects the edges on
// either side of it, so it is correct even when the ring has repeated points
// or collapsed spikes elsewhere.
func IsCCW(ring []Coord) bool {
	nPts := len(ring) - 1
	if nPts < 3 {
		return false
	}

	// Find the first highest point, together with the point before it, on an
	// upward segment.
	upHi := ring[0]
	var upLow Coord
	iUpHi := 0
	prevY := upHi.Y
	for i := 1; i <= nPts; i++ {
		py := ring[i].Y
		if py > prevY && py >= upHi.Y {
			upHi = ring[i]
			iUpHi = i
			upLow = ring[i-1]
		}
		prevY = py
	}
	if iUpHi == 0 {
		// Flat ring.
		return false
	}

	// Find the next lower point after the high point, skipping a flat top.
	iDownLow := iUpHi
	for {
		iDownLow = (iDownLow + 1) % nPts
		if iDownLow == iUpHi || ring[iDownLow].Y != upHi.Y {
			break
		}
	}
	downLow := ring[iDownLow]
	iDownHi := nPts - 1
	if iDownLow > 0 {
		iDownHi = iDownLow - 1
	}
	downHi := ring[iDownHi]

	if upHi.Equals2D(downHi) {
		// Single high point: the orientation of the two edges at it decides.
		if upLow.Equals2D(upHi) || downLow.Equals2D(upHi) || upLow.Equals2D(downLow) {
			return false
		}
		return OrientationIndex(upLow, upHi, downLow) == CounterClockwise
	}
	// Flat top: it runs right-to-left in a CCW ring.
	return downHi.X-upHi.X < 0
}

// RayCrossingCounter locates a point relative to a ring by counting the
// crossings of a ray from the point towards +x with the ring's segments. It
// detects points lying on a segment exactly.
type RayCrossingCounter struct {
	p         Coord
	crossings int
	onSegment bool
}

// NewRayCrossingCounter returns a counter for p.
func NewRayCrossingCounter(p Coord) *RayCrossingCounter {
	return &RayCrossingCounter{p: p}
}

// CountSegment counts the segment p1-p2.
func (c *RayCrossingCounter) CountSegment(p1, p2 Coord) {
	p := c.p
	// Segments entirely to the left of the point cannot cross the ray.
	if p1.X < p.X && p2.X < p.X {
		return
	}
	if p.Equals2D(p2) {
		c.onSegment = true
		return
	}
	// Horizontal segments on the ray's line only matter when they contain p.
	if p1.Y == p.Y && p2.Y == p.Y {
		minx, maxx := p1.X, p2.X
		if minx > maxx {
			minx, maxx = maxx, minx
		}
		if p.X >= minx && p.X <= maxx {
			c.onSegment = true
		}
		return
	}
	// Count segments straddling the ray's line, including their upper
	// endpoint but not the lower one.
	if (p1.Y > p.Y && p2.Y <= p.Y) || (p2.Y > p.Y && p1.Y <= p.Y) {
		orient := OrientationIndex(p1, p2, p)
		if orient == Collinear {
			c.onSegment = true
			return
		}
		if p2.Y < p1.Y {
			orient = -orient
		}
		if orient == CounterClockwise {
			c.crossings++
		}
	}
}

// IsOnSegment reports whether the point lies on a counted segment.
func (c *RayCrossingCounter) IsOnSegment() bool { return c.onSegment }

// Location returns the location of the point relative to the counted ring.
func (c *RayCrossingCounter) Location() Location {
	if c.onSegment {
		return Boundary
	}
	if c.crossings%2 == 1 {
		return Interior
	}
	return Exterior
}

// LocatePointInRing returns the location of p relative to the closed ring.
func LocatePointInRing(p Coord, ring []Coord) Location {
	c := NewRayCrossingCounter(p)
	for i := 1; i < len(ring); i++ {
		c.CountSegment(ring[i], ring[i-1])
		if c.IsOnSegment() {
			return Boundary
		}
	}
	return c.Location()
}

// IsInRing reports whether p is inside or on the closed ring.
func IsInRing(p Coord, ring []Coord) bool {
	return LocatePointInRing(p, ring) != Exterior
}

// IsOnLine reports whether p lies on some segment of the line pts.
func IsOnLine(p Coord, pts []Coord) bool {
	var li LineIntersector
	for i := 1; i < len(pts); i++ {
		li.ComputePoint(p, pts[i-1], pts[i])
		if li.HasIntersection() {
			return true
		}
	}
	return false
}

// PtNotInList returns the first point of testPts that is not in pts.
func PtNotInList(testPts, pts []Coord) (Coord, bool) {
	for _, tp := range testPts {
		if indexOf(tp, pts) < 0 {
			return tp, true
		}
	}
	return Coord{}, false
}

func indexOf(p Coord, pts []Coord) int {
	for i, q := range pts {
		if p.Equals2D(q) {
			return i
		}
	}
	return -1
}
