// Package planar holds the robust primitives of the topology engine: planar
// coordinates, orientation and line intersection predicates, point location
// and the DE-9IM intersection matrix.
package planar

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Coord is a planar coordinate with an optional elevation. Z is NaN when the
// coordinate has no elevation.
//
// Coord is a value type. Algorithms never mutate a Coord in place.
type Coord struct {
	X, Y, Z float64
}

// NewCoord returns the 2-D coordinate (x, y).
func NewCoord(x, y float64) Coord {
	return Coord{x, y, math.NaN()}
}

// NewCoordZ returns the coordinate (x, y, z).
func NewCoordZ(x, y, z float64) Coord {
	return Coord{x, y, z}
}

// HasZ reports whether c carries an elevation.
func (c Coord) HasZ() bool { return !math.IsNaN(c.Z) }

// Equals2D reports whether c and o have the same x and y.
func (c Coord) Equals2D(o Coord) bool {
	return c.X == o.X && c.Y == o.Y
}

// Equals3D reports whether c and o have the same x, y and z. Two missing
// elevations compare equal.
func (c Coord) Equals3D(o Coord) bool {
	if !c.Equals2D(o) {
		return false
	}
	return c.Z == o.Z || (math.IsNaN(c.Z) && math.IsNaN(o.Z))
}

// Compare orders coordinates by x, then y. It returns -1, 0 or +1.
func (c Coord) Compare(o Coord) int {
	switch {
	case c.X < o.X:
		return -1
	case c.X > o.X:
		return 1
	case c.Y < o.Y:
		return -1
	case c.Y > o.Y:
		return 1
	}
	return 0
}

// Distance returns the planar distance between c and o.
func (c Coord) Distance(o Coord) float64 {
	return math.Hypot(c.X-o.X, c.Y-o.Y)
}

// Point returns c as an r2.Point, dropping z.
func (c Coord) Point() r2.Point {
	return r2.Point{X: c.X, Y: c.Y}
}

// WithZ returns a copy of c with elevation z.
func (c Coord) WithZ(z float64) Coord {
	c.Z = z
	return c
}

func (c Coord) String() string {
	if c.HasZ() {
		return fmt.Sprintf("(%g %g %g)", c.X, c.Y, c.Z)
	}
	return fmt.Sprintf("(%g %g)", c.X, c.Y)
}

// Envelope returns the bounding rectangle of pts. It is empty when pts is.
func Envelope(pts []Coord) r2.Rect {
	if len(pts) == 0 {
		return r2.EmptyRect()
	}
	r := r2.RectFromPoints(pts[0].Point())
	for _, p := range pts[1:] {
		r = r.AddPoint(p.Point())
	}
	return r
}

// SegmentEnvelope returns the bounding rectangle of the segment p1-p2.
func SegmentEnvelope(p1, p2 Coord) r2.Rect {
	return r2.RectFromPoints(p1.Point(), p2.Point())
}

// EnvelopesIntersect reports whether the envelopes of segments p1-p2 and
// q1-q2 intersect.
func EnvelopesIntersect(p1, p2, q1, q2 Coord) bool {
	return SegmentEnvelope(p1, p2).Intersects(SegmentEnvelope(q1, q2))
}

// EnvelopeContains reports whether q lies in the envelope of p1-p2.
func EnvelopeContains(p1, p2, q Coord) bool {
	return SegmentEnvelope(p1, p2).ContainsPoint(q.Point())
}

// RemoveRepeated returns pts with consecutive 2-D duplicates removed. The
// input slice is not modified.
func RemoveRepeated(pts []Coord) []Coord {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Coord, 1, len(pts))
	out[0] = pts[0]
	for _, p := range pts[1:] {
		if !p.Equals2D(out[len(out)-1]) {
			out = append(out, p)
		}
	}
	return out
}

// Reverse returns a reversed copy of pts.
func Reverse(pts []Coord) []Coord {
	out := make([]Coord, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// IsClosed reports whether pts starts and ends at the same 2-D point.
func IsClosed(pts []Coord) bool {
	return len(pts) > 0 && pts[0].Equals2D(pts[len(pts)-1])
}
