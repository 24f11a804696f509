package planar

import (
	"math"

	"github.com/davidreynolds/gotopo/dd"
)

// Intersection computes the intersection point of the infinite lines through
// p1-p2 and q1-q2. The lines are expressed in homogeneous coordinates and the
// intersection is evaluated in double-double arithmetic.
//
// It returns false if the lines are parallel or either is degenerate. The
// result has no elevation.
func Intersection(p1, p2, q1, q2 Coord) (Coord, bool) {
	px := dd.FromFloat64(p1.Y).SubFloat64(p2.Y)
	py := dd.FromFloat64(p2.X).SubFloat64(p1.X)
	pw := dd.FromFloat64(p1.X).MulFloat64(p2.Y).Sub(dd.FromFloat64(p2.X).MulFloat64(p1.Y))

	qx := dd.FromFloat64(q1.Y).SubFloat64(q2.Y)
	qy := dd.FromFloat64(q2.X).SubFloat64(q1.X)
	qw := dd.FromFloat64(q1.X).MulFloat64(q2.Y).Sub(dd.FromFloat64(q2.X).MulFloat64(q1.Y))

	x := py.Mul(qw).Sub(qy.Mul(pw))
	y := qx.Mul(pw).Sub(px.Mul(qw))
	w := px.Mul(qy).Sub(qx.Mul(py))

	xi := x.Div(w).Float64()
	yi := y.Div(w).Float64()
	if math.IsNaN(xi) || math.IsInf(xi, 0) || math.IsNaN(yi) || math.IsInf(yi, 0) {
		return Coord{}, false
	}
	return NewCoord(xi, yi), true
}

// PointToSegmentDistance returns the distance from p to the segment a-b.
func PointToSegmentDistance(p, a, b Coord) float64 {
	if a.Equals2D(b) {
		return p.Distance(a)
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	len2 := dx*dx + dy*dy
	r := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / len2
	if r <= 0 {
		return p.Distance(a)
	}
	if r >= 1 {
		return p.Distance(b)
	}
	s := ((a.Y-p.Y)*dx - (a.X-p.X)*dy) / len2
	return math.Abs(s) * math.Sqrt(len2)
}
