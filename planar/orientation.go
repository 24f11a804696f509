package planar

import (
	"github.com/davidreynolds/gotopo/dd"
)

// Orientation is the side of a directed line a point lies on.
type Orientation int

const (
	Clockwise        Orientation = -1
	Collinear        Orientation = 0
	CounterClockwise Orientation = 1
)

const (
	// dpSafeEpsilon bounds the relative error of the float64 determinant.
	dpSafeEpsilon = 1e-15
)

func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "CounterClockwise"
	}
	return "Collinear"
}

// OrientationIndex returns the orientation of q relative to the directed line
// p1->p2: CounterClockwise if q is to the left, Clockwise if it is to the
// right and Collinear if it lies on the line.
//
// The sign is computed in float64 when the result is well conditioned, and
// otherwise in double-double arithmetic, which is exact for all but extreme
// inputs.
func OrientationIndex(p1, p2, q Coord) Orientation {
	if o, ok := orientationIndexFilter(p1, p2, q); ok {
		return o
	}
	return orientationIndexDD(p1, p2, q)
}

// orientationIndexFilter is the fast path of OrientationIndex. It reports
// false when the float64 determinant is too close to zero to be trusted.
func orientationIndexFilter(pa, pb, pc Coord) (Orientation, bool) {
	detleft := (pa.X - pc.X) * (pb.Y - pc.Y)
	detright := (pa.Y - pc.Y) * (pb.X - pc.X)
	det := detleft - detright

	var detsum float64
	switch {
	case detleft > 0:
		if detright <= 0 {
			return signum(det), true
		}
		detsum = detleft + detright
	case detleft < 0:
		if detright >= 0 {
			return signum(det), true
		}
		detsum = -detleft - detright
	default:
		return signum(det), true
	}

	errbound := dpSafeEpsilon * detsum
	if det >= errbound || -det >= errbound {
		return signum(det), true
	}
	return Collinear, false
}

func orientationIndexDD(p1, p2, q Coord) Orientation {
	dx1 := dd.FromFloat64(p2.X).SubFloat64(p1.X)
	dy1 := dd.FromFloat64(p2.Y).SubFloat64(p1.Y)
	dx2 := dd.FromFloat64(q.X).SubFloat64(p2.X)
	dy2 := dd.FromFloat64(q.Y).SubFloat64(p2.Y)
	return Orientation(dd.Determinant(dx1, dy1, dx2, dy2).Sgn())
}

func signum(x float64) Orientation {
	switch {
	case x > 0:
		return CounterClockwise
	case x < 0:
		return Clockwise
	}
	return Collinear
}
