package planar

import (
	"fmt"
	"math"

	"github.com/golang/glog"
)

// IntersectionKind classifies the result of intersecting two segments.
type IntersectionKind int

const (
	NoIntersection IntersectionKind = iota
	PointIntersection
	CollinearIntersection
)

func (k IntersectionKind) String() string {
	switch k {
	case PointIntersection:
		return "PointIntersection"
	case CollinearIntersection:
		return "CollinearIntersection"
	}
	return "NoIntersection"
}

// LineIntersector computes the intersection of two segments, or of a point
// and a segment. A single LineIntersector is reused for many computations;
// each call to Compute or ComputePoint replaces the previous result.
//
// Elevation and Precision are policies set by the caller. When Elevation is
// non-nil it supplies z for intersection points that could not get one from
// the input segments. Precision rounds computed (proper) intersection points.
type LineIntersector struct {
	Elevation ElevationModel
	Precision PrecisionModel

	kind     IntersectionKind
	proper   bool
	input    [2][2]Coord
	intPt    [2]Coord
	order    [2][2]int
	hasOrder bool
}

// NewLineIntersector returns a LineIntersector using the given policies.
// elev may be nil.
func NewLineIntersector(elev ElevationModel, pm PrecisionModel) *LineIntersector {
	return &LineIntersector{Elevation: elev, Precision: pm}
}

// ComputePoint tests whether p lies on the segment p1-p2. The intersection is
// proper if p is not one of the endpoints.
func (li *LineIntersector) ComputePoint(p, p1, p2 Coord) {
	li.proper = false
	li.hasOrder = false
	li.input = [2][2]Coord{{p1, p2}, {p, p}}
	li.kind = NoIntersection
	if EnvelopeContains(p1, p2, p) &&
		OrientationIndex(p1, p2, p) == Collinear && OrientationIndex(p2, p1, p) == Collinear {
		li.proper = !p.Equals2D(p1) && !p.Equals2D(p2)
		li.kind = PointIntersection
		li.intPt[0] = p
	}
}

// Compute intersects the segments p1-p2 and q1-q2.
func (li *LineIntersector) Compute(p1, p2, q1, q2 Coord) {
	li.input = [2][2]Coord{{p1, p2}, {q1, q2}}
	li.hasOrder = false
	li.kind = li.computeIntersect(p1, p2, q1, q2)
	if li.Elevation == nil {
		return
	}
	for i := 0; i < li.IntersectionNum(); i++ {
		if !li.intPt[i].HasZ() {
			li.intPt[i].Z = li.Elevation.GetZ(li.intPt[i])
		}
	}
}

func (li *LineIntersector) computeIntersect(p1, p2, q1, q2 Coord) IntersectionKind {
	li.proper = false

	if !EnvelopesIntersect(p1, p2, q1, q2) {
		return NoIntersection
	}

	// Both endpoints of one segment strictly on the same side of the other
	// segment's line means no intersection.
	pq1 := OrientationIndex(p1, p2, q1)
	pq2 := OrientationIndex(p1, p2, q2)
	if (pq1 > 0 && pq2 > 0) || (pq1 < 0 && pq2 < 0) {
		return NoIntersection
	}
	qp1 := OrientationIndex(q1, q2, p1)
	qp2 := OrientationIndex(q1, q2, p2)
	if (qp1 > 0 && qp2 > 0) || (qp1 < 0 && qp2 < 0) {
		return NoIntersection
	}

	if pq1 == 0 && pq2 == 0 && qp1 == 0 && qp2 == 0 {
		return li.computeCollinearIntersection(p1, p2, q1, q2)
	}

	// Exactly one intersection point from here on.
	var p Coord
	var z float64
	if pq1 == 0 || pq2 == 0 || qp1 == 0 || qp2 == 0 {
		switch {
		case p1.Equals2D(q1):
			p, z = p1, zGet(p1, q1)
		case p1.Equals2D(q2):
			p, z = p1, zGet(p1, q2)
		case p2.Equals2D(q1):
			p, z = p2, zGet(p2, q1)
		case p2.Equals2D(q2):
			p, z = p2, zGet(p2, q2)
		case pq1 == 0:
			p, z = q1, zGetOrInterpolate(q1, p1, p2)
		case pq2 == 0:
			p, z = q2, zGetOrInterpolate(q2, p1, p2)
		case qp1 == 0:
			p, z = p1, zGetOrInterpolate(p1, q1, q2)
		case qp2 == 0:
			p, z = p2, zGetOrInterpolate(p2, q1, q2)
		}
	} else {
		li.proper = true
		p = li.intersection(p1, p2, q1, q2)
		z = zInterpolate2(p, p1, p2, q1, q2)
	}
	li.intPt[0] = Coord{p.X, p.Y, z}
	return PointIntersection
}

func (li *LineIntersector) computeCollinearIntersection(p1, p2, q1, q2 Coord) IntersectionKind {
	q1inP := EnvelopeContains(p1, p2, q1)
	q2inP := EnvelopeContains(p1, p2, q2)
	p1inQ := EnvelopeContains(q1, q2, p1)
	p2inQ := EnvelopeContains(q1, q2, p2)

	set := func(a, b Coord) {
		li.intPt[0] = a
		li.intPt[1] = b
	}
	switch {
	case q1inP && q2inP:
		set(withZ(q1, p1, p2), withZ(q2, p1, p2))
		return CollinearIntersection
	case p1inQ && p2inQ:
		set(withZ(p1, q1, q2), withZ(p2, q1, q2))
		return CollinearIntersection
	case q1inP && p1inQ:
		set(withZ(q1, p1, p2), withZ(p1, q1, q2))
		if q1.Equals2D(p1) && !q2inP && !p2inQ {
			return PointIntersection
		}
		return CollinearIntersection
	case q1inP && p2inQ:
		set(withZ(q1, p1, p2), withZ(p2, q1, q2))
		if q1.Equals2D(p2) && !q2inP && !p1inQ {
			return PointIntersection
		}
		return CollinearIntersection
	case q2inP && p1inQ:
		set(withZ(q2, p1, p2), withZ(p1, q1, q2))
		if q2.Equals2D(p1) && !q1inP && !p2inQ {
			return PointIntersection
		}
		return CollinearIntersection
	case q2inP && p2inQ:
		set(withZ(q2, p1, p2), withZ(p2, q1, q2))
		if q2.Equals2D(p2) && !q1inP && !p1inQ {
			return PointIntersection
		}
		return CollinearIntersection
	}
	return NoIntersection
}

// intersection computes the proper intersection point of two segments. If
// the double-double computation fails or lands outside either segment's
// envelope, the nearest segment endpoint is used instead. That fallback is a
// tolerance for ill-conditioned input and is not guaranteed to be
// topologically exact.
func (li *LineIntersector) intersection(p1, p2, q1, q2 Coord) Coord {
	pt, ok := Intersection(p1, p2, q1, q2)
	if !ok {
		pt = nearestEndpoint(p1, p2, q1, q2)
		glog.V(2).Infof("lines %v-%v and %v-%v are degenerate, using nearest endpoint %v", p1, p2, q1, q2, pt)
	} else if !li.isInSegmentEnvelopes(pt) {
		near := nearestEndpoint(p1, p2, q1, q2)
		glog.V(2).Infof("intersection %v of %v-%v and %v-%v lies outside the segments, using nearest endpoint %v", pt, p1, p2, q1, q2, near)
		pt = near
	}
	return li.Precision.MakePrecise(pt)
}

func (li *LineIntersector) isInSegmentEnvelopes(pt Coord) bool {
	return EnvelopeContains(li.input[0][0], li.input[0][1], pt) &&
		EnvelopeContains(li.input[1][0], li.input[1][1], pt)
}

// nearestEndpoint returns the endpoint of either segment closest to the other
// segment.
func nearestEndpoint(p1, p2, q1, q2 Coord) Coord {
	nearest := p1
	minDist := PointToSegmentDistance(p1, q1, q2)
	if d := PointToSegmentDistance(p2, q1, q2); d < minDist {
		minDist, nearest = d, p2
	}
	if d := PointToSegmentDistance(q1, p1, p2); d < minDist {
		minDist, nearest = d, q1
	}
	if d := PointToSegmentDistance(q2, p1, p2); d < minDist {
		nearest = q2
	}
	return nearest
}

// Kind returns the result of the last computation.
func (li *LineIntersector) Kind() IntersectionKind { return li.kind }

// HasIntersection reports whether the last computation found an intersection.
func (li *LineIntersector) HasIntersection() bool { return li.kind != NoIntersection }

// IntersectionNum returns the number of intersection points: 0, 1 or 2.
func (li *LineIntersector) IntersectionNum() int { return int(li.kind) }

// Intersection returns the i'th intersection point.
func (li *LineIntersector) Intersection(i int) Coord { return li.intPt[i] }

// IsCollinear reports whether the segments overlap in a segment.
func (li *LineIntersector) IsCollinear() bool { return li.kind == CollinearIntersection }

// IsProper reports whether the intersection is a single point interior to
// both segments.
func (li *LineIntersector) IsProper() bool { return li.HasIntersection() && li.proper }

// IsIntersection reports whether pt is one of the intersection points.
func (li *LineIntersector) IsIntersection(pt Coord) bool {
	for i := 0; i < li.IntersectionNum(); i++ {
		if li.intPt[i].Equals2D(pt) {
			return true
		}
	}
	return false
}

// IsInteriorIntersection reports whether some intersection point is not an
// endpoint of either input segment.
func (li *LineIntersector) IsInteriorIntersection() bool {
	return li.IsInteriorIntersectionOf(0) || li.IsInteriorIntersectionOf(1)
}

// IsInteriorIntersectionOf reports whether some intersection point is not an
// endpoint of input segment inputIndex.
func (li *LineIntersector) IsInteriorIntersectionOf(inputIndex int) bool {
	for i := 0; i < li.IntersectionNum(); i++ {
		if !li.intPt[i].Equals2D(li.input[inputIndex][0]) && !li.intPt[i].Equals2D(li.input[inputIndex][1]) {
			return true
		}
	}
	return false
}

// EdgeDistance returns the distance of intersection point intIndex along
// input segment segIndex, as computed by EdgeDistance.
func (li *LineIntersector) EdgeDistance(segIndex, intIndex int) float64 {
	return EdgeDistance(li.intPt[intIndex], li.input[segIndex][0], li.input[segIndex][1])
}

// IntersectionAlongSegment returns the intersection points in order of
// increasing distance from the start of input segment segIndex.
func (li *LineIntersector) IntersectionAlongSegment(segIndex, intIndex int) Coord {
	li.computeOrder()
	return li.intPt[li.order[segIndex][intIndex]]
}

func (li *LineIntersector) computeOrder() {
	if li.hasOrder {
		return
	}
	for seg := 0; seg < 2; seg++ {
		li.order[seg] = [2]int{0, 1}
		if li.IntersectionNum() == 2 && li.EdgeDistance(seg, 1) < li.EdgeDistance(seg, 0) {
			li.order[seg] = [2]int{1, 0}
		}
	}
	li.hasOrder = true
}

func (li *LineIntersector) String() string {
	s := fmt.Sprintf("%v-%v %v-%v : %v", li.input[0][0], li.input[0][1], li.input[1][0], li.input[1][1], li.kind)
	if li.IsProper() {
		s += " proper"
	}
	return s
}

// EdgeDistance computes a robust ordering value for a point p known to lie on
// the segment p0-p1. It is the larger of the x and y offsets of p from p0,
// measured along the segment's dominant axis. It is exact and preserves order
// along the segment, unlike Euclidean distance. Points other than p0 always
// get a non-zero value.
func EdgeDistance(p, p0, p1 Coord) float64 {
	dx := math.Abs(p1.X - p0.X)
	dy := math.Abs(p1.Y - p0.Y)

	switch {
	case p.Equals2D(p0):
		return 0
	case p.Equals2D(p1):
		return math.Max(dx, dy)
	}
	pdx := math.Abs(p.X - p0.X)
	pdy := math.Abs(p.Y - p0.Y)
	dist := pdy
	if dx > dy {
		dist = pdx
	}
	if dist == 0 {
		dist = math.Max(pdx, pdy)
	}
	return dist
}

// zGet returns the z of p, or of q if p has none.
func zGet(p, q Coord) float64 {
	if p.HasZ() {
		return p.Z
	}
	return q.Z
}

func zGetOrInterpolate(p, p1, p2 Coord) float64 {
	if p.HasZ() {
		return p.Z
	}
	return zInterpolate(p, p1, p2)
}

func withZ(p, p1, p2 Coord) Coord {
	return p.WithZ(zGetOrInterpolate(p, p1, p2))
}

// zInterpolate interpolates the elevation of p along p1-p2.
func zInterpolate(p, p1, p2 Coord) float64 {
	switch {
	case !p1.HasZ():
		return p2.Z
	case !p2.HasZ():
		return p1.Z
	case p.Equals2D(p1):
		return p1.Z
	case p.Equals2D(p2):
		return p2.Z
	}
	dz := p2.Z - p1.Z
	if dz == 0 {
		return p1.Z
	}
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	xoff, yoff := p.X-p1.X, p.Y-p1.Y
	frac := math.Sqrt((xoff*xoff + yoff*yoff) / (dx*dx + dy*dy))
	return p1.Z + dz*frac
}

// zInterpolate2 averages the elevations interpolated along both segments.
func zInterpolate2(p, p1, p2, q1, q2 Coord) float64 {
	zp := zInterpolate(p, p1, p2)
	zq := zInterpolate(p, q1, q2)
	switch {
	case math.IsNaN(zp):
		return zq
	case math.IsNaN(zq):
		return zp
	}
	return (zp + zq) / 2
}
