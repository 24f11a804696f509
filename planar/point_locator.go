package planar

import (
	"github.com/twpayne/go-geom"
)

// PointLocator computes the location of a point relative to a geometry,
// following the SFS rules for lines and collections: a point is in the
// boundary when the number of line endpoints at it satisfies the
// BoundaryNodeRule, and in the interior when it is in the interior of any
// element. A closed line counts its start point twice.
//
// A PointLocator is not safe for concurrent use.
type PointLocator struct {
	rule          BoundaryNodeRule
	isIn          bool
	numBoundaries int
}

// NewPointLocator returns a PointLocator using rule.
func NewPointLocator(rule BoundaryNodeRule) *PointLocator {
	return &PointLocator{rule: rule}
}

// Intersects reports whether p is not in the exterior of g.
func (pl *PointLocator) Intersects(p Coord, g geom.T) bool {
	return pl.Locate(p, g) != Exterior
}

// Locate returns the location of p relative to g.
func (pl *PointLocator) Locate(p Coord, g geom.T) Location {
	if IsEmpty(g) {
		return Exterior
	}
	if poly, ok := g.(*geom.Polygon); ok {
		return locateInPolygon(p, poly)
	}

	pl.isIn = false
	pl.numBoundaries = 0
	pl.computeLocation(p, g)
	if pl.rule.IsInBoundary(pl.numBoundaries) {
		return Boundary
	}
	if pl.numBoundaries > 0 || pl.isIn {
		return Interior
	}
	return Exterior
}

func (pl *PointLocator) computeLocation(p Coord, g geom.T) {
	switch g := g.(type) {
	case *geom.Point:
		pl.update(locateOnPoint(p, g))
	case *geom.MultiPoint:
		for i := 0; i < g.NumPoints(); i++ {
			pl.update(locateOnPoint(p, g.Point(i)))
		}
	case *geom.LineString:
		pl.addLine(p, CoordsOf(g))
	case *geom.LinearRing:
		pl.addLine(p, CoordsOf(g))
	case *geom.MultiLineString:
		for i := 0; i < g.NumLineStrings(); i++ {
			pl.addLine(p, CoordsOf(g.LineString(i)))
		}
	case *geom.Polygon:
		pl.update(locateInPolygon(p, g))
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			pl.update(locateInPolygon(p, g.Polygon(i)))
		}
	case *geom.GeometryCollection:
		for _, child := range g.Geoms() {
			pl.computeLocation(p, child)
		}
	}
}

func (pl *PointLocator) update(loc Location) {
	switch loc {
	case Interior:
		pl.isIn = true
	case Boundary:
		pl.numBoundaries++
	}
}

func locateOnPoint(p Coord, pt *geom.Point) Location {
	pts := CoordsOf(pt)
	if len(pts) > 0 && pts[0].Equals2D(p) {
		return Interior
	}
	return Exterior
}

// addLine counts the endpoints of the line at p, two for a closed line, or
// records p as interior when it lies elsewhere on the line. Whether the
// endpoints make p a boundary point is left to the rule.
func (pl *PointLocator) addLine(p Coord, pts []Coord) {
	if len(pts) == 0 || !Envelope(pts).ContainsPoint(p.Point()) {
		return
	}
	if p.Equals2D(pts[0]) || p.Equals2D(pts[len(pts)-1]) {
		if IsClosed(pts) {
			pl.numBoundaries += 2
		} else {
			pl.numBoundaries++
		}
		return
	}
	if IsOnLine(p, pts) {
		pl.isIn = true
	}
}

func locateInRing(p Coord, ring []Coord) Location {
	if !Envelope(ring).ContainsPoint(p.Point()) {
		return Exterior
	}
	return LocatePointInRing(p, ring)
}

func locateInPolygon(p Coord, poly *geom.Polygon) Location {
	if poly.NumLinearRings() == 0 {
		return Exterior
	}
	switch locateInRing(p, CoordsOf(poly.LinearRing(0))) {
	case Exterior:
		return Exterior
	case Boundary:
		return Boundary
	}
	for i := 1; i < poly.NumLinearRings(); i++ {
		switch locateInRing(p, CoordsOf(poly.LinearRing(i))) {
		case Interior:
			return Exterior
		case Boundary:
			return Boundary
		}
	}
	return Interior
}

// LocateInArea returns the location of p relative to the areal components of
// g. Non-areal components are ignored.
func LocateInArea(p Coord, g geom.T) Location {
	switch g := g.(type) {
	case *geom.Polygon:
		return locateInPolygon(p, g)
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			if loc := locateInPolygon(p, g.Polygon(i)); loc != Exterior {
				return loc
			}
		}
	case *geom.GeometryCollection:
		for _, child := range g.Geoms() {
			if loc := LocateInArea(p, child); loc != Exterior {
				return loc
			}
		}
	}
	return Exterior
}
