package overlay

import (
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"

	"github.com/davidreynolds/gotopo/planar"
)

// computeGeometry assembles the result components. A single kind of
// component gives a single or multi geometry of that kind; mixed kinds give
// a collection ordered points, lines, polygons.
func (o *OverlayOp) computeGeometry(op OpCode) (geom.T, error) {
	var parts []geom.T
	for _, p := range o.resultPoints {
		parts = append(parts, p)
	}
	for _, l := range o.resultLines {
		parts = append(parts, l)
	}
	for _, p := range o.resultPolys {
		parts = append(parts, p)
	}

	switch {
	case len(parts) == 0:
		return o.emptyResult(op), nil
	case len(parts) == 1:
		return parts[0], nil
	case len(parts) == len(o.resultPoints):
		mp := geom.NewMultiPoint(o.layout)
		for _, p := range o.resultPoints {
			if err := mp.Push(p); err != nil {
				return nil, errors.Wrap(err, "building multipoint")
			}
		}
		return mp, nil
	case len(parts) == len(o.resultLines):
		mls := geom.NewMultiLineString(o.layout)
		for _, l := range o.resultLines {
			if err := mls.Push(l); err != nil {
				return nil, errors.Wrap(err, "building multilinestring")
			}
		}
		return mls, nil
	case len(parts) == len(o.resultPolys):
		mp := geom.NewMultiPolygon(o.layout)
		for _, p := range o.resultPolys {
			if err := mp.Push(p); err != nil {
				return nil, errors.Wrap(err, "building multipolygon")
			}
		}
		return mp, nil
	}
	gc := geom.NewGeometryCollection()
	if err := gc.Push(parts...); err != nil {
		return nil, errors.Wrap(err, "building geometry collection")
	}
	return gc, nil
}

// emptyResult returns an empty geometry of the dimension the result of op
// would have: the lower input dimension for an intersection, the first
// input's for a difference and the higher one otherwise.
func (o *OverlayOp) emptyResult(op OpCode) geom.T {
	dim0, dim1 := typeDimension(o.arg[0].Geometry()), typeDimension(o.arg[1].Geometry())
	var dim planar.Dimension
	switch op {
	case Intersection:
		dim = min(dim0, dim1)
	case Difference:
		dim = dim0
	default:
		dim = max(dim0, dim1)
	}
	switch dim {
	case planar.DimPoint:
		return geom.NewPointEmpty(o.layout)
	case planar.DimCurve:
		return geom.NewLineString(o.layout)
	case planar.DimSurface:
		return geom.NewPolygon(o.layout)
	}
	return geom.NewGeometryCollection()
}

// typeDimension returns the dimension of the type of g, so that an empty
// polygon has dimension 2. Collections take the highest dimension of their
// members.
func typeDimension(g geom.T) planar.Dimension {
	switch g := g.(type) {
	case *geom.Point, *geom.MultiPoint:
		return planar.DimPoint
	case *geom.LineString, *geom.LinearRing, *geom.MultiLineString:
		return planar.DimCurve
	case *geom.Polygon, *geom.MultiPolygon:
		return planar.DimSurface
	case *geom.GeometryCollection:
		dim := planar.DimFalse
		for _, child := range g.Geoms() {
			dim = max(dim, typeDimension(child))
		}
		return dim
	}
	return planar.DimFalse
}
