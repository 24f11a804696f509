package planar

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-geom"
)

// flatter is the part of geom.T needed to read a single coordinate run.
type flatter interface {
	FlatCoords() []float64
	Stride() int
	Layout() geom.Layout
}

// CoordsOf returns the coordinates of a single-run geometry (Point,
// LineString, LinearRing).
func CoordsOf(g flatter) []Coord {
	return FromFlat(g.FlatCoords(), g.Stride(), g.Layout().ZIndex())
}

// FromFlat converts go-geom flat coordinates. zIndex is -1 when the layout
// has no z.
func FromFlat(flat []float64, stride, zIndex int) []Coord {
	if stride == 0 {
		return nil
	}
	pts := make([]Coord, 0, len(flat)/stride)
	for i := 0; i+stride <= len(flat); i += stride {
		c := NewCoord(flat[i], flat[i+1])
		if zIndex >= 0 {
			c.Z = flat[i+zIndex]
		}
		pts = append(pts, c)
	}
	return pts
}

// ToFlat converts pts into flat coordinates of layout, which must be XY or
// XYZ. Missing z values are written as 0.
func ToFlat(pts []Coord, layout geom.Layout) []float64 {
	stride := layout.Stride()
	flat := make([]float64, 0, len(pts)*stride)
	for _, p := range pts {
		flat = append(flat, p.X, p.Y)
		if layout == geom.XYZ {
			z := p.Z
			if math.IsNaN(z) {
				z = 0
			}
			flat = append(flat, z)
		}
	}
	return flat
}

// IsEmpty reports whether g has no coordinates.
func IsEmpty(g geom.T) bool {
	if g == nil {
		return true
	}
	if gc, ok := g.(*geom.GeometryCollection); ok {
		for _, child := range gc.Geoms() {
			if !IsEmpty(child) {
				return false
			}
		}
		return true
	}
	return len(g.FlatCoords()) == 0
}

// DimensionOf returns the topological dimension of g, or DimFalse if g is
// empty.
func DimensionOf(g geom.T) (Dimension, error) {
	if IsEmpty(g) {
		return DimFalse, nil
	}
	switch g := g.(type) {
	case *geom.Point, *geom.MultiPoint:
		return DimPoint, nil
	case *geom.LineString, *geom.LinearRing, *geom.MultiLineString:
		return DimCurve, nil
	case *geom.Polygon, *geom.MultiPolygon:
		return DimSurface, nil
	case *geom.GeometryCollection:
		dim := DimFalse
		for _, child := range g.Geoms() {
			d, err := DimensionOf(child)
			if err != nil {
				return DimFalse, err
			}
			if d > dim {
				dim = d
			}
		}
		return dim, nil
	}
	return DimFalse, errors.Newf("unsupported geometry type %T", g)
}

// HasBoundary reports whether g has a non-empty boundary under rule. Points
// have no boundary, areas always have one, and lines have one when some
// endpoint is in the boundary according to rule.
func HasBoundary(g geom.T, rule BoundaryNodeRule) (bool, error) {
	dim, err := DimensionOf(g)
	if err != nil {
		return false, err
	}
	switch dim {
	case DimCurve:
		counts := make(map[r2.Point]int)
		if err := countLineEndpoints(g, counts); err != nil {
			return false, err
		}
		for _, n := range counts {
			if rule.IsInBoundary(n) {
				return true, nil
			}
		}
		return false, nil
	case DimSurface:
		return true, nil
	}
	return false, nil
}

func countLineEndpoints(g geom.T, counts map[r2.Point]int) error {
	switch g := g.(type) {
	case *geom.LineString, *geom.LinearRing:
		pts := CoordsOf(g)
		if len(pts) == 0 {
			return nil
		}
		counts[pts[0].Point()]++
		counts[pts[len(pts)-1].Point()]++
	case *geom.MultiLineString:
		for i := 0; i < g.NumLineStrings(); i++ {
			if err := countLineEndpoints(g.LineString(i), counts); err != nil {
				return err
			}
		}
	case *geom.GeometryCollection:
		for _, child := range g.Geoms() {
			if err := countLineEndpoints(child, counts); err != nil {
				return err
			}
		}
	}
	return nil
}

// BoundaryDimensionOf returns the dimension of the boundary of g under rule,
// or DimFalse if g has no boundary.
func BoundaryDimensionOf(g geom.T, rule BoundaryNodeRule) (Dimension, error) {
	ok, err := HasBoundary(g, rule)
	if err != nil || !ok {
		return DimFalse, err
	}
	dim, err := DimensionOf(g)
	if err != nil {
		return DimFalse, err
	}
	if dim == DimCurve {
		return DimPoint, nil
	}
	return DimCurve, nil
}

// EnvelopeOf returns the bounding rectangle of g.
func EnvelopeOf(g geom.T) r2.Rect {
	if IsEmpty(g) {
		return r2.EmptyRect()
	}
	if gc, ok := g.(*geom.GeometryCollection); ok {
		r := r2.EmptyRect()
		for _, child := range gc.Geoms() {
			r = r.Union(EnvelopeOf(child))
		}
		return r
	}
	return Envelope(FromFlat(g.FlatCoords(), g.Stride(), -1))
}

// HasZ reports whether some coordinate of g carries an elevation.
func HasZ(g geom.T) bool {
	if g == nil {
		return false
	}
	if gc, ok := g.(*geom.GeometryCollection); ok {
		for _, child := range gc.Geoms() {
			if HasZ(child) {
				return true
			}
		}
		return false
	}
	return g.Layout().ZIndex() >= 0 && len(g.FlatCoords()) > 0
}
