package relate

import (
	"github.com/davidreynolds/gotopo/geomgraph"
	"github.com/davidreynolds/gotopo/planar"
	"github.com/twpayne/go-geom"
)

// Relate returns the DE-9IM matrix of a and b.
func Relate(a, b geom.T, opts geomgraph.Options) (*planar.IntersectionMatrix, error) {
	rc, err := NewRelateComputer(a, b, opts)
	if err != nil {
		return nil, err
	}
	return rc.ComputeIM()
}

// RelatePattern reports whether the DE-9IM matrix of a and b matches
// pattern.
func RelatePattern(a, b geom.T, pattern string, opts geomgraph.Options) (bool, error) {
	im, err := Relate(a, b, opts)
	if err != nil {
		return false, err
	}
	return im.Matches(pattern)
}

func relate(a, b geom.T) (*planar.IntersectionMatrix, error) {
	return Relate(a, b, geomgraph.DefaultOptions())
}

// relateDims also returns the dimensions of a and b, which some predicates
// depend on.
func relateDims(a, b geom.T) (im *planar.IntersectionMatrix, dimA, dimB planar.Dimension, err error) {
	if im, err = relate(a, b); err != nil {
		return nil, 0, 0, err
	}
	if dimA, err = planar.DimensionOf(a); err != nil {
		return nil, 0, 0, err
	}
	if dimB, err = planar.DimensionOf(b); err != nil {
		return nil, 0, 0, err
	}
	return im, dimA, dimB, nil
}

// Intersects reports whether a and b have at least one point in common.
func Intersects(a, b geom.T) (bool, error) {
	im, err := relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsIntersects(), nil
}

// Disjoint reports whether a and b have no point in common.
func Disjoint(a, b geom.T) (bool, error) {
	im, err := relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsDisjoint(), nil
}

// Touches reports whether a and b meet only at their boundaries.
func Touches(a, b geom.T) (bool, error) {
	im, dimA, dimB, err := relateDims(a, b)
	if err != nil {
		return false, err
	}
	return im.IsTouches(dimA, dimB), nil
}

// Crosses reports whether a and b cross.
func Crosses(a, b geom.T) (bool, error) {
	im, dimA, dimB, err := relateDims(a, b)
	if err != nil {
		return false, err
	}
	return im.IsCrosses(dimA, dimB), nil
}

// Within reports whether a lies within b.
func Within(a, b geom.T) (bool, error) {
	im, err := relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsWithin(), nil
}

// Contains reports whether a contains b.
func Contains(a, b geom.T) (bool, error) {
	im, err := relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsContains(), nil
}

// Overlaps reports whether a and b overlap.
func Overlaps(a, b geom.T) (bool, error) {
	im, dimA, dimB, err := relateDims(a, b)
	if err != nil {
		return false, err
	}
	return im.IsOverlaps(dimA, dimB), nil
}

// Equals reports whether a and b are topologically equal.
func Equals(a, b geom.T) (bool, error) {
	im, dimA, dimB, err := relateDims(a, b)
	if err != nil {
		return false, err
	}
	return im.IsEquals(dimA, dimB), nil
}

// Covers reports whether every point of b is a point of a.
func Covers(a, b geom.T) (bool, error) {
	im, err := relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsCovers(), nil
}

// CoveredBy reports whether every point of a is a point of b.
func CoveredBy(a, b geom.T) (bool, error) {
	im, err := relate(a, b)
	if err != nil {
		return false, err
	}
	return im.IsCoveredBy(), nil
}
