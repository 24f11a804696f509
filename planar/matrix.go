package planar

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// IntersectionMatrix is a DE-9IM matrix. Rows are the Interior, Boundary and
// Exterior of the first geometry, columns those of the second. Entries are
// DimFalse, DimPoint, DimCurve or DimSurface.
type IntersectionMatrix struct {
	m [3][3]Dimension
}

// NewIntersectionMatrix returns a matrix with every entry DimFalse.
func NewIntersectionMatrix() *IntersectionMatrix {
	im := &IntersectionMatrix{}
	im.SetAll(DimFalse)
	return im
}

// ParseIntersectionMatrix parses a nine character dimension string such as
// "212101212".
func ParseIntersectionMatrix(s string) (*IntersectionMatrix, error) {
	im := NewIntersectionMatrix()
	if err := im.SetString(s); err != nil {
		return nil, err
	}
	return im, nil
}

// SetAll sets every entry to d.
func (im *IntersectionMatrix) SetAll(d Dimension) {
	for i := range im.m {
		for j := range im.m[i] {
			im.m[i][j] = d
		}
	}
}

// Set sets entry (row, col) to d.
func (im *IntersectionMatrix) Set(row, col Location, d Dimension) {
	im.m[row][col] = d
}

// SetString sets all entries from a nine character dimension string.
func (im *IntersectionMatrix) SetString(s string) error {
	dims, err := parseDimensions(s)
	if err != nil {
		return err
	}
	for i, d := range dims {
		im.m[i/3][i%3] = d
	}
	return nil
}

// SetAtLeast raises entry (row, col) to d if it is lower.
func (im *IntersectionMatrix) SetAtLeast(row, col Location, d Dimension) {
	if im.m[row][col] < d {
		im.m[row][col] = d
	}
}

// SetAtLeastIfValid is SetAtLeast, ignoring rows or columns that are None.
func (im *IntersectionMatrix) SetAtLeastIfValid(row, col Location, d Dimension) {
	if row >= 0 && col >= 0 {
		im.SetAtLeast(row, col, d)
	}
}

// SetAtLeastPattern raises every entry to the dimension given by the
// corresponding character of a nine character pattern. 'T', 'F' and '*'
// leave entries unchanged.
func (im *IntersectionMatrix) SetAtLeastPattern(s string) error {
	dims, err := parseDimensions(s)
	if err != nil {
		return err
	}
	for i, d := range dims {
		im.SetAtLeast(Location(i/3), Location(i%3), d)
	}
	return nil
}

// Get returns entry (row, col).
func (im *IntersectionMatrix) Get(row, col Location) Dimension {
	return im.m[row][col]
}

// Transpose swaps the roles of the two geometries in place and returns im.
func (im *IntersectionMatrix) Transpose() *IntersectionMatrix {
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			im.m[i][j], im.m[j][i] = im.m[j][i], im.m[i][j]
		}
	}
	return im
}

func (im *IntersectionMatrix) String() string {
	var b strings.Builder
	for i := range im.m {
		for j := range im.m[i] {
			b.WriteByte(im.m[i][j].Symbol())
		}
	}
	return b.String()
}

// Matches reports whether im matches a nine character DE-9IM pattern made of
// 'T', 'F', '*', '0', '1' and '2'.
func (im *IntersectionMatrix) Matches(pattern string) (bool, error) {
	if len(pattern) != 9 {
		return false, errors.Newf("invalid DE-9IM pattern %q: must be 9 characters", pattern)
	}
	for i := 0; i < 9; i++ {
		if _, ok := DimensionFromSymbol(pattern[i]); !ok {
			return false, errors.Newf("invalid character %q in DE-9IM pattern %q", pattern[i], pattern)
		}
	}
	for i := 0; i < 9; i++ {
		if !matchesSymbol(im.m[i/3][i%3], pattern[i]) {
			return false, nil
		}
	}
	return true, nil
}

func matchesSymbol(actual Dimension, required byte) bool {
	switch required {
	case '*':
		return true
	case 'T', 't':
		return isTrue(actual)
	case 'F', 'f':
		return actual == DimFalse
	case '0':
		return actual == DimPoint
	case '1':
		return actual == DimCurve
	case '2':
		return actual == DimSurface
	}
	return false
}

func parseDimensions(s string) ([9]Dimension, error) {
	var dims [9]Dimension
	if len(s) != 9 {
		return dims, errors.Newf("invalid dimension string %q: must be 9 characters", s)
	}
	for i := 0; i < 9; i++ {
		d, ok := DimensionFromSymbol(s[i])
		if !ok {
			return dims, errors.Newf("invalid dimension symbol %q in %q", s[i], s)
		}
		dims[i] = d
	}
	return dims, nil
}

func isTrue(d Dimension) bool {
	return d >= 0 || d == DimTrue
}

// IsDisjoint reports whether the geometries have no point in common.
func (im *IntersectionMatrix) IsDisjoint() bool {
	return im.m[Interior][Interior] == DimFalse &&
		im.m[Interior][Boundary] == DimFalse &&
		im.m[Boundary][Interior] == DimFalse &&
		im.m[Boundary][Boundary] == DimFalse
}

// IsIntersects reports whether the geometries have a point in common.
func (im *IntersectionMatrix) IsIntersects() bool { return !im.IsDisjoint() }

// IsTouches reports whether the geometries touch, given their dimensions.
func (im *IntersectionMatrix) IsTouches(dimA, dimB Dimension) bool {
	if dimA > dimB {
		// The matrix is symmetric in the entries this tests.
		return im.IsTouches(dimB, dimA)
	}
	if (dimA == DimSurface && dimB == DimSurface) ||
		(dimA == DimCurve && dimB == DimCurve) ||
		(dimA == DimCurve && dimB == DimSurface) ||
		(dimA == DimPoint && dimB == DimSurface) ||
		(dimA == DimPoint && dimB == DimCurve) {
		return im.m[Interior][Interior] == DimFalse &&
			(isTrue(im.m[Interior][Boundary]) || isTrue(im.m[Boundary][Interior]) || isTrue(im.m[Boundary][Boundary]))
	}
	return false
}

// IsCrosses reports whether the geometries cross, given their dimensions.
func (im *IntersectionMatrix) IsCrosses(dimA, dimB Dimension) bool {
	switch {
	case (dimA == DimPoint && dimB == DimCurve) ||
		(dimA == DimPoint && dimB == DimSurface) ||
		(dimA == DimCurve && dimB == DimSurface):
		return isTrue(im.m[Interior][Interior]) && isTrue(im.m[Interior][Exterior])
	case (dimA == DimCurve && dimB == DimPoint) ||
		(dimA == DimSurface && dimB == DimPoint) ||
		(dimA == DimSurface && dimB == DimCurve):
		return isTrue(im.m[Interior][Interior]) && isTrue(im.m[Exterior][Interior])
	case dimA == DimCurve && dimB == DimCurve:
		return im.m[Interior][Interior] == DimPoint
	}
	return false
}

// IsWithin reports whether the first geometry is within the second.
func (im *IntersectionMatrix) IsWithin() bool {
	return isTrue(im.m[Interior][Interior]) &&
		im.m[Interior][Exterior] == DimFalse &&
		im.m[Boundary][Exterior] == DimFalse
}

// IsContains reports whether the first geometry contains the second.
func (im *IntersectionMatrix) IsContains() bool {
	return isTrue(im.m[Interior][Interior]) &&
		im.m[Exterior][Interior] == DimFalse &&
		im.m[Exterior][Boundary] == DimFalse
}

func (im *IntersectionMatrix) hasPointInCommon() bool {
	return isTrue(im.m[Interior][Interior]) || isTrue(im.m[Interior][Boundary]) ||
		isTrue(im.m[Boundary][Interior]) || isTrue(im.m[Boundary][Boundary])
}

// IsCovers reports whether the first geometry covers the second.
func (im *IntersectionMatrix) IsCovers() bool {
	return im.hasPointInCommon() &&
		im.m[Exterior][Interior] == DimFalse &&
		im.m[Exterior][Boundary] == DimFalse
}

// IsCoveredBy reports whether the first geometry is covered by the second.
func (im *IntersectionMatrix) IsCoveredBy() bool {
	return im.hasPointInCommon() &&
		im.m[Interior][Exterior] == DimFalse &&
		im.m[Boundary][Exterior] == DimFalse
}

// IsEquals reports whether the geometries are topologically equal, given
// their dimensions.
func (im *IntersectionMatrix) IsEquals(dimA, dimB Dimension) bool {
	if dimA != dimB {
		return false
	}
	return isTrue(im.m[Interior][Interior]) &&
		im.m[Interior][Exterior] == DimFalse &&
		im.m[Boundary][Exterior] == DimFalse &&
		im.m[Exterior][Interior] == DimFalse &&
		im.m[Exterior][Boundary] == DimFalse
}

// IsOverlaps reports whether the geometries overlap, given their
// dimensions.
func (im *IntersectionMatrix) IsOverlaps(dimA, dimB Dimension) bool {
	switch {
	case (dimA == DimPoint && dimB == DimPoint) || (dimA == DimSurface && dimB == DimSurface):
		return isTrue(im.m[Interior][Interior]) && isTrue(im.m[Interior][Exterior]) && isTrue(im.m[Exterior][Interior])
	case dimA == DimCurve && dimB == DimCurve:
		return im.m[Interior][Interior] == DimCurve && isTrue(im.m[Interior][Exterior]) && isTrue(im.m[Exterior][Interior])
	}
	return false
}
