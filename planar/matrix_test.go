package planar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntersectionMatrixMatches(t *testing.T) {
	tests := []struct {
		im      string
		pattern string
		want    bool
	}{
		{"212101212", "T*T***T**", true},
		{"212101212", "T*F**F***", false},
		{"FF2FF1212", "FF*FF****", true},
		{"0FFFFFFF2", "0FFFFFFF2", true},
		{"0FFFFFFF2", "1FFFFFFF2", false},
		{"1FFF0FFF2", "T*F**FFF*", true},
		{"FFFFFFFFF", "*********", true},
	}
	for _, test := range tests {
		im, err := ParseIntersectionMatrix(test.im)
		require.NoError(t, err)
		got, err := im.Matches(test.pattern)
		require.NoError(t, err)
		if got != test.want {
			t.Errorf("%s.Matches(%s) = %v, want %v", test.im, test.pattern, got, test.want)
		}
	}
}

func TestIntersectionMatrixErrors(t *testing.T) {
	im := NewIntersectionMatrix()
	_, err := im.Matches("T*")
	require.Error(t, err)
	_, err = im.Matches("T*T***T*X")
	require.Error(t, err)
	_, err = ParseIntersectionMatrix("21210121")
	require.Error(t, err)
}

func TestIntersectionMatrixSet(t *testing.T) {
	im := NewIntersectionMatrix()
	require.Equal(t, "FFFFFFFFF", im.String())

	im.Set(Exterior, Exterior, DimSurface)
	im.SetAtLeast(Interior, Boundary, DimPoint)
	im.SetAtLeast(Interior, Boundary, DimFalse)
	im.SetAtLeastIfValid(None, Interior, DimSurface)
	require.Equal(t, "F0FFFFFF2", im.String())

	require.NoError(t, im.SetAtLeastPattern("1*T***1**"))
	require.Equal(t, "10FFFF1F2", im.String())
	require.Equal(t, DimCurve, im.Get(Exterior, Interior))

	im.Transpose()
	require.Equal(t, "1F10FFFF2", im.String())
}

func TestIntersectionMatrixPredicates(t *testing.T) {
	parse := func(s string) *IntersectionMatrix {
		im, err := ParseIntersectionMatrix(s)
		require.NoError(t, err)
		return im
	}

	// Two overlapping squares.
	overlap := parse("212101212")
	require.True(t, overlap.IsIntersects())
	require.False(t, overlap.IsDisjoint())
	require.True(t, overlap.IsOverlaps(DimSurface, DimSurface))
	require.False(t, overlap.IsTouches(DimSurface, DimSurface))
	require.False(t, overlap.IsWithin())
	require.False(t, overlap.IsContains())

	// Squares sharing an edge.
	touch := parse("FF2F11212")
	require.True(t, touch.IsTouches(DimSurface, DimSurface))
	require.False(t, touch.IsOverlaps(DimSurface, DimSurface))

	// A square inside a larger one.
	within := parse("2FF1FF212")
	require.True(t, within.IsWithin())
	require.True(t, within.IsCoveredBy())
	require.False(t, within.IsContains())
	require.True(t, parse("2FF1FF212").Transpose().IsContains())

	equal := parse("2FFF1FFF2")
	require.True(t, equal.IsEquals(DimSurface, DimSurface))
	require.False(t, equal.IsEquals(DimSurface, DimCurve))
	require.True(t, equal.IsCovers())

	// Lines crossing at a point.
	cross := parse("0F1FF0102")
	require.True(t, cross.IsCrosses(DimCurve, DimCurve))
	require.False(t, cross.IsOverlaps(DimCurve, DimCurve))

	// A line crossing a polygon.
	lineArea := parse("101FF0212")
	require.True(t, lineArea.IsCrosses(DimCurve, DimSurface))
	require.True(t, parse("101FF0212").Transpose().IsCrosses(DimSurface, DimCurve))

	require.True(t, parse("FF1FF0102").IsDisjoint())
}
