// Package geomtest holds helpers for tests that build geometries from WKT.
package geomtest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/davidreynolds/gotopo/planar"
)

// WKT parses s, failing the test on error.
func WKT(t testing.TB, s string) geom.T {
	t.Helper()
	g, err := wkt.Unmarshal(s)
	require.NoError(t, err, "parsing %q", s)
	return g
}

// String returns the WKT of g, failing the test on error.
func String(t testing.TB, g geom.T) string {
	t.Helper()
	s, err := wkt.Marshal(g)
	require.NoError(t, err)
	return s
}

// Coords builds coordinates from x, y pairs.
func Coords(xy ...float64) []planar.Coord {
	pts := make([]planar.Coord, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		pts = append(pts, planar.NewCoord(xy[i], xy[i+1]))
	}
	return pts
}

// CoordsDiff returns a diff of the x and y values of want and got, or "" if
// they are equal.
func CoordsDiff(want, got []planar.Coord) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty(), cmpopts.IgnoreFields(planar.Coord{}, "Z"))
}
