package overlay

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/davidreynolds/gotopo/geomgraph"
	"github.com/davidreynolds/gotopo/internal/geomtest"
	"github.com/davidreynolds/gotopo/planar"
	"github.com/davidreynolds/gotopo/relate"
)

// measure returns the total area and length of g.
func measure(g geom.T) (area, length float64) {
	switch g := g.(type) {
	case *geom.GeometryCollection:
		for _, child := range g.Geoms() {
			a, l := measure(child)
			area += a
			length += l
		}
		return area, length
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			a, l := measure(g.Polygon(i))
			area += a
			length += l
		}
		return area, length
	case *geom.Polygon:
		return math.Abs(g.Area()), g.Length()
	case *geom.LineString:
		return 0, g.Length()
	case *geom.MultiLineString:
		return 0, g.Length()
	}
	return 0, 0
}

func round(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

// describe prints points and empty results as WKT and everything else by
// type, area and length, which do not depend on the order of result
// coordinates.
func describe(t *testing.T, g geom.T) string {
	switch g.(type) {
	case *geom.Point, *geom.MultiPoint:
		return geomtest.String(t, g)
	}
	if planar.IsEmpty(g) {
		return geomtest.String(t, g)
	}
	area, length := measure(g)
	typ := strings.TrimPrefix(fmt.Sprintf("%T", g), "*geom.")
	return fmt.Sprintf("%s area=%s length=%s", typ, round(area), round(length))
}

func TestOverlay(t *testing.T) {
	datadriven.RunTest(t, "testdata/overlay", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "overlay":
			var s string
			d.ScanArgs(t, "op", &s)
			op, err := ParseOpCode(s)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(d.Input), "\n")
			require.Len(t, lines, 2)
			res, err := Overlay(geomtest.WKT(t, lines[0]), geomtest.WKT(t, lines[1]), op, geomgraph.DefaultOptions())
			if err != nil {
				return fmt.Sprintf("error: %v", err)
			}
			return describe(t, res)
		default:
			return fmt.Sprintf("unknown command: %s", d.Cmd)
		}
	})
}

func TestOverlayMatchesExpectedShape(t *testing.T) {
	for _, tc := range []struct {
		op   OpCode
		a, b string
		want string
	}{
		{
			Intersection,
			"POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))",
			"POLYGON ((5 5, 15 5, 15 15, 5 15, 5 5))",
			"POLYGON ((5 5, 10 5, 10 10, 5 10, 5 5))",
		},
		{
			Difference,
			"POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))",
			"POLYGON ((5 5, 15 5, 15 15, 5 15, 5 5))",
			"POLYGON ((0 0, 10 0, 10 5, 5 5, 5 10, 0 10, 0 0))",
		},
		{
			Union,
			"POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))",
			"POLYGON ((10 0, 20 0, 20 10, 10 10, 10 0))",
			"POLYGON ((0 0, 20 0, 20 10, 0 10, 0 0))",
		},
		{
			Difference,
			"POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))",
			"POLYGON ((2 2, 4 2, 4 4, 2 4, 2 2))",
			"POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 4 2, 4 4, 2 4, 2 2))",
		},
	} {
		t.Run(tc.op.String(), func(t *testing.T) {
			res, err := Overlay(geomtest.WKT(t, tc.a), geomtest.WKT(t, tc.b), tc.op, geomgraph.DefaultOptions())
			require.NoError(t, err)
			eq, err := relate.Equals(res, geomtest.WKT(t, tc.want))
			require.NoError(t, err)
			require.True(t, eq, "got %s", geomtest.String(t, res))
		})
	}
}

func TestOverlayElevation(t *testing.T) {
	a := geomtest.WKT(t, "POLYGON Z ((0 0 1, 10 0 1, 10 10 1, 0 10 1, 0 0 1))")
	b := geomtest.WKT(t, "POLYGON Z ((5 5 3, 15 5 3, 15 15 3, 5 15 3, 5 5 3))")
	res, err := Overlay(a, b, Intersection, geomgraph.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, geom.XYZ, res.Layout())
	area, _ := measure(res)
	require.InDelta(t, 25, area, 1e-9)
	for _, c := range planar.FromFlat(res.FlatCoords(), res.Stride(), res.Layout().ZIndex()) {
		require.True(t, c.Z >= 1 && c.Z <= 3, "z of %s out of range", c)
	}

	// An explicit model supplies z for computed points of 2-D input.
	opts := geomgraph.DefaultOptions()
	opts.SetElevationModel(planar.ConstantElevation(7))
	res, err = Overlay(
		geomtest.WKT(t, "LINESTRING (0 0, 10 10)"),
		geomtest.WKT(t, "LINESTRING (0 10, 10 0)"),
		Intersection, opts)
	require.NoError(t, err)
	require.Equal(t, "POINT (5 5)", geomtest.String(t, res))
}

func TestIsResultOf(t *testing.T) {
	const (
		i = planar.Interior
		b = planar.Boundary
		e = planar.Exterior
	)
	for _, tc := range []struct {
		loc0, loc1 planar.Location
		want       [4]bool // intersection, union, difference, symdifference
	}{
		{i, i, [4]bool{true, true, false, false}},
		{i, e, [4]bool{false, true, true, true}},
		{e, i, [4]bool{false, true, false, true}},
		{e, e, [4]bool{false, false, false, false}},
		{b, i, [4]bool{true, true, false, false}},
		{b, e, [4]bool{false, true, true, true}},
	} {
		for k, op := range []OpCode{Intersection, Union, Difference, SymDifference} {
			require.Equal(t, tc.want[k], IsResultOf(tc.loc0, tc.loc1, op), "%s %s %s", op, tc.loc0, tc.loc1)
		}
	}
}

func TestParseOpCode(t *testing.T) {
	for _, op := range []OpCode{Intersection, Union, Difference, SymDifference} {
		got, err := ParseOpCode(strings.ToUpper(op.String()))
		require.NoError(t, err)
		require.Equal(t, op, got)
	}
	_, err := ParseOpCode("xor")
	require.Error(t, err)
}

func TestOverlayOpComputesOnce(t *testing.T) {
	o, err := NewOverlayOp(
		geomtest.WKT(t, "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))"),
		geomtest.WKT(t, "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))"),
		geomgraph.DefaultOptions())
	require.NoError(t, err)
	_, err = o.Result(Union)
	require.NoError(t, err)
	require.NotZero(t, o.Graph().Nodes().Len())
	_, err = o.Result(Union)
	require.Error(t, err)
	_, err = o.Result(OpCode(42))
	require.Error(t, err)
}
