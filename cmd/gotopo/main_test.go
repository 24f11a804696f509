package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/davidreynolds/gotopo/internal/geomtest"
	"github.com/davidreynolds/gotopo/relate"
)

const (
	square       = "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))"
	offsetSquare = "POLYGON ((5 5, 15 5, 15 15, 5 15, 5 5))"
	ring         = "LINESTRING (0 0, 10 0, 10 10, 0 0)"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestRelateCmd(t *testing.T) {
	for _, tc := range []struct {
		args []string
		want string
	}{
		{[]string{"relate", square, offsetSquare}, "212101212"},
		{[]string{"relate", square, "POINT (5 5)"}, "0F2FF1FF2"},
		{[]string{"relate", "POINT (5 5)", square}, "0FFFFF212"},
		{[]string{"relate", square, offsetSquare, "--pattern", "T*T***T**"}, "true"},
		{[]string{"relate", square, "POINT (20 20)", "--pattern", "T********"}, "false"},
		{[]string{"relate", "POINT (0 0)", ring}, "0FFFFF1F2"},
		{[]string{"relate", "POINT (0 0)", ring, "--boundary-rule", "endpoint"}, "F0FFFF1F2"},
		// POINT (1 1) as little-endian hex WKB.
		{[]string{"relate", "--format", "wkbhex",
			"0101000000000000000000F03F000000000000F03F",
			"0101000000000000000000F03F000000000000F03F"}, "0FFFFFFF2"},
	} {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			got, err := run(t, tc.args...)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestRelateCmdErrors(t *testing.T) {
	for _, args := range [][]string{
		{"relate", square},
		{"relate", square, "POINT (1"},
		{"relate", square, square, "--pattern", "XYZ"},
		{"relate", square, square, "--boundary-rule", "sometimes"},
		{"relate", square, square, "--format", "gml"},
		{"relate", square, "GEOMETRYCOLLECTION (POINT (1 1))"},
	} {
		_, err := run(t, args...)
		require.Error(t, err, "%v", args)
	}
}

func TestOverlayCmd(t *testing.T) {
	got, err := run(t, "overlay", "intersection", "LINESTRING (0 0, 10 10)", "LINESTRING (0 10, 10 0)")
	require.NoError(t, err)
	require.Equal(t, "POINT (5 5)", got)

	got, err = run(t, "overlay", "intersection", square, offsetSquare, "--output", "geojson")
	require.NoError(t, err)
	var g geom.T
	require.NoError(t, geojson.Unmarshal([]byte(got), &g))
	eq, err := relate.Equals(g, geomtest.WKT(t, "POLYGON ((5 5, 10 5, 10 10, 5 10, 5 5))"))
	require.NoError(t, err)
	require.True(t, eq, got)

	// Rounding to whole units moves the crossing at (3.5, 3.5) to (4, 4).
	got, err = run(t, "overlay", "intersection",
		"LINESTRING (0 0, 7 7)", "LINESTRING (0 7, 7 0)", "--precision-scale", "1")
	require.NoError(t, err)
	require.Equal(t, "POINT (4 4)", got)

	_, err = run(t, "overlay", "xor", square, offsetSquare)
	require.Error(t, err)
	_, err = run(t, "overlay", "union", square, offsetSquare, "--output", "svg")
	require.Error(t, err)
}

func TestOrientCmd(t *testing.T) {
	for _, tc := range []struct {
		args []string
		want string
	}{
		{[]string{"0", "0", "10", "0", "5", "5"}, "CounterClockwise (1)"},
		{[]string{"0", "0", "10", "0", "5", "-5"}, "Clockwise (-1)"},
		{[]string{"0", "0", "10", "10", "20", "20"}, "Collinear (0)"},
	} {
		got, err := run(t, append([]string{"orient", "--"}, tc.args...)...)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
	_, err := run(t, "orient", "0", "0", "1", "1", "x", "2")
	require.Error(t, err)
}

func TestConfigSources(t *testing.T) {
	t.Setenv("GOTOPO_BOUNDARY_RULE", "endpoint")
	got, err := run(t, "relate", "POINT (0 0)", ring)
	require.NoError(t, err)
	require.Equal(t, "F0FFFF1F2", got)

	// Flags take precedence over the environment.
	got, err = run(t, "relate", "POINT (0 0)", ring, "--boundary-rule", "mod2")
	require.NoError(t, err)
	require.Equal(t, "0FFFFF1F2", got)

	t.Setenv("GOTOPO_BOUNDARY_RULE", "")
	cfg := filepath.Join(t.TempDir(), "gotopo.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("pattern: F********\n"), 0o644))
	got, err = run(t, "relate", "POINT (20 20)", square, "--config", cfg)
	require.NoError(t, err)
	require.Equal(t, "true", got)
}
