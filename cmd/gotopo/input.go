package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkbhex"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/davidreynolds/gotopo/geomgraph"
	"github.com/davidreynolds/gotopo/planar"
)

// parseGeometry decodes s in the given input format.
func parseGeometry(s, format string) (geom.T, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(format) {
	case "", "wkt":
		g, err := wkt.Unmarshal(s)
		return g, errors.Wrapf(err, "parsing WKT %q", s)
	case "wkbhex":
		g, err := wkbhex.Decode(s)
		return g, errors.Wrapf(err, "decoding hex WKB %q", s)
	}
	return nil, errors.Newf("unknown input format %q", format)
}

// parseGeometries decodes each argument in the format configured in conf.
func parseGeometries(conf *viper.Viper, args []string) ([]geom.T, error) {
	format := conf.GetString("format")
	gs := make([]geom.T, 0, len(args))
	for _, arg := range args {
		g, err := parseGeometry(arg, format)
		if err != nil {
			return nil, err
		}
		gs = append(gs, g)
	}
	return gs, nil
}

// options builds graph options from conf.
func options(conf *viper.Viper) (geomgraph.Options, error) {
	opts := geomgraph.DefaultOptions()
	rule, err := planar.ParseBoundaryNodeRule(conf.GetString("boundary-rule"))
	if err != nil {
		return opts, err
	}
	opts.SetBoundaryNodeRule(rule)
	if scale := conf.GetFloat64("precision-scale"); scale != 0 {
		opts.SetPrecisionModel(planar.FixedPrecision(scale))
	}
	return opts, nil
}
