package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/davidreynolds/gotopo/overlay"
)

func newOverlayCmd() *subCommand {
	sc := &subCommand{}
	sc.Cmd = &cobra.Command{
		Use:   "overlay OP A B",
		Short: "Print the overlay of two geometries",
		Long: `
Print the intersection, union, difference or symdifference of A and B.
`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := overlay.ParseOpCode(args[0])
			if err != nil {
				return err
			}
			gs, err := parseGeometries(sc.Conf, args[1:])
			if err != nil {
				return err
			}
			opts, err := options(sc.Conf)
			if err != nil {
				return err
			}
			res, err := overlay.Overlay(gs[0], gs[1], op, opts)
			if err != nil {
				return err
			}
			s, err := formatGeometry(res, sc.Conf.GetString("output"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	sc.Cmd.Flags().String("output", "wkt", "Output format, one of [wkt, geojson].")
	addPrecisionFlag(sc.Cmd.Flags())
	return sc
}

func formatGeometry(g geom.T, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "wkt":
		s, err := wkt.Marshal(g)
		return s, errors.Wrap(err, "encoding WKT")
	case "geojson":
		b, err := geojson.Marshal(g)
		return string(b), errors.Wrap(err, "encoding GeoJSON")
	}
	return "", errors.Newf("unknown output format %q", format)
}
