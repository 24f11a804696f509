package main

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/davidreynolds/gotopo/planar"
)

func newOrientCmd() *subCommand {
	return &subCommand{Cmd: &cobra.Command{
		Use:   "orient x1 y1 x2 y2 x3 y3",
		Short: "Print the side of the line p1->p2 that p3 lies on",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v [6]float64
			for i, arg := range args {
				f, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return errors.Wrapf(err, "argument %d", i+1)
				}
				v[i] = f
			}
			o := planar.OrientationIndex(
				planar.NewCoord(v[0], v[1]), planar.NewCoord(v[2], v[3]), planar.NewCoord(v[4], v[5]))
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", o, int(o))
			return nil
		},
	}}
}
