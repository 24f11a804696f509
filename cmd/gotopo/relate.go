package main

import (
	"fmt"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/davidreynolds/gotopo/relate"
)

// addPrecisionFlag declares the fixed precision scale shared by the graph
// commands. Zero keeps full float64 precision.
func addPrecisionFlag(fs *flag.FlagSet) {
	fs.Float64("precision-scale", 0,
		"Round computed intersection points to multiples of 1/scale. 0 keeps full precision.")
}

func newRelateCmd() *subCommand {
	sc := &subCommand{}
	sc.Cmd = &cobra.Command{
		Use:   "relate A B",
		Short: "Print the DE-9IM matrix of two geometries",
		Long: `
Print the DE-9IM intersection matrix of A and B, or with --pattern whether
the matrix matches the pattern.
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gs, err := parseGeometries(sc.Conf, args)
			if err != nil {
				return err
			}
			opts, err := options(sc.Conf)
			if err != nil {
				return err
			}
			if pattern := sc.Conf.GetString("pattern"); pattern != "" {
				ok, err := relate.RelatePattern(gs[0], gs[1], pattern, opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ok)
				return nil
			}
			im, err := relate.Relate(gs[0], gs[1], opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), im)
			return nil
		},
	}
	sc.Cmd.Flags().String("pattern", "", "DE-9IM pattern to match, e.g. T*F**F***.")
	addPrecisionFlag(sc.Cmd.Flags())
	return sc
}
