package main

import (
	goflag "flag"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix prefixes the environment variables read for every flag, with
// dashes replaced by underscores: GOTOPO_BOUNDARY_RULE.
const envPrefix = "GOTOPO"

// subCommand is a command with its own configuration. Values come from
// flags, then GOTOPO_ environment variables, then the --config file.
type subCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper
}

// newRootCmd returns the gotopo command tree writing results to out.
func newRootCmd(out io.Writer) *cobra.Command {
	rootConf := viper.New()
	root := &cobra.Command{
		Use:   "gotopo",
		Short: "Robust planar topology: DE-9IM relations and overlays",
		Long: `
gotopo computes topological relations and boolean overlays of planar
geometries given as WKT or hex WKB.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().String("config", "",
		"Configuration file. Its values are overridden by environment variables and flags.")
	root.PersistentFlags().String("format", "wkt", "Input format, one of [wkt, wkbhex].")
	root.PersistentFlags().String("boundary-rule", "mod2",
		"Boundary node rule, one of [mod2, endpoint, multivalent, monovalent].")
	_ = rootConf.BindPFlags(root.PersistentFlags())
	root.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	subcommands := []*subCommand{newRelateCmd(), newOverlayCmd(), newOrientCmd()}
	for _, sc := range subcommands {
		root.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		_ = sc.Conf.BindPFlags(sc.Cmd.Flags())
		_ = sc.Conf.BindPFlags(root.PersistentFlags())
		sc.Conf.SetEnvPrefix(envPrefix)
		sc.Conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		sc.Conf.AutomaticEnv()
	}
	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return nil
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			if err := sc.Conf.ReadInConfig(); err != nil {
				return errors.Wrapf(err, "reading config %s", cfg)
			}
		}
		return nil
	}
	return root
}
