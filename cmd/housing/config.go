package main

import (
	"github.com/spf13/cobra"

	"github.com/spektr-org/housing/internal/config"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect preset files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective presets as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eff := *g.preset
			eff.Data = g.dataPath
			return config.Write(cmd.OutOrStdout(), &eff)
		},
	})
	return cmd
}
