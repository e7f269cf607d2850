package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spektr-org/housing/internal/config"
	housinglog "github.com/spektr-org/housing/internal/log"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	verbose    bool
	quiet      bool
	noColor    bool
	configPath string
	dataPath   string

	preset *config.Config // loaded in PersistentPreRunE
}

// newRootCmd builds the command tree. A fresh tree per call keeps flag
// state out of package globals.
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "housing",
		Short: "Explore the California housing dataset from the terminal",
		Long: `housing loads a block-group housing dataset once, then filters it by a
minimum price, a set of ocean-proximity labels, and an income band, and
summarizes the result as a map, a price histogram, an income/price scatter,
and a per-proximity box-plot.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			housinglog.Setup(opts.verbose, opts.quiet, opts.noColor)
			if opts.noColor {
				color.NoColor = true
			}

			wd, err := os.Getwd()
			if err != nil {
				return exitErr(ExitInvalidArgs, "working directory: %v", err)
			}
			preset, err := config.Load(wd, opts.configPath)
			if err != nil {
				return exitErr(ExitInvalidArgs, "config: %v", err)
			}
			if !cmd.Flags().Changed("data") && preset.Data != "" {
				opts.dataPath = preset.Data
			}
			opts.preset = preset
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	pf.StringVar(&opts.configPath, "config", "", "preset file (YAML or .toml); default ./"+config.FileName+" if present")
	pf.StringVarP(&opts.dataPath, "data", "d", "housing.csv", "dataset path (.csv, .csv.gz, .csv.zst or .zip)")

	root.AddCommand(newExploreCmd(opts))
	root.AddCommand(newReplCmd(opts))
	root.AddCommand(newFacetsCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}
