package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spektr-org/housing/engine"
	"github.com/spektr-org/housing/internal/config"
	"github.com/spektr-org/housing/internal/plot"
)

type exploreOptions struct {
	minPrice    float64
	proximities []string
	none        bool
	band        engine.IncomeBand
	format      string
	outFile     string
	chartsDir   string
}

// *engine.IncomeBand is used directly as the --income flag value.
var _ pflag.Value = (*engine.IncomeBand)(nil)

func newExploreCmd(g *globalOptions) *cobra.Command {
	o := &exploreOptions{}

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Filter the dataset once and print the summaries",
		Example: `  housing explore --min-price 200000 --income mid
  housing explore --proximity INLAND --proximity "NEAR BAY" --format pretty
  housing explore --data housing.csv.zip --charts out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExplore(cmd, g, o)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&o.minPrice, "min-price", 0, "minimum median house value (default from preset slider)")
	f.StringArrayVarP(&o.proximities, "proximity", "p", nil, "ocean proximity to keep; repeat or comma-separate (default all)")
	f.BoolVar(&o.none, "none", false, "keep no ocean proximity (empty selection)")
	f.Var(&o.band, "income", "income band: low (≤2.5), mid (2.5–4.5), high (≥4.5) (default from preset)")
	f.StringVarP(&o.format, "format", "f", "", "output format: text, json, pretty, csv (default from preset)")
	f.StringVarP(&o.outFile, "out", "o", "", "write output to file instead of stdout")
	f.StringVar(&o.chartsDir, "charts", "", "also render PNG charts into this directory")
	cmd.MarkFlagsMutuallyExclusive("proximity", "none")
	return cmd
}

func runExplore(cmd *cobra.Command, g *globalOptions, o *exploreOptions) error {
	format := g.preset.OutputFormat
	if cmd.Flags().Changed("format") {
		format = o.format
	}
	if !validOutputFormat(format) {
		return exitErr(ExitInvalidArgs, "unknown --format %q", format)
	}

	s, err := openSession(g)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("min-price") {
		if err := s.setPrice(o.minPrice); err != nil {
			return exitErr(ExitInvalidArgs, "--min-price: %v", err)
		}
	}
	if cmd.Flags().Changed("income") {
		s.setBand(o.band)
	}
	switch {
	case o.none:
		s.selectNone()
	case len(o.proximities) > 0:
		if err := s.selectOnly(splitList(o.proximities)); err != nil {
			return exitErr(ExitInvalidArgs, "--proximity: %v", err)
		}
	}

	res := s.run()

	var w io.Writer = cmd.OutOrStdout()
	if o.outFile != "" {
		f, err := os.Create(o.outFile)
		if err != nil {
			return exitErr(ExitRenderError, "create output file: %v", err)
		}
		defer f.Close() //nolint:errcheck // flushed by writers below
		w = f
	}

	if err := writeResult(w, res, format, g.dataPath); err != nil {
		return exitErr(ExitRenderError, "write output: %v", err)
	}
	if o.outFile != "" {
		slog.Info("output written", "file", o.outFile, "format", format)
	}

	if o.chartsDir != "" {
		files, err := plot.RenderAll(o.chartsDir, res)
		if err != nil {
			return exitErr(ExitRenderError, "charts: %v", err)
		}
		slog.Info("charts written", "dir", o.chartsDir, "files", len(files))
	}
	return nil
}

func validOutputFormat(f string) bool {
	for _, ok := range config.OutputFormats {
		if f == ok {
			return true
		}
	}
	return false
}
