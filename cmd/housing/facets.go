package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spektr-org/housing/engine"
)

func newFacetsCmd(g *globalOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "facets",
		Short: "List the widget options the dataset supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, s.facets, "pretty")
			}

			bold := color.New(color.Bold)
			f := s.facets
			bold.Fprintln(w, "Rows")
			fmt.Fprintf(w, "  %s\n", engine.FormatInt(f.Rows))
			bold.Fprintln(w, "Ocean proximity")
			for _, p := range f.Proximities {
				fmt.Fprintf(w, "  %s\n", p)
			}
			bold.Fprintln(w, "Median house value")
			fmt.Fprintf(w, "  %s – %s (slider %s – %s, step %s)\n",
				engine.FormatCurrency(f.PriceMin), engine.FormatCurrency(f.PriceMax),
				engine.FormatCurrency(g.preset.Price.Min), engine.FormatCurrency(g.preset.Price.Max),
				engine.FormatCurrency(g.preset.Price.Step))
			bold.Fprintln(w, "Income band")
			for _, b := range engine.IncomeBands {
				fmt.Fprintf(w, "  %-5s %s\n", b.String(), b.Label())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print facets as JSON")
	return cmd
}
