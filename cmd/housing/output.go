package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/spektr-org/housing/engine"
)

// ============================================================================
// OUTPUT TYPES
// ============================================================================

type cliOutput struct {
	Data   string         `json:"data"`
	Result *engine.Result `json:"result"`
}

func writeResult(w io.Writer, res *engine.Result, format, dataPath string) error {
	switch format {
	case "json", "pretty":
		return writeJSON(w, cliOutput{Data: dataPath, Result: res}, format)
	case "csv":
		return writeCSV(w, res)
	default:
		writeText(w, res)
		return nil
	}
}

// ============================================================================
// TEXT OUTPUT
// ============================================================================

const histogramWidth = 40

func writeText(w io.Writer, res *engine.Result) {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cfg := res.Config
	bold.Fprintln(w, "California Housing (1990)")
	fmt.Fprintf(w, "  min price:   %s\n", engine.FormatCurrency(cfg.PriceThreshold))
	fmt.Fprintf(w, "  proximities: %s\n", proximityLabel(cfg.AllowedProximities))
	fmt.Fprintf(w, "  income band: %s\n", cfg.IncomeBand.Label())
	fmt.Fprintln(w)

	if res.Count == 0 {
		yellow.Fprintln(w, res.Reply)
		return
	}
	green.Fprintln(w, res.Reply)
	fmt.Fprintf(w, "  median price %s, mean income %.2f, %d proximity group(s)\n",
		res.Summary.DisplayPrice, res.Summary.MeanIncome, res.Summary.Proximities)
	fmt.Fprintln(w)

	bold.Fprintln(w, engine.TitleHistogram)
	peak := 0
	for _, b := range res.Histogram.Bins {
		peak = max(peak, b.Count)
	}
	for _, b := range res.Histogram.Bins {
		bar := 0
		if peak > 0 {
			bar = b.Count * histogramWidth / peak
		}
		fmt.Fprintf(w, "  %10s %s %s\n",
			engine.FormatCurrency(b.Low),
			green.Sprint(strings.Repeat("█", bar)),
			dim.Sprint(b.Count))
	}
	fmt.Fprintln(w)

	bold.Fprintln(w, engine.TitleBoxPlot)
	fmt.Fprintf(w, "  %-12s %7s %10s %10s %10s %10s %10s %8s\n",
		"proximity", "count", "min", "q1", "median", "q3", "max", "outliers")
	for _, g := range res.Groups {
		fmt.Fprintf(w, "  %-12s %7d %10s %10s %10s %10s %10s %8d\n",
			g.Key, g.Count,
			engine.FormatCurrency(g.Min),
			engine.FormatCurrency(g.Q1),
			engine.FormatCurrency(g.Median),
			engine.FormatCurrency(g.Q3),
			engine.FormatCurrency(g.Max),
			len(g.Outliers))
	}
}

func proximityLabel(p []string) string {
	if len(p) == 0 {
		return "(none)"
	}
	return strings.Join(p, ", ")
}

// ============================================================================
// CSV OUTPUT — histogram bins, a blank row, then the box-plot table
// ============================================================================

func writeCSV(w io.Writer, res *engine.Result) error {
	cw := csv.NewWriter(w)

	cw.Write([]string{"bin_low", "bin_high", "count"}) //nolint:errcheck // checked via cw.Error
	for _, b := range res.Histogram.Bins {
		cw.Write([]string{fmtNum(b.Low), fmtNum(b.High), fmt.Sprintf("%d", b.Count)}) //nolint:errcheck
	}
	cw.Write([]string{}) //nolint:errcheck

	if res.Stats != nil {
		headers := make([]string, len(res.Stats.Columns))
		for i, c := range res.Stats.Columns {
			headers[i] = c.Key
		}
		cw.Write(headers) //nolint:errcheck
		for _, row := range res.Stats.Rows {
			cw.Write(row) //nolint:errcheck
		}
	}

	cw.Flush()
	return cw.Error()
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v interface{}, format string) error {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// ============================================================================
// HELPERS
// ============================================================================

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
