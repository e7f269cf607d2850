// Package plot renders engine results to PNG images with go-chart.
package plot

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/housing/engine"
)

// ErrEmpty is returned when a chart has nothing to draw.
var ErrEmpty = errors.New("nothing to plot")

// Image size in pixels.
const (
	Width  = 1024
	Height = 640
)

// File names written by RenderAll.
const (
	MapFile       = "map.png"
	HistogramFile = "histogram.png"
	ScatterFile   = "income_price.png"
	BoxPlotFile   = "boxplot.png"
)

var (
	primary   = hexColor("#4F46E5")
	secondary = hexColor("#10B981")
	accent    = hexColor("#EF4444")
)

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    width,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: width,
	}
}

// RenderAll writes one PNG per chart into dir and returns the paths written.
// Charts with no data are skipped, not treated as errors.
func RenderAll(dir string, res *engine.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart directory: %w", err)
	}

	jobs := []struct {
		name   string
		render func(io.Writer) error
	}{
		{MapFile, func(w io.Writer) error { return Map(w, res.Geo) }},
		{HistogramFile, func(w io.Writer) error { return Histogram(w, res.Histogram) }},
		{ScatterFile, func(w io.Writer) error { return Scatter(w, res.Pairs) }},
		{BoxPlotFile, func(w io.Writer) error { return BoxPlot(w, res.Groups) }},
	}

	var written []string
	for _, job := range jobs {
		path := filepath.Join(dir, job.name)
		err := writeFile(path, job.render)
		if errors.Is(err, ErrEmpty) {
			slog.Debug("skipped empty chart", "file", job.name)
			continue
		}
		if err != nil {
			return written, fmt.Errorf("render %s: %w", job.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".chart-*.png")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // no-op after rename

	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Map draws block groups at (longitude, latitude), colored by price.
func Map(w io.Writer, geo []engine.GeoPoint) error {
	if len(geo) == 0 {
		return ErrEmpty
	}
	xs := make([]float64, len(geo))
	ys := make([]float64, len(geo))
	prices := make([]float64, len(geo))
	lo, hi := geo[0].MedianHouseValue, geo[0].MedianHouseValue
	for i, p := range geo {
		xs[i], ys[i], prices[i] = p.Longitude, p.Latitude, p.MedianHouseValue
		lo = min(lo, p.MedianHouseValue)
		hi = max(hi, p.MedianHouseValue)
	}

	style := pointStyle(primary, 3)
	style.DotColorProvider = func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
		if hi == lo {
			return primary
		}
		return chart.Viridis(prices[index], lo, hi)
	}

	ch := chart.Chart{
		Title:  engine.TitleMap,
		Width:  Width,
		Height: Height,
		XAxis:  chart.XAxis{Name: "Longitude", Range: paddedRange(xs)},
		YAxis:  chart.YAxis{Name: "Latitude", Range: paddedRange(ys)},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    "Block groups",
			Style:   style,
			XValues: xs,
			YValues: ys,
		}},
	}
	return ch.Render(chart.PNG, w)
}

// Histogram draws the binned price distribution as a filled step outline.
func Histogram(w io.Writer, hist engine.HistogramData) error {
	if len(hist.Bins) == 0 {
		return ErrEmpty
	}

	xs := []float64{hist.Bins[0].Low}
	ys := []float64{0}
	var top float64
	for _, b := range hist.Bins {
		c := float64(b.Count)
		xs = append(xs, b.Low, b.High)
		ys = append(ys, c, c)
		top = max(top, c)
	}
	xs = append(xs, hist.Bins[len(hist.Bins)-1].High)
	ys = append(ys, 0)

	style := lineStyle(primary, 1)
	style.FillColor = primary.WithAlpha(96)

	ch := chart.Chart{
		Title:  engine.TitleHistogram,
		Width:  Width,
		Height: Height,
		XAxis:  chart.XAxis{Name: "Median house value", Range: paddedRange(xs), ValueFormatter: dollars},
		YAxis:  chart.YAxis{Name: "Count", Range: &chart.ContinuousRange{Min: 0, Max: top * 1.05}},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    "Count",
			Style:   style,
			XValues: xs,
			YValues: ys,
		}},
	}
	return ch.Render(chart.PNG, w)
}

// Scatter draws median income against median house value.
func Scatter(w io.Writer, pairs []engine.Pair) error {
	if len(pairs) == 0 {
		return ErrEmpty
	}
	xs := make([]float64, len(pairs))
	ys := make([]float64, len(pairs))
	for i, p := range pairs {
		xs[i], ys[i] = p.MedianIncome, p.MedianHouseValue
	}

	ch := chart.Chart{
		Title:  engine.TitleScatter,
		Width:  Width,
		Height: Height,
		XAxis:  chart.XAxis{Name: "Median income", Range: paddedRange(xs)},
		YAxis:  chart.YAxis{Name: "Median house value", Range: paddedRange(ys), ValueFormatter: dollars},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    "Block groups",
			Style:   pointStyle(secondary.WithAlpha(128), 3),
			XValues: xs,
			YValues: ys,
		}},
	}
	return ch.Render(chart.PNG, w)
}

// BoxPlot draws one box per proximity group at x = 1, 2, …
func BoxPlot(w io.Writer, groups []engine.BoxStats) error {
	if len(groups) == 0 {
		return ErrEmpty
	}

	const half = 0.3
	var series []chart.Series
	// go-chart spans the x-axis from the first to the last tick, so the
	// unlabeled edge ticks keep the outer boxes inside the plot.
	ticks := []chart.Tick{{Value: 0.5}}
	var values []float64
	var outX, outY []float64

	for i, g := range groups {
		x := float64(i + 1)
		ticks = append(ticks, chart.Tick{Value: x, Label: g.Key})
		values = append(values, g.Min, g.Max)

		series = append(series,
			chart.ContinuousSeries{
				Name:    g.Key + " box",
				Style:   lineStyle(primary, 2),
				XValues: []float64{x - half, x + half, x + half, x - half, x - half},
				YValues: []float64{g.Q1, g.Q1, g.Q3, g.Q3, g.Q1},
			},
			chart.ContinuousSeries{
				Name:    g.Key + " median",
				Style:   lineStyle(accent, 2),
				XValues: []float64{x - half, x + half},
				YValues: []float64{g.Median, g.Median},
			},
			chart.ContinuousSeries{
				Name:    g.Key + " lower whisker",
				Style:   lineStyle(primary, 1),
				XValues: []float64{x, x},
				YValues: []float64{g.LowerWhisker, g.Q1},
			},
			chart.ContinuousSeries{
				Name:    g.Key + " upper whisker",
				Style:   lineStyle(primary, 1),
				XValues: []float64{x, x},
				YValues: []float64{g.Q3, g.UpperWhisker},
			},
		)
		for _, v := range g.Outliers {
			outX = append(outX, x)
			outY = append(outY, v)
		}
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(groups)) + 0.5})
	if len(outX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "outliers",
			Style:   pointStyle(accent, 2),
			XValues: outX,
			YValues: outY,
		})
	}

	ch := chart.Chart{
		Title:  engine.TitleBoxPlot,
		Width:  Width,
		Height: Height,
		XAxis: chart.XAxis{
			Name:  "Ocean proximity",
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(groups)) + 0.5},
			Ticks: ticks,
		},
		YAxis:  chart.YAxis{Name: "Median house value", Range: paddedRange(values), ValueFormatter: dollars},
		Series: series,
	}
	return ch.Render(chart.PNG, w)
}

// paddedRange spans values with 5% headroom and never collapses to zero width.
func paddedRange(values []float64) *chart.ContinuousRange {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = max(1, abs(lo)*0.05)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func dollars(v interface{}) string {
	if f, ok := v.(float64); ok {
		return engine.FormatCurrency(f)
	}
	return ""
}

func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
