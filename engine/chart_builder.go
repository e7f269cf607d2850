package engine

import "fmt"

// ============================================================================
// CHART BUILDER — Produces ChartConfigs from aggregated datasets
// ============================================================================
// One builder per fixed chart. Builders never return nil: an empty subset
// gives a chart with empty series so the frontend can still draw axes.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Chart titles and axis labels.
const (
	TitleMap       = "Housing locations"
	TitleHistogram = "Median house value distribution"
	TitleScatter   = "Median income vs. median house value"
	TitleBoxPlot   = "Median house value by ocean proximity"

	axisPrice     = "Median house value"
	axisIncome    = "Median income"
	axisCount     = "Count"
	axisLatitude  = "Latitude"
	axisLongitude = "Longitude"
	axisProximity = "Ocean proximity"
)

// Box-plot series names, one point per group in each.
var boxSeriesNames = []string{"min", "lowerWhisker", "q1", "median", "q3", "upperWhisker", "max"}

// BuildCharts produces all four charts for one recomputation.
func BuildCharts(geo []GeoPoint, hist HistogramData, pairs []Pair, groups []BoxStats) Charts {
	return Charts{
		Map:       BuildMapChart(geo),
		Histogram: BuildHistogramChart(hist),
		Scatter:   BuildScatterChart(pairs),
		BoxPlot:   BuildBoxPlotChart(groups),
	}
}

// BuildMapChart plots each block group at (longitude, latitude) sized by price.
func BuildMapChart(geo []GeoPoint) *ChartConfig {
	points := make([]ChartPoint, 0, len(geo))
	for _, p := range geo {
		points = append(points, ChartPoint{
			X:     p.Longitude,
			Value: p.Latitude,
			Size:  p.MedianHouseValue,
		})
	}
	return &ChartConfig{
		ChartType: "map",
		Title:     TitleMap,
		XAxis:     axisLongitude,
		YAxis:     axisLatitude,
		Series:    []ChartSeries{{Name: "Block groups", Data: points, Color: defaultColors[0]}},
		Colors:    assignColors(1),
	}
}

// BuildHistogramChart labels each bin by its range and plots its count.
func BuildHistogramChart(hist HistogramData) *ChartConfig {
	points := make([]ChartPoint, 0, len(hist.Bins))
	for _, b := range hist.Bins {
		points = append(points, ChartPoint{
			Label: binLabel(b),
			X:     RoundTo2(b.Low),
			Value: float64(b.Count),
		})
	}
	return &ChartConfig{
		ChartType: "histogram",
		Title:     TitleHistogram,
		XAxis:     axisPrice,
		YAxis:     axisCount,
		Series:    []ChartSeries{{Name: axisCount, Data: points, Color: defaultColors[0]}},
		Colors:    assignColors(1),
		ShowGrid:  true,
	}
}

// BuildScatterChart plots income against price.
func BuildScatterChart(pairs []Pair) *ChartConfig {
	points := make([]ChartPoint, 0, len(pairs))
	for _, p := range pairs {
		points = append(points, ChartPoint{X: p.MedianIncome, Value: p.MedianHouseValue})
	}
	return &ChartConfig{
		ChartType: "scatter",
		Title:     TitleScatter,
		XAxis:     axisIncome,
		YAxis:     axisPrice,
		Series:    []ChartSeries{{Name: "Block groups", Data: points, Color: defaultColors[1]}},
		Colors:    []string{defaultColors[1]},
		ShowGrid:  true,
	}
}

// BuildBoxPlotChart emits one series per box-plot statistic, each holding
// one point per proximity group, plus an "outliers" series.
func BuildBoxPlotChart(groups []BoxStats) *ChartConfig {
	series := make([]ChartSeries, 0, len(boxSeriesNames)+1)
	for i, name := range boxSeriesNames {
		points := make([]ChartPoint, 0, len(groups))
		for _, g := range groups {
			points = append(points, ChartPoint{Label: g.Key, Value: RoundTo2(boxValue(g, name))})
		}
		series = append(series, ChartSeries{
			Name:  name,
			Data:  points,
			Color: defaultColors[i%len(defaultColors)],
		})
	}

	var outliers []ChartPoint
	for _, g := range groups {
		for _, v := range g.Outliers {
			outliers = append(outliers, ChartPoint{Label: g.Key, Value: v})
		}
	}
	series = append(series, ChartSeries{Name: "outliers", Data: outliers})

	return &ChartConfig{
		ChartType:  "boxplot",
		Title:      TitleBoxPlot,
		XAxis:      axisProximity,
		YAxis:      axisPrice,
		Series:     series,
		Colors:     assignColors(len(series)),
		ShowLegend: len(groups) > 0,
		ShowGrid:   true,
	}
}

func boxValue(g BoxStats, name string) float64 {
	switch name {
	case "min":
		return g.Min
	case "lowerWhisker":
		return g.LowerWhisker
	case "q1":
		return g.Q1
	case "median":
		return g.Median
	case "q3":
		return g.Q3
	case "upperWhisker":
		return g.UpperWhisker
	case "max":
		return g.Max
	}
	return 0
}

func binLabel(b Bin) string {
	return fmt.Sprintf("%s–%s", FormatCurrency(b.Low), FormatCurrency(b.High))
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
