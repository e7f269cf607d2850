package engine

// ============================================================================
// HOUSING ENGINE TYPES — Records, facets, and render-ready output
// ============================================================================
// Record is one block group from the housing dataset. The engine reads only
// five of its fields; everything else rides along in Extras.
//
// Dependency: roaring bitmaps for row-id sets (see view.go, filters.go).
// ============================================================================

// ============================================================================
// RECORD
// ============================================================================

// Record is a single housing block-group observation.
type Record struct {
	MedianHouseValue float64 `json:"medianHouseValue"`
	MedianIncome     float64 `json:"medianIncome"` // tens of thousands
	OceanProximity   string  `json:"oceanProximity"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`

	// Extras holds the columns the engine never reads, keyed by snake_case header.
	Extras map[string]string `json:"extras,omitempty"`
}

// ============================================================================
// FILTER CONFIG — Contract between the presentation layer and the engine
// ============================================================================

// FilterConfig is the current facet state.
//
// AllowedProximities has set semantics. Unlike a generic dimension filter,
// an empty selection keeps nothing: a user who unticks every location sees
// an empty result, not the whole table.
type FilterConfig struct {
	PriceThreshold     float64    `json:"priceThreshold" yaml:"price_threshold" toml:"price_threshold"`
	AllowedProximities []string   `json:"allowedProximities" yaml:"allowed_proximities" toml:"allowed_proximities"`
	IncomeBand         IncomeBand `json:"incomeBand" yaml:"income_band" toml:"income_band"`
}

// Allows reports whether proximity is in the allowed set.
func (c FilterConfig) Allows(proximity string) bool {
	for _, p := range c.AllowedProximities {
		if p == proximity {
			return true
		}
	}
	return false
}

// ============================================================================
// RESULT — Render-ready output of one recomputation
// ============================================================================

// Result bundles everything the presentation layer needs after one facet change.
type Result struct {
	Count   int          `json:"count"`
	Config  FilterConfig `json:"config"`
	Reply   string       `json:"reply"`
	Charts  Charts       `json:"charts"`
	Stats   *TableData   `json:"stats"`
	Summary *TextData    `json:"summary"`

	// Subset feeds the geo layer directly; it is not serialized.
	Subset *Subset `json:"-"`

	// Raw chart-ready datasets, kept alongside the ChartConfigs for renderers
	// that draw their own marks (internal/plot).
	Geo       []GeoPoint    `json:"-"`
	Histogram HistogramData `json:"-"`
	Pairs     []Pair        `json:"-"`
	Groups    []BoxStats    `json:"-"`
}

// Charts holds the four fixed visual summaries.
type Charts struct {
	Map       *ChartConfig `json:"map"`
	Histogram *ChartConfig `json:"histogram"`
	Scatter   *ChartConfig `json:"scatter"`
	BoxPlot   *ChartConfig `json:"boxPlot"`
}

// ============================================================================
// AGGREGATION TYPES
// ============================================================================

// GeoPoint is one mark on the map layer.
type GeoPoint struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	MedianHouseValue float64 `json:"medianHouseValue"`
}

// Pair is one mark on the income/price scatter.
type Pair struct {
	MedianIncome     float64 `json:"medianIncome"`
	MedianHouseValue float64 `json:"medianHouseValue"`
}

// Bin is a half-open histogram interval [Low, High); the last bin is closed.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// HistogramData is the binned distribution of median house value.
type HistogramData struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Width float64 `json:"width"`
	Bins  []Bin   `json:"bins"`
}

// Total returns the sum of all bin counts.
func (h HistogramData) Total() int {
	n := 0
	for _, b := range h.Bins {
		n += b.Count
	}
	return n
}

// BoxStats is the box-plot summary of median house value for one proximity.
type BoxStats struct {
	Key          string    `json:"key"`
	Count        int       `json:"count"`
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	IQR          float64   `json:"iqr"`
	LowerWhisker float64   `json:"lowerWhisker"`
	UpperWhisker float64   `json:"upperWhisker"`
	Outliers     []float64 `json:"outliers,omitempty"`
}

// FacetOptions describes the widget choices a table supports.
type FacetOptions struct {
	Rows        int      `json:"rows"`
	Proximities []string `json:"proximities"`
	PriceMin    float64  `json:"priceMin"`
	PriceMax    float64  `json:"priceMax"`
	IncomeMin   float64  `json:"incomeMin"`
	IncomeMax   float64  `json:"incomeMax"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"` // "map", "histogram", "scatter", "boxplot"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint is a labelled value, an (x, y) mark, or both.
type ChartPoint struct {
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x,omitempty"`
	Value float64 `json:"value"`
	Size  float64 `json:"size,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "currency"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TEXT TYPES
// ============================================================================

// TextData is the headline numbers for one recomputation.
type TextData struct {
	Value        string  `json:"value"` // formatted record count
	Count        int     `json:"count"`
	Band         string  `json:"band"`
	MedianPrice  float64 `json:"medianPrice"`
	MeanIncome   float64 `json:"meanIncome"`
	Proximities  int     `json:"proximities"`
	DisplayPrice string  `json:"displayPrice"`
}
