package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ============================================================================
// AGGREGATORS — Chart-ready datasets derived from a RecordView
// ============================================================================
// Every derivation accepts an empty view and returns an empty result.
// Nothing here mutates the view or the table behind it.
// ============================================================================

// DefaultBins is the histogram bin count.
const DefaultBins = 30

// DefaultWhisker is the IQR multiple beyond which a value is an outlier.
const DefaultWhisker = 1.5

// ============================================================================
// POINT SERIES
// ============================================================================

// GeoSeries returns (latitude, longitude, price) per record, unmodified.
func GeoSeries(view RecordView) []GeoPoint {
	points := make([]GeoPoint, view.Len())
	for i := range points {
		r := view.At(i)
		points[i] = GeoPoint{
			Latitude:         r.Latitude,
			Longitude:        r.Longitude,
			MedianHouseValue: r.MedianHouseValue,
		}
	}
	return points
}

// IncomePricePairs returns (income, price) per record, unmodified.
func IncomePricePairs(view RecordView) []Pair {
	pairs := make([]Pair, view.Len())
	for i := range pairs {
		r := view.At(i)
		pairs[i] = Pair{MedianIncome: r.MedianIncome, MedianHouseValue: r.MedianHouseValue}
	}
	return pairs
}

// ============================================================================
// HISTOGRAM
// ============================================================================

// Histogram bins median house value into n equal-width bins spanning the
// view's own [min, max]. The last bin is closed so max is counted.
//
// Degenerate input: an empty view yields no bins; a view with a single
// distinct value yields one zero-width bin holding every record.
func Histogram(view RecordView, n int) HistogramData {
	if n <= 0 {
		n = DefaultBins
	}
	if view.Len() == 0 {
		return HistogramData{Bins: []Bin{}}
	}

	lo, hi := PriceRange(view)
	if lo == hi {
		return HistogramData{
			Min:  lo,
			Max:  hi,
			Bins: []Bin{{Low: lo, High: hi, Count: view.Len()}},
		}
	}

	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = lo + float64(i+1)*width
	}
	bins[n-1].High = hi

	for i := 0; i < view.Len(); i++ {
		bins[binIndex(view.At(i).MedianHouseValue, lo, width, n)].Count++
	}

	return HistogramData{Min: lo, Max: hi, Width: width, Bins: bins}
}

func binIndex(v, lo, width float64, n int) int {
	idx := int((v - lo) / width)
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// ============================================================================
// GROUPED BOX-PLOT STATISTICS
// ============================================================================

// GroupPriceStats partitions the view by ocean proximity and summarizes the
// price distribution of each group. Only groups present in the view appear;
// they are ordered by label.
func GroupPriceStats(view RecordView, whisker float64) []BoxStats {
	if view.Len() == 0 {
		return []BoxStats{}
	}
	if whisker <= 0 {
		whisker = DefaultWhisker
	}

	groups := groupByProximity(view)
	stats := make([]BoxStats, 0, len(groups))
	for _, g := range groups {
		values := make([]float64, g.view.Len())
		for i := range values {
			values[i] = g.view.At(i).MedianHouseValue
		}
		s := BoxSummary(values, whisker)
		s.Key = g.key
		stats = append(stats, s)
	}
	return stats
}

type proximityGroup struct {
	key  string
	view RecordView
}

func groupByProximity(view RecordView) []proximityGroup {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.At(i).OceanProximity
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}
	sort.Strings(order)

	groups := make([]proximityGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, proximityGroup{
			key:  key,
			view: &indexView{parent: view, indices: grouped[key]},
		})
	}
	return groups
}

// BoxSummary computes quartiles, whiskers and outliers for values.
// values is not modified; outliers are reported in input order.
func BoxSummary(values []float64, whisker float64) BoxStats {
	if len(values) == 0 {
		return BoxStats{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := Quantile(sorted, 0.25)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1
	lowFence := q1 - whisker*iqr
	highFence := q3 + whisker*iqr

	s := BoxStats{
		Count:  len(sorted),
		Min:    sorted[0],
		Q1:     q1,
		Median: Quantile(sorted, 0.5),
		Q3:     q3,
		Max:    sorted[len(sorted)-1],
		IQR:    iqr,
	}

	// Whiskers reach the most extreme values still inside the fences.
	s.LowerWhisker = s.Max
	s.UpperWhisker = s.Min
	for _, v := range sorted {
		if v >= lowFence && v < s.LowerWhisker {
			s.LowerWhisker = v
		}
		if v <= highFence && v > s.UpperWhisker {
			s.UpperWhisker = v
		}
	}
	for _, v := range values {
		if v < lowFence || v > highFence {
			s.Outliers = append(s.Outliers, v)
		}
	}
	return s
}

// Quantile returns the p-quantile of an ascending slice using linear
// interpolation between closest ranks (h = p·(n−1)).
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// ============================================================================
// FACETS
// ============================================================================

// Facets derives the widget options a table supports.
func Facets(t *Table) FacetOptions {
	opts := FacetOptions{
		Rows:        t.Len(),
		Proximities: t.Proximities(),
	}
	if t.Len() == 0 {
		return opts
	}
	opts.PriceMin, opts.PriceMax = PriceRange(t)
	opts.IncomeMin, opts.IncomeMax = t.At(0).MedianIncome, t.At(0).MedianIncome
	for i := 1; i < t.Len(); i++ {
		v := t.At(i).MedianIncome
		opts.IncomeMin = math.Min(opts.IncomeMin, v)
		opts.IncomeMax = math.Max(opts.IncomeMax, v)
	}
	return opts
}

// ============================================================================
// MEASURES
// ============================================================================

// PriceRange returns the smallest and largest median house value in view.
func PriceRange(view RecordView) (float64, float64) {
	if view.Len() == 0 {
		return 0, 0
	}
	lo := view.At(0).MedianHouseValue
	hi := lo
	for i := 1; i < view.Len(); i++ {
		v := view.At(i).MedianHouseValue
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// MedianPrice returns the median of median house value, or 0 for an empty view.
func MedianPrice(view RecordView) float64 {
	if view.Len() == 0 {
		return 0
	}
	values := make([]float64, view.Len())
	for i := range values {
		values[i] = view.At(i).MedianHouseValue
	}
	sort.Float64s(values)
	return Quantile(values, 0.5)
}

// MeanIncome returns the average median income, or 0 for an empty view.
func MeanIncome(view RecordView) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	var total float64
	for i := 0; i < n; i++ {
		total += view.At(i).MedianIncome
	}
	return total / float64(n)
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatCurrency formats an amount with a "$" prefix and comma separators,
// dropping cents for whole amounts.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	intPart := int64(amount)
	decPart := int64((amount-float64(intPart))*100 + 0.5)
	if decPart >= 100 {
		intPart++
		decPart -= 100
	}

	result := "$" + FormatInt(int(intPart))
	if decPart > 0 {
		result += fmt.Sprintf(".%02d", decPart)
	}
	if negative {
		result = "-" + result
	}
	return result
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LabelForField turns a snake_case key into a title-cased label.
func LabelForField(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
