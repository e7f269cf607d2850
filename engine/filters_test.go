package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// FIXTURES
// ============================================================================

func rec(price, income float64, proximity string) Record {
	return Record{
		MedianHouseValue: price,
		MedianIncome:     income,
		OceanProximity:   proximity,
		Latitude:         37.88,
		Longitude:        -122.23,
	}
}

// scenarioTable is the five-record end-to-end fixture.
func scenarioTable() *Table {
	return NewTable([]Record{
		rec(50000, 1.0, "INLAND"),
		rec(150000, 3.0, "INLAND"),
		rec(250000, 3.0, "INLAND"),
		rec(350000, 5.0, "INLAND"),
		rec(450000, 5.0, "INLAND"),
	})
}

func mixedTable() *Table {
	return NewTable([]Record{
		rec(452600, 8.3252, "NEAR BAY"),
		rec(358500, 8.3014, "NEAR BAY"),
		rec(85700, 2.5, "INLAND"),
		rec(72200, 1.9911, "INLAND"),
		rec(150000, 4.5, "<1H OCEAN"),
		rec(241400, 3.2031, "<1H OCEAN"),
		rec(500001, 6.1, "NEAR OCEAN"),
		rec(99700, 2.5001, "INLAND"),
		rec(200000, 4.4999, "ISLAND"),
		rec(175000, 3.0, "NEAR OCEAN"),
	})
}

func allowAll(t *Table, band IncomeBand) FilterConfig {
	return FilterConfig{
		PriceThreshold:     0,
		AllowedProximities: t.Proximities(),
		IncomeBand:         band,
	}
}

// ============================================================================
// FILTER TESTS
// ============================================================================

func TestFilter_EndToEndScenario(t *testing.T) {
	table := scenarioTable()
	cfg := FilterConfig{
		PriceThreshold:     200000,
		AllowedProximities: []string{"INLAND"},
		IncomeBand:         BandMid,
	}

	subset := Filter(table, cfg)

	require.Equal(t, 1, subset.Len())
	assert.Equal(t, 250000.0, subset.At(0).MedianHouseValue)
	assert.Equal(t, 3.0, subset.At(0).MedianIncome)
	assert.Equal(t, []uint32{2}, subset.RowIDs())
}

func TestFilter_EmptyProximitiesKeepsNothing(t *testing.T) {
	table := mixedTable()
	for _, band := range IncomeBands {
		for _, threshold := range []float64{0, 100000, 1e9} {
			cfg := FilterConfig{PriceThreshold: threshold, IncomeBand: band}
			assert.Equal(t, 0, Filter(table, cfg).Len(), "band=%s threshold=%v", band, threshold)

			cfg.AllowedProximities = []string{}
			assert.Equal(t, 0, Filter(table, cfg).Len())
		}
	}
}

func TestFilter_PriceThresholdIsInclusive(t *testing.T) {
	table := scenarioTable()
	cfg := allowAll(table, BandHigh)
	cfg.PriceThreshold = 350000

	subset := Filter(table, cfg)

	require.Equal(t, 2, subset.Len())
	assert.Equal(t, 350000.0, subset.At(0).MedianHouseValue)
	assert.Equal(t, 450000.0, subset.At(1).MedianHouseValue)
}

func TestFilter_ProximityExactMatch(t *testing.T) {
	table := mixedTable()
	cfg := allowAll(table, BandHigh)
	cfg.AllowedProximities = []string{"near bay", "NEAR OCEAN"}

	subset := Filter(table, cfg)

	require.Equal(t, 1, subset.Len(), "only NEAR OCEAN matches; labels are case-sensitive")
	assert.Equal(t, "NEAR OCEAN", subset.At(0).OceanProximity)
}

func TestFilter_UnknownProximityKeepsNothing(t *testing.T) {
	table := mixedTable()
	cfg := allowAll(table, BandLow)
	cfg.AllowedProximities = []string{"MOON"}

	assert.Equal(t, 0, Filter(table, cfg).Len())
}

func TestFilter_DuplicateProximitiesCountOnce(t *testing.T) {
	table := mixedTable()
	cfg := allowAll(table, BandLow)
	cfg.AllowedProximities = []string{"INLAND", "INLAND"}

	subset := Filter(table, cfg)
	assert.Equal(t, 2, subset.Len())
}

func TestFilter_InvalidBandKeepsNothing(t *testing.T) {
	table := mixedTable()
	cfg := allowAll(table, IncomeBand(7))

	assert.Equal(t, 0, Filter(table, cfg).Len())
}

func TestFilter_EmptyTable(t *testing.T) {
	table := NewTable(nil)
	subset := Filter(table, FilterConfig{AllowedProximities: []string{"INLAND"}})

	assert.Equal(t, 0, subset.Len())
	assert.Empty(t, subset.Records())
}

func TestFilter_BandsPartitionSubset(t *testing.T) {
	table := mixedTable()

	total := 0
	seen := make(map[uint32]IncomeBand)
	for _, band := range IncomeBands {
		subset := Filter(table, allowAll(table, band))
		total += subset.Len()
		for _, id := range subset.RowIDs() {
			prev, dup := seen[id]
			assert.False(t, dup, "row %d in both %s and %s", id, prev, band)
			seen[id] = band
		}
	}
	assert.Equal(t, table.Len(), total, "every record falls into exactly one band")

	counts := CountByBand(table)
	assert.Equal(t, table.Len(), counts[BandLow]+counts[BandMid]+counts[BandHigh])
}

func TestFilter_IsIdempotentAndLeavesTableUnchanged(t *testing.T) {
	table := mixedTable()
	before := table.Proximities()
	snapshot := make([]Record, table.Len())
	for i := range snapshot {
		snapshot[i] = table.At(i)
	}
	cfg := FilterConfig{
		PriceThreshold:     100000,
		AllowedProximities: []string{"NEAR BAY", "<1H OCEAN", "INLAND"},
		IncomeBand:         BandHigh,
	}

	first := Filter(table, cfg).Records()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Filter(table, cfg).Records())
	}

	for i := range snapshot {
		assert.Equal(t, snapshot[i], table.At(i))
	}
	assert.Equal(t, before, table.Proximities())
}

func TestFilter_PreservesTableOrder(t *testing.T) {
	table := mixedTable()
	subset := Filter(table, allowAll(table, BandLow))

	ids := subset.RowIDs()
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestFilter_MonotonicInPriceThreshold(t *testing.T) {
	table := mixedTable()
	for _, band := range IncomeBands {
		cfg := allowAll(table, band)
		prev := Filter(table, cfg).Len()
		for threshold := 0.0; threshold <= 600000; threshold += 25000 {
			cfg.PriceThreshold = threshold
			n := Filter(table, cfg).Len()
			assert.LessOrEqual(t, n, prev, "band=%s threshold=%v", band, threshold)
			prev = n
		}
	}
}

func TestFilter_SubsetIsFreshAllocation(t *testing.T) {
	table := scenarioTable()
	cfg := allowAll(table, BandHigh)

	a := Filter(table, cfg)
	b := Filter(table, cfg)
	recs := a.Records()
	recs[0].MedianHouseValue = -1

	assert.Equal(t, 350000.0, b.At(0).MedianHouseValue)
	assert.Equal(t, 350000.0, table.At(3).MedianHouseValue)
}

func TestSubset_RecordsCopyExtras(t *testing.T) {
	r := rec(452600, 8.3252, "NEAR BAY")
	r.Extras = map[string]string{"population": "322"}
	table := NewTable([]Record{r})
	subset := Filter(table, allowAll(table, BandHigh))

	recs := subset.Records()
	require.Len(t, recs, 1)
	recs[0].Extras["population"] = "0"

	assert.Equal(t, "322", table.At(0).Extras["population"])
	assert.Equal(t, "322", subset.Records()[0].Extras["population"])
}

func TestFilterConfig_Allows(t *testing.T) {
	cfg := FilterConfig{AllowedProximities: []string{"INLAND", "NEAR BAY"}}

	assert.True(t, cfg.Allows("INLAND"))
	assert.False(t, cfg.Allows("inland"), "labels are case-sensitive")
	assert.False(t, FilterConfig{}.Allows("INLAND"))
}

// ============================================================================
// TABLE TESTS
// ============================================================================

func TestTable_ProximitiesFirstSeenOrder(t *testing.T) {
	table := mixedTable()
	assert.Equal(t, []string{"NEAR BAY", "INLAND", "<1H OCEAN", "NEAR OCEAN", "ISLAND"}, table.Proximities())

	got := table.Proximities()
	got[0] = "mutated"
	assert.Equal(t, "NEAR BAY", table.Proximities()[0], "Proximities returns a copy")
}
