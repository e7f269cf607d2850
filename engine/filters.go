package engine

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// ============================================================================
// FILTERS — Three facet predicates, ANDed as row-id bitmaps
// ============================================================================
// Each predicate narrows independently to a bitmap of matching rows; the
// subset is their intersection. Bitmap iteration is ascending, so the subset
// keeps table order. Price runs first: it is a single numeric comparison.
// ============================================================================

// Filter returns the records of t that satisfy every facet in cfg.
// The result is freshly allocated and may be empty. t is not modified.
func Filter(t *Table, cfg FilterConfig) *Subset {
	if t.Len() == 0 || len(cfg.AllowedProximities) == 0 || !cfg.IncomeBand.Valid() {
		return &Subset{table: t}
	}

	rows := priceRows(t, cfg.PriceThreshold)
	if rows.IsEmpty() {
		return newSubset(t, rows)
	}

	rows.And(t.proximityRows(cfg.AllowedProximities))
	if rows.IsEmpty() {
		return newSubset(t, rows)
	}

	rows.And(bandRows(t, cfg.IncomeBand))
	return newSubset(t, rows)
}

// priceRows keeps rows with MedianHouseValue >= threshold.
func priceRows(t *Table, threshold float64) *roaring.Bitmap {
	return matchRows(t, func(r Record) bool {
		return r.MedianHouseValue >= threshold
	})
}

// bandRows keeps rows whose MedianIncome lies in band.
func bandRows(t *Table, band IncomeBand) *roaring.Bitmap {
	return matchRows(t, func(r Record) bool {
		return band.Contains(r.MedianIncome)
	})
}

func matchRows(t *Table, pred func(Record) bool) *roaring.Bitmap {
	ids := make([]uint32, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if pred(t.records[i]) {
			ids = append(ids, uint32(i))
		}
	}
	bm := roaring.New()
	bm.AddMany(ids)
	return bm
}

// CountByBand splits a view by income band. The three counts always sum to v.Len().
func CountByBand(v RecordView) map[IncomeBand]int {
	counts := make(map[IncomeBand]int, len(IncomeBands))
	for i := 0; i < v.Len(); i++ {
		counts[BandOf(v.At(i).MedianIncome)]++
	}
	return counts
}
