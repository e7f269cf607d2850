package engine

import (
	"maps"

	"github.com/RoaringBitmap/roaring/v2"
)

// ============================================================================
// RECORD VIEW — Read-only indexed access to records
// ============================================================================
// The engine never mutates loaded data. It reads through this interface.
//
// Implementations:
//   Table   — the full dataset, built once at start-up
//   Subset  — filtered rows (row ids into the table, zero-copy)
// ============================================================================

// RecordView provides indexed access to a dataset.
type RecordView interface {
	Len() int
	At(index int) Record
}

// ============================================================================
// TABLE — the immutable loaded dataset
// ============================================================================

// Table is the full dataset. It is safe to share: no method mutates it.
type Table struct {
	records     []Record
	proximities []string                   // first-seen order
	byProximity map[string]*roaring.Bitmap // read-only after NewTable
}

// NewTable takes ownership of records and indexes them by proximity.
// Callers must not modify the slice afterwards.
func NewTable(records []Record) *Table {
	t := &Table{
		records:     records,
		byProximity: make(map[string]*roaring.Bitmap),
	}
	for i, r := range records {
		bm, ok := t.byProximity[r.OceanProximity]
		if !ok {
			bm = roaring.New()
			t.byProximity[r.OceanProximity] = bm
			t.proximities = append(t.proximities, r.OceanProximity)
		}
		bm.Add(uint32(i))
	}
	for _, bm := range t.byProximity {
		bm.RunOptimize()
	}
	return t
}

func (t *Table) Len() int { return len(t.records) }

// At returns the i-th record. Its Extras map is shared with the table and
// must not be written; use Subset.Records for an owned copy.
func (t *Table) At(i int) Record { return t.records[i] }

// Proximities returns the distinct proximity labels in first-seen order.
func (t *Table) Proximities() []string {
	out := make([]string, len(t.proximities))
	copy(out, t.proximities)
	return out
}

// proximityRows returns a fresh bitmap of rows whose proximity is in allowed.
func (t *Table) proximityRows(allowed []string) *roaring.Bitmap {
	var sets []*roaring.Bitmap
	seen := make(map[string]bool, len(allowed))
	for _, p := range allowed {
		if seen[p] {
			continue
		}
		seen[p] = true
		if bm, ok := t.byProximity[p]; ok {
			sets = append(sets, bm)
		}
	}
	if len(sets) == 0 {
		return roaring.New()
	}
	return roaring.FastOr(sets...)
}

// ============================================================================
// SUBSET — filtered rows (zero-copy)
// ============================================================================

// Subset is an order-preserving selection of table rows.
// Holds row ids into the table — no record copy until Records is called.
type Subset struct {
	table *Table
	rows  []uint32
}

func newSubset(t *Table, rows *roaring.Bitmap) *Subset {
	return &Subset{table: t, rows: rows.ToArray()}
}

func (s *Subset) Len() int { return len(s.rows) }

func (s *Subset) At(i int) Record { return s.table.records[s.rows[i]] }

// RowIDs returns the table positions of the subset's records, ascending.
func (s *Subset) RowIDs() []uint32 {
	out := make([]uint32, len(s.rows))
	copy(out, s.rows)
	return out
}

// Records materializes the subset as a fresh slice. Extras maps are
// copied, so the result can be modified freely.
func (s *Subset) Records() []Record {
	out := make([]Record, len(s.rows))
	for i, id := range s.rows {
		r := s.table.records[id]
		r.Extras = maps.Clone(r.Extras)
		out[i] = r
	}
	return out
}

// ============================================================================
// GROUP VIEW — records of one box-plot group
// ============================================================================

type indexView struct {
	parent  RecordView
	indices []int
}

func (v *indexView) Len() int { return len(v.indices) }

func (v *indexView) At(i int) Record { return v.parent.At(v.indices[i]) }
