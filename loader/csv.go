package loader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/spektr-org/housing/engine"
	"github.com/spektr-org/housing/schema"
)

// ============================================================================
// CSV LOADER — Parses the housing CSV into an immutable engine.Table
// ============================================================================
// Rows with any missing cell are dropped whole, never imputed. A row is
// also dropped when a required numeric cell does not parse to a finite
// number, when it is shorter than the header, or when the CSV reader
// rejects it.
// ============================================================================

// naTokens are cell values treated as missing, compared case-insensitively.
var naTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
}

// Stats reports what a load kept and dropped.
type Stats struct {
	Rows    int `json:"rows"`
	Dropped int `json:"dropped"`
}

// Load reads the dataset at path. Files ending in .zip, .gz or .zst are
// decompressed first. Any failure is a *LoadError.
func Load(path string, sch schema.Config) (*engine.Table, error) {
	rc, err := open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck // read-only

	t, stats, err := parse(rc, sch)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}

	slog.Info("loaded housing dataset", "path", path, "rows", stats.Rows, "dropped", stats.Dropped)
	if stats.Rows == 0 {
		slog.Warn("dataset has no complete rows", "path", path)
	}
	return t, nil
}

// Parse reads CSV from r using sch to locate columns.
func Parse(r io.Reader, sch schema.Config) (*engine.Table, error) {
	t, _, err := parse(r, sch)
	return t, err
}

// ParseWithStats is Parse that also reports kept and dropped row counts.
func ParseWithStats(r io.Reader, sch schema.Config) (*engine.Table, Stats, error) {
	return parse(r, sch)
}

func parse(r io.Reader, sch schema.Config) (*engine.Table, Stats, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1 // short rows are dropped below, not fatal
	reader.ReuseRecord = true

	// Read header
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, Stats{}, &LoadError{Kind: SchemaMismatch, Missing: sch.RequiredKeys(), Err: errors.New("empty file")}
	}
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, Stats{}, &LoadError{Kind: SchemaMismatch, Err: err}
		}
		return nil, Stats{}, &LoadError{Kind: Unreadable, Err: err}
	}
	headers = append([]string(nil), headers...)

	pos, missing := sch.Resolve(headers)
	if len(missing) > 0 {
		return nil, Stats{}, &LoadError{Kind: SchemaMismatch, Missing: missing}
	}

	p := newRowParser(headers, pos)

	var records []engine.Record
	var stats Stats
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				stats.Dropped++
				slog.Debug("dropped malformed row", "line", pe.Line, "err", pe.Err)
				continue
			}
			return nil, stats, &LoadError{Kind: Unreadable, Err: err}
		}

		rec, ok := p.parse(row)
		if !ok {
			stats.Dropped++
			continue
		}
		records = append(records, rec)
	}

	stats.Rows = len(records)
	return engine.NewTable(records), stats, nil
}

// ============================================================================
// ROW PARSER
// ============================================================================

type rowParser struct {
	width     int // header column count
	price     int
	income    int
	proximity int
	lat       int
	lon       int
	extras    []extraColumn
}

type extraColumn struct {
	key string
	idx int
}

func newRowParser(headers []string, pos schema.Positions) *rowParser {
	p := &rowParser{
		width:     len(headers),
		price:     pos[schema.MedianHouseValue],
		income:    pos[schema.MedianIncome],
		proximity: pos[schema.OceanProximity],
		lat:       pos[schema.Latitude],
		lon:       pos[schema.Longitude],
	}
	core := map[string]bool{
		schema.MedianHouseValue: true,
		schema.MedianIncome:     true,
		schema.OceanProximity:   true,
		schema.Latitude:         true,
		schema.Longitude:        true,
	}
	for i, h := range headers {
		key := schema.NormalizeHeader(h)
		if key == "" || core[key] || pos[key] != i {
			continue
		}
		p.extras = append(p.extras, extraColumn{key: key, idx: i})
	}
	return p
}

// parse converts one CSV row; ok is false when the row must be dropped.
func (p *rowParser) parse(row []string) (engine.Record, bool) {
	if len(row) < p.width {
		return engine.Record{}, false
	}
	for _, cell := range row[:p.width] {
		if isMissing(cell) {
			return engine.Record{}, false
		}
	}

	var rec engine.Record
	var ok bool
	if rec.MedianHouseValue, ok = parseFinite(row[p.price]); !ok {
		return engine.Record{}, false
	}
	if rec.MedianIncome, ok = parseFinite(row[p.income]); !ok {
		return engine.Record{}, false
	}
	if rec.Latitude, ok = parseFinite(row[p.lat]); !ok {
		return engine.Record{}, false
	}
	if rec.Longitude, ok = parseFinite(row[p.lon]); !ok {
		return engine.Record{}, false
	}
	rec.OceanProximity = strings.TrimSpace(row[p.proximity])

	if len(p.extras) > 0 {
		rec.Extras = make(map[string]string, len(p.extras))
		for _, e := range p.extras {
			rec.Extras[e.key] = strings.TrimSpace(row[e.idx])
		}
	}
	return rec, true
}

func isMissing(cell string) bool {
	return naTokens[strings.ToLower(strings.TrimSpace(cell))]
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
