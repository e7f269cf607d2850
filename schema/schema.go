package schema

import "strings"

// ============================================================================
// SCHEMA — Describes the columns of the housing CSV
// ============================================================================
// The loader uses the schema to find required columns in the header row and
// to decide which columns ride along as inert extras.
// ============================================================================

// Column keys the engine reads.
const (
	MedianHouseValue = "median_house_value"
	MedianIncome     = "median_income"
	OceanProximity   = "ocean_proximity"
	Latitude         = "latitude"
	Longitude        = "longitude"
)

// Kind is the value type of a column.
type Kind string

const (
	Numeric     Kind = "numeric"
	Categorical Kind = "categorical"
)

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Columns     []ColumnMeta `json:"columns" yaml:"columns"`
}

// ColumnMeta describes one CSV column.
type ColumnMeta struct {
	Key         string `json:"key" yaml:"key"`
	DisplayName string `json:"displayName" yaml:"display_name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        Kind   `json:"kind" yaml:"kind"`
	Unit        string `json:"unit,omitempty" yaml:"unit,omitempty"` // "currency", "tens_of_thousands", "degrees"
	Required    bool   `json:"required" yaml:"required"`
}

// Housing returns the schema of the 1990 California housing dataset.
func Housing() Config {
	return Config{
		Name:        "California Housing (1990)",
		Description: "One row per census block group.",
		Columns: []ColumnMeta{
			{Key: Longitude, DisplayName: "Longitude", Kind: Numeric, Unit: "degrees", Required: true},
			{Key: Latitude, DisplayName: "Latitude", Kind: Numeric, Unit: "degrees", Required: true},
			{Key: "housing_median_age", DisplayName: "Housing median age", Kind: Numeric, Unit: "years"},
			{Key: "total_rooms", DisplayName: "Total rooms", Kind: Numeric},
			{Key: "total_bedrooms", DisplayName: "Total bedrooms", Kind: Numeric},
			{Key: "population", DisplayName: "Population", Kind: Numeric},
			{Key: "households", DisplayName: "Households", Kind: Numeric},
			{Key: MedianIncome, DisplayName: "Median income", Kind: Numeric, Unit: "tens_of_thousands", Required: true,
				Description: "Median household income in tens of thousands of dollars."},
			{Key: MedianHouseValue, DisplayName: "Median house value", Kind: Numeric, Unit: "currency", Required: true},
			{Key: OceanProximity, DisplayName: "Ocean proximity", Kind: Categorical, Required: true,
				Description: "Location type, e.g. NEAR BAY, INLAND, <1H OCEAN."},
		},
	}
}

// RequiredKeys returns the keys of all required columns, in schema order.
func (c Config) RequiredKeys() []string {
	var keys []string
	for _, col := range c.Columns {
		if col.Required {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

// Column looks up a column by key.
func (c Config) Column(key string) (ColumnMeta, bool) {
	for _, col := range c.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return ColumnMeta{}, false
}

// Positions maps a column key to its index in the header row.
type Positions map[string]int

// Resolve locates every header in the row and reports required columns that
// are absent. Headers are normalized with NormalizeHeader; on duplicates the
// first occurrence wins.
func (c Config) Resolve(headers []string) (Positions, []string) {
	pos := make(Positions, len(headers))
	for i, h := range headers {
		key := NormalizeHeader(h)
		if key == "" {
			continue
		}
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	var missing []string
	for _, key := range c.RequiredKeys() {
		if _, ok := pos[key]; !ok {
			missing = append(missing, key)
		}
	}
	return pos, missing
}

// NormalizeHeader converts "Median Income" → "median_income".
// A UTF-8 byte-order mark on the first header is dropped.
func NormalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
