package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// INCOME BAND — Closed enumeration over median income
// ============================================================================
// Thresholds are in the dataset's own unit (tens of thousands). The three
// bands partition the real line: Low (-inf, 2.5], Mid (2.5, 4.5), High [4.5, inf).
// ============================================================================

// Income band thresholds.
const (
	LowIncomeCeiling = 2.5
	HighIncomeFloor  = 4.5
)

// IncomeBand selects one of three mutually exclusive income ranges.
type IncomeBand int

const (
	BandLow IncomeBand = iota
	BandMid
	BandHigh
)

// IncomeBands lists the bands in radio-button order.
var IncomeBands = []IncomeBand{BandLow, BandMid, BandHigh}

// Contains reports whether income falls inside the band.
func (b IncomeBand) Contains(income float64) bool {
	switch b {
	case BandLow:
		return income <= LowIncomeCeiling
	case BandMid:
		return income > LowIncomeCeiling && income < HighIncomeFloor
	case BandHigh:
		return income >= HighIncomeFloor
	}
	return false
}

// Valid reports whether b is one of the three defined bands.
func (b IncomeBand) Valid() bool {
	return b >= BandLow && b <= BandHigh
}

func (b IncomeBand) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMid:
		return "mid"
	case BandHigh:
		return "high"
	}
	return fmt.Sprintf("IncomeBand(%d)", int(b))
}

// Label returns the radio-button caption for the band.
func (b IncomeBand) Label() string {
	switch b {
	case BandLow:
		return "Low (≤2.5)"
	case BandMid:
		return "Mid (>2.5 and <4.5)"
	case BandHigh:
		return "High (≥4.5)"
	}
	return b.String()
}

// BandOf returns the band an income value belongs to.
func BandOf(income float64) IncomeBand {
	switch {
	case income <= LowIncomeCeiling:
		return BandLow
	case income < HighIncomeFloor:
		return BandMid
	default:
		return BandHigh
	}
}

// ParseIncomeBand parses "low", "mid" or "high" (case-insensitive).
// "medium" is accepted as an alias for mid.
func ParseIncomeBand(s string) (IncomeBand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return BandLow, nil
	case "mid", "medium":
		return BandMid, nil
	case "high":
		return BandHigh, nil
	}
	return 0, fmt.Errorf("unknown income band %q (want low, mid or high)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (b IncomeBand) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid income band %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *IncomeBand) UnmarshalText(text []byte) error {
	v, err := ParseIncomeBand(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Set lets *IncomeBand be used directly as a command-line flag value.
func (b *IncomeBand) Set(s string) error {
	return b.UnmarshalText([]byte(s))
}

// Type names the flag value type in usage output.
func (b *IncomeBand) Type() string {
	return "band"
}
