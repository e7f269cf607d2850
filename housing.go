// Package housing is an interactive explorer for the 1990 California
// housing dataset.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/housing/engine"
//	    "github.com/spektr-org/housing/loader"
//	    "github.com/spektr-org/housing/schema"
//	)
//
//	table, err := loader.Load("housing.csv", schema.Housing())
//	if err != nil {
//	    // *loader.LoadError: NotFound, SchemaMismatch or Unreadable
//	}
//	result := engine.Execute(table, engine.FilterConfig{
//	    PriceThreshold:     200000,
//	    AllowedProximities: table.Proximities(),
//	    IncomeBand:         engine.BandMid,
//	})
//
// The table is loaded once and never mutated; every facet change is a full,
// stateless recomputation. The result carries the filtered subset plus a
// map, a 30-bin price histogram, an income/price scatter, and per-proximity
// box-plot statistics, ready for any renderer. The cmd/housing CLI is one
// such renderer (text, JSON, CSV, PNG).
package housing
