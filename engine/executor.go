package engine

// ============================================================================
// EXECUTOR — One full recomputation
// ============================================================================
// Entry point: Execute(table, cfg, opts...)
//
// Pipeline:
//   1. Filter the table → Subset
//   2. Derive geo series, histogram, income/price pairs, box-plot stats
//   3. Build chart configs, stats table, summary text
//   4. Return Result
//
// Synchronous and stateless: nothing is cached between calls.
// ============================================================================

// Execute filters t with cfg and returns every chart-ready output.
func Execute(t *Table, cfg FilterConfig, opts ...Option) *Result {
	c := applyOptions(opts)

	subset := Filter(t, cfg)
	c.Logger.Debug("filtered housing table",
		"rows", t.Len(),
		"kept", subset.Len(),
		"price_threshold", cfg.PriceThreshold,
		"proximities", len(cfg.AllowedProximities),
		"income_band", cfg.IncomeBand.String(),
	)

	geo := GeoSeries(subset)
	hist := Histogram(subset, c.Bins)
	pairs := IncomePricePairs(subset)
	groups := GroupPriceStats(subset, c.Whisker)

	return &Result{
		Count:     subset.Len(),
		Config:    cfg,
		Reply:     BuildReply(subset),
		Charts:    BuildCharts(geo, hist, pairs, groups),
		Stats:     BuildStatsTable(groups),
		Summary:   BuildSummary(subset, cfg),
		Subset:    subset,
		Geo:       geo,
		Histogram: hist,
		Pairs:     pairs,
		Groups:    groups,
	}
}
