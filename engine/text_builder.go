package engine

import (
	"fmt"
)

// ============================================================================
// TEXT BUILDER — Headline numbers for one recomputation
// ============================================================================

// BuildSummary produces the headline numbers for a filtered view.
func BuildSummary(view RecordView, cfg FilterConfig) *TextData {
	median := MedianPrice(view)
	return &TextData{
		Value:        FormatInt(view.Len()),
		Count:        view.Len(),
		Band:         cfg.IncomeBand.Label(),
		MedianPrice:  median,
		MeanIncome:   RoundTo2(MeanIncome(view)),
		Proximities:  countProximities(view),
		DisplayPrice: FormatCurrency(median),
	}
}

// BuildReply is the one-line status shown above the charts.
func BuildReply(view RecordView) string {
	switch view.Len() {
	case 0:
		return "No records match the current filters."
	case 1:
		return "1 record after filtering."
	}
	return fmt.Sprintf("%s records after filtering.", FormatInt(view.Len()))
}

func countProximities(view RecordView) int {
	seen := make(map[string]bool)
	for i := 0; i < view.Len(); i++ {
		seen[view.At(i).OceanProximity] = true
	}
	return len(seen)
}
