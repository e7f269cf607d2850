package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Box-plot statistics as a render-ready table
// ============================================================================

// BuildStatsTable lays out one row per proximity group.
func BuildStatsTable(groups []BoxStats) *TableData {
	columns := []Column{
		{Key: "ocean_proximity", Label: LabelForField("ocean_proximity"), Type: "text", Align: "left"},
		{Key: "count", Label: "Count", Type: "number", Align: "right"},
		{Key: "min", Label: "Min", Type: "currency", Align: "right"},
		{Key: "q1", Label: "Q1", Type: "currency", Align: "right"},
		{Key: "median", Label: "Median", Type: "currency", Align: "right"},
		{Key: "q3", Label: "Q3", Type: "currency", Align: "right"},
		{Key: "max", Label: "Max", Type: "currency", Align: "right"},
		{Key: "outliers", Label: "Outliers", Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, len(groups))
	var totalCount, totalOutliers int
	for _, g := range groups {
		rows = append(rows, []string{
			g.Key,
			fmt.Sprintf("%d", g.Count),
			fmt.Sprintf("%.2f", g.Min),
			fmt.Sprintf("%.2f", g.Q1),
			fmt.Sprintf("%.2f", g.Median),
			fmt.Sprintf("%.2f", g.Q3),
			fmt.Sprintf("%.2f", g.Max),
			fmt.Sprintf("%d", len(g.Outliers)),
		})
		totalCount += g.Count
		totalOutliers += len(g.Outliers)
	}

	return &TableData{
		Title:   TitleBoxPlot,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label: fmt.Sprintf("Total (%d groups)", len(groups)),
			Values: map[string]string{
				"count":    FormatInt(totalCount),
				"outliers": FormatInt(totalOutliers),
			},
		},
	}
}
