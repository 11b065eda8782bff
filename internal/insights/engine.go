// Package insights computes the KPI aggregates and rule-based text
// insights the dashboard renders for the current filtered table. All
// functions are pure passes over the in-memory table: no I/O, no shared
// state, deterministic output for identical input.
package insights

import (
	"sort"

	"playlitics/domain/games"

	"github.com/montanaflynn/stats"
)

// ComputeKPIs returns the four header-card aggregates for a table.
// An empty table yields the documented sentinel summary, never an error,
// so the UI can render a placeholder. A KPI whose backing column is absent
// is NaN in the result.
func ComputeKPIs(t games.Table) games.KPISummary {
	if t.IsEmpty() {
		return games.EmptyKPISummary()
	}

	summary := games.EmptyKPISummary()
	summary.Count = t.Len()

	if t.Has(games.ColMetascore) {
		if mean, err := stats.Mean(t.NumericColumn(games.ColMetascore)); err == nil {
			summary.AvgMetascore = mean
		}
	}
	if t.Has(games.ColUserScore) {
		if mean, err := stats.Mean(t.NumericColumn(games.ColUserScore)); err == nil {
			summary.AvgUserScore = mean
		}
	}
	if t.Has(games.ColPrice) {
		if median, err := stats.Median(t.NumericColumn(games.ColPrice)); err == nil {
			summary.MedianPrice = median
		}
	}
	return summary
}

// CategoryCount is one bar of a top-categories chart
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TopCategories returns the n most frequent values of a categorical column,
// descending by count with alphabetical tie-break.
func TopCategories(t games.Table, col games.Column, n int) []CategoryCount {
	if !t.Has(col) || n <= 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, r := range t.Records {
		if v, ok := r.Category(col); ok {
			counts[v]++
		}
	}

	result := make([]CategoryCount, 0, len(counts))
	for value, count := range counts {
		result = append(result, CategoryCount{Value: value, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Value < result[j].Value
	})

	if len(result) > n {
		result = result[:n]
	}
	return result
}

// meanByCategory computes the mean of a numeric column per category value,
// skipping rows where either cell is missing.
func meanByCategory(t games.Table, catCol, numCol games.Column) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range t.Records {
		cat, catOK := r.Category(catCol)
		v, numOK := r.Numeric(numCol)
		if catOK && numOK {
			sums[cat] += v
			counts[cat]++
		}
	}

	means := make(map[string]float64, len(sums))
	for cat, sum := range sums {
		means[cat] = sum / float64(counts[cat])
	}
	return means
}

// maxCategory picks the category with the highest mean, breaking ties
// alphabetically so insight output stays order-stable.
func maxCategory(means map[string]float64) (string, float64, bool) {
	var best string
	var bestMean float64
	found := false
	for cat, mean := range means {
		if !found || mean > bestMean || (mean == bestMean && cat < best) {
			best = cat
			bestMean = mean
			found = true
		}
	}
	return best, bestMean, found
}
