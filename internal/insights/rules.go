package insights

import (
	"fmt"
	"math"

	"playlitics/domain/games"
)

// MaxInsights caps how many sentences one invocation emits.
const MaxInsights = 3

// BaselineDelta is the minimum absolute metascore difference between the
// filtered table and the baseline before the comparison rule fires.
const BaselineDelta = 2.0

// Insight is one generated sentence, tagged with the rule that produced it
type Insight struct {
	Rule string `json:"rule"`
	Text string `json:"text"`
}

// ruleContext carries the inputs shared by all rules for one invocation
type ruleContext struct {
	table    games.Table
	kpis     games.KPISummary
	baseline *games.KPISummary
}

// rule pairs a predicate+template under a stable name. Rules are
// independent: each inspects the context and either emits a sentence or
// declines.
type rule struct {
	name     string
	evaluate func(ctx ruleContext) (string, bool)
}

// ruleList is evaluated in priority order; order is fixed so identical
// tables always produce identical insight lists.
var ruleList = []rule{
	{name: "metascore_vs_baseline", evaluate: metascoreVsBaseline},
	{name: "top_genre_by_owners", evaluate: topGenreByOwners},
	{name: "hours_metascore_correlation", evaluate: hoursMetascoreCorrelation},
	{name: "best_value_genre", evaluate: bestValueGenre},
	{name: "top_platform_by_owners", evaluate: topPlatformByOwners},
}

// GenerateInsights evaluates the rule list against the table and returns up
// to MaxInsights sentences in priority order. baseline is the KPI summary of
// the unfiltered dataset; pass nil when no baseline exists and the
// comparison rule is skipped. An empty table produces an empty list, and no
// filler sentence is emitted when nothing triggers.
func GenerateInsights(t games.Table, baseline *games.KPISummary) []Insight {
	if t.IsEmpty() {
		return nil
	}

	ctx := ruleContext{
		table:    t,
		kpis:     ComputeKPIs(t),
		baseline: baseline,
	}

	var results []Insight
	for _, r := range ruleList {
		if len(results) == MaxInsights {
			break
		}
		if text, ok := r.evaluate(ctx); ok {
			results = append(results, Insight{Rule: r.name, Text: text})
		}
	}
	return results
}

// metascoreVsBaseline compares the filtered mean metascore against the
// unfiltered baseline and reports the direction of the gap.
func metascoreVsBaseline(ctx ruleContext) (string, bool) {
	if ctx.baseline == nil || !ctx.baseline.ValidMetascore() || !ctx.kpis.ValidMetascore() {
		return "", false
	}

	delta := ctx.kpis.AvgMetascore - ctx.baseline.AvgMetascore
	if math.Abs(delta) <= BaselineDelta {
		return "", false
	}

	direction := "above"
	if delta < 0 {
		direction = "below"
	}
	return fmt.Sprintf(
		"Filtered games average a metascore of %.1f, %.1f points %s the overall average of %.1f.",
		ctx.kpis.AvgMetascore, math.Abs(delta), direction, ctx.baseline.AvgMetascore,
	), true
}

// topGenreByOwners names the genre with the highest mean owners.
func topGenreByOwners(ctx ruleContext) (string, bool) {
	if !ctx.table.HasAll(games.ColGenre, games.ColOwnersMillions) {
		return "", false
	}

	means := meanByCategory(ctx.table, games.ColGenre, games.ColOwnersMillions)
	genre, mean, ok := maxCategory(means)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("Most owned genre: %s (~%.1fM average owners).", genre, mean), true
}

// hoursMetascoreCorrelation reports the qualitative sign and strength of
// the hours-played vs metascore relationship.
func hoursMetascoreCorrelation(ctx ruleContext) (string, bool) {
	if !ctx.table.HasAll(games.ColHoursPlayed, games.ColMetascore) {
		return "", false
	}

	xs, ys := ctx.table.PairedColumns(games.ColHoursPlayed, games.ColMetascore)
	corr, ok := PearsonCorrelation(xs, ys)
	if !ok || corr.Strength() == "negligible" {
		return "", false
	}

	return fmt.Sprintf(
		"Hours played and metascore show a %s %s correlation (r=%+.2f, p=%.3f, n=%d).",
		corr.Strength(), corr.Direction(), corr.R, corr.PValue, corr.SampleSize,
	), true
}

// bestValueGenre names the genre delivering the most hours per dollar.
func bestValueGenre(ctx ruleContext) (string, bool) {
	if !ctx.table.HasAll(games.ColGenre, games.ColHoursPlayed, games.ColPrice) {
		return "", false
	}

	hours := meanByCategory(ctx.table, games.ColGenre, games.ColHoursPlayed)
	prices := meanByCategory(ctx.table, games.ColGenre, games.ColPrice)

	ratios := make(map[string]float64, len(hours))
	for genre, h := range hours {
		if p, ok := prices[genre]; ok && p > 0 {
			ratios[genre] = h / p
		}
	}

	genre, ratio, ok := maxCategory(ratios)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("Best value: %s offers ~%.1f hours per $1 on average.", genre, ratio), true
}

// topPlatformByOwners names the platform with the highest mean owners.
func topPlatformByOwners(ctx ruleContext) (string, bool) {
	if !ctx.table.HasAll(games.ColPlatform, games.ColOwnersMillions) {
		return "", false
	}

	means := meanByCategory(ctx.table, games.ColPlatform, games.ColOwnersMillions)
	platform, mean, ok := maxCategory(means)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("Most popular platform by owners: %s (~%.1fM average).", platform, mean), true
}
