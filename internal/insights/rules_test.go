package insights

import (
	"math"
	"strings"
	"testing"

	"playlitics/adapters/synthetic"
	"playlitics/domain/games"
)

func syntheticTable(t *testing.T, rows int, seed int64) games.Table {
	t.Helper()
	gen := synthetic.NewGenerator(synthetic.DefaultGeneratorConfig().WithSeed(seed))
	table, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if rows < table.Len() {
		table = games.NewTable(table.Records[:rows], table.Columns)
	}
	return table
}

func TestGenerateInsights_EmptyTable(t *testing.T) {
	if got := GenerateInsights(games.Table{}, nil); got != nil {
		t.Errorf("Empty table should produce no insights, got %+v", got)
	}
}

func TestGenerateInsights_Deterministic(t *testing.T) {
	table := syntheticTable(t, 500, 42)
	baseline := ComputeKPIs(table)

	first := GenerateInsights(table, &baseline)
	second := GenerateInsights(table, &baseline)

	if len(first) != len(second) {
		t.Fatalf("Length changed between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Insight %d differs between runs:\n%+v\n%+v", i, first[i], second[i])
		}
	}
}

func TestGenerateInsights_CapAndOrder(t *testing.T) {
	table := syntheticTable(t, 2000, 7)

	results := GenerateInsights(table, nil)
	if len(results) != MaxInsights {
		t.Fatalf("Full table should saturate the cap, got %d insights", len(results))
	}

	// With no baseline the comparison rule is skipped, so the count rule
	// order starts at the genre ownership rule.
	if results[0].Rule != "top_genre_by_owners" {
		t.Errorf("First rule = %s, want top_genre_by_owners", results[0].Rule)
	}

	ruleIndex := make(map[string]int, len(ruleList))
	for i, r := range ruleList {
		ruleIndex[r.name] = i
	}
	for i := 1; i < len(results); i++ {
		if ruleIndex[results[i].Rule] <= ruleIndex[results[i-1].Rule] {
			t.Errorf("Insights out of priority order: %s before %s",
				results[i-1].Rule, results[i].Rule)
		}
	}
}

func TestGenerateInsights_BaselineRule(t *testing.T) {
	records := []games.Record{
		{Genre: "Action", Metascore: 90, Price: math.NaN(), UserScore: math.NaN(), HoursPlayed: math.NaN(), OwnersMillions: math.NaN()},
		{Genre: "Action", Metascore: 92, Price: math.NaN(), UserScore: math.NaN(), HoursPlayed: math.NaN(), OwnersMillions: math.NaN()},
	}
	table := games.NewTable(records, []games.Column{games.ColGenre, games.ColMetascore})
	baseline := games.KPISummary{Count: 100, AvgMetascore: 75, AvgUserScore: math.NaN(), MedianPrice: math.NaN()}

	results := GenerateInsights(table, &baseline)
	if len(results) == 0 {
		t.Fatal("Expected the baseline comparison to fire")
	}
	if results[0].Rule != "metascore_vs_baseline" {
		t.Errorf("First rule = %s, want metascore_vs_baseline", results[0].Rule)
	}
	if !strings.Contains(results[0].Text, "above") {
		t.Errorf("Expected an 'above' sentence, got %q", results[0].Text)
	}
}

func TestGenerateInsights_BaselineDeltaThreshold(t *testing.T) {
	records := []games.Record{
		{Metascore: 76, Price: math.NaN(), UserScore: math.NaN(), HoursPlayed: math.NaN(), OwnersMillions: math.NaN()},
	}
	table := games.NewTable(records, []games.Column{games.ColMetascore})
	baseline := games.KPISummary{Count: 100, AvgMetascore: 75, AvgUserScore: math.NaN(), MedianPrice: math.NaN()}

	for _, ins := range GenerateInsights(table, &baseline) {
		if ins.Rule == "metascore_vs_baseline" {
			t.Errorf("Delta of 1.0 is under the threshold, rule should not fire: %q", ins.Text)
		}
	}
}

func TestGenerateInsights_NoFiller(t *testing.T) {
	// Genre alone supports no rule: no owners, no hours, no prices.
	records := []games.Record{
		{Genre: "Action", Price: math.NaN(), Metascore: math.NaN(), UserScore: math.NaN(), HoursPlayed: math.NaN(), OwnersMillions: math.NaN()},
	}
	table := games.NewTable(records, []games.Column{games.ColGenre})

	if results := GenerateInsights(table, nil); len(results) != 0 {
		t.Errorf("Expected no insights when nothing triggers, got %+v", results)
	}
}

func TestGenerateInsights_FilteredScenario(t *testing.T) {
	table := syntheticTable(t, 500, 42)
	baseline := ComputeKPIs(table)

	filtered := games.Filter{YearMin: 2015, YearMax: 2020}.Apply(table)
	if filtered.Len() > 500 {
		t.Fatalf("Filtered count %d exceeds source size", filtered.Len())
	}
	if filtered.IsEmpty() {
		t.Fatal("Year filter over the full generated range should match rows")
	}

	kpis := ComputeKPIs(filtered)
	if kpis.AvgMetascore < 0 || kpis.AvgMetascore > 100 {
		t.Errorf("Mean metascore %f out of range", kpis.AvgMetascore)
	}

	results := GenerateInsights(filtered, &baseline)
	if len(results) > MaxInsights {
		t.Errorf("Cap exceeded: %d insights", len(results))
	}
	for _, ins := range results {
		if ins.Text == "" {
			t.Errorf("Rule %s emitted an empty sentence", ins.Rule)
		}
	}
}

func TestGenerateInsights_ZeroMatchFilter(t *testing.T) {
	table := syntheticTable(t, 500, 42)
	baseline := ComputeKPIs(table)

	filtered := games.Filter{Genres: []string{"Visual Novel"}}.Apply(table)
	if !filtered.IsEmpty() {
		t.Fatalf("Unknown genre should match nothing, got %d rows", filtered.Len())
	}

	kpis := ComputeKPIs(filtered)
	if kpis.Count != 0 || kpis.ValidMetascore() {
		t.Errorf("Expected the empty sentinel, got %+v", kpis)
	}
	if results := GenerateInsights(filtered, &baseline); len(results) != 0 {
		t.Errorf("Empty table should produce no insights, got %+v", results)
	}
}
