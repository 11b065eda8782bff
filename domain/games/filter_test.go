package games

import (
	"math"
	"testing"
)

func sampleTable() Table {
	records := []Record{
		{GameID: 1, Title: "Game 0001", Genre: "Action", Platform: "PC", ReleaseYear: 2020, Price: 20.0, Metascore: 80, UserScore: 8.5, HoursPlayed: 50.0, OwnersMillions: 10.0},
		{GameID: 2, Title: "Game 0002", Genre: "RPG", Platform: "PC", ReleaseYear: 2021, Price: 60.0, Metascore: 75, UserScore: 7.2, HoursPlayed: 120.0, OwnersMillions: 5.0},
		{GameID: 3, Title: "Game 0003", Genre: "Action", Platform: "Xbox", ReleaseYear: 2022, Price: 40.0, Metascore: 85, UserScore: 8.8, HoursPlayed: 70.0, OwnersMillions: 7.0},
	}
	return NewTable(records, CanonicalColumns)
}

func TestFilter_Zero(t *testing.T) {
	table := sampleTable()
	filtered := Filter{}.Apply(table)
	if filtered.Len() != table.Len() {
		t.Errorf("Zero filter should keep all rows, got %d of %d", filtered.Len(), table.Len())
	}
}

func TestFilter_YearRange(t *testing.T) {
	filtered := Filter{YearMin: 2021, YearMax: 2022}.Apply(sampleTable())
	if filtered.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", filtered.Len())
	}
	for _, r := range filtered.Records {
		if r.ReleaseYear < 2021 || r.ReleaseYear > 2022 {
			t.Errorf("Row with year %d leaked through", r.ReleaseYear)
		}
	}
}

func TestFilter_Genres(t *testing.T) {
	filtered := Filter{Genres: []string{"Action"}}.Apply(sampleTable())
	if filtered.Len() != 2 {
		t.Fatalf("Expected 2 Action rows, got %d", filtered.Len())
	}

	// Zero-match genre subset yields an empty table, not an error
	empty := Filter{Genres: []string{"Horror"}}.Apply(sampleTable())
	if !empty.IsEmpty() {
		t.Errorf("Expected empty table for zero-match genre, got %d rows", empty.Len())
	}
	if !empty.Has(ColGenre) {
		t.Error("Filtered table should keep the column set")
	}
}

func TestFilter_PriceRange(t *testing.T) {
	filtered := Filter{PriceMin: 25, PriceMax: 50}.Apply(sampleTable())
	if filtered.Len() != 1 {
		t.Fatalf("Expected 1 row, got %d", filtered.Len())
	}
	if filtered.Records[0].GameID != 3 {
		t.Errorf("Wrong row survived: %d", filtered.Records[0].GameID)
	}
}

func TestFilter_Combined(t *testing.T) {
	f := Filter{
		YearMin:   2020,
		YearMax:   2022,
		Genres:    []string{"Action"},
		Platforms: []string{"PC"},
		PriceMax:  30,
	}
	filtered := f.Apply(sampleTable())
	if filtered.Len() != 1 {
		t.Fatalf("Expected 1 row, got %d", filtered.Len())
	}
	if filtered.Records[0].GameID != 1 {
		t.Errorf("Wrong row survived: %d", filtered.Records[0].GameID)
	}
}

func TestFilter_MissingCellFailsActiveCheck(t *testing.T) {
	records := []Record{
		{Genre: "Action", Price: math.NaN(), ReleaseYear: 2020},
		{Genre: "Action", Price: 10.0, ReleaseYear: 2020},
	}
	table := NewTable(records, []Column{ColGenre, ColPrice, ColReleaseYear})

	filtered := Filter{PriceMax: 50}.Apply(table)
	if filtered.Len() != 1 {
		t.Errorf("Row with missing price should fail the price check, got %d rows", filtered.Len())
	}
}

func TestFilter_SkipsChecksForAbsentColumns(t *testing.T) {
	records := []Record{
		{Genre: "Action", Price: math.NaN(), Metascore: math.NaN(), UserScore: math.NaN(), HoursPlayed: math.NaN(), OwnersMillions: math.NaN()},
	}
	table := NewTable(records, []Column{ColGenre})

	// Year and price constraints are inert without their columns
	filtered := Filter{YearMin: 2010, YearMax: 2020, PriceMax: 10}.Apply(table)
	if filtered.Len() != 1 {
		t.Errorf("Checks on absent columns should be skipped, got %d rows", filtered.Len())
	}
}

func TestTable_YearRange(t *testing.T) {
	min, max, ok := sampleTable().YearRange()
	if !ok || min != 2020 || max != 2022 {
		t.Errorf("Unexpected year range: %d-%d ok=%v", min, max, ok)
	}

	noYears := NewTable([]Record{{Genre: "Action"}}, []Column{ColGenre})
	if _, _, ok := noYears.YearRange(); ok {
		t.Error("YearRange should report absent column")
	}
}

func TestTable_CategoryValues(t *testing.T) {
	values := sampleTable().CategoryValues(ColGenre)
	if len(values) != 2 || values[0] != "Action" || values[1] != "RPG" {
		t.Errorf("Unexpected genre values: %v", values)
	}
}

func TestTable_PairedColumns(t *testing.T) {
	records := []Record{
		{HoursPlayed: 10, Metascore: 80},
		{HoursPlayed: math.NaN(), Metascore: 90},
		{HoursPlayed: 20, Metascore: math.NaN()},
		{HoursPlayed: 30, Metascore: 70},
	}
	table := NewTable(records, []Column{ColHoursPlayed, ColMetascore})

	xs, ys := table.PairedColumns(ColHoursPlayed, ColMetascore)
	if len(xs) != 2 || len(ys) != 2 {
		t.Fatalf("Expected 2 complete pairs, got %d/%d", len(xs), len(ys))
	}
	if xs[0] != 10 || ys[0] != 80 || xs[1] != 30 || ys[1] != 70 {
		t.Errorf("Pairing broken: %v %v", xs, ys)
	}
}

func TestKPISummary_EmptySentinel(t *testing.T) {
	k := EmptyKPISummary()
	if k.HasData() {
		t.Error("Empty sentinel should report no data")
	}
	if !math.IsNaN(k.AvgMetascore) || !math.IsNaN(k.AvgUserScore) || !math.IsNaN(k.MedianPrice) {
		t.Error("Empty sentinel KPIs should be NaN")
	}
}
