package session

import (
	"errors"
	"math"
	"testing"

	"playlitics/adapters/synthetic"
	"playlitics/domain/core"
	"playlitics/domain/games"
)

func generatedTable(t *testing.T, rows int, seed int64) games.Table {
	t.Helper()
	config := synthetic.GeneratorConfig{Rows: rows}
	table, err := synthetic.NewGenerator(config.WithSeed(seed)).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return table
}

func TestNew_ComputesBaseline(t *testing.T) {
	table := generatedTable(t, 200, 1)
	s := New(table, SourceSynthetic, "")

	if s.ID == "" {
		t.Error("Session should get an ID")
	}
	if s.Source != SourceSynthetic {
		t.Errorf("Source = %s, want synthetic", s.Source)
	}
	if s.Baseline.Count != 200 {
		t.Errorf("Baseline count = %d, want 200", s.Baseline.Count)
	}
	if !s.Baseline.ValidMetascore() {
		t.Error("Baseline metascore should be computed")
	}
	if !s.Filter.IsZero() {
		t.Error("New session should start unfiltered")
	}
}

func TestSetTable_ResetsFilter(t *testing.T) {
	s := New(generatedTable(t, 100, 1), SourceSynthetic, "")
	s.SetFilter(games.Filter{Genres: []string{"Action"}})
	if s.Filter.IsZero() {
		t.Fatal("Filter should be active")
	}

	s.SetTable(generatedTable(t, 50, 2), SourceUpload, "games.csv")

	if !s.Filter.IsZero() {
		t.Error("Replacing the table should reset the filter")
	}
	if s.Source != SourceUpload || s.Filename != "games.csv" {
		t.Errorf("Source/filename not updated: %s %s", s.Source, s.Filename)
	}
	if s.Baseline.Count != 50 {
		t.Errorf("Baseline not recomputed: count = %d, want 50", s.Baseline.Count)
	}
}

func TestFiltered(t *testing.T) {
	s := New(generatedTable(t, 300, 3), SourceSynthetic, "")

	if got := s.Filtered().Len(); got != 300 {
		t.Errorf("Unfiltered session should return all rows, got %d", got)
	}

	s.SetFilter(games.Filter{YearMin: 2015, YearMax: 2020})
	filtered := s.Filtered()
	if filtered.Len() == 0 || filtered.Len() >= 300 {
		t.Errorf("Year filter should drop some rows, got %d of 300", filtered.Len())
	}
	for _, r := range filtered.Records {
		if r.ReleaseYear < 2015 || r.ReleaseYear > 2020 {
			t.Errorf("Year %d leaked through the filter", r.ReleaseYear)
		}
	}

	s.ResetFilter()
	if s.Filtered().Len() != 300 {
		t.Error("ResetFilter should restore the full table")
	}
}

func TestSession_EmptyTableBaseline(t *testing.T) {
	s := New(games.Table{}, SourceUpload, "empty.csv")
	if s.Baseline.HasData() {
		t.Error("Empty table baseline should be the sentinel")
	}
	if !math.IsNaN(s.Baseline.AvgMetascore) {
		t.Error("Sentinel baseline metascore should be NaN")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	s := New(generatedTable(t, 10, 1), SourceSynthetic, "")

	if _, err := reg.Get(s.ID); !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("Missing session should return ErrSessionNotFound, got %v", err)
	}

	reg.Put(s)
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}

	got, err := reg.Get(s.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != s {
		t.Error("Get should return the stored session")
	}

	reg.Delete(s.ID)
	if reg.Len() != 0 {
		t.Errorf("Len after delete = %d, want 0", reg.Len())
	}
	if _, err := reg.Get(s.ID); err == nil {
		t.Error("Deleted session should not resolve")
	}
}
