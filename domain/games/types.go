package games

import (
	"math"
	"sort"
)

// Column identifies one field of the canonical game schema.
type Column string

// Canonical schema columns. Loaders normalize foreign headers onto these
// names; everything downstream addresses fields through them.
const (
	ColGameID         Column = "game_id"
	ColTitle          Column = "title"
	ColGenre          Column = "genre"
	ColPlatform       Column = "platform"
	ColReleaseYear    Column = "release_year"
	ColPrice          Column = "price"
	ColMetascore      Column = "metascore"
	ColUserScore      Column = "user_score"
	ColHoursPlayed    Column = "hours_played"
	ColOwnersMillions Column = "owners_millions"
	ColIsMultiplayer  Column = "is_multiplayer"
)

// CanonicalColumns lists every canonical column in display order.
var CanonicalColumns = []Column{
	ColGameID,
	ColTitle,
	ColGenre,
	ColPlatform,
	ColReleaseYear,
	ColPrice,
	ColMetascore,
	ColUserScore,
	ColHoursPlayed,
	ColOwnersMillions,
	ColIsMultiplayer,
}

// String returns the string representation
func (c Column) String() string {
	return string(c)
}

// IsNumeric reports whether the column carries a numeric value.
func (c Column) IsNumeric() bool {
	switch c {
	case ColGameID, ColReleaseYear, ColPrice, ColMetascore, ColUserScore, ColHoursPlayed, ColOwnersMillions:
		return true
	}
	return false
}

// IsCategorical reports whether the column carries a category label.
func (c Column) IsCategorical() bool {
	return c == ColGenre || c == ColPlatform
}

// Record is one row of the games table. Numeric fields use NaN for a
// missing cell, categorical fields use the empty string, and a missing
// release year is stored as zero. Records are immutable once built.
type Record struct {
	GameID         int     `json:"game_id"`
	Title          string  `json:"title"`
	Genre          string  `json:"genre"`
	Platform       string  `json:"platform"`
	ReleaseYear    int     `json:"release_year"`
	Price          float64 `json:"price"`
	Metascore      float64 `json:"metascore"`
	UserScore      float64 `json:"user_score"`
	HoursPlayed    float64 `json:"hours_played"`
	OwnersMillions float64 `json:"owners_millions"`
	IsMultiplayer  bool    `json:"is_multiplayer"`
}

// Numeric returns the value of a numeric column and whether it is present.
func (r Record) Numeric(c Column) (float64, bool) {
	var v float64
	switch c {
	case ColGameID:
		return float64(r.GameID), r.GameID != 0
	case ColReleaseYear:
		return float64(r.ReleaseYear), r.ReleaseYear != 0
	case ColPrice:
		v = r.Price
	case ColMetascore:
		v = r.Metascore
	case ColUserScore:
		v = r.UserScore
	case ColHoursPlayed:
		v = r.HoursPlayed
	case ColOwnersMillions:
		v = r.OwnersMillions
	default:
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Category returns the value of a categorical column and whether it is present.
func (r Record) Category(c Column) (string, bool) {
	switch c {
	case ColGenre:
		return r.Genre, r.Genre != ""
	case ColPlatform:
		return r.Platform, r.Platform != ""
	case ColTitle:
		return r.Title, r.Title != ""
	}
	return "", false
}

// Table holds the records of a dataset plus the set of canonical columns
// that were actually present in its source. Partial schemas are legal:
// consumers must check Has before reading a column.
type Table struct {
	Records []Record `json:"records"`
	Columns []Column `json:"columns"`
}

// NewTable builds a table over the given records, keeping the canonical
// column order regardless of the order columns were discovered in.
func NewTable(records []Record, columns []Column) Table {
	present := make(map[Column]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	ordered := make([]Column, 0, len(columns))
	for _, c := range CanonicalColumns {
		if present[c] {
			ordered = append(ordered, c)
		}
	}
	return Table{Records: records, Columns: ordered}
}

// Has reports whether a canonical column was present in the source data.
func (t Table) Has(c Column) bool {
	for _, col := range t.Columns {
		if col == c {
			return true
		}
	}
	return false
}

// HasAll reports whether every given column is present.
func (t Table) HasAll(cols ...Column) bool {
	for _, c := range cols {
		if !t.Has(c) {
			return false
		}
	}
	return true
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t.Records)
}

// IsEmpty checks if the table has no records.
func (t Table) IsEmpty() bool {
	return len(t.Records) == 0
}

// NumericColumn extracts the present values of a numeric column, skipping
// missing cells.
func (t Table) NumericColumn(c Column) []float64 {
	values := make([]float64, 0, len(t.Records))
	for _, r := range t.Records {
		if v, ok := r.Numeric(c); ok {
			values = append(values, v)
		}
	}
	return values
}

// PairedColumns extracts rows where both numeric columns are present,
// keeping the pairing intact for correlation analysis.
func (t Table) PairedColumns(x, y Column) ([]float64, []float64) {
	xs := make([]float64, 0, len(t.Records))
	ys := make([]float64, 0, len(t.Records))
	for _, r := range t.Records {
		xv, xok := r.Numeric(x)
		yv, yok := r.Numeric(y)
		if xok && yok {
			xs = append(xs, xv)
			ys = append(ys, yv)
		}
	}
	return xs, ys
}

// YearRange returns the min and max release year over present cells.
// ok is false when the column is absent or every cell is missing.
func (t Table) YearRange() (min, max int, ok bool) {
	if !t.Has(ColReleaseYear) {
		return 0, 0, false
	}
	for _, r := range t.Records {
		if r.ReleaseYear == 0 {
			continue
		}
		if !ok || r.ReleaseYear < min {
			min = r.ReleaseYear
		}
		if !ok || r.ReleaseYear > max {
			max = r.ReleaseYear
		}
		ok = true
	}
	return min, max, ok
}

// MaxPrice returns the highest present price, or 0 when none exists.
func (t Table) MaxPrice() float64 {
	max := 0.0
	for _, r := range t.Records {
		if v, present := r.Numeric(ColPrice); present && v > max {
			max = v
		}
	}
	return max
}

// CategoryValues returns the sorted distinct values of a categorical column.
func (t Table) CategoryValues(c Column) []string {
	seen := make(map[string]bool)
	var values []string
	for _, r := range t.Records {
		if v, ok := r.Category(c); ok && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}
