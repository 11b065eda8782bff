package games

// Filter captures one round of sidebar criteria. It is transient: the UI
// rebuilds it on every interaction and never stores it.
//
// Zero values mean "unbounded": YearMin/YearMax of 0 skip the year check,
// an empty Genres/Platforms slice selects everything, and a PriceMax of 0
// leaves prices uncapped.
type Filter struct {
	YearMin   int      `json:"year_min"`
	YearMax   int      `json:"year_max"`
	Genres    []string `json:"genres"`
	Platforms []string `json:"platforms"`
	PriceMin  float64  `json:"price_min"`
	PriceMax  float64  `json:"price_max"`
}

// IsZero reports whether the filter applies no constraint at all.
func (f Filter) IsZero() bool {
	return f.YearMin == 0 && f.YearMax == 0 &&
		len(f.Genres) == 0 && len(f.Platforms) == 0 &&
		f.PriceMin == 0 && f.PriceMax == 0
}

// Apply returns a new table containing the records that match every active
// criterion. Checks against an absent column are skipped, mirroring how the
// dashboard only renders controls for columns it actually has. A record with
// a missing cell fails any active check on that cell's column.
func (f Filter) Apply(t Table) Table {
	if f.IsZero() {
		return t
	}

	genreSet := toSet(f.Genres)
	platformSet := toSet(f.Platforms)

	matched := make([]Record, 0, len(t.Records))
	for _, r := range t.Records {
		if !f.matches(r, t, genreSet, platformSet) {
			continue
		}
		matched = append(matched, r)
	}
	return Table{Records: matched, Columns: t.Columns}
}

func (f Filter) matches(r Record, t Table, genres, platforms map[string]bool) bool {
	if (f.YearMin != 0 || f.YearMax != 0) && t.Has(ColReleaseYear) {
		year, ok := r.Numeric(ColReleaseYear)
		if !ok {
			return false
		}
		if f.YearMin != 0 && int(year) < f.YearMin {
			return false
		}
		if f.YearMax != 0 && int(year) > f.YearMax {
			return false
		}
	}

	if len(genres) > 0 && t.Has(ColGenre) && !genres[r.Genre] {
		return false
	}
	if len(platforms) > 0 && t.Has(ColPlatform) && !platforms[r.Platform] {
		return false
	}

	if (f.PriceMin != 0 || f.PriceMax != 0) && t.Has(ColPrice) {
		price, ok := r.Numeric(ColPrice)
		if !ok {
			return false
		}
		if f.PriceMin != 0 && price < f.PriceMin {
			return false
		}
		if f.PriceMax != 0 && price > f.PriceMax {
			return false
		}
	}

	return true
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
