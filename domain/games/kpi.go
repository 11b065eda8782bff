package games

import "math"

// KPISummary holds the four header-card aggregates, recomputed on every
// filter change. A KPI whose backing column is absent (or an empty table)
// carries NaN; render layers check HasData / the individual Valid helpers
// instead of formatting NaN at the user.
type KPISummary struct {
	Count        int     `json:"count"`
	AvgMetascore float64 `json:"avg_metascore"`
	AvgUserScore float64 `json:"avg_user_score"`
	MedianPrice  float64 `json:"median_price"`
}

// EmptyKPISummary is the documented sentinel for a zero-row table.
func EmptyKPISummary() KPISummary {
	return KPISummary{
		Count:        0,
		AvgMetascore: math.NaN(),
		AvgUserScore: math.NaN(),
		MedianPrice:  math.NaN(),
	}
}

// HasData reports whether the summary was computed over at least one record.
func (k KPISummary) HasData() bool {
	return k.Count > 0
}

// ValidMetascore reports whether the metascore KPI could be computed.
func (k KPISummary) ValidMetascore() bool { return !math.IsNaN(k.AvgMetascore) }

// ValidUserScore reports whether the user-score KPI could be computed.
func (k KPISummary) ValidUserScore() bool { return !math.IsNaN(k.AvgUserScore) }

// ValidMedianPrice reports whether the price KPI could be computed.
func (k KPISummary) ValidMedianPrice() bool { return !math.IsNaN(k.MedianPrice) }
