package ui

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"playlitics/domain/games"
)

// metascoreBandWidth groups scores into decade bands for the banded charts.
const metascoreBandWidth = 10

// chartBar is one horizontal bar of a server-rendered chart.
type chartBar struct {
	Label    string
	Display  string
	Fraction float64
}

// chart is a titled group of bars. Charts adapt to the columns the table
// actually has; one whose columns are absent is simply not built.
type chart struct {
	Title string
	Bars  []chartBar
}

// buildCharts assembles the dashboard's chart row from the filtered table.
func buildCharts(t games.Table) []chart {
	var charts []chart
	if c := priceByMetascoreChart(t); c != nil {
		charts = append(charts, *c)
	}
	if c := ownersByYearChart(t); c != nil {
		charts = append(charts, *c)
	}
	if c := hoursByMetascoreChart(t); c != nil {
		charts = append(charts, *c)
	}
	return charts
}

// priceByMetascoreChart summarizes the price vs metascore relationship as
// the mean price per metascore band.
func priceByMetascoreChart(t games.Table) *chart {
	if !t.HasAll(games.ColMetascore, games.ColPrice) {
		return nil
	}
	bars := bandedBars(t, games.ColPrice, stats.Mean, func(v float64) string {
		return fmt.Sprintf("$%.2f", v)
	})
	if bars == nil {
		return nil
	}
	return &chart{Title: "Avg Price by Metascore", Bars: bars}
}

// ownersByYearChart summarizes the owners-by-year distribution as the
// median owners per release year.
func ownersByYearChart(t games.Table) *chart {
	if !t.HasAll(games.ColReleaseYear, games.ColOwnersMillions) {
		return nil
	}

	groups := make(map[int][]float64)
	for _, r := range t.Records {
		owners, ok := r.Numeric(games.ColOwnersMillions)
		if r.ReleaseYear == 0 || !ok {
			continue
		}
		groups[r.ReleaseYear] = append(groups[r.ReleaseYear], owners)
	}

	bars := groupedBars(groups, stats.Median, func(year int) string {
		return fmt.Sprintf("%d", year)
	}, func(v float64) string {
		return fmt.Sprintf("%.1fM", v)
	})
	if bars == nil {
		return nil
	}
	return &chart{Title: "Median Owners by Release Year", Bars: bars}
}

// hoursByMetascoreChart collapses the hours vs metascore density into the
// mean hours played per metascore band.
func hoursByMetascoreChart(t games.Table) *chart {
	if !t.HasAll(games.ColMetascore, games.ColHoursPlayed) {
		return nil
	}
	bars := bandedBars(t, games.ColHoursPlayed, stats.Mean, func(v float64) string {
		return fmt.Sprintf("%.0f h", v)
	})
	if bars == nil {
		return nil
	}
	return &chart{Title: "Avg Hours Played by Metascore", Bars: bars}
}

// bandedBars aggregates a numeric column per metascore decade band.
func bandedBars(t games.Table, val games.Column, agg func(stats.Float64Data) (float64, error), format func(float64) string) []chartBar {
	groups := make(map[int][]float64)
	for _, r := range t.Records {
		score, scoreOK := r.Numeric(games.ColMetascore)
		v, valOK := r.Numeric(val)
		if !scoreOK || !valOK {
			continue
		}
		band := int(score) / metascoreBandWidth * metascoreBandWidth
		groups[band] = append(groups[band], v)
	}
	return groupedBars(groups, agg, func(band int) string {
		return fmt.Sprintf("%d-%d", band, band+metascoreBandWidth-1)
	}, format)
}

// groupedBars turns keyed value groups into bars sorted by key, with bar
// fractions relative to the largest aggregate.
func groupedBars(groups map[int][]float64, agg func(stats.Float64Data) (float64, error), label func(int) string, format func(float64) string) []chartBar {
	if len(groups) == 0 {
		return nil
	}

	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	values := make([]float64, 0, len(keys))
	bars := make([]chartBar, 0, len(keys))
	maxVal := 0.0
	for _, k := range keys {
		v, err := agg(groups[k])
		if err != nil {
			continue
		}
		values = append(values, v)
		bars = append(bars, chartBar{Label: label(k), Display: format(v)})
		if v > maxVal {
			maxVal = v
		}
	}
	if len(bars) == 0 || maxVal <= 0 {
		return nil
	}

	for i := range bars {
		bars[i].Fraction = values[i] / maxVal
	}
	return bars
}
