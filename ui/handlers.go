package ui

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"playlitics/adapters/tabular"
	"playlitics/domain/core"
	"playlitics/domain/games"
	apperrors "playlitics/internal/errors"
	"playlitics/internal/insights"
	"playlitics/internal/session"
)

const sessionCookie = "playlitics_session"

const themeCookie = "playlitics_theme"

// maxUploadBytes caps uploaded dataset size (in-memory tables only).
const maxUploadBytes = 32 << 20

type checkOption struct {
	Value    string
	Selected bool
}

type genreBar struct {
	Value    string
	Count    int
	Fraction float64
}

type kpiCards struct {
	Count       string
	Metascore   string
	UserScore   string
	MedianPrice string
}

type dashboardView struct {
	Error         string
	Theme         string
	SourceLabel   string
	TotalRows     int
	FilteredRows  int
	HasData       bool
	YearMin       int
	YearMax       int
	FilterYearMin int
	FilterYearMax int
	Genres        []checkOption
	Platforms     []checkOption
	PriceCap      float64
	FilterPrice   float64
	ActiveFilters string
	KPIs          kpiCards
	Insights      template.HTML
	TopGenres     []genreBar
	Charts        []chart
	PreviewCols   []string
	PreviewRows   [][]string
}

// sessionFor finds the visitor's session, creating one around the default
// synthetic dataset on first visit.
func (a *App) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if s, err := a.sessions.Get(core.SessionID(cookie.Value)); err == nil {
			return s
		}
	}

	table, err := a.defaultGenerator(a.config.Data.DefaultRows).Generate()
	if err != nil {
		// Config validation guarantees a positive row count, so this only
		// fires on a programming error; an empty table still renders.
		a.logger.Error("synthetic generation failed: %v", err)
		table = games.Table{}
	}

	s := session.New(table, session.SourceSynthetic, "")
	a.sessions.Put(s)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID.String(),
		Path:     "/",
		HttpOnly: true,
	})
	return s
}

// handleDashboard renders the main page, applying any filter submitted via
// the sidebar form.
func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s := a.sessionFor(w, r)

	if r.URL.Query().Get("filtered") == "1" {
		s.SetFilter(parseFilter(r))
	}

	view := a.buildDashboardView(s, r.URL.Query().Get("err"))
	view.Theme = themeFor(r)
	a.renderTemplate(w, "dashboard.html", view)
}

func themeFor(r *http.Request) string {
	if c, err := r.Cookie(themeCookie); err == nil && c.Value == "dark" {
		return "dark"
	}
	return ""
}

// handleToggleTheme flips the dark mode cookie and returns to the dashboard.
func (a *App) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme := "dark"
	if themeFor(r) == "dark" {
		theme = ""
	}
	http.SetCookie(w, &http.Cookie{Name: themeCookie, Value: theme, Path: "/"})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// parseFilter reconstructs filter criteria from the sidebar form values.
func parseFilter(r *http.Request) games.Filter {
	q := r.URL.Query()
	f := games.Filter{
		Genres:    q["genre"],
		Platforms: q["platform"],
	}
	if v, err := strconv.Atoi(q.Get("year_min")); err == nil {
		f.YearMin = v
	}
	if v, err := strconv.Atoi(q.Get("year_max")); err == nil {
		f.YearMax = v
	}
	if v, err := strconv.ParseFloat(q.Get("price_max"), 64); err == nil && v > 0 {
		f.PriceMax = v
	}
	return f
}

func (a *App) buildDashboardView(s *session.Session, errMsg string) dashboardView {
	table := s.Table
	filtered := s.Filtered()
	kpis := insights.ComputeKPIs(filtered)

	view := dashboardView{
		Error:        errMsg,
		SourceLabel:  sourceLabel(s),
		TotalRows:    table.Len(),
		FilteredRows: filtered.Len(),
		HasData:      kpis.HasData(),
		KPIs:         formatKPIs(kpis),
		Insights:     renderInsights(insights.GenerateInsights(filtered, &s.Baseline)),
	}

	// Filter control bounds come from the full table, not the filtered one,
	// so narrowing never shrinks the controls.
	if min, max, ok := table.YearRange(); ok {
		view.YearMin, view.YearMax = min, max
		view.FilterYearMin, view.FilterYearMax = min, max
		if s.Filter.YearMin != 0 {
			view.FilterYearMin = s.Filter.YearMin
		}
		if s.Filter.YearMax != 0 {
			view.FilterYearMax = s.Filter.YearMax
		}
	}

	view.Genres = checkOptions(table.CategoryValues(games.ColGenre), s.Filter.Genres)
	view.Platforms = checkOptions(table.CategoryValues(games.ColPlatform), s.Filter.Platforms)

	view.PriceCap = table.MaxPrice()
	view.FilterPrice = view.PriceCap
	if s.Filter.PriceMax != 0 {
		view.FilterPrice = s.Filter.PriceMax
	}

	view.ActiveFilters = describeActiveFilters(s.Filter, view)
	view.TopGenres = topGenreBars(filtered, 7)
	view.Charts = buildCharts(filtered)
	view.PreviewCols, view.PreviewRows = previewTable(filtered, 50)

	return view
}

func sourceLabel(s *session.Session) string {
	if s.Source == session.SourceUpload {
		return fmt.Sprintf("Uploaded: %s", s.Filename)
	}
	return fmt.Sprintf("Synthetic dataset (%d rows)", s.Table.Len())
}

func checkOptions(values, selected []string) []checkOption {
	selectedSet := make(map[string]bool, len(selected))
	for _, v := range selected {
		selectedSet[v] = true
	}
	opts := make([]checkOption, 0, len(values))
	for _, v := range values {
		// With nothing selected every value is active, matching Filter.Apply.
		opts = append(opts, checkOption{Value: v, Selected: len(selected) == 0 || selectedSet[v]})
	}
	return opts
}

func formatKPIs(k games.KPISummary) kpiCards {
	cards := kpiCards{
		Count:       fmt.Sprintf("%d", k.Count),
		Metascore:   "–",
		UserScore:   "–",
		MedianPrice: "–",
	}
	if k.ValidMetascore() {
		cards.Metascore = fmt.Sprintf("%.1f", k.AvgMetascore)
	}
	if k.ValidUserScore() {
		cards.UserScore = fmt.Sprintf("%.1f", k.AvgUserScore)
	}
	if k.ValidMedianPrice() {
		cards.MedianPrice = fmt.Sprintf("$%.2f", k.MedianPrice)
	}
	return cards
}

func describeActiveFilters(f games.Filter, view dashboardView) string {
	var parts []string
	if f.YearMin != 0 || f.YearMax != 0 {
		if f.YearMin != view.YearMin || f.YearMax != view.YearMax {
			parts = append(parts, fmt.Sprintf("Year: %d–%d", view.FilterYearMin, view.FilterYearMax))
		}
	}
	if n := len(f.Genres); n > 0 && n < len(view.Genres) {
		parts = append(parts, fmt.Sprintf("Genres: %d selected", n))
	}
	if n := len(f.Platforms); n > 0 && n < len(view.Platforms) {
		parts = append(parts, fmt.Sprintf("Platforms: %d selected", n))
	}
	if f.PriceMax != 0 && f.PriceMax < view.PriceCap {
		parts = append(parts, fmt.Sprintf("Max price: $%.0f", f.PriceMax))
	}
	return strings.Join(parts, ", ")
}

func topGenreBars(t games.Table, n int) []genreBar {
	tops := insights.TopCategories(t, games.ColGenre, n)
	if len(tops) == 0 {
		return nil
	}
	maxCount := tops[0].Count
	bars := make([]genreBar, 0, len(tops))
	for _, tc := range tops {
		bars = append(bars, genreBar{
			Value:    tc.Value,
			Count:    tc.Count,
			Fraction: float64(tc.Count) / float64(maxCount),
		})
	}
	return bars
}

func previewTable(t games.Table, limit int) ([]string, [][]string) {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = string(c)
	}

	n := t.Len()
	if n > limit {
		n = limit
	}
	rows := make([][]string, 0, n)
	for _, rec := range t.Records[:n] {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = tabular.FormatCell(rec, c)
		}
		rows = append(rows, row)
	}
	return cols, rows
}

// handleUpload replaces the session table with an uploaded CSV/XLSX file.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	s := a.sessionFor(w, r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.redirectWithError(w, r, "upload too large or malformed")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.redirectWithError(w, r, "no file selected")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		a.redirectWithError(w, r, "failed to read upload")
		return
	}

	table, err := tabular.LoadTable(header.Filename, data)
	if err != nil {
		if core.IsSchemaError(err) {
			a.logger.Warn("upload rejected (%s): %v", header.Filename, apperrors.SchemaUnrecognized(err))
			a.redirectWithError(w, r, "no recognizable game columns in that file")
		} else {
			a.logger.Warn("upload rejected (%s): %v", header.Filename, apperrors.UploadFailed(err))
			a.redirectWithError(w, r, "could not read that file as CSV or XLSX")
		}
		return
	}

	s.SetTable(table, session.SourceUpload, header.Filename)
	a.logger.Info("session %s loaded upload %s (%d rows, %d columns)",
		s.ID, header.Filename, table.Len(), len(table.Columns))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleResetFilters clears the session's filter criteria.
func (a *App) handleResetFilters(w http.ResponseWriter, r *http.Request) {
	s := a.sessionFor(w, r)
	s.ResetFilter()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleRegenerate swaps the session back to a fresh synthetic dataset.
func (a *App) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	s := a.sessionFor(w, r)

	rows := a.config.Data.DefaultRows
	if v, err := strconv.Atoi(r.FormValue("rows")); err == nil && v > 0 {
		rows = v
	}

	table, err := a.defaultGenerator(rows).Generate()
	if err != nil {
		a.redirectWithError(w, r, "generation failed")
		return
	}
	s.SetTable(table, session.SourceSynthetic, "")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDownloadCSV streams the filtered table as CSV.
func (a *App) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	s := a.sessionFor(w, r)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="games_filtered.csv"`)
	if err := tabular.WriteCSV(w, s.Filtered()); err != nil {
		a.logger.Error("CSV export failed: %v", err)
	}
}

// handleDownloadJSON streams the filtered table as JSON records.
func (a *App) handleDownloadJSON(w http.ResponseWriter, r *http.Request) {
	s := a.sessionFor(w, r)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="games_filtered.json"`)
	if err := tabular.WriteJSON(w, s.Filtered()); err != nil {
		a.logger.Error("JSON export failed: %v", err)
	}
}

// handleDownloadSample serves a small generated CSV as an upload reference.
func (a *App) handleDownloadSample(w http.ResponseWriter, r *http.Request) {
	table, err := a.defaultGenerator(a.config.Data.SampleRows).Generate()
	if err != nil {
		http.Error(w, "sample generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="playlitics_sample.csv"`)
	if err := tabular.WriteCSV(w, table); err != nil {
		a.logger.Error("sample export failed: %v", err)
	}
}

// handleAPIKPIs returns the filtered KPI summary as JSON.
func (a *App) handleAPIKPIs(w http.ResponseWriter, r *http.Request) {
	s := a.sessionFor(w, r)
	kpis := insights.ComputeKPIs(s.Filtered())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"count":          kpis.Count,
		"avg_metascore":  jsonNumber(kpis.AvgMetascore),
		"avg_user_score": jsonNumber(kpis.AvgUserScore),
		"median_price":   jsonNumber(kpis.MedianPrice),
		"has_data":       kpis.HasData(),
	})
}

// handleAPIInsights returns the current insight list as JSON.
func (a *App) handleAPIInsights(w http.ResponseWriter, r *http.Request) {
	s := a.sessionFor(w, r)
	list := insights.GenerateInsights(s.Filtered(), &s.Baseline)
	if list == nil {
		list = []insights.Insight{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func (a *App) redirectWithError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?err="+strings.ReplaceAll(msg, " ", "+"), http.StatusSeeOther)
}
