// Package session models the caller-owned state of one dashboard visit:
// the loaded table, its baseline KPI summary, and the active filter. The
// insight and KPI functions stay pure; everything stateful lives here and
// is passed in explicitly.
package session

import (
	"sync"
	"time"

	"playlitics/domain/core"
	"playlitics/domain/games"
	"playlitics/internal/insights"
)

// Source records where a session's table came from
type Source string

const (
	SourceSynthetic Source = "synthetic"
	SourceUpload    Source = "upload"
)

// Session is the explicit context object for one loaded dataset. The
// baseline summary is computed once when the table is set and reused as
// the comparison point for filtered-subset insights.
type Session struct {
	ID        core.SessionID   `json:"id"`
	Source    Source           `json:"source"`
	Filename  string           `json:"filename,omitempty"`
	Table     games.Table      `json:"-"`
	Baseline  games.KPISummary `json:"baseline"`
	Filter    games.Filter     `json:"filter"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// New creates a session around a loaded table
func New(table games.Table, source Source, filename string) *Session {
	now := time.Now()
	return &Session{
		ID:        core.SessionID(core.NewID()),
		Source:    source,
		Filename:  filename,
		Table:     table,
		Baseline:  insights.ComputeKPIs(table),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetTable replaces the session's table and recomputes the baseline.
// The active filter is reset: criteria built for the old table are
// meaningless against the new one.
func (s *Session) SetTable(table games.Table, source Source, filename string) {
	s.Table = table
	s.Source = source
	s.Filename = filename
	s.Baseline = insights.ComputeKPIs(table)
	s.Filter = games.Filter{}
	s.UpdatedAt = time.Now()
}

// SetFilter updates the active filter criteria.
func (s *Session) SetFilter(f games.Filter) {
	s.Filter = f
	s.UpdatedAt = time.Now()
}

// ResetFilter clears all filter criteria.
func (s *Session) ResetFilter() {
	s.SetFilter(games.Filter{})
}

// Filtered applies the active filter to the session's table.
func (s *Session) Filtered() games.Table {
	return s.Filter.Apply(s.Table)
}

// Registry holds live sessions keyed by ID. It is the only mutable shared
// state in the application and is mutex-guarded; everything below it is
// pure functions over tables.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*Session
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[core.SessionID]*Session)}
}

// Put stores a session.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

// Get returns the session for an ID.
func (r *Registry) Get(id core.SessionID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return s, nil
}

// Delete removes a session.
func (r *Registry) Delete(id core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
