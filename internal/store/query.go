package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/entrepeneur4lyf/sqlpilot/internal/api"
)

// maxHistory bounds the client-side query history. Insertions past the
// cap evict the oldest entry.
const maxHistory = 50

// QueryStore holds the current query, the bounded history (newest first),
// and the loading/error pair the views render.
type QueryStore struct {
	mu      sync.RWMutex
	current *Query
	history []*Query
	loading bool
	lastErr string

	queries *api.QueryAPI
	logger  *log.Logger
}

// NewQueryStore creates a query store backed by the given endpoint group
func NewQueryStore(queries *api.QueryAPI, logger *log.Logger) *QueryStore {
	if logger == nil {
		logger = log.Default()
	}
	return &QueryStore{
		queries: queries,
		logger:  logger,
	}
}

// CurrentQuery returns the active query, or nil
func (s *QueryStore) CurrentQuery() *Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// History returns a copy of the history, newest first
func (s *QueryStore) History() []*Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Query, len(s.history))
	copy(out, s.history)
	return out
}

// IsLoading reports whether a query is in flight
func (s *QueryStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error returns the last recorded action failure, empty when none
func (s *QueryStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// SendQuery posts the question, normalizes the response into a Query
// record, makes it current, and prepends it to the history. On failure the
// error message is recorded, the current query is left unchanged, and the
// error is returned for the caller to react to.
func (s *QueryStore) SendQuery(ctx context.Context, question string) (*Query, error) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	resp, err := s.queries.Send(ctx, question)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	query := &Query{
		ID:        resp.ID,
		Question:  question,
		SQL:       resp.SQL,
		Results:   resp.Results,
		Chart:     resp.Chart,
		Timestamp: time.Now().UnixMilli(),
		Error:     resp.Error,
	}
	if query.ID == "" {
		query.ID = generateQueryID()
	}

	s.mu.Lock()
	s.current = query
	s.prependLocked(query)
	s.mu.Unlock()

	return query, nil
}

// LoadHistory replaces the history wholesale from the backend's question
// log. History refresh is best-effort: failures are logged and swallowed.
func (s *QueryStore) LoadHistory(ctx context.Context) {
	items, err := s.queries.History(ctx)
	if err != nil {
		s.logger.Warn("loading question history failed", "error", err)
		return
	}

	history := make([]*Query, 0, len(items))
	for i, item := range items {
		query := &Query{
			ID:        item.ID,
			Question:  item.Question,
			SQL:       item.SQL,
			Timestamp: item.Timestamp,
		}
		if query.ID == "" {
			query.ID = fmt.Sprintf("history-%d", i)
		}
		if query.Timestamp == 0 {
			query.Timestamp = time.Now().UnixMilli()
		}
		history = append(history, query)
	}

	s.mu.Lock()
	s.history = history
	s.mu.Unlock()
}

// LoadQueryByID makes the query with the given id current. A cached
// history entry is preferred; the backend is only asked when the id is
// absent locally, and the loaded record does not join the history.
func (s *QueryStore) LoadQueryByID(ctx context.Context, id string) (*Query, error) {
	s.mu.Lock()
	for _, query := range s.history {
		if query.ID == id {
			s.current = query
			s.mu.Unlock()
			return query, nil
		}
	}
	s.mu.Unlock()

	resp, err := s.queries.Load(ctx, id)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	query := &Query{
		ID:        id,
		Question:  resp.Question,
		SQL:       resp.SQL,
		Results:   resp.Results,
		Chart:     resp.Chart,
		Timestamp: time.Now().UnixMilli(),
	}

	s.mu.Lock()
	s.current = query
	s.mu.Unlock()
	return query, nil
}

// GenerateQuestions fetches suggested starter questions
func (s *QueryStore) GenerateQuestions(ctx context.Context) ([]string, error) {
	return s.queries.GenerateQuestions(ctx)
}

// GenerateFollowups fetches follow-up suggestions for an answered question
func (s *QueryStore) GenerateFollowups(ctx context.Context, question, sql string) ([]string, error) {
	return s.queries.GenerateFollowups(ctx, question, sql)
}

// AddQuery prepends a query to the history and makes it current
func (s *QueryStore) AddQuery(query *Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prependLocked(query)
	s.current = query
}

// DeleteQueryFromHistory removes the entry with the given id. Absent ids
// are a no-op.
func (s *QueryStore) DeleteQueryFromHistory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.history[:0]
	for _, query := range s.history {
		if query.ID != id {
			filtered = append(filtered, query)
		}
	}
	s.history = filtered
}

// ClearHistory drops all history entries
func (s *QueryStore) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// ClearError resets the recorded error
func (s *QueryStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// ClearCurrentQuery resets the active query
func (s *QueryStore) ClearCurrentQuery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// prependLocked inserts newest-first and enforces the history cap.
// Callers must hold the write lock.
func (s *QueryStore) prependLocked(query *Query) {
	s.history = append([]*Query{query}, s.history...)
	if len(s.history) > maxHistory {
		s.history = s.history[:maxHistory]
	}
}

// querySnapshot is the persisted shape of the query store
type querySnapshot struct {
	CurrentQuery *Query   `json:"currentQuery"`
	History      []*Query `json:"history"`
}

// Snapshot returns the persistable query state
func (s *QueryStore) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return querySnapshot{CurrentQuery: s.current, History: s.history}
}

// Restore replaces the query state from a persisted snapshot
func (s *QueryStore) Restore(data []byte) error {
	var snap querySnapshot
	if err := unmarshalSnapshot(data, &snap); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap.CurrentQuery
	s.history = snap.History
	if len(s.history) > maxHistory {
		s.history = s.history[:maxHistory]
	}
	return nil
}

// generateQueryID creates a client-side id for responses that omit one
func generateQueryID() string {
	return "query-" + uuid.New().String()
}
