package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/entrepeneur4lyf/sqlpilot/internal/api"
	"github.com/entrepeneur4lyf/sqlpilot/internal/notifications"
)

// TrainingStore mirrors the backend's training corpus. The cached list and
// count stay consistent after every successful mutation: additions trigger
// a full reload, removals filter the cache locally.
type TrainingStore struct {
	mu      sync.RWMutex
	items   []TrainingItem
	count   int
	loading bool
	lastErr string

	training *api.TrainingAPI
	notifier notifications.Notifier
	logger   *log.Logger
}

// NewTrainingStore creates a training store backed by the given endpoint
// group
func NewTrainingStore(training *api.TrainingAPI, notifier notifications.Notifier, logger *log.Logger) *TrainingStore {
	if logger == nil {
		logger = log.Default()
	}
	return &TrainingStore{
		training: training,
		notifier: notifier,
		logger:   logger,
	}
}

// Items returns a copy of the cached training data
func (s *TrainingStore) Items() []TrainingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TrainingItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the cached corpus size
func (s *TrainingStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// IsLoading reports whether a training action is in flight
func (s *TrainingStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error returns the last recorded action failure, empty when none
func (s *TrainingStore) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearError resets the recorded error
func (s *TrainingStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// Fetch replaces the cache and count from the backend list. No
// notification is shown on failure; the recorded error is surfaced for the
// view to render.
func (s *TrainingStore) Fetch(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.training.List(ctx)
	if err != nil {
		s.recordError(err)
		return err
	}

	items := make([]TrainingItem, 0, len(resp.TrainingData))
	for i, item := range resp.TrainingData {
		items = append(items, normalizeTrainingItem(item, i))
	}

	count := resp.Count
	if count == 0 {
		count = len(items)
	}

	s.mu.Lock()
	s.items = items
	s.count = count
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Add posts a new training entry and reloads the full list. The
// authoritative state after an addition always comes from the backend, not
// from an optimistic local insert.
func (s *TrainingStore) Add(ctx context.Context, req api.TrainRequest) error {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.training.Add(ctx, req)
	if err != nil {
		s.recordError(err)
		return err
	}

	message := resp.Message
	if message == "" {
		message = "Training data added successfully"
	}
	if s.notifier != nil {
		s.notifier.Success("Training", message)
	}

	return s.Fetch(ctx)
}

// Remove deletes a training entry and filters it out of the local cache.
// Removal is optimistic-on-success: no reload, the cache and count are
// adjusted locally.
func (s *TrainingStore) Remove(ctx context.Context, id string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.training.Remove(ctx, id)
	if err != nil {
		s.recordError(err)
		return err
	}

	message := resp.Message
	if message == "" {
		message = "Training data removed successfully"
	}
	if s.notifier != nil {
		s.notifier.Success("Training", message)
	}

	s.mu.Lock()
	filtered := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
	s.count = len(filtered)
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// setLoading flips the shared loading flag
func (s *TrainingStore) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// recordError stores the failure for the views
func (s *TrainingStore) recordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err.Error()
}

// normalizeTrainingItem fills defaults the backend may omit: a placeholder
// id, the sql type, and the content fallback chain.
func normalizeTrainingItem(item api.TrainingDataItem, index int) TrainingItem {
	normalized := TrainingItem{
		ID:            item.ID,
		Question:      item.Question,
		Content:       item.Content,
		Type:          TrainingDataType(item.TrainingDataType),
		SQL:           item.SQL,
		DDL:           item.DDL,
		Documentation: item.Documentation,
	}

	if normalized.ID == "" {
		normalized.ID = fmt.Sprintf("training-%d", index)
	}
	if normalized.Type == "" {
		normalized.Type = TrainingTypeSQL
	}
	if normalized.Content == "" {
		switch {
		case item.SQL != "":
			normalized.Content = item.SQL
		case item.DDL != "":
			normalized.Content = item.DDL
		case item.Documentation != "":
			normalized.Content = item.Documentation
		}
	}
	return normalized
}
