package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driven"
)

// Ensure AlertStore implements the interface.
var _ driven.AlertStore = (*AlertStore)(nil)

// AlertStore keeps alert records in memory.
type AlertStore struct {
	mu      sync.RWMutex
	records []domain.AlertRecord
}

// NewAlertStore creates a new in-memory alert store.
func NewAlertStore() *AlertStore {
	return &AlertStore{}
}

// Record stores the outcome of a send attempt.
func (s *AlertStore) Record(_ context.Context, record *domain.AlertRecord) error {
	if record == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *record)
	return nil
}

// LastSuccess returns when an alert of kind was last sent successfully.
func (s *AlertStore) LastSuccess(_ context.Context, kind domain.AlertKind) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last time.Time
	for i := range s.records {
		r := &s.records[i]
		if r.Kind == kind && r.Success && r.SentAt.After(last) {
			last = r.SentAt
		}
	}
	return last, nil
}

// List returns the most recent records, newest first.
func (s *AlertStore) List(_ context.Context, limit int) ([]domain.AlertRecord, error) {
	s.mu.RLock()
	out := make([]domain.AlertRecord, len(s.records))
	copy(out, s.records)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
