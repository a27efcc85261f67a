package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// AlertStore persists alert send attempts.
type AlertStore interface {
	// Record stores the outcome of a send attempt.
	Record(ctx context.Context, record *domain.AlertRecord) error

	// LastSuccess returns when an alert of kind was last sent successfully.
	// Returns the zero time and no error if none was.
	LastSuccess(ctx context.Context, kind domain.AlertKind) (time.Time, error)

	// List returns the most recent records, newest first.
	List(ctx context.Context, limit int) ([]domain.AlertRecord, error)
}
