package driven

import (
	"context"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// BinFeed provides fill-level readings for the monitored bin.
type BinFeed interface {
	// Latest returns the most recent reading.
	// Returns domain.ErrNoData when the feed has no entries.
	Latest(ctx context.Context) (*domain.BinReading, error)
}
