package driving

import (
	"context"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// LocationService resolves location identifiers to map URLs and opens them.
type LocationService interface {
	// Resolve returns the map URL for id, or domain.PlaceholderURL.
	Resolve(id string) string

	// Open resolves id and asks the navigator to show it in a new tab.
	// It never fails; the returned URL is the one that was requested.
	Open(ctx context.Context, id string) string

	// List returns the location catalogue.
	List() []domain.Location
}
