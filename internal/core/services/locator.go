package services

import (
	"context"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ecobin-cli/internal/logger"
)

// Ensure LocationService implements the interface.
var _ driving.LocationService = (*LocationService)(nil)

// LocationService resolves location identifiers and opens their map URLs.
type LocationService struct {
	navigator driven.Navigator
}

// NewLocationService creates a location service that opens URLs through navigator.
func NewLocationService(navigator driven.Navigator) *LocationService {
	return &LocationService{navigator: navigator}
}

// Resolve returns the map URL for id, or the placeholder for unknown ids.
func (s *LocationService) Resolve(id string) string {
	url, ok := domain.LookupLocation(id)
	if !ok {
		logger.Debug("Unknown location %q, using placeholder", id)
	}
	return url
}

// Open resolves id and requests a new tab for the URL.
// Navigation failures are logged, not returned.
func (s *LocationService) Open(ctx context.Context, id string) string {
	url := s.Resolve(id)
	if s.navigator == nil {
		logger.Warn("no navigator configured, not opening %s", url)
		return url
	}

	logger.Debug("Opening %s in new browsing context", url)
	if err := s.navigator.Open(ctx, url, domain.TargetBlank); err != nil {
		logger.Warn("opening %s: %v", url, err)
	}
	return url
}

// List returns the location catalogue.
func (s *LocationService) List() []domain.Location {
	return domain.Locations()
}
