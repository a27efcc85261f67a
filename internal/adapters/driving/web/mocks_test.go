package web

import (
	"context"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// mockLocationService resolves against the real catalogue.
type mockLocationService struct{}

func (mockLocationService) Resolve(id string) string {
	u, _ := domain.LookupLocation(id)
	return u
}

func (m mockLocationService) Open(_ context.Context, id string) string {
	return m.Resolve(id)
}

func (mockLocationService) List() []domain.Location {
	return domain.Locations()
}
