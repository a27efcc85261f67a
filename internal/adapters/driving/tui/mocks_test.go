package tui

import (
	"context"
	"sync"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
)

// mockLocationService resolves against the real catalogue and records opens.
type mockLocationService struct {
	mu     sync.Mutex
	opened []string
}

var _ driving.LocationService = (*mockLocationService)(nil)

func (m *mockLocationService) Resolve(id string) string {
	u, _ := domain.LookupLocation(id)
	return u
}

func (m *mockLocationService) Open(_ context.Context, id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = append(m.opened, id)
	return m.Resolve(id)
}

func (m *mockLocationService) List() []domain.Location {
	return domain.Locations()
}

func (m *mockLocationService) Opened() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.opened...)
}

// mockMonitorService returns a canned check result.
type mockMonitorService struct {
	result *domain.CheckResult
	err    error
	calls  int
}

var _ driving.MonitorService = (*mockMonitorService)(nil)

func (m *mockMonitorService) Check(_ context.Context) (*domain.CheckResult, error) {
	m.calls++
	return m.result, m.err
}
