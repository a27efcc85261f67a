package mcp

import (
	"context"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// mockLocationService resolves against the real catalogue and records opens.
type mockLocationService struct {
	opened []string
}

func (m *mockLocationService) Resolve(id string) string {
	u, _ := domain.LookupLocation(id)
	return u
}

func (m *mockLocationService) Open(_ context.Context, id string) string {
	u := m.Resolve(id)
	m.opened = append(m.opened, u)
	return u
}

func (m *mockLocationService) List() []domain.Location {
	return domain.Locations()
}

// mockMonitorService is a mock implementation of driving.MonitorService.
type mockMonitorService struct {
	result *domain.CheckResult
	err    error
}

func (m *mockMonitorService) Check(_ context.Context) (*domain.CheckResult, error) {
	return m.result, m.err
}

// mockAlertService is a mock implementation of driving.AlertService.
type mockAlertService struct {
	history []domain.AlertRecord
	err     error
}

func (m *mockAlertService) Compose(kind domain.AlertKind, _ domain.BinReading, _ string) (*domain.Alert, error) {
	return &domain.Alert{Kind: kind}, m.err
}

func (m *mockAlertService) Send(_ context.Context, _ *domain.Alert) (*domain.AlertRecord, error) {
	return nil, m.err
}

func (m *mockAlertService) SendMaintenance(_ context.Context, _ string) (*domain.AlertRecord, error) {
	return nil, m.err
}

func (m *mockAlertService) SendCollection(_ context.Context) (*domain.AlertRecord, error) {
	return nil, m.err
}

func (m *mockAlertService) SendLocation(_ context.Context) (*domain.AlertRecord, error) {
	return nil, m.err
}

func (m *mockAlertService) Preview() []domain.Alert {
	return nil
}

func (m *mockAlertService) History(_ context.Context, _ int) ([]domain.AlertRecord, error) {
	return m.history, m.err
}
