package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
)

// mockLocationService resolves against the real catalogue. With out set it
// writes each open request instead of recording it.
type mockLocationService struct {
	mu     sync.Mutex
	out    io.Writer
	opened []string
}

var _ driving.LocationService = (*mockLocationService)(nil)

func (m *mockLocationService) Resolve(id string) string {
	u, _ := domain.LookupLocation(id)
	return u
}

func (m *mockLocationService) Open(_ context.Context, id string) string {
	u := m.Resolve(id)
	if m.out != nil {
		fmt.Fprintf(m.out, "%s\t%s\n", u, domain.TargetBlank)
		return u
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = append(m.opened, id)
	return u
}

func (m *mockLocationService) List() []domain.Location {
	return domain.Locations()
}

// mockMonitorService returns a canned check result.
type mockMonitorService struct {
	result *domain.CheckResult
	err    error
}

var _ driving.MonitorService = (*mockMonitorService)(nil)

func (m *mockMonitorService) Check(_ context.Context) (*domain.CheckResult, error) {
	return m.result, m.err
}

// mockAlertService records which alerts were sent.
type mockAlertService struct {
	sent    []domain.AlertKind
	issue   string
	err     error
	history []domain.AlertRecord
	limit   int
}

var _ driving.AlertService = (*mockAlertService)(nil)

func (m *mockAlertService) Compose(kind domain.AlertKind, _ domain.BinReading, _ string) (*domain.Alert, error) {
	return &domain.Alert{Kind: kind, Body: "body for " + kind.String()}, nil
}

func (m *mockAlertService) Send(_ context.Context, alert *domain.Alert) (*domain.AlertRecord, error) {
	return m.send(alert.Kind)
}

func (m *mockAlertService) SendMaintenance(_ context.Context, issue string) (*domain.AlertRecord, error) {
	m.issue = issue
	return m.send(domain.AlertMaintenance)
}

func (m *mockAlertService) SendCollection(_ context.Context) (*domain.AlertRecord, error) {
	return m.send(domain.AlertCollection)
}

func (m *mockAlertService) SendLocation(_ context.Context) (*domain.AlertRecord, error) {
	return m.send(domain.AlertLocation)
}

func (m *mockAlertService) send(kind domain.AlertKind) (*domain.AlertRecord, error) {
	if m.err != nil {
		return &domain.AlertRecord{Kind: kind, Error: m.err.Error()}, m.err
	}
	m.sent = append(m.sent, kind)
	return &domain.AlertRecord{Kind: kind, MessageID: "SM123", Success: true}, nil
}

func (m *mockAlertService) Preview() []domain.Alert {
	return []domain.Alert{
		{Kind: domain.AlertCritical, Body: "CRITICAL body"},
		{Kind: domain.AlertCollection, Body: "Collection body"},
	}
}

func (m *mockAlertService) History(_ context.Context, limit int) ([]domain.AlertRecord, error) {
	m.limit = limit
	return m.history, nil
}

// mockSettingsService keeps raw values in a map.
type mockSettingsService struct {
	values  map[string]string
	secrets map[string]bool
}

var _ driving.SettingsService = (*mockSettingsService)(nil)

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		values: map[string]string{
			"bin.name":           "CSE Block Downtown",
			"monitor.interval":   "5m0s",
			"twilio.auth_token":  "abcdefghijklmnop",
			"thingspeak.api_key": "",
		},
		secrets: map[string]bool{"twilio.auth_token": true, "thingspeak.api_key": true},
	}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *mockSettingsService) GetValue(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrUnknownSetting
	}
	return v, nil
}

func (m *mockSettingsService) SetValue(key, value string) error {
	if _, ok := m.values[key]; !ok {
		return domain.ErrUnknownSetting
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *mockSettingsService) IsSecret(key string) bool {
	return m.secrets[key]
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// mockScheduler blocks in Start until its context ends.
type mockScheduler struct {
	started chan struct{}
	stopped bool
	err     error
}

var _ driving.Scheduler = (*mockScheduler)(nil)

func (m *mockScheduler) Start(ctx context.Context) error {
	if m.started != nil {
		close(m.started)
	}
	if m.err != nil {
		return m.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockScheduler) Stop() error {
	m.stopped = true
	return nil
}

// mockConfigWatcher reports a fixed path and never fires.
type mockConfigWatcher struct {
	path    string
	watched chan struct{}
}

func (m *mockConfigWatcher) Watch(ctx context.Context, _ func()) error {
	if m.watched != nil {
		close(m.watched)
	}
	<-ctx.Done()
	return nil
}

func (m *mockConfigWatcher) Path() string {
	return m.path
}

// setupTestServices installs mock services and returns a restore func.
func setupTestServices() func() {
	prev := Services{
		Locations:      locationService,
		PrintLocations: printLocator,
		Monitor:        monitorService,
		Alerts:         alertService,
		Settings:       settingsService,
		Scheduler:      scheduler,
		Config:         configWatcher,
		Close:          closeServices,
	}
	prevFactory := serviceFactory

	serviceFactory = nil
	SetServices(&Services{
		Locations: &mockLocationService{},
		PrintLocations: func(w io.Writer) driving.LocationService {
			return &mockLocationService{out: w}
		},
		Monitor: &mockMonitorService{result: &domain.CheckResult{
			Reading: &domain.BinReading{WetLevel: 42.5, DryLevel: 10, Timestamp: "2024-10-29T10:00:00Z"},
			Status:  domain.CheckNormal,
		}},
		Alerts:    &mockAlertService{},
		Settings:  newMockSettingsService(),
		Scheduler: &mockScheduler{},
		Config:    &mockConfigWatcher{path: "/tmp/ecobin/config.toml"},
	})

	return func() {
		SetServices(&prev)
		serviceFactory = prevFactory
	}
}

// fixedTime is a stable timestamp for history output.
var fixedTime = time.Date(2024, 10, 29, 10, 0, 0, 0, time.UTC)
