package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// mockNavigator records every navigation request.
type mockNavigator struct {
	mu      sync.Mutex
	urls    []string
	targets []domain.BrowsingContext
	err     error
}

func (m *mockNavigator) Open(_ context.Context, url string, target domain.BrowsingContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, url)
	m.targets = append(m.targets, target)
	return m.err
}

// mockFeed returns a fixed reading or error.
type mockFeed struct {
	reading *domain.BinReading
	err     error
	calls   int
}

func (m *mockFeed) Latest(_ context.Context) (*domain.BinReading, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	r := *m.reading
	return &r, nil
}

// mockNotifier records sent bodies.
type mockNotifier struct {
	mu     sync.Mutex
	bodies []string
	err    error
	sentAt time.Time
}

func (m *mockNotifier) Send(_ context.Context, body string) (*domain.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bodies = append(m.bodies, body)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Receipt{MessageID: "SM123", SentAt: m.sentAt}, nil
}

func (m *mockNotifier) Name() string {
	return "mock"
}

func (m *mockNotifier) sent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bodies)
}

// mockMonitor counts checks.
type mockMonitor struct {
	mu     sync.Mutex
	checks int
	status domain.CheckStatus
	err    error
}

func (m *mockMonitor) Check(_ context.Context) (*domain.CheckResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks++
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CheckResult{Status: m.status}, nil
}

func (m *mockMonitor) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checks
}
