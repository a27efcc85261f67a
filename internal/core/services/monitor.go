package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ecobin-cli/internal/logger"
)

// Ensure MonitorService implements the interface.
var _ driving.MonitorService = (*MonitorService)(nil)

// MonitorService evaluates bin readings against thresholds and raises alerts.
type MonitorService struct {
	settings driving.SettingsService
	feed     driven.BinFeed
	alerts   driving.AlertService
	store    driven.AlertStore
	now      func() time.Time

	mu       sync.Mutex
	lastSent map[domain.AlertKind]time.Time
}

// NewMonitorService creates a monitor service.
// store may be nil, in which case cooldowns only last for the process.
func NewMonitorService(
	settings driving.SettingsService,
	feed driven.BinFeed,
	alerts driving.AlertService,
	store driven.AlertStore,
) *MonitorService {
	return &MonitorService{
		settings: settings,
		feed:     feed,
		alerts:   alerts,
		store:    store,
		now:      time.Now,
		lastSent: make(map[domain.AlertKind]time.Time),
	}
}

// Check fetches the latest reading and sends an alert if thresholds are
// crossed and the alert kind is not cooling down. A failed send is reported
// in the result, not as an error, so a scheduled loop keeps running.
func (s *MonitorService) Check(ctx context.Context) (*domain.CheckResult, error) {
	if s.feed == nil {
		return nil, domain.ErrFeedUnavailable
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}

	logger.Section("Bin Check")
	reading, err := s.feed.Latest(ctx)
	if errors.Is(err, domain.ErrNoData) {
		logger.Info("No data available from feed")
		return &domain.CheckResult{Status: domain.CheckNoData}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching bin data: %w", err)
	}
	logger.Debug("Reading at %s: wet=%.1f%% dry=%.1f%%", reading.Timestamp, reading.WetLevel, reading.DryLevel)

	result := &domain.CheckResult{Reading: reading, Status: domain.CheckNormal}

	kind, ok := reading.AlertKind(settings.Monitor)
	if !ok {
		logger.Debug("All bins within normal levels")
		return result, nil
	}
	result.Kind = kind

	if remaining := s.cooldownRemaining(ctx, kind, settings.Monitor.Cooldown); remaining > 0 {
		logger.Info("Alert %s cooling down, %s remaining", kind, remaining)
		result.Status = domain.CheckCooldown
		result.CooldownRemaining = remaining
		return result, nil
	}

	alert, err := s.alerts.Compose(kind, *reading, "")
	if err != nil {
		return nil, err
	}

	record, err := s.alerts.Send(ctx, alert)
	result.Record = record
	if err != nil {
		logger.Warn("%v", err)
		result.Status = domain.CheckSendFailed
		return result, nil
	}

	s.mu.Lock()
	s.lastSent[kind] = record.SentAt
	s.mu.Unlock()

	result.Status = domain.CheckAlerted
	return result, nil
}

// cooldownRemaining returns how long kind stays suppressed.
func (s *MonitorService) cooldownRemaining(ctx context.Context, kind domain.AlertKind, cooldown time.Duration) time.Duration {
	last := s.lastSuccess(ctx, kind)
	if last.IsZero() {
		return 0
	}
	elapsed := s.now().Sub(last)
	if elapsed >= cooldown {
		return 0
	}
	return cooldown - elapsed
}

// lastSuccess returns the later of the in-process and persisted send times.
func (s *MonitorService) lastSuccess(ctx context.Context, kind domain.AlertKind) time.Time {
	s.mu.Lock()
	last := s.lastSent[kind]
	s.mu.Unlock()

	if s.store == nil {
		return last
	}
	stored, err := s.store.LastSuccess(ctx, kind)
	if err != nil {
		logger.Warn("reading alert history: %v", err)
		return last
	}
	if stored.After(last) {
		return stored
	}
	return last
}
