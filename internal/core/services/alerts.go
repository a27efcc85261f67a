package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ecobin-cli/internal/logger"
)

// Ensure AlertService implements the interface.
var _ driving.AlertService = (*AlertService)(nil)

const timestampLayout = "2006-01-02 15:04:05"

// AlertService composes alert messages and sends them through a notifier.
type AlertService struct {
	settings driving.SettingsService
	notifier driven.Notifier
	store    driven.AlertStore
	now      func() time.Time
}

// NewAlertService creates an alert service.
// notifier and store may be nil: composing still works, sending does not.
func NewAlertService(
	settings driving.SettingsService,
	notifier driven.Notifier,
	store driven.AlertStore,
) *AlertService {
	return &AlertService{
		settings: settings,
		notifier: notifier,
		store:    store,
		now:      time.Now,
	}
}

// Compose renders an alert of kind for reading.
func (s *AlertService) Compose(kind domain.AlertKind, reading domain.BinReading, note string) (*domain.Alert, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	bin := settings.Bin.Bin()

	var body string
	switch kind {
	case domain.AlertCritical:
		body = criticalMessage(bin, reading)
	case domain.AlertWetWarning:
		body = fullMessage(bin, domain.WasteWet, reading.WetLevel)
	case domain.AlertDryWarning:
		body = fullMessage(bin, domain.WasteDry, reading.DryLevel)
	case domain.AlertMaintenance:
		if note == "" {
			return nil, fmt.Errorf("maintenance alert needs an issue: %w", domain.ErrInvalidInput)
		}
		body = maintenanceMessage(bin, note)
	case domain.AlertCollection:
		body = collectionMessage(bin, s.now())
	case domain.AlertLocation:
		body = locationMessage(bin)
	default:
		return nil, fmt.Errorf("alert kind %q: %w", kind, domain.ErrInvalidInput)
	}

	return &domain.Alert{
		Kind:    kind,
		BinID:   bin.ID,
		BinName: bin.Name,
		Body:    body,
	}, nil
}

// Send delivers alert and records the attempt.
// The record is returned even when delivery fails.
func (s *AlertService) Send(ctx context.Context, alert *domain.Alert) (*domain.AlertRecord, error) {
	if alert == nil {
		return nil, domain.ErrInvalidInput
	}
	if s.notifier == nil {
		return nil, domain.ErrNotifierUnavailable
	}

	record := &domain.AlertRecord{
		ID:     uuid.New().String(),
		Kind:   alert.Kind,
		BinID:  alert.BinID,
		Body:   alert.Body,
		SentAt: s.now(),
	}

	logger.Debug("Sending %s alert via %s", alert.Kind, s.notifier.Name())
	receipt, sendErr := s.notifier.Send(ctx, alert.Body)
	if sendErr != nil {
		record.Error = sendErr.Error()
	} else {
		record.Success = true
		record.MessageID = receipt.MessageID
		if !receipt.SentAt.IsZero() {
			record.SentAt = receipt.SentAt
		}
	}

	if s.store != nil {
		if err := s.store.Record(ctx, record); err != nil {
			logger.Warn("recording %s alert: %v", alert.Kind, err)
		}
	}

	if sendErr != nil {
		return record, fmt.Errorf("sending %s alert: %w", alert.Kind, sendErr)
	}
	return record, nil
}

// SendMaintenance sends a maintenance alert describing issue.
func (s *AlertService) SendMaintenance(ctx context.Context, issue string) (*domain.AlertRecord, error) {
	return s.composeAndSend(ctx, domain.AlertMaintenance, issue)
}

// SendCollection sends a collection confirmation.
func (s *AlertService) SendCollection(ctx context.Context) (*domain.AlertRecord, error) {
	return s.composeAndSend(ctx, domain.AlertCollection, "")
}

// SendLocation sends the bin location with a collection request.
func (s *AlertService) SendLocation(ctx context.Context) (*domain.AlertRecord, error) {
	return s.composeAndSend(ctx, domain.AlertLocation, "")
}

func (s *AlertService) composeAndSend(ctx context.Context, kind domain.AlertKind, note string) (*domain.AlertRecord, error) {
	alert, err := s.Compose(kind, domain.BinReading{}, note)
	if err != nil {
		return nil, err
	}
	return s.Send(ctx, alert)
}

// Preview renders every alert kind with sample readings.
func (s *AlertService) Preview() []domain.Alert {
	samples := []struct {
		kind    domain.AlertKind
		reading domain.BinReading
		note    string
	}{
		{domain.AlertWetWarning, domain.BinReading{WetLevel: 85}, ""},
		{domain.AlertDryWarning, domain.BinReading{DryLevel: 95}, ""},
		{domain.AlertCritical, domain.BinReading{WetLevel: 92, DryLevel: 88}, ""},
		{domain.AlertMaintenance, domain.BinReading{}, "Sensor malfunction detected"},
		{domain.AlertCollection, domain.BinReading{}, ""},
		{domain.AlertLocation, domain.BinReading{}, ""},
	}

	alerts := make([]domain.Alert, 0, len(samples))
	for _, sample := range samples {
		alert, err := s.Compose(sample.kind, sample.reading, sample.note)
		if err != nil {
			logger.Warn("composing %s preview: %v", sample.kind, err)
			continue
		}
		alerts = append(alerts, *alert)
	}
	return alerts
}

// History returns the most recent alert records, newest first.
func (s *AlertService) History(ctx context.Context, limit int) ([]domain.AlertRecord, error) {
	if s.store == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.store.List(ctx, limit)
}

// Message templates.

func fullMessage(bin domain.Bin, waste domain.WasteType, level float64) string {
	return fmt.Sprintf(`🚨 EcoBin-X Alert!

Bin #%d - %s
Waste Type: %s
Fill Level: %s%%
Status: FULL - Collection Required

Location: %s

Please proceed for immediate collection.`, bin.ID, bin.Name, waste, formatLevel(level), bin.LocationURL)
}

func criticalMessage(bin domain.Bin, reading domain.BinReading) string {
	return fmt.Sprintf(`🔴 CRITICAL ALERT - EcoBin-X

Bin #%d - %s
Wet Waste: %s%%
Dry Waste: %s%%
Status: OVERFLOW RISK

URGENT collection required!
Location: %s`, bin.ID, bin.Name, formatLevel(reading.WetLevel), formatLevel(reading.DryLevel), bin.LocationURL)
}

func maintenanceMessage(bin domain.Bin, issue string) string {
	return fmt.Sprintf(`⚠️ Maintenance Required - EcoBin-X

Bin #%d - %s
Issue: %s

Location: %s

Please check and resolve.`, bin.ID, bin.Name, issue, bin.LocationURL)
}

func collectionMessage(bin domain.Bin, at time.Time) string {
	return fmt.Sprintf(`✓ Collection Confirmed - EcoBin-X

Bin #%d - %s
Status: Emptied
Time: %s

Thank you for keeping our environment clean!`, bin.ID, bin.Name, at.Format(timestampLayout))
}

func locationMessage(bin domain.Bin) string {
	return fmt.Sprintf("Bin location: %s. Please proceed for collection %s", bin.Name, bin.LocationURL)
}

// formatLevel prints a fill level with one decimal place.
func formatLevel(level float64) string {
	return fmt.Sprintf("%.1f", level)
}
