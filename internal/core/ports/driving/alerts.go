package driving

import (
	"context"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// AlertService composes and sends bin alerts.
type AlertService interface {
	// Compose renders an alert of kind for reading without sending it.
	// note is the issue text for maintenance alerts and ignored otherwise.
	Compose(kind domain.AlertKind, reading domain.BinReading, note string) (*domain.Alert, error)

	// Send delivers alert and records the attempt.
	Send(ctx context.Context, alert *domain.Alert) (*domain.AlertRecord, error)

	// SendMaintenance sends a maintenance alert describing issue.
	SendMaintenance(ctx context.Context, issue string) (*domain.AlertRecord, error)

	// SendCollection sends a collection confirmation.
	SendCollection(ctx context.Context) (*domain.AlertRecord, error)

	// SendLocation sends the bin location with a collection request.
	SendLocation(ctx context.Context) (*domain.AlertRecord, error)

	// Preview renders every alert kind with sample readings.
	Preview() []domain.Alert

	// History returns the most recent alert records, newest first.
	History(ctx context.Context, limit int) ([]domain.AlertRecord, error)
}
