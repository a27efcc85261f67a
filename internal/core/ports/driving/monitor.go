package driving

import (
	"context"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// MonitorService checks bin levels and raises alerts.
type MonitorService interface {
	// Check fetches the latest reading, evaluates thresholds and sends
	// an alert if one is due.
	Check(ctx context.Context) (*domain.CheckResult, error)
}
