package driven

import (
	"context"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// Notifier delivers an alert message to its recipient.
type Notifier interface {
	// Send delivers body and returns the provider receipt.
	Send(ctx context.Context, body string) (*domain.Receipt, error)

	// Name identifies the notifier in logs and CLI output.
	Name() string
}
