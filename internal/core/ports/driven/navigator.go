package driven

import (
	"context"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// Navigator asks the host environment to display a URL.
// Implementations start the navigation and return without waiting for it.
type Navigator interface {
	// Open requests that url be displayed in the given browsing context.
	Open(ctx context.Context, url string, target domain.BrowsingContext) error
}
