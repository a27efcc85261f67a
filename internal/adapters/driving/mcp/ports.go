package mcp

import (
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Locations resolves and opens map URLs.
	Locations driving.LocationService

	// Monitor checks bin fill levels. Optional.
	Monitor driving.MonitorService

	// Alerts exposes alert history. Optional.
	Alerts driving.AlertService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Locations == nil {
		return ErrMissingLocationService
	}
	return nil
}
