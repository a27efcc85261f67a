// Package tui provides the interactive location picker for ecobin.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Locations resolves and opens map URLs. Required.
	Locations driving.LocationService

	// Monitor runs bin checks. Optional; the check key is disabled without it.
	Monitor driving.MonitorService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(locations driving.LocationService, monitor driving.MonitorService) *Ports {
	return &Ports{
		Locations: locations,
		Monitor:   monitor,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Locations == nil {
		return ErrMissingLocationService
	}
	return nil
}
