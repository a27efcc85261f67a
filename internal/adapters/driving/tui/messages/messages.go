// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLocations is the location picker.
	ViewLocations ViewType = iota
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLocations:
		return "locations"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// LocationSelected is sent when the user picks a location.
type LocationSelected struct {
	ID string
}

// LocationOpened reports the URL a location resolved to after the open
// request was handed to the navigator.
type LocationOpened struct {
	ID  string
	URL string
}

// BinChecked carries the outcome of a bin level check.
type BinChecked struct {
	Result *domain.CheckResult
	Err    error
}
