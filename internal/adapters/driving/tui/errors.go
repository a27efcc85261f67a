package tui

import "errors"

// ErrMissingLocationService is returned when the location service is not provided.
var ErrMissingLocationService = errors.New("tui: location service is required")

// ErrMonitorUnavailable is shown when a bin check is requested without a monitor.
var ErrMonitorUnavailable = errors.New("tui: bin monitor is not configured")
