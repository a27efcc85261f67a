// Package mcp provides an MCP (Model Context Protocol) server adapter for ecobin.
// It lets AI assistants resolve bin locations and check bin fill levels.
package mcp

import "errors"

// ErrMissingLocationService is returned when the location service is not provided.
var ErrMissingLocationService = errors.New("mcp: location service is required")

// ErrMonitorUnavailable is returned by check_bins when no monitor is wired.
var ErrMonitorUnavailable = errors.New("mcp: bin monitor is not configured")
