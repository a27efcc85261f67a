package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// ResolveInput is the input schema for the resolve_location tool.
type ResolveInput struct {
	Location string `json:"location" jsonschema:"the location identifier, e.g. Location1"`
	Open     bool   `json:"open,omitempty" jsonschema:"also open the map in a new browser tab on the host"`
}

// ResolveOutput is the output schema for the resolve_location tool.
type ResolveOutput struct {
	Location string `json:"location"`
	URL      string `json:"url"`
	Known    bool   `json:"known"`
	Opened   bool   `json:"opened"`
}

// ListLocationsInput is the (empty) input schema for list_locations.
type ListLocationsInput struct{}

// ListLocationsOutput is the output schema for the list_locations tool.
type ListLocationsOutput struct {
	Locations []LocationOutput `json:"locations"`
	Count     int              `json:"count"`
}

// LocationOutput is a single catalogue entry.
type LocationOutput struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckBinsInput is the (empty) input schema for check_bins.
type CheckBinsInput struct{}

// CheckBinsOutput is the output schema for the check_bins tool.
type CheckBinsOutput struct {
	Status            string  `json:"status"`
	WetLevel          float64 `json:"wet_level"`
	DryLevel          float64 `json:"dry_level"`
	Timestamp         string  `json:"timestamp,omitempty"`
	AlertKind         string  `json:"alert_kind,omitempty"`
	CooldownRemaining string  `json:"cooldown_remaining,omitempty"`
	MessageID         string  `json:"message_id,omitempty"`
	Error             string  `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_location",
		Description: "Resolve a location identifier to its map URL, optionally opening it",
	}, s.handleResolve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_locations",
		Description: "List every known location identifier and its map URL",
	}, s.handleListLocations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_bins",
		Description: "Read the latest bin fill levels and raise an alert if thresholds are crossed",
	}, s.handleCheckBins)
}

func (s *Server) handleResolve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, ResolveOutput, error) {
	out := ResolveOutput{Location: input.Location}

	if input.Open {
		out.URL = s.ports.Locations.Open(ctx, input.Location)
		out.Opened = !domain.IsPlaceholder(out.URL)
	} else {
		out.URL = s.ports.Locations.Resolve(input.Location)
	}
	out.Known = !domain.IsPlaceholder(out.URL)

	return nil, out, nil
}

func (s *Server) handleListLocations(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListLocationsInput,
) (*mcp.CallToolResult, ListLocationsOutput, error) {
	locations := s.ports.Locations.List()

	out := ListLocationsOutput{
		Locations: make([]LocationOutput, len(locations)),
		Count:     len(locations),
	}
	for i, loc := range locations {
		out.Locations[i] = LocationOutput{ID: loc.ID, URL: loc.URL}
	}

	return nil, out, nil
}

func (s *Server) handleCheckBins(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CheckBinsInput,
) (*mcp.CallToolResult, CheckBinsOutput, error) {
	if s.ports.Monitor == nil {
		return nil, CheckBinsOutput{}, ErrMonitorUnavailable
	}

	result, err := s.ports.Monitor.Check(ctx)
	if err != nil {
		return nil, CheckBinsOutput{}, fmt.Errorf("checking bins: %w", err)
	}

	out := CheckBinsOutput{Status: string(result.Status)}
	if result.Reading != nil {
		out.WetLevel = result.Reading.WetLevel
		out.DryLevel = result.Reading.DryLevel
		out.Timestamp = result.Reading.Timestamp
	}
	if result.Kind != "" {
		out.AlertKind = result.Kind.String()
	}
	if result.Status == domain.CheckCooldown {
		out.CooldownRemaining = result.CooldownRemaining.String()
	}
	if result.Record != nil {
		out.MessageID = result.Record.MessageID
		out.Error = result.Record.Error
	}

	return nil, out, nil
}
