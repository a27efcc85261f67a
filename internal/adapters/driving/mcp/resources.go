package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriScheme = "ecobin://"

	// alertHistoryLimit bounds the alerts resource.
	alertHistoryLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "locations",
		Name:        "locations",
		Description: "The location catalogue",
		MIMEType:    "application/json",
	}, s.handleLocationsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "locations/{locationId}",
		Name:        "location-url",
		Description: "Map URL of a single location",
		MIMEType:    "text/uri-list",
	}, s.handleLocationResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "alerts",
		Name:        "alerts",
		Description: "Most recent alert send attempts",
		MIMEType:    "application/json",
	}, s.handleAlertsResource)
}

func (s *Server) handleLocationsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	locations := s.ports.Locations.List()

	infos := make([]LocationOutput, len(locations))
	for i, loc := range locations {
		infos[i] = LocationOutput{ID: loc.ID, URL: loc.URL}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleLocationResource returns the map URL for ecobin://locations/{id}.
// Unknown identifiers are not found rather than resolving to the placeholder.
func (s *Server) handleLocationResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractLocationID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	for _, loc := range s.ports.Locations.List() {
		if loc.ID == id {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/uri-list",
					Text:     loc.URL,
				}},
			}, nil
		}
	}

	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func (s *Server) handleAlertsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type alertInfo struct {
		ID        string `json:"id"`
		Kind      string `json:"kind"`
		BinID     int    `json:"bin_id"`
		Success   bool   `json:"success"`
		MessageID string `json:"message_id,omitempty"`
		Error     string `json:"error,omitempty"`
		SentAt    string `json:"sent_at"`
	}

	infos := []alertInfo{}
	if s.ports.Alerts != nil {
		records, err := s.ports.Alerts.History(ctx, alertHistoryLimit)
		if err != nil {
			return nil, fmt.Errorf("listing alerts: %w", err)
		}
		for i := range records {
			r := &records[i]
			infos = append(infos, alertInfo{
				ID:        r.ID,
				Kind:      r.Kind.String(),
				BinID:     r.BinID,
				Success:   r.Success,
				MessageID: r.MessageID,
				Error:     r.Error,
				SentAt:    r.SentAt.Format(time.RFC3339),
			})
		}
	}

	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractLocationID extracts the identifier from ecobin://locations/{locationId}.
func extractLocationID(uri string) string {
	const prefix = uriScheme + "locations/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
