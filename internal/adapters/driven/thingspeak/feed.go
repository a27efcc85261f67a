// Package thingspeak reads smart-bin fill levels from a ThingSpeak channel.
package thingspeak

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driven"
)

// Ensure Feed implements the interface.
var _ driven.BinFeed = (*Feed)(nil)

// DefaultTimeout bounds a single feed request.
const DefaultTimeout = 10 * time.Second

// Channel fields carrying the compartment levels.
const (
	fieldWet = "field1"
	fieldDry = "field2"
)

// Feed fetches the latest entry of a ThingSpeak channel.
type Feed struct {
	client    *resty.Client
	channelID string
	apiKey    string
}

// NewFeed creates a feed client for the configured channel.
func NewFeed(cfg domain.ThingSpeakSettings) *Feed {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(DefaultTimeout).
		SetHeader("Accept", "application/json")

	return &Feed{
		client:    client,
		channelID: cfg.ChannelID,
		apiKey:    cfg.APIKey,
	}
}

// feedResponse is the subset of the channel feed document we read.
type feedResponse struct {
	Feeds []map[string]any `json:"feeds"`
}

// Latest returns the most recent reading on the channel.
func (f *Feed) Latest(ctx context.Context) (*domain.BinReading, error) {
	if f.channelID == "" {
		return nil, fmt.Errorf("thingspeak channel not configured: %w", domain.ErrInvalidInput)
	}

	req := f.client.R().
		SetContext(ctx).
		SetPathParam("channel", f.channelID).
		SetQueryParam("results", "1").
		SetResult(&feedResponse{})
	if f.apiKey != "" {
		req.SetQueryParam("api_key", f.apiKey)
	}

	resp, err := req.Get("/channels/{channel}/feeds.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", domain.ErrFeedUnavailable, resp.StatusCode())
	}

	body, ok := resp.Result().(*feedResponse)
	if !ok || body == nil || len(body.Feeds) == 0 {
		return nil, domain.ErrNoData
	}

	return parseEntry(body.Feeds[0])
}

// parseEntry converts a feed entry to a reading.
// Missing or empty fields read as zero.
func parseEntry(entry map[string]any) (*domain.BinReading, error) {
	wet, err := parseLevel(entry, fieldWet)
	if err != nil {
		return nil, err
	}
	dry, err := parseLevel(entry, fieldDry)
	if err != nil {
		return nil, err
	}

	timestamp := "Unknown"
	if ts, ok := entry["created_at"].(string); ok && ts != "" {
		timestamp = ts
	}

	return &domain.BinReading{WetLevel: wet, DryLevel: dry, Timestamp: timestamp}, nil
}

func parseLevel(entry map[string]any, field string) (float64, error) {
	switch v := entry[field].(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %s %q: %w", field, v, domain.ErrInvalidInput)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("parsing %s: unexpected type %T: %w", field, v, domain.ErrInvalidInput)
	}
}
