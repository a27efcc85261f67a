package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Locations == nil {
		ports.Locations = &mockLocationService{}
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("known location resolves without opening", func(t *testing.T) {
		locations := &mockLocationService{}
		server := newTestServer(t, &Ports{Locations: locations})

		_, out, err := server.handleResolve(ctx, nil, ResolveInput{Location: "Location1"})

		require.NoError(t, err)
		assert.Equal(t, "https://maps.app.goo.gl/6o65TRq424uW2HdP8", out.URL)
		assert.True(t, out.Known)
		assert.False(t, out.Opened)
		assert.Empty(t, locations.opened)
	})

	t.Run("open requests navigation", func(t *testing.T) {
		locations := &mockLocationService{}
		server := newTestServer(t, &Ports{Locations: locations})

		_, out, err := server.handleResolve(ctx, nil, ResolveInput{Location: "Location2", Open: true})

		require.NoError(t, err)
		assert.Equal(t, "https://www.google.com/maps?q=location2", out.URL)
		assert.True(t, out.Opened)
		assert.Equal(t, []string{"https://www.google.com/maps?q=location2"}, locations.opened)
	})

	t.Run("unknown location resolves to placeholder", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, out, err := server.handleResolve(ctx, nil, ResolveInput{Location: "location1", Open: true})

		require.NoError(t, err)
		assert.Equal(t, domain.PlaceholderURL, out.URL)
		assert.False(t, out.Known)
		assert.False(t, out.Opened)
	})
}

func TestServer_handleListLocations(t *testing.T) {
	server := newTestServer(t, &Ports{})

	_, out, err := server.handleListLocations(context.Background(), nil, ListLocationsInput{})

	require.NoError(t, err)
	require.Equal(t, 3, out.Count)
	assert.Equal(t, "Location1", out.Locations[0].ID)
	assert.Equal(t, "Location3", out.Locations[2].ID)
}

func TestServer_handleCheckBins(t *testing.T) {
	ctx := context.Background()

	t.Run("no monitor returns error", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleCheckBins(ctx, nil, CheckBinsInput{})

		assert.ErrorIs(t, err, ErrMonitorUnavailable)
	})

	t.Run("alerted result", func(t *testing.T) {
		monitor := &mockMonitorService{result: &domain.CheckResult{
			Reading: &domain.BinReading{WetLevel: 92, DryLevel: 95, Timestamp: "2024-10-29T10:00:00Z"},
			Kind:    domain.AlertCritical,
			Status:  domain.CheckAlerted,
			Record:  &domain.AlertRecord{MessageID: "SM1", Success: true},
		}}
		server := newTestServer(t, &Ports{Monitor: monitor})

		_, out, err := server.handleCheckBins(ctx, nil, CheckBinsInput{})

		require.NoError(t, err)
		assert.Equal(t, "alerted", out.Status)
		assert.Equal(t, 92.0, out.WetLevel)
		assert.Equal(t, 95.0, out.DryLevel)
		assert.Equal(t, "critical", out.AlertKind)
		assert.Equal(t, "SM1", out.MessageID)
		assert.Empty(t, out.CooldownRemaining)
	})

	t.Run("cooldown result", func(t *testing.T) {
		monitor := &mockMonitorService{result: &domain.CheckResult{
			Reading:           &domain.BinReading{WetLevel: 80},
			Kind:              domain.AlertWetWarning,
			Status:            domain.CheckCooldown,
			CooldownRemaining: 12 * time.Minute,
		}}
		server := newTestServer(t, &Ports{Monitor: monitor})

		_, out, err := server.handleCheckBins(ctx, nil, CheckBinsInput{})

		require.NoError(t, err)
		assert.Equal(t, "cooldown", out.Status)
		assert.Equal(t, "12m0s", out.CooldownRemaining)
	})

	t.Run("no data", func(t *testing.T) {
		monitor := &mockMonitorService{result: &domain.CheckResult{Status: domain.CheckNoData}}
		server := newTestServer(t, &Ports{Monitor: monitor})

		_, out, err := server.handleCheckBins(ctx, nil, CheckBinsInput{})

		require.NoError(t, err)
		assert.Equal(t, "no_data", out.Status)
		assert.Empty(t, out.AlertKind)
	})

	t.Run("monitor error", func(t *testing.T) {
		monitor := &mockMonitorService{err: errors.New("feed down")}
		server := newTestServer(t, &Ports{Monitor: monitor})

		_, _, err := server.handleCheckBins(ctx, nil, CheckBinsInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "feed down")
	})
}
