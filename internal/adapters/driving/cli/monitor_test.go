package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

func TestMonitorCheckCmd_Normal(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("monitor", "check")

	require.NoError(t, err)
	assert.Contains(t, out, "Wet Waste: 42.5%")
	assert.Contains(t, out, "Dry Waste: 10.0%")
	assert.Contains(t, out, "All bins within normal levels")
}

func TestMonitorCheckCmd_Outcomes(t *testing.T) {
	reading := &domain.BinReading{WetLevel: 95, DryLevel: 92, Timestamp: "2024-10-29T10:00:00Z"}

	tests := []struct {
		name   string
		result *domain.CheckResult
		want   string
	}{
		{
			name: "alerted",
			result: &domain.CheckResult{
				Reading: reading, Kind: domain.AlertCritical, Status: domain.CheckAlerted,
				Record: &domain.AlertRecord{MessageID: "SM42", Success: true},
			},
			want: "Alert sent: Critical Alert (message SM42)",
		},
		{
			name: "cooldown",
			result: &domain.CheckResult{
				Reading: reading, Kind: domain.AlertCritical, Status: domain.CheckCooldown,
				CooldownRemaining: 12*time.Minute + 300*time.Millisecond,
			},
			want: "cooldown ends in 12m0s",
		},
		{
			name: "send failed",
			result: &domain.CheckResult{
				Reading: reading, Kind: domain.AlertWetWarning, Status: domain.CheckSendFailed,
				Record: &domain.AlertRecord{Error: "rate limited"},
			},
			want: "could not be sent: rate limited",
		},
		{
			name:   "no data",
			result: &domain.CheckResult{Status: domain.CheckNoData},
			want:   "No data available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestServices()
			defer cleanup()
			monitorService = &mockMonitorService{result: tt.result}

			out, err := executeCommand("monitor", "check")

			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestMonitorCheckCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { monitorJSON = false }()

	out, err := executeCommand("monitor", "check", "--json")

	require.NoError(t, err)
	var got domain.CheckResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, domain.CheckNormal, got.Status)
	require.NotNil(t, got.Reading)
	assert.InDelta(t, 42.5, got.Reading.WetLevel, 0.001)
}

func TestMonitorCheckCmd_Error(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	monitorService = &mockMonitorService{err: domain.ErrFeedUnavailable}

	_, err := executeCommand("monitor", "check")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFeedUnavailable)
}

func TestMonitorCheckCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	monitorService = nil

	_, err := executeCommand("monitor", "check")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "monitor service not configured")
}

func TestMonitorRunCmd_StopsWithContext(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer monitorRunCmd.SetContext(context.Background())

	sched := &mockScheduler{started: make(chan struct{})}
	scheduler = sched
	watcher := &mockConfigWatcher{path: "/tmp/config.toml", watched: make(chan struct{})}
	configWatcher = watcher

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sched.started
		<-watcher.watched
		cancel()
	}()

	// cobra keeps a subcommand's context once set, so install it directly.
	monitorRunCmd.SetContext(ctx)

	out, err := executeCommand("monitor", "run")

	require.NoError(t, err)
	assert.True(t, sched.stopped)
	assert.Contains(t, out, "Monitoring CSE Block Downtown every 5m0s")
	assert.Contains(t, out, "Monitoring stopped")
}

func TestMonitorRunCmd_SchedulerError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	configWatcher = nil
	scheduler = &mockScheduler{err: errors.New("store locked")}

	_, err := executeCommand("monitor", "run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "store locked")
}

func TestMonitorRunCmd_SchedulerNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	scheduler = nil

	_, err := executeCommand("monitor", "run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduler not configured")
}
