package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ecobin-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

func newTestApp(t *testing.T, monitor *mockMonitorService) (*App, *mockLocationService) {
	t.Helper()
	locs := &mockLocationService{}
	ports := &Ports{Locations: locs}
	if monitor != nil {
		ports.Monitor = monitor
	}
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(120, 30)
	return app, locs
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// drive feeds msg to the app and then the message its command yields.
func drive(t *testing.T, app *App, msg tea.Msg) {
	t.Helper()
	_, cmd := app.Update(msg)
	require.NotNil(t, cmd)
	app.Update(cmd())
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(&Ports{Locations: &mockLocationService{}})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewLocations, app.CurrentView())
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingLocationService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t, nil)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t, nil)

	assert.NotNil(t, app.Init())
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Locations: &mockLocationService{}})
	require.NoError(t, err)

	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.True(t, app.Ready())
	assert.Equal(t, 100, app.StatusBar().Width())
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(&Ports{Locations: &mockLocationService{}})
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_ListsLocations(t *testing.T) {
	app, _ := newTestApp(t, nil)

	view := app.View()

	assert.Contains(t, view, "Location1")
	assert.Contains(t, view, "Location2")
	assert.Contains(t, view, "Location3")
	assert.Contains(t, view, "Ready")
}

func TestApp_EnterOpensSelectedLocation(t *testing.T) {
	app, locs := newTestApp(t, nil)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	selected := cmd()
	require.IsType(t, messages.LocationSelected{}, selected)

	drive(t, app, selected)

	assert.Equal(t, []string{"Location1"}, locs.Opened())
	require.NotNil(t, app.LastOpened())
	assert.Equal(t, "https://maps.app.goo.gl/6o65TRq424uW2HdP8", app.LastOpened().URL)
	assert.Equal(t, status.StateOpened, app.StatusBar().State())
	assert.Contains(t, app.StatusBar().Message(), "Location1")
}

func TestApp_NavigateThenOpen(t *testing.T) {
	app, locs := newTestApp(t, nil)

	app.Update(key('j'))
	app.Update(key('j'))
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	drive(t, app, cmd())

	assert.Equal(t, []string{"Location3"}, locs.Opened())
	assert.Equal(t, "https://www.google.com/maps?q=location3", app.LastOpened().URL)
}

func TestApp_LocationOpened_Placeholder(t *testing.T) {
	app, _ := newTestApp(t, nil)

	app.Update(messages.LocationOpened{ID: "Nowhere", URL: domain.PlaceholderURL})

	assert.Equal(t, status.StateError, app.StatusBar().State())
	assert.Contains(t, app.StatusBar().Message(), "Nowhere")
}

func TestApp_CheckBins(t *testing.T) {
	monitor := &mockMonitorService{result: &domain.CheckResult{
		Reading: &domain.BinReading{WetLevel: 80, DryLevel: 20},
		Kind:    domain.AlertWetWarning,
		Status:  domain.CheckAlerted,
	}}
	app, _ := newTestApp(t, monitor)

	_, cmd := app.Update(key('c'))
	assert.Equal(t, status.StateChecking, app.StatusBar().State())
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, 1, monitor.calls)
	assert.Equal(t, status.StateChecked, app.StatusBar().State())
	assert.Contains(t, app.StatusBar().Message(), "wet 80.0%")
	assert.Contains(t, app.StatusBar().Message(), "wet_warning")
	assert.Equal(t, monitor.result, app.LastCheck())
	assert.NoError(t, app.Err())
}

func TestApp_CheckBins_Error(t *testing.T) {
	monitor := &mockMonitorService{err: domain.ErrFeedUnavailable}
	app, _ := newTestApp(t, monitor)

	drive(t, app, key('c'))

	assert.ErrorIs(t, app.Err(), domain.ErrFeedUnavailable)
	assert.Equal(t, status.StateError, app.StatusBar().State())
	assert.Nil(t, app.LastCheck())
}

func TestApp_CheckBins_NoMonitor(t *testing.T) {
	app, _ := newTestApp(t, nil)

	_, cmd := app.Update(key('c'))

	assert.Nil(t, cmd)
	assert.True(t, errors.Is(app.Err(), ErrMonitorUnavailable))
	assert.Equal(t, status.StateError, app.StatusBar().State())
}

func TestApp_HelpToggle(t *testing.T) {
	app, _ := newTestApp(t, nil)

	app.Update(key('?'))
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Open the map in a new browser tab")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewLocations, app.CurrentView())
	assert.Equal(t, status.StateReady, app.StatusBar().State())
}

func TestApp_HelpIgnoresNavigation(t *testing.T) {
	app, locs := newTestApp(t, nil)

	app.Update(key('?'))
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, locs.Opened())
}

func TestApp_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: key('q')},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, nil)

			_, cmd := app.Update(tt.msg)

			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestDescribeCheck(t *testing.T) {
	assert.Equal(t, "no result", describeCheck(nil))
	assert.Equal(t, "Bins: no_data", describeCheck(&domain.CheckResult{Status: domain.CheckNoData}))
	assert.Equal(t, "Bins: normal (wet 10.0%, dry 20.5%)", describeCheck(&domain.CheckResult{
		Status:  domain.CheckNormal,
		Reading: &domain.BinReading{WetLevel: 10, DryLevel: 20.5},
	}))
}
