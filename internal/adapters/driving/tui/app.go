package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ecobin-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driving/tui/views/locations"
	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	locationsView *locations.View
	statusBar     *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// lastOpened is the most recent open request.
	lastOpened *messages.LocationOpened

	// lastCheck is the most recent successful bin check.
	lastCheck *domain.CheckResult

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		locationsView: locations.NewView(s, km, ports.Locations.List()),
		statusBar:     status.NewBar(s, km),
		currentView:   messages.ViewLocations,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ecobin - Bin Locations"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewHelp {
			a.statusBar.SetState(status.StateHelp)
		} else {
			a.statusBar.Clear()
		}
		return a, nil

	case messages.LocationSelected:
		return a, a.openCmd(msg.ID)

	case messages.LocationOpened:
		a.lastOpened = &msg
		a.err = nil
		if domain.IsPlaceholder(msg.URL) {
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(fmt.Sprintf("no map for %q", msg.ID))
			return a, nil
		}
		a.statusBar.SetState(status.StateOpened)
		a.statusBar.SetMessage(fmt.Sprintf("Opened %s in a new tab", msg.ID))
		return a, nil

	case messages.BinChecked:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.err = nil
		a.lastCheck = msg.Result
		a.statusBar.SetState(status.StateChecked)
		a.statusBar.SetMessage(describeCheck(msg.Result))
		return a, nil
	}

	if a.currentView == messages.ViewLocations {
		a.locationsView, cmd = a.locationsView.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		return a, tea.Quit
	}

	if a.currentView == messages.ViewHelp {
		if keymap.Matches(k, a.keymap.Back) || keymap.Matches(k, a.keymap.Help) {
			return a.Update(messages.ViewChanged{View: messages.ViewLocations})
		}
		if keymap.Matches(k, a.keymap.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}

	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(k, a.keymap.Help):
		return a.Update(messages.ViewChanged{View: messages.ViewHelp})
	case keymap.Matches(k, a.keymap.Check):
		if a.ports.Monitor == nil {
			a.err = ErrMonitorUnavailable
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage("bin monitor is not configured")
			return a, nil
		}
		a.statusBar.SetState(status.StateChecking)
		return a, a.checkCmd()
	}

	var cmd tea.Cmd
	a.locationsView, cmd = a.locationsView.Update(msg)
	return a, cmd
}

// openCmd hands the location to the resolver off the update loop.
func (a *App) openCmd(id string) tea.Cmd {
	ctx := a.ctx
	locs := a.ports.Locations
	return func() tea.Msg {
		return messages.LocationOpened{ID: id, URL: locs.Open(ctx, id)}
	}
}

func (a *App) checkCmd() tea.Cmd {
	ctx := a.ctx
	monitor := a.ports.Monitor
	return func() tea.Msg {
		result, err := monitor.Check(ctx)
		return messages.BinChecked{Result: result, Err: err}
	}
}

func describeCheck(r *domain.CheckResult) string {
	if r == nil {
		return "no result"
	}
	if r.Reading == nil {
		return fmt.Sprintf("Bins: %s", r.Status)
	}
	msg := fmt.Sprintf("Bins: %s (wet %.1f%%, dry %.1f%%)",
		r.Status, r.Reading.WetLevel, r.Reading.DryLevel)
	if r.Kind != "" {
		msg += fmt.Sprintf(" [%s]", r.Kind)
	}
	return msg
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewHelp:
		body = a.viewHelp()
	case messages.ViewLocations:
		body = a.locationsView.View()
	default:
		body = a.locationsView.View()
	}
	return body + "\n\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Locations:
  j/k, ↑/↓    Navigate locations
  enter, o    Open the map in a new browser tab
  c           Check bin fill levels

General:
  ?           Toggle help
  esc         Back to locations
  q, ctrl+c   Quit`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// LastOpened returns the most recent open request, or nil.
func (a *App) LastOpened() *messages.LocationOpened {
	return a.lastOpened
}

// LastCheck returns the most recent successful bin check, or nil.
func (a *App) LastCheck() *domain.CheckResult {
	return a.lastCheck
}

// StatusBar returns the status bar component.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.locationsView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
