// Package locations provides the location picker view for the TUI.
package locations

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ecobin-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ecobin-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
)

// View lists the location catalogue and emits a selection on enter.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []domain.Location
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a picker over items.
func NewView(s *styles.Styles, km *keymap.KeyMap, items []domain.Location) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		items:  items,
		width:  80,
		height: 24,
	}
}

// Init initialises the picker.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(k, v.keymap.Down):
			if v.selected < len(v.items)-1 {
				v.selected++
			}
		case keymap.Matches(k, v.keymap.Open):
			item, ok := v.Current()
			if !ok {
				return v, nil
			}
			return v, func() tea.Msg {
				return messages.LocationSelected{ID: item.ID}
			}
		}
	}

	return v, nil
}

// View renders the picker.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("EcoBin"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Subtitle.Render("Bin Locations"))
	b.WriteString("\n\n")

	if len(v.items) == 0 {
		b.WriteString(v.styles.Muted.Render("No locations configured."))
		b.WriteString("\n")
	}

	for i, item := range v.items {
		cursor := "  "
		label := v.styles.Normal.Render(item.ID)
		if i == v.selected {
			cursor = "> "
			label = v.styles.Selected.Render(item.ID)
		}
		b.WriteString(cursor + label + "  " + v.styles.Link.Render(item.URL))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Open in new tab  [c] Check bins  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Current returns the highlighted location, if any.
func (v *View) Current() (domain.Location, bool) {
	if v.selected < 0 || v.selected >= len(v.items) {
		return domain.Location{}, false
	}
	return v.items[v.selected], true
}
