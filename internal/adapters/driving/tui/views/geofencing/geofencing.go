// Package geofencing provides the secondary geofencing screen.
// Opening it leaves the dashboard subscriptions untouched.
package geofencing

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/styles"
)

// View is the geofencing screen.
type View struct {
	styles *styles.Styles

	position string
	width    int
	height   int
}

// NewView creates a new geofencing view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s}
}

// SetPosition sets the reference position shown on the screen.
func (v *View) SetPosition(position string) {
	v.position = position
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the geofencing view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewDashboard}
			}
		}
	}
	return v, nil
}

// View renders the screen.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Geofencing"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render("No geofences configured."))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Reference position"))
	b.WriteString("\n")
	if v.position == "" {
		b.WriteString(v.styles.Muted.Render("waiting..."))
	} else {
		b.WriteString(v.styles.Normal.Render(v.position))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("esc: back to dashboard"))
	b.WriteString("\n")

	return b.String()
}
