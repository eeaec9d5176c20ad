// Package dashboard provides the live slot view for the TUI.
package dashboard

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/whereabouts/internal/adapters/driven/render"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/styles"
)

// ToastDuration is how long an error notification stays visible.
const ToastDuration = 3 * time.Second

// View renders the latest value of every slot.
type View struct {
	styles *styles.Styles

	slots  []string
	state  render.State
	now    func() time.Time
	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a dashboard view for slots in display order.
func NewView(s *styles.Styles, slots []string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		slots:  slots,
		now:    time.Now,
	}
}

// SetState replaces the rendered snapshot.
func (v *View) SetState(state render.State) {
	v.state = state
}

// SetError sets an error to display under the panel.
func (v *View) SetError(err error) {
	v.err = err
}

// SetClock overrides the clock used for toast expiry.
func (v *View) SetClock(now func() time.Time) {
	v.now = now
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the dashboard view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
	case messages.ErrorOccurred:
		v.err = msg.Err
	}
	return v, nil
}

// View renders the dashboard.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("whereabouts"))
	b.WriteString("\n\n")

	rows := make([]string, 0, len(v.slots))
	for _, slot := range v.slots {
		rows = append(rows, v.renderRow(slot))
	}
	b.WriteString(v.styles.Panel.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	if toast := v.Toast(); toast != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Toast.Render(toast))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderRow(slot string) string {
	label := v.styles.Label.Render(Label(slot))
	value, ok := v.state.Slots[slot]
	if !ok {
		return label + v.styles.Muted.Render("waiting...")
	}
	return label + v.styles.Value.Render(value.Text)
}

// Toast returns the current error notification, or "" once it has expired.
func (v *View) Toast() string {
	n := v.state.LastError
	if n == nil {
		return ""
	}
	if v.now().Sub(n.At) > ToastDuration {
		return ""
	}
	return n.Message
}

// Label turns a slot name into display text, e.g. "Last known location".
func Label(slot string) string {
	if slot == "" {
		return ""
	}
	text := strings.ReplaceAll(slot, "_", " ")
	return strings.ToUpper(text[:1]) + text[1:]
}
