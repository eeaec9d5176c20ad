package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/views/dashboard"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/views/geofencing"
)

// DefaultRefreshInterval is how often the snapshot is polled.
const DefaultRefreshInterval = 100 * time.Millisecond

// positionSlots are tried in order for the geofencing reference position.
var positionSlots = []string{"updated_location", "last_known_location"}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// The App owns the activation window: the screen is started by Init and
// stopped before the program quits.
type App struct {
	// ports provides access to the dashboard and its renderer.
	ports *Ports

	// ctx bounds the activation window.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	dashboardView  *dashboard.View
	geofencingView *geofencing.View
	statusBar      *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// refresh is the snapshot polling interval.
	refresh time.Duration

	// starting is true until the first start attempt reports back.
	starting bool

	// err holds the last lifecycle error.
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
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		dashboardView:  dashboard.NewView(s, ports.Slots),
		geofencingView: geofencing.NewView(s),
		statusBar:      status.NewBar(s, km),
		currentView:    messages.ViewDashboard,
		refresh:        DefaultRefreshInterval,
		starting:       true,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithRefreshInterval sets how often the snapshot is polled.
func (a *App) WithRefreshInterval(d time.Duration) *App {
	if d > 0 {
		a.refresh = d
	}
	return a
}

// Init implements tea.Model.
// It starts the screen and the snapshot polling loop.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("whereabouts"),
		a.startCmd(),
		a.tickCmd(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		a.dashboardView.Update(msg)
		a.geofencingView.Update(msg)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.Tick:
		a.refreshState()
		return a, a.tickCmd()

	case messages.ScreenStarted:
		a.starting = false
		a.setErr(msg.Err)
		a.refreshState()
		return a, nil

	case messages.ConfigChanged:
		return a, a.restartCmd()

	case messages.ScreenRestarted:
		a.setErr(msg.Err)
		a.refreshState()
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		a.refreshState()
		return a, nil

	case messages.ErrorOccurred:
		a.setErr(msg.Err)
		return a, nil

	case messages.Quit:
		a.ports.Screen.OnStop()
		return a, tea.Quit
	}

	return a, nil
}

// handleKeyMsg handles global keys before delegating to the current view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		a.ports.Screen.OnStop()
		return a, tea.Quit

	case key.Matches(msg, a.keymap.Help):
		a.currentView = messages.ViewHelp
		a.refreshState()
		return a, nil

	case key.Matches(msg, a.keymap.Back) && a.currentView == messages.ViewHelp:
		a.currentView = messages.ViewDashboard
		a.refreshState()
		return a, nil

	case key.Matches(msg, a.keymap.Geofencing):
		a.currentView = messages.ViewGeofencing
		a.refreshState()
		return a, nil

	case key.Matches(msg, a.keymap.Toggle):
		if a.ports.Screen.Active() {
			a.ports.Screen.OnStop()
			a.refreshState()
			return a, nil
		}
		a.starting = true
		a.refreshState()
		return a, a.startCmd()

	case key.Matches(msg, a.keymap.Dismiss):
		a.ports.Snapshot.DismissError()
		a.refreshState()
		return a, nil
	}

	if a.currentView == messages.ViewGeofencing {
		_, cmd := a.geofencingView.Update(msg)
		return a, cmd
	}
	return a, nil
}

// startCmd activates the screen off the UI goroutine.
func (a *App) startCmd() tea.Cmd {
	ctx := a.ctx
	screen := a.ports.Screen
	return func() tea.Msg {
		return messages.ScreenStarted{Err: screen.OnStart(ctx)}
	}
}

// restartCmd rebuilds the screen after a configuration change.
func (a *App) restartCmd() tea.Cmd {
	ctx := a.ctx
	screen := a.ports.Screen
	return func() tea.Msg {
		return messages.ScreenRestarted{Err: screen.Restart(ctx)}
	}
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(a.refresh, func(t time.Time) tea.Msg {
		return messages.Tick{Time: t}
	})
}

func (a *App) setErr(err error) {
	a.err = err
	a.dashboardView.SetError(err)
	if err != nil {
		a.statusBar.SetMessage(err.Error())
	} else {
		a.statusBar.SetMessage("")
	}
}

// refreshState copies the snapshot and pipeline states into the views.
func (a *App) refreshState() {
	state := a.ports.Snapshot.State()
	a.dashboardView.SetState(state)

	for _, slot := range positionSlots {
		if v, ok := state.Slots[slot]; ok {
			a.geofencingView.SetPosition(v.Text)
			break
		}
	}

	a.statusBar.SetPipelineStates(a.ports.Screen.States())
	a.statusBar.SetState(a.statusState())
}

func (a *App) statusState() status.State {
	switch {
	case a.currentView == messages.ViewHelp:
		return status.StateHelp
	case a.err != nil:
		return status.StateError
	case a.ports.Screen.Active():
		return status.StateLive
	case a.starting:
		return status.StateStarting
	default:
		return status.StateStopped
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewGeofencing:
		body = a.geofencingView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.dashboardView.View()
	}
	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	out := a.styles.Title.Render("Help") + "\n\n"
	for _, group := range a.keymap.FullHelp() {
		for _, b := range group {
			h := b.Help()
			out += fmt.Sprintf("  %-8s %s\n", h.Key, h.Desc)
		}
		out += "\n"
	}
	return out + a.styles.Help.Render("[esc] back to dashboard")
}

// NewProgram creates the Bubbletea program for this app. The caller may
// Send messages.ConfigChanged to it when the configuration file changes.
func (a *App) NewProgram(opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(a.ctx)}, opts...)
	return tea.NewProgram(a, opts...)
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.NewProgram().Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last lifecycle error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// StatusState returns the state shown in the status bar.
func (a *App) StatusState() status.State {
	return a.statusBar.State()
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.statusBar.SetWidth(width)
}
