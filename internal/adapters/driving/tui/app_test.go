package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/whereabouts/internal/adapters/driven/render"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

var testSlots = []string{"last_known_location", "updated_location", "address_for_location", "recent_activity"}

func newTestApp(t *testing.T) (*App, *MockScreen, *render.Snapshot) {
	t.Helper()
	screen := &MockScreen{}
	snapshot := render.NewSnapshot()
	app, err := NewApp(NewPorts(screen, snapshot, testSlots))
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app, screen, snapshot
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_Success(t *testing.T) {
	app, _, _ := newTestApp(t)

	assert.Equal(t, messages.ViewDashboard, app.CurrentView())
	assert.Equal(t, DefaultRefreshInterval, app.refresh)
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Snapshot: render.NewSnapshot(), Slots: testSlots})

	assert.ErrorIs(t, err, ErrMissingScreen)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _, _ := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_WithRefreshInterval_IgnoresNonPositive(t *testing.T) {
	app, _, _ := newTestApp(t)

	app.WithRefreshInterval(0)

	assert.Equal(t, DefaultRefreshInterval, app.refresh)
}

func TestApp_Init(t *testing.T) {
	app, _, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(NewPorts(&MockScreen{}, render.NewSnapshot(), testSlots))
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_StartCmd_StartsScreen(t *testing.T) {
	app, screen, _ := newTestApp(t)

	msg := app.startCmd()()

	assert.Equal(t, messages.ScreenStarted{}, msg)
	starts, _, _ := screen.counts()
	assert.Equal(t, 1, starts)

	app.Update(msg)
	assert.Equal(t, status.StateLive, app.StatusState())
}

func TestApp_ScreenStarted_Error(t *testing.T) {
	app, _, _ := newTestApp(t)

	app.Update(messages.ScreenStarted{Err: errors.New("dashboard not created")})

	assert.Error(t, app.Err())
	assert.Equal(t, status.StateError, app.StatusState())
	assert.Contains(t, app.View(), "dashboard not created")
}

func TestApp_Toggle_StopsActiveScreen(t *testing.T) {
	app, screen, _ := newTestApp(t)
	app.Update(app.startCmd()())

	_, cmd := app.Update(runeKey("s"))

	assert.Nil(t, cmd)
	assert.False(t, screen.Active())
	assert.Equal(t, status.StateStopped, app.StatusState())
}

func TestApp_Toggle_StartsStoppedScreen(t *testing.T) {
	app, screen, _ := newTestApp(t)
	app.Update(app.startCmd()())
	app.Update(runeKey("s"))

	_, cmd := app.Update(runeKey("s"))
	require.NotNil(t, cmd)
	app.Update(cmd())

	starts, stops, _ := screen.counts()
	assert.Equal(t, 2, starts)
	assert.Equal(t, 1, stops)
	assert.Equal(t, status.StateLive, app.StatusState())
}

func TestApp_Geofencing_KeepsSubscriptions(t *testing.T) {
	app, screen, snapshot := newTestApp(t)
	app.Update(app.startCmd()())
	snapshot.Display("updated_location", "52.229676 21.012229 (4.5m) 1")

	app.Update(runeKey("g"))

	assert.Equal(t, messages.ViewGeofencing, app.CurrentView())
	assert.True(t, screen.Active())
	_, stops, _ := screen.counts()
	assert.Equal(t, 0, stops)
	assert.Contains(t, app.View(), "52.229676 21.012229 (4.5m) 1")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewDashboard, app.CurrentView())
}

func TestApp_Help(t *testing.T) {
	app, _, _ := newTestApp(t)

	app.Update(runeKey("?"))

	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Equal(t, status.StateHelp, app.StatusState())
	assert.Contains(t, app.View(), "start/stop")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, messages.ViewDashboard, app.CurrentView())
}

func TestApp_Quit_StopsScreen(t *testing.T) {
	app, screen, _ := newTestApp(t)
	app.Update(app.startCmd()())

	_, cmd := app.Update(runeKey("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.False(t, screen.Active())
}

func TestApp_QuitMessage_StopsScreen(t *testing.T) {
	app, screen, _ := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	_, stops, _ := screen.counts()
	assert.Equal(t, 1, stops)
}

func TestApp_Tick_RendersSnapshot(t *testing.T) {
	app, screen, snapshot := newTestApp(t)
	screen.states = map[string]domain.SubscriptionState{"recent_activity": domain.StateActive}
	snapshot.Display("recent_activity", "walking 0.7")
	snapshot.Display("address_for_location", "Plac Defilad 1, Warszawa")

	_, cmd := app.Update(messages.Tick{})

	assert.NotNil(t, cmd)
	view := app.View()
	assert.Contains(t, view, "walking 0.7")
	assert.Contains(t, view, "Plac Defilad 1, Warszawa")
	assert.Contains(t, view, "Recent activity")
}

func TestApp_Tick_ShowsToast(t *testing.T) {
	app, _, snapshot := newTestApp(t)
	snapshot.NotifyError("Error occurred.")

	app.Update(messages.Tick{})

	assert.Contains(t, app.View(), "Error occurred.")
}

func TestApp_Dismiss(t *testing.T) {
	app, _, snapshot := newTestApp(t)
	snapshot.NotifyError("Error occurred.")
	app.Update(messages.Tick{})

	app.Update(runeKey("x"))

	assert.Nil(t, snapshot.State().LastError)
	assert.NotContains(t, app.View(), "Error occurred.")
}

func TestApp_ConfigChanged_Restarts(t *testing.T) {
	app, screen, _ := newTestApp(t)

	_, cmd := app.Update(messages.ConfigChanged{})
	require.NotNil(t, cmd)
	msg := cmd()

	assert.Equal(t, messages.ScreenRestarted{}, msg)
	_, _, restarts := screen.counts()
	assert.Equal(t, 1, restarts)

	app.Update(msg)
	assert.Equal(t, status.StateLive, app.StatusState())
}

func TestApp_ConfigChanged_RestartError(t *testing.T) {
	app, screen, _ := newTestApp(t)
	screen.RestartErr = domain.ErrInvalidInput

	_, cmd := app.Update(messages.ConfigChanged{})
	app.Update(cmd())

	assert.ErrorIs(t, app.Err(), domain.ErrInvalidInput)
	assert.Equal(t, status.StateError, app.StatusState())
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(NewPorts(&MockScreen{}, render.NewSnapshot(), testSlots))
	require.NoError(t, err)

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.statusBar.Width())
}
