package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/whereabouts/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/stream"
)

type dashboardFixture struct {
	location   *fakeLocation
	recognizer *fakeRecognizer
	geocoder   *fakeGeocoder
	renderer   *recordingRenderer
	store      *recordingStore
	settings   *SettingsService
	dashboard  *Dashboard
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()
	f := &dashboardFixture{
		location:   &fakeLocation{last: pos(52.229676, 21.012229), hasFix: true},
		recognizer: &fakeRecognizer{},
		geocoder:   &fakeGeocoder{},
		renderer:   newRecordingRenderer(),
		store:      &recordingStore{},
		settings:   NewSettingsService(memory.NewConfigStore()),
	}

	d, err := NewDashboard(DashboardConfig{
		Providers: Providers{
			Location: f.location,
			Motion:   f.recognizer,
			Geocoder: f.geocoder,
		},
		Settings:    f.settings,
		Renderer:    f.renderer,
		Diagnostics: f.store,
		Main:        stream.Immediate,
		Background:  stream.Immediate,
	})
	require.NoError(t, err)
	f.dashboard = d
	return f
}

func TestNewDashboard_Validation(t *testing.T) {
	renderer := newRecordingRenderer()
	settings := NewSettingsService(memory.NewConfigStore())
	providers := Providers{Location: &fakeLocation{}, Motion: &fakeRecognizer{}, Geocoder: &fakeGeocoder{}}

	tests := []struct {
		name string
		cfg  DashboardConfig
		want error
	}{
		{"no location", DashboardConfig{Providers: Providers{Motion: providers.Motion, Geocoder: providers.Geocoder}, Settings: settings, Renderer: renderer}, ErrMissingLocationProvider},
		{"no motion", DashboardConfig{Providers: Providers{Location: providers.Location, Geocoder: providers.Geocoder}, Settings: settings, Renderer: renderer}, ErrMissingActivityRecognizer},
		{"no geocoder", DashboardConfig{Providers: Providers{Location: providers.Location, Motion: providers.Motion}, Settings: settings, Renderer: renderer}, ErrMissingGeocoder},
		{"no renderer", DashboardConfig{Providers: providers, Settings: settings}, ErrMissingRenderer},
		{"no settings", DashboardConfig{Providers: providers, Renderer: renderer}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDashboard(tt.cfg)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, d)
		})
	}
}

func TestDashboard_StartBeforeCreate(t *testing.T) {
	f := newDashboardFixture(t)

	err := f.dashboard.OnStart(context.Background())

	assert.ErrorIs(t, err, ErrNotCreated)
}

func TestDashboard_CreateSubscribesNothing(t *testing.T) {
	f := newDashboardFixture(t)

	require.NoError(t, f.dashboard.OnCreate(context.Background()))

	registered, _ := f.location.counts()
	assert.Zero(t, registered)
	assert.Zero(t, f.renderer.total())
	for _, slot := range Slots() {
		assert.Equal(t, domain.StateUnsubscribed, f.dashboard.States()[slot])
	}
}

func TestDashboard_Lifecycle(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	require.NoError(t, f.dashboard.OnCreate(ctx))
	require.NoError(t, f.dashboard.OnStart(ctx))
	assert.True(t, f.dashboard.Active())

	assert.Equal(t, []string{"52.229676 21.012229"}, f.renderer.values(SlotLastKnownLocation))

	f.location.emit(domain.Position{Latitude: 1, Longitude: 2, Accuracy: 5})
	f.location.emit(domain.Position{Latitude: 3, Longitude: 4, Accuracy: 5})
	f.recognizer.emit(domain.MotionClassification{Activities: []domain.DetectedActivity{
		{Kind: domain.ActivityStill, Confidence: 0.2},
		{Kind: domain.ActivityWalking, Confidence: 0.7},
		{Kind: domain.ActivityRunning, Confidence: 0.1},
	}})

	assert.Equal(t, []string{
		"1.000000 2.000000 (5.0m) 0",
		"3.000000 4.000000 (5.0m) 1",
	}, f.renderer.values(SlotUpdatedLocation))
	assert.Equal(t, []string{"somewhere", "somewhere"}, f.renderer.values(SlotAddress))
	assert.Equal(t, []string{"walking 70%"}, f.renderer.values(SlotActivity))
	assert.Equal(t, domain.StateCompleted, f.dashboard.States()[SlotLastKnownLocation])
	assert.Equal(t, domain.StateActive, f.dashboard.States()[SlotUpdatedLocation])

	f.dashboard.OnStop()
	before := f.renderer.total()
	f.location.emit(pos(9, 9))
	f.recognizer.emit(domain.MotionClassification{})

	assert.Equal(t, before, f.renderer.total())
	assert.False(t, f.dashboard.Active())
	assert.Empty(t, f.renderer.notified())
}

func TestDashboard_StopIsIdempotent(t *testing.T) {
	f := newDashboardFixture(t)

	f.dashboard.OnStop()
	require.NoError(t, f.dashboard.OnCreate(context.Background()))
	require.NoError(t, f.dashboard.OnStart(context.Background()))
	f.dashboard.OnStop()
	f.dashboard.OnStop()

	assert.False(t, f.dashboard.Active())
}

func TestDashboard_MaxUpdatesFromSettings(t *testing.T) {
	f := newDashboardFixture(t)
	require.NoError(t, f.settings.Set("location.max_updates", "2"))
	ctx := context.Background()

	require.NoError(t, f.dashboard.OnCreate(ctx))
	require.NoError(t, f.dashboard.OnStart(ctx))
	defer f.dashboard.OnStop()

	for i := 0; i < 4; i++ {
		f.location.emit(pos(float64(i), 0))
	}

	assert.Len(t, f.renderer.values(SlotUpdatedLocation), 2)
	assert.Equal(t, domain.StateCompleted, f.dashboard.States()[SlotUpdatedLocation])
}

func TestDashboard_RestartResetsCounter(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()

	require.NoError(t, f.dashboard.OnCreate(ctx))
	require.NoError(t, f.dashboard.OnStart(ctx))
	f.location.emit(pos(1, 1))

	require.NoError(t, f.dashboard.Restart(ctx))
	f.location.emit(pos(1, 1))
	f.dashboard.OnStop()

	assert.Equal(t, []string{"1.000000 1.000000 0", "1.000000 1.000000 0"}, f.renderer.values(SlotUpdatedLocation))
}

func TestDashboard_RestartRejectsInvalidSettings(t *testing.T) {
	f := newDashboardFixture(t)
	ctx := context.Background()
	require.NoError(t, f.dashboard.OnCreate(ctx))
	require.NoError(t, f.dashboard.OnStart(ctx))

	// Bypass Set validation to simulate a hand-edited config file.
	store := memory.NewConfigStore()
	_ = store.Set("motion.poll_interval_ms", 0)
	f.dashboard.settings = NewSettingsService(store)

	err := f.dashboard.Restart(ctx)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, f.dashboard.Active())
}

func TestDashboard_LocationUnavailableIsolated(t *testing.T) {
	f := newDashboardFixture(t)
	f.location.lastErr = domain.ErrProviderUnavailable
	f.location.refuse = domain.ErrProviderUnavailable
	ctx := context.Background()

	require.NoError(t, f.dashboard.OnCreate(ctx))
	require.NoError(t, f.dashboard.OnStart(ctx))
	defer f.dashboard.OnStop()

	f.recognizer.emit(domain.MotionClassification{Activities: []domain.DetectedActivity{{Kind: domain.ActivityInVehicle, Confidence: 0.9}}})

	states := f.dashboard.States()
	assert.Equal(t, domain.StateCancelled, states[SlotLastKnownLocation])
	assert.Equal(t, domain.StateCancelled, states[SlotUpdatedLocation])
	assert.Equal(t, domain.StateCancelled, states[SlotAddress])
	assert.Equal(t, domain.StateActive, states[SlotActivity])

	assert.Equal(t, []string{"in_vehicle 90%"}, f.renderer.values(SlotActivity))
	assert.Len(t, f.renderer.notified(), 3)
	assert.Len(t, f.store.all(), 3)
}

func TestDashboard_TransientGeocodeFailureKeepsAddressAlive(t *testing.T) {
	f := newDashboardFixture(t)
	calls := 0
	f.geocoder.answer = func(context.Context, float64, float64) (domain.AddressCandidates, error) {
		calls++
		if calls == 1 {
			return nil, domain.ErrTransientProvider
		}
		return domain.AddressCandidates{}, nil
	}
	ctx := context.Background()

	require.NoError(t, f.dashboard.OnCreate(ctx))
	require.NoError(t, f.dashboard.OnStart(ctx))
	defer f.dashboard.OnStop()

	f.location.emit(pos(1, 1))
	f.location.emit(pos(2, 2))

	assert.Equal(t, []string{domain.NoAddressText}, f.renderer.values(SlotAddress))
	assert.Equal(t, domain.StateActive, f.dashboard.States()[SlotAddress])
	assert.Empty(t, f.renderer.notified())
}
