package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driving"
	"github.com/custodia-labs/whereabouts/internal/core/stream"
	"github.com/custodia-labs/whereabouts/internal/logger"
)

// Output slots of the dashboard.
const (
	SlotLastKnownLocation = "last_known_location"
	SlotUpdatedLocation   = "updated_location"
	SlotAddress           = "address_for_location"
	SlotActivity          = "recent_activity"
)

// Slots lists the dashboard slots in display order.
func Slots() []string {
	return []string{SlotLastKnownLocation, SlotUpdatedLocation, SlotAddress, SlotActivity}
}

// Ensure Dashboard implements the interface.
var _ driving.Screen = (*Dashboard)(nil)

// DashboardConfig holds the collaborators of a Dashboard.
type DashboardConfig struct {
	Providers Providers
	Settings  driving.SettingsService
	Renderer  driven.Renderer

	// Diagnostics records pipeline failures. Optional.
	Diagnostics driven.DiagnosticsStore

	// Main is the context the renderer must be called on.
	Main stream.Scheduler

	// Background runs blocking lookups. Defaults to a new IOScheduler.
	Background stream.Scheduler
}

// Dashboard is the main screen: four pipelines showing the last known
// position, live positions, the address of the live position and the
// current activity.
type Dashboard struct {
	location  *LocationSource
	motion    *MotionSource
	geocoding *GeocodingSource
	settings  driving.SettingsService
	manager   *SubscriptionManager
	main      stream.Scheduler
	io        stream.Scheduler

	mu      sync.Mutex
	created bool
}

// NewDashboard creates the dashboard screen.
func NewDashboard(cfg DashboardConfig) (*Dashboard, error) {
	if err := cfg.Providers.Validate(); err != nil {
		return nil, err
	}
	if cfg.Renderer == nil {
		return nil, ErrMissingRenderer
	}
	if cfg.Settings == nil {
		return nil, fmt.Errorf("%w: settings service is required", domain.ErrInvalidInput)
	}
	main := cfg.Main
	if main == nil {
		main = stream.Immediate
	}
	background := cfg.Background
	if background == nil {
		background = stream.NewIOScheduler()
	}

	return &Dashboard{
		location:  NewLocationSource(cfg.Providers.Location),
		motion:    NewMotionSource(cfg.Providers.Motion),
		geocoding: NewGeocodingSource(cfg.Providers.Geocoder),
		settings:  cfg.Settings,
		manager:   NewSubscriptionManager(cfg.Renderer, NewErrorIsolation(cfg.Renderer, cfg.Diagnostics)),
		main:      main,
		io:        background,
	}, nil
}

// OnCreate reads the settings and binds the pipeline blueprints.
// Nothing is subscribed until OnStart.
func (d *Dashboard) OnCreate(_ context.Context) error {
	settings, err := d.settings.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.manager.Reset()
	updates := d.location.Updates(settings.Location.Request())
	maxResults := settings.Geocoding.MaxResults

	d.manager.Bind(SlotLastKnownLocation, stream.ObserveOn(
		stream.Map(d.location.LastKnown(), FormatPosition),
		d.main,
	))

	d.manager.Bind(SlotUpdatedLocation, stream.ObserveOn(
		stream.Enumerate(stream.Map(updates, FormatPosition), AppendCounter),
		d.main,
	))

	address := Chain(updates, func(p domain.Position) stream.Stream[domain.AddressCandidates] {
		return stream.SubscribeOn(d.geocoding.ReverseGeocode(p.Latitude, p.Longitude, maxResults), d.io)
	})
	d.manager.Bind(SlotAddress, stream.ObserveOn(
		stream.SubscribeOn(stream.Map(address, SelectBestAddress), d.io),
		d.main,
	))

	activity := stream.Map(d.motion.DetectedActivity(settings.Motion.PollInterval), SelectBest)
	d.manager.Bind(SlotActivity, stream.ObserveOn(
		stream.Map(activity, FormatActivity),
		d.main,
	))

	d.created = true
	logger.Debug("dashboard: created")
	return nil
}

// OnStart activates every pipeline.
func (d *Dashboard) OnStart(ctx context.Context) error {
	d.mu.Lock()
	created := d.created
	d.mu.Unlock()
	if !created {
		return ErrNotCreated
	}

	logger.Debug("dashboard: starting")
	d.manager.Activate(ctx)
	return nil
}

// OnStop cancels every pipeline.
func (d *Dashboard) OnStop() {
	logger.Debug("dashboard: stopping")
	d.manager.Deactivate()
}

// Restart runs a full stop, create, start cycle so changed settings take
// effect with fresh subscriptions.
func (d *Dashboard) Restart(ctx context.Context) error {
	d.OnStop()
	if err := d.OnCreate(ctx); err != nil {
		return err
	}
	return d.OnStart(ctx)
}

// Active reports whether the dashboard is inside an activation window.
func (d *Dashboard) Active() bool {
	return d.manager.Active()
}

// States implements driving.Screen.
func (d *Dashboard) States() map[string]domain.SubscriptionState {
	return d.manager.States()
}
