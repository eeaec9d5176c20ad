// Package cli provides the whereabouts command line interface.
// It is a driving adapter: commands call into the core through driving
// ports and the runtime assembled by the composition root.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driving"
	"github.com/custodia-labs/whereabouts/internal/core/stream"
	"github.com/custodia-labs/whereabouts/internal/logger"
)

// version is set by the composition root via SetVersion.
var version = "dev"

// ErrNotConfigured is returned when a command runs without a runtime.
var ErrNotConfigured = errors.New("runtime not configured")

// ScreenFactory builds a dashboard screen that delivers to renderer and
// calls it on main.
type ScreenFactory func(renderer driven.Renderer, main stream.Scheduler) (tui.Screen, error)

// Runtime is the set of services commands work with.
type Runtime struct {
	Settings    driving.SettingsService
	Diagnostics driving.DiagnosticsService

	// ConfigStore is reloaded when the configuration file changes.
	ConfigStore driven.ConfigStore

	// Slots lists the dashboard slots in display order.
	Slots []string

	// NewScreen builds a fresh dashboard.
	NewScreen ScreenFactory
}

// Bootstrap assembles the runtime once flags are parsed. configDir is
// empty when the default directory should be used.
type Bootstrap func(configDir string) (*Runtime, error)

var (
	verbose   bool
	configDir string

	bootstrap  Bootstrap
	appRuntime *Runtime

	settingsService    driving.SettingsService
	diagnosticsService driving.DiagnosticsService
)

var rootCmd = &cobra.Command{
	Use:   "whereabouts",
	Short: "Live position, address and activity in your terminal",
	Long: `whereabouts composes a location feed, a reverse geocoder and an activity
recogniser into a small dashboard. Every background lookup is bound to the
dashboard's activation window and is cancelled the moment it stops.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.whereabouts)")
}

// setup enables logging and builds the runtime on first use.
func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if appRuntime != nil || bootstrap == nil {
		return nil
	}

	rt, err := bootstrap(configDir)
	if err != nil {
		return err
	}
	SetRuntime(rt)
	return nil
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function that assembles the runtime.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetRuntime installs a runtime directly, bypassing the bootstrap.
func SetRuntime(rt *Runtime) {
	appRuntime = rt
	if rt == nil {
		settingsService = nil
		diagnosticsService = nil
		return
	}
	settingsService = rt.Settings
	diagnosticsService = rt.Diagnostics
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// requireRuntime returns the runtime or ErrNotConfigured.
func requireRuntime() (*Runtime, error) {
	if appRuntime == nil || appRuntime.NewScreen == nil {
		return nil, ErrNotConfigured
	}
	return appRuntime, nil
}
