// Command whereabouts shows live position, address and activity.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/whereabouts/internal/adapters/driven/config/file"
	"github.com/custodia-labs/whereabouts/internal/adapters/driven/geocoder/nominatim"
	"github.com/custodia-labs/whereabouts/internal/adapters/driven/simulated"
	"github.com/custodia-labs/whereabouts/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/cli"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui"
	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
	"github.com/custodia-labs/whereabouts/internal/core/services"
	"github.com/custodia-labs/whereabouts/internal/core/stream"
	"github.com/custodia-labs/whereabouts/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires the adapters into the core services.
func bootstrap(configDir string) (*cli.Runtime, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	diagnosticsStore := memory.NewDiagnosticsStore(0)

	return &cli.Runtime{
		Settings:    settingsService,
		Diagnostics: services.NewDiagnosticsService(diagnosticsStore),
		ConfigStore: configStore,
		Slots:       services.Slots(),
		NewScreen: func(renderer driven.Renderer, main stream.Scheduler) (tui.Screen, error) {
			settings, err := settingsService.Get()
			if err != nil {
				return nil, err
			}
			dashboard, err := services.NewDashboard(services.DashboardConfig{
				Providers:   providers(settings),
				Settings:    settingsService,
				Renderer:    renderer,
				Diagnostics: diagnosticsStore,
				Main:        main,
			})
			if err != nil {
				return nil, err
			}
			return dashboard, nil
		},
	}, nil
}

// providers builds the provider handle. Location and activity are always
// simulated; the geocoder follows the settings.
func providers(settings *domain.Settings) services.Providers {
	sim := simulated.FromSettings(settings.Simulation)
	p := services.Providers{
		Location: sim.Location,
		Motion:   sim.Motion,
		Geocoder: sim.Geocoder,
	}

	if settings.Geocoding.Provider == domain.GeocoderNominatim {
		logger.Info("geocoder: nominatim at %s", settings.Geocoding.BaseURL)
		p.Geocoder = nominatim.NewGeocoder(nominatim.Config{
			BaseURL: settings.Geocoding.BaseURL,
		})
	}
	return p
}
