package cli

import (
	"testing"

	"github.com/custodia-labs/whereabouts/internal/adapters/driven/simulated"
	"github.com/custodia-labs/whereabouts/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
	"github.com/custodia-labs/whereabouts/internal/core/services"
	"github.com/custodia-labs/whereabouts/internal/core/stream"
)

// newTestRuntime wires the simulated providers over an in-memory config
// store and installs the runtime for the duration of the test.
func newTestRuntime(t *testing.T) (*Runtime, *memory.ConfigStore) {
	t.Helper()

	store := memory.NewConfigStore()
	settings := services.NewSettingsService(store)
	diagnostics := memory.NewDiagnosticsStore(0)

	rt := &Runtime{
		Settings:    settings,
		Diagnostics: services.NewDiagnosticsService(diagnostics),
		ConfigStore: store,
		Slots:       services.Slots(),
		NewScreen: func(renderer driven.Renderer, main stream.Scheduler) (tui.Screen, error) {
			s, err := settings.Get()
			if err != nil {
				return nil, err
			}
			sim := simulated.FromSettings(s.Simulation)
			d, err := services.NewDashboard(services.DashboardConfig{
				Providers: services.Providers{
					Location: sim.Location,
					Motion:   sim.Motion,
					Geocoder: sim.Geocoder,
				},
				Settings:    settings,
				Renderer:    renderer,
				Diagnostics: diagnostics,
				Main:        main,
			})
			if err != nil {
				return nil, err
			}
			return d, nil
		},
	}

	SetRuntime(rt)
	t.Cleanup(func() { SetRuntime(nil) })
	return rt, store
}
