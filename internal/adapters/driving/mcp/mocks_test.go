package mcp

import (
	"context"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

// mockScreen is a mock implementation of StateReporter.
type mockScreen struct {
	states map[string]domain.SubscriptionState
}

func (m *mockScreen) States() map[string]domain.SubscriptionState {
	return m.states
}

// mockDiagnosticsService is a mock implementation of driving.DiagnosticsService.
type mockDiagnosticsService struct {
	records   []domain.Diagnostic
	err       error
	lastLimit int
}

func (m *mockDiagnosticsService) Recent(_ context.Context, limit int) ([]domain.Diagnostic, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.records) {
		return m.records[:limit], nil
	}
	return m.records, nil
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.Settings) error {
	return m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}
