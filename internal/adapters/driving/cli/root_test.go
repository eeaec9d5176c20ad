package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"watch", "settings", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
}

func TestSetup_UsesBootstrapOnce(t *testing.T) {
	original := bootstrap
	defer func() {
		bootstrap = original
		SetRuntime(nil)
	}()

	calls := 0
	var gotDir string
	SetBootstrap(func(dir string) (*Runtime, error) {
		calls++
		gotDir = dir
		return &Runtime{}, nil
	})
	SetRuntime(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--config-dir", "/tmp/whereabouts-test", "version"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	require.NoError(t, setup(rootCmd, nil))

	assert.Equal(t, 1, calls)
	assert.Equal(t, "/tmp/whereabouts-test", gotDir)
	configDir = ""
}

func TestSetup_BootstrapError(t *testing.T) {
	original := bootstrap
	defer func() {
		bootstrap = original
		SetRuntime(nil)
	}()

	SetRuntime(nil)
	SetBootstrap(func(string) (*Runtime, error) {
		return nil, errors.New("config dir unwritable")
	})

	err := setup(rootCmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config dir unwritable")
}

func TestSetRuntime_Nil(t *testing.T) {
	newTestRuntime(t)
	require.NotNil(t, settingsService)

	SetRuntime(nil)

	assert.Nil(t, settingsService)
	assert.Nil(t, diagnosticsService)
	_, err := requireRuntime()
	assert.ErrorIs(t, err, ErrNotConfigured)
}
