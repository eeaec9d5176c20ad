package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

var errSettingsNotConfigured = errors.New("settings service not configured")

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the location, geocoding and activity providers.

Settings live in config.toml inside the configuration directory. A running
dashboard picks up changes automatically.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by key. Run "whereabouts settings keys" for the list.

Examples:
  whereabouts settings set location.max_updates 0
  whereabouts settings set geocoding.provider nominatim`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	RunE:  runSettingsKeys,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runSettingsPath,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the providers step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Location]")
	cmd.Printf("  Accuracy: %s\n", settings.Location.Accuracy.Description())
	cmd.Printf("  Max updates: %s\n", formatMaxUpdates(settings.Location.MaxUpdates))
	cmd.Printf("  Interval: %s\n", settings.Location.Interval)
	cmd.Println()

	cmd.Println("[Geocoding]")
	cmd.Printf("  Provider: %s\n", settings.Geocoding.Provider.Description())
	cmd.Printf("  Max results: %d\n", settings.Geocoding.MaxResults)
	if settings.Geocoding.Provider == domain.GeocoderNominatim {
		cmd.Printf("  Base URL: %s\n", settings.Geocoding.BaseURL)
	}
	cmd.Println()

	cmd.Println("[Motion]")
	cmd.Printf("  Poll interval: %s\n", settings.Motion.PollInterval)
	cmd.Println()

	cmd.Println("[Simulation]")
	cmd.Printf("  Start: %.6f %.6f\n", settings.Simulation.Latitude, settings.Simulation.Longitude)
	cmd.Printf("  Location unavailable: %t\n", settings.Simulation.LocationUnavailable)
	if settings.Simulation.GeocodeFailureEvery > 0 {
		cmd.Printf("  Geocode failure every: %d lookups\n", settings.Simulation.GeocodeFailureEvery)
	} else {
		cmd.Println("  Geocode failure every: never")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if appRuntime == nil || appRuntime.ConfigStore == nil {
		return ErrNotConfigured
	}
	path := appRuntime.ConfigStore.Path()
	if path == "" {
		path = "(in memory)"
	}
	cmd.Println(path)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("whereabouts Settings Wizard")
	cmd.Println("===========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Location
	cmd.Println("Step 1: Location accuracy")
	cmd.Println("-------------------------")
	tiers := domain.AllAccuracyTiers()
	for i, tier := range tiers {
		cmd.Printf("  %d. %s\n", i+1, tier.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", indexOf(tiers, current.Location.Accuracy)+1)
	tier := tiers[parseChoice(readLine(reader), len(tiers), indexOf(tiers, current.Location.Accuracy)+1)-1]
	if err := settingsService.Set("location.accuracy", string(tier)); err != nil {
		return fmt.Errorf("failed to set accuracy: %w", err)
	}

	if err := promptSetting(cmd, reader, "location.max_updates", "Max updates (0 = unbounded)",
		strconv.Itoa(current.Location.MaxUpdates)); err != nil {
		return err
	}
	if err := promptSetting(cmd, reader, "location.interval_ms", "Interval in ms",
		strconv.FormatInt(current.Location.Interval.Milliseconds(), 10)); err != nil {
		return err
	}
	cmd.Println()

	// Step 2: Geocoding
	cmd.Println("Step 2: Reverse geocoding")
	cmd.Println("-------------------------")
	kinds := domain.AllGeocoders()
	for i, k := range kinds {
		cmd.Printf("  %d. %s\n", i+1, k.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", indexOf(kinds, current.Geocoding.Provider)+1)
	kind := kinds[parseChoice(readLine(reader), len(kinds), indexOf(kinds, current.Geocoding.Provider)+1)-1]
	if err := settingsService.Set("geocoding.provider", string(kind)); err != nil {
		return fmt.Errorf("failed to set provider: %w", err)
	}
	if kind == domain.GeocoderNominatim {
		if err := promptSetting(cmd, reader, "geocoding.base_url", "Base URL", current.Geocoding.BaseURL); err != nil {
			return err
		}
	}
	if err := promptSetting(cmd, reader, "geocoding.max_results", "Max results",
		strconv.Itoa(current.Geocoding.MaxResults)); err != nil {
		return err
	}
	cmd.Println()

	// Step 3: Motion
	cmd.Println("Step 3: Activity recognition")
	cmd.Println("----------------------------")
	if err := promptSetting(cmd, reader, "motion.poll_interval_ms", "Poll interval in ms",
		strconv.FormatInt(current.Motion.PollInterval.Milliseconds(), 10)); err != nil {
		return err
	}

	cmd.Println()
	cmd.Println("Settings saved.")
	return nil
}

// promptSetting asks for key, keeping current when the answer is empty.
func promptSetting(cmd *cobra.Command, reader *bufio.Reader, key, label, current string) error {
	cmd.Printf("%s [%s]: ", label, current)
	value := readLine(reader)
	if value == "" {
		value = current
	}
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func formatMaxUpdates(n int) string {
	if n == domain.UnboundedUpdates {
		return "unbounded"
	}
	return strconv.Itoa(n)
}

func indexOf[T comparable](items []T, v T) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return 0
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
