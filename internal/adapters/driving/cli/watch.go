package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/whereabouts/internal/adapters/driven/render"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/whereabouts/internal/logger"
)

// LogFileName is where logs go while the TUI owns the terminal.
const LogFileName = "whereabouts.log"

var (
	watchPlain    bool
	watchDuration time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show live position, address and activity",
	Long: `Start the dashboard. On a terminal this opens the interactive view;
otherwise, or with --plain, each value is printed on its own line.

Editing the configuration file while the dashboard runs restarts every
pipeline with the new settings.

Controls (interactive view):
  s   - Stop / start the pipelines
  g   - Open the geofencing screen
  x   - Dismiss the error notification
  ?   - Toggle help
  q   - Quit`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchPlain, "plain", false, "print values line by line instead of the interactive view")
	watchCmd.Flags().DurationVar(&watchDuration, "duration", 0, "stop after this long (0 = until interrupted)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	rt, err := requireRuntime()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if watchDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, watchDuration)
		defer cancel()
	}

	if !watchPlain && isTerminal(cmd.OutOrStdout()) {
		return runWatchTUI(ctx, rt)
	}
	return runWatchPlain(ctx, cmd, rt)
}

// runWatchPlain renders to the command output until ctx is done.
func runWatchPlain(ctx context.Context, cmd *cobra.Command, rt *Runtime) error {
	s, err := openSession(ctx, rt, render.WithTee(render.NewConsole(cmd.OutOrStdout())))
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.screen.OnStart(ctx); err != nil {
		return fmt.Errorf("starting dashboard: %w", err)
	}

	watchConfig(ctx, rt, func() {
		if err := s.screen.Restart(ctx); err != nil {
			logger.Error("restarting dashboard: %v", err)
		}
	})

	<-ctx.Done()
	s.close()

	printDiagnostics(cmd, rt)
	return nil
}

// runWatchTUI runs the interactive view. The view owns the activation
// window; the session only guarantees everything is stopped on exit.
func runWatchTUI(ctx context.Context, rt *Runtime) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	restore := redirectLogs(rt)
	defer restore()

	s, err := openSession(ctx, rt)
	if err != nil {
		return err
	}
	defer s.close()

	app, err := tui.NewApp(tui.NewPorts(s.screen, s.snapshot, rt.Slots))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	p := app.NewProgram()
	watchConfig(ctx, rt, func() {
		p.Send(messages.ConfigChanged{})
	})

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// printDiagnostics lists pipeline failures recorded during the run.
func printDiagnostics(cmd *cobra.Command, rt *Runtime) {
	if rt.Diagnostics == nil {
		return
	}
	records, err := rt.Diagnostics.Recent(context.Background(), 0)
	if err != nil || len(records) == 0 {
		return
	}

	cmd.Printf("\n%d pipeline failure(s):\n", len(records))
	for _, r := range records {
		cmd.Printf("  %s %s: %s\n", r.OccurredAt.Format("15:04:05.000"), r.Pipeline, r.Error)
	}
}

// redirectLogs sends log output to a file next to the configuration
// while the TUI runs, or discards it when there is no such directory.
func redirectLogs(rt *Runtime) (restore func()) {
	restore = func() { logger.SetOutput(os.Stderr) }

	if rt.ConfigStore == nil || rt.ConfigStore.Path() == "" {
		logger.SetOutput(io.Discard)
		return restore
	}

	path := filepath.Join(filepath.Dir(rt.ConfigStore.Path()), LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return restore
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
