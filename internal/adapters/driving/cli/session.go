package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/whereabouts/internal/adapters/driven/config/file"
	"github.com/custodia-labs/whereabouts/internal/adapters/driven/render"
	"github.com/custodia-labs/whereabouts/internal/adapters/driving/tui"
	"github.com/custodia-labs/whereabouts/internal/core/stream"
	"github.com/custodia-labs/whereabouts/internal/logger"
)

// session is one created dashboard bound to its own UI loop.
type session struct {
	loop     *stream.Loop
	snapshot *render.Snapshot
	screen   tui.Screen

	closeOnce sync.Once
}

// openSession starts a UI loop, builds a dashboard that renders into a
// snapshot and runs its create hook. Nothing is subscribed yet.
func openSession(ctx context.Context, rt *Runtime, opts ...render.SnapshotOption) (*session, error) {
	loop := stream.NewLoop("ui")
	go func() {
		_ = loop.Start(ctx)
	}()

	snapshot := render.NewSnapshot(opts...)
	screen, err := rt.NewScreen(snapshot, loop)
	if err != nil {
		loop.Stop()
		<-loop.Done()
		return nil, fmt.Errorf("building dashboard: %w", err)
	}

	s := &session{loop: loop, snapshot: snapshot, screen: screen}
	if err := screen.OnCreate(ctx); err != nil {
		s.close()
		return nil, fmt.Errorf("creating dashboard: %w", err)
	}
	return s, nil
}

// close stops the dashboard and waits for the loop to drain. No value is
// rendered after it returns.
func (s *session) close() {
	s.closeOnce.Do(func() {
		s.screen.OnStop()
		s.loop.Stop()
		<-s.loop.Done()
	})
}

// watchConfig reloads the configuration store when its file changes and
// then calls onChange. It is a no-op for stores without a file.
func watchConfig(ctx context.Context, rt *Runtime, onChange func()) {
	if rt.ConfigStore == nil || rt.ConfigStore.Path() == "" {
		return
	}

	w, err := file.NewWatcher(rt.ConfigStore.Path(), file.DefaultDebounce)
	if err != nil {
		logger.Warn("config watch disabled: %v", err)
		return
	}

	go func() {
		err := w.Run(ctx, func() {
			if err := rt.ConfigStore.Load(); err != nil {
				logger.Error("reloading config: %v", err)
				return
			}
			logger.Debug("restarting dashboard with reloaded config")
			onChange()
		})
		if err != nil {
			logger.Warn("config watch stopped: %v", err)
		}
	}()
}
