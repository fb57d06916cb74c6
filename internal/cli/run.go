package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"launchpad/internal/catalog"
	"launchpad/internal/config"
	"launchpad/internal/discovery"
	"launchpad/internal/eventbus"
	"launchpad/internal/host"
	"launchpad/internal/launch"
	"launchpad/internal/logging"
	"launchpad/internal/ui"
)

// events the overlay reacts to
var forwardedEvents = []eventbus.EventType{
	eventbus.EventScanStarted,
	eventbus.EventScanCompleted,
	eventbus.EventLaunchCompleted,
	eventbus.EventLaunchFailed,
	eventbus.EventConfigChanged,
	eventbus.EventError,
}

func runOverlay(_ *cobra.Command, _ []string) error {
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logging.FromContext(ctx)
	cfg := app.Config.Get()

	store, err := app.OpenHistory()
	if err != nil {
		return err
	}

	bus := eventbus.New(ctx)
	defer bus.Close()

	cat, err := catalog.New(ctx, catalog.NewMemoryCandidateStore(), bus, catalog.Options{
		MaxResults: cfg.Search.MaxResults,
		Usage:      store,
	})
	if err != nil {
		return err
	}
	disc := discovery.NewDiscoveryService(ctx, bus, discovery.Options{MaxDepth: cfg.Discovery.MaxDepth})
	defer disc.StopScan()

	executor := launch.NewExecutor(cat, bus, cfg.Launch.Opener, launch.WithRecorder(store))

	window, err := host.New(cfg.Window, os.Stdout)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, cfg, ui.Dependencies{
		Provider: cat,
		Launcher: executor,
		Window:   window,
		Settings: app.Config,
	})
	defer model.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model,
		tea.WithContext(runCtx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	model.SetProgram(p)

	for _, t := range forwardedEvents {
		unsubscribe := bus.Subscribe(t, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
		defer unsubscribe()
	}

	roots := make(chan string, 1)
	initialDir := config.ExpandHome(cfg.LaunchDir)
	launchDir := initialDir
	roots <- initialDir

	var mu sync.Mutex
	app.Config.OnConfigChange(func(next *config.Config) {
		p.Send(ui.ConfigReloadedMsg{Config: next})

		dir := config.ExpandHome(next.LaunchDir)
		mu.Lock()
		previous := launchDir
		launchDir = dir
		mu.Unlock()
		if dir == previous {
			return
		}

		log.Info().Str("from", previous).Str("to", dir).Msg("launch folder changed, rescanning")
		cat.Update(previous, nil)
		bus.Publish(eventbus.ConfigChangedEvent{LaunchDir: dir})
		bus.Publish(eventbus.ScanRequestedEvent{Roots: []string{dir}})
		select {
		case roots <- dir:
		default:
		}
	})
	if err := app.Config.Watch(runCtx); err != nil {
		log.Warn().Err(err).Msg("config watch disabled")
	}

	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		defer cancel()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("run overlay: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := disc.StartScan(gctx, []string{initialDir}); err != nil {
			log.Warn().Err(err).Msg("initial scan not started")
		}
		return nil
	})

	if cfg.Discovery.Watch {
		g.Go(func() error {
			watchLaunchDir(gctx, log, bus, cfg.Discovery.MaxDepth, roots)
			return nil
		})
	}

	signals, release := lifecycleSignals(gctx)
	defer release()
	dispose := model.Lifecycle().Listen(gctx, signals, p.Send)
	defer dispose()

	return g.Wait()
}

// watchLaunchDir keeps one watcher on the latest root received on roots
func watchLaunchDir(ctx context.Context, log *zerolog.Logger, bus eventbus.EventBus, maxDepth int, roots <-chan string) {
	var wg sync.WaitGroup
	stopWatcher := func() {}
	defer func() {
		stopWatcher()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case root := <-roots:
			stopWatcher()
			wg.Wait()

			wctx, cancel := context.WithCancel(ctx)
			stopWatcher = cancel
			w := discovery.NewWatcher(bus, root, maxDepth)
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := w.Run(wctx); err != nil {
					log.Warn().Err(err).Str("root", root).Msg("launch folder watch stopped")
				}
			}()
		}
	}
}
