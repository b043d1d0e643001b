// Command winkeep adopts an X11 window and manages its geometry
// lifecycle: it restores the saved position on startup, tracks state
// transitions, and persists geometry changes back to disk, debounced.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/foldline/winkeep/internal/config"
	"github.com/foldline/winkeep/internal/eventloop"
	"github.com/foldline/winkeep/internal/logging"
	"github.com/foldline/winkeep/internal/platform"
	"github.com/foldline/winkeep/internal/position"
	"github.com/foldline/winkeep/internal/tracker"
	"github.com/foldline/winkeep/internal/x11"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "winkeep: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "config file path (default: ~/.config/winkeep/config.yaml)")
		windowID   = flag.Uint("window", 0, "X11 window ID to manage (default: the active window)")
		logLevel   = flag.String("log-level", "", "log level: debug, info, warn, error")
	)
	flag.Parse()

	log := logging.NewFromEnv()
	if *logLevel != "" {
		log = logging.New(*logLevel)
	}

	cfgPath := *configPath
	if cfgPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		cfgPath = path
	}
	cfg, err := config.LoadFromPath(cfgPath)
	if err != nil {
		return err
	}

	conn, err := x11.NewConnection()
	if err != nil {
		return fmt.Errorf("failed to connect to X11: %w", err)
	}
	defer conn.Close()

	window := xproto.Window(*windowID)
	if window == 0 {
		window, err = conn.ActiveWindow()
		if err != nil || window == 0 {
			return fmt.Errorf("no window to manage: %w", err)
		}
	}
	log.Info().Uint32("window", uint32(window)).Msg("managing window")

	notifier, err := x11.NewNotifier()
	if err != nil {
		log.Warn().Err(err).Msg("session bus unavailable, tray notifications disabled")
		notifier = nil
	} else {
		defer notifier.Close()
	}

	storePath, err := position.DefaultPath("winkeep")
	if err != nil {
		return err
	}

	var quitting atomic.Bool
	loop := eventloop.New()
	actions := platform.NewX11Window(conn, window, notifier, cfg.AppName, log)
	tr := tracker.New(tracker.Deps{
		Store:    position.NewFileStore(storePath),
		Monitors: conn,
		Actions:  actions,
		Loop:     loop,
		Config:   cfg,
		Quitting: quitting.Load,
		Log:      log,
	})
	if err := actions.StartEvents(loop, tr); err != nil {
		return fmt.Errorf("failed to subscribe to window events: %w", err)
	}

	watcher, err := config.Watch(cfgPath, log, func(cfg *config.Config) {
		loop.Post(func() { tr.ConfigUpdated(cfg) })
	})
	if err != nil {
		log.Warn().Err(err).Msg("config watching disabled")
	} else {
		defer watcher.Close()
	}

	go loop.Run()
	defer loop.Stop()
	loop.Post(func() {
		tr.RestoreGeometry()
		tr.HandleVisibleChanged(true)
		tr.UpdateUnreadCounter(0)
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		quitting.Store(true)
		conn.Quit()
	}()

	conn.EventLoop()
	return nil
}
