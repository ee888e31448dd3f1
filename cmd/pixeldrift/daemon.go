package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/1broseidon/pixeldrift/internal/config"
	"github.com/1broseidon/pixeldrift/internal/daemon"
	"github.com/1broseidon/pixeldrift/internal/ipc"
	"github.com/1broseidon/pixeldrift/internal/logging"
	"github.com/1broseidon/pixeldrift/internal/runtimepath"
	"github.com/1broseidon/pixeldrift/internal/shift"
	"github.com/1broseidon/pixeldrift/internal/xrandr"
)

func runDaemon() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = runtimepath.DefaultLogPath()
	}
	if err := logging.Init(logging.Options{Level: cfg.LogLevel, File: logFile}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	runner := xrandr.NewCommandRunner(cfg.XrandrPath)
	if !runner.Available() {
		log.Error().Str("binary", cfg.XrandrPath).Msg("xrandr not found in PATH")
		return 1
	}

	engine := shift.NewScheduler(shift.SchedulerConfig{
		Runner:     runner,
		ResetDelay: cfg.OneshotResetDelay(),
	})
	defer engine.Close()

	reloadChan := make(chan struct{}, 1)
	srv, err := ipc.NewServer(cfg, engine, runner, reloadChan)
	if err != nil {
		log.Error().Err(err).Msg("failed to create IPC server")
		return 1
	}
	if err := srv.Start(); err != nil {
		log.Error().Err(err).Msg("failed to start IPC server")
		return 1
	}
	defer srv.Stop()

	log.Info().Msg("pixeldrift daemon started")

	// Hotplug watcher; the daemon works without it when no X connection
	// is available.
	watcherCtx, watcherCancel := context.WithCancel(context.Background())
	defer watcherCancel()
	if cfg.WatchOutputs {
		reconciler := daemon.NewReconciler(engine, runner)
		watcher, err := daemon.NewOutputWatcher(reconciler.Reconcile)
		if err != nil {
			log.Warn().Err(err).Msg("output watcher unavailable, hotplug events will be ignored")
		} else {
			go watcher.Run(watcherCtx)
		}
	}

	if cfg.Autostart {
		autostart(engine, runner, cfg)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	for {
		select {
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				log.Info().Msg("received SIGHUP, reloading config")
				newCfg, err := config.Load()
				if err != nil {
					log.Error().Err(err).Msg("config reload failed")
					continue
				}
				srv.UpdateConfig(newCfg)
				applyConfig(newCfg)
			case os.Interrupt, syscall.SIGTERM:
				log.Info().Msg("shutting down pixeldrift daemon")
				return 0
			}

		case <-reloadChan:
			// Config was reloaded via IPC.
			applyConfig(srv.GetConfig())
		}
	}
}

// autostart begins the schedule from config as soon as the daemon is up.
func autostart(engine *shift.Scheduler, runner xrandr.Runner, cfg *config.Config) {
	d, err := xrandr.ResolveDisplay(runner, cfg.Display)
	if err != nil {
		log.Warn().Err(err).Msg("autostart skipped")
		return
	}
	strategy, err := shift.ParseStrategy(cfg.Strategy)
	if err != nil {
		log.Warn().Err(err).Msg("autostart skipped")
		return
	}
	engine.Start(d, cfg.ShiftAmount, cfg.Interval(), strategy, cfg.Pattern)
}

// applyConfig applies the reloadable parts of a new config. The xrandr
// binary and one-shot reset delay stay fixed until restart.
func applyConfig(cfg *config.Config) {
	zerolog.SetGlobalLevel(logging.ParseLevel(cfg.LogLevel))
	log.Info().Msg("configuration applied")
}
