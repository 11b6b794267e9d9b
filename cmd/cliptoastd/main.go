// Package main is the entry point for the cliptoastd toast daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/cliptoast/internal/anim"
	"github.com/jmylchreest/cliptoast/internal/audio"
	"github.com/jmylchreest/cliptoast/internal/config"
	"github.com/jmylchreest/cliptoast/internal/daemon"
	"github.com/jmylchreest/cliptoast/internal/dbus"
	"github.com/jmylchreest/cliptoast/internal/display"
	"github.com/jmylchreest/cliptoast/internal/style"
	"github.com/jmylchreest/cliptoast/internal/toast"
)

const appID = "io.github.jmylchreest.cliptoastd"

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to the config file (default: $XDG_CONFIG_HOME/cliptoast/cliptoastd.toml)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	announce := flag.Bool("announce", false, "Show a toast once the daemon is ready")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("cliptoastd version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	path := *configPath
	if path == "" {
		path = config.Path()
	}

	os.Exit(run(path, *announce, logger))
}

func run(configPath string, announce bool, logger *slog.Logger) int {
	logger.Info("starting cliptoastd", "version", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load config", "path", configPath, "error", err)
		return 1
	}

	app := adw.NewApplication(appID, 0)
	sched := display.Scheduler{}

	// Owned by the GTK main loop.
	var (
		host          *display.Host
		manager       *toast.Manager
		inbox         *toast.Inbox
		server        *dbus.Server
		mirror        *dbus.Mirror
		chime         *audio.Chime
		configWatcher *daemon.ConfigWatcher
		styleWatcher  *style.Watcher
		notifier      *daemon.InternalNotifier
		running       atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := func() {
		if configWatcher != nil {
			configWatcher.Stop()
		}
		if styleWatcher != nil {
			styleWatcher.Stop()
		}
		if mirror != nil {
			if err := mirror.Stop(); err != nil {
				logger.Warn("error stopping mirror", "error", err)
			}
		}
		if server != nil {
			if err := server.Stop(); err != nil {
				logger.Warn("error stopping D-Bus server", "error", err)
			}
		}
		if manager != nil {
			manager.Stop()
		}
		if chime != nil {
			chime.Close()
		}
		running.Store(false)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
			sched.Post(app.Quit)
		case <-ctx.Done():
		}
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		host, err = display.NewHost(&app.Application, cfg.Mouse, loadStyle(cfg.Display.Style, logger).CSS, logger)
		if err != nil {
			logger.Error("failed to create display host", "error", err)
			app.Quit()
			return
		}

		chime = audio.NewChime(cfg.Audio, logger)

		manager, err = toast.NewManager(host, sched, anim.NewDriver(sched, 0), toast.Options{
			Anchor:       cfg.Anchor(),
			LiveDuration: cfg.Timeouts.Live.Duration(),
			ToastSize:    cfg.ToastSize(),
			Logger:       logger,
			OnAdmit: func(info toast.Info) {
				chime.Ring()
				if server != nil {
					if err := server.EmitShown(info); err != nil {
						logger.Debug("failed to emit Shown", "toast_id", info.ID, "error", err)
					}
				}
			},
			OnDismiss: func(info toast.Info) {
				if server != nil {
					if err := server.EmitDismissed(info); err != nil {
						logger.Debug("failed to emit Dismissed", "toast_id", info.ID, "error", err)
					}
				}
			},
		})
		if err != nil {
			logger.Error("failed to create toast manager", "error", err)
			app.Quit()
			return
		}
		inbox = toast.NewInbox(sched, manager)
		manager.Start()

		notifier = daemon.NewInternalNotifier(inbox, logger)
		chime.SetErrorHandler(notifier.NotifyAudioError)

		server = dbus.NewServer(inbox, logger)
		if err := server.Start(); err != nil {
			logger.Error("failed to start D-Bus server", "error", err)
			server = nil
			manager.Stop()
			app.Quit()
			return
		}

		if cfg.Mirror.Enabled {
			mirror = dbus.NewMirror(
				dbus.MirrorFilter{Apps: cfg.Mirror.Apps, Ignore: cfg.Mirror.Ignore},
				func(n dbus.DesktopNotification) {
					title := n.Summary
					if title == "" {
						title = n.AppName
					}
					inbox.Submit(title, n.Body)
				},
				logger,
			)
			if err := mirror.Start(); err != nil {
				logger.Warn("failed to start notification mirror", "error", err)
				mirror = nil
			}
		}

		configWatcher = daemon.NewConfigWatcher(configPath, logger)
		configWatcher.SetReloadCallback(func(newCfg *config.Config) {
			sched.Post(func() {
				applyConfig(cfg, newCfg, manager, host, chime, notifier, logger)
				cfg = newCfg
			})
		})
		configWatcher.SetErrorCallback(notifier.NotifyConfigError)
		if err := configWatcher.Start(ctx, cfg); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		}

		styleWatcher = style.NewWatcher(config.ExpandPath(cfg.Display.Style), logger)
		styleWatcher.SetChangeCallback(func() {
			sched.Post(func() {
				sheet := loadStyle(cfg.Display.Style, logger)
				host.SetStyle(sheet.CSS)
				notifier.NotifyStyleReloaded(sheet.Path)
			})
		})
		if err := styleWatcher.Start(ctx); err != nil {
			logger.Warn("failed to start style watcher", "error", err)
		}

		logger.Info("cliptoastd ready",
			"bus_name", dbus.BusName,
			"anchor", cfg.Anchor(),
			"mirror", mirror != nil,
		)

		if announce {
			notifier.NotifyStartup(version)
		}

		// GTK apps quit when all windows are closed.
		keepAlive := gtk.NewWindow()
		keepAlive.SetApplication(&app.Application)
		keepAlive.SetDefaultSize(1, 1)
		keepAlive.SetDecorated(false)
		keepAlive.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		shutdown()
	})

	status := app.Run(os.Args[:1])
	cancel()

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		return status
	}

	logger.Info("cliptoastd stopped")
	return 0
}

// applyConfig pushes reloadable settings into the running components.
// Settings fixed at startup are reported instead.
func applyConfig(old, cfg *config.Config, manager *toast.Manager, host *display.Host, chime *audio.Chime, notifier *daemon.InternalNotifier, logger *slog.Logger) {
	manager.SetLiveDuration(cfg.Timeouts.Live.Duration())
	host.SetMouse(cfg.Mouse)
	chime.Update(cfg.Audio)

	if old.Display.Style != cfg.Display.Style {
		sheet := loadStyle(cfg.Display.Style, logger)
		host.SetStyle(sheet.CSS)
		notifier.NotifyStyleReloaded(sheet.Path)
	}

	if old.Anchor() != cfg.Anchor() {
		notifier.NotifyRestartRequired("display.anchor")
	}
	if old.ToastSize() != cfg.ToastSize() {
		notifier.NotifyRestartRequired("display size")
	}
	if old.Mirror.Enabled != cfg.Mirror.Enabled ||
		!slices.Equal(old.Mirror.Apps, cfg.Mirror.Apps) ||
		!slices.Equal(old.Mirror.Ignore, cfg.Mirror.Ignore) {
		notifier.NotifyRestartRequired("mirror")
	}

	notifier.NotifyConfigReloaded()
}

// loadStyle reads the user stylesheet, falling back to the bundled one.
func loadStyle(path string, logger *slog.Logger) *style.Sheet {
	sheet, err := style.Load(config.ExpandPath(path))
	if err != nil {
		logger.Warn("failed to load stylesheet, using bundled", "path", path, "error", err)
		return style.Default()
	}
	logger.Info("loaded stylesheet", "path", sheet.Path, "bundled", sheet.Bundled())
	return sheet
}
