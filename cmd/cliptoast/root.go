// Package main provides the CLI entrypoint for cliptoast.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cliptoast/internal/config"
	"github.com/jmylchreest/cliptoast/internal/dbus"
	"github.com/jmylchreest/cliptoast/internal/toast"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		timeout    time.Duration
	}
	logger *slog.Logger
)

// daemonClient is the part of the D-Bus client the commands use.
type daemonClient interface {
	Enqueue(ctx context.Context, title, message string) error
	DismissAll(ctx context.Context) error
	Status(ctx context.Context) (toast.Status, error)
	Close() error
}

// dialDaemon connects to cliptoastd. Replaced in tests.
var dialDaemon = func() (daemonClient, error) {
	return dbus.NewClient()
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cliptoast",
	Short: "Stacked toast notifications for Wayland desktops",
	Long: `cliptoast talks to cliptoastd, a daemon that shows short text toasts
stacked in a corner of the screen.

At most three toasts are visible at once; the rest wait in a queue and are
shown one at a time as slots free up. Bind "cliptoast translate" to a key in
your compositor to translate the clipboard into a toast.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.Load(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/cliptoast/cliptoastd.toml)")
	rootCmd.PersistentFlags().DurationVar(&globalOpts.timeout, "timeout", 5*time.Second,
		"Timeout for calls to cliptoastd")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// withDaemon dials cliptoastd and runs fn with a context bounded by --timeout.
func withDaemon(ctx context.Context, fn func(ctx context.Context, c daemonClient) error) error {
	client, err := dialDaemon()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(ctx, globalOpts.timeout)
	defer cancel()
	return fn(ctx, client)
}
