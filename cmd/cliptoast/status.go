package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cliptoast/internal/adapter/output"
	"github.com/jmylchreest/cliptoast/internal/dbus"
	"github.com/jmylchreest/cliptoast/internal/toast"
)

var statusOpts struct {
	format   string
	template string
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show visible and queued toasts",
	Long: `Show the toasts cliptoastd is displaying and the ones waiting in its queue.

Formats:
  plain   human readable summary (default)
  json    full snapshot as JSON
  yaml    full snapshot as YAML
  waybar  one line for a Waybar custom module:

  "custom/cliptoast": {
    "exec": "cliptoast status --format waybar",
    "interval": 2,
    "return-type": "json",
    "on-click": "cliptoast dismiss"
  }`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusOpts.format, "format", "f", string(output.FormatPlain),
		fmt.Sprintf("Output format %v", output.ValidFormats()))
	statusCmd.Flags().StringVar(&statusOpts.template, "template", "",
		"Go template applied to each visible toast (plain format)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	format := output.FormatType(statusOpts.format)
	if !slices.Contains(output.ValidFormats(), format) {
		return fmt.Errorf("unknown format %q, must be one of %v", statusOpts.format, output.ValidFormats())
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = statusOpts.template
	formatter := output.NewFormatter(format, opts)

	var st toast.Status
	err := withDaemon(cmd.Context(), func(ctx context.Context, c daemonClient) error {
		var err error
		st, err = c.Status(ctx)
		return err
	})
	if err != nil {
		// Waybar shows an empty module while the daemon is down.
		if format == output.FormatWaybar && errors.Is(err, dbus.ErrDaemonNotRunning) {
			return formatter.Format(cmd.OutOrStdout(), toast.Status{})
		}
		return err
	}

	return formatter.Format(cmd.OutOrStdout(), st)
}
