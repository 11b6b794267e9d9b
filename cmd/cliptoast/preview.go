package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cliptoast/internal/layout"
	"github.com/jmylchreest/cliptoast/internal/tui"
)

var previewOpts struct {
	anchor string
	width  int
	height int
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Try the toast queue in the terminal",
	Long: `Run the toast queue without cliptoastd and draw it in the terminal.

The preview uses the same queue, layout and animation timings as the daemon.
Pointer movement and clicks are simulated with keys; press ? for help.`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewOpts.anchor, "anchor", "",
		"Override display.anchor")
	previewCmd.Flags().IntVar(&previewOpts.width, "screen-width", 1920,
		"Width of the simulated screen")
	previewCmd.Flags().IntVar(&previewOpts.height, "screen-height", 1080,
		"Height of the simulated screen")
}

func runPreview(cmd *cobra.Command, args []string) error {
	c := *cfg
	if previewOpts.anchor != "" {
		a, err := layout.ParseAnchor(previewOpts.anchor)
		if err != nil {
			return err
		}
		c.Display.Anchor = a.String()
	}

	return tui.Run(tui.RunOptions{
		Config: &c,
		Logger: logger,
		Screen: layout.Size{Width: previewOpts.width, Height: previewOpts.height},
	})
}
