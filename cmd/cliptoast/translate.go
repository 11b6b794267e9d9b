package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cliptoast/internal/adapter/input"
	"github.com/jmylchreest/cliptoast/internal/clipboard"
	"github.com/jmylchreest/cliptoast/internal/translate"
)

var translateOpts struct {
	source string
	target    string
	print     bool
	selection bool
}

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate the clipboard into a toast",
	Long: `Read the clipboard, translate it with the configured command and show
the result as a toast. When translation is disabled or fails, the original
text is shown instead. With --selection the highlighted text (the primary
selection) is translated instead of the clipboard.

Bind this to a key in your compositor, for example in Hyprland:

  bind = SUPER, T, exec, cliptoast translate --selection`,
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVar(&translateOpts.source, "from", "",
		"Source language (overrides translate.source)")
	translateCmd.Flags().StringVar(&translateOpts.target, "to", "",
		"Target language (overrides translate.target)")
	translateCmd.Flags().BoolVar(&translateOpts.print, "print", false,
		"Print the result instead of sending a toast")
	translateCmd.Flags().BoolVar(&translateOpts.selection, "selection", false,
		"Translate the primary selection instead of the clipboard")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	reader := clipboard.NewReader(cfg.Clipboard.Command)
	if translateOpts.selection {
		reader = clipboard.NewSelectionReader(cfg.Clipboard.Selection)
	}

	msgs, err := input.NewClipboardAdapter(reader).Import(ctx)
	if err != nil {
		return err
	}
	text := msgs[0].Message

	result, err := translateText(ctx, text)
	if err != nil {
		return err
	}

	if translateOpts.print {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), result)
		return err
	}

	return withDaemon(ctx, func(ctx context.Context, c daemonClient) error {
		return c.Enqueue(ctx, "", result)
	})
}

// translateText applies the configured translator, keeping text on failure.
func translateText(ctx context.Context, text string) (string, error) {
	tcfg := cfg.Translate
	if !tcfg.Enabled {
		return text, nil
	}
	if translateOpts.source != "" {
		tcfg.Source = translateOpts.source
	}
	if translateOpts.target != "" {
		tcfg.Target = translateOpts.target
	}

	tr, err := translate.NewCommand(tcfg)
	if err != nil {
		return "", fmt.Errorf("invalid translate configuration: %w", err)
	}
	return translate.OrOriginal(ctx, tr, text, logger), nil
}
