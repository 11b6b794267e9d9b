package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cliptoast/internal/adapter/input"
	"github.com/jmylchreest/cliptoast/internal/clipboard"
)

var sendOpts struct {
	title  string
	source string
}

var sendCmd = &cobra.Command{
	Use:   "send [message...]",
	Short: "Queue a toast",
	Long: `Queue a toast on cliptoastd.

The message is the remaining arguments joined by spaces. Use "-" or
--source stdin to read messages from standard input instead: either one
message per line ("title<TAB>message" or just "message"), or a JSON array of
{"title": ..., "message": ...} objects.

Examples:
  cliptoast send --title Build "finished in 42s"
  make 2>&1 | tail -1 | cliptoast send -
  cliptoast send --source clipboard`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVarP(&sendOpts.title, "title", "t", "",
		"Toast title (argument mode only)")
	sendCmd.Flags().StringVar(&sendOpts.source, "source", "",
		"Read messages from a source instead of arguments (stdin, clipboard)")
}

func runSend(cmd *cobra.Command, args []string) error {
	messages, err := collectMessages(cmd.Context(), args)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return fmt.Errorf("nothing to send")
	}

	return withDaemon(cmd.Context(), func(ctx context.Context, c daemonClient) error {
		for _, m := range messages {
			if err := c.Enqueue(ctx, m.Title, m.Message); err != nil {
				return err
			}
		}
		logger.Debug("sent toasts", "count", len(messages))
		return nil
	})
}

func collectMessages(ctx context.Context, args []string) ([]input.Message, error) {
	source := sendOpts.source
	if source == "" && len(args) == 1 && args[0] == "-" {
		source = "stdin"
	}

	if source == "" {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" && sendOpts.title == "" {
			return nil, nil
		}
		return []input.Message{{Title: sendOpts.title, Message: text}}, nil
	}

	adapter, err := input.NewAdapter(source, clipboard.NewReader(cfg.Clipboard.Command))
	if err != nil {
		return nil, err
	}
	return adapter.Import(ctx)
}
