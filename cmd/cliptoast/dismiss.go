package main

import (
	"context"

	"github.com/spf13/cobra"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss",
	Short: "Close every toast and clear the queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDaemon(cmd.Context(), func(ctx context.Context, c daemonClient) error {
			return c.DismissAll(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(dismissCmd)
}
