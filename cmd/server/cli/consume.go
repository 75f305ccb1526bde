package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/queue"
)

// NewConsumeCommand runs the listing event consumer until interrupted.
func NewConsumeCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Append listing events from RabbitMQ to an activity log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			lg := logger.New(cfg.Log)
			defer lg.Close()

			if out == "" {
				out = cfg.Events.LogPath
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c := &queue.Consumer{URL: cfg.Events.URL, LogPath: out, Logger: lg.Logger}
			lg.Printf("consuming %s into %s", queue.ListingQueueName, out)
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "activity log path (default EVENTS_LOG)")
	return cmd
}
