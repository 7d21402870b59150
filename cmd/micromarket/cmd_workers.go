package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/micromarket/app/jobs"
	"github.com/shashiranjanraj/micromarket/pkg/cache"
	"github.com/shashiranjanraj/micromarket/pkg/logger"
	"github.com/shashiranjanraj/micromarket/pkg/queue"
)

var queueWorkersFlag int

// micromarket queue:work runs a standalone worker pool. The serve command
// also runs workers in-process; this exists for scaling workers separately.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootDB(); err != nil {
			return err
		}

		if err := cache.Connect(); err != nil {
			logger.Warn("redis unavailable, using in-memory queue", "error", err)
		} else {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		}

		jobs.RegisterAll()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
	serveCmd.Flags().IntVar(&queueWorkersFlag, "queue-workers", 5, "Number of in-process queue workers")
}
