package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skbags/atelier/app/jobs"
	"github.com/skbags/atelier/config"
	"github.com/skbags/atelier/pkg/cache"
	"github.com/skbags/atelier/pkg/database"
	"github.com/skbags/atelier/pkg/logger"
	"github.com/skbags/atelier/pkg/queue"
)

var queueWorkersFlag int

// atelier queue:work — run workers outside the API process. Useful with the
// redis driver, where the API enqueues and a separate worker box processes.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start standalone queue workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		if err := cache.Connect(); err != nil {
			logger.Warn("cache unavailable", "error", err)
		}

		if config.QueueDriver() == "redis" && cache.RDB != nil {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		}
		queue.UseDB(database.DB)
		jobs.RegisterJobs()

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
}
