package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"profilebot/internal/app"
	"profilebot/internal/httputil"
	"profilebot/internal/queue"
	"profilebot/internal/store"
)

func main() {
	deps, err := app.BuildWorker()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	deps.Log.Info("analytics worker starting")

	g, ctx := errgroup.WithContext(context.Background())

	// Run queue worker
	g.Go(func() error {
		return deps.Queue.Worker(ctx, queue.TaskTypeEvent, func(ctx context.Context, task queue.Task) error {
			return handleEvent(ctx, deps, task)
		})
	})

	// Run health check server
	g.Go(func() error {
		return httputil.ServeHealth(deps.Log, deps.Config.HealthPort, "analytics")
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("analytics worker stopped", "err", err)
	}
}

// handleEvent persists one analytics event. Returning an error re-enqueues
// the task with backoff, so only transient store failures should bubble up;
// a payload that can't decode is logged and dropped.
func handleEvent(ctx context.Context, deps app.WorkerDeps, task queue.Task) error {
	var event store.Event
	if err := json.Unmarshal(task.Payload, &event); err != nil {
		deps.Log.Error("dropping undecodable event task", "id", task.ID, "err", err)
		return nil
	}
	if event.Type == "" {
		deps.Log.Error("dropping event without type", "id", task.ID)
		return nil
	}
	return deps.Store.LogEvent(ctx, event)
}
