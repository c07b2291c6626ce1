package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"sync/atomic"

	"github.com/phrazzld/item-api/internal/api"
	"github.com/phrazzld/item-api/internal/config"
	"github.com/phrazzld/item-api/internal/platform/postgres"
	"github.com/phrazzld/item-api/internal/service"
	"github.com/phrazzld/item-api/internal/store"
	"github.com/phrazzld/item-api/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	itemStore store.ItemStore

	// workerPool is shared by every batch run in the process
	workerPool    *task.WorkerPool
	itemProcessor api.ItemProcessor

	// failedTasks counts pool tasks that returned an error since startup
	failedTasks atomic.Int64
}

// newApplication wires the store, worker pool and item processor.
// The pool is started by Run.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.itemStore = postgres.NewPostgresItemStore(db, logger)

	app.workerPool = task.NewWorkerPool(task.WorkerPoolConfig{
		WorkerCount: cfg.Processing.WorkerCount,
		QueueSize:   cfg.Processing.QueueSize,
	}, logger)
	app.countTaskFailures()

	processor, err := service.NewItemProcessor(
		app.itemStore,
		app.workerPool,
		service.ItemProcessorConfig{ItemDelay: cfg.Processing.ItemDelay()},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create item processor: %w", err)
	}
	app.itemProcessor = processor

	logger.Info("application initialized successfully")
	return app, nil
}

// countTaskFailures installs the pool error handler. Failures are already
// logged where they happen, so the handler only counts them.
func (app *application) countTaskFailures() {
	app.workerPool.SetErrorHandler(func(task.Task, error) {
		app.failedTasks.Add(1)
	})
}

// Run serves HTTP on the configured port until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", app.config.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", app.config.Server.Port, err)
	}
	return app.serve(ctx, ln)
}
