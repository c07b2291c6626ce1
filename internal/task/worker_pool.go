package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrTaskPanicked is reported to the error handler when a task panics.
var ErrTaskPanicked = errors.New("task panicked")

// WorkerPool manages a fixed pool of worker goroutines that process tasks
// from its bounded queue. It handles graceful shutdown and worker lifecycle.
// A single pool is meant to be shared by every producer in the process.
type WorkerPool struct {
	// queue holds submitted tasks until a worker picks them up
	queue *TaskQueue

	// workerCount is the number of concurrent workers to start
	workerCount int

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	// ctx is passed to every task and cancelled on Stop
	ctx context.Context

	// cancel is the function to call to cancel the context
	cancel context.CancelFunc

	// logger for structured logging
	logger *slog.Logger

	// errorHandler is called when a task execution fails
	// If nil, errors are only logged
	errorHandler func(task Task, err error)

	startOnce sync.Once
	stopOnce  sync.Once
}

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start
	// If zero or negative, defaults to 1
	WorkerCount int

	// QueueSize is the number of submitted tasks that may wait for a worker
	QueueSize int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 10,
		QueueSize:   100,
	}
}

// NewWorkerPool creates a new worker pool with the specified configuration.
// The pool does not run tasks until Start is called.
func NewWorkerPool(config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "worker_pool")

	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		queue:       NewTaskQueue(config.QueueSize, logger),
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// SetErrorHandler allows setting a custom error handler for task execution failures.
// It must be called before Start.
func (p *WorkerPool) SetErrorHandler(handler func(task Task, err error)) {
	p.errorHandler = handler
}

// WorkerCount returns the number of workers the pool runs.
func (p *WorkerPool) WorkerCount() int {
	return p.workerCount
}

// Submit queues a task, waiting for queue capacity if necessary.
// Returns ErrQueueClosed once the pool has been stopped.
func (p *WorkerPool) Submit(ctx context.Context, task Task) error {
	return p.queue.Submit(ctx, task)
}

// Start launches the worker goroutines. Calling Start more than once has no effect.
func (p *WorkerPool) Start() {
	p.startOnce.Do(func() {
		p.logger.Info("starting worker pool", "worker_count", p.workerCount)
		for i := 0; i < p.workerCount; i++ {
			p.wg.Add(1)
			go p.worker(i)
		}
	})
}

// Stop cancels the pool context, closes the queue and waits for workers to
// exit. Tasks still queued are then executed with the cancelled context, so
// every accepted task runs exactly once.
func (p *WorkerPool) Stop() {
	p.stopOnce.Do(func() {
		p.logger.Info("stopping worker pool")
		p.cancel()
		p.queue.Close()
		p.wg.Wait()

		drained := 0
		for task := range p.queue.GetChannel() {
			p.runTask(task, -1)
			drained++
		}

		p.logger.Info("worker pool stopped", "drained_tasks", drained)
	})
}

// worker processes tasks from the queue
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug("starting worker", "worker_id", id)

	tasks := p.queue.GetChannel()
	for {
		select {
		case <-p.ctx.Done():
			p.logger.Debug("stopping worker", "worker_id", id)
			return

		case task, ok := <-tasks:
			if !ok {
				p.logger.Debug("task channel closed, stopping worker", "worker_id", id)
				return
			}
			p.runTask(task, id)
		}
	}
}

// runTask executes a single task, converting a panic into an error so one
// task can never take a worker down.
func (p *WorkerPool) runTask(task Task, workerID int) {
	logger := p.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
			}
		}()
		return task.Execute(p.ctx)
	}()

	if err == nil {
		logger.Debug("task completed")
		return
	}

	if errors.Is(err, ErrTaskPanicked) {
		logger.Error("task panicked", "error", err)
	} else {
		logger.Debug("task returned error", "error", err)
	}

	if p.errorHandler != nil {
		p.errorHandler(task, err)
	}
}
