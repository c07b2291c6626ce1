package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrQueueClosed is returned when submitting to a closed TaskQueue
var ErrQueueClosed = errors.New("task queue is closed")

// TaskQueue implements a bounded task queue. It is safe for concurrent use
// by any number of producers.
type TaskQueue struct {
	tasks  chan Task
	logger *slog.Logger

	// done is closed first on Close so blocked producers give up before
	// tasks is closed; mu keeps senders and the final close apart.
	done      chan struct{}
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewTaskQueue creates a new task queue with the specified buffer size
func NewTaskQueue(size int, logger *slog.Logger) *TaskQueue {
	if size < 0 {
		size = 0
	}
	return &TaskQueue{
		tasks:  make(chan Task, size),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Submit adds a task to the queue, blocking until there is room,
// the queue is closed, or ctx is done.
func (q *TaskQueue) Submit(ctx context.Context, task Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case <-q.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	select {
	case q.tasks <- task:
		q.logEnqueued(task)
		return nil
	case <-q.done:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes the task queue, preventing further task submission.
// Tasks already in the queue remain readable. Close is idempotent.
func (q *TaskQueue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)

		q.mu.Lock()
		q.closed = true
		close(q.tasks)
		q.mu.Unlock()

		q.logger.Info("task queue closed")
	})
}

// GetChannel returns a read-only channel for consuming tasks
func (q *TaskQueue) GetChannel() <-chan Task {
	return q.tasks
}

func (q *TaskQueue) logEnqueued(task Task) {
	q.logger.Debug("task enqueued",
		"task_id", task.ID(),
		"task_type", task.Type(),
		"queue_len", len(q.tasks),
		"queue_cap", cap(q.tasks))
}
