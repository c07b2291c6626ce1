package task

import (
	"context"

	"github.com/google/uuid"
)

// Task type constants
const (
	// TaskTypeItemProcessing marks a task that processes a single item in a batch run
	TaskTypeItemProcessing = "item_processing"
)

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic. The context is cancelled when the
	// pool is stopping.
	Execute(ctx context.Context) error
}
