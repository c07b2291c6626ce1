package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for batch item processing.
var (
	// ErrSnapshotFetch means the initial item ID listing failed. It is the
	// only error that fails a whole batch run.
	ErrSnapshotFetch = errors.New("failed to fetch item ID snapshot")

	// ErrItemFetch means re-fetching a single item failed. The item is skipped.
	ErrItemFetch = errors.New("failed to fetch item")

	// ErrItemSave means persisting a processed item failed. The item is skipped.
	ErrItemSave = errors.New("failed to save item")

	// ErrInterrupted means the item's task was cancelled before it finished.
	ErrInterrupted = errors.New("item processing interrupted")

	// ErrDispatch means the item's task could not be handed to the worker pool.
	ErrDispatch = errors.New("failed to dispatch item task")

	// ErrTaskPanic means the item's task panicked; the panic was recovered.
	ErrTaskPanic = errors.New("item task panicked")
)

// ItemProcessorError wraps errors from the item processor with context.
type ItemProcessorError struct {
	// Operation is the operation that failed (e.g., "create_service")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ItemProcessorError.
func (e *ItemProcessorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("item processor %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("item processor %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ItemProcessorError) Unwrap() error {
	return e.Err
}
