package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/item-api/internal/domain"
	"github.com/phrazzld/item-api/internal/platform/logger"
	"github.com/phrazzld/item-api/internal/store"
	"github.com/phrazzld/item-api/internal/task"
)

// TaskSubmitter hands tasks to a worker pool. *task.WorkerPool implements it.
type TaskSubmitter interface {
	// Submit queues the task, blocking while the pool's queue is full.
	Submit(ctx context.Context, task task.Task) error
}

// ItemProcessorConfig holds tunables for batch item processing.
type ItemProcessorConfig struct {
	// ItemDelay is waited before each item is re-fetched. The wait is
	// interruptible through the batch or pool context.
	ItemDelay time.Duration
}

// BatchResult is the resolved value of an asynchronous batch run.
type BatchResult struct {
	Items []*domain.Item
	Err   error
}

// ItemProcessor re-processes every stored item as one batch run.
// It holds no per-run state, so one instance may serve any number of
// concurrent callers; the only thing they share is the worker pool.
type ItemProcessor struct {
	store     store.ItemStore
	submitter TaskSubmitter
	itemDelay time.Duration
	logger    *slog.Logger
}

// NewItemProcessor creates an ItemProcessor.
// It returns an error if any of the required dependencies are nil.
func NewItemProcessor(
	itemStore store.ItemStore,
	submitter TaskSubmitter,
	config ItemProcessorConfig,
	logger *slog.Logger,
) (*ItemProcessor, error) {
	if itemStore == nil {
		return nil, &ItemProcessorError{Operation: "create_service", Message: "itemStore cannot be nil"}
	}
	if submitter == nil {
		return nil, &ItemProcessorError{Operation: "create_service", Message: "submitter cannot be nil"}
	}
	if config.ItemDelay < 0 {
		return nil, &ItemProcessorError{Operation: "create_service", Message: "item delay cannot be negative"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ItemProcessor{
		store:     itemStore,
		submitter: submitter,
		itemDelay: config.ItemDelay,
		logger:    logger,
	}, nil
}

// ProcessAllAsync starts a batch run and returns a channel that receives
// its result exactly once and is then closed.
func (p *ItemProcessor) ProcessAllAsync(ctx context.Context) <-chan BatchResult {
	resultCh := make(chan BatchResult, 1)
	go func() {
		defer close(resultCh)
		items, err := p.ProcessAll(ctx)
		resultCh <- BatchResult{Items: items, Err: err}
	}()
	return resultCh
}

// ProcessAll marks every item in a snapshot of the store as PROCESSED and
// returns the items that were saved successfully, in snapshot order.
//
// Only a failure to list the item IDs fails the run (ErrSnapshotFetch).
// Items that disappeared, failed to save, or were interrupted are left out
// of the result. The returned slice is never nil on success.
func (p *ItemProcessor) ProcessAll(ctx context.Context) ([]*domain.Item, error) {
	batchID := uuid.New()
	// A request-scoped logger (e.g. carrying a trace ID) takes precedence
	log := logger.FromContextOrDefault(ctx, p.logger).With(
		"component", "item_processor",
		"batch_id", batchID.String())
	ctx = logger.WithLogger(ctx, log)
	start := time.Now()

	ids, err := p.store.FindAllIDs(ctx)
	if err != nil {
		log.Error("failed to fetch item ID snapshot", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrSnapshotFetch, err)
	}

	if len(ids) == 0 {
		log.Info("no items to process")
		return []*domain.Item{}, nil
	}

	log.Info("batch processing started", "item_count", len(ids))

	// One future per snapshot position; dispatch never waits for a task to finish
	futures := make([]<-chan Outcome, len(ids))
	for i, id := range ids {
		t := newItemProcessingTask(ctx, p, id)
		futures[i] = t.result

		if err := p.submitter.Submit(ctx, t); err != nil {
			log.Error("failed to dispatch item task", "item_id", id, "error", err)
			t.reject(fmt.Errorf("%w: %w", ErrDispatch, err))
		}
	}

	// Barrier: every future resolves exactly once, read in snapshot order
	outcomes := make([]Outcome, len(futures))
	for i, future := range futures {
		outcomes[i] = <-future
	}

	items := collectProcessed(outcomes)
	stats := summarize(outcomes)

	log.Info("batch processing completed",
		"total", stats.Total,
		"processed", stats.Processed,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"duration_ms", time.Since(start).Milliseconds())

	return items, nil
}

// processItem re-fetches one item, marks it processed and saves it.
// It never panics on store errors and reports every result as an Outcome.
func (p *ItemProcessor) processItem(ctx context.Context, id int64) Outcome {
	log := p.loggerFor(ctx).With("item_id", id)

	if err := p.wait(ctx); err != nil {
		return p.interrupted(log, id, err)
	}

	item, err := p.store.FindByID(ctx, id)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return p.interrupted(log, id, ctxErr)
		}
		log.Error("failed to fetch item", "error", err)
		return skipped(id, fmt.Errorf("%w %d: %w", ErrItemFetch, id, err))
	}
	if item == nil {
		log.Debug("item no longer exists, skipping")
		return skipped(id, nil)
	}

	// Work on a copy so a failed save leaves the fetched value untouched
	updated := item.Clone()
	updated.MarkProcessed()

	saved, err := p.store.Save(ctx, updated)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return p.interrupted(log, id, err)
		}
		// Deleted between re-fetch and save: same as never finding it
		if store.IsNotFoundError(err) {
			log.Debug("item deleted before save, skipping")
			return skipped(id, nil)
		}
		log.Error("failed to save processed item",
			"error", err,
			"item_name", item.Name,
			"item_status", string(item.Status))
		return skipped(id, fmt.Errorf("%w %d: %w", ErrItemSave, id, err))
	}
	if saved == nil {
		saved = updated
	}

	log.Debug("item processed")
	return processed(id, saved)
}

// wait blocks for the configured item delay, returning early with the
// context's error if it is cancelled.
func (p *ItemProcessor) wait(ctx context.Context) error {
	if p.itemDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.itemDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *ItemProcessor) interrupted(log *slog.Logger, id int64, cause error) Outcome {
	log.Error("item processing interrupted", "error", cause)
	return skipped(id, fmt.Errorf("%w: %w", ErrInterrupted, cause))
}

func (p *ItemProcessor) loggerFor(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, p.logger)
}
