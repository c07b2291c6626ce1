package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/item-api/internal/task"
)

// itemProcessingTask processes one item of a batch run on the worker pool.
// Its result channel is the task's future: it has capacity one and receives
// exactly one Outcome, either from Execute or from reject.
type itemProcessingTask struct {
	id        uuid.UUID
	itemID    int64
	batchCtx  context.Context
	processor *ItemProcessor
	result    chan Outcome
}

var _ task.Task = (*itemProcessingTask)(nil)

func newItemProcessingTask(batchCtx context.Context, p *ItemProcessor, itemID int64) *itemProcessingTask {
	return &itemProcessingTask{
		id:        uuid.New(),
		itemID:    itemID,
		batchCtx:  batchCtx,
		processor: p,
		result:    make(chan Outcome, 1),
	}
}

// ID returns the task's unique identifier
func (t *itemProcessingTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *itemProcessingTask) Type() string {
	return task.TaskTypeItemProcessing
}

// Execute processes the item. It runs until either the batch context or the
// pool context is cancelled, and always publishes an outcome, even on panic.
func (t *itemProcessingTask) Execute(poolCtx context.Context) (err error) {
	ctx, cancel := context.WithCancel(t.batchCtx)
	defer cancel()
	stop := context.AfterFunc(poolCtx, cancel)
	defer stop()

	outcome := skipped(t.itemID, nil)
	defer func() {
		if r := recover(); r != nil {
			outcome = skipped(t.itemID, fmt.Errorf("%w: %v", ErrTaskPanic, r))
			t.processor.loggerFor(ctx).Error("item task panicked",
				"item_id", t.itemID,
				"panic", fmt.Sprint(r))
		}
		t.result <- outcome
		err = outcome.Err
	}()

	outcome = t.processor.processItem(ctx, t.itemID)
	return outcome.Err
}

// reject publishes a skipped outcome for a task that never reached the pool.
func (t *itemProcessingTask) reject(err error) {
	t.result <- skipped(t.itemID, err)
}
