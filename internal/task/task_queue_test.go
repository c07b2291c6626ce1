package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestTaskQueue_SubmitAfterClose(t *testing.T) {
	queue := NewTaskQueue(2, setupTestLogger())
	require.NoError(t, queue.Submit(context.Background(), NewMockTask(nil)))

	queue.Close()
	assert.ErrorIs(t, queue.Submit(context.Background(), NewMockTask(nil)), ErrQueueClosed)
}

func TestTaskQueue_CloseKeepsQueuedTasksReadable(t *testing.T) {
	queue := NewTaskQueue(3, setupTestLogger())
	first := NewMockTask(nil)
	second := NewMockTask(nil)

	require.NoError(t, queue.Submit(context.Background(), first))
	require.NoError(t, queue.Submit(context.Background(), second))

	queue.Close()
	queue.Close() // idempotent

	var got []Task
	for task := range queue.GetChannel() {
		got = append(got, task)
	}
	assert.Equal(t, []Task{first, second}, got)
}

func TestTaskQueue_SubmitWaitsForCapacity(t *testing.T) {
	queue := NewTaskQueue(1, setupTestLogger())
	require.NoError(t, queue.Submit(context.Background(), NewMockTask(nil)))

	submitted := make(chan error, 1)
	go func() {
		submitted <- queue.Submit(context.Background(), NewMockTask(nil))
	}()

	select {
	case err := <-submitted:
		t.Fatalf("Submit returned before capacity was available: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	<-queue.GetChannel()

	select {
	case err := <-submitted:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Submit did not complete after capacity was freed")
	}
}

func TestTaskQueue_SubmitHonoursContext(t *testing.T) {
	queue := NewTaskQueue(0, setupTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := queue.Submit(ctx, NewMockTask(nil))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestTaskQueue_CloseReleasesBlockedSubmitters(t *testing.T) {
	queue := NewTaskQueue(0, setupTestLogger())

	const submitters = 5
	var wg sync.WaitGroup
	errs := make(chan error, submitters)
	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- queue.Submit(context.Background(), NewMockTask(nil))
		}()
	}

	time.Sleep(20 * time.Millisecond)
	queue.Close()
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.ErrorIs(t, err, ErrQueueClosed)
	}
}
