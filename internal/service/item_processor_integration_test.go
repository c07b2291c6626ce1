//go:build integration

package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/phrazzld/item-api/internal/domain"
	"github.com/phrazzld/item-api/internal/platform/postgres"
	"github.com/phrazzld/item-api/internal/service"
	"github.com/phrazzld/item-api/internal/store"
	"github.com/phrazzld/item-api/internal/task"
	"github.com/phrazzld/item-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemProcessor_Postgres(t *testing.T) {
	db := testdb.Open(t)
	testdb.Truncate(t, db)
	t.Cleanup(func() { testdb.Truncate(t, db) })

	ctx := context.Background()
	itemStore := postgres.NewPostgresItemStore(db, nil)

	var want []int64
	for i := 0; i < 12; i++ {
		item, err := domain.NewItem(fmt.Sprintf("item-%02d", i), "seeded", "")
		require.NoError(t, err)
		saved, err := itemStore.Save(ctx, item)
		require.NoError(t, err)
		want = append(want, saved.ID)
	}

	pool := task.NewWorkerPool(task.WorkerPoolConfig{WorkerCount: 4, QueueSize: 4}, nil)
	pool.Start()
	t.Cleanup(pool.Stop)

	processor, err := service.NewItemProcessor(itemStore, pool,
		service.ItemProcessorConfig{ItemDelay: 5 * time.Millisecond}, nil)
	require.NoError(t, err)

	items, err := processor.ProcessAll(ctx)
	require.NoError(t, err)

	got := make([]int64, len(items))
	for i, item := range items {
		got[i] = item.ID
		assert.Equal(t, domain.ItemStatusProcessed, item.Status)
	}
	assert.Equal(t, want, got)

	stored, err := itemStore.FindAll(ctx)
	require.NoError(t, err)
	for _, item := range stored {
		assert.Equal(t, domain.ItemStatusProcessed, item.Status, "item %d", item.ID)
	}
}

func TestItemProcessor_Postgres_DeletedDuringBatch(t *testing.T) {
	db := testdb.Open(t)
	testdb.Truncate(t, db)
	t.Cleanup(func() { testdb.Truncate(t, db) })

	ctx := context.Background()
	itemStore := postgres.NewPostgresItemStore(db, nil)

	var ids []int64
	for i := 0; i < 3; i++ {
		item, err := domain.NewItem(fmt.Sprintf("item-%d", i), "", "")
		require.NoError(t, err)
		saved, err := itemStore.Save(ctx, item)
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}

	// A single worker with a long delay leaves time to delete the last item
	// after the snapshot is taken but before it is re-fetched.
	pool := task.NewWorkerPool(task.WorkerPoolConfig{WorkerCount: 1, QueueSize: 3}, nil)
	pool.Start()
	t.Cleanup(pool.Stop)

	processor, err := service.NewItemProcessor(itemStore, pool,
		service.ItemProcessorConfig{ItemDelay: 200 * time.Millisecond}, nil)
	require.NoError(t, err)

	resultCh := processor.ProcessAllAsync(ctx)
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, itemStore.Delete(ctx, ids[2]))

	res := <-resultCh
	require.NoError(t, res.Err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, ids[0], res.Items[0].ID)
	assert.Equal(t, ids[1], res.Items[1].ID)
}

// saveFailingStore fails Save for one item ID and delegates everything else.
type saveFailingStore struct {
	store.ItemStore
	failID int64
}

func (s *saveFailingStore) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item.ID == s.failID {
		return nil, errors.New("simulated write failure")
	}
	return s.ItemStore.Save(ctx, item)
}

func TestItemProcessor_Postgres_FailedSaveLeavesRowUnchanged(t *testing.T) {
	db := testdb.Open(t)
	testdb.Truncate(t, db)
	t.Cleanup(func() { testdb.Truncate(t, db) })

	ctx := context.Background()
	pgStore := postgres.NewPostgresItemStore(db, nil)

	var ids []int64
	for i := 0; i < 4; i++ {
		item, err := domain.NewItem(fmt.Sprintf("item-%d", i), "seeded", fmt.Sprintf("owner%d@example.com", i))
		require.NoError(t, err)
		saved, err := pgStore.Save(ctx, item)
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}
	failID := ids[1]

	before, err := pgStore.FindByID(ctx, failID)
	require.NoError(t, err)
	require.NotNil(t, before)

	pool := task.NewWorkerPool(task.WorkerPoolConfig{WorkerCount: 2, QueueSize: 2}, nil)
	pool.Start()
	t.Cleanup(pool.Stop)

	processor, err := service.NewItemProcessor(&saveFailingStore{ItemStore: pgStore, failID: failID}, pool,
		service.ItemProcessorConfig{}, nil)
	require.NoError(t, err)

	items, err := processor.ProcessAll(ctx)
	require.NoError(t, err)

	got := make([]int64, len(items))
	for i, item := range items {
		got[i] = item.ID
	}
	assert.Equal(t, []int64{ids[0], ids[2], ids[3]}, got)

	after, err := pgStore.FindByID(ctx, failID)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, before, after, "a failed save must leave the stored row untouched")
	assert.Equal(t, domain.ItemStatusNew, after.Status)

	for _, id := range []int64{ids[0], ids[2], ids[3]} {
		stored, err := pgStore.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, domain.ItemStatusProcessed, stored.Status, "item %d", id)
	}
}
