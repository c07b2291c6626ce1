package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/item-api/internal/domain"
	"github.com/phrazzld/item-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// SaveFunc may be passed as the first Return value of a Save expectation to
// compute the result from the saved item.
type SaveFunc func(ctx context.Context, item *domain.Item) (*domain.Item, error)

// EchoSave returns a copy of the item it was given, like a store that
// accepts every write.
var EchoSave SaveFunc = func(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	return item.Clone(), nil
}

// MockItemStore is a mock of store.ItemStore interface for use with testify/mock
type MockItemStore struct {
	mock.Mock
}

var _ store.ItemStore = (*MockItemStore)(nil)

// FindAll is a mock implementation of store.ItemStore.FindAll
func (m *MockItemStore) FindAll(ctx context.Context) ([]*domain.Item, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]*domain.Item); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByID is a mock implementation of store.ItemStore.FindByID
func (m *MockItemStore) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*domain.Item); ok {
		return item.Clone(), args.Error(1)
	}
	return nil, args.Error(1)
}

// Save is a mock implementation of store.ItemStore.Save
func (m *MockItemStore) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	args := m.Called(ctx, item)
	switch ret := args.Get(0).(type) {
	case SaveFunc:
		return ret(ctx, item)
	case *domain.Item:
		return ret, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.ItemStore.Delete
func (m *MockItemStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FindAllIDs is a mock implementation of store.ItemStore.FindAllIDs
func (m *MockItemStore) FindAllIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if ids, ok := args.Get(0).([]int64); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.ItemStore.WithTx
func (m *MockItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	args := m.Called(tx)
	if ret, ok := args.Get(0).(store.ItemStore); ok {
		return ret
	}
	return m
}
