package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/item-api/internal/domain"
)

// ItemStore defines the interface for item data persistence.
// Every method may be slow and may fail.
type ItemStore interface {
	// FindAll returns every item ordered by ID.
	FindAll(ctx context.Context) ([]*domain.Item, error)

	// FindByID retrieves an item by its ID.
	// Returns (nil, nil) if the item does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Item, error)

	// Save inserts the item when its ID is zero, otherwise updates it.
	// Returns the persisted item, including the store-assigned ID.
	// Returns ErrItemNotFound when updating an item that does not exist.
	Save(ctx context.Context, item *domain.Item) (*domain.Item, error)

	// Delete removes an item by ID.
	// Returns ErrItemNotFound if the item does not exist.
	Delete(ctx context.Context, id int64) error

	// FindAllIDs returns the IDs of all items in ascending order.
	FindAllIDs(ctx context.Context) ([]int64, error)

	// WithTx returns a new ItemStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ItemStore
}
