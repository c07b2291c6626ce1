package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/item-api/internal/domain"
	"github.com/phrazzld/item-api/internal/platform/logger"
	"github.com/phrazzld/item-api/internal/store"
)

// PostgresItemStore implements the store.ItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the ItemStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

const itemColumns = `id, name, description, status, email`

// FindAll implements store.ItemStore.FindAll
func (s *PostgresItemStore) FindAll(ctx context.Context) ([]*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		log.Error("failed to query items", slog.String("error", err.Error()))
		return nil, wrapError("find_all", "failed to query items", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	items := []*domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			log.Error("failed to scan item row", slog.String("error", err.Error()))
			return nil, wrapError("find_all", "failed to scan row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating item rows", slog.String("error", err.Error()))
		return nil, wrapError("find_all", "failed to iterate rows", err)
	}

	log.Debug("items retrieved", slog.Int("count", len(items)))
	return items, nil
}

// FindByID implements store.ItemStore.FindByID
// A missing item is reported as (nil, nil), not as an error.
func (s *PostgresItemStore) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving item by ID", slog.Int64("item_id", id))

	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("item not found", slog.Int64("item_id", id))
			return nil, nil
		}
		log.Error("failed to get item by ID",
			slog.String("error", err.Error()),
			slog.Int64("item_id", id))
		return nil, wrapError("find_by_id", "failed to query item", err)
	}

	return item, nil
}

// Save implements store.ItemStore.Save
// Items with a zero ID are inserted and receive a store-assigned ID; all
// others are updated in place. The caller's item is never modified.
func (s *PostgresItemStore) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if item == nil {
		return nil, fmt.Errorf("%w: nil item", store.ErrInvalidEntity)
	}

	if err := item.Validate(); err != nil {
		log.Warn("item validation failed during save",
			slog.String("error", err.Error()),
			slog.Int64("item_id", item.ID))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if item.ID == 0 {
		return s.insert(ctx, log, item)
	}
	return s.update(ctx, log, item)
}

func (s *PostgresItemStore) insert(ctx context.Context, log *slog.Logger, item *domain.Item) (*domain.Item, error) {
	saved := item.Clone()

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO items (name, description, status, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, item.Name, item.Description, string(item.Status), item.Email).Scan(&saved.ID)
	if err != nil {
		log.Error("failed to insert item", slog.String("error", err.Error()))
		return nil, wrapError("save", "failed to insert item", err)
	}

	log.Info("item created", slog.Int64("item_id", saved.ID))
	return saved, nil
}

func (s *PostgresItemStore) update(ctx context.Context, log *slog.Logger, item *domain.Item) (*domain.Item, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE items
		SET name = $1, description = $2, status = $3, email = $4
		WHERE id = $5
	`, item.Name, item.Description, string(item.Status), item.Email, item.ID)
	if err != nil {
		log.Error("failed to update item",
			slog.String("error", err.Error()),
			slog.Int64("item_id", item.ID))
		return nil, wrapError("save", "failed to update item", err)
	}

	if err := CheckRowsAffected(result); err != nil {
		log.Debug("item not found for update", slog.Int64("item_id", item.ID))
		return nil, err
	}

	log.Debug("item updated",
		slog.Int64("item_id", item.ID),
		slog.String("status", string(item.Status)))
	return item.Clone(), nil
}

// Delete implements store.ItemStore.Delete
func (s *PostgresItemStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete item",
			slog.String("error", err.Error()),
			slog.Int64("item_id", id))
		return wrapError("delete", "failed to delete item", err)
	}

	if err := CheckRowsAffected(result); err != nil {
		return err
	}

	log.Info("item deleted", slog.Int64("item_id", id))
	return nil
}

// FindAllIDs implements store.ItemStore.FindAllIDs
func (s *PostgresItemStore) FindAllIDs(ctx context.Context) ([]int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id FROM items ORDER BY id`)
	if err != nil {
		log.Error("failed to query item IDs", slog.String("error", err.Error()))
		return nil, wrapError("find_all_ids", "failed to query item IDs", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, wrapError("find_all_ids", "failed to scan row", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("find_all_ids", "failed to iterate rows", err)
	}

	return ids, nil
}

// WithTx implements store.ItemStore.WithTx
func (s *PostgresItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &PostgresItemStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	var status string

	if err := row.Scan(&item.ID, &item.Name, &item.Description, &status, &item.Email); err != nil {
		return nil, err
	}
	item.Status = domain.ItemStatus(status)

	return &item, nil
}
