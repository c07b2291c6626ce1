package postgres

import (
	"database/sql"
	"fmt"

	"github.com/phrazzld/item-api/internal/store"
)

// wrapError attaches the failing item operation to a driver error. The
// driver error stays reachable through errors.Is/errors.As.
func wrapError(operation, message string, err error) error {
	return store.NewStoreError("item", operation, message, err)
}

// CheckRowsAffected returns store.ErrItemNotFound when result reports no affected rows.
func CheckRowsAffected(result sql.Result) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.ErrItemNotFound
	}

	return nil
}
