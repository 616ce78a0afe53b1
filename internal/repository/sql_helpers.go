package repository

import (
	"errors"
	"fmt"

	relay_errors "relay-chat/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// storeError maps a failed store round-trip onto the StoreError sentinel
// while keeping the driver error in the chain.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, relay_errors.ErrStoreUnavailable, err)
}
