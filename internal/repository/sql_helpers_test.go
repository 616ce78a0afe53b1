package repository

import (
	"errors"
	"testing"

	relay_errors "relay-chat/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func Test_StoreError_Maps_To_Sentinel(t *testing.T) {
	req := require.New(t)

	cause := errors.New("connection refused")
	err := storeError("save user", cause)

	req.ErrorIs(err, relay_errors.ErrStoreUnavailable)
	req.ErrorIs(err, cause)
	req.Contains(err.Error(), "save user")
}

func Test_IsUniqueViolation(t *testing.T) {
	req := require.New(t)

	req.True(isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	req.False(isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	req.False(isUniqueViolation(errors.New("not a pg error")))
}
