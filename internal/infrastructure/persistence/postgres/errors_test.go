package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/bucketlist/internal/domain"
)

func pgError(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, Message: "message for " + code}
}

func TestMapPgError_CodeTable(t *testing.T) {
	testCases := []struct {
		name  string
		code  string
		guard func(error) bool
	}{
		{"unique violation is conflict", pgerrcode.UniqueViolation, domain.IsConflictError},
		{"fk violation is validation", pgerrcode.ForeignKeyViolation, domain.IsValidationError},
		{"not null violation is validation", pgerrcode.NotNullViolation, domain.IsValidationError},
		{"check violation is validation", pgerrcode.CheckViolation, domain.IsValidationError},
		{"connection failure is network", pgerrcode.ConnectionFailure, domain.IsNetworkError},
		{"deadlock is database", pgerrcode.DeadlockDetected, domain.IsDatabaseError},
		{"serialization failure is database", pgerrcode.SerializationFailure, domain.IsDatabaseError},
		{"unknown code is database", "XX000", domain.IsDatabaseError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapPgError(pgError(tc.code), "Create", "item")
			assert.True(t, tc.guard(mapped), "code %s mapped to %T", tc.code, mapped)
		})
	}
}

func TestMapPgError_ClassPrefixFallback(t *testing.T) {
	// 22012 division_by_zero is not in the exact-code table; its class
	// prefix (22, data exception) still classifies it.
	mapped := mapPgError(pgError("22012"), "FindAll", "item")
	assert.True(t, domain.IsValidationError(mapped))

	// 08P01 protocol_violation falls back through the 08 prefix.
	mapped = mapPgError(pgError("08P01"), "FindAll", "item")
	assert.True(t, domain.IsNetworkError(mapped))
}

func TestMapPgError_DatabaseErrorCarriesCodeAndOperation(t *testing.T) {
	mapped := mapPgError(pgError(pgerrcode.DeadlockDetected), "Update", "item")

	var dbErr *domain.DatabaseError
	require.ErrorAs(t, mapped, &dbErr)
	assert.Equal(t, pgerrcode.DeadlockDetected, dbErr.Code)
	assert.Equal(t, "Update", dbErr.Operation)
}

func TestMapPgError_ValidationWithholdsDriverMessage(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.CheckViolation,
		Message:        `new row for relation "bucket_items" violates check constraint`,
		ConstraintName: "bucket_items_check",
		ColumnName:     "status",
	}

	mapped := mapPgError(pgErr, "Create", "item")

	var validationErr *domain.ValidationError
	require.ErrorAs(t, mapped, &validationErr)
	assert.Equal(t, "status", validationErr.Field)
	assert.Equal(t, pgerrcode.CheckViolation, validationErr.Code)
	// Schema internals stay server-side; clients see a stable message.
	assert.NotContains(t, validationErr.Message, "bucket_items")
}

func TestMapPgError_ConflictCarriesConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "api_keys_short_token_key",
		Detail:         "Key (short_token)=(abc) already exists.",
	}

	mapped := mapPgError(pgErr, "CreateKey", "api_key")

	var conflict *domain.ConflictError
	require.ErrorAs(t, mapped, &conflict)
	assert.Equal(t, "api_key", conflict.Resource)
	assert.Equal(t, "api_keys_short_token_key", conflict.ConflictingData["constraint"])
}

func TestMapPgError_ContextAndPlainErrors(t *testing.T) {
	assert.True(t, domain.IsNetworkError(mapPgError(context.DeadlineExceeded, "FindAll", "item")))
	assert.True(t, domain.IsNetworkError(mapPgError(context.Canceled, "FindAll", "item")))
	assert.True(t, domain.IsDatabaseError(mapPgError(errors.New("broken pipe"), "FindAll", "item")))
	assert.NoError(t, mapPgError(nil, "FindAll", "item"))
}
