package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rezkam/bucketlist/internal/domain"
)

// The persistence layer speaks the domain error taxonomy: every driver
// error is classified here, by SQLSTATE code, before it leaves the
// package. Row-not-found is not an error case and is handled at each
// call site (pgx.ErrNoRows never reaches mapPgError).

// pgErrorClass is the taxonomy variant a SQLSTATE maps to.
type pgErrorClass int

const (
	classDatabase pgErrorClass = iota
	classValidation
	classConflict
	classNetwork
)

// pgErrorCodes maps SQLSTATE codes to taxonomy classes. Codes absent
// from the table fall back to their two-character class prefix, then to
// a plain database error.
var pgErrorCodes = map[string]pgErrorClass{
	pgerrcode.UniqueViolation: classConflict,

	pgerrcode.ForeignKeyViolation:    classValidation,
	pgerrcode.NotNullViolation:       classValidation,
	pgerrcode.CheckViolation:         classValidation,
	pgerrcode.StringDataRightTruncationDataException: classValidation,
	pgerrcode.InvalidTextRepresentation:              classValidation,
	pgerrcode.NumericValueOutOfRange:                 classValidation,
	pgerrcode.DatetimeFieldOverflow:                  classValidation,

	pgerrcode.ConnectionException:                           classNetwork,
	pgerrcode.ConnectionDoesNotExist:                        classNetwork,
	pgerrcode.ConnectionFailure:                             classNetwork,
	pgerrcode.SQLClientUnableToEstablishSQLConnection:       classNetwork,
	pgerrcode.SQLServerRejectedEstablishmentOfSQLConnection: classNetwork,

	pgerrcode.SerializationFailure: classDatabase,
	pgerrcode.DeadlockDetected:     classDatabase,
	pgerrcode.AdminShutdown:        classDatabase,
	pgerrcode.CrashShutdown:        classDatabase,
}

// pgClassPrefixes classifies by SQLSTATE class when the exact code is
// not in the table.
var pgClassPrefixes = map[string]pgErrorClass{
	"08": classNetwork,    // connection exceptions
	"22": classValidation, // data exceptions
	"23": classValidation, // integrity constraint violations
}

func classify(code string) pgErrorClass {
	if class, ok := pgErrorCodes[code]; ok {
		return class
	}
	if len(code) >= 2 {
		if class, ok := pgClassPrefixes[code[:2]]; ok {
			return class
		}
	}
	return classDatabase
}

// mapPgError converts a driver error into the matching taxonomy variant.
// operation names the repository operation for diagnostics; resource is
// the entity under operation (used for conflict messages).
func mapPgError(err error, operation, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewNetworkError(err.Error(), 0, "")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return domain.NewDatabaseError(err.Error(), "", operation)
	}

	switch classify(pgErr.Code) {
	case classConflict:
		return domain.NewConflictError(resource, pgErr.Detail, map[string]any{
			"constraint": pgErr.ConstraintName,
		})
	case classValidation:
		// Validation errors surface to clients. Driver messages describe
		// schema internals (constraint names, table layout), so the error
		// carries a stable message; the raw detail goes to the log.
		slog.Warn("constraint violation",
			"operation", operation,
			"code", pgErr.Code,
			"constraint", pgErr.ConstraintName,
			"detail", pgErr.Message)
		return domain.NewValidationError(pgErr.ColumnName, "invalid value", pgErr.Code)
	case classNetwork:
		return domain.NewNetworkError(pgErr.Message, 0, "")
	default:
		return domain.NewDatabaseError(pgErr.Message, pgErr.Code, operation)
	}
}
