package store

import (
	"errors"

	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapPgError translates driver errors into the usecase taxonomy.
// Serialization failures and deadlocks are transient; the ledger retries
// them once.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return usecase.ErrTxConflict
		case "23505": // unique_violation
			return usecase.ErrAlreadyExists
		}
	}
	return err
}
