// Package pgerr translates low-level postgres driver errors into the domain
// error types the workflow core classifies on. Repositories pass every write
// error through Translate so handlers can branch on errs sentinels instead of
// SQLSTATE codes.
package pgerr

import (
	"errors"

	"freight/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the workflow core cares about.
const (
	CodeUniqueViolation     = "23505" // unique_violation
	CodeForeignKeyViolation = "23503" // foreign_key_violation
)

// Translate maps driver-level constraint violations to domain errors.
// Unique violations become duplicate errors (number reservation, vehicle
// exclusivity); foreign key violations become referential integrity errors.
// Anything else passes through unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case CodeUniqueViolation:
			return errs.NewDuplicateValueError(pgError.ConstraintName, err)
		case CodeForeignKeyViolation:
			return errs.NewReferentialIntegrityError(pgError.ConstraintName, err)
		}
		return err
	}

	// gorm's translated error when the dialector has error translation on.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewDuplicateValueError("", err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errs.NewReferentialIntegrityError("", err)
	}

	return err
}
