package store

import (
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells whether a failed statement may succeed when the
// client tries again later. Retryable errors surface as
// [ErrTemporarilyUnavailable].
type ErrorClassification int

const (
	// NonRetryable is the default for constraint, syntax and data errors and
	// for anything that is not a PostgreSQL error.
	NonRetryable ErrorClassification = iota

	// Retryable marks lost connections, rolled back transactions and a
	// server that is starting up or out of resources.
	Retryable
)

// retryableClasses are the SQLSTATE classes (first two characters) that are
// always transient.
var retryableClasses = map[string]struct{}{
	"08": {}, // connection exception
	"40": {}, // transaction rollback, incl. serialization failure and deadlock
	"53": {}, // insufficient resources, incl. too many connections
}

// retryableCodes are transient codes from otherwise permanent classes.
var retryableCodes = map[string]struct{}{
	pgerrcode.AdminShutdown:    {},
	pgerrcode.CrashShutdown:    {},
	pgerrcode.CannotConnectNow: {},
}

// PostgresErrorClassifier implements [ErrorClassificator] for the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify reports whether err is transient. A dropped pooled connection
// ([driver.ErrBadConn]) is retryable as well.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}
	if errors.Is(err, driver.ErrBadConn) {
		return Retryable
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}
	return ClassifyPgError(pgErr)
}

// ClassifyPgError maps a SQLSTATE to its classification.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	if _, ok := retryableCodes[pgErr.Code]; ok {
		return Retryable
	}
	if len(pgErr.Code) >= 2 {
		if _, ok := retryableClasses[pgErr.Code[:2]]; ok {
			return Retryable
		}
	}
	return NonRetryable
}

// postgresError returns the SQLSTATE of err, or "" for non-PostgreSQL errors.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// postgresConstraint returns the violated constraint name of err, if any.
func postgresConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// isUniqueViolation reports whether err violates the named unique constraint.
func isUniqueViolation(err error, constraint string) bool {
	return postgresError(err) == pgerrcode.UniqueViolation &&
		strings.EqualFold(postgresConstraint(err), constraint)
}
