package sqlerr

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a friendly category for SQLSTATE error classes the
// application cares about. Everything else maps to Other.
type Code int

const (
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
)

// MapCode maps a PostgreSQL SQLSTATE to a Code.
//
// SQLSTATEs of interest (integrity constraint class 23xxx):
//
//	23502 not_null_violation
//	23503 foreign_key_violation
//	23505 unique_violation
//	23514 check_violation
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// Error is a structured view of a PostgreSQL server error.
// It keeps the original driver error for Unwrap.
type Error struct {
	Code           Code
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sqlstate %s: %s", e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// ConvertPgError converts a raw pgconn.PgError into *Error, mapping
// the SQLSTATE into the Code enum and carrying constraint metadata.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}
