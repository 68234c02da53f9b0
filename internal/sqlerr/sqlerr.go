// Package sqlerr handles database driver errors.
//
// It parses SQLSTATE codes from the PostgreSQL driver and converts
// them into user-facing messages, e.g. turning a not-null violation
// on cleanings.price into "The Price is required".
package sqlerr
