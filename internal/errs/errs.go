// Package errs defines custom error types and utilities.
//
// Its purpose is to give API clients meaningful, consistent error
// payloads: an HTTPError envelope for responses and FieldError for
// per-field validation failures.
package errs
