package errs

import "strings"

// FieldError represents a field-level validation error.
//
//	{ "field": "price", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error envelope returned to API clients.
//
// It implements the error interface and serializes directly to JSON.
//
//   - Code: machine-friendly error code (e.g. "UNPROCESSABLE_ENTITY")
//   - Message: human-friendly message
//   - Status: HTTP status code
//   - Errors: per-field validation errors, when applicable
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// MakeUpperCaseWithUnderscores turns an HTTP status text into a
// machine code: "Unprocessable Entity" -> "UNPROCESSABLE_ENTITY".
func MakeUpperCaseWithUnderscores(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", "_"))
}
