package errs

import (
	"net/http"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// The optional code overrides the default "BAD_REQUEST" machine code,
// which repositories use for constraint-derived codes like
// "CLEANING_INVALID".
func NewBadRequestError(message string, code *string, fieldErrors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  fieldErrors,
	}
}

// NewUnprocessableEntityError creates a 422 HTTPError carrying
// field-level validation errors. This is the shape every model
// validation failure is translated into at the handler boundary.
func NewUnprocessableEntityError(message string, fieldErrors []FieldError) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnprocessableEntity)),
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewInternalServerError creates a generic 500 HTTPError.
// The real cause stays in logs; clients get the status text only.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}
