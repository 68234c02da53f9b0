package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/phreshly/cleanings-backend/internal/errs"
)

// Validatable is implemented by request payload types that know how
// to validate themselves.
//
// Typical pattern:
//   - define a request struct with validator tags (`validate:"required"`)
//   - implement Validate() error that runs validator.Struct(req)
//   - return validator.ValidationErrors, or CustomValidationErrors for
//     rules tags cannot express (e.g. decimal bounds)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a
// field whose rule cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that
// satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate decodes the request body into payload and validates it.
//
// Decoding is strict: unknown fields fail with a 400 naming the field,
// representing "you sent something this shape does not accept" rather
// than a validation failure of a known field. Malformed JSON is also a
// 400. Tag and custom validation failures surface as a 422 with
// field-level errors.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := bindStrict(c, payload); err != nil {
		return err
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewUnprocessableEntityError(msg, fieldErrors)
	}

	return nil
}

// bindStrict decodes a JSON request body with DisallowUnknownFields.
// Bodiless requests (e.g. GET) leave payload at its zero value.
func bindStrict(c echo.Context, payload any) error {
	req := c.Request()
	if req.Body == nil || req.ContentLength == 0 {
		return nil
	}

	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		if field, ok := unknownFieldName(err); ok {
			return errs.NewBadRequestError("Request contains unknown fields", nil, []errs.FieldError{
				{Field: field, Error: "is not an accepted field"},
			})
		}

		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) {
			return errs.NewBadRequestError(
				fmt.Sprintf("Invalid value for field %q", ute.Field), nil, nil)
		}

		return errs.NewBadRequestError("Malformed JSON request body", nil, nil)
	}

	return nil
}

// unknownFieldName pulls the field name out of encoding/json's
// unknown-field error. The message format is not a stable API, but
// there is no typed error for this case.
func unknownFieldName(err error) (string, bool) {
	const marker = `json: unknown field "`
	msg := err.Error()
	if !strings.HasPrefix(msg, marker) {
		return "", false
	}
	return strings.TrimSuffix(strings.TrimPrefix(msg, marker), `"`), true
}

// validateStruct calls v.Validate() and extracts field errors if
// validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, cerr := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: cerr.Field,
				Error: cerr.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Validate() returned something unexpected; surface it as a
		// single opaque failure rather than dropping it.
		return "Validation failed", []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, verr := range validationErrors {
		field := snakeCase(verr.Field())
		var msg string

		switch verr.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if verr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", verr.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", verr.Param())
			}

		case "max":
			if verr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", verr.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", verr.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", strings.ReplaceAll(verr.Param(), " ", ", "))

		case "uuid":
			msg = "must be a valid UUID"

		default:
			if verr.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, verr.Tag(), verr.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, verr.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}

// snakeCase converts an exported field name to its JSON form:
// "CleaningType" -> "cleaning_type".
func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			// Underscore only at a lower-to-upper boundary, so
			// acronyms like "ID" stay a single word.
			if i > 0 && (runes[i-1] < 'A' || runes[i-1] > 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
