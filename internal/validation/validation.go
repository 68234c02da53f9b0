// Package validation contains the logic for validating request data.
//
// It uses the `validator` library to enforce rules defined in struct
// tags (like required fields or closed enumerations), binds JSON
// strictly so unknown fields are rejected, and extracts validation
// errors into a format the client can understand.
package validation
