// Package model declares the data shapes of the cleanings resource.
//
// The same logical entity appears in four presence variants used
// contextually: create (write), update (partial write), in-DB
// (stored), and public (read). Keeping distinct types per variant
// makes "field absent means no change" unambiguous on updates, while
// the stored shape encodes the invariants the database enforces.
package model

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phreshly/cleanings-backend/internal/validation"
)

// CleaningType is the closed enumeration of offered cleaning categories.
type CleaningType string

const (
	DustUp    CleaningType = "dust_up"
	SpotClean CleaningType = "spot_clean"
	FullClean CleaningType = "full_clean"
)

// DefaultCleaningType applies when a creation request omits the category.
const DefaultCleaningType = SpotClean

// Valid reports whether t is one of the recognized categories.
func (t CleaningType) Valid() bool {
	switch t {
	case DustUp, SpotClean, FullClean:
		return true
	}
	return false
}

var validate = validator.New()

// CleaningCreate is the shape required to create a cleaning listing.
// Name and price are mandatory; description and category are optional.
type CleaningCreate struct {
	Name         string           `json:"name" validate:"required"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	CleaningType CleaningType     `json:"cleaning_type" validate:"omitempty,oneof=dust_up spot_clean full_clean"`
}

// Validate implements validation.Validatable.
func (c *CleaningCreate) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	// Monetary bound: validator tags cannot compare decimal.Decimal.
	if c.Price != nil && c.Price.IsNegative() {
		return validation.CustomValidationErrors{
			{Field: "price", Message: "must not be negative"},
		}
	}

	return nil
}

// Category resolves the effective category for a creation request,
// falling back to the default when none was supplied.
func (c *CleaningCreate) Category() CleaningType {
	if c.CleaningType == "" {
		return DefaultCleaningType
	}
	return c.CleaningType
}

// CleaningUpdate is the partial-update shape. Every field is optional;
// a present field means "overwrite", an absent one means "no change
// requested" (never "unset").
type CleaningUpdate struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	CleaningType *CleaningType    `json:"cleaning_type"`
}

// Validate implements validation.Validatable.
//
// Rules apply per present field; tags cannot express "present but
// empty", so the checks run by hand. The empty update is valid and
// means "no change requested".
func (u *CleaningUpdate) Validate() error {
	var errs validation.CustomValidationErrors

	if u.Name != nil && *u.Name == "" {
		errs = append(errs, validation.CustomValidationError{
			Field: "name", Message: "must not be empty",
		})
	}
	if u.Price != nil && u.Price.IsNegative() {
		errs = append(errs, validation.CustomValidationError{
			Field: "price", Message: "must not be negative",
		})
	}
	if u.CleaningType != nil && !u.CleaningType.Valid() {
		errs = append(errs, validation.CustomValidationError{
			Field: "cleaning_type", Message: "must be one of: dust_up, spot_clean, full_clean",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsEmpty reports whether the update requests no changes at all.
// The empty update is accepted and leaves the record untouched.
func (u *CleaningUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.CleaningType == nil
}

// CleaningInDB is the stored shape. A persisted record always carries
// an identifier and concrete name, price, and category; those
// invariants are enforced at write time and mirrored by the schema's
// NOT NULL and CHECK constraints.
type CleaningInDB struct {
	ID           uuid.UUID       `validate:"required"`
	Name         string          `validate:"required"`
	Description  *string
	Price        decimal.Decimal
	CleaningType CleaningType `validate:"required,oneof=dust_up spot_clean full_clean"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the stored-shape invariants. Repositories run this
// on rows they hand out, so a broken row fails loudly instead of
// leaking a half-formed record.
func (c *CleaningInDB) Validate() error {
	return validate.Struct(c)
}

// Public projects the stored record into its client-facing shape.
func (c *CleaningInDB) Public() CleaningPublic {
	return CleaningPublic{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Price:        c.Price,
		CleaningType: c.CleaningType,
	}
}

// CleaningPublic is the shape returned to external callers.
type CleaningPublic struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CleaningType CleaningType    `json:"cleaning_type"`
}
