package model

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phreshly/cleanings-backend/internal/validation"
)

func ptr[T any](v T) *T { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCleaningType_Valid(t *testing.T) {
	assert.True(t, DustUp.Valid())
	assert.True(t, SpotClean.Valid())
	assert.True(t, FullClean.Valid())
	assert.False(t, CleaningType("").Valid())
	assert.False(t, CleaningType("deep_clean").Valid())
}

func TestCleaningCreate_Validate(t *testing.T) {
	tests := []struct {
		name      string
		in        CleaningCreate
		wantErr   bool
		wantField string
	}{
		{
			name: "name and price present",
			in:   CleaningCreate{Name: "Standard Clean", Price: dec("50.00")},
		},
		{
			name: "all fields present",
			in: CleaningCreate{
				Name:         "Deep Clean",
				Description:  ptr("every corner"),
				Price:        dec("120.50"),
				CleaningType: FullClean,
			},
		},
		{
			name:      "missing name",
			in:        CleaningCreate{Price: dec("50.00")},
			wantErr:   true,
			wantField: "Name",
		},
		{
			name:      "missing price",
			in:        CleaningCreate{Name: "Standard Clean"},
			wantErr:   true,
			wantField: "Price",
		},
		{
			name:      "unknown category",
			in:        CleaningCreate{Name: "x", Price: dec("1"), CleaningType: "steam_clean"},
			wantErr:   true,
			wantField: "CleaningType",
		},
		{
			name: "zero price allowed",
			in:   CleaningCreate{Name: "Freebie", Price: dec("0")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}

func TestCleaningCreate_NegativePrice(t *testing.T) {
	in := CleaningCreate{Name: "x", Price: dec("-1")}

	err := in.Validate()
	require.Error(t, err)

	var cerrs validation.CustomValidationErrors
	require.ErrorAs(t, err, &cerrs)
	require.Len(t, cerrs, 1)
	assert.Equal(t, "price", cerrs[0].Field)
	assert.Equal(t, "must not be negative", cerrs[0].Message)
}

func TestCleaningCreate_Category(t *testing.T) {
	in := CleaningCreate{Name: "x", Price: dec("1")}
	assert.Equal(t, SpotClean, in.Category(), "omitted category falls back to default")

	in.CleaningType = DustUp
	assert.Equal(t, DustUp, in.Category())
}

func TestCleaningUpdate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      CleaningUpdate
		wantErr bool
	}{
		{name: "empty update accepted", in: CleaningUpdate{}},
		{name: "name only", in: CleaningUpdate{Name: ptr("New Name")}},
		{name: "price only", in: CleaningUpdate{Price: dec("75")}},
		{
			name: "all fields",
			in: CleaningUpdate{
				Name:         ptr("n"),
				Description:  ptr("d"),
				Price:        dec("10"),
				CleaningType: ptr(FullClean),
			},
		},
		{name: "empty name rejected", in: CleaningUpdate{Name: ptr("")}, wantErr: true},
		{name: "bad category rejected", in: CleaningUpdate{CleaningType: ptr(CleaningType("nope"))}, wantErr: true},
		{name: "negative price rejected", in: CleaningUpdate{Price: dec("-0.01")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCleaningUpdate_IsEmpty(t *testing.T) {
	assert.True(t, (&CleaningUpdate{}).IsEmpty())
	assert.False(t, (&CleaningUpdate{Description: ptr("")}).IsEmpty())
}

func TestCleaningInDB_Validate(t *testing.T) {
	stored := CleaningInDB{
		ID:           uuid.New(),
		Name:         "Standard Clean",
		Price:        decimal.RequireFromString("50.00"),
		CleaningType: SpotClean,
	}
	assert.NoError(t, stored.Validate())

	missingCategory := stored
	missingCategory.CleaningType = ""
	assert.Error(t, missingCategory.Validate(), "stored records always carry a category")

	missingID := stored
	missingID.ID = uuid.Nil
	assert.Error(t, missingID.Validate())
}

func TestCleaningInDB_Public(t *testing.T) {
	stored := CleaningInDB{
		ID:           uuid.New(),
		Name:         "Standard Clean",
		Description:  ptr("weekly"),
		Price:        decimal.RequireFromString("50.00"),
		CleaningType: SpotClean,
	}

	public := stored.Public()
	assert.Equal(t, stored.ID, public.ID)
	assert.Equal(t, stored.Name, public.Name)
	assert.Equal(t, stored.Description, public.Description)
	assert.True(t, stored.Price.Equal(public.Price))
	assert.Equal(t, stored.CleaningType, public.CleaningType)
}
