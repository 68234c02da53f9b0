package apptest_test

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phreshly/cleanings-backend/internal/apptest"
	"github.com/phreshly/cleanings-backend/internal/database"
	"github.com/phreshly/cleanings-backend/internal/errs"
	"github.com/phreshly/cleanings-backend/internal/model"
)

func TestMain(m *testing.M) {
	os.Exit(apptest.Run(m))
}

func TestCreateCleaning(t *testing.T) {
	srv, e := apptest.App(t)
	client := apptest.NewClient(t, e)

	var got model.CleaningPublic
	status := client.Post(t, "/api/v1/cleanings", map[string]any{
		"name":  "Standard Clean",
		"price": 50.0,
	}, &got)

	require.Equal(t, http.StatusCreated, status)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Standard Clean", got.Name)
	assert.Nil(t, got.Description)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("50")))
	assert.Equal(t, model.SpotClean, got.CleaningType, "category defaults when omitted")

	// The row really is in the database.
	var stored string
	require.NoError(t, apptest.DB(srv).QueryRow(context.Background(),
		"select cleaning_type from cleanings where id = $1", got.ID).Scan(&stored))
	assert.Equal(t, "spot_clean", stored)
}

func TestCreateCleaning_MissingPrice(t *testing.T) {
	srv, e := apptest.App(t)
	client := apptest.NewClient(t, e)

	var before int
	require.NoError(t, apptest.DB(srv).QueryRow(context.Background(),
		"select count(*) from cleanings").Scan(&before))

	var httpErr errs.HTTPError
	status := client.Post(t, "/api/v1/cleanings", map[string]any{
		"name": "Standard Clean",
	}, &httpErr)

	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "price", httpErr.Errors[0].Field)

	var after int
	require.NoError(t, apptest.DB(srv).QueryRow(context.Background(),
		"select count(*) from cleanings").Scan(&after))
	assert.Equal(t, before, after, "nothing persisted on validation failure")
}

func TestCreateCleaning_UnknownField(t *testing.T) {
	_, e := apptest.App(t)
	client := apptest.NewClient(t, e)

	var httpErr errs.HTTPError
	status := client.Post(t, "/api/v1/cleanings", map[string]any{
		"name":             "Standard Clean",
		"price":            50.0,
		"duration_minutes": 90,
	}, &httpErr)

	require.Equal(t, http.StatusBadRequest, status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "duration_minutes", httpErr.Errors[0].Field)
}

func TestGetCleaning(t *testing.T) {
	_, e := apptest.App(t)
	client := apptest.NewClient(t, e)

	var created model.CleaningPublic
	require.Equal(t, http.StatusCreated, client.Post(t, "/api/v1/cleanings", map[string]any{
		"name":          "Deep Clean",
		"description":   "top to bottom",
		"price":         120.5,
		"cleaning_type": "full_clean",
	}, &created))

	var got model.CleaningPublic
	status := client.Get(t, "/api/v1/cleanings/"+created.ID.String(), &got)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, model.FullClean, got.CleaningType)
	require.NotNil(t, got.Description)
	assert.Equal(t, "top to bottom", *got.Description)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("120.5")))
}

func TestGetCleaning_NotFound(t *testing.T) {
	_, e := apptest.App(t)
	client := apptest.NewClient(t, e)

	var httpErr errs.HTTPError
	status := client.Get(t, "/api/v1/cleanings/"+uuid.NewString(), &httpErr)

	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestListCleanings(t *testing.T) {
	_, e := apptest.App(t)
	client := apptest.NewClient(t, e)

	name := "Listing " + uuid.NewString()
	var created model.CleaningPublic
	require.Equal(t, http.StatusCreated, client.Post(t, "/api/v1/cleanings", map[string]any{
		"name":  name,
		"price": 10,
	}, &created))

	var listed []model.CleaningPublic
	status := client.Get(t, "/api/v1/cleanings", &listed)
	require.Equal(t, http.StatusOK, status)

	found := false
	for _, item := range listed {
		if item.ID == created.ID {
			found = true
			assert.Equal(t, name, item.Name)
		}
	}
	assert.True(t, found, "created listing appears in the collection")
}

func TestUpdateCleaning_Partial(t *testing.T) {
	_, e := apptest.App(t)
	client := apptest.NewClient(t, e)

	var created model.CleaningPublic
	require.Equal(t, http.StatusCreated, client.Post(t, "/api/v1/cleanings", map[string]any{
		"name":        "Standard Clean",
		"description": "weekly",
		"price":       50,
	}, &created))

	var updated model.CleaningPublic
	status := client.Put(t, "/api/v1/cleanings/"+created.ID.String(), map[string]any{
		"price": 75.5,
	}, &updated)

	require.Equal(t, http.StatusOK, status)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("75.5")))
	assert.Equal(t, "Standard Clean", updated.Name, "absent fields stay unchanged")
	require.NotNil(t, updated.Description)
	assert.Equal(t, "weekly", *updated.Description)
	assert.Equal(t, model.SpotClean, updated.CleaningType)
}

func TestUpdateCleaning_Empty(t *testing.T) {
	_, e := apptest.App(t)
	client := apptest.NewClient(t, e)

	var created model.CleaningPublic
	require.Equal(t, http.StatusCreated, client.Post(t, "/api/v1/cleanings", map[string]any{
		"name":  "Standard Clean",
		"price": 50,
	}, &created))

	var updated model.CleaningPublic
	status := client.Put(t, "/api/v1/cleanings/"+created.ID.String(), map[string]any{}, &updated)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Name, updated.Name)
	assert.True(t, updated.Price.Equal(created.Price))
}

func TestUpdateCleaning_InvalidCategory(t *testing.T) {
	_, e := apptest.App(t)
	client := apptest.NewClient(t, e)

	var created model.CleaningPublic
	require.Equal(t, http.StatusCreated, client.Post(t, "/api/v1/cleanings", map[string]any{
		"name":  "Standard Clean",
		"price": 50,
	}, &created))

	var httpErr errs.HTTPError
	status := client.Put(t, "/api/v1/cleanings/"+created.ID.String(), map[string]any{
		"cleaning_type": "steam_clean",
	}, &httpErr)

	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "cleaning_type", httpErr.Errors[0].Field)
}

func TestStatus(t *testing.T) {
	_, e := apptest.App(t)
	client := apptest.NewClient(t, e)

	var body map[string]any
	status := client.Get(t, "/status", &body)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	checks, ok := body["checks"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, checks, "database")
}

// TestMigrationRoundTrip exercises the down-to-baseline and re-apply
// paths directly. It restores the fully migrated state before
// returning so the remaining tests keep their schema.
func TestMigrationRoundTrip(t *testing.T) {
	cfg := apptest.Config(t)
	log := zerolog.Nop()
	ctx := context.Background()

	restore := func() {
		require.NoError(t, database.Migrate(ctx, &log, cfg))
	}
	defer restore()

	require.NoError(t, database.MigrateToBaseline(ctx, &log, cfg))
	// Reverting an already-empty schema is a no-op, not an error.
	require.NoError(t, database.MigrateToBaseline(ctx, &log, cfg))

	require.NoError(t, database.Migrate(ctx, &log, cfg))
	// Migrating an up-to-date schema is also a no-op.
	require.NoError(t, database.Migrate(ctx, &log, cfg))

	srv, _ := apptest.App(t)
	var version int32
	require.NoError(t, apptest.DB(srv).QueryRow(ctx,
		"select version from schema_version").Scan(&version))
	assert.Equal(t, int32(2), version)
}
