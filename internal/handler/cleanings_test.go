package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phreshly/cleanings-backend/internal/config"
	"github.com/phreshly/cleanings-backend/internal/errs"
	"github.com/phreshly/cleanings-backend/internal/middleware"
	"github.com/phreshly/cleanings-backend/internal/model"
	"github.com/phreshly/cleanings-backend/internal/server"
	"github.com/phreshly/cleanings-backend/internal/service"
	"github.com/phreshly/cleanings-backend/internal/sqlerr"
)

// memStore is an in-memory service.CleaningsStore for handler tests,
// preserving insertion order like the SQL layer does.
type memStore struct {
	order []uuid.UUID
	byID  map[uuid.UUID]model.CleaningInDB
}

func newMemStore() *memStore {
	return &memStore{byID: make(map[uuid.UUID]model.CleaningInDB)}
}

func (s *memStore) Create(_ context.Context, in *model.CleaningCreate) (*model.CleaningInDB, error) {
	stored := model.CleaningInDB{
		ID:           uuid.New(),
		Name:         in.Name,
		Description:  in.Description,
		Price:        *in.Price,
		CleaningType: in.Category(),
	}
	s.byID[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return &stored, nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*model.CleaningInDB, error) {
	stored, ok := s.byID[id]
	if !ok {
		return nil, sqlerr.HandleError(pgx.ErrNoRows)
	}
	return &stored, nil
}

func (s *memStore) List(_ context.Context) ([]model.CleaningInDB, error) {
	out := make([]model.CleaningInDB, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *memStore) Update(_ context.Context, id uuid.UUID, in *model.CleaningUpdate) (*model.CleaningInDB, error) {
	stored, ok := s.byID[id]
	if !ok {
		return nil, errs.NewNotFoundError("Resource not found", nil)
	}
	if in.Name != nil {
		stored.Name = *in.Name
	}
	if in.Description != nil {
		stored.Description = in.Description
	}
	if in.Price != nil {
		stored.Price = *in.Price
	}
	if in.CleaningType != nil {
		stored.CleaningType = *in.CleaningType
	}
	s.byID[id] = stored
	return &stored, nil
}

// newTestApp wires the cleanings routes over a memStore, with the
// global error handler installed so error responses match production.
func newTestApp(t *testing.T) (*echo.Echo, *memStore) {
	t.Helper()

	log := zerolog.Nop()
	srv := &server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		},
		Logger: &log,
	}

	store := newMemStore()
	cleanings := NewCleaningsHandler(srv, service.NewCleaningsService(store))

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(srv).GlobalErrorHandler
	g := e.Group("/api/v1/cleanings")
	g.POST("", cleanings.Create())
	g.GET("", cleanings.List())
	g.GET("/:id", cleanings.Get())
	g.PUT("/:id", cleanings.Update())

	return e, store
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCleaningsCreate(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/cleanings",
		`{"name":"Standard Clean","price":50.0}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	got := decode[model.CleaningPublic](t, rec)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Standard Clean", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("50")))
	assert.Equal(t, model.SpotClean, got.CleaningType, "omitted category defaults")
}

func TestCleaningsCreate_MissingPrice(t *testing.T) {
	e, store := newTestApp(t)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/cleanings", `{"name":"Standard Clean"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	got := decode[errs.HTTPError](t, rec)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "price", got.Errors[0].Field)
	assert.Empty(t, store.order, "nothing persisted on validation failure")
}

func TestCleaningsCreate_MissingName(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/cleanings", `{"price":10}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	got := decode[errs.HTTPError](t, rec)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "name", got.Errors[0].Field)
}

func TestCleaningsCreate_InvalidCategory(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/cleanings",
		`{"name":"x","price":1,"cleaning_type":"steam_clean"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	got := decode[errs.HTTPError](t, rec)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "cleaning_type", got.Errors[0].Field)
	assert.Contains(t, got.Errors[0].Error, "must be one of")
}

func TestCleaningsCreate_UnknownField(t *testing.T) {
	e, store := newTestApp(t)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/cleanings",
		`{"name":"x","price":1,"duration_minutes":90}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	got := decode[errs.HTTPError](t, rec)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "duration_minutes", got.Errors[0].Field)
	assert.Empty(t, store.order)
}

func TestCleaningsCreate_NegativePrice(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/cleanings", `{"name":"x","price":-5}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCleaningsGet(t *testing.T) {
	e, store := newTestApp(t)

	created := decode[model.CleaningPublic](t, doJSON(t, e, http.MethodPost,
		"/api/v1/cleanings", `{"name":"Deep Clean","price":120,"cleaning_type":"full_clean"}`))

	rec := doJSON(t, e, http.MethodGet, "/api/v1/cleanings/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[model.CleaningPublic](t, rec)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, model.FullClean, got.CleaningType)
	assert.Len(t, store.order, 1)
}

func TestCleaningsGet_NotFound(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(t, e, http.MethodGet, "/api/v1/cleanings/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCleaningsGet_InvalidID(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(t, e, http.MethodGet, "/api/v1/cleanings/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	got := decode[errs.HTTPError](t, rec)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "id", got.Errors[0].Field)
}

func TestCleaningsList(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(t, e, http.MethodGet, "/api/v1/cleanings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]model.CleaningPublic](t, rec))

	doJSON(t, e, http.MethodPost, "/api/v1/cleanings", `{"name":"a","price":1}`)
	doJSON(t, e, http.MethodPost, "/api/v1/cleanings", `{"name":"b","price":2}`)

	rec = doJSON(t, e, http.MethodGet, "/api/v1/cleanings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[[]model.CleaningPublic](t, rec)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)
}

func TestCleaningsUpdate_Partial(t *testing.T) {
	e, _ := newTestApp(t)

	created := decode[model.CleaningPublic](t, doJSON(t, e, http.MethodPost,
		"/api/v1/cleanings", `{"name":"Standard Clean","price":50,"description":"weekly"}`))

	rec := doJSON(t, e, http.MethodPut, "/api/v1/cleanings/"+created.ID.String(),
		`{"price":75.5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[model.CleaningPublic](t, rec)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("75.5")))
	assert.Equal(t, "Standard Clean", got.Name, "absent fields stay unchanged")
	require.NotNil(t, got.Description)
	assert.Equal(t, "weekly", *got.Description)
}

func TestCleaningsUpdate_Empty(t *testing.T) {
	e, _ := newTestApp(t)

	created := decode[model.CleaningPublic](t, doJSON(t, e, http.MethodPost,
		"/api/v1/cleanings", `{"name":"Standard Clean","price":50}`))

	rec := doJSON(t, e, http.MethodPut, "/api/v1/cleanings/"+created.ID.String(), `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[model.CleaningPublic](t, rec)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("50")))
}

func TestCleaningsUpdate_UnknownField(t *testing.T) {
	e, _ := newTestApp(t)

	created := decode[model.CleaningPublic](t, doJSON(t, e, http.MethodPost,
		"/api/v1/cleanings", `{"name":"x","price":1}`))

	rec := doJSON(t, e, http.MethodPut, "/api/v1/cleanings/"+created.ID.String(),
		`{"surcharge":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCleaningsUpdate_NotFound(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(t, e, http.MethodPut, "/api/v1/cleanings/"+uuid.NewString(),
		`{"name":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
