package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/phreshly/cleanings-backend/internal/errs"
	"github.com/phreshly/cleanings-backend/internal/model"
	"github.com/phreshly/cleanings-backend/internal/server"
	"github.com/phreshly/cleanings-backend/internal/service"
)

// CleaningsHandler exposes the cleanings resource over HTTP.
type CleaningsHandler struct {
	Handler
	cleanings *service.CleaningsService
}

// NewCleaningsHandler constructs a CleaningsHandler.
func NewCleaningsHandler(s *server.Server, cleanings *service.CleaningsService) *CleaningsHandler {
	return &CleaningsHandler{
		Handler:   NewHandler(s),
		cleanings: cleanings,
	}
}

// Create handles POST /cleanings: 201 with the public shape.
func (h *CleaningsHandler) Create() echo.HandlerFunc {
	return Handle(
		func(c echo.Context, req *model.CleaningCreate) (*model.CleaningPublic, error) {
			return h.cleanings.Create(c.Request().Context(), req)
		},
		http.StatusCreated,
		func() *model.CleaningCreate { return &model.CleaningCreate{} },
	)
}

// Get handles GET /cleanings/:id: 200 with the public shape, 404 when
// the listing does not exist.
func (h *CleaningsHandler) Get() echo.HandlerFunc {
	return Handle(
		func(c echo.Context, _ *EmptyRequest) (*model.CleaningPublic, error) {
			id, err := pathID(c)
			if err != nil {
				return nil, err
			}
			return h.cleanings.Get(c.Request().Context(), id)
		},
		http.StatusOK,
		func() *EmptyRequest { return &EmptyRequest{} },
	)
}

// List handles GET /cleanings: 200 with an array of public shapes.
func (h *CleaningsHandler) List() echo.HandlerFunc {
	return Handle(
		func(c echo.Context, _ *EmptyRequest) ([]model.CleaningPublic, error) {
			return h.cleanings.List(c.Request().Context())
		},
		http.StatusOK,
		func() *EmptyRequest { return &EmptyRequest{} },
	)
}

// Update handles PUT /cleanings/:id: a partial update where present
// fields overwrite and absent fields are left unchanged.
func (h *CleaningsHandler) Update() echo.HandlerFunc {
	return Handle(
		func(c echo.Context, req *model.CleaningUpdate) (*model.CleaningPublic, error) {
			id, err := pathID(c)
			if err != nil {
				return nil, err
			}
			return h.cleanings.Update(c.Request().Context(), id, req)
		},
		http.StatusOK,
		func() *model.CleaningUpdate { return &model.CleaningUpdate{} },
	)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("Invalid listing ID", nil, []errs.FieldError{
			{Field: "id", Error: "must be a valid UUID"},
		})
	}
	return id, nil
}
