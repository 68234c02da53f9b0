package router

import (
	"github.com/labstack/echo/v4"

	"github.com/phreshly/cleanings-backend/internal/handler"
)

// registerCleaningRoutes registers the cleanings resource under
// /api/v1.
func registerCleaningRoutes(r *echo.Echo, h *handler.Handlers) {
	g := r.Group("/api/v1/cleanings")

	g.POST("", h.Cleanings.Create())
	g.GET("", h.Cleanings.List())
	g.GET("/:id", h.Cleanings.Get())
	g.PUT("/:id", h.Cleanings.Update())
}
