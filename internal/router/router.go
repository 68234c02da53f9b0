// Package router initializes the HTTP router (using echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/phreshly/cleanings-backend/internal/handler"
	"github.com/phreshly/cleanings-backend/internal/middleware"
	"github.com/phreshly/cleanings-backend/internal/server"
)

// New builds the echo router with the full middleware chain and all
// route groups registered. The returned echo.Echo implements
// http.Handler and is handed to server.SetupHTTPServer.
func New(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	// Order matters: recovery first, request ID before the context
	// enhancer that logs it, request logger after both.
	e.Use(mw.Global.Recover())
	e.Use(mw.Global.Secure())
	e.Use(mw.Global.CORS())
	e.Use(middleware.RequestID())
	e.Use(mw.ContextEnhancer.EnhanceContext())
	e.Use(mw.Global.RequestLogger())

	registerSystemRoutes(e, h)
	registerCleaningRoutes(e, h)

	return e
}
