package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/phreshly/cleanings-backend/internal/middleware"
	"github.com/phreshly/cleanings-backend/internal/server"
	"github.com/phreshly/cleanings-backend/internal/validation"
)

// Handler is the base type holding shared application dependencies.
// Concrete handlers embed it to reach config, logger and the DB
// through *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returned by value: the struct
// only contains a pointer, so copies share the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint function that receives a validated
// request payload and returns a response or an error. Req is a
// pointer type so binding can populate it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// Handle wraps a typed endpoint in the shared pipeline:
//
//   - allocate a fresh request via newReq (payloads must not be
//     shared between concurrent requests)
//   - strict bind + validate
//   - execute the handler
//   - log validation/handler/total durations
//   - write the JSON response with the given success status
//
// Errors propagate to the global error handler, which owns response
// formatting for failures.
func Handle[Req validation.Validatable, Res any](
	fn HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		logger := middleware.GetLogger(c)

		req := newReq()

		validationStart := time.Now()
		if err := validation.BindAndValidate(c, req); err != nil {
			logger.Warn().
				Err(err).
				Dur("validation_duration", time.Since(validationStart)).
				Msg("request validation failed")
			return err
		}
		validationDuration := time.Since(validationStart)

		handlerStart := time.Now()
		result, err := fn(c, req)
		handlerDuration := time.Since(handlerStart)

		if err != nil {
			logger.Error().
				Err(err).
				Dur("handler_duration", handlerDuration).
				Dur("total_duration", time.Since(start)).
				Msg("handler execution failed")
			return err
		}

		logger.Debug().
			Dur("validation_duration", validationDuration).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("request completed")

		return c.JSON(status, result)
	}
}

// EmptyRequest is the payload type for endpoints without a request
// body.
type EmptyRequest struct{}

// Validate implements validation.Validatable.
func (*EmptyRequest) Validate() error { return nil }
