package middleware

import (
	"github.com/phreshly/cleanings-backend/internal/server"
)

// Middlewares groups all middleware components used by the HTTP
// server, so routing setup receives one wired object instead of
// constructing middleware in place.
type Middlewares struct {
	// Global holds middleware applied across the whole API: CORS,
	// request logging, recovery, secure headers, and the global error
	// handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped
	// logger (request_id, method, path, ip).
	ContextEnhancer *ContextEnhancer
}

// NewMiddlewares constructs all middleware components from the
// application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
	}
}
