package handler

import (
	"github.com/phreshly/cleanings-backend/internal/server"
	"github.com/phreshly/cleanings-backend/internal/service"
)

// Handlers is a container that groups all HTTP handlers, keeping
// router setup to a single wired object.
type Handlers struct {
	Health    *HealthHandler
	Cleanings *CleaningsHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		Cleanings: NewCleaningsHandler(s, services.Cleanings),
	}
}
