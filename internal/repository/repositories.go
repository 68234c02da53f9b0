package repository

import (
	"github.com/phreshly/cleanings-backend/internal/server"
)

// Repositories is a container for all repository instances, so
// service wiring receives one object.
type Repositories struct {
	Cleanings *CleaningsRepository
}

// NewRepositories constructs the repository container on the app's
// shared connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Cleanings: NewCleaningsRepository(s.DB.Pool),
	}
}
