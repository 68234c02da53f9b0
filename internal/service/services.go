package service

import (
	"github.com/phreshly/cleanings-backend/internal/repository"
	"github.com/phreshly/cleanings-backend/internal/server"
)

// Services is a container for all business-layer services.
type Services struct {
	Cleanings *CleaningsService
}

// NewServices constructs the service container over the repositories.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Cleanings: NewCleaningsService(repos.Cleanings),
	}, nil
}
