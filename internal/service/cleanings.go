package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/phreshly/cleanings-backend/internal/model"
)

// CleaningsStore is the persistence surface the cleanings service
// depends on. repository.CleaningsRepository implements it; tests may
// substitute an in-memory store.
type CleaningsStore interface {
	Create(ctx context.Context, in *model.CleaningCreate) (*model.CleaningInDB, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.CleaningInDB, error)
	List(ctx context.Context) ([]model.CleaningInDB, error)
	Update(ctx context.Context, id uuid.UUID, in *model.CleaningUpdate) (*model.CleaningInDB, error)
}

// CleaningsService owns the cleanings business operations.
type CleaningsService struct {
	store CleaningsStore
}

// NewCleaningsService constructs a CleaningsService over a store.
func NewCleaningsService(store CleaningsStore) *CleaningsService {
	return &CleaningsService{store: store}
}

// Create persists a new listing from the creation shape and returns
// its public projection.
func (s *CleaningsService) Create(ctx context.Context, in *model.CleaningCreate) (*model.CleaningPublic, error) {
	stored, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	public := stored.Public()
	return &public, nil
}

// Get fetches one listing by ID.
func (s *CleaningsService) Get(ctx context.Context, id uuid.UUID) (*model.CleaningPublic, error) {
	stored, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	public := stored.Public()
	return &public, nil
}

// List returns the public projection of every listing.
func (s *CleaningsService) List(ctx context.Context) ([]model.CleaningPublic, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	publics := make([]model.CleaningPublic, 0, len(stored))
	for i := range stored {
		publics = append(publics, stored[i].Public())
	}
	return publics, nil
}

// Update applies a partial update. The empty update requests no
// changes and returns the record as stored.
func (s *CleaningsService) Update(ctx context.Context, id uuid.UUID, in *model.CleaningUpdate) (*model.CleaningPublic, error) {
	if in.IsEmpty() {
		return s.Get(ctx, id)
	}

	stored, err := s.store.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	public := stored.Public()
	return &public, nil
}
