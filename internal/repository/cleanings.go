package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phreshly/cleanings-backend/internal/model"
	"github.com/phreshly/cleanings-backend/internal/sqlerr"
)

// CleaningsRepository persists cleaning listings in the cleanings
// table.
type CleaningsRepository struct {
	pool *pgxpool.Pool
}

// NewCleaningsRepository constructs a CleaningsRepository on the
// shared connection pool.
func NewCleaningsRepository(pool *pgxpool.Pool) *CleaningsRepository {
	return &CleaningsRepository{pool: pool}
}

const cleaningColumns = "id, name, description, price, cleaning_type, created_at, updated_at"

// Create inserts a new listing and returns the stored record.
// Constraint violations come back as sqlerr-mapped client errors.
func (r *CleaningsRepository) Create(ctx context.Context, in *model.CleaningCreate) (*model.CleaningInDB, error) {
	query := fmt.Sprintf(`
		insert into cleanings (name, description, price, cleaning_type)
		values ($1, $2, $3, $4)
		returning %s`, cleaningColumns)

	row := r.pool.QueryRow(ctx, query, in.Name, in.Description, in.Price, in.Category())

	cleaning, err := scanCleaning(row)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return cleaning, nil
}

// GetByID fetches a single listing. A missing row maps to a 404
// through sqlerr.
func (r *CleaningsRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CleaningInDB, error) {
	query := fmt.Sprintf("select %s from cleanings where id = $1", cleaningColumns)

	row := r.pool.QueryRow(ctx, query, id)

	cleaning, err := scanCleaning(row)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return cleaning, nil
}

// List returns all listings, oldest first.
func (r *CleaningsRepository) List(ctx context.Context) ([]model.CleaningInDB, error) {
	query := fmt.Sprintf("select %s from cleanings order by created_at, id", cleaningColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	cleanings := []model.CleaningInDB{}
	for rows.Next() {
		cleaning, err := scanCleaning(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		cleanings = append(cleanings, *cleaning)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return cleanings, nil
}

// Update overwrites exactly the fields present in the update shape;
// absent fields keep their stored value via COALESCE. The caller
// guarantees the update is non-empty.
func (r *CleaningsRepository) Update(ctx context.Context, id uuid.UUID, in *model.CleaningUpdate) (*model.CleaningInDB, error) {
	query := fmt.Sprintf(`
		update cleanings set
			name = coalesce($2, name),
			description = coalesce($3, description),
			price = coalesce($4, price),
			cleaning_type = coalesce($5, cleaning_type),
			updated_at = now()
		where id = $1
		returning %s`, cleaningColumns)

	row := r.pool.QueryRow(ctx, query, id, in.Name, in.Description, in.Price, in.CleaningType)

	cleaning, err := scanCleaning(row)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return cleaning, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCleaning scans one cleanings row into the stored shape and
// checks its invariants before handing it out.
func scanCleaning(row rowScanner) (*model.CleaningInDB, error) {
	var c model.CleaningInDB
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Price,
		&c.CleaningType,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("stored cleaning %s violates invariants: %w", c.ID, err)
	}

	return &c, nil
}
