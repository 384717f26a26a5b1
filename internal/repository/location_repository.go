package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kitchen-inventory/internal/domain"
)

const locationColumns = "id, name, created_at, updated_at"

// LocationRepository defines data access for kitchen locations.
type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) error
	FindByID(ctx context.Context, id int64) (*domain.Location, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Location, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, offset, limit int) (*Page[domain.Location], error)
}

type locationRepository struct {
	db DBTX
}

// NewLocationRepository creates a new instance of LocationRepository.
func NewLocationRepository(db DBTX) LocationRepository {
	return &locationRepository{db: db}
}

// Create inserts a location and fills in its server-assigned id.
func (r *locationRepository) Create(ctx context.Context, location *domain.Location) error {
	query := `
		INSERT INTO locations (name, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		location.Name,
		location.CreatedAt,
		location.UpdatedAt,
	).Scan(&location.ID)
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	return nil
}

func (r *locationRepository) FindByID(ctx context.Context, id int64) (*domain.Location, error) {
	query := fmt.Sprintf("SELECT %s FROM locations WHERE id = $1", locationColumns)

	location := &domain.Location{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&location.ID,
		&location.Name,
		&location.CreatedAt,
		&location.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound(domain.KindLocation, id)
		}
		return nil, fmt.Errorf("failed to find location by id: %w", err)
	}

	return location, nil
}

// FindByIDs loads a batch of locations keyed by id. Unknown ids are
// simply absent from the result map.
func (r *locationRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Location, error) {
	result := make(map[int64]*domain.Location, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := fmt.Sprintf("SELECT %s FROM locations WHERE id = ANY($1)", locationColumns)
	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find locations by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		location := &domain.Location{}
		if err := rows.Scan(&location.ID, &location.Name, &location.CreatedAt, &location.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		result[location.ID] = location
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return result, nil
}

func (r *locationRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "locations", id)
}

func (r *locationRepository) List(ctx context.Context, offset, limit int) (*Page[domain.Location], error) {
	return queryPage(ctx, r.db, "locations", locationColumns, nil, offset, limit,
		func(rows *sql.Rows) (domain.Location, error) {
			var location domain.Location
			err := rows.Scan(&location.ID, &location.Name, &location.CreatedAt, &location.UpdatedAt)
			return location, err
		})
}
