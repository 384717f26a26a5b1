package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kitchen-inventory/internal/domain"
)

const storeColumns = "id, name, created_at, updated_at"

// StoreRepository defines data access for stores.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	FindByID(ctx context.Context, id int64) (*domain.Store, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Store, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, offset, limit int) (*Page[domain.Store], error)
}

type storeRepository struct {
	db DBTX
}

// NewStoreRepository creates a new instance of StoreRepository.
func NewStoreRepository(db DBTX) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	query := `
		INSERT INTO stores (name, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		store.Name,
		store.CreatedAt,
		store.UpdatedAt,
	).Scan(&store.ID)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	return nil
}

func (r *storeRepository) FindByID(ctx context.Context, id int64) (*domain.Store, error) {
	query := fmt.Sprintf("SELECT %s FROM stores WHERE id = $1", storeColumns)

	store := &domain.Store{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&store.ID,
		&store.Name,
		&store.CreatedAt,
		&store.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound(domain.KindStore, id)
		}
		return nil, fmt.Errorf("failed to find store by id: %w", err)
	}

	return store, nil
}

func (r *storeRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Store, error) {
	result := make(map[int64]*domain.Store, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := fmt.Sprintf("SELECT %s FROM stores WHERE id = ANY($1)", storeColumns)
	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find stores by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		store := &domain.Store{}
		if err := rows.Scan(&store.ID, &store.Name, &store.CreatedAt, &store.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		result[store.ID] = store
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stores: %w", err)
	}

	return result, nil
}

func (r *storeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "stores", id)
}

func (r *storeRepository) List(ctx context.Context, offset, limit int) (*Page[domain.Store], error) {
	return queryPage(ctx, r.db, "stores", storeColumns, nil, offset, limit,
		func(rows *sql.Rows) (domain.Store, error) {
			var store domain.Store
			err := rows.Scan(&store.ID, &store.Name, &store.CreatedAt, &store.UpdatedAt)
			return store, err
		})
}
