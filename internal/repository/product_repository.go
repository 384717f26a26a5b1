package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kitchen-inventory/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

const productColumns = "id, name, brand, created_at, updated_at"

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations (23505).
const pgUniqueViolation = "23505"

// ProductFilters are the optional search filters for product listings.
// Name and Brand are case-insensitive substring matches.
type ProductFilters struct {
	Name  *string
	Brand *string
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filters ProductFilters, offset, limit int) (*Page[domain.Product], error)
}

type productRepository struct {
	db DBTX
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a product. A (name, brand) duplicate surfaces as
// domain.ErrProductExists instead of a raw integrity violation.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, brand, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		product.Name,
		product.Brand,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Brand,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound(domain.KindProduct, id)
		}
		return nil, fmt.Errorf("failed to find product by id: %w", err)
	}

	return product, nil
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error) {
	result := make(map[int64]*domain.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := fmt.Sprintf("SELECT %s FROM products WHERE id = ANY($1)", productColumns)
	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		product := &domain.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Brand, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return result, nil
}

func (r *productRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "products", id)
}

func (r *productRepository) List(ctx context.Context, filters ProductFilters, offset, limit int) (*Page[domain.Product], error) {
	var predicate []Filter
	if filters.Name != nil {
		predicate = append(predicate, ContainsFold("name", *filters.Name))
	}
	if filters.Brand != nil {
		predicate = append(predicate, ContainsFold("brand", *filters.Brand))
	}

	return queryPage(ctx, r.db, "products", productColumns, predicate, offset, limit,
		func(rows *sql.Rows) (domain.Product, error) {
			var product domain.Product
			err := rows.Scan(&product.ID, &product.Name, &product.Brand, &product.CreatedAt, &product.UpdatedAt)
			return product, err
		})
}

// isUniqueViolation reports whether err is a unique constraint
// violation from PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
