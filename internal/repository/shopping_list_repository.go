package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kitchen-inventory/internal/domain"
)

const shoppingListItemColumns = "id, product_id, store_id, quantity, note, created_at, updated_at"

// ShoppingListItemFilters are the optional equality filters for
// shopping list listings.
type ShoppingListItemFilters struct {
	ProductID *int64
	StoreID   *int64
}

// ShoppingListItemRepository defines data access for shopping list items.
type ShoppingListItemRepository interface {
	Create(ctx context.Context, item *domain.ShoppingListItem) error
	FindByID(ctx context.Context, id int64) (*domain.ShoppingListItem, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters ShoppingListItemFilters, offset, limit int) (*Page[domain.ShoppingListItem], error)
}

type shoppingListItemRepository struct {
	db DBTX
}

// NewShoppingListItemRepository creates a new instance of ShoppingListItemRepository.
func NewShoppingListItemRepository(db DBTX) ShoppingListItemRepository {
	return &shoppingListItemRepository{db: db}
}

func (r *shoppingListItemRepository) Create(ctx context.Context, item *domain.ShoppingListItem) error {
	query := `
		INSERT INTO shopping_list_items (product_id, store_id, quantity, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		item.ProductID,
		item.StoreID,
		item.Quantity,
		item.Note,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create shopping list item: %w", err)
	}

	return nil
}

func (r *shoppingListItemRepository) FindByID(ctx context.Context, id int64) (*domain.ShoppingListItem, error) {
	query := fmt.Sprintf("SELECT %s FROM shopping_list_items WHERE id = $1", shoppingListItemColumns)

	item := &domain.ShoppingListItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.ProductID,
		&item.StoreID,
		&item.Quantity,
		&item.Note,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound(domain.KindShoppingListItem, id)
		}
		return nil, fmt.Errorf("failed to find shopping list item by id: %w", err)
	}

	return item, nil
}

func (r *shoppingListItemRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM shopping_list_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFound(domain.KindShoppingListItem, id)
	}

	return nil
}

func (r *shoppingListItemRepository) List(ctx context.Context, filters ShoppingListItemFilters, offset, limit int) (*Page[domain.ShoppingListItem], error) {
	var predicate []Filter
	if filters.ProductID != nil {
		predicate = append(predicate, Equals("product_id", *filters.ProductID))
	}
	if filters.StoreID != nil {
		predicate = append(predicate, Equals("store_id", *filters.StoreID))
	}

	return queryPage(ctx, r.db, "shopping_list_items", shoppingListItemColumns, predicate, offset, limit,
		func(rows *sql.Rows) (domain.ShoppingListItem, error) {
			var item domain.ShoppingListItem
			err := rows.Scan(
				&item.ID,
				&item.ProductID,
				&item.StoreID,
				&item.Quantity,
				&item.Note,
				&item.CreatedAt,
				&item.UpdatedAt,
			)
			return item, err
		})
}
