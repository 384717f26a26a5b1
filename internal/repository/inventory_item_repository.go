package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kitchen-inventory/internal/domain"
)

const inventoryItemColumns = "id, product_id, location_id, store_id, quantity, purchase_date, expiration_date, price, created_at, updated_at"

// InventoryItemFilters are the optional equality filters for inventory
// item listings. Nil fields are left out of the predicate.
type InventoryItemFilters struct {
	LocationID *int64
	ProductID  *int64
	StoreID    *int64
}

// InventoryItemRepository defines data access for inventory items.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	FindByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters InventoryItemFilters, offset, limit int) (*Page[domain.InventoryItem], error)
}

type inventoryItemRepository struct {
	db DBTX
}

// NewInventoryItemRepository creates a new instance of InventoryItemRepository.
func NewInventoryItemRepository(db DBTX) InventoryItemRepository {
	return &inventoryItemRepository{db: db}
}

func (r *inventoryItemRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (product_id, location_id, store_id, quantity, purchase_date, expiration_date, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		item.ProductID,
		item.LocationID,
		item.StoreID,
		item.Quantity,
		item.PurchaseDate,
		item.ExpirationDate,
		item.Price,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	return nil
}

func (r *inventoryItemRepository) FindByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	query := fmt.Sprintf("SELECT %s FROM inventory_items WHERE id = $1", inventoryItemColumns)

	item := &domain.InventoryItem{}
	err := scanInventoryItemRow(r.db.QueryRowContext(ctx, query, id), item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound(domain.KindInventoryItem, id)
		}
		return nil, fmt.Errorf("failed to find inventory item by id: %w", err)
	}

	return item, nil
}

// Update writes the full row; the service merges partial payloads into
// the stored item before calling this.
func (r *inventoryItemRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET product_id = $2, location_id = $3, store_id = $4, quantity = $5,
		    purchase_date = $6, expiration_date = $7, price = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.ProductID,
		item.LocationID,
		item.StoreID,
		item.Quantity,
		item.PurchaseDate,
		item.ExpirationDate,
		item.Price,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFound(domain.KindInventoryItem, item.ID)
	}

	return nil
}

func (r *inventoryItemRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM inventory_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFound(domain.KindInventoryItem, id)
	}

	return nil
}

func (r *inventoryItemRepository) List(ctx context.Context, filters InventoryItemFilters, offset, limit int) (*Page[domain.InventoryItem], error) {
	var predicate []Filter
	if filters.LocationID != nil {
		predicate = append(predicate, Equals("location_id", *filters.LocationID))
	}
	if filters.ProductID != nil {
		predicate = append(predicate, Equals("product_id", *filters.ProductID))
	}
	if filters.StoreID != nil {
		predicate = append(predicate, Equals("store_id", *filters.StoreID))
	}

	return queryPage(ctx, r.db, "inventory_items", inventoryItemColumns, predicate, offset, limit,
		func(rows *sql.Rows) (domain.InventoryItem, error) {
			var item domain.InventoryItem
			err := rows.Scan(
				&item.ID,
				&item.ProductID,
				&item.LocationID,
				&item.StoreID,
				&item.Quantity,
				&item.PurchaseDate,
				&item.ExpirationDate,
				&item.Price,
				&item.CreatedAt,
				&item.UpdatedAt,
			)
			return item, err
		})
}

func scanInventoryItemRow(row *sql.Row, item *domain.InventoryItem) error {
	return row.Scan(
		&item.ID,
		&item.ProductID,
		&item.LocationID,
		&item.StoreID,
		&item.Quantity,
		&item.PurchaseDate,
		&item.ExpirationDate,
		&item.Price,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
}
