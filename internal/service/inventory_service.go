package service

import (
	"context"
	"fmt"
	"time"

	"kitchen-inventory/internal/domain"
	"kitchen-inventory/internal/repository"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemInput carries the fields for a new inventory item.
// ProductID and LocationID must be set; StoreID is optional.
type CreateInventoryItemInput struct {
	ProductID      *int64
	LocationID     *int64
	StoreID        *int64
	Quantity       *decimal.Decimal
	PurchaseDate   *time.Time
	ExpirationDate *time.Time
	Price          *decimal.Decimal
}

// UpdateInventoryItemInput is a partial update payload. Nil fields are
// left untouched; presence of a field in the payload — not its value —
// decides whether it is applied.
type UpdateInventoryItemInput struct {
	ProductID      *int64
	LocationID     *int64
	StoreID        *int64
	Quantity       *decimal.Decimal
	PurchaseDate   *time.Time
	ExpirationDate *time.Time
	Price          *decimal.Decimal
}

// InventoryService defines the business logic for inventory items.
type InventoryService interface {
	Create(ctx context.Context, input CreateInventoryItemInput) (*domain.InventoryItemDetail, error)
	Get(ctx context.Context, id int64) (*domain.InventoryItemDetail, error)
	List(ctx context.Context, filters repository.InventoryItemFilters, offset, limit int) (*repository.Page[domain.InventoryItemDetail], error)
	ListForLocation(ctx context.Context, locationID int64, productID, storeID *int64, offset, limit int) (*repository.Page[domain.InventoryItemDetail], error)
	Update(ctx context.Context, id int64, input UpdateInventoryItemInput) (*domain.InventoryItemDetail, error)
	Delete(ctx context.Context, id int64) error
}

type inventoryService struct {
	repos repository.Repos
	tx    repository.TxRunner
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(repos repository.Repos, tx repository.TxRunner) InventoryService {
	return &inventoryService{repos: repos, tx: tx}
}

// Create validates all foreign keys and inserts the item in one
// transaction, so a bad reference never leaves a row behind.
func (s *inventoryService) Create(ctx context.Context, input CreateInventoryItemInput) (*domain.InventoryItemDetail, error) {
	now := time.Now().UTC()
	item := &domain.InventoryItem{
		StoreID:        input.StoreID,
		Quantity:       decimal.NewFromInt(1),
		PurchaseDate:   input.PurchaseDate,
		ExpirationDate: input.ExpirationDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.Price != nil {
		item.Price = decimal.NewNullDecimal(*input.Price)
	}

	err := s.tx.RunTx(ctx, func(r repository.Repos) error {
		if err := validateReferences(ctx, r,
			Reference{Kind: domain.KindProduct, ID: input.ProductID, Required: true},
			Reference{Kind: domain.KindLocation, ID: input.LocationID, Required: true},
			Reference{Kind: domain.KindStore, ID: input.StoreID},
		); err != nil {
			return err
		}

		item.ProductID = *input.ProductID
		item.LocationID = *input.LocationID
		return r.InventoryItems.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return s.attachOne(ctx, item)
}

func (s *inventoryService) Get(ctx context.Context, id int64) (*domain.InventoryItemDetail, error) {
	item, err := s.repos.InventoryItems.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.attachOne(ctx, item)
}

func (s *inventoryService) List(ctx context.Context, filters repository.InventoryItemFilters, offset, limit int) (*repository.Page[domain.InventoryItemDetail], error) {
	page, err := s.repos.InventoryItems.List(ctx, filters, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.attachPage(ctx, page)
}

// ListForLocation lists items in one location. The location itself must
// exist; an unknown location is a NotFound, not an empty page.
func (s *inventoryService) ListForLocation(ctx context.Context, locationID int64, productID, storeID *int64, offset, limit int) (*repository.Page[domain.InventoryItemDetail], error) {
	found, err := s.repos.Locations.Exists(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NewNotFound(domain.KindLocation, locationID)
	}

	filters := repository.InventoryItemFilters{
		LocationID: &locationID,
		ProductID:  productID,
		StoreID:    storeID,
	}
	page, err := s.repos.InventoryItems.List(ctx, filters, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.attachPage(ctx, page)
}

// Update merges the supplied fields into the stored item. If any
// foreign key field is present in the payload, all foreign keys are
// re-validated with the merged values before the row is written.
func (s *inventoryService) Update(ctx context.Context, id int64, input UpdateInventoryItemInput) (*domain.InventoryItemDetail, error) {
	var updated *domain.InventoryItem

	err := s.tx.RunTx(ctx, func(r repository.Repos) error {
		item, err := r.InventoryItems.FindByID(ctx, id)
		if err != nil {
			return err
		}

		touchesReferences := input.ProductID != nil || input.LocationID != nil || input.StoreID != nil

		if input.ProductID != nil {
			item.ProductID = *input.ProductID
		}
		if input.LocationID != nil {
			item.LocationID = *input.LocationID
		}
		if input.StoreID != nil {
			item.StoreID = input.StoreID
		}
		if input.Quantity != nil {
			item.Quantity = *input.Quantity
		}
		if input.PurchaseDate != nil {
			item.PurchaseDate = input.PurchaseDate
		}
		if input.ExpirationDate != nil {
			item.ExpirationDate = input.ExpirationDate
		}
		if input.Price != nil {
			item.Price = decimal.NewNullDecimal(*input.Price)
		}

		if touchesReferences {
			if err := validateReferences(ctx, r,
				Reference{Kind: domain.KindProduct, ID: &item.ProductID, Required: true},
				Reference{Kind: domain.KindLocation, ID: &item.LocationID, Required: true},
				Reference{Kind: domain.KindStore, ID: item.StoreID},
			); err != nil {
				return err
			}
		}

		item.UpdatedAt = time.Now().UTC()
		if err := r.InventoryItems.Update(ctx, item); err != nil {
			return err
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.attachOne(ctx, updated)
}

// Delete loads the item first so a missing id is reported as NotFound.
func (s *inventoryService) Delete(ctx context.Context, id int64) error {
	return s.tx.RunTx(ctx, func(r repository.Repos) error {
		if _, err := r.InventoryItems.FindByID(ctx, id); err != nil {
			return err
		}
		return r.InventoryItems.Delete(ctx, id)
	})
}

func (s *inventoryService) attachOne(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItemDetail, error) {
	details, err := s.attach(ctx, []domain.InventoryItem{*item})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *inventoryService) attachPage(ctx context.Context, page *repository.Page[domain.InventoryItem]) (*repository.Page[domain.InventoryItemDetail], error) {
	details, err := s.attach(ctx, page.Items)
	if err != nil {
		return nil, err
	}
	return &repository.Page[domain.InventoryItemDetail]{Total: page.Total, Items: details}, nil
}

// attach composes the read model: base rows plus their product,
// location and store loaded in one batch per kind.
func (s *inventoryService) attach(ctx context.Context, items []domain.InventoryItem) ([]domain.InventoryItemDetail, error) {
	productIDs := make([]int64, 0, len(items))
	locationIDs := make([]int64, 0, len(items))
	storeIDs := make([]int64, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
		locationIDs = append(locationIDs, item.LocationID)
		if item.StoreID != nil {
			storeIDs = append(storeIDs, *item.StoreID)
		}
	}

	products, err := s.repos.Products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load related products: %w", err)
	}
	locations, err := s.repos.Locations.FindByIDs(ctx, locationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load related locations: %w", err)
	}
	stores, err := s.repos.Stores.FindByIDs(ctx, storeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load related stores: %w", err)
	}

	details := make([]domain.InventoryItemDetail, 0, len(items))
	for _, item := range items {
		detail := domain.InventoryItemDetail{
			InventoryItem: item,
			Product:       products[item.ProductID],
			Location:      locations[item.LocationID],
		}
		if item.StoreID != nil {
			detail.Store = stores[*item.StoreID]
		}
		details = append(details, detail)
	}

	return details, nil
}
