package service

import (
	"context"
	"fmt"
	"time"

	"kitchen-inventory/internal/domain"
	"kitchen-inventory/internal/repository"

	"github.com/shopspring/decimal"
)

// CreateShoppingListItemInput carries the fields for a new shopping
// list item. ProductID must be set; StoreID is optional.
type CreateShoppingListItemInput struct {
	ProductID *int64
	StoreID   *int64
	Quantity  *decimal.Decimal
	Note      string
}

// ShoppingListService defines the business logic for the shopping list.
type ShoppingListService interface {
	Create(ctx context.Context, input CreateShoppingListItemInput) (*domain.ShoppingListItemDetail, error)
	List(ctx context.Context, filters repository.ShoppingListItemFilters, offset, limit int) (*repository.Page[domain.ShoppingListItemDetail], error)
	Delete(ctx context.Context, id int64) error
}

type shoppingListService struct {
	repos repository.Repos
	tx    repository.TxRunner
}

// NewShoppingListService creates a new instance of ShoppingListService.
func NewShoppingListService(repos repository.Repos, tx repository.TxRunner) ShoppingListService {
	return &shoppingListService{repos: repos, tx: tx}
}

// Create validates the product and optional store references, then
// inserts, all in one transaction.
func (s *shoppingListService) Create(ctx context.Context, input CreateShoppingListItemInput) (*domain.ShoppingListItemDetail, error) {
	now := time.Now().UTC()
	item := &domain.ShoppingListItem{
		StoreID:   input.StoreID,
		Quantity:  decimal.NewFromInt(1),
		Note:      input.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}

	err := s.tx.RunTx(ctx, func(r repository.Repos) error {
		if err := validateReferences(ctx, r,
			Reference{Kind: domain.KindProduct, ID: input.ProductID, Required: true},
			Reference{Kind: domain.KindStore, ID: input.StoreID},
		); err != nil {
			return err
		}

		item.ProductID = *input.ProductID
		return r.ShoppingList.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return s.attachOne(ctx, item)
}

func (s *shoppingListService) List(ctx context.Context, filters repository.ShoppingListItemFilters, offset, limit int) (*repository.Page[domain.ShoppingListItemDetail], error) {
	page, err := s.repos.ShoppingList.List(ctx, filters, offset, limit)
	if err != nil {
		return nil, err
	}

	details, err := s.attach(ctx, page.Items)
	if err != nil {
		return nil, err
	}
	return &repository.Page[domain.ShoppingListItemDetail]{Total: page.Total, Items: details}, nil
}

// Delete loads the item first so a missing id is reported as NotFound.
func (s *shoppingListService) Delete(ctx context.Context, id int64) error {
	return s.tx.RunTx(ctx, func(r repository.Repos) error {
		if _, err := r.ShoppingList.FindByID(ctx, id); err != nil {
			return err
		}
		return r.ShoppingList.Delete(ctx, id)
	})
}

func (s *shoppingListService) attachOne(ctx context.Context, item *domain.ShoppingListItem) (*domain.ShoppingListItemDetail, error) {
	details, err := s.attach(ctx, []domain.ShoppingListItem{*item})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *shoppingListService) attach(ctx context.Context, items []domain.ShoppingListItem) ([]domain.ShoppingListItemDetail, error) {
	productIDs := make([]int64, 0, len(items))
	storeIDs := make([]int64, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
		if item.StoreID != nil {
			storeIDs = append(storeIDs, *item.StoreID)
		}
	}

	products, err := s.repos.Products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load related products: %w", err)
	}
	stores, err := s.repos.Stores.FindByIDs(ctx, storeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load related stores: %w", err)
	}

	details := make([]domain.ShoppingListItemDetail, 0, len(items))
	for _, item := range items {
		detail := domain.ShoppingListItemDetail{
			ShoppingListItem: item,
			Product:          products[item.ProductID],
		}
		if item.StoreID != nil {
			detail.Store = stores[*item.StoreID]
		}
		details = append(details, detail)
	}

	return details, nil
}
