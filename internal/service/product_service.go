package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kitchen-inventory/internal/domain"
	"kitchen-inventory/internal/repository"
)

// ProductService defines the business logic for products.
type ProductService interface {
	Create(ctx context.Context, name, brand string) (*domain.Product, error)
	List(ctx context.Context, filters repository.ProductFilters, offset, limit int) (*repository.Page[domain.Product], error)
}

type productService struct {
	repos repository.Repos
	tx    repository.TxRunner
}

// NewProductService creates a new instance of ProductService.
func NewProductService(repos repository.Repos, tx repository.TxRunner) ProductService {
	return &productService{repos: repos, tx: tx}
}

// Create inserts a product. A duplicate (name, brand) pair surfaces as
// domain.ErrProductExists with the insert rolled back.
func (s *productService) Create(ctx context.Context, name, brand string) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		Name:      name,
		Brand:     brand,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.tx.RunTx(ctx, func(r repository.Repos) error {
		return r.Products.Create(ctx, product)
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductExists) {
			return nil, domain.ErrProductExists
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *productService) List(ctx context.Context, filters repository.ProductFilters, offset, limit int) (*repository.Page[domain.Product], error) {
	return s.repos.Products.List(ctx, filters, offset, limit)
}
