package service

import (
	"context"
	"fmt"
	"time"

	"kitchen-inventory/internal/domain"
	"kitchen-inventory/internal/repository"
)

// StoreService defines the business logic for stores.
type StoreService interface {
	Create(ctx context.Context, name string) (*domain.Store, error)
	List(ctx context.Context, offset, limit int) (*repository.Page[domain.Store], error)
}

type storeService struct {
	repos repository.Repos
	tx    repository.TxRunner
}

// NewStoreService creates a new instance of StoreService.
func NewStoreService(repos repository.Repos, tx repository.TxRunner) StoreService {
	return &storeService{repos: repos, tx: tx}
}

func (s *storeService) Create(ctx context.Context, name string) (*domain.Store, error) {
	now := time.Now().UTC()
	store := &domain.Store{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.tx.RunTx(ctx, func(r repository.Repos) error {
		return r.Stores.Create(ctx, store)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return store, nil
}

func (s *storeService) List(ctx context.Context, offset, limit int) (*repository.Page[domain.Store], error) {
	return s.repos.Stores.List(ctx, offset, limit)
}
