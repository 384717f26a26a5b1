package service

import (
	"context"
	"fmt"
	"time"

	"kitchen-inventory/internal/domain"
	"kitchen-inventory/internal/repository"
)

// LocationService defines the business logic for kitchen locations.
type LocationService interface {
	Create(ctx context.Context, name string) (*domain.Location, error)
	List(ctx context.Context, offset, limit int) (*repository.Page[domain.Location], error)
}

type locationService struct {
	repos repository.Repos
	tx    repository.TxRunner
}

// NewLocationService creates a new instance of LocationService.
func NewLocationService(repos repository.Repos, tx repository.TxRunner) LocationService {
	return &locationService{repos: repos, tx: tx}
}

func (s *locationService) Create(ctx context.Context, name string) (*domain.Location, error) {
	now := time.Now().UTC()
	location := &domain.Location{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.tx.RunTx(ctx, func(r repository.Repos) error {
		return r.Locations.Create(ctx, location)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	return location, nil
}

func (s *locationService) List(ctx context.Context, offset, limit int) (*repository.Page[domain.Location], error) {
	return s.repos.Locations.List(ctx, offset, limit)
}
