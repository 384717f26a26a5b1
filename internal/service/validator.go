package service

import (
	"context"
	"fmt"

	"kitchen-inventory/internal/domain"
	"kitchen-inventory/internal/repository"
)

// Reference describes one foreign key to validate before a write.
type Reference struct {
	Kind     domain.Kind
	ID       *int64
	Required bool
}

// validateReferences checks each reference against the given
// repositories, in the order supplied, and fails on the first
// violation. Callers pass references in the fixed product → location →
// store order so the reported error is deterministic when several
// references are invalid.
//
// A nil id on a required reference is its own condition
// (MissingReferenceError); a present id that fails lookup is reported
// as NotFound. Optional references with nil ids are skipped.
func validateReferences(ctx context.Context, r repository.Repos, refs ...Reference) error {
	for _, ref := range refs {
		if ref.ID == nil {
			if ref.Required {
				return &domain.MissingReferenceError{Kind: ref.Kind}
			}
			continue
		}

		var found bool
		var err error
		switch ref.Kind {
		case domain.KindProduct:
			found, err = r.Products.Exists(ctx, *ref.ID)
		case domain.KindLocation:
			found, err = r.Locations.Exists(ctx, *ref.ID)
		case domain.KindStore:
			found, err = r.Stores.Exists(ctx, *ref.ID)
		default:
			return fmt.Errorf("cannot validate reference of kind %q", ref.Kind)
		}
		if err != nil {
			return fmt.Errorf("failed to validate %s reference: %w", ref.Kind, err)
		}
		if !found {
			return domain.NewNotFound(ref.Kind, *ref.ID)
		}
	}

	return nil
}
