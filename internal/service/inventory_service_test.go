package service

import (
	"context"
	"testing"
	"time"

	"kitchen-inventory/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCatalog inserts one product, one location and one store directly
// into the mock repositories.
func seedCatalog(t *testing.T, env *testEnv) (product *domain.Product, location *domain.Location, store *domain.Store) {
	t.Helper()
	ctx := context.Background()

	product = &domain.Product{Name: "Milk", Brand: "Acme"}
	require.NoError(t, env.products.Create(ctx, product))
	location = &domain.Location{Name: "Fridge"}
	require.NoError(t, env.locations.Create(ctx, location))
	store = &domain.Store{Name: "Corner Shop"}
	require.NoError(t, env.stores.Create(ctx, store))
	return product, location, store
}

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestInventoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item with nested references attached", func(t *testing.T) {
		env := newTestEnv()
		product, location, store := seedCatalog(t, env)
		svc := NewInventoryService(env.repos, env.tx)

		detail, err := svc.Create(ctx, CreateInventoryItemInput{
			ProductID:  &product.ID,
			LocationID: &location.ID,
			StoreID:    &store.ID,
			Quantity:   decPtr("2.5"),
			Price:      decPtr("3.99"),
		})
		require.NoError(t, err)

		assert.NotZero(t, detail.ID)
		assert.True(t, detail.Quantity.Equal(decimal.RequireFromString("2.5")))
		assert.True(t, detail.Price.Valid)
		require.NotNil(t, detail.Product)
		assert.Equal(t, "Milk", detail.Product.Name)
		require.NotNil(t, detail.Location)
		assert.Equal(t, "Fridge", detail.Location.Name)
		require.NotNil(t, detail.Store)
		assert.Equal(t, "Corner Shop", detail.Store.Name)
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		env := newTestEnv()
		product, location, _ := seedCatalog(t, env)
		svc := NewInventoryService(env.repos, env.tx)

		detail, err := svc.Create(ctx, CreateInventoryItemInput{
			ProductID:  &product.ID,
			LocationID: &location.ID,
		})
		require.NoError(t, err)
		assert.True(t, detail.Quantity.Equal(decimal.NewFromInt(1)))
		assert.Nil(t, detail.Store)
		assert.False(t, detail.Price.Valid)
	})

	t.Run("unknown product leaves no row behind", func(t *testing.T) {
		env := newTestEnv()
		_, location, _ := seedCatalog(t, env)
		svc := NewInventoryService(env.repos, env.tx)

		_, err := svc.Create(ctx, CreateInventoryItemInput{
			ProductID:  ptr(9999),
			LocationID: &location.ID,
		})
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.KindProduct, notFound.Kind)
		assert.Empty(t, env.items.rows)
	})

	t.Run("unknown optional store is rejected", func(t *testing.T) {
		env := newTestEnv()
		product, location, _ := seedCatalog(t, env)
		svc := NewInventoryService(env.repos, env.tx)

		_, err := svc.Create(ctx, CreateInventoryItemInput{
			ProductID:  &product.ID,
			LocationID: &location.ID,
			StoreID:    ptr(4242),
		})
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.KindStore, notFound.Kind)
		assert.Empty(t, env.items.rows)
	})

	t.Run("missing location is a missing reference", func(t *testing.T) {
		env := newTestEnv()
		product, _, _ := seedCatalog(t, env)
		svc := NewInventoryService(env.repos, env.tx)

		_, err := svc.Create(ctx, CreateInventoryItemInput{ProductID: &product.ID})
		var missing *domain.MissingReferenceError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, domain.KindLocation, missing.Kind)
	})
}

func TestInventoryService_Update(t *testing.T) {
	ctx := context.Background()

	newItem := func(t *testing.T, env *testEnv, svc InventoryService) *domain.InventoryItemDetail {
		t.Helper()
		product, location, _ := seedCatalog(t, env)
		detail, err := svc.Create(ctx, CreateInventoryItemInput{
			ProductID:  &product.ID,
			LocationID: &location.ID,
			Quantity:   decPtr("3"),
		})
		require.NoError(t, err)
		return detail
	}

	t.Run("updates only the supplied fields", func(t *testing.T) {
		env := newTestEnv()
		svc := NewInventoryService(env.repos, env.tx)
		created := newItem(t, env, svc)

		updated, err := svc.Update(ctx, created.ID, UpdateInventoryItemInput{
			Quantity: decPtr("7"),
		})
		require.NoError(t, err)
		assert.True(t, updated.Quantity.Equal(decimal.NewFromInt(7)))
		assert.Equal(t, created.ProductID, updated.ProductID)
		assert.Equal(t, created.LocationID, updated.LocationID)
		assert.Nil(t, updated.StoreID)
	})

	t.Run("quantity-only update succeeds even while a reference check would fail", func(t *testing.T) {
		// The stored store_id points at a row that has since vanished
		// from the mock; a payload that touches no foreign key must not
		// re-validate it.
		env := newTestEnv()
		svc := NewInventoryService(env.repos, env.tx)
		created := newItem(t, env, svc)

		stored := env.items.rows[created.ID]
		gone := int64(555)
		stored.StoreID = &gone

		_, err := svc.Update(ctx, created.ID, UpdateInventoryItemInput{Quantity: decPtr("9")})
		assert.NoError(t, err)
	})

	t.Run("touching one foreign key re-validates all of them", func(t *testing.T) {
		env := newTestEnv()
		svc := NewInventoryService(env.repos, env.tx)
		created := newItem(t, env, svc)

		stored := env.items.rows[created.ID]
		gone := int64(555)
		stored.StoreID = &gone

		// Changing the product alone now trips over the dangling store.
		_, err := svc.Update(ctx, created.ID, UpdateInventoryItemInput{ProductID: &created.ProductID})
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.KindStore, notFound.Kind)
	})

	t.Run("new foreign key is validated against the merged state", func(t *testing.T) {
		env := newTestEnv()
		svc := NewInventoryService(env.repos, env.tx)
		created := newItem(t, env, svc)

		_, err := svc.Update(ctx, created.ID, UpdateInventoryItemInput{LocationID: ptr(8080)})
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.KindLocation, notFound.Kind)

		// The stored row is untouched.
		stored, findErr := env.items.FindByID(ctx, created.ID)
		require.NoError(t, findErr)
		assert.Equal(t, created.LocationID, stored.LocationID)
	})

	t.Run("assigning a store works", func(t *testing.T) {
		env := newTestEnv()
		svc := NewInventoryService(env.repos, env.tx)
		created := newItem(t, env, svc)

		store := &domain.Store{Name: "Market"}
		require.NoError(t, env.stores.Create(ctx, store))

		updated, err := svc.Update(ctx, created.ID, UpdateInventoryItemInput{StoreID: &store.ID})
		require.NoError(t, err)
		require.NotNil(t, updated.Store)
		assert.Equal(t, "Market", updated.Store.Name)
	})

	t.Run("unknown item id", func(t *testing.T) {
		env := newTestEnv()
		seedCatalog(t, env)
		svc := NewInventoryService(env.repos, env.tx)

		_, err := svc.Update(ctx, 12345, UpdateInventoryItemInput{Quantity: decPtr("1")})
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.KindInventoryItem, notFound.Kind)
	})

	t.Run("bumps updated_at", func(t *testing.T) {
		env := newTestEnv()
		svc := NewInventoryService(env.repos, env.tx)
		created := newItem(t, env, svc)

		before := created.UpdatedAt
		time.Sleep(time.Millisecond)
		updated, err := svc.Update(ctx, created.ID, UpdateInventoryItemInput{Quantity: decPtr("2")})
		require.NoError(t, err)
		assert.True(t, updated.UpdatedAt.After(before))
	})
}

func TestInventoryService_Delete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	product, location, _ := seedCatalog(t, env)
	svc := NewInventoryService(env.repos, env.tx)

	detail, err := svc.Create(ctx, CreateInventoryItemInput{
		ProductID:  &product.ID,
		LocationID: &location.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, detail.ID))

	// The second delete of the same id fails.
	err = svc.Delete(ctx, detail.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, domain.KindInventoryItem, notFound.Kind)
}

func TestInventoryService_ListForLocation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	product, location, _ := seedCatalog(t, env)
	other := &domain.Location{Name: "Pantry"}
	require.NoError(t, env.locations.Create(ctx, other))
	svc := NewInventoryService(env.repos, env.tx)

	for _, loc := range []*domain.Location{location, location, other} {
		_, err := svc.Create(ctx, CreateInventoryItemInput{
			ProductID:  &product.ID,
			LocationID: &loc.ID,
		})
		require.NoError(t, err)
	}

	t.Run("returns only that location's items", func(t *testing.T) {
		page, err := svc.ListForLocation(ctx, location.ID, nil, nil, 0, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		for _, item := range page.Items {
			assert.Equal(t, location.ID, item.LocationID)
		}
	})

	t.Run("unknown location is not an empty page", func(t *testing.T) {
		_, err := svc.ListForLocation(ctx, 9999, nil, nil, 0, 100)
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, domain.KindLocation, notFound.Kind)
	})

	t.Run("product filter narrows further", func(t *testing.T) {
		page, err := svc.ListForLocation(ctx, location.ID, ptr(9999), nil, 0, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)
		assert.Empty(t, page.Items)
	})
}
