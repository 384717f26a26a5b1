package service

import (
	"context"
	"sort"

	"kitchen-inventory/internal/domain"
	"kitchen-inventory/internal/repository"
)

// In-memory repositories for testing, in place of the PostgreSQL-backed
// ones. Windowing and filtering mirror the real queries: insertion
// order is ascending id.

type mockLocationRepository struct {
	rows   map[int64]*domain.Location
	nextID int64
}

func newMockLocationRepository() *mockLocationRepository {
	return &mockLocationRepository{rows: make(map[int64]*domain.Location)}
}

func (m *mockLocationRepository) Create(ctx context.Context, location *domain.Location) error {
	m.nextID++
	location.ID = m.nextID
	copied := *location
	m.rows[location.ID] = &copied
	return nil
}

func (m *mockLocationRepository) FindByID(ctx context.Context, id int64) (*domain.Location, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, domain.NewNotFound(domain.KindLocation, id)
	}
	copied := *row
	return &copied, nil
}

func (m *mockLocationRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Location, error) {
	result := make(map[int64]*domain.Location)
	for _, id := range ids {
		if row, ok := m.rows[id]; ok {
			copied := *row
			result[id] = &copied
		}
	}
	return result, nil
}

func (m *mockLocationRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.rows[id]
	return ok, nil
}

func (m *mockLocationRepository) List(ctx context.Context, offset, limit int) (*repository.Page[domain.Location], error) {
	all := make([]domain.Location, 0, len(m.rows))
	for _, row := range m.rows {
		all = append(all, *row)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return &repository.Page[domain.Location]{Total: int64(len(all)), Items: window(all, offset, limit)}, nil
}

type mockStoreRepository struct {
	rows   map[int64]*domain.Store
	nextID int64
}

func newMockStoreRepository() *mockStoreRepository {
	return &mockStoreRepository{rows: make(map[int64]*domain.Store)}
}

func (m *mockStoreRepository) Create(ctx context.Context, store *domain.Store) error {
	m.nextID++
	store.ID = m.nextID
	copied := *store
	m.rows[store.ID] = &copied
	return nil
}

func (m *mockStoreRepository) FindByID(ctx context.Context, id int64) (*domain.Store, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, domain.NewNotFound(domain.KindStore, id)
	}
	copied := *row
	return &copied, nil
}

func (m *mockStoreRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Store, error) {
	result := make(map[int64]*domain.Store)
	for _, id := range ids {
		if row, ok := m.rows[id]; ok {
			copied := *row
			result[id] = &copied
		}
	}
	return result, nil
}

func (m *mockStoreRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.rows[id]
	return ok, nil
}

func (m *mockStoreRepository) List(ctx context.Context, offset, limit int) (*repository.Page[domain.Store], error) {
	all := make([]domain.Store, 0, len(m.rows))
	for _, row := range m.rows {
		all = append(all, *row)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return &repository.Page[domain.Store]{Total: int64(len(all)), Items: window(all, offset, limit)}, nil
}

type mockProductRepository struct {
	rows   map[int64]*domain.Product
	nextID int64
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{rows: make(map[int64]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	for _, row := range m.rows {
		if row.Name == product.Name && row.Brand == product.Brand {
			return domain.ErrProductExists
		}
	}
	m.nextID++
	product.ID = m.nextID
	copied := *product
	m.rows[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, domain.NewNotFound(domain.KindProduct, id)
	}
	copied := *row
	return &copied, nil
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error) {
	result := make(map[int64]*domain.Product)
	for _, id := range ids {
		if row, ok := m.rows[id]; ok {
			copied := *row
			result[id] = &copied
		}
	}
	return result, nil
}

func (m *mockProductRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.rows[id]
	return ok, nil
}

func (m *mockProductRepository) List(ctx context.Context, filters repository.ProductFilters, offset, limit int) (*repository.Page[domain.Product], error) {
	all := make([]domain.Product, 0, len(m.rows))
	for _, row := range m.rows {
		if filters.Name != nil && !containsFold(row.Name, *filters.Name) {
			continue
		}
		if filters.Brand != nil && !containsFold(row.Brand, *filters.Brand) {
			continue
		}
		all = append(all, *row)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return &repository.Page[domain.Product]{Total: int64(len(all)), Items: window(all, offset, limit)}, nil
}

type mockInventoryItemRepository struct {
	rows   map[int64]*domain.InventoryItem
	nextID int64
}

func newMockInventoryItemRepository() *mockInventoryItemRepository {
	return &mockInventoryItemRepository{rows: make(map[int64]*domain.InventoryItem)}
}

func (m *mockInventoryItemRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	m.nextID++
	item.ID = m.nextID
	copied := *item
	m.rows[item.ID] = &copied
	return nil
}

func (m *mockInventoryItemRepository) FindByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, domain.NewNotFound(domain.KindInventoryItem, id)
	}
	copied := *row
	return &copied, nil
}

func (m *mockInventoryItemRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	if _, ok := m.rows[item.ID]; !ok {
		return domain.NewNotFound(domain.KindInventoryItem, item.ID)
	}
	copied := *item
	m.rows[item.ID] = &copied
	return nil
}

func (m *mockInventoryItemRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return domain.NewNotFound(domain.KindInventoryItem, id)
	}
	delete(m.rows, id)
	return nil
}

func (m *mockInventoryItemRepository) List(ctx context.Context, filters repository.InventoryItemFilters, offset, limit int) (*repository.Page[domain.InventoryItem], error) {
	all := make([]domain.InventoryItem, 0, len(m.rows))
	for _, row := range m.rows {
		if filters.LocationID != nil && row.LocationID != *filters.LocationID {
			continue
		}
		if filters.ProductID != nil && row.ProductID != *filters.ProductID {
			continue
		}
		if filters.StoreID != nil && (row.StoreID == nil || *row.StoreID != *filters.StoreID) {
			continue
		}
		all = append(all, *row)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return &repository.Page[domain.InventoryItem]{Total: int64(len(all)), Items: window(all, offset, limit)}, nil
}

type mockShoppingListItemRepository struct {
	rows   map[int64]*domain.ShoppingListItem
	nextID int64
}

func newMockShoppingListItemRepository() *mockShoppingListItemRepository {
	return &mockShoppingListItemRepository{rows: make(map[int64]*domain.ShoppingListItem)}
}

func (m *mockShoppingListItemRepository) Create(ctx context.Context, item *domain.ShoppingListItem) error {
	m.nextID++
	item.ID = m.nextID
	copied := *item
	m.rows[item.ID] = &copied
	return nil
}

func (m *mockShoppingListItemRepository) FindByID(ctx context.Context, id int64) (*domain.ShoppingListItem, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, domain.NewNotFound(domain.KindShoppingListItem, id)
	}
	copied := *row
	return &copied, nil
}

func (m *mockShoppingListItemRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return domain.NewNotFound(domain.KindShoppingListItem, id)
	}
	delete(m.rows, id)
	return nil
}

func (m *mockShoppingListItemRepository) List(ctx context.Context, filters repository.ShoppingListItemFilters, offset, limit int) (*repository.Page[domain.ShoppingListItem], error) {
	all := make([]domain.ShoppingListItem, 0, len(m.rows))
	for _, row := range m.rows {
		if filters.ProductID != nil && row.ProductID != *filters.ProductID {
			continue
		}
		if filters.StoreID != nil && (row.StoreID == nil || *row.StoreID != *filters.StoreID) {
			continue
		}
		all = append(all, *row)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return &repository.Page[domain.ShoppingListItem]{Total: int64(len(all)), Items: window(all, offset, limit)}, nil
}

// mockTxRunner invokes the callback with the same in-memory repos; the
// service validates before mutating, so rollback is not simulated.
type mockTxRunner struct {
	repos repository.Repos
}

func (m *mockTxRunner) RunTx(ctx context.Context, fn func(r repository.Repos) error) error {
	return fn(m.repos)
}

// testEnv bundles the in-memory repositories the way the server wires
// the real ones.
type testEnv struct {
	locations    *mockLocationRepository
	stores       *mockStoreRepository
	products     *mockProductRepository
	items        *mockInventoryItemRepository
	shoppingList *mockShoppingListItemRepository
	repos        repository.Repos
	tx           repository.TxRunner
}

func newTestEnv() *testEnv {
	env := &testEnv{
		locations:    newMockLocationRepository(),
		stores:       newMockStoreRepository(),
		products:     newMockProductRepository(),
		items:        newMockInventoryItemRepository(),
		shoppingList: newMockShoppingListItemRepository(),
	}
	env.repos = repository.Repos{
		Locations:      env.locations,
		Stores:         env.stores,
		Products:       env.products,
		InventoryItems: env.items,
		ShoppingList:   env.shoppingList,
	}
	env.tx = &mockTxRunner{repos: env.repos}
	return env
}

func window[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func containsFold(haystack, needle string) bool {
	h := []rune(haystack)
	n := []rune(needle)
	lower := func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}
	for i := range h {
		h[i] = lower(h[i])
	}
	for i := range n {
		n[i] = lower(n[i])
	}
	hs, ns := string(h), string(n)
	for i := 0; i+len(ns) <= len(hs); i++ {
		if hs[i:i+len(ns)] == ns {
			return true
		}
	}
	return false
}
