package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies an entity kind, used in error reporting and
// foreign key validation.
type Kind string

const (
	KindLocation         Kind = "Location"
	KindStore            Kind = "Store"
	KindProduct          Kind = "Product"
	KindInventoryItem    Kind = "InventoryItem"
	KindShoppingListItem Kind = "ShoppingListItem"
)

// Location is a place in the kitchen where items are stored
type Location struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Store is a shop where products can be purchased
type Store struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Product is a purchasable good; (name, brand) is unique
type Product struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Brand     string    `json:"brand" db:"brand"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// InventoryItem is a stocked quantity of a product at a location
type InventoryItem struct {
	ID             int64               `json:"id" db:"id"`
	ProductID      int64               `json:"product_id" db:"product_id"`
	LocationID     int64               `json:"location_id" db:"location_id"`
	StoreID        *int64              `json:"store_id" db:"store_id"`
	Quantity       decimal.Decimal     `json:"quantity" db:"quantity"`
	PurchaseDate   *time.Time          `json:"purchase_date" db:"purchase_date"`
	ExpirationDate *time.Time          `json:"expiration_date" db:"expiration_date"`
	Price          decimal.NullDecimal `json:"price" db:"price"`
	CreatedAt      time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at" db:"updated_at"`
}

// ShoppingListItem is a product queued for purchase
type ShoppingListItem struct {
	ID        int64           `json:"id" db:"id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	StoreID   *int64          `json:"store_id" db:"store_id"`
	Quantity  decimal.Decimal `json:"quantity" db:"quantity"`
	Note      string          `json:"note" db:"note"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// InventoryItemDetail is the read model for inventory items with
// related entities attached. Relations are loaded explicitly by the
// service, never lazily.
type InventoryItemDetail struct {
	InventoryItem
	Product  *Product  `json:"product"`
	Location *Location `json:"location"`
	Store    *Store    `json:"store,omitempty"`
}

// ShoppingListItemDetail is the read model for shopping list items
// with related entities attached.
type ShoppingListItemDetail struct {
	ShoppingListItem
	Product *Product `json:"product"`
	Store   *Store   `json:"store,omitempty"`
}
