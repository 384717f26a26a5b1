package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx. Repositories
// are bound to a DBTX so the same code runs inside or outside a
// transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repos bundles every repository bound to a single database handle.
type Repos struct {
	Locations      LocationRepository
	Stores         StoreRepository
	Products       ProductRepository
	InventoryItems InventoryItemRepository
	ShoppingList   ShoppingListItemRepository
}

// NewRepos constructs all repositories over the given handle.
func NewRepos(db DBTX) Repos {
	return Repos{
		Locations:      NewLocationRepository(db),
		Stores:         NewStoreRepository(db),
		Products:       NewProductRepository(db),
		InventoryItems: NewInventoryItemRepository(db),
		ShoppingList:   NewShoppingListItemRepository(db),
	}
}

// TxRunner executes a callback with repositories bound to one
// transaction. The transaction is committed when the callback returns
// nil and rolled back otherwise, so a validation failure inside the
// callback never leaves partial state behind.
type TxRunner interface {
	RunTx(ctx context.Context, fn func(r Repos) error) error
}

type txRunner struct {
	db *sql.DB
}

// NewTxRunner creates a TxRunner over the connection pool.
func NewTxRunner(db *sql.DB) TxRunner {
	return &txRunner{db: db}
}

func (t *txRunner) RunTx(ctx context.Context, fn func(r Repos) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
