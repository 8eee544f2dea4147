// Package store persists quote collections on the key-value substrate. Each
// product line owns one key holding a JSON array, mirroring how the sales
// funnel keeps collections small and product-scoped.
package store

import (
	"context"

	"bima/internal/quote/models"
	"bima/pkg/domain"
)

// Store is the persistence port for quote lifecycle operations.
type Store interface {
	// List returns every quote for the product, oldest first.
	List(ctx context.Context, product domain.ProductType) ([]*models.Quote, error)

	// FindByID returns one quote or sentinel.ErrNotFound.
	FindByID(ctx context.Context, product domain.ProductType, id domain.QuoteID) (*models.Quote, error)

	// Insert appends a new quote. Returns sentinel.ErrConflict when the ID is
	// already taken.
	Insert(ctx context.Context, quote *models.Quote) error

	// Execute atomically validates and mutates one quote under the store's
	// write lock, persisting the result. The validate error aborts without
	// writing.
	Execute(ctx context.Context, product domain.ProductType, id domain.QuoteID,
		validate func(*models.Quote) error, mutate func(*models.Quote)) (*models.Quote, error)

	// Delete removes a quote. Returns sentinel.ErrNotFound when absent.
	Delete(ctx context.Context, product domain.ProductType, id domain.QuoteID) error
}
