package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrUnknownProduct  = errors.New("unknown product")
)

// CartRepo persists cart aggregates. Mutating methods run the line-item change
// and the totals recompute inside a single storage transaction so no partial
// state is observable after a failure.
type CartRepo interface {
	// FindByGuest returns the cart with its line items and their products
	// eagerly loaded, or ErrNotFound.
	FindByGuest(ctx context.Context, guestID string) (*Cart, error)
	Create(ctx context.Context, cart *Cart) error
	// UpsertItem creates or updates the line item for product, resolving a
	// repeat add through policy, and recomputes the cart totals.
	UpsertItem(ctx context.Context, cartID uint, product *Product, quantity int, policy MergePolicy) error
	// RemoveItem detaches the line item for productID if present (no error when
	// absent) and recomputes the cart totals.
	RemoveItem(ctx context.Context, cartID uint, productID uint) error
	// Delete detaches all line items and deletes the cart row.
	Delete(ctx context.Context, cartID uint) error
}

type ProductRepo interface {
	FindByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, p *Product) error
}
