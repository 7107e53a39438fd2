package usecase

import (
	"context"
	"errors"

	"guestcart/internal/domain"
)

// CartUC owns the cart aggregate: locating or creating a guest's cart,
// attaching, merging and detaching line items, and keeping the derived totals
// consistent with the line items after every mutation.
type CartUC struct {
	Carts    domain.CartRepo
	Products domain.ProductRepo

	// Merge selects the repeat-add behavior. The zero value is MergeAdd:
	// adding a product already in the cart sums the quantities.
	Merge domain.MergePolicy
}

// EnsureCart returns the guest's cart, creating one with zero totals if none
// exists. Repeated calls with the same guest id never create duplicates; the
// unique index on guest_id backs that up.
func (uc *CartUC) EnsureCart(ctx context.Context, guestID string) (*domain.Cart, error) {
	cart, err := uc.Carts.FindByGuest(ctx, guestID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	cart = &domain.Cart{GuestID: guestID}
	if err := uc.Carts.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (uc *CartUC) AddItem(ctx context.Context, guestID string, productID uint, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	product, err := uc.Products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnknownProduct
		}
		return err
	}
	cart, err := uc.EnsureCart(ctx, guestID)
	if err != nil {
		return err
	}
	return uc.Carts.UpsertItem(ctx, cart.ID, product, quantity, uc.Merge)
}

// RemoveItem detaches the product's line item from the guest's cart. A product
// that was never in the cart is a no-op; a guest without a cart is ErrNotFound.
func (uc *CartUC) RemoveItem(ctx context.Context, guestID string, productID uint) error {
	cart, err := uc.Carts.FindByGuest(ctx, guestID)
	if err != nil {
		return err
	}
	return uc.Carts.RemoveItem(ctx, cart.ID, productID)
}

// ClearCart detaches all line items and deletes the cart record itself.
func (uc *CartUC) ClearCart(ctx context.Context, guestID string) error {
	cart, err := uc.Carts.FindByGuest(ctx, guestID)
	if err != nil {
		return err
	}
	return uc.Carts.Delete(ctx, cart.ID)
}

// GetCart returns the cart with line items and product data eagerly loaded,
// or (nil, nil) when the guest has no cart. It never creates one.
func (uc *CartUC) GetCart(ctx context.Context, guestID string) (*domain.Cart, error) {
	cart, err := uc.Carts.FindByGuest(ctx, guestID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}
