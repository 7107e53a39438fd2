package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"guestcart/internal/domain"
)

type CartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) FindByGuest(ctx context.Context, guestID string) (*domain.Cart, error) {
	var c domain.Cart
	if err := r.db.WithContext(ctx).Preload("Items.Product").First(&c, "guest_id = ?", guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CartRepo) Create(ctx context.Context, cart *domain.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *CartRepo) UpsertItem(ctx context.Context, cartID uint, product *domain.Product, quantity int, policy domain.MergePolicy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item domain.LineItem
		err := tx.Where("cart_id = ? AND product_id = ?", cartID, product.ID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity = policy.Merge(item.Quantity, quantity)
			if err := tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = domain.LineItem{CartID: cartID, ProductID: product.ID, Quantity: quantity}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}
		return recomputeTotals(tx, cartID)
	})
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID uint, productID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&domain.LineItem{}).Error; err != nil {
			return err
		}
		return recomputeTotals(tx, cartID)
	})
}

func (r *CartRepo) Delete(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&domain.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Cart{}, "id = ?", cartID).Error
	})
}

// recomputeTotals rederives the cached totals from the full current set of
// line items inside the caller's transaction.
func recomputeTotals(tx *gorm.DB, cartID uint) error {
	var items []domain.LineItem
	if err := tx.Preload("Product").Where("cart_id = ?", cartID).Find(&items).Error; err != nil {
		return err
	}
	var c domain.Cart
	c.Recalculate(items)
	return tx.Model(&domain.Cart{}).Where("id = ?", cartID).
		Updates(map[string]any{"total_items": c.TotalItems, "total_price": c.TotalPrice}).Error
}
