package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the aggregate root for one guest's shopping cart. TotalItems and
// TotalPrice are denormalized sums over Items; they are recomputed wholesale
// after every mutation, never patched incrementally.
type Cart struct {
	ID         uint            `gorm:"primaryKey" json:"-"`
	GuestID    string          `gorm:"uniqueIndex;size:64;not null" json:"guest_id"`
	TotalItems int             `gorm:"not null;default:0" json:"total_items"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_price"`
	Items      []LineItem      `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time       `json:"-"`
	UpdatedAt  time.Time       `json:"-"`
}

// LineItem associates one product with a quantity inside one cart. A cart holds
// at most one line item per product.
type LineItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CartID    uint      `gorm:"index;uniqueIndex:idx_line_items_cart_product" json:"-"`
	ProductID uint      `gorm:"uniqueIndex:idx_line_items_cart_product" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// MergePolicy names the rule applied when a product already in the cart is
// added again.
type MergePolicy int

const (
	// MergeAdd sums the new quantity into the existing one. This matches the
	// usual cart convention and is the behavior the service ships with.
	MergeAdd MergePolicy = iota
	// MergeReplace overwrites the existing quantity with the new value.
	MergeReplace
)

// Merge resolves the quantity a line item ends up with after a repeat add.
func (p MergePolicy) Merge(existing, added int) int {
	if p == MergeReplace {
		return added
	}
	return existing + added
}

// Recalculate derives TotalItems and TotalPrice from the items passed in,
// using each item's joined product price. Callers must hand it the complete
// current set of line items for the cart.
func (c *Cart) Recalculate(items []LineItem) {
	c.TotalItems = 0
	c.TotalPrice = decimal.Zero
	for _, it := range items {
		c.TotalItems += it.Quantity
		c.TotalPrice = c.TotalPrice.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
}
