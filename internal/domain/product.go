package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:180;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// ProductView is a catalog product annotated with membership in one guest's cart.
type ProductView struct {
	Product
	InCart bool `json:"in_cart"`
}
