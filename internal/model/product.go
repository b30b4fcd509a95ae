package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	OwnerID           uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	SKU               string    `gorm:"type:varchar(50);index" json:"sku"` // optional; uniqueness per owner enforced on create
	Name              string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description       string    `gorm:"type:text" json:"description,omitempty"`
	CostPrice         float64   `gorm:"not null;default:0" json:"cost_price" validate:"gte=0"`
	SellingPrice      float64   `gorm:"not null;default:0" json:"selling_price" validate:"gte=0"`
	Quantity          int       `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	LowStockThreshold int       `gorm:"not null;default:5" json:"low_stock_threshold" validate:"gte=0"`

	// Bumped on every stock or field mutation; conditional updates check it
	// to detect concurrent writers.
	Version int `gorm:"not null;default:0" json:"version"`
}

// IsLowStock reports whether the product is at or below its restock threshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

// ProfitMargin returns the margin percentage based on current prices.
// Zero when the selling price is zero.
func (p *Product) ProfitMargin() float64 {
	if p.SellingPrice == 0 {
		return 0
	}
	return (p.SellingPrice - p.CostPrice) / p.SellingPrice * 100
}
