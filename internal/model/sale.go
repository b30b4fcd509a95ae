package model

import (
	"time"

	"github.com/google/uuid"
)

// Sale is an immutable ledger entry. TotalPrice and Profit are snapshots
// computed from the product's cost price at the moment of sale; later edits
// to the product must not change them.
type Sale struct {
	BaseModel
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	Quantity   int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64   `gorm:"not null" json:"unit_price" validate:"gte=0"`
	TotalPrice float64   `gorm:"not null" json:"total_price"`
	Profit     float64   `gorm:"not null" json:"profit"`
	SaleDate   time.Time `gorm:"not null;index" json:"sale_date"`

	// StockApplied tracks whether the product quantity has been decremented
	// for this sale. Cleared when the stock step fails after the sale row was
	// persisted, so reconciliation can retry exactly once.
	StockApplied bool `gorm:"not null;default:false" json:"stock_applied"`
}
