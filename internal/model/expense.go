package model

import (
	"time"

	"github.com/google/uuid"
)

type ExpenseCategory string

const (
	ExpenseRent      ExpenseCategory = "rent"
	ExpenseUtilities ExpenseCategory = "utilities"
	ExpenseStock     ExpenseCategory = "stock"
	ExpenseTransport ExpenseCategory = "transport"
	ExpenseSalaries  ExpenseCategory = "salaries"
	ExpenseOther     ExpenseCategory = "other"
)

// Expense is an immutable ledger entry.
type Expense struct {
	BaseModel
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Description string          `gorm:"type:varchar(255);not null" json:"description" validate:"required"`
	Amount      float64         `gorm:"not null" json:"amount" validate:"gte=0"`
	Category    ExpenseCategory `gorm:"type:varchar(20);not null" json:"category" validate:"required,oneof=rent utilities stock transport salaries other"`
	ExpenseDate time.Time       `gorm:"not null;index" json:"expense_date"`
}
