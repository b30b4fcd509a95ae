package repository

import (
	"time"

	"github.com/Rafael22222222/smartbiz.lux/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	FindAll(ownerID uuid.UUID) ([]model.Expense, error)
	SumBetween(ownerID uuid.UUID, start, end time.Time) (float64, error)
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db}
}

func (r *expenseRepo) Create(expense *model.Expense) error {
	if err := r.db.Create(expense).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *expenseRepo) FindAll(ownerID uuid.UUID) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.Where("owner_id = ?", ownerID).Order("expense_date DESC").Find(&expenses).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return expenses, nil
}

// SumBetween aggregates expense amounts over [start, end).
func (r *expenseRepo) SumBetween(ownerID uuid.UUID, start, end time.Time) (float64, error) {
	var amount float64
	err := r.db.Model(&model.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("owner_id = ? AND expense_date >= ? AND expense_date < ?", ownerID, start, end).
		Scan(&amount).Error
	if err != nil {
		return 0, storeErr(err)
	}
	return amount, nil
}
