package repository

import (
	"errors"
	"time"

	"github.com/Rafael22222222/smartbiz.lux/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(sale *model.Sale) error
	FindAll(ownerID uuid.UUID) ([]model.Sale, error)
	FindByID(ownerID, id uuid.UUID) (*model.Sale, error)
	ApplyStock(sale *model.Sale) (int64, error)
	SumBetween(ownerID uuid.UUID, start, end time.Time) (total float64, profit float64, err error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(sale *model.Sale) error {
	if err := r.db.Create(sale).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *saleRepo) FindAll(ownerID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").
		Where("owner_id = ?", ownerID).
		Order("sale_date DESC").
		Find(&sales).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return sales, nil
}

func (r *saleRepo) FindByID(ownerID, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Product").First(&sale, "id = ? AND owner_id = ?", id, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &sale, nil
}

// ApplyStock decrements the product quantity for this sale and sets the
// stock_applied flag in one store transaction. The flag can therefore never
// disagree with the stock: either both commit or neither does. Sale business
// fields are never updated.
//
// Returns the affected row count of the product update; zero means the
// product is missing or the decrement would make the quantity negative, with
// nothing written.
func (r *saleRepo) ApplyStock(sale *model.Sale) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Product{}).
			Where("id = ? AND owner_id = ? AND quantity - ? >= 0", sale.ProductID, sale.OwnerID, sale.Quantity).
			Updates(map[string]interface{}{
				"quantity": gorm.Expr("quantity - ?", sale.Quantity),
				"version":  gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			// Nothing written; the caller classifies the zero-row result.
			return nil
		}

		mark := tx.Model(&model.Sale{}).
			Where("id = ? AND owner_id = ?", sale.ID, sale.OwnerID).
			Update("stock_applied", true)
		if mark.Error != nil {
			return mark.Error
		}
		if mark.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
	if errors.Is(err, model.ErrNotFound) {
		return 0, err
	}
	if err != nil {
		return 0, storeErr(err)
	}
	return affected, nil
}

// SumBetween aggregates total revenue and profit over [start, end).
func (r *saleRepo) SumBetween(ownerID uuid.UUID, start, end time.Time) (float64, float64, error) {
	var total, profit float64
	row := r.db.Model(&model.Sale{}).
		Select("COALESCE(SUM(total_price), 0), COALESCE(SUM(profit), 0)").
		Where("owner_id = ? AND sale_date >= ? AND sale_date < ?", ownerID, start, end).
		Row()
	if err := row.Scan(&total, &profit); err != nil {
		return 0, 0, storeErr(err)
	}
	return total, profit, nil
}
