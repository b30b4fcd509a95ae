package repository

import (
	"errors"
	"fmt"

	"github.com/Rafael22222222/smartbiz.lux/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(ownerID uuid.UUID) ([]model.Product, error)
	FindByID(ownerID, id uuid.UUID) (*model.Product, error)
	FindBySKU(ownerID uuid.UUID, sku string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(ownerID, id uuid.UUID) error
	AdjustQuantity(ownerID, id uuid.UUID, delta int) (int64, error)
	FindLowStock(ownerID uuid.UUID, limit int) ([]model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
}

func (r *productRepo) Create(product *model.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *productRepo) FindAll(ownerID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&products).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return products, nil
}

func (r *productRepo) FindByID(ownerID, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ? AND owner_id = ?", id, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(ownerID uuid.UUID, sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "owner_id = ? AND sku = ?", ownerID, sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &product, nil
}

// Update writes all editable fields. The version predicate rejects writes
// against a row another caller changed since this product was read.
func (r *productRepo) Update(product *model.Product) error {
	res := r.db.Model(&model.Product{}).
		Where("id = ? AND owner_id = ? AND version = ?", product.ID, product.OwnerID, product.Version).
		Updates(map[string]interface{}{
			"name":                product.Name,
			"description":         product.Description,
			"sku":                 product.SKU,
			"cost_price":          product.CostPrice,
			"selling_price":       product.SellingPrice,
			"quantity":            product.Quantity,
			"low_stock_threshold": product.LowStockThreshold,
			"version":             product.Version + 1,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrConflict
	}
	product.Version++
	return nil
}

func (r *productRepo) Delete(ownerID, id uuid.UUID) error {
	res := r.db.Where("owner_id = ?", ownerID).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// AdjustQuantity applies quantity += delta as a single conditional update so
// two concurrent sales can never drive the quantity below zero. Returns the
// number of rows affected; zero means the product is missing or the delta
// would make the quantity negative.
func (r *productRepo) AdjustQuantity(ownerID, id uuid.UUID, delta int) (int64, error) {
	res := r.db.Model(&model.Product{}).
		Where("id = ? AND owner_id = ? AND quantity + ? >= 0", id, ownerID, delta).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", delta),
			"version":  gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return 0, storeErr(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *productRepo) FindLowStock(ownerID uuid.UUID, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Where("owner_id = ? AND quantity <= low_stock_threshold", ownerID).
		Order("quantity ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return products, nil
}
