package service

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Rafael22222222/smartbiz.lux/internal/model"
	"github.com/Rafael22222222/smartbiz.lux/internal/repository"
	"github.com/Rafael22222222/smartbiz.lux/internal/ws"
	"github.com/Rafael22222222/smartbiz.lux/pkg/validator"

	"github.com/google/uuid"
)

// TransactionService performs the compound writes: a sale is a sale row plus
// a stock decrement. The store offers no transaction spanning the sale insert
// and the stock step, so the two are strictly ordered and a late failure
// surfaces as *model.PartialCommitError instead of being rolled back. The
// stock decrement itself commits together with the sale's stock_applied flag,
// so reconciliation can always trust the flag.
type TransactionService interface {
	RecordSale(ownerID uuid.UUID, req *RecordSaleRequest) (*model.Sale, error)
	ReconcileSale(ownerID, saleID uuid.UUID) (*model.Sale, error)
	RecordExpense(ownerID uuid.UUID, req *RecordExpenseRequest) (*model.Expense, error)
	GetSales(ownerID uuid.UUID) ([]model.Sale, error)
	GetSale(ownerID, id uuid.UUID) (*model.Sale, error)
	GetExpenses(ownerID uuid.UUID) ([]model.Expense, error)
}

type RecordSaleRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `json:"unit_price" validate:"gte=0"`
}

type RecordExpenseRequest struct {
	Description string                `json:"description" validate:"required"`
	Amount      float64               `json:"amount" validate:"gte=0"`
	Category    model.ExpenseCategory `json:"category" validate:"required,oneof=rent utilities stock transport salaries other"`
	ExpenseDate *time.Time            `json:"expense_date"`
}

type transactionService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
	wsHub       *ws.Hub
}

func NewTransactionService(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	hub *ws.Hub,
) TransactionService {
	return &transactionService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
		wsHub:       hub,
	}
}

func validationError(data interface{}) *model.ValidationError {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		return &model.ValidationError{
			Field:  errs[0].FailedField,
			Reason: "failed on tag '" + errs[0].Tag + "'",
		}
	}
	return nil
}

// RecordSale persists the sale first, then decrements stock. The profit is a
// snapshot from the product's cost price right now; editing the product later
// never changes it.
func (s *transactionService) RecordSale(ownerID uuid.UUID, req *RecordSaleRequest) (*model.Sale, error) {
	if verr := validationError(req); verr != nil {
		return nil, verr
	}

	product, err := s.productRepo.FindByID(ownerID, req.ProductID)
	if err != nil {
		return nil, err
	}

	if req.Quantity > product.Quantity {
		return nil, model.ErrInsufficientStock
	}

	totalPrice := float64(req.Quantity) * req.UnitPrice
	profit := totalPrice - float64(req.Quantity)*product.CostPrice

	sale := &model.Sale{
		OwnerID:    ownerID,
		ProductID:  product.ID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		TotalPrice: totalPrice,
		Profit:     profit,
		SaleDate:   time.Now(),
	}

	if err := s.saleRepo.Create(sale); err != nil {
		// Nothing was persisted; the stock step never ran.
		return nil, err
	}

	updated, err := s.applySaleStock(sale)
	if err != nil {
		// The sale row exists but the stock does not reflect it. The caller
		// must reconcile via ReconcileSale rather than retry the whole sale.
		return nil, &model.PartialCommitError{Sale: sale, Err: err}
	}

	s.broadcastSale(sale, updated)

	return sale, nil
}

// ReconcileSale re-runs just the stock decrement for a sale whose first
// attempt ended in PartialCommit. Idempotent: a sale whose stock was already
// applied is returned unchanged, never decremented twice. Because the
// decrement and the stock_applied flag commit atomically, the flag is a
// reliable guard here.
func (s *transactionService) ReconcileSale(ownerID, saleID uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(ownerID, saleID)
	if err != nil {
		return nil, err
	}

	if sale.StockApplied {
		return sale, nil
	}

	updated, err := s.applySaleStock(sale)
	if err != nil {
		return nil, err
	}

	s.broadcastSale(sale, updated)

	return sale, nil
}

// applySaleStock runs the atomic decrement-and-flag step. A zero-row result
// is ambiguous (missing product, would-be-negative quantity, or a concurrent
// writer), so the product is re-read to classify it; the transient case is
// retried a bounded number of times.
func (s *transactionService) applySaleStock(sale *model.Sale) (*model.Product, error) {
	for attempt := 0; attempt < adjustStockRetries; attempt++ {
		affected, err := s.saleRepo.ApplyStock(sale)
		if err != nil {
			return nil, err
		}
		if affected > 0 {
			sale.StockApplied = true
			return s.productRepo.FindByID(sale.OwnerID, sale.ProductID)
		}

		product, err := s.productRepo.FindByID(sale.OwnerID, sale.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Quantity-sale.Quantity < 0 {
			return nil, model.ErrInsufficientStock
		}
		// The observed quantity would have allowed the decrement, so another
		// writer slipped in between the update and the re-read.
	}

	return nil, model.ErrConflict
}

func (s *transactionService) RecordExpense(ownerID uuid.UUID, req *RecordExpenseRequest) (*model.Expense, error) {
	if verr := validationError(req); verr != nil {
		return nil, verr
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, &model.ValidationError{Field: "description", Reason: "must not be empty"}
	}

	expenseDate := time.Now()
	if req.ExpenseDate != nil {
		expenseDate = *req.ExpenseDate
	}

	expense := &model.Expense{
		OwnerID:     ownerID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		ExpenseDate: expenseDate,
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	return expense, nil
}

func (s *transactionService) GetSales(ownerID uuid.UUID) ([]model.Sale, error) {
	return s.saleRepo.FindAll(ownerID)
}

func (s *transactionService) GetSale(ownerID, id uuid.UUID) (*model.Sale, error) {
	return s.saleRepo.FindByID(ownerID, id)
}

func (s *transactionService) GetExpenses(ownerID uuid.UUID) ([]model.Expense, error) {
	return s.expenseRepo.FindAll(ownerID)
}

func (s *transactionService) broadcastSale(sale *model.Sale, product *model.Product) {
	go func() {
		payload := map[string]interface{}{
			"type": "sale_recorded",
			"sale": map[string]interface{}{
				"id":          sale.ID,
				"product_id":  sale.ProductID,
				"quantity":    sale.Quantity,
				"total_price": sale.TotalPrice,
				"profit":      sale.Profit,
			},
			"product": map[string]interface{}{
				"id":        product.ID,
				"name":      product.Name,
				"new_stock": product.Quantity,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg

		if product.IsLowStock() {
			alert := map[string]interface{}{
				"type": "low_stock_alert",
				"product": map[string]interface{}{
					"id":        product.ID,
					"name":      product.Name,
					"sku":       product.SKU,
					"quantity":  product.Quantity,
					"threshold": product.LowStockThreshold,
				},
			}
			msg, _ := json.Marshal(alert)
			s.wsHub.Broadcast <- msg
		}
	}()
}
