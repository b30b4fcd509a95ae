package service

import (
	"github.com/Rafael22222222/smartbiz.lux/internal/model"
	"github.com/Rafael22222222/smartbiz.lux/internal/repository"

	"github.com/google/uuid"
)

// Bounded retry for the conditional stock update before giving up with
// ErrConflict.
const adjustStockRetries = 3

const defaultLowStockLimit = 5

// LedgerService owns the product stock invariant: quantity never goes
// negative, no matter how calls interleave.
type LedgerService interface {
	GetAvailableStock(ownerID, productID uuid.UUID) (int, error)
	AdjustStock(ownerID, productID uuid.UUID, delta int) (*model.Product, error)
	ListLowStock(ownerID uuid.UUID, limit int) ([]model.Product, error)
}

type ledgerService struct {
	productRepo repository.ProductRepository
}

func NewLedgerService(productRepo repository.ProductRepository) LedgerService {
	return &ledgerService{productRepo: productRepo}
}

func (s *ledgerService) GetAvailableStock(ownerID, productID uuid.UUID) (int, error) {
	product, err := s.productRepo.FindByID(ownerID, productID)
	if err != nil {
		return 0, err
	}
	return product.Quantity, nil
}

// AdjustStock applies quantity += delta through a conditional store update.
// A zero-row result is ambiguous (missing product, would-be-negative
// quantity, or a concurrent writer), so the state is re-read to classify it;
// the genuinely transient case is retried a bounded number of times.
func (s *ledgerService) AdjustStock(ownerID, productID uuid.UUID, delta int) (*model.Product, error) {
	if delta == 0 {
		return s.productRepo.FindByID(ownerID, productID)
	}

	for attempt := 0; attempt < adjustStockRetries; attempt++ {
		affected, err := s.productRepo.AdjustQuantity(ownerID, productID, delta)
		if err != nil {
			return nil, err
		}
		if affected > 0 {
			return s.productRepo.FindByID(ownerID, productID)
		}

		product, err := s.productRepo.FindByID(ownerID, productID)
		if err != nil {
			return nil, err
		}
		if product.Quantity+delta < 0 {
			return nil, model.ErrInsufficientStock
		}
		// The observed quantity would have allowed the update, so another
		// writer slipped in between the update and the re-read.
	}

	return nil, model.ErrConflict
}

// ListLowStock returns products at or below their restock threshold,
// ascending by quantity. The threshold comparison runs inside the store
// query, so matches are never lost to a fetch-window cutoff.
func (s *ledgerService) ListLowStock(ownerID uuid.UUID, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = defaultLowStockLimit
	}
	return s.productRepo.FindLowStock(ownerID, limit)
}
