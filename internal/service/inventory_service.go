package service

import (
	"encoding/json"
	"errors"

	"github.com/Rafael22222222/smartbiz.lux/internal/model"
	"github.com/Rafael22222222/smartbiz.lux/internal/repository"
	"github.com/Rafael22222222/smartbiz.lux/internal/ws"

	"github.com/google/uuid"
)

var ErrSKUExists = errors.New("SKU already exists")

// InventoryService handles the product lifecycle. Stock movements caused by
// sales go through the ledger, not through here.
type InventoryService interface {
	CreateProduct(ownerID uuid.UUID, req *model.Product) error
	UpdateProduct(ownerID, id uuid.UUID, req *model.Product) (*model.Product, error)
	DeleteProduct(ownerID, id uuid.UUID) error
	GetProducts(ownerID uuid.UUID) ([]model.Product, error)
	GetProduct(ownerID, id uuid.UUID) (*model.Product, error)
}

type inventoryService struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
}

func NewInventoryService(productRepo repository.ProductRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{productRepo: productRepo, wsHub: hub}
}

func (s *inventoryService) CreateProduct(ownerID uuid.UUID, req *model.Product) error {
	if verr := validationError(req); verr != nil {
		return verr
	}

	// SKU must be unique per owner when provided
	if req.SKU != "" {
		existing, err := s.productRepo.FindBySKU(ownerID, req.SKU)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}
		if existing != nil {
			return ErrSKUExists
		}
	}

	req.OwnerID = ownerID
	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.broadcastProduct("product_created", req)
	return nil
}

// UpdateProduct replaces the editable fields. The write is rejected with
// ErrConflict when the row changed since it was read, so a stale form
// submission cannot silently clobber a concurrent sale's stock decrement.
func (s *inventoryService) UpdateProduct(ownerID, id uuid.UUID, req *model.Product) (*model.Product, error) {
	if verr := validationError(req); verr != nil {
		return nil, verr
	}

	existing, err := s.productRepo.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.SKU = req.SKU
	existing.CostPrice = req.CostPrice
	existing.SellingPrice = req.SellingPrice
	existing.Quantity = req.Quantity
	existing.LowStockThreshold = req.LowStockThreshold
	if req.Version != 0 {
		// The client sends back the version it read; a zero means it never
		// read one, so only the freshly loaded version guards the write.
		existing.Version = req.Version
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.broadcastProduct("product_updated", existing)
	return existing, nil
}

// DeleteProduct removes the product. Historical sales keep their snapshot
// figures and are not cascade-deleted.
func (s *inventoryService) DeleteProduct(ownerID, id uuid.UUID) error {
	if err := s.productRepo.Delete(ownerID, id); err != nil {
		return err
	}
	return nil
}

func (s *inventoryService) GetProducts(ownerID uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindAll(ownerID)
}

func (s *inventoryService) GetProduct(ownerID, id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(ownerID, id)
}

func (s *inventoryService) broadcastProduct(action string, product *model.Product) {
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": action,
			"product": map[string]interface{}{
				"id":       product.ID,
				"sku":      product.SKU,
				"name":     product.Name,
				"quantity": product.Quantity,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
