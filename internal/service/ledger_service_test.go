package service

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Rafael22222222/smartbiz.lux/internal/model"

	"github.com/google/uuid"
)

func TestAdjustStock_Decrement(t *testing.T) {
	owner := uuid.New()
	product := &model.Product{OwnerID: owner, Name: "Rice 5kg", Quantity: 10}
	repo := newFakeProductRepo(product)
	svc := NewLedgerService(repo)

	updated, err := svc.AdjustStock(owner, product.ID, -3)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if updated.Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", updated.Quantity)
	}
}

func TestAdjustStock_Increment(t *testing.T) {
	owner := uuid.New()
	product := &model.Product{OwnerID: owner, Name: "Rice 5kg", Quantity: 10}
	repo := newFakeProductRepo(product)
	svc := NewLedgerService(repo)

	updated, err := svc.AdjustStock(owner, product.ID, 5)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if updated.Quantity != 15 {
		t.Errorf("expected quantity 15, got %d", updated.Quantity)
	}
}

func TestAdjustStock_InsufficientStock(t *testing.T) {
	owner := uuid.New()
	product := &model.Product{OwnerID: owner, Name: "Rice 5kg", Quantity: 2}
	repo := newFakeProductRepo(product)
	svc := NewLedgerService(repo)

	_, err := svc.AdjustStock(owner, product.ID, -5)
	if !errors.Is(err, model.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got: %v", err)
	}
	if got := repo.quantity(product.ID); got != 2 {
		t.Errorf("quantity changed on failed adjust: got %d, want 2", got)
	}
}

func TestAdjustStock_NotFound(t *testing.T) {
	owner := uuid.New()
	repo := newFakeProductRepo()
	svc := NewLedgerService(repo)

	_, err := svc.AdjustStock(owner, uuid.New(), -1)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestAdjustStock_WrongOwner(t *testing.T) {
	owner := uuid.New()
	product := &model.Product{OwnerID: owner, Name: "Rice 5kg", Quantity: 10}
	repo := newFakeProductRepo(product)
	svc := NewLedgerService(repo)

	_, err := svc.AdjustStock(uuid.New(), product.ID, -1)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign owner, got: %v", err)
	}
}

func TestAdjustStock_ZeroDelta(t *testing.T) {
	owner := uuid.New()
	product := &model.Product{OwnerID: owner, Name: "Rice 5kg", Quantity: 10}
	repo := newFakeProductRepo(product)
	svc := NewLedgerService(repo)

	updated, err := svc.AdjustStock(owner, product.ID, 0)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if updated.Quantity != 10 {
		t.Errorf("expected quantity 10, got %d", updated.Quantity)
	}
}

// Stock must never go negative no matter how decrements interleave.
func TestAdjustStock_Concurrent(t *testing.T) {
	initialStock := 20
	totalRequests := 50

	owner := uuid.New()
	product := &model.Product{OwnerID: owner, Name: "Rice 5kg", Quantity: initialStock}
	repo := newFakeProductRepo(product)
	svc := NewLedgerService(repo)

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AdjustStock(owner, product.ID, -1); err == nil {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != int32(initialStock) {
		t.Errorf("expected %d successes, got %d", initialStock, successCount.Load())
	}
	if got := repo.quantity(product.ID); got != 0 {
		t.Errorf("expected final quantity 0, got %d", got)
	}
}

func TestGetAvailableStock(t *testing.T) {
	owner := uuid.New()
	product := &model.Product{OwnerID: owner, Name: "Rice 5kg", Quantity: 42}
	repo := newFakeProductRepo(product)
	svc := NewLedgerService(repo)

	qty, err := svc.GetAvailableStock(owner, product.ID)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if qty != 42 {
		t.Errorf("expected 42, got %d", qty)
	}

	if _, err := svc.GetAvailableStock(owner, uuid.New()); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestListLowStock(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	repo := newFakeProductRepo(
		&model.Product{OwnerID: owner, Name: "Beans", Quantity: 3, LowStockThreshold: 5},
		&model.Product{OwnerID: owner, Name: "Rice", Quantity: 1, LowStockThreshold: 5},
		&model.Product{OwnerID: owner, Name: "Garri", Quantity: 4, LowStockThreshold: 5},
		&model.Product{OwnerID: owner, Name: "Oil", Quantity: 50, LowStockThreshold: 5},
		&model.Product{OwnerID: other, Name: "Salt", Quantity: 0, LowStockThreshold: 5},
	)
	svc := NewLedgerService(repo)

	products, err := svc.ListLowStock(owner, 2)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Rice" || products[1].Name != "Beans" {
		t.Errorf("expected [Rice Beans] ascending by quantity, got [%s %s]", products[0].Name, products[1].Name)
	}
	for _, p := range products {
		if p.Quantity > p.LowStockThreshold {
			t.Errorf("product %s is not low stock (qty %d, threshold %d)", p.Name, p.Quantity, p.LowStockThreshold)
		}
	}

	// No intervening writes: identical results on a second call
	again, err := svc.ListLowStock(owner, 2)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if len(again) != 2 || again[0].ID != products[0].ID || again[1].ID != products[1].ID {
		t.Error("expected identical results on repeated call")
	}
}

func TestListLowStock_DefaultLimit(t *testing.T) {
	owner := uuid.New()
	repo := newFakeProductRepo()
	for i := 0; i < 10; i++ {
		repo.Create(&model.Product{OwnerID: owner, Name: "P", Quantity: i, LowStockThreshold: 100})
	}
	svc := NewLedgerService(repo)

	products, err := svc.ListLowStock(owner, 0)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if len(products) != defaultLowStockLimit {
		t.Errorf("expected default limit %d, got %d", defaultLowStockLimit, len(products))
	}
}
