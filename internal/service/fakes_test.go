package service

import (
	"sort"
	"sync"
	"time"

	"github.com/Rafael22222222/smartbiz.lux/internal/model"

	"github.com/google/uuid"
)

// In-memory fakes implementing the repository interfaces.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product

	adjustErr error // forced failure for the stock step
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		cp := *p
		repo.products[p.ID] = &cp
	}
	return repo
}

func (m *fakeProductRepo) Create(product *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *fakeProductRepo) FindAll(ownerID uuid.UUID) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Product
	for _, p := range m.products {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *fakeProductRepo) FindByID(ownerID, id uuid.UUID) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, model.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *fakeProductRepo) FindBySKU(ownerID uuid.UUID, sku string) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.OwnerID == ownerID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *fakeProductRepo) Update(product *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[product.ID]
	if !ok || p.OwnerID != product.OwnerID || p.Version != product.Version {
		return model.ErrConflict
	}
	cp := *product
	cp.Version++
	m.products[product.ID] = &cp
	product.Version++
	return nil
}

func (m *fakeProductRepo) Delete(ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok || p.OwnerID != ownerID {
		return model.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *fakeProductRepo) AdjustQuantity(ownerID, id uuid.UUID, delta int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.adjustErr != nil {
		return 0, m.adjustErr
	}
	p, ok := m.products[id]
	if !ok || p.OwnerID != ownerID {
		return 0, nil
	}
	if p.Quantity+delta < 0 {
		return 0, nil
	}
	p.Quantity += delta
	p.Version++
	return 1, nil
}

func (m *fakeProductRepo) FindLowStock(ownerID uuid.UUID, limit int) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Product
	for _, p := range m.products {
		if p.OwnerID == ownerID && p.Quantity <= p.LowStockThreshold {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *fakeProductRepo) quantity(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].Quantity
}

type fakeSaleRepo struct {
	mu       sync.Mutex
	sales    []*model.Sale
	products *fakeProductRepo // backs ApplyStock's decrement

	createErr error
	applyErr  error // forced failure for the whole atomic stock step
}

func (m *fakeSaleRepo) Create(sale *model.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	cp := *sale
	m.sales = append(m.sales, &cp)
	return nil
}

func (m *fakeSaleRepo) FindAll(ownerID uuid.UUID) ([]model.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Sale
	for _, s := range m.sales {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *fakeSaleRepo) FindByID(ownerID, id uuid.UUID) (*model.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sales {
		if s.ID == id && s.OwnerID == ownerID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

// ApplyStock mirrors the real repo's single transaction: the decrement and
// the stock_applied flag either both happen or neither does.
func (m *fakeSaleRepo) ApplyStock(sale *model.Sale) (int64, error) {
	m.mu.Lock()
	if m.applyErr != nil {
		m.mu.Unlock()
		return 0, m.applyErr
	}
	var stored *model.Sale
	for _, s := range m.sales {
		if s.ID == sale.ID && s.OwnerID == sale.OwnerID {
			stored = s
			break
		}
	}
	m.mu.Unlock()
	if stored == nil {
		return 0, model.ErrNotFound
	}

	affected, err := m.products.AdjustQuantity(sale.OwnerID, sale.ProductID, -sale.Quantity)
	if err != nil || affected == 0 {
		return 0, err
	}

	m.mu.Lock()
	stored.StockApplied = true
	m.mu.Unlock()
	return affected, nil
}

func (m *fakeSaleRepo) SumBetween(ownerID uuid.UUID, start, end time.Time) (float64, float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total, profit float64
	for _, s := range m.sales {
		if s.OwnerID != ownerID {
			continue
		}
		if s.SaleDate.Before(start) || !s.SaleDate.Before(end) {
			continue
		}
		total += s.TotalPrice
		profit += s.Profit
	}
	return total, profit, nil
}

func (m *fakeSaleRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sales)
}

type fakeExpenseRepo struct {
	mu       sync.Mutex
	expenses []*model.Expense

	createErr error
}

func (m *fakeExpenseRepo) Create(expense *model.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	cp := *expense
	m.expenses = append(m.expenses, &cp)
	return nil
}

func (m *fakeExpenseRepo) FindAll(ownerID uuid.UUID) ([]model.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Expense
	for _, e := range m.expenses {
		if e.OwnerID == ownerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *fakeExpenseRepo) SumBetween(ownerID uuid.UUID, start, end time.Time) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var amount float64
	for _, e := range m.expenses {
		if e.OwnerID != ownerID {
			continue
		}
		if e.ExpenseDate.Before(start) || !e.ExpenseDate.Before(end) {
			continue
		}
		amount += e.Amount
	}
	return amount, nil
}
