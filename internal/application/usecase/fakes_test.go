package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de repositorio
// ──────────────────────────────────────────────────────────────────────────────

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type memCategories struct {
	mu      sync.Mutex
	byID    map[string]entity.Category
	getErr  error
	saveErr error
	saves   int
}

func newMemCategories(cats ...*entity.Category) *memCategories {
	m := &memCategories{byID: map[string]entity.Category{}}
	for _, c := range cats {
		m.byID[c.ID] = *copyCategory(c)
	}
	return m
}

func copyCategory(c *entity.Category) *entity.Category {
	cp := *c
	cp.Servings = append([]string(nil), c.Servings...)
	cp.SaleHistory = append([]entity.SaleHistoryEntry(nil), c.SaleHistory...)
	return &cp
}

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.Version = 1
	m.byID[c.ID] = *copyCategory(c)
	return nil
}

func (m *memCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return copyCategory(&c), nil
}

func (m *memCategories) GetByName(_ context.Context, name string) (*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if c.Name == name {
			return copyCategory(&c), nil
		}
	}
	return nil, nil
}

func (m *memCategories) List(_ context.Context) ([]*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Category, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, copyCategory(&c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategories) Save(_ context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	stored, ok := m.byID[c.ID]
	if !ok || stored.Version != c.Version {
		return domain.ErrConflict
	}
	c.Version++
	m.byID[c.ID] = *copyCategory(c)
	m.saves++
	return nil
}

func (m *memCategories) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

// stored devuelve el documento tal como quedó guardado.
func (m *memCategories) stored(id string) entity.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id]
}

type memProducts struct {
	mu   sync.Mutex
	byID map[string]entity.Product
}

func newMemProducts(ps ...*entity.Product) *memProducts {
	m := &memProducts{byID: map[string]entity.Product{}}
	for _, p := range ps {
		m.byID[p.ID] = *p
	}
	return m
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[p.ID] = *p
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memProducts) find(match func(entity.Product) bool) *entity.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if match(p) {
			return &p
		}
	}
	return nil
}

func (m *memProducts) GetByName(_ context.Context, name string) (*entity.Product, error) {
	return m.find(func(p entity.Product) bool { return p.Name == name }), nil
}

func (m *memProducts) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	return m.find(func(p entity.Product) bool { return p.SKU == sku }), nil
}

func (m *memProducts) List(_ context.Context) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Product, 0, len(m.byID))
	for _, p := range m.byID {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[p.ID] = *p
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

func (m *memProducts) CountByCategory(_ context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int{}
	for _, p := range m.byID {
		counts[p.Category]++
	}
	return counts, nil
}

func (m *memProducts) RenameCategory(_ context.Context, from, to string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, p := range m.byID {
		if p.Category == from {
			p.Category = to
			m.byID[id] = p
			n++
		}
	}
	return n, nil
}

// inlineTx ejecuta fn directamente sobre los fakes (sin rollback).
type inlineTx struct {
	cats  *memCategories
	prods *memProducts
	runs  int
}

func (tx *inlineTx) RunCatalog(_ context.Context, fn func(repository.CategoryRepository, repository.ProductRepository) error) error {
	tx.runs++
	return fn(tx.cats, tx.prods)
}

type recordedOp struct {
	branch, outcome string
}

type spyRecorder struct {
	ops []recordedOp
}

func (s *spyRecorder) RecordSaleOperation(branch, outcome string, _ time.Duration) {
	s.ops = append(s.ops, recordedOp{branch: branch, outcome: outcome})
}
