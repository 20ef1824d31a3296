package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemory is a catalog implementation that keeps everything in memory.
// It backs tests and local development (CATALOG_MODE=inmemory), standing in
// for the remote service.
type InMemory struct {
	mu         sync.RWMutex
	products   []Product
	categories []Category
	images     map[string][]byte
}

func NewInMemory(categories []Category, products []Product) *InMemory {
	m := &InMemory{
		products:   make([]Product, 0, len(products)),
		categories: make([]Category, 0, len(categories)),
		images:     map[string][]byte{},
	}
	m.categories = append(m.categories, categories...)
	for _, p := range products {
		if p.ProductID == "" {
			p.ProductID = uuid.NewString()
		}
		m.products = append(m.products, p)
	}
	return m
}

func (m *InMemory) ListCategories(_ context.Context, offset, limit int) (CategoryPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	page := pageSlice(m.categories, offset, limit)
	return CategoryPage{
		Content:       page,
		TotalElements: len(m.categories),
		LastPage:      offset+limit >= len(m.categories),
	}, nil
}

func (m *InMemory) ListProducts(_ context.Context, offset, limit int, sortField, sortDir string) (ProductPage, error) {
	m.mu.RLock()
	out := make([]Product, len(m.products))
	copy(out, m.products)
	m.mu.RUnlock()

	sortProducts(out, sortField, sortDir)
	page := pageSlice(out, offset, limit)
	return ProductPage{
		Content:       page,
		TotalElements: len(out),
		LastPage:      offset+limit >= len(out),
	}, nil
}

func (m *InMemory) CreateProduct(_ context.Context, p NewProduct) (string, error) {
	return m.insert(p), nil
}

func (m *InMemory) CreateProductInCategory(_ context.Context, p NewProduct, categoryID string) (string, error) {
	m.mu.RLock()
	found := false
	for _, c := range m.categories {
		if c.CategoryID == categoryID {
			found = true
			break
		}
	}
	m.mu.RUnlock()
	if !found {
		return "", ErrNoSuchCategory
	}
	return m.insert(p), nil
}

func (m *InMemory) insert(p NewProduct) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := Product{
		ProductID:       uuid.NewString(),
		Title:           p.Title,
		Description:     p.Description,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
		Quantity:        p.Quantity,
		Live:            p.Live,
		Stock:           p.Stock,
		AddedDate:       time.Now().UTC().Format(time.RFC3339),
	}
	m.products = append(m.products, created)
	return created.ProductID
}

func (m *InMemory) UploadProductImage(_ context.Context, productID, filename, _ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ProductID == productID {
			b := make([]byte, len(data))
			copy(b, data)
			m.images[productID] = b
			m.products[i].ImageName = filename
			return nil
		}
	}
	return ErrNotFound
}

func (m *InMemory) UpdateProduct(_ context.Context, productID string, p NewProduct) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ProductID == productID {
			m.products[i].Title = p.Title
			m.products[i].Description = p.Description
			m.products[i].Price = p.Price
			m.products[i].DiscountedPrice = p.DiscountedPrice
			m.products[i].Quantity = p.Quantity
			m.products[i].Live = p.Live
			m.products[i].Stock = p.Stock
			return nil
		}
	}
	return ErrNotFound
}

// Image returns the stored image bytes for a product, if any.
func (m *InMemory) Image(productID string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.images[productID]
	return b, ok
}

func pageSlice[T any](in []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(in) {
		return []T{}
	}
	end := len(in)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]T, end-offset)
	copy(out, in[offset:end])
	return out
}

func sortProducts(out []Product, sortField, sortDir string) {
	sort.SliceStable(out, func(i, j int) bool {
		if sortDir == "desc" {
			i, j = j, i
		}
		switch sortField {
		case "price":
			return out[i].Price < out[j].Price
		case "title":
			return out[i].Title < out[j].Title
		default: // addedDate
			return out[i].AddedDate < out[j].AddedDate
		}
	})
}
