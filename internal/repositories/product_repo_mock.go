package repositories

import (
	"fmt"
	"sort"
	"sync"

	"freshcart/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// TopSelling returns up to limit products ordered by sold descending.
func (r *MockProductRepository) TopSelling(limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, p)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Sold > list[j].Sold
	})
	return clampProducts(list, limit), nil
}

// TopRated returns the best-rated products excluding the given IDs.
func (r *MockProductRepository) TopRated(limit int, excludeIDs []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	excluded := toSet(excludeIDs)
	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if excluded[p.ID] {
			continue
		}
		list = append(list, p)
	}
	sortByRatingThenSold(list)
	return clampProducts(list, limit), nil
}

// ByCategories returns products in the given categories excluding the given IDs.
func (r *MockProductRepository) ByCategories(categories []string, excludeIDs []string, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := toSet(categories)
	excluded := toSet(excludeIDs)
	list := make([]models.Product, 0)
	for _, p := range r.products {
		if !wanted[p.Category] || excluded[p.ID] {
			continue
		}
		list = append(list, p)
	}
	sortByRatingThenSold(list)
	return clampProducts(list, limit), nil
}

// DecrementStock moves qty units from quantity to sold.
func (r *MockProductRepository) DecrementStock(id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	if product.Quantity < qty {
		return fmt.Errorf("insufficient stock for product %s: %w", id, ErrConflict)
	}
	product.Quantity -= qty
	product.Sold += qty
	r.products[id] = product
	return nil
}

func sortByRatingThenSold(list []models.Product) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].RatingsAverage != list[j].RatingsAverage {
			return list[i].RatingsAverage > list[j].RatingsAverage
		}
		return list[i].Sold > list[j].Sold
	})
}

func clampProducts(list []models.Product, limit int) []models.Product {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
