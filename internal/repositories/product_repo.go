package repositories

import (
	"freshcart/internal/models"
)

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	// Delete removes a product and cascades deletion of its activity rows.
	Delete(id string) error

	// TopSelling returns up to limit products ordered by sold descending.
	TopSelling(limit int) ([]models.Product, error)
	// TopRated returns up to limit products ordered by ratings average then
	// sold count, both descending, skipping the excluded IDs.
	TopRated(limit int, excludeIDs []string) ([]models.Product, error)
	// ByCategories returns up to limit products in any of the given
	// categories, skipping the excluded IDs, ordered by ratings average then
	// sold count, both descending.
	ByCategories(categories []string, excludeIDs []string, limit int) ([]models.Product, error)
	// DecrementStock atomically decrements quantity and increments sold for
	// a fulfilled order line. Returns ErrConflict when stock is insufficient
	// and ErrNotFound when the product does not exist.
	DecrementStock(id string, qty int) error
}
