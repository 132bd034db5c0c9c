package repositories

import (
	"fmt"

	"freshcart/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database. The existence check is
// explicit because Save would upsert a missing record instead of failing.
func (r *GORMProductRepository) Update(product *models.Product) error {
	var existing models.Product
	if err := r.db.First(&existing, "id = ?", product.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
		}
		return fmt.Errorf("failed to load product %s: %w", product.ID, err)
	}
	if err := r.db.Save(product).Error; err != nil { // Save updates all fields, including zero values
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete deletes a product by its ID, cascading deletion of its activity log
// rows in the same transaction.
func (r *GORMProductRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		if err := tx.Delete(&models.UserActivity{}, "product_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete activities for product %s: %w", id, err)
		}
		return nil
	})
}

// TopSelling retrieves the best-selling products, sold descending.
func (r *GORMProductRepository) TopSelling(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("sold DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get top-selling products: %w", err)
	}
	return products, nil
}

// TopRated retrieves the best-rated products excluding the given IDs.
func (r *GORMProductRepository) TopRated(limit int, excludeIDs []string) ([]models.Product, error) {
	var products []models.Product
	q := r.db.Order("ratings_average DESC, sold DESC").Limit(limit)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get top-rated products: %w", err)
	}
	return products, nil
}

// ByCategories retrieves products in any of the given categories excluding
// the given IDs, ordered by rating then sold count.
func (r *GORMProductRepository) ByCategories(categories []string, excludeIDs []string, limit int) ([]models.Product, error) {
	if len(categories) == 0 {
		return nil, nil
	}
	var products []models.Product
	q := r.db.Where("category IN ?", categories).
		Order("ratings_average DESC, sold DESC").
		Limit(limit)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by categories: %w", err)
	}
	return products, nil
}

// DecrementStock atomically moves qty units from quantity to sold. The guard
// on quantity keeps two concurrent checkouts from overselling the same stock.
func (r *GORMProductRepository) DecrementStock(id string, qty int) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", qty),
			"sold":     gorm.Expr("sold + ?", qty),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the product is gone or the remaining stock is too low.
		var count int64
		if err := r.db.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check product %s: %w", id, err)
		}
		if count == 0 {
			return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("insufficient stock for product %s: %w", id, ErrConflict)
	}
	return nil
}
