package repositories

import (
	"encoding/json"
	"fmt"

	"freshcart/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUserID retrieves a user's cart from the database.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.First(&cart, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// Create creates a new cart in the database.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if len(cart.Items) == 0 {
		cart.Items = json.RawMessage("[]")
	}
	if err := r.db.Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// UpdateItems writes the items column guarded by the version token. The WHERE
// on version is what turns a lost race into ErrConflict instead of a silently
// dropped update.
func (r *GORMCartRepository) UpdateItems(cart *models.Cart, items json.RawMessage) error {
	res := r.db.Model(&models.Cart{}).
		Where("id = ? AND version = ?", cart.ID, cart.Version).
		Updates(map[string]interface{}{
			"items":   string(items),
			"version": cart.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update cart %s: %w", cart.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart %s was modified concurrently: %w", cart.ID, ErrConflict)
	}
	cart.Items = items
	cart.Version++
	return nil
}
