package repositories

import (
	"encoding/json"

	"freshcart/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// GetByUserID returns the user's cart, or ErrNotFound if none exists yet.
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	// UpdateItems persists a new items column with a compare-and-swap on the
	// cart's version. Returns ErrConflict when a concurrent write advanced
	// the version first; on success the in-memory cart is refreshed.
	UpdateItems(cart *models.Cart, items json.RawMessage) error
}
