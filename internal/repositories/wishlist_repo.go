package repositories

import (
	"freshcart/internal/models"
)

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	// Add saves a (user, product) pair; returns ErrDuplicate if already saved.
	Add(item *models.WishlistItem) error
	Remove(userID, productID string) error
	ListByUser(userID string) ([]models.WishlistItem, error)
}
