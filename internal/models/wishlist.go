package models

import "time"

// WishlistItem marks a product saved by a user. One row per (user, product) pair.
type WishlistItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"uniqueIndex:idx_wishlist_user_product;type:varchar(36)"`
	ProductID string    `json:"productId" gorm:"uniqueIndex:idx_wishlist_user_product;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt"`
}
