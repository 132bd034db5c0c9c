package models

import "time"

// ActivityAction is the kind of tracked user interaction.
type ActivityAction string

// Tracked interaction kinds, in increasing order of purchase intent.
const (
	ActionView      ActivityAction = "VIEW"
	ActionWishlist  ActivityAction = "WISHLIST"
	ActionAddToCart ActivityAction = "ADD_TO_CART"
	ActionPurchase  ActivityAction = "PURCHASE"
)

// Valid reports whether the action is one of the tracked kinds.
func (a ActivityAction) Valid() bool {
	switch a {
	case ActionView, ActionWishlist, ActionAddToCart, ActionPurchase:
		return true
	}
	return false
}

// UserActivity is one immutable entry in the append-only interaction log.
// Weight is assigned from the configured action table at creation time and
// never recomputed; rows are deleted only as a cascade when the referenced
// product is deleted.
type UserActivity struct {
	ID        string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string         `json:"userId" gorm:"index;type:varchar(36)"`
	ProductID string         `json:"productId" gorm:"index;type:varchar(36)"`
	Action    ActivityAction `json:"action" gorm:"type:varchar(20)" validate:"required,oneof=VIEW WISHLIST ADD_TO_CART PURCHASE"`
	Weight    int            `json:"weight"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index"`
}
