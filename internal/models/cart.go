package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// Cart is the one-per-user shopping cart. Items are persisted as a raw JSON
// column because historical records drifted between two storage shapes: a
// proper array, and an object whose values are the items. ParseCartItems
// accepts both; the reconciler in the cart service normalizes the result.
type Cart struct {
	ID         string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string          `json:"userId" gorm:"uniqueIndex;type:varchar(36)"`
	Items      json.RawMessage `json:"items" gorm:"type:text"`
	Version    int             `json:"version"` // optimistic-concurrency token for cart writes
	gorm.Model                 // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CartItem is the parsed form of one entry in Cart.Items.
// ProductID is the sole source of truth for identity; ID is derived from it.
type CartItem struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *ProductSnapshot `json:"product,omitempty"`
}

// ProductSnapshot is the trimmed copy of catalog fields embedded in cart and
// order items at the time they were added or last reconciled.
type ProductSnapshot struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	ImageCover string  `json:"imageCover"`
	Category   string  `json:"category"`
	Brand      string  `json:"brand"`
}

// SnapshotOf trims a catalog product down to the fields embedded in carts and orders.
func SnapshotOf(p *Product) *ProductSnapshot {
	return &ProductSnapshot{
		ID:         p.ID,
		Title:      p.Title,
		Price:      p.Price,
		ImageCover: p.ImageCover,
		Category:   p.Category,
		Brand:      p.Brand,
	}
}

// ParseCartItems decodes the stored items column. It accepts the current array
// shape and the legacy object shape whose values must be treated as a list.
// Legacy object entries are ordered by their object key so repeated parses of
// the same record yield the same order.
func ParseCartItems(raw json.RawMessage) ([]CartItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var items []CartItem
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var legacy map[string]CartItem
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("cart items are neither an array nor an object: %w", err)
	}

	keys := make([]string, 0, len(legacy))
	for k := range legacy {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items = make([]CartItem, 0, len(legacy))
	for _, k := range keys {
		items = append(items, legacy[k])
	}
	return items, nil
}

// EncodeCartItems marshals a normalized item list back into the stored column shape.
func EncodeCartItems(items []CartItem) (json.RawMessage, error) {
	if items == nil {
		items = []CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart items: %w", err)
	}
	return raw, nil
}
