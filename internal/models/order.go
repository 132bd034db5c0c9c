package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// OrderItem is a single line of an order, copied from the cart at checkout.
type OrderItem struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Price     float64          `json:"price"` // Price at the time of order
	Product   *ProductSnapshot `json:"product,omitempty"`
}

// Order is an immutable snapshot created at checkout. Items and totals are
// copied from the reconciled cart and never re-derived from the live catalog.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"userId" gorm:"index;type:varchar(36)"`
	Items           json.RawMessage `json:"items" gorm:"type:text"`
	TotalPrice      float64         `json:"totalPrice"`
	PaymentMethod   string          `json:"paymentMethod" gorm:"type:varchar(50)"`
	ShippingAddress string          `json:"shippingAddress" gorm:"type:varchar(500)"`
	IsPaid          bool            `json:"isPaid"`
	IsDelivered     bool            `json:"isDelivered"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ParseOrderItems decodes the stored items column of an order.
func ParseOrderItems(raw json.RawMessage) ([]OrderItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []OrderItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse order items: %w", err)
	}
	return items, nil
}

// EncodeOrderItems marshals order lines into the stored column shape.
func EncodeOrderItems(items []OrderItem) (json.RawMessage, error) {
	if items == nil {
		items = []OrderItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order items: %w", err)
	}
	return raw, nil
}
