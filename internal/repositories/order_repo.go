package repositories

import (
	"freshcart/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// immutable snapshots; only the fulfillment flags change after creation.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	Create(order *models.Order) error
	MarkPaid(id string) error
	MarkDelivered(id string) error
}
