package services

import (
	"encoding/json"
	"fmt"
	"log"

	"freshcart/internal/models"
	"freshcart/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes domain events to the message broker. Declared here
// so the service can be tested without a live broker connection.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Payment methods accepted at checkout.
var validPaymentMethods = map[string]bool{
	"card": true,
	"cash": true,
}

// OrderService handles checkout and order history. An order is an immutable
// snapshot of the reconciled cart at checkout time; stock moves and the
// PURCHASE activities are recorded as part of the same flow.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	carts       *CartService
	activities  *ActivityService
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, carts *CartService, activities *ActivityService, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		carts:       carts,
		activities:  activities,
		publisher:   publisher,
	}
}

// Checkout converts the user's cart into an order: validates stock, snapshots
// the items, moves stock to sold, records PURCHASE activities, clears the
// cart, and publishes an order.created event.
func (s *OrderService) Checkout(userID, paymentMethod, shippingAddress string) (*models.Order, error) {
	if !validPaymentMethods[paymentMethod] {
		return nil, fmt.Errorf("unsupported payment method %q: %w", paymentMethod, ErrValidation)
	}
	if shippingAddress == "" {
		return nil, fmt.Errorf("shipping address is required: %w", ErrValidation)
	}

	_, items, err := s.carts.GetCart(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", ErrValidation)
	}

	// Validate every line before moving any stock.
	var totalPrice float64
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s is no longer available: %w", item.ProductID, err)
		}
		if product.Quantity < item.Quantity {
			return nil, fmt.Errorf("insufficient stock for %s (requested %d, available %d): %w",
				product.Title, item.Quantity, product.Quantity, ErrValidation)
		}

		// Price follows the cart snapshot when present; a snapshot-less item
		// (its product was re-created after a deletion) falls back to the
		// live price.
		price := product.Price
		snapshot := item.Product
		if snapshot != nil {
			price = snapshot.Price
		} else {
			snapshot = models.SnapshotOf(product)
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
			Product:   snapshot,
		})
		totalPrice += price * float64(item.Quantity)
	}

	for _, item := range orderItems {
		if err := s.productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
	}

	rawItems, err := models.EncodeOrderItems(orderItems)
	if err != nil {
		return nil, err
	}
	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           rawItems,
		TotalPrice:      totalPrice,
		PaymentMethod:   paymentMethod,
		ShippingAddress: shippingAddress,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range orderItems {
		if err := s.activities.Track(userID, item.ProductID, models.ActionPurchase); err != nil {
			log.Printf("Warning: failed to track purchase of %s for user %s: %v", item.ProductID, userID, err)
		}
	}

	if err := s.carts.ClearCart(userID); err != nil {
		log.Printf("Warning: failed to clear cart for user %s after checkout: %v", userID, err)
	}

	s.publishOrderCreated(order)
	return order, nil
}

// GetOrdersForUser retrieves a user's order history.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetAllOrders retrieves every order (back-office view).
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus flips one of the fulfillment flags on an order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	switch status {
	case "paid":
		return s.orderRepo.MarkPaid(id)
	case "delivered":
		return s.orderRepo.MarkDelivered(id)
	default:
		return fmt.Errorf("invalid order status %q: %w", status, ErrValidation)
	}
}

func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping order.created publication.")
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"total":   order.TotalPrice,
	})
	if err != nil {
		log.Printf("Failed to marshal order.created event: %v", err)
		return
	}
	if err := s.publisher.Publish("order", "order.created", body); err != nil {
		// Publish failure must not fail the checkout that already committed.
		log.Printf("Warning: failed to publish order.created for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Published order.created event for order %s", order.ID)
}
