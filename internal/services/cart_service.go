package services

import (
	"errors"
	"fmt"
	"log"

	"freshcart/internal/models"
	"freshcart/internal/repositories"
)

// CartService owns the cart read/mutate flows and the reconciliation pass
// that keeps stored carts in a consistent shape. Historical records can carry
// their item identifier in any of three positions (id, productId, or the
// nested snapshot's id) and may lack the product snapshot entirely;
// reconciliation normalizes all of that on read and writes the clean form
// back exactly once when something actually changed.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	activities  *ActivityService
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, activities *ActivityService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		activities:  activities,
	}
}

// GetCart returns the user's cart with its items reconciled. A user without a
// cart gets an empty one created on first access.
func (s *CartService) GetCart(userID string) (*models.Cart, []models.CartItem, error) {
	cart, err := s.loadOrCreate(userID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.reconcile(cart)
	if err != nil {
		return nil, nil, err
	}
	return cart, items, nil
}

// AddItem adds a product to the cart or increments its quantity when already
// present, then records an ADD_TO_CART activity.
func (s *CartService) AddItem(userID, productID string, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.loadOrCreate(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.reconcile(cart)
	if err != nil {
		return nil, err
	}

	if idx := findItem(items, productID); idx >= 0 {
		items[idx].Quantity += quantity
	} else {
		// New items are stored already normalized: id derived from
		// productId, snapshot attached up front.
		items = append(items, models.CartItem{
			ID:        productID,
			ProductID: productID,
			Quantity:  quantity,
			Product:   models.SnapshotOf(product),
		})
	}

	if err := s.persist(cart, items); err != nil {
		return nil, err
	}

	if err := s.activities.Track(userID, productID, models.ActionAddToCart); err != nil {
		// Activity tracking is best-effort; never fail a cart write over it.
		log.Printf("Warning: failed to track add-to-cart for user %s: %v", userID, err)
	}
	return items, nil
}

// UpdateItemQuantity sets the quantity of the item matching the given key.
func (s *CartService) UpdateItemQuantity(userID, key string, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}

	cart, items, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	idx := findItem(items, key)
	if idx < 0 {
		return nil, fmt.Errorf("cart item %s: %w", key, repositories.ErrNotFound)
	}
	items[idx].Quantity = quantity

	if err := s.persist(cart, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem deletes the item matching the given key from the cart.
func (s *CartService) RemoveItem(userID, key string) ([]models.CartItem, error) {
	cart, items, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	idx := findItem(items, key)
	if idx < 0 {
		return nil, fmt.Errorf("cart item %s: %w", key, repositories.ErrNotFound)
	}
	items = append(items[:idx], items[idx+1:]...)

	if err := s.persist(cart, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ClearCart removes every item from the user's cart.
func (s *CartService) ClearCart(userID string) error {
	cart, err := s.loadOrCreate(userID)
	if err != nil {
		return err
	}
	return s.persist(cart, []models.CartItem{})
}

func (s *CartService) loadOrCreate(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	cart = &models.Cart{UserID: userID}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// reconcile normalizes the stored item list and writes the clean form back
// iff anything changed, so repeated reconciliation of a clean cart is a
// no-op with no write.
//
// Per item, in order:
//  1. backfill a missing productId from the nested snapshot's id;
//  2. force id to equal productId — productId is the sole source of truth;
//  3. backfill a missing product snapshot from the live catalog, keeping the
//     item snapshot-less when the catalog record is gone (partial data beats
//     blocking the user out of their cart).
//
// Items left with no identity after step 1 cannot be displayed or mutated
// and are dropped.
func (s *CartService) reconcile(cart *models.Cart) ([]models.CartItem, error) {
	items, err := models.ParseCartItems(cart.Items)
	if err != nil {
		return nil, fmt.Errorf("cart %s: %w", cart.ID, err)
	}

	changed := false
	normalized := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" && item.Product != nil && item.Product.ID != "" {
			item.ProductID = item.Product.ID
			changed = true
		}
		if item.ProductID == "" {
			changed = true
			continue
		}
		if item.ID != item.ProductID {
			item.ID = item.ProductID
			changed = true
		}
		if item.Product == nil {
			product, err := s.productRepo.GetByID(item.ProductID)
			switch {
			case err == nil:
				item.Product = models.SnapshotOf(product)
				changed = true
			case errors.Is(err, repositories.ErrNotFound):
				// Catalog record is gone; keep the item without a snapshot.
			default:
				log.Printf("Warning: snapshot backfill failed for product %s: %v", item.ProductID, err)
			}
		}
		normalized = append(normalized, item)
	}

	if changed {
		raw, err := models.EncodeCartItems(normalized)
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.UpdateItems(cart, raw); err != nil {
			if errors.Is(err, repositories.ErrConflict) {
				// A concurrent writer got there first. The reconciled view
				// is still correct to display; the next read re-reconciles.
				log.Printf("Warning: reconciliation write-back for cart %s lost a race", cart.ID)
				return normalized, nil
			}
			return nil, err
		}
	}
	return normalized, nil
}

func (s *CartService) persist(cart *models.Cart, items []models.CartItem) error {
	raw, err := models.EncodeCartItems(items)
	if err != nil {
		return err
	}
	return s.cartRepo.UpdateItems(cart, raw)
}

// findItem locates an item by matching the key against id, productId, or the
// nested snapshot's id. The tri-match exists because historical records may
// carry the identifier in any of the three positions.
func findItem(items []models.CartItem, key string) int {
	for i, item := range items {
		if item.ID == key || item.ProductID == key {
			return i
		}
		if item.Product != nil && item.Product.ID == key {
			return i
		}
	}
	return -1
}
