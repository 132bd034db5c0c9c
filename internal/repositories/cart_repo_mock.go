package repositories

import (
	"encoding/json"
	"fmt"
	"sync"

	"freshcart/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart // keyed by user ID
	mu    sync.RWMutex

	// UpdateCalls counts UpdateItems invocations so tests can assert the
	// reconciler's write-back-on-read idempotence.
	UpdateCalls int
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// GetByUserID returns the user's cart.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
	}
	return &cart, nil
}

// Create adds a new cart.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if len(cart.Items) == 0 {
		cart.Items = json.RawMessage("[]")
	}
	r.carts[cart.UserID] = *cart
	return nil
}

// UpdateItems applies the compare-and-swap semantics of the real repository.
func (r *MockCartRepository) UpdateItems(cart *models.Cart, items json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.carts[cart.UserID]
	if !ok || stored.Version != cart.Version {
		return fmt.Errorf("cart %s was modified concurrently: %w", cart.ID, ErrConflict)
	}
	stored.Items = items
	stored.Version++
	r.carts[cart.UserID] = stored
	cart.Items = items
	cart.Version++
	r.UpdateCalls++
	return nil
}
