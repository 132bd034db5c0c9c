package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"freshcart/internal/models"

	"github.com/google/uuid"
)

// MockActivityRepository is an in-memory implementation of ActivityRepository.
type MockActivityRepository struct {
	activities []models.UserActivity
	mu         sync.RWMutex
}

// NewMockActivityRepository creates a new instance of MockActivityRepository.
func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{}
}

// Create appends a new activity.
func (r *MockActivityRepository) Create(activity *models.UserActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.CreatedAt.IsZero() {
		// Offset by insertion order so rows created in the same nanosecond
		// still sort deterministically.
		activity.CreatedAt = time.Now().Add(time.Duration(len(r.activities)) * time.Microsecond)
	}
	r.activities = append(r.activities, *activity)
	return nil
}

// RecentByUser returns the user's newest activities, newest first.
func (r *MockActivityRepository) RecentByUser(userID string, limit int) ([]models.UserActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		return nil, fmt.Errorf("activity window must be positive, got %d", limit)
	}

	matched := make([]models.UserActivity, 0)
	for _, a := range r.activities {
		if a.UserID == userID {
			matched = append(matched, a)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
