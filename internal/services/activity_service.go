package services

import (
	"fmt"

	"freshcart/internal/models"
	"freshcart/internal/repositories"
)

// ActivityService appends entries to the user interaction log. The weight of
// each entry is fixed at creation time from the configured action table and
// never recomputed, so re-tuning the table only affects new activity.
type ActivityService struct {
	repo    repositories.ActivityRepository
	weights map[models.ActivityAction]int
}

// NewActivityService creates a new ActivityService.
func NewActivityService(repo repositories.ActivityRepository, weights map[models.ActivityAction]int) *ActivityService {
	return &ActivityService{
		repo:    repo,
		weights: weights,
	}
}

// Track records a single user interaction with a product.
func (s *ActivityService) Track(userID, productID string, action models.ActivityAction) error {
	if userID == "" || productID == "" {
		return fmt.Errorf("userId and productId are required: %w", ErrValidation)
	}
	if !action.Valid() {
		return fmt.Errorf("unknown activity action %q: %w", action, ErrValidation)
	}

	activity := &models.UserActivity{
		UserID:    userID,
		ProductID: productID,
		Action:    action,
		Weight:    s.weights[action],
	}
	if err := s.repo.Create(activity); err != nil {
		return fmt.Errorf("failed to track %s activity: %w", action, err)
	}
	return nil
}
