package repositories

import (
	"freshcart/internal/models"
)

// ActivityRepository defines the interface for the append-only interaction log.
type ActivityRepository interface {
	Create(activity *models.UserActivity) error
	// RecentByUser returns up to limit of the user's newest activities,
	// newest first. Older interactions fall out of the window entirely.
	RecentByUser(userID string, limit int) ([]models.UserActivity, error)
}
