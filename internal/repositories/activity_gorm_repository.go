package repositories

import (
	"fmt"
	"time"

	"freshcart/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMActivityRepository is a GORM implementation of ActivityRepository.
type GORMActivityRepository struct {
	db *gorm.DB
}

// NewGORMActivityRepository creates a new instance of GORMActivityRepository.
func NewGORMActivityRepository(db *gorm.DB) *GORMActivityRepository {
	return &GORMActivityRepository{
		db: db,
	}
}

// Create appends a new activity row. Rows are never updated afterwards.
func (r *GORMActivityRepository) Create(activity *models.UserActivity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	if err := r.db.Create(activity).Error; err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// RecentByUser retrieves the user's newest activities, newest first.
func (r *GORMActivityRepository) RecentByUser(userID string, limit int) ([]models.UserActivity, error) {
	var activities []models.UserActivity
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to get activities for user %s: %w", userID, err)
	}
	return activities, nil
}
