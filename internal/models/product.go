package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Product represents a catalog entry in the store.
type Product struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title              string     `json:"title" validate:"required,min=3,max=200"`
	Description        string     `json:"description" validate:"omitempty,max=2000"`
	Category           string     `json:"category" gorm:"index;type:varchar(100)" validate:"required"`
	Brand              string     `json:"brand" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Price              float64    `json:"price" validate:"required,gt=0"`
	PriceAfterDiscount *float64   `json:"priceAfterDiscount,omitempty" validate:"omitempty,gt=0"`
	Quantity           int        `json:"quantity" validate:"gte=0"`
	Sold               int        `json:"sold" gorm:"index" validate:"gte=0"`
	RatingsAverage     float64    `json:"ratingsAverage" validate:"gte=0,lte=5"`
	RatingsQuantity    int        `json:"ratingsQuantity" validate:"gte=0"`
	ImageCover         string     `json:"imageCover" validate:"omitempty,url"`
	Images             StringList `json:"images" gorm:"type:text"`
	gorm.Model                    // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// StringList stores a JSON array of strings in a single text column.
type StringList []string

// Value implements driver.Valuer so GORM can persist the list as JSON text.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner to read the JSON text column back into the list.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for string list", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}
