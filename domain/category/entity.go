package category

import (
	"time"
)

// Category groups a user's tasks. A category is visible and mutable only
// by the user that owns it.
type Category struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
	UserID      string    `gorm:"index;not null;type:text" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for the Category entity.
func (Category) TableName() string {
	return "categories"
}
