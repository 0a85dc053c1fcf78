package models

import "time"

// UserCategory links a user to a category they own or have adopted.
type UserCategory struct {
	UserID     string    `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	CategoryID string    `gorm:"type:uuid;primaryKey;index" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`

	User     *User     `gorm:"foreignKey:UserID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}
