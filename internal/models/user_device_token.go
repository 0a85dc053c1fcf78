package models

import "time"

// UserDeviceToken stores a push notification token for one of a user's
// devices. One token per device per user.
type UserDeviceToken struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index;uniqueIndex:uq_user_device" json:"user_id"`
	DeviceToken string    `gorm:"not null;index" json:"device_token"`
	DeviceID    string    `gorm:"not null;uniqueIndex:uq_user_device" json:"device_id"`
	DeviceName  string    `json:"device_name,omitempty"`       // e.g. "iPhone 13"
	DeviceType  string    `gorm:"not null" json:"device_type"` // ios, android, web
	IsActive    bool      `gorm:"default:true;not null" json:"is_active"`
	LastUsedAt  time.Time `json:"last_used_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
