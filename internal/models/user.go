package models

import "github.com/shopspring/decimal"

// UserRole represents an application role
type UserRole string

const (
	UserRoleMember UserRole = "MEMBER"
	UserRoleAdmin  UserRole = "ADMIN"
)

// User represents the user model in the database
type User struct {
	Base
	Email          string          `gorm:"uniqueIndex;not null" json:"email"`
	Username       string          `gorm:"uniqueIndex;not null" json:"username"`
	HashedPassword string          `gorm:"not null" json:"-"`
	FullName       string          `json:"full_name"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	Role           UserRole        `gorm:"not null;default:MEMBER" json:"role"`
	LimitAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"limit_amount"`

	Transactions   []Transaction     `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
	UserCategories []UserCategory    `gorm:"foreignKey:UserID" json:"-"`
	DeviceTokens   []UserDeviceToken `gorm:"foreignKey:UserID" json:"device_tokens,omitempty"`
}
