package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a financial transaction in the system. Date is the
// business-meaningful occurrence timestamp, distinct from the record audit
// timestamps on Base.
type Transaction struct {
	Base
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *string         `gorm:"type:uuid;index" json:"category_id,omitempty"`

	User     *User     `gorm:"foreignKey:UserID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// LastModifiedAt returns the transaction's last-modification timestamp,
// falling back to its creation time.
func (t *Transaction) LastModifiedAt() time.Time {
	if !t.UpdatedAt.IsZero() {
		return t.UpdatedAt
	}
	return t.CreatedAt
}
