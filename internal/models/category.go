package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a transaction category. A category with no
// user_categories rows is global and visible to everyone; otherwise it is
// visible only to the linked users. (name, type) is unique system-wide.
type Category struct {
	Base
	Name        string       `gorm:"not null;index;uniqueIndex:uq_category_name_type" json:"name"`
	Description string       `json:"description"`
	Type        CategoryType `gorm:"not null;uniqueIndex:uq_category_name_type" json:"type"`
	Color       string       `json:"color"` // Hex color code or theme token
	Icon        string       `json:"icon"`  // Icon name or path

	UserCategories []UserCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	Transactions   []Transaction  `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
