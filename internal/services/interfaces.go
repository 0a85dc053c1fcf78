package services

import (
	"time"

	"github.com/shopspring/decimal"

	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/report"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, username, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdateLimitAmount(userID string, limit decimal.Decimal) (*models.User, error)
}

// CategoryFilter holds optional filter parameters for listing categories.
type CategoryFilter struct {
	Type *models.CategoryType
}

// CategoryUpdate holds the optional fields of a category partial update.
// A nil field is left unchanged.
type CategoryUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
}

// CategoryServicer defines the contract for category-related business logic.
// A user sees global categories plus the ones linked to them.
type CategoryServicer interface {
	CreateCategory(userID, name string, categoryType models.CategoryType, description, color, icon string) (*models.Category, error)
	ListCategories(userID string, page pagination.Request, filter CategoryFilter) (*pagination.Page[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID string, fields CategoryUpdate) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing and
// summarizing transactions. Date bounds are normalized to day boundaries
// before they reach the store.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Type       *models.TransactionType
	CategoryID *string
}

// TransactionCreate holds the fields of a new transaction.
type TransactionCreate struct {
	Amount      decimal.Decimal
	Type        models.TransactionType
	Name        string
	Description string
	Date        time.Time
	CategoryID  *string
}

// TransactionUpdate holds the optional fields of a transaction partial
// update. A nil field is left unchanged; CategoryID uses a double pointer so
// the caller can distinguish "don't change" from "clear".
type TransactionUpdate struct {
	Amount      *decimal.Decimal
	Type        *models.TransactionType
	Name        *string
	Description *string
	Date        *time.Time
	CategoryID  **string
}

// TransactionServicer defines the contract for transaction-related business
// logic, including the cursor-paginated listing and the report endpoints.
type TransactionServicer interface {
	CreateTransaction(userID string, in TransactionCreate) (*models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	ListTransactions(userID string, page pagination.Request, filter TransactionFilter) (*pagination.Page[models.Transaction], error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	GetGroupedSummary(userID string, filter TransactionFilter) (*report.Grouped, error)
	GetPeriodSummary(userID, timeframeKeyword string) (*report.PeriodSummary, error)
}

// DeviceTokenRegister holds the fields of a device token registration.
type DeviceTokenRegister struct {
	DeviceToken string
	DeviceID    string
	DeviceName  string
	DeviceType  string
}

// DeviceTokenUpdate holds the optional fields of a device token update.
type DeviceTokenUpdate struct {
	DeviceToken *string
	DeviceName  *string
	DeviceType  *string
	IsActive    *bool
}

// DeviceTokenServicer defines the contract for push notification device
// token management.
type DeviceTokenServicer interface {
	RegisterDeviceToken(userID string, in DeviceTokenRegister) (*models.UserDeviceToken, error)
	ListDeviceTokens(userID string, activeOnly bool) ([]models.UserDeviceToken, error)
	GetDeviceTokenByID(userID, tokenID string) (*models.UserDeviceToken, error)
	UpdateDeviceToken(userID, tokenID string, fields DeviceTokenUpdate) (*models.UserDeviceToken, error)
	DeactivateDeviceToken(userID, tokenID string) (*models.UserDeviceToken, error)
	DeleteDeviceToken(userID, tokenID string) error
}
