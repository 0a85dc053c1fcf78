package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"moneta/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithEmail(t, db, fmt.Sprintf("user%d@test.com", nextID()))
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:          email,
		Username:       fmt.Sprintf("user%d", nextID()),
		HashedPassword: string(hash),
		IsActive:       true,
		Role:           models.UserRoleMember,
		LimitAmount:    decimal.NewFromInt(2000000),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category linked to the given user. Pass an
// empty userID to create a global category.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("Category %d", nextID()),
		Type: categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	if userID != "" {
		link := &models.UserCategory{UserID: userID, CategoryID: category.ID}
		if err := db.Create(link).Error; err != nil {
			t.Fatalf("failed to link test category: %v", err)
		}
	}
	return category
}

// CreateTestTransaction creates a transaction with the given amount and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, transactionType models.TransactionType, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		Amount: amount,
		Type:   transactionType,
		Name:   fmt.Sprintf("Transaction %d", nextID()),
		Date:   date,
		UserID: userID,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestTransactionInCategory creates a transaction assigned to a category.
func CreateTestTransactionInCategory(t *testing.T, db *gorm.DB, userID, categoryID string, transactionType models.TransactionType, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		Amount:     amount,
		Type:       transactionType,
		Name:       fmt.Sprintf("Transaction %d", nextID()),
		Date:       date,
		UserID:     userID,
		CategoryID: &categoryID,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestDeviceToken creates an active device token for the user.
func CreateTestDeviceToken(t *testing.T, db *gorm.DB, userID string) *models.UserDeviceToken {
	t.Helper()

	n := nextID()
	token := &models.UserDeviceToken{
		UserID:      userID,
		DeviceToken: fmt.Sprintf("token-%d", n),
		DeviceID:    fmt.Sprintf("device-%d", n),
		DeviceType:  "ios",
		IsActive:    true,
		LastUsedAt:  time.Now().UTC(),
	}
	if err := db.Create(token).Error; err != nil {
		t.Fatalf("failed to create test device token: %v", err)
	}
	return token
}
