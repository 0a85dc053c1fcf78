package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"moneta/internal/dates"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/report"
	"moneta/internal/timeframe"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
	now             func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		categoryService: categoryService,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// NewTransactionServiceAt creates a TransactionServicer with a fixed clock.
// Reports classify transactions relative to "now"; tests pin it.
func NewTransactionServiceAt(db *gorm.DB, categoryService CategoryServicer, now func() time.Time) TransactionServicer {
	return &transactionService{db: db, categoryService: categoryService, now: now}
}

// CreateTransaction records a new income or expense transaction for a user.
func (s *transactionService) CreateTransaction(userID string, in TransactionCreate) (*models.Transaction, error) {
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if in.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction name is required")
	}
	if in.Type != models.TransactionTypeIncome && in.Type != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}

	if in.Date.IsZero() {
		in.Date = s.now()
	}

	if in.CategoryID != nil {
		category, err := s.categoryService.GetCategoryByID(userID, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.Type != models.CategoryType(in.Type) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type does not match transaction type")
		}
	}

	transaction := &models.Transaction{
		Amount:      in.Amount,
		Type:        in.Type,
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
		UserID:      userID,
		CategoryID:  in.CategoryID,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ListTransactions retrieves a cursor-paginated, filtered list of the user's
// transactions, newest first.
//
// Filters are applied before the cursor bound, and the ordering is composite
// (date DESC, id DESC): rows sharing an occurrence date are tie-broken by the
// time-ordered identifier, so repeatedly following next_cursor visits every
// matching transaction exactly once.
func (s *transactionService) ListTransactions(userID string, page pagination.Request, filter TransactionFilter) (*pagination.Page[models.Transaction], error) {
	page.Clamp()

	q := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	q = applyTransactionFilter(q, filter, true)

	var transactions []models.Transaction
	if err := q.Preload("Category").
		Scopes(pagination.Scope(page, "id", true, "date")).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.BuildPage(transactions, page.Limit, func(t models.Transaction) string { return t.ID })
	return &result, nil
}

// applyTransactionFilter adds the filter predicates to a query. When
// normalize is true, date bounds are snapped to day boundaries first.
func applyTransactionFilter(q *gorm.DB, f TransactionFilter, normalize bool) *gorm.DB {
	start, end := f.StartDate, f.EndDate
	if normalize {
		start, end = dates.NormalizeRange(start, end)
	}

	if start != nil {
		q = q.Where("date >= ?", *start)
	}
	if end != nil {
		q = q.Where("date <= ?", *end)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	return q
}

// UpdateTransaction applies a partial update to a transaction.
func (s *transactionService) UpdateTransaction(userID, transactionID string, fields TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if fields.Amount != nil && !fields.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if fields.Type != nil &&
		*fields.Type != models.TransactionTypeIncome && *fields.Type != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}

	updates := make(map[string]interface{})
	if fields.Amount != nil {
		updates["amount"] = *fields.Amount
	}
	if fields.Type != nil {
		updates["type"] = *fields.Type
	}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Date != nil {
		updates["date"] = *fields.Date
	}
	if fields.CategoryID != nil {
		if *fields.CategoryID != nil {
			if _, err := s.categoryService.GetCategoryByID(userID, **fields.CategoryID); err != nil {
				return nil, err
			}
			updates["category_id"] = **fields.CategoryID
		} else {
			// A typed-nil *string would make GORM re-send the loaded value,
			// so the NULL has to go in untyped.
			updates["category_id"] = nil
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction removes a transaction.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetGroupedSummary returns the user's transactions grouped by timeframe,
// day, and category with running totals.
//
// The whole filtered set is materialized before grouping, so callers should
// bound it with a date range; the report is not page-able.
func (s *transactionService) GetGroupedSummary(userID string, filter TransactionFilter) (*report.Grouped, error) {
	transactions, err := s.fetchForGrouping(userID, filter, true)
	if err != nil {
		return nil, err
	}

	grouped := report.BuildGrouped(transactions, s.now())
	return &grouped, nil
}

// GetPeriodSummary returns totals and the category percentage breakdown for
// one timeframe keyword.
func (s *transactionService) GetPeriodSummary(userID, timeframeKeyword string) (*report.PeriodSummary, error) {
	keyword, err := timeframe.Parse(timeframeKeyword)
	if err != nil {
		return nil, err
	}

	start, end, err := timeframe.Range(keyword, s.now())
	if err != nil {
		return nil, err
	}

	// The resolved range is already day-aligned; no further normalization.
	transactions, err := s.fetchForGrouping(userID, TransactionFilter{StartDate: &start, EndDate: &end}, false)
	if err != nil {
		return nil, err
	}

	summary := report.BuildPeriodSummary(keyword, start, end, transactions)
	return &summary, nil
}

// fetchForGrouping loads the full filtered transaction set, newest first,
// with categories attached.
func (s *transactionService) fetchForGrouping(userID string, filter TransactionFilter, normalize bool) ([]models.Transaction, error) {
	q := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	q = applyTransactionFilter(q, filter, normalize)

	var transactions []models.Transaction
	if err := q.Preload("Category").Order("date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
