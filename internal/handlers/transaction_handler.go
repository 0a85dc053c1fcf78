package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"moneta/internal/dates"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Name        string                 `json:"name" binding:"required,max=255"`
	Description string                 `json:"description" binding:"max=500"`
	Date        *string                `json:"date"`
	CategoryID  *string                `json:"category_id" binding:"omitempty,uuid"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. CategoryID accepts an explicit null to detach the category,
// so its presence is tracked separately during unmarshalling.
type UpdateTransactionRequest struct {
	Amount        *decimal.Decimal        `json:"amount"`
	Type          *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Name          *string                 `json:"name" binding:"omitempty,max=255"`
	Description   *string                 `json:"description" binding:"omitempty,max=500"`
	Date          *string                 `json:"date"`
	CategoryID    *string                 `json:"category_id" binding:"omitempty,uuid"`
	ClearCategory bool                    `json:"clear_category"`
}

// listTransactionsQuery represents the query parameters for listing transactions
type listTransactionsQuery struct {
	pagination.Request
	StartDate  *string                 `form:"start_date"`
	EndDate    *string                 `form:"end_date"`
	Type       *models.TransactionType `form:"type" binding:"omitempty,transaction_type"`
	CategoryID *string                 `form:"category_id" binding:"omitempty,uuid"`
}

// summaryQuery represents the query parameters for the grouped summary
type summaryQuery struct {
	StartDate  *string                 `form:"start_date"`
	EndDate    *string                 `form:"end_date"`
	Type       *models.TransactionType `form:"type" binding:"omitempty,transaction_type"`
	CategoryID *string                 `form:"category_id" binding:"omitempty,uuid"`
}

// parseOptionalDate parses an optional date string in any accepted format.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := dates.ParseFlexible(*s)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return &t, nil
}

func (q summaryQuery) toFilter() (services.TransactionFilter, error) {
	start, err := parseOptionalDate(q.StartDate)
	if err != nil {
		return services.TransactionFilter{}, err
	}
	end, err := parseOptionalDate(q.EndDate)
	if err != nil {
		return services.TransactionFilter{}, err
	}
	return services.TransactionFilter{
		StartDate:  start,
		EndDate:    end,
		Type:       q.Type,
		CategoryID: q.CategoryID,
	}, nil
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create a new income or expense transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	in := services.TransactionCreate{
		Amount:      req.Amount,
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if date, err := parseOptionalDate(req.Date); err != nil {
		respondWithError(c, err)
		return
	} else if date != nil {
		in.Date = *date
	}

	transaction, err := h.transactionService.CreateTransaction(userID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions handles the cursor-paginated transaction listing
// @Summary     List transactions
// @Description List the user's transactions newest first, cursor-paginated
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Page size (1-100, default 20)"
// @Param       cursor query string false "Opaque cursor from a previous page"
// @Param       start_date query string false "Inclusive start date (day-normalized)"
// @Param       end_date query string false "Inclusive end date (day-normalized)"
// @Param       type query string false "Filter by transaction type"
// @Param       category_id query string false "Filter by category"
// @Success     200 {array} models.Transaction "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query listTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := summaryQuery{
		StartDate:  query.StartDate,
		EndDate:    query.EndDate,
		Type:       query.Type,
		CategoryID: query.CategoryID,
	}.toFilter()
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := h.transactionService.ListTransactions(userID, query.Request, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": page.Items,
		"next_cursor":  page.NextCursor,
		"has_next":     page.HasNext,
		"limit":        page.Limit,
	})
}

// GetTransaction handles retrieving a single transaction
// @Summary     Get a transaction
// @Description Get a transaction by ID
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles a partial update of a transaction
// @Summary     Update a transaction
// @Description Update a transaction; set clear_category to detach the category
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.TransactionUpdate{
		Amount:      req.Amount,
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
	}
	if date, err := parseOptionalDate(req.Date); err != nil {
		respondWithError(c, err)
		return
	} else if date != nil {
		fields.Date = date
	}
	if req.ClearCategory {
		var none *string
		fields.CategoryID = &none
	} else if req.CategoryID != nil {
		fields.CategoryID = &req.CategoryID
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles transaction deletion
// @Summary     Delete a transaction
// @Description Permanently delete a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]string "Deletion confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// GetGroupedSummary handles the timeframe/day/category grouped report
// @Summary     Grouped transaction summary
// @Description Transactions grouped by timeframe, day and category with totals
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Inclusive start date (day-normalized)"
// @Param       end_date query string false "Inclusive end date (day-normalized)"
// @Param       type query string false "Filter by transaction type"
// @Param       category_id query string false "Filter by category"
// @Success     200 {object} report.Grouped "Grouped summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/summary [get]
func (h *TransactionHandler) GetGroupedSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query summaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		respondWithError(c, err)
		return
	}

	grouped, err := h.transactionService.GetGroupedSummary(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, grouped)
}

// GetPeriodSummary handles the per-timeframe category breakdown
// @Summary     Period summary
// @Description Income/expense totals and category percentages for a timeframe
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       timeframe path string true "Timeframe keyword (today, yesterday, this_week, this_month, this_year)"
// @Success     200 {object} report.PeriodSummary "Period summary"
// @Failure     400 {object} ErrorResponse "Invalid timeframe"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/summary/timeframes/{timeframe} [get]
func (h *TransactionHandler) GetPeriodSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.transactionService.GetPeriodSummary(userID, c.Param("timeframe"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
