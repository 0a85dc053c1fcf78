package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"moneta/internal/models"
	"moneta/internal/timeframe"
)

var hundred = decimal.NewFromInt(100)

// CategorySummary is one row in a period's category breakdown. A nil
// CategoryID means "no category".
type CategorySummary struct {
	CategoryID   *string                `json:"category_id"`
	CategoryName *string                `json:"category_name"`
	Type         models.TransactionType `json:"type"`
	Total        decimal.Decimal        `json:"total"`
	Percentage   int                    `json:"percentage"`
	Color        *string                `json:"color"`
	Icon         *string                `json:"icon"`
}

// PeriodSummary is the income/expense breakdown for one timeframe keyword.
type PeriodSummary struct {
	Timeframe    timeframe.Keyword `json:"timeframe"`
	StartDate    time.Time         `json:"start_date"`
	EndDate      time.Time         `json:"end_date"`
	TotalIncome  decimal.Decimal   `json:"total_income"`
	TotalExpense decimal.Decimal   `json:"total_expense"`
	Net          decimal.Decimal   `json:"net"`
	Categories   []CategorySummary `json:"categories"`
}

// categoryBucket accumulates one (type, category) pair in first-seen order.
type categoryBucket struct {
	summary CategorySummary
}

// BuildPeriodSummary totals the given transactions per type and category and
// allocates integer percentages of the combined total. Transactions with an
// unknown type are skipped rather than failing the report; historical rows
// may predate the current type constraint.
//
// Result ordering: expense categories first, then income, each sorted by
// total descending.
func BuildPeriodSummary(k timeframe.Keyword, start, end time.Time, txs []models.Transaction) PeriodSummary {
	totalIncome := decimal.Zero
	totalExpense := decimal.Zero

	buckets := make(map[models.TransactionType]map[string]*categoryBucket)
	order := make(map[models.TransactionType][]string)
	for _, t := range []models.TransactionType{models.TransactionTypeIncome, models.TransactionTypeExpense} {
		buckets[t] = make(map[string]*categoryBucket)
	}

	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionTypeIncome:
			totalIncome = totalIncome.Add(tx.Amount)
		case models.TransactionTypeExpense:
			totalExpense = totalExpense.Add(tx.Amount)
		default:
			continue
		}

		key := ""
		if tx.CategoryID != nil {
			key = *tx.CategoryID
		}
		bucket, seen := buckets[tx.Type][key]
		if !seen {
			bucket = &categoryBucket{summary: CategorySummary{
				CategoryID: tx.CategoryID,
				Type:       tx.Type,
				Total:      decimal.Zero,
			}}
			if c := tx.Category; c != nil {
				name, color, icon := c.Name, c.Color, c.Icon
				bucket.summary.CategoryName = &name
				bucket.summary.Color = &color
				bucket.summary.Icon = &icon
			}
			buckets[tx.Type][key] = bucket
			order[tx.Type] = append(order[tx.Type], key)
		}
		bucket.summary.Total = bucket.summary.Total.Add(tx.Amount)
	}

	combined := totalIncome.Add(totalExpense)

	var summaries []CategorySummary
	var raw []decimal.Decimal
	for _, t := range []models.TransactionType{models.TransactionTypeIncome, models.TransactionTypeExpense} {
		for _, key := range order[t] {
			s := buckets[t][key].summary
			summaries = append(summaries, s)
			if combined.IsPositive() {
				raw = append(raw, s.Total.Div(combined).Mul(hundred))
			} else {
				raw = append(raw, decimal.Zero)
			}
		}
	}

	// Combined total of zero short-circuits to all-zero percentages; the
	// remainder distribution must not award points to zero-total categories.
	if combined.IsPositive() {
		for i, pct := range AllocatePercentages(raw) {
			summaries[i].Percentage = pct
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Total.GreaterThan(summaries[j].Total)
	})
	sort.SliceStable(summaries, func(i, j int) bool {
		return typeRank(summaries[i].Type) < typeRank(summaries[j].Type)
	})

	return PeriodSummary{
		Timeframe:    k,
		StartDate:    start,
		EndDate:      end,
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Net:          totalIncome.Sub(totalExpense),
		Categories:   summaries,
	}
}

func typeRank(t models.TransactionType) int {
	switch t {
	case models.TransactionTypeExpense:
		return 0
	case models.TransactionTypeIncome:
		return 1
	}
	return 2
}
