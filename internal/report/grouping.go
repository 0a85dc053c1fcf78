// Package report builds in-memory aggregates over a filtered set of
// transactions: the timeframe/day/category grouping tree and the per-period
// category breakdown with integer percentages.
//
// Everything here is a pure function over its inputs. All sums use
// shopspring/decimal; no floating-point money anywhere.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"moneta/internal/models"
	"moneta/internal/timeframe"
)

// Item is a transaction as it appears inside a report group.
type Item struct {
	ID           string                 `json:"id"`
	Amount       decimal.Decimal        `json:"amount"`
	Name         string                 `json:"name"`
	Type         models.TransactionType `json:"type"`
	Description  string                 `json:"description,omitempty"`
	Date         time.Time              `json:"date"`
	CategoryID   *string                `json:"category_id,omitempty"`
	CategoryName *string                `json:"category_name,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// CategoryGroup aggregates one day's transactions sharing a category.
// A nil CategoryID is the "no category" group.
type CategoryGroup struct {
	CategoryID   *string         `json:"category_id"`
	CategoryName *string         `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Transactions []Item          `json:"transactions"`
}

// DayGroup aggregates one calendar day inside a timeframe.
type DayGroup struct {
	Date       string          `json:"date"` // YYYY-MM-DD
	Total      decimal.Decimal `json:"total"`
	Categories []CategoryGroup `json:"categories"`
}

// TimeframeGroup aggregates one timeframe bucket.
type TimeframeGroup struct {
	Label         timeframe.Keyword `json:"label"`
	Total         decimal.Decimal   `json:"total"`
	LastUpdatedAt *time.Time        `json:"lasted_update_at"`
	Days          []DayGroup        `json:"days"`
}

// Grouped is the full aggregation tree for one report request.
type Grouped struct {
	Total         decimal.Decimal  `json:"total"`
	LastUpdatedAt *time.Time       `json:"lasted_update_at"`
	Timeframes    []TimeframeGroup `json:"timeframes"`
}

// BuildGrouped classifies transactions into timeframe buckets relative to
// now and rolls them up into the timeframe -> day -> category tree.
// Transactions older than the start of the current year are discarded.
func BuildGrouped(txs []models.Transaction, now time.Time) Grouped {
	anchors := timeframe.Anchors(now)

	bucketed := make(map[timeframe.Keyword][]models.Transaction, len(timeframe.Order))
	for _, tx := range txs {
		if label, ok := anchors.Bucket(tx.Date); ok {
			bucketed[label] = append(bucketed[label], tx)
		}
	}

	out := Grouped{Total: decimal.Zero}
	for _, label := range timeframe.Order {
		group, ok := buildTimeframeGroup(label, bucketed[label])
		if !ok {
			continue
		}
		out.Timeframes = append(out.Timeframes, group)
		out.Total = out.Total.Add(group.Total)
		out.LastUpdatedAt = laterOf(out.LastUpdatedAt, group.LastUpdatedAt)
	}
	return out
}

// buildTimeframeGroup assembles one timeframe's day/category tree.
// Returns false for an empty bucket.
func buildTimeframeGroup(label timeframe.Keyword, txs []models.Transaction) (TimeframeGroup, bool) {
	if len(txs) == 0 {
		return TimeframeGroup{}, false
	}

	byDay := make(map[string][]models.Transaction)
	var dayKeys []string
	for _, tx := range txs {
		key := tx.Date.Format("2006-01-02")
		if _, seen := byDay[key]; !seen {
			dayKeys = append(dayKeys, key)
		}
		byDay[key] = append(byDay[key], tx)
	}
	// Newest day first. The keys are ISO dates, so string order is date order.
	sort.Sort(sort.Reverse(sort.StringSlice(dayKeys)))

	group := TimeframeGroup{Label: label, Total: decimal.Zero}
	for _, key := range dayKeys {
		day := buildDayGroup(key, byDay[key])
		group.Days = append(group.Days, day)
		group.Total = group.Total.Add(day.Total)
		for _, cat := range day.Categories {
			for _, item := range cat.Transactions {
				last := item.UpdatedAt
				if last.IsZero() {
					last = item.CreatedAt
				}
				group.LastUpdatedAt = laterOf(group.LastUpdatedAt, &last)
			}
		}
	}
	return group, true
}

// buildDayGroup groups one day's transactions by category, most significant
// category first, newest transaction first within each category.
func buildDayGroup(date string, txs []models.Transaction) DayGroup {
	byCategory := make(map[string][]models.Transaction)
	var catKeys []string
	for _, tx := range txs {
		key := ""
		if tx.CategoryID != nil {
			key = *tx.CategoryID
		}
		if _, seen := byCategory[key]; !seen {
			catKeys = append(catKeys, key)
		}
		byCategory[key] = append(byCategory[key], tx)
	}

	day := DayGroup{Date: date, Total: decimal.Zero}
	for _, key := range catKeys {
		catTxs := byCategory[key]
		sort.SliceStable(catTxs, func(i, j int) bool {
			return catTxs[i].Date.After(catTxs[j].Date)
		})

		cat := CategoryGroup{Total: decimal.Zero}
		if key != "" {
			id := key
			cat.CategoryID = &id
		}
		if c := catTxs[0].Category; c != nil {
			name := c.Name
			cat.CategoryName = &name
		}

		for _, tx := range catTxs {
			cat.Total = cat.Total.Add(tx.Amount)
			cat.Transactions = append(cat.Transactions, newItem(tx))
		}

		day.Categories = append(day.Categories, cat)
		day.Total = day.Total.Add(cat.Total)
	}

	sort.SliceStable(day.Categories, func(i, j int) bool {
		return day.Categories[i].Total.GreaterThan(day.Categories[j].Total)
	})
	return day
}

func newItem(tx models.Transaction) Item {
	item := Item{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Name:        tx.Name,
		Type:        tx.Type,
		Description: tx.Description,
		Date:        tx.Date,
		CategoryID:  tx.CategoryID,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
	if tx.Category != nil {
		name := tx.Category.Name
		item.CategoryName = &name
	}
	return item
}

// laterOf returns the later of two timestamps, tolerating nil.
func laterOf(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.After(*current) {
		c := *candidate
		return &c
	}
	return current
}
