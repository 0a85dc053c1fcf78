package report

import (
	"testing"
	"time"

	"moneta/internal/models"
	"moneta/internal/timeframe"
)

// Wednesday 2026-03-18; all five buckets have distinct boundaries.
var groupingNow = time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

func txAt(amount string, date time.Time, category *models.Category) models.Transaction {
	tx := makeTx(models.TransactionTypeExpense, amount, date, category)
	tx.CreatedAt = date
	tx.UpdatedAt = date
	return tx
}

func TestBuildGrouped(t *testing.T) {
	food := namedCategory("00000000-0000-7000-8000-000000000010", "Food & Drinks", models.CategoryTypeExpense)
	rent := namedCategory("00000000-0000-7000-8000-000000000011", "Home & Bills", models.CategoryTypeExpense)

	t.Run("timeframe_order_most_recent_first", func(t *testing.T) {
		g := BuildGrouped([]models.Transaction{
			txAt("10", time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), nil),  // this_year
			txAt("20", time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC), nil),  // today
			txAt("30", time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC), nil),  // yesterday
			txAt("40", time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC), nil),  // this_week
			txAt("50", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), nil),   // this_month
		}, groupingNow)

		want := []timeframe.Keyword{
			timeframe.Today, timeframe.Yesterday, timeframe.ThisWeek,
			timeframe.ThisMonth, timeframe.ThisYear,
		}
		if len(g.Timeframes) != len(want) {
			t.Fatalf("expected %d timeframes, got %d", len(want), len(g.Timeframes))
		}
		for i, k := range want {
			if g.Timeframes[i].Label != k {
				t.Errorf("position %d: expected %s, got %s", i, k, g.Timeframes[i].Label)
			}
		}
		if !g.Total.Equal(dec("150")) {
			t.Errorf("expected grand total 150, got %s", g.Total)
		}
	})

	t.Run("empty_buckets_omitted", func(t *testing.T) {
		g := BuildGrouped([]models.Transaction{
			txAt("20", time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC), nil),
		}, groupingNow)

		if len(g.Timeframes) != 1 {
			t.Fatalf("expected only the today bucket, got %d", len(g.Timeframes))
		}
		if g.Timeframes[0].Label != timeframe.Today {
			t.Errorf("expected today, got %s", g.Timeframes[0].Label)
		}
	})

	t.Run("pre_year_transactions_discarded", func(t *testing.T) {
		g := BuildGrouped([]models.Transaction{
			txAt("99", time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC), nil),
		}, groupingNow)

		if len(g.Timeframes) != 0 {
			t.Fatalf("expected no buckets for last year's rows, got %d", len(g.Timeframes))
		}
		if !g.Total.IsZero() {
			t.Errorf("expected zero total, got %s", g.Total)
		}
	})

	t.Run("days_newest_first_within_timeframe", func(t *testing.T) {
		g := BuildGrouped([]models.Transaction{
			txAt("10", time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC), nil),
			txAt("20", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), nil),
			txAt("30", time.Date(2026, 3, 3, 15, 0, 0, 0, time.UTC), nil),
		}, groupingNow)

		if len(g.Timeframes) != 1 || g.Timeframes[0].Label != timeframe.ThisMonth {
			t.Fatalf("expected one this_month bucket, got %+v", g.Timeframes)
		}
		days := g.Timeframes[0].Days
		if len(days) != 2 {
			t.Fatalf("expected 2 day groups, got %d", len(days))
		}
		if days[0].Date != "2026-03-10" || days[1].Date != "2026-03-03" {
			t.Errorf("expected days newest first, got %s then %s", days[0].Date, days[1].Date)
		}
		if !days[1].Total.Equal(dec("40")) {
			t.Errorf("expected 2026-03-03 total 40, got %s", days[1].Total)
		}
	})

	t.Run("categories_by_total_descending", func(t *testing.T) {
		day := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)
		g := BuildGrouped([]models.Transaction{
			txAt("15", day, food),
			txAt("100", day, rent),
			txAt("5", day.Add(time.Hour), food),
		}, groupingNow)

		cats := g.Timeframes[0].Days[0].Categories
		if len(cats) != 2 {
			t.Fatalf("expected 2 category groups, got %d", len(cats))
		}
		if cats[0].CategoryName == nil || *cats[0].CategoryName != "Home & Bills" {
			t.Errorf("expected largest category first, got %v", cats[0].CategoryName)
		}
		if !cats[1].Total.Equal(dec("20")) {
			t.Errorf("expected food total 20, got %s", cats[1].Total)
		}
		// Within a category the newest transaction comes first.
		foodTxs := cats[1].Transactions
		if len(foodTxs) != 2 || !foodTxs[0].Date.After(foodTxs[1].Date) {
			t.Errorf("expected food transactions newest first")
		}
	})

	t.Run("uncategorized_group", func(t *testing.T) {
		day := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)
		g := BuildGrouped([]models.Transaction{
			txAt("10", day, nil),
			txAt("20", day, food),
		}, groupingNow)

		cats := g.Timeframes[0].Days[0].Categories
		if len(cats) != 2 {
			t.Fatalf("expected 2 category groups, got %d", len(cats))
		}
		var foundNil bool
		for _, c := range cats {
			if c.CategoryID == nil {
				foundNil = true
				if !c.Total.Equal(dec("10")) {
					t.Errorf("expected uncategorized total 10, got %s", c.Total)
				}
			}
		}
		if !foundNil {
			t.Error("expected an uncategorized group")
		}
	})

	t.Run("last_updated_propagates_to_root", func(t *testing.T) {
		early := time.Date(2026, 3, 17, 8, 0, 0, 0, time.UTC)
		late := time.Date(2026, 3, 18, 14, 0, 0, 0, time.UTC)

		a := txAt("10", early, nil)
		b := txAt("20", time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC), nil)
		b.UpdatedAt = late

		g := BuildGrouped([]models.Transaction{a, b}, groupingNow)

		if g.LastUpdatedAt == nil || !g.LastUpdatedAt.Equal(late) {
			t.Errorf("expected root last update %v, got %v", late, g.LastUpdatedAt)
		}
		for _, tf := range g.Timeframes {
			if tf.Label == timeframe.Today {
				if tf.LastUpdatedAt == nil || !tf.LastUpdatedAt.Equal(late) {
					t.Errorf("expected today bucket last update %v, got %v", late, tf.LastUpdatedAt)
				}
			}
		}
	})

	t.Run("created_at_fallback_for_last_updated", func(t *testing.T) {
		created := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)
		tx := makeTx(models.TransactionTypeExpense, "10", created, nil)
		tx.CreatedAt = created // UpdatedAt left zero

		g := BuildGrouped([]models.Transaction{tx}, groupingNow)

		if g.LastUpdatedAt == nil || !g.LastUpdatedAt.Equal(created) {
			t.Errorf("expected fallback to created_at %v, got %v", created, g.LastUpdatedAt)
		}
	})

	t.Run("roll_up_consistency", func(t *testing.T) {
		g := BuildGrouped([]models.Transaction{
			txAt("10", time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC), food),
			txAt("20", time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC), rent),
			txAt("30", time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC), nil),
			txAt("40", time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC), food),
		}, groupingNow)

		rootSum := dec("0")
		for _, tf := range g.Timeframes {
			tfSum := dec("0")
			for _, day := range tf.Days {
				daySum := dec("0")
				for _, cat := range day.Categories {
					catSum := dec("0")
					for _, item := range cat.Transactions {
						catSum = catSum.Add(item.Amount)
					}
					if !catSum.Equal(cat.Total) {
						t.Errorf("category total %s != item sum %s", cat.Total, catSum)
					}
					daySum = daySum.Add(cat.Total)
				}
				if !daySum.Equal(day.Total) {
					t.Errorf("day total %s != category sum %s", day.Total, daySum)
				}
				tfSum = tfSum.Add(day.Total)
			}
			if !tfSum.Equal(tf.Total) {
				t.Errorf("timeframe total %s != day sum %s", tf.Total, tfSum)
			}
			rootSum = rootSum.Add(tf.Total)
		}
		if !rootSum.Equal(g.Total) {
			t.Errorf("root total %s != timeframe sum %s", g.Total, rootSum)
		}
	})
}
