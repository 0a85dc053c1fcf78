package report

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertSum(t *testing.T, got []int, want int) {
	t.Helper()
	sum := 0
	for _, v := range got {
		sum += v
	}
	if sum != want {
		t.Errorf("expected percentages to sum to %d, got %d (%v)", want, sum, got)
	}
}

func TestAllocatePercentages(t *testing.T) {
	t.Run("exact_split", func(t *testing.T) {
		got := AllocatePercentages([]decimal.Decimal{dec("70"), dec("20"), dec("10")})
		want := []int{70, 20, 10}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
			}
		}
		assertSum(t, got, 100)
	})

	t.Run("largest_remainder_gets_the_point", func(t *testing.T) {
		got := AllocatePercentages([]decimal.Decimal{dec("33.33"), dec("33.33"), dec("33.34")})
		want := []int{33, 33, 34}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
			}
		}
		assertSum(t, got, 100)
	})

	t.Run("remainder_ties_break_by_input_order", func(t *testing.T) {
		// Four entries of 16.66 and two of 16.68: floors sum to 96, the two
		// .68 remainders win first, the last two points go to the earliest
		// .66 entries.
		got := AllocatePercentages([]decimal.Decimal{
			dec("16.66"), dec("16.66"), dec("16.66"), dec("16.66"), dec("16.68"), dec("16.68"),
		})
		want := []int{17, 17, 16, 16, 17, 17}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %d, got %d (%v)", i, want[i], got[i], got)
			}
		}
		assertSum(t, got, 100)
	})

	t.Run("tiny_share_rounds_up_to_one", func(t *testing.T) {
		got := AllocatePercentages([]decimal.Decimal{dec("99.8"), dec("0.2")})
		if got[1] != 1 {
			t.Errorf("expected tiny positive share to get 1, got %d", got[1])
		}
		assertSum(t, got, 100)
	})

	t.Run("surplus_taken_from_smallest_remainders", func(t *testing.T) {
		// Floors sum to 101; the entry with the smaller fraction loses the
		// point.
		got := AllocatePercentages([]decimal.Decimal{dec("50.2"), dec("51.9")})
		want := []int{49, 51}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
			}
		}
		assertSum(t, got, 100)
	})

	t.Run("surplus_never_drives_below_zero", func(t *testing.T) {
		got := AllocatePercentages([]decimal.Decimal{dec("100"), dec("100")})
		for i, v := range got {
			if v < 0 {
				t.Errorf("position %d went negative: %d", i, v)
			}
		}
	})

	t.Run("single_entry", func(t *testing.T) {
		got := AllocatePercentages([]decimal.Decimal{dec("100")})
		if len(got) != 1 || got[0] != 100 {
			t.Errorf("expected [100], got %v", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := AllocatePercentages(nil); got != nil {
			t.Errorf("expected nil for empty input, got %v", got)
		}
	})

	t.Run("many_small_shares", func(t *testing.T) {
		// 7 equal shares of 100/7 ≈ 14.2857: floors give 98, two entries
		// gain a point, everything still sums to 100.
		raw := make([]decimal.Decimal, 7)
		for i := range raw {
			raw[i] = dec("100").Div(dec("7"))
		}
		got := AllocatePercentages(raw)
		assertSum(t, got, 100)
		for i, v := range got {
			if v != 14 && v != 15 {
				t.Errorf("position %d: expected 14 or 15, got %d", i, v)
			}
		}
	})
}
