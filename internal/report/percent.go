package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AllocatePercentages rounds a list of raw percentage values (conceptually
// summing to 100) to integers that sum to exactly 100, using the
// largest-remainder method.
//
// Any entry that is strictly positive but floors to zero is bumped to 1
// before remainders are distributed, budget permitting, in input order.
// Remaining deficit goes one unit at a time to the largest fractional
// remainders; a surplus is taken one unit at a time from the smallest
// remainders, never driving an entry below zero. All ties break by input
// order.
func AllocatePercentages(raw []decimal.Decimal) []int {
	if len(raw) == 0 {
		return nil
	}

	rounded := make([]int, len(raw))
	fractions := make([]decimal.Decimal, len(raw))
	flooredSum := 0
	for i, p := range raw {
		floor := p.Floor()
		rounded[i] = int(floor.IntPart())
		fractions[i] = p.Sub(floor)
		flooredSum += rounded[i]
	}
	remaining := 100 - flooredSum

	// Starved entries: non-zero raw values that floored to zero get at
	// least 1 if the budget allows, and no longer compete on remainder.
	if remaining > 0 {
		for i := range raw {
			if remaining == 0 {
				break
			}
			if rounded[i] == 0 && raw[i].IsPositive() {
				rounded[i] = 1
				fractions[i] = decimal.Zero
				remaining--
			}
		}
	}

	idx := make([]int, len(raw))
	for i := range idx {
		idx[i] = i
	}

	if remaining > 0 {
		sort.SliceStable(idx, func(a, b int) bool {
			return fractions[idx[a]].GreaterThan(fractions[idx[b]])
		})
		for _, i := range idx[:min(remaining, len(idx))] {
			rounded[i]++
		}
	} else if remaining < 0 {
		sort.SliceStable(idx, func(a, b int) bool {
			return fractions[idx[a]].LessThan(fractions[idx[b]])
		})
		for _, i := range idx[:min(-remaining, len(idx))] {
			if rounded[i] > 0 {
				rounded[i]--
			}
		}
	}

	return rounded
}
