// Package analytics computes dashboard metrics from a snapshot of cards
// and expenses. Every function is pure: results depend only on the
// inputs and the explicit reference date, never on the wall clock.
package analytics

import (
	"sort"
	"time"

	"github.com/shubhamverma8991/credit-tracker/internal/core"
)

// Summary aggregates credit standing across all cards.
type Summary struct {
	TotalLimit      core.Money
	TotalBalance    core.Money
	TotalAvailable  core.Money
	UtilizationRate float64
}

// CategorySlice is one row of a category breakdown.
type CategorySlice struct {
	Category   core.Category
	Amount     core.Money
	Percentage float64
	Color      string
}

// MonthlyPoint is one month of the spending trend, keyed YYYY-MM.
type MonthlyPoint struct {
	Month  string
	Amount core.Money
}

// TrendChange is the month-over-month spending comparison. ChangePercent
// is 0 whenever the previous month had no spending; HasData tells the
// caller whether either month contained at least one expense, so a zero
// change can be distinguished from an empty ledger.
type TrendChange struct {
	CurrentMonth  core.Money
	PreviousMonth core.Money
	ChangePercent float64
	HasData       bool
}

// CreditSummary totals limits and balances across cards. A zero total
// limit yields a zero utilization rate.
func CreditSummary(cards []core.Card) Summary {
	var s Summary
	for _, c := range cards {
		s.TotalLimit.Cents += c.CreditLimit.Cents
		s.TotalBalance.Cents += c.CurrentBalance.Cents
	}
	s.TotalAvailable.Cents = s.TotalLimit.Cents - s.TotalBalance.Cents
	if s.TotalLimit.Cents > 0 {
		s.UtilizationRate = float64(s.TotalBalance.Cents) / float64(s.TotalLimit.Cents) * 100
	}
	return s
}

// FilterByPeriod keeps expenses dated within the trailing period of
// days, inclusive of the cutoff day.
func FilterByPeriod(expenses []core.Expense, today time.Time, days int) []core.Expense {
	cutoff := today.AddDate(0, 0, -days)
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !e.Date.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// TotalSpending sums the amounts of the given expenses.
func TotalSpending(expenses []core.Expense) core.Money {
	var total core.Money
	for _, e := range expenses {
		total.Cents += e.Amount.Cents
	}
	return total
}

// AverageTransaction returns the mean expense amount, 0 when there are
// no expenses.
func AverageTransaction(expenses []core.Expense) core.Money {
	if len(expenses) == 0 {
		return core.Money{}
	}
	return core.Money{Cents: TotalSpending(expenses).Cents / int64(len(expenses))}
}

// CategoryBreakdown groups the given expenses by category, sorted by
// amount descending. Percentages are of the input set's total and all 0
// when the total is 0. The caller decides whether the input is the full
// history or a period-filtered slice; both scopes are in use.
func CategoryBreakdown(expenses []core.Expense) []CategorySlice {
	sums := make(map[core.Category]int64)
	order := make([]core.Category, 0)
	for _, e := range expenses {
		if _, seen := sums[e.Category]; !seen {
			order = append(order, e.Category)
		}
		sums[e.Category] += e.Amount.Cents
	}

	total := TotalSpending(expenses).Cents
	out := make([]CategorySlice, 0, len(order))
	for _, cat := range order {
		amount := sums[cat]
		var pct float64
		if total > 0 {
			pct = float64(amount) / float64(total) * 100
		}
		out = append(out, CategorySlice{
			Category:   cat,
			Amount:     core.Money{Cents: amount},
			Percentage: pct,
			Color:      cat.Color(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// MonthlySpending groups expenses from the trailing 12 calendar months
// (including the current one) by YYYY-MM key, ascending.
func MonthlySpending(expenses []core.Expense, today time.Time) []MonthlyPoint {
	start := firstOfMonth(today).AddDate(0, -11, 0)
	sums := make(map[string]int64)
	for _, e := range expenses {
		if e.Date.Before(start) {
			continue
		}
		sums[e.Date.Format("2006-01")] += e.Amount.Cents
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthlyPoint, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthlyPoint{Month: k, Amount: core.Money{Cents: sums[k]}})
	}
	return out
}

// CardSpending sums period-filtered expenses charged to the given card.
func CardSpending(cardID string, expenses []core.Expense, today time.Time, days int) core.Money {
	var total core.Money
	for _, e := range FilterByPeriod(expenses, today, days) {
		if e.CardID == cardID {
			total.Cents += e.Amount.Cents
		}
	}
	return total
}

// TopSpendingCard returns the card with the highest period spending.
// Ties resolve to the first card in input order. ok is false when there
// are no cards or every card's period spending is zero.
func TopSpendingCard(cards []core.Card, expenses []core.Expense, today time.Time, days int) (top core.Card, spent core.Money, ok bool) {
	filtered := FilterByPeriod(expenses, today, days)
	byCard := make(map[string]int64)
	for _, e := range filtered {
		byCard[e.CardID] += e.Amount.Cents
	}

	var best int64
	for _, c := range cards {
		if amount := byCard[c.ID]; amount > best {
			best = amount
			top = c
			ok = true
		}
	}
	spent = core.Money{Cents: best}
	return top, spent, ok
}

// MonthOverMonth compares spending in the current calendar month with
// the previous one. The change is a percentage of the previous month's
// total and falls back to 0 when that total is 0; HasData reports
// whether either month contained any expense at all.
func MonthOverMonth(expenses []core.Expense, today time.Time) TrendChange {
	current := firstOfMonth(today)
	previous := current.AddDate(0, -1, 0)

	var tc TrendChange
	var currentCount, previousCount int
	for _, e := range expenses {
		switch {
		case sameMonth(e.Date, current):
			tc.CurrentMonth.Cents += e.Amount.Cents
			currentCount++
		case sameMonth(e.Date, previous):
			tc.PreviousMonth.Cents += e.Amount.Cents
			previousCount++
		}
	}

	tc.HasData = currentCount > 0 || previousCount > 0
	if tc.PreviousMonth.Cents > 0 {
		diff := tc.CurrentMonth.Cents - tc.PreviousMonth.Cents
		tc.ChangePercent = float64(diff) / float64(tc.PreviousMonth.Cents) * 100
	}
	return tc
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
