// Package query narrows snapshot slices for display. Filters are pure
// and operate on data already in memory; they never touch storage.
package query

import "github.com/shubhamverma8991/credit-tracker/internal/core"

// ExpenseFilter selects expenses by card and category. Zero-value
// fields match everything.
type ExpenseFilter struct {
	CardID   string
	Category core.Category
}

// OfferFilter selects offers by card, optionally restricted to active
// ones. A zero-value filter matches everything.
type OfferFilter struct {
	CardID     string
	ActiveOnly bool
}

func (f ExpenseFilter) matches(e core.Expense) bool {
	if f.CardID != "" && e.CardID != f.CardID {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return true
}

func (f OfferFilter) matches(o core.Offer) bool {
	if f.CardID != "" && o.CardID != f.CardID {
		return false
	}
	if f.ActiveOnly && !o.Active {
		return false
	}
	return true
}

// Expenses returns the expenses matching the filter, preserving input
// order.
func Expenses(expenses []core.Expense, f ExpenseFilter) []core.Expense {
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Offers returns the offers matching the filter, preserving input
// order.
func Offers(offers []core.Offer, f OfferFilter) []core.Offer {
	out := make([]core.Offer, 0, len(offers))
	for _, o := range offers {
		if f.matches(o) {
			out = append(out, o)
		}
	}
	return out
}
