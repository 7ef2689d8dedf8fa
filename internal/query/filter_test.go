package query

import (
	"testing"

	"github.com/shubhamverma8991/credit-tracker/internal/core"
)

func TestExpenses(t *testing.T) {
	expenses := []core.Expense{
		{ID: "e1", CardID: "c1", Category: core.CategoryGrocery},
		{ID: "e2", CardID: "c1", Category: core.CategoryDining},
		{ID: "e3", CardID: "c2", Category: core.CategoryGrocery},
	}

	tests := []struct {
		name    string
		filter  ExpenseFilter
		wantIDs []string
	}{
		{"empty filter matches all", ExpenseFilter{}, []string{"e1", "e2", "e3"}},
		{"by card", ExpenseFilter{CardID: "c1"}, []string{"e1", "e2"}},
		{"by category", ExpenseFilter{Category: core.CategoryGrocery}, []string{"e1", "e3"}},
		{"card and category", ExpenseFilter{CardID: "c1", Category: core.CategoryGrocery}, []string{"e1"}},
		{"no match", ExpenseFilter{CardID: "c9"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expenses(expenses, tt.filter)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d expenses, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("position %d = %s, want %s", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestOffers(t *testing.T) {
	offers := []core.Offer{
		{ID: "o1", CardID: "c1", Active: true},
		{ID: "o2", CardID: "c1", Active: false},
		{ID: "o3", CardID: "c2", Active: true},
	}

	tests := []struct {
		name    string
		filter  OfferFilter
		wantIDs []string
	}{
		{"empty filter matches all", OfferFilter{}, []string{"o1", "o2", "o3"}},
		{"by card", OfferFilter{CardID: "c1"}, []string{"o1", "o2"}},
		{"active only", OfferFilter{ActiveOnly: true}, []string{"o1", "o3"}},
		{"card and active", OfferFilter{CardID: "c1", ActiveOnly: true}, []string{"o1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Offers(offers, tt.filter)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d offers, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("position %d = %s, want %s", i, got[i].ID, want)
				}
			}
		})
	}
}
