package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/shubhamverma8991/credit-tracker/internal/core"
)

var today = core.NewDate(2025, 6, 15)

func expense(cardID string, cat core.Category, cents int64, date time.Time) core.Expense {
	return core.Expense{
		ID:          cardID + "-" + date.Format("20060102"),
		CardID:      cardID,
		UserID:      "user-1",
		Amount:      core.Money{Cents: cents},
		Description: "test expense",
		Category:    cat,
		Date:        date,
	}
}

func TestCreditSummary(t *testing.T) {
	tests := []struct {
		name            string
		cards           []core.Card
		wantLimit       int64
		wantBalance     int64
		wantAvailable   int64
		wantUtilization float64
	}{
		{
			name: "two cards",
			cards: []core.Card{
				{CreditLimit: core.Money{Cents: 10000000}, CurrentBalance: core.Money{Cents: 2500000}},
				{CreditLimit: core.Money{Cents: 10000000}, CurrentBalance: core.Money{Cents: 7500000}},
			},
			wantLimit:       20000000,
			wantBalance:     10000000,
			wantAvailable:   10000000,
			wantUtilization: 50,
		},
		{
			name: "zero total limit",
			cards: []core.Card{
				{CreditLimit: core.Money{}, CurrentBalance: core.Money{Cents: 500000}},
			},
			wantLimit:       0,
			wantBalance:     500000,
			wantAvailable:   -500000,
			wantUtilization: 0,
		},
		{name: "no cards"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreditSummary(tt.cards)
			if got.TotalLimit.Cents != tt.wantLimit {
				t.Errorf("TotalLimit = %d, want %d", got.TotalLimit.Cents, tt.wantLimit)
			}
			if got.TotalBalance.Cents != tt.wantBalance {
				t.Errorf("TotalBalance = %d, want %d", got.TotalBalance.Cents, tt.wantBalance)
			}
			if got.TotalAvailable.Cents != tt.wantAvailable {
				t.Errorf("TotalAvailable = %d, want %d", got.TotalAvailable.Cents, tt.wantAvailable)
			}
			if got.UtilizationRate != tt.wantUtilization {
				t.Errorf("UtilizationRate = %v, want %v", got.UtilizationRate, tt.wantUtilization)
			}
		})
	}
}

func TestFilterByPeriod(t *testing.T) {
	expenses := []core.Expense{
		expense("c1", core.CategoryGrocery, 100, core.NewDate(2025, 6, 14)),
		expense("c1", core.CategoryGrocery, 200, core.NewDate(2025, 6, 8)),  // exactly 7 days back
		expense("c1", core.CategoryGrocery, 400, core.NewDate(2025, 6, 7)),  // 8 days back
		expense("c1", core.CategoryGrocery, 800, core.NewDate(2025, 3, 1)),
	}

	got := FilterByPeriod(expenses, today, 7)
	if len(got) != 2 {
		t.Fatalf("FilterByPeriod(7) returned %d expenses, want 2", len(got))
	}
	if total := TotalSpending(got); total.Cents != 300 {
		t.Errorf("TotalSpending = %d, want 300", total.Cents)
	}

	if got := FilterByPeriod(expenses, today, 365); len(got) != 4 {
		t.Errorf("FilterByPeriod(365) returned %d expenses, want 4", len(got))
	}
}

func TestAverageTransaction(t *testing.T) {
	if got := AverageTransaction(nil); got.Cents != 0 {
		t.Errorf("AverageTransaction(empty) = %d, want 0", got.Cents)
	}

	expenses := []core.Expense{
		expense("c1", core.CategoryDining, 300, today),
		expense("c1", core.CategoryDining, 500, today),
	}
	if got := AverageTransaction(expenses); got.Cents != 400 {
		t.Errorf("AverageTransaction = %d, want 400", got.Cents)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	expenses := []core.Expense{
		expense("c1", core.CategoryGrocery, 3000, today),
		expense("c1", core.CategoryDining, 5000, today),
		expense("c2", core.CategoryGrocery, 1000, today),
		expense("c2", core.CategoryFuel, 2000, today),
	}

	got := CategoryBreakdown(expenses)
	if len(got) != 3 {
		t.Fatalf("breakdown has %d rows, want 3", len(got))
	}

	// Sorted descending by amount: dining 5000, grocery 4000, fuel 2000.
	wantOrder := []core.Category{core.CategoryDining, core.CategoryGrocery, core.CategoryFuel}
	for i, want := range wantOrder {
		if got[i].Category != want {
			t.Errorf("row %d category = %v, want %v", i, got[i].Category, want)
		}
	}

	// Amounts sum back to the input total.
	var sumAmount int64
	var sumPct float64
	for _, row := range got {
		sumAmount += row.Amount.Cents
		sumPct += row.Percentage
		if row.Color == "" {
			t.Errorf("category %v has no color", row.Category)
		}
	}
	if want := TotalSpending(expenses).Cents; sumAmount != want {
		t.Errorf("sum of breakdown amounts = %d, want %d", sumAmount, want)
	}
	if math.Abs(sumPct-100) > 1e-9 {
		t.Errorf("sum of percentages = %v, want 100", sumPct)
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	if got := CategoryBreakdown(nil); len(got) != 0 {
		t.Errorf("breakdown of empty input has %d rows, want 0", len(got))
	}

	// Zero-amount input: percentages must all be 0, not NaN.
	expenses := []core.Expense{
		{CardID: "c1", Category: core.CategoryOther, Amount: core.Money{}, Date: today},
	}
	got := CategoryBreakdown(expenses)
	if len(got) != 1 || got[0].Percentage != 0 {
		t.Errorf("zero-total breakdown = %+v, want single row with 0%%", got)
	}
}

func TestMonthlySpending(t *testing.T) {
	expenses := []core.Expense{
		expense("c1", core.CategoryGrocery, 100, core.NewDate(2025, 6, 1)),
		expense("c1", core.CategoryGrocery, 200, core.NewDate(2025, 6, 30)),
		expense("c1", core.CategoryGrocery, 300, core.NewDate(2025, 1, 15)),
		expense("c1", core.CategoryGrocery, 400, core.NewDate(2024, 7, 1)),  // window start
		expense("c1", core.CategoryGrocery, 800, core.NewDate(2024, 6, 30)), // outside window
	}

	got := MonthlySpending(expenses, today)
	want := []MonthlyPoint{
		{Month: "2024-07", Amount: core.Money{Cents: 400}},
		{Month: "2025-01", Amount: core.Money{Cents: 300}},
		{Month: "2025-06", Amount: core.Money{Cents: 300}},
	}
	if len(got) != len(want) {
		t.Fatalf("MonthlySpending returned %d points, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTopSpendingCard(t *testing.T) {
	cards := []core.Card{
		{ID: "c1", Name: "First"},
		{ID: "c2", Name: "Second"},
	}

	t.Run("tie keeps input order", func(t *testing.T) {
		expenses := []core.Expense{
			expense("c1", core.CategoryGrocery, 300000, today),
			expense("c2", core.CategoryGrocery, 300000, today),
		}
		top, spent, ok := TopSpendingCard(cards, expenses, today, 30)
		if !ok {
			t.Fatal("ok = false, want true")
		}
		if top.ID != "c1" {
			t.Errorf("top card = %s, want c1 (first in input order)", top.ID)
		}
		if spent.Cents != 300000 {
			t.Errorf("spent = %d, want 300000", spent.Cents)
		}
	})

	t.Run("no spending", func(t *testing.T) {
		if _, _, ok := TopSpendingCard(cards, nil, today, 30); ok {
			t.Error("ok = true with no expenses, want false")
		}
	})

	t.Run("no cards", func(t *testing.T) {
		expenses := []core.Expense{expense("c1", core.CategoryGrocery, 100, today)}
		if _, _, ok := TopSpendingCard(nil, expenses, today, 30); ok {
			t.Error("ok = true with no cards, want false")
		}
	})

	t.Run("period excludes old spending", func(t *testing.T) {
		expenses := []core.Expense{
			expense("c1", core.CategoryGrocery, 900000, core.NewDate(2025, 1, 1)),
			expense("c2", core.CategoryGrocery, 100000, today),
		}
		top, _, ok := TopSpendingCard(cards, expenses, today, 30)
		if !ok || top.ID != "c2" {
			t.Errorf("top card = %s (ok=%v), want c2", top.ID, ok)
		}
	})
}

func TestMonthOverMonth(t *testing.T) {
	tests := []struct {
		name        string
		expenses    []core.Expense
		wantPercent float64
		wantHasData bool
	}{
		{
			name: "previous month zero falls back to zero",
			expenses: []core.Expense{
				expense("c1", core.CategoryGrocery, 500000, core.NewDate(2025, 6, 10)),
			},
			wantPercent: 0,
			wantHasData: true,
		},
		{
			name: "fifty percent increase",
			expenses: []core.Expense{
				expense("c1", core.CategoryGrocery, 300000, core.NewDate(2025, 6, 10)),
				expense("c1", core.CategoryGrocery, 200000, core.NewDate(2025, 5, 10)),
			},
			wantPercent: 50,
			wantHasData: true,
		},
		{
			name: "decrease",
			expenses: []core.Expense{
				expense("c1", core.CategoryGrocery, 100000, core.NewDate(2025, 6, 10)),
				expense("c1", core.CategoryGrocery, 200000, core.NewDate(2025, 5, 10)),
			},
			wantPercent: -50,
			wantHasData: true,
		},
		{
			name:        "no data at all",
			expenses:    nil,
			wantPercent: 0,
			wantHasData: false,
		},
		{
			name: "older months do not count",
			expenses: []core.Expense{
				expense("c1", core.CategoryGrocery, 100000, core.NewDate(2025, 3, 10)),
			},
			wantPercent: 0,
			wantHasData: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthOverMonth(tt.expenses, today)
			if got.ChangePercent != tt.wantPercent {
				t.Errorf("ChangePercent = %v, want %v", got.ChangePercent, tt.wantPercent)
			}
			if got.HasData != tt.wantHasData {
				t.Errorf("HasData = %v, want %v", got.HasData, tt.wantHasData)
			}
		})
	}
}

func TestMonthOverMonthJanuary(t *testing.T) {
	jan := core.NewDate(2025, 1, 20)
	expenses := []core.Expense{
		expense("c1", core.CategoryGrocery, 300000, core.NewDate(2025, 1, 5)),
		expense("c1", core.CategoryGrocery, 150000, core.NewDate(2024, 12, 28)),
	}
	got := MonthOverMonth(expenses, jan)
	if got.ChangePercent != 100 {
		t.Errorf("ChangePercent across year boundary = %v, want 100", got.ChangePercent)
	}
}
