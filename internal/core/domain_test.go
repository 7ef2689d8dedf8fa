package core

import (
	"testing"
	"time"
)

func validCard() Card {
	return Card{
		ID:             "card-1",
		UserID:         "user-1",
		Name:           "HDFC Regalia",
		Bank:           "HDFC",
		LastFourDigits: "4321",
		CreditLimit:    Money{Cents: 10000000},
		CurrentBalance: Money{Cents: 2500000},
		DueDate:        NewDate(2025, 6, 15),
		MinPayment:     Money{Cents: 250000},
		InterestRate:   42.0,
		RewardType:     RewardPoints,
		Color:          "#ef4444",
	}
}

func TestCardValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Card)
		wantErr error
	}{
		{"valid", func(*Card) {}, nil},
		{"empty name", func(c *Card) { c.Name = "  " }, ErrEmptyName},
		{"missing user", func(c *Card) { c.UserID = "" }, ErrMissingUser},
		{"short last four", func(c *Card) { c.LastFourDigits = "432" }, ErrInvalidLastFour},
		{"non-digit last four", func(c *Card) { c.LastFourDigits = "43a1" }, ErrInvalidLastFour},
		{"negative limit", func(c *Card) { c.CreditLimit = Money{Cents: -1} }, ErrNegativeLimit},
		{"zero due date", func(c *Card) { c.DueDate = time.Time{} }, ErrZeroDate},
		{"bogus reward type", func(c *Card) { c.RewardType = "airmiles" }, ErrInvalidRewardType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(&card)
			if err := card.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCardUtilization(t *testing.T) {
	tests := []struct {
		name    string
		limit   int64
		balance int64
		want    float64
	}{
		{"normal", 10000000, 2500000, 25},
		{"zero limit", 0, 500000, 0},
		{"over limit", 10000000, 12000000, 120},
		{"zero balance", 10000000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Card{CreditLimit: Money{Cents: tt.limit}, CurrentBalance: Money{Cents: tt.balance}}
			if got := c.Utilization(); got != tt.want {
				t.Errorf("Utilization() = %v, want %v", got, tt.want)
			}
			if got := c.Utilization(); got < 0 {
				t.Errorf("Utilization() = %v, must never be negative", got)
			}
		})
	}
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		CardID:      "card-1",
		UserID:      "user-1",
		Amount:      Money{Cents: 125000},
		Description: "Weekly groceries",
		Category:    CategoryGrocery,
		Date:        NewDate(2025, 6, 1),
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid expense = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Expense)
	}{
		{"zero amount", func(e *Expense) { e.Amount = Money{} }},
		{"negative amount", func(e *Expense) { e.Amount = Money{Cents: -100} }},
		{"empty description", func(e *Expense) { e.Description = "" }},
		{"no card", func(e *Expense) { e.CardID = "" }},
		{"no user", func(e *Expense) { e.UserID = "" }},
		{"zero date", func(e *Expense) { e.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := e.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestOfferValidate(t *testing.T) {
	valid := Offer{
		CardID:          "card-1",
		Title:           "10% on groceries",
		Category:        CategoryGrocery,
		CashbackPercent: 10,
		ExpiryDate:      NewDate(2025, 12, 31),
		Active:          true,
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid offer = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Offer)
	}{
		{"empty title", func(o *Offer) { o.Title = "" }},
		{"no card", func(o *Offer) { o.CardID = "" }},
		{"negative cashback", func(o *Offer) { o.CashbackPercent = -1 }},
		{"zero expiry", func(o *Offer) { o.ExpiryDate = time.Time{} }},
		{"negative min spend", func(o *Offer) { o.MinSpend = &Money{Cents: -5} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			if err := o.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"grocery", CategoryGrocery},
		{" Dining ", CategoryDining},
		{"FUEL", CategoryFuel},
		{"cryptocurrency", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseCategory(tt.in); got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategoryColor(t *testing.T) {
	if got := CategoryGrocery.Color(); got != "#22c55e" {
		t.Errorf("grocery color = %q, want #22c55e", got)
	}
	if got := Category("bogus").Color(); got != FallbackColor {
		t.Errorf("unknown category color = %q, want fallback %q", got, FallbackColor)
	}
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("catalog category %q not valid", c)
		}
	}
}

func TestParseRewardType(t *testing.T) {
	tests := []struct {
		in   string
		want RewardType
	}{
		{"cashback", RewardCashback},
		{"reward_points", RewardPoints},
		{"miles", RewardMiles},
		{"fuel_points", RewardFuelPoints},
		{"none", RewardNone},
		{"platinum", RewardNone},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseRewardType(tt.in); got != tt.want {
				t.Errorf("ParseRewardType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
