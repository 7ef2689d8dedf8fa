// Package store defines the persistence boundary for cards, expenses
// and offers. Implementations live in the memory and sqlite
// subpackages; the backend factory picks one at startup.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/shubhamverma8991/credit-tracker/internal/core"
)

var ErrNotFound = errors.New("record not found")

// Store is the full persistence surface. Every id-addressed operation
// is scoped to the acting user: a record that exists but belongs to
// someone else behaves exactly like a missing one (ErrNotFound).
// Offers are owned through their card. List results come back
// newest-first (created_at for cards and offers, expense date for
// expenses); callers that need a different order sort for themselves.
type Store interface {
	ListCards(ctx context.Context, userID string) ([]core.Card, error)
	CreateCard(ctx context.Context, card core.Card) (core.Card, error)
	UpdateCard(ctx context.Context, userID, id string, upd CardUpdate) (core.Card, error)
	DeleteCard(ctx context.Context, userID, id string) error

	ListExpenses(ctx context.Context, userID, cardID string) ([]core.Expense, error)
	CreateExpense(ctx context.Context, expense core.Expense) (core.Expense, error)
	UpdateExpense(ctx context.Context, userID, id string, upd ExpenseUpdate) (core.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error

	ListOffers(ctx context.Context, userID, cardID string) ([]core.Offer, error)
	CreateOffer(ctx context.Context, userID string, offer core.Offer) (core.Offer, error)
	UpdateOffer(ctx context.Context, userID, id string, upd OfferUpdate) (core.Offer, error)
	DeleteOffer(ctx context.Context, userID, id string) error
}

// CardUpdate is a partial update: nil fields keep their stored value.
type CardUpdate struct {
	Name           *string
	Bank           *string
	LastFourDigits *string
	CreditLimit    *core.Money
	CurrentBalance *core.Money
	DueDate        *time.Time
	MinPayment     *core.Money
	InterestRate   *float64
	RewardType     *core.RewardType
	Color          *string
}

type ExpenseUpdate struct {
	CardID      *string
	Amount      *core.Money
	Description *string
	Category    *core.Category
	Date        *time.Time
	Merchant    *string
}

type OfferUpdate struct {
	Title           *string
	Description     *string
	Category        *core.Category
	CashbackPercent *float64
	ExpiryDate      *time.Time
	Active          *bool
	MinSpend        *core.Money
}

// Apply copies the non-nil fields onto the card.
func (u CardUpdate) Apply(c *core.Card) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Bank != nil {
		c.Bank = *u.Bank
	}
	if u.LastFourDigits != nil {
		c.LastFourDigits = *u.LastFourDigits
	}
	if u.CreditLimit != nil {
		c.CreditLimit = *u.CreditLimit
	}
	if u.CurrentBalance != nil {
		c.CurrentBalance = *u.CurrentBalance
	}
	if u.DueDate != nil {
		c.DueDate = *u.DueDate
	}
	if u.MinPayment != nil {
		c.MinPayment = *u.MinPayment
	}
	if u.InterestRate != nil {
		c.InterestRate = *u.InterestRate
	}
	if u.RewardType != nil {
		c.RewardType = *u.RewardType
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
}

func (u ExpenseUpdate) Apply(e *core.Expense) {
	if u.CardID != nil {
		e.CardID = *u.CardID
	}
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Merchant != nil {
		e.Merchant = *u.Merchant
	}
}

func (u OfferUpdate) Apply(o *core.Offer) {
	if u.Title != nil {
		o.Title = *u.Title
	}
	if u.Description != nil {
		o.Description = *u.Description
	}
	if u.Category != nil {
		o.Category = *u.Category
	}
	if u.CashbackPercent != nil {
		o.CashbackPercent = *u.CashbackPercent
	}
	if u.ExpiryDate != nil {
		o.ExpiryDate = *u.ExpiryDate
	}
	if u.Active != nil {
		o.Active = *u.Active
	}
	if u.MinSpend != nil {
		ms := *u.MinSpend
		o.MinSpend = &ms
	}
}
