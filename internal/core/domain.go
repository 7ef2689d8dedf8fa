package core

import (
	"errors"
	"strings"
	"time"
)

const (
	RewardCashback   RewardType = "cashback"
	RewardPoints     RewardType = "reward_points"
	RewardMiles      RewardType = "miles"
	RewardFuelPoints RewardType = "fuel_points"
	RewardNone       RewardType = "none"
)

type (
	RewardType string

	// Card is a single credit card owned by a user. DueDate is
	// date-granular: always midnight UTC.
	Card struct {
		ID             string
		UserID         string
		Name           string
		Bank           string
		LastFourDigits string
		CreditLimit    Money
		CurrentBalance Money
		DueDate        time.Time
		MinPayment     Money
		InterestRate   float64
		RewardType     RewardType
		Color          string
		CreatedAt      time.Time
	}

	Expense struct {
		ID          string
		CardID      string
		UserID      string
		Amount      Money
		Description string
		Category    Category
		Date        time.Time
		Merchant    string
		CreatedAt   time.Time
	}

	Offer struct {
		ID              string
		CardID          string
		Title           string
		Description     string
		Category        Category
		CashbackPercent float64
		ExpiryDate      time.Time
		Active          bool
		MinSpend        *Money
		CreatedAt       time.Time
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyName         = errors.New("empty name")
	ErrEmptyDescription  = errors.New("empty description")
	ErrEmptyTitle        = errors.New("empty title")
	ErrMissingCard       = errors.New("missing card reference")
	ErrMissingUser       = errors.New("missing user reference")
	ErrInvalidLastFour   = errors.New("last four digits must be exactly four digits")
	ErrNegativeLimit     = errors.New("credit limit cannot be negative")
	ErrNegativeCashback  = errors.New("cashback percent cannot be negative")
	ErrZeroDate          = errors.New("date cannot be zero")
	ErrInvalidRewardType = errors.New("invalid reward type")
)

// NewDate builds a date-granular time at midnight UTC.
func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ParseRewardType maps a raw string to a RewardType, falling back to
// RewardNone for anything outside the known set.
func ParseRewardType(s string) RewardType {
	switch RewardType(strings.TrimSpace(strings.ToLower(s))) {
	case RewardCashback:
		return RewardCashback
	case RewardPoints:
		return RewardPoints
	case RewardMiles:
		return RewardMiles
	case RewardFuelPoints:
		return RewardFuelPoints
	default:
		return RewardNone
	}
}

func (rt RewardType) Valid() bool {
	switch rt {
	case RewardCashback, RewardPoints, RewardMiles, RewardFuelPoints, RewardNone:
		return true
	default:
		return false
	}
}

// Utilization returns the balance as a percentage of the credit limit.
// A zero limit yields 0, never a division fault.
func (c Card) Utilization() float64 {
	if c.CreditLimit.Cents <= 0 {
		return 0
	}
	return float64(c.CurrentBalance.Cents) / float64(c.CreditLimit.Cents) * 100
}

// Available returns the remaining credit. May be negative when the
// balance exceeds the limit.
func (c Card) Available() Money {
	return Money{Cents: c.CreditLimit.Cents - c.CurrentBalance.Cents}
}

func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.UserID) == "" {
		return ErrMissingUser
	}
	if len(c.LastFourDigits) != 4 || !allDigits(c.LastFourDigits) {
		return ErrInvalidLastFour
	}
	if c.CreditLimit.Cents < 0 {
		return ErrNegativeLimit
	}
	if c.DueDate.IsZero() {
		return ErrZeroDate
	}
	if !c.RewardType.Valid() {
		return ErrInvalidRewardType
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if strings.TrimSpace(e.CardID) == "" {
		return ErrMissingCard
	}
	if strings.TrimSpace(e.UserID) == "" {
		return ErrMissingUser
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (o Offer) Validate() error {
	if strings.TrimSpace(o.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(o.CardID) == "" {
		return ErrMissingCard
	}
	if o.CashbackPercent < 0 {
		return ErrNegativeCashback
	}
	if o.ExpiryDate.IsZero() {
		return ErrZeroDate
	}
	if o.MinSpend != nil && o.MinSpend.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
