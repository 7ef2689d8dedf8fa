package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shubhamverma8991/credit-tracker/internal/core"
	"github.com/shubhamverma8991/credit-tracker/internal/store"
)

const maxBodyBytes = 1 << 20

var errBadDate = errors.New("invalid date, expected YYYY-MM-DD")

// decodeBody parses the JSON request body into dst, rejecting unknown
// fields so client typos fail loudly.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// parseAmount converts a decimal rupee string to Money.
func parseAmount(s string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return core.Money{}, fmt.Errorf("invalid amount %q", s)
	}
	return core.Money{Cents: cents}, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errBadDate
	}
	return t, nil
}

// Amounts come in as decimal rupee strings and dates as YYYY-MM-DD;
// pointer fields distinguish "absent" from "set" on updates.

type cardRequest struct {
	Name           *string  `json:"name"`
	Bank           *string  `json:"bank"`
	LastFourDigits *string  `json:"last_four_digits"`
	CreditLimit    *string  `json:"credit_limit"`
	CurrentBalance *string  `json:"current_balance"`
	DueDate        *string  `json:"due_date"`
	MinPayment     *string  `json:"min_payment"`
	InterestRate   *float64 `json:"interest_rate"`
	RewardType     *string  `json:"reward_type"`
	Color          *string  `json:"color"`
}

func (req cardRequest) toCard(userID string) (core.Card, error) {
	card := core.Card{UserID: userID}
	if req.Name != nil {
		card.Name = *req.Name
	}
	if req.Bank != nil {
		card.Bank = *req.Bank
	}
	if req.LastFourDigits != nil {
		card.LastFourDigits = *req.LastFourDigits
	}
	if req.CreditLimit != nil {
		m, err := parseAmount(*req.CreditLimit)
		if err != nil {
			return core.Card{}, err
		}
		card.CreditLimit = m
	}
	if req.CurrentBalance != nil {
		m, err := parseAmount(*req.CurrentBalance)
		if err != nil {
			return core.Card{}, err
		}
		card.CurrentBalance = m
	}
	if req.DueDate != nil {
		d, err := parseDate(*req.DueDate)
		if err != nil {
			return core.Card{}, err
		}
		card.DueDate = d
	}
	if req.MinPayment != nil {
		m, err := parseAmount(*req.MinPayment)
		if err != nil {
			return core.Card{}, err
		}
		card.MinPayment = m
	}
	if req.InterestRate != nil {
		card.InterestRate = *req.InterestRate
	}
	card.RewardType = core.RewardNone
	if req.RewardType != nil {
		card.RewardType = core.ParseRewardType(*req.RewardType)
	}
	if req.Color != nil {
		card.Color = *req.Color
	}
	return card, nil
}

func (req cardRequest) toUpdate() (store.CardUpdate, error) {
	upd := store.CardUpdate{
		Name:           req.Name,
		Bank:           req.Bank,
		LastFourDigits: req.LastFourDigits,
		InterestRate:   req.InterestRate,
		Color:          req.Color,
	}
	if req.CreditLimit != nil {
		m, err := parseAmount(*req.CreditLimit)
		if err != nil {
			return store.CardUpdate{}, err
		}
		upd.CreditLimit = &m
	}
	if req.CurrentBalance != nil {
		m, err := parseAmount(*req.CurrentBalance)
		if err != nil {
			return store.CardUpdate{}, err
		}
		upd.CurrentBalance = &m
	}
	if req.DueDate != nil {
		d, err := parseDate(*req.DueDate)
		if err != nil {
			return store.CardUpdate{}, err
		}
		upd.DueDate = &d
	}
	if req.MinPayment != nil {
		m, err := parseAmount(*req.MinPayment)
		if err != nil {
			return store.CardUpdate{}, err
		}
		upd.MinPayment = &m
	}
	if req.RewardType != nil {
		rt := core.ParseRewardType(*req.RewardType)
		upd.RewardType = &rt
	}
	return upd, nil
}

type expenseRequest struct {
	CardID      *string `json:"card_id"`
	Amount      *string `json:"amount"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Date        *string `json:"date"`
	Merchant    *string `json:"merchant"`
}

func (req expenseRequest) toExpense(userID string) (core.Expense, error) {
	exp := core.Expense{UserID: userID}
	if req.CardID != nil {
		exp.CardID = *req.CardID
	}
	if req.Amount != nil {
		m, err := parseAmount(*req.Amount)
		if err != nil {
			return core.Expense{}, err
		}
		exp.Amount = m
	}
	if req.Description != nil {
		exp.Description = *req.Description
	}
	if req.Category != nil {
		exp.Category = core.ParseCategory(*req.Category)
	}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			return core.Expense{}, err
		}
		exp.Date = d
	}
	if req.Merchant != nil {
		exp.Merchant = *req.Merchant
	}
	return exp, nil
}

func (req expenseRequest) toUpdate() (store.ExpenseUpdate, error) {
	upd := store.ExpenseUpdate{
		CardID:      req.CardID,
		Description: req.Description,
		Merchant:    req.Merchant,
	}
	if req.Amount != nil {
		m, err := parseAmount(*req.Amount)
		if err != nil {
			return store.ExpenseUpdate{}, err
		}
		upd.Amount = &m
	}
	if req.Category != nil {
		c := core.ParseCategory(*req.Category)
		upd.Category = &c
	}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			return store.ExpenseUpdate{}, err
		}
		upd.Date = &d
	}
	return upd, nil
}

type offerRequest struct {
	CardID          *string  `json:"card_id"`
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Category        *string  `json:"category"`
	CashbackPercent *float64 `json:"cashback_percent"`
	ExpiryDate      *string  `json:"expiry_date"`
	Active          *bool    `json:"active"`
	MinSpend        *string  `json:"min_spend"`
}

func (req offerRequest) toOffer() (core.Offer, error) {
	offer := core.Offer{Active: true}
	if req.CardID != nil {
		offer.CardID = *req.CardID
	}
	if req.Title != nil {
		offer.Title = *req.Title
	}
	if req.Description != nil {
		offer.Description = *req.Description
	}
	if req.Category != nil {
		offer.Category = core.ParseCategory(*req.Category)
	}
	if req.CashbackPercent != nil {
		offer.CashbackPercent = *req.CashbackPercent
	}
	if req.ExpiryDate != nil {
		d, err := parseDate(*req.ExpiryDate)
		if err != nil {
			return core.Offer{}, err
		}
		offer.ExpiryDate = d
	}
	if req.Active != nil {
		offer.Active = *req.Active
	}
	if req.MinSpend != nil {
		m, err := parseAmount(*req.MinSpend)
		if err != nil {
			return core.Offer{}, err
		}
		offer.MinSpend = &m
	}
	return offer, nil
}

func (req offerRequest) toUpdate() (store.OfferUpdate, error) {
	upd := store.OfferUpdate{
		Title:           req.Title,
		Description:     req.Description,
		CashbackPercent: req.CashbackPercent,
		Active:          req.Active,
	}
	if req.Category != nil {
		c := core.ParseCategory(*req.Category)
		upd.Category = &c
	}
	if req.ExpiryDate != nil {
		d, err := parseDate(*req.ExpiryDate)
		if err != nil {
			return store.OfferUpdate{}, err
		}
		upd.ExpiryDate = &d
	}
	if req.MinSpend != nil {
		m, err := parseAmount(*req.MinSpend)
		if err != nil {
			return store.OfferUpdate{}, err
		}
		upd.MinSpend = &m
	}
	return upd, nil
}
