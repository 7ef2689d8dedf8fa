package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shubhamverma8991/credit-tracker/internal/alerts"
	"github.com/shubhamverma8991/credit-tracker/internal/core"
)

const dateLayout = "2006-01-02"

// moneyJSON renders an amount both as raw cents for clients that
// compute and as a formatted string for clients that display.
type moneyJSON struct {
	Cents   int64  `json:"cents"`
	Display string `json:"display"`
}

func money(m core.Money) moneyJSON {
	return moneyJSON{Cents: m.Cents, Display: m.String()}
}

type cardJSON struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Bank           string    `json:"bank"`
	LastFourDigits string    `json:"last_four_digits"`
	CreditLimit    moneyJSON `json:"credit_limit"`
	CurrentBalance moneyJSON `json:"current_balance"`
	Available      moneyJSON `json:"available"`
	Utilization    float64   `json:"utilization"`
	DueDate        string    `json:"due_date"`
	MinPayment     moneyJSON `json:"min_payment"`
	InterestRate   float64   `json:"interest_rate"`
	RewardType     string    `json:"reward_type"`
	Color          string    `json:"color"`
	CreatedAt      time.Time `json:"created_at"`
}

func toCardJSON(c core.Card) cardJSON {
	return cardJSON{
		ID:             c.ID,
		Name:           c.Name,
		Bank:           c.Bank,
		LastFourDigits: c.LastFourDigits,
		CreditLimit:    money(c.CreditLimit),
		CurrentBalance: money(c.CurrentBalance),
		Available:      money(c.Available()),
		Utilization:    c.Utilization(),
		DueDate:        c.DueDate.Format(dateLayout),
		MinPayment:     money(c.MinPayment),
		InterestRate:   c.InterestRate,
		RewardType:     string(c.RewardType),
		Color:          c.Color,
		CreatedAt:      c.CreatedAt,
	}
}

type expenseJSON struct {
	ID          string    `json:"id"`
	CardID      string    `json:"card_id"`
	Amount      moneyJSON `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Merchant    string    `json:"merchant,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		ID:          e.ID,
		CardID:      e.CardID,
		Amount:      money(e.Amount),
		Description: e.Description,
		Category:    string(e.Category),
		Date:        e.Date.Format(dateLayout),
		Merchant:    e.Merchant,
		CreatedAt:   e.CreatedAt,
	}
}

type offerJSON struct {
	ID              string     `json:"id"`
	CardID          string     `json:"card_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	CashbackPercent float64    `json:"cashback_percent"`
	ExpiryDate      string     `json:"expiry_date"`
	Active          bool       `json:"active"`
	MinSpend        *moneyJSON `json:"min_spend,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toOfferJSON(o core.Offer) offerJSON {
	out := offerJSON{
		ID:              o.ID,
		CardID:          o.CardID,
		Title:           o.Title,
		Description:     o.Description,
		Category:        string(o.Category),
		CashbackPercent: o.CashbackPercent,
		ExpiryDate:      o.ExpiryDate.Format(dateLayout),
		Active:          o.Active,
		CreatedAt:       o.CreatedAt,
	}
	if o.MinSpend != nil {
		ms := money(*o.MinSpend)
		out.MinSpend = &ms
	}
	return out
}

type notificationJSON struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
	CardID   string `json:"card_id,omitempty"`
	OfferID  string `json:"offer_id,omitempty"`
}

func toNotificationJSON(n alerts.Notification) notificationJSON {
	return notificationJSON{
		ID:       n.ID,
		Kind:     string(n.Kind),
		Title:    n.Title,
		Message:  n.Message,
		Priority: string(n.Priority),
		CardID:   n.CardID,
		OfferID:  n.OfferID,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
