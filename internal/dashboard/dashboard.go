// Package dashboard assembles the views served to clients. It owns one
// session manager per user and layers the analytics and alert
// derivations on top of each session's snapshot.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/shubhamverma8991/credit-tracker/internal/alerts"
	"github.com/shubhamverma8991/credit-tracker/internal/analytics"
	"github.com/shubhamverma8991/credit-tracker/internal/core"
	"github.com/shubhamverma8991/credit-tracker/internal/session"
	"github.com/shubhamverma8991/credit-tracker/internal/store"
)

type Service struct {
	store store.Store

	mu       sync.Mutex
	sessions map[string]*session.Manager
}

func New(st store.Store) *Service {
	return &Service{
		store:    st,
		sessions: make(map[string]*session.Manager),
	}
}

// manager returns the user's session, creating and signing it in on
// first use.
func (s *Service) manager(userID string) *session.Manager {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.sessions[userID]; ok {
		return m
	}
	m := session.NewManager(s.store)
	m.SignIn(userID)
	s.sessions[userID] = m
	return m
}

// refresh reloads the user's snapshot and returns the manager.
func (s *Service) refresh(ctx context.Context, userID string) (*session.Manager, session.Snapshot, error) {
	m := s.manager(userID)
	if err := m.Refresh(ctx); err != nil {
		return nil, session.Snapshot{}, err
	}
	snap, _ := m.Snapshot()
	return m, snap, nil
}

// Drop signs the user out and discards their session.
func (s *Service) Drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.sessions[userID]; ok {
		m.SignOut()
		delete(s.sessions, userID)
	}
}

// MoneyView renders an amount as raw cents plus a display string.
type MoneyView struct {
	Cents   int64  `json:"cents"`
	Display string `json:"display"`
}

func moneyView(m core.Money) MoneyView {
	return MoneyView{Cents: m.Cents, Display: m.String()}
}

// SummaryView is the dashboard header: credit standing across all
// cards plus period spending stats.
type SummaryView struct {
	TotalLimit         MoneyView `json:"total_limit"`
	TotalBalance       MoneyView `json:"total_balance"`
	TotalAvailable     MoneyView `json:"total_available"`
	UtilizationRate    float64   `json:"utilization_rate"`
	CardCount          int       `json:"card_count"`
	PeriodDays         int       `json:"period_days"`
	PeriodSpending     MoneyView `json:"period_spending"`
	PeriodTransactions int       `json:"period_transactions"`
	AverageTransaction MoneyView `json:"average_transaction"`
	ActiveOfferCount   int       `json:"active_offer_count"`
	UpcomingDueCount   int       `json:"upcoming_due_count"`
	MonthOverMonth     TrendView `json:"month_over_month"`
}

// Summary refreshes the user's snapshot and computes the header view.
func (s *Service) Summary(ctx context.Context, userID string, today time.Time, days int) (SummaryView, error) {
	m, snap, err := s.refresh(ctx, userID)
	if err != nil {
		return SummaryView{}, err
	}

	credit := analytics.CreditSummary(snap.Cards)
	period := analytics.FilterByPeriod(snap.Expenses, today, days)

	activeOffers := 0
	for _, o := range snap.Offers {
		if o.Active {
			activeOffers++
		}
	}

	mom := analytics.MonthOverMonth(snap.Expenses, today)

	return SummaryView{
		TotalLimit:         moneyView(credit.TotalLimit),
		TotalBalance:       moneyView(credit.TotalBalance),
		TotalAvailable:     moneyView(credit.TotalAvailable),
		UtilizationRate:    credit.UtilizationRate,
		CardCount:          len(snap.Cards),
		PeriodDays:         days,
		PeriodSpending:     moneyView(analytics.TotalSpending(period)),
		PeriodTransactions: len(period),
		AverageTransaction: moneyView(analytics.AverageTransaction(period)),
		ActiveOfferCount:   activeOffers,
		UpcomingDueCount:   m.UpcomingDueCount(today),
		MonthOverMonth: TrendView{
			CurrentMonth:  moneyView(mom.CurrentMonth),
			PreviousMonth: moneyView(mom.PreviousMonth),
			ChangePercent: mom.ChangePercent,
			HasData:       mom.HasData,
		},
	}, nil
}

// CategoryView is one slice of the category breakdown chart.
type CategoryView struct {
	Category   string    `json:"category"`
	Amount     MoneyView `json:"amount"`
	Percentage float64   `json:"percentage"`
	Color      string    `json:"color"`
}

// Breakdown returns the category breakdown, either period-filtered or
// over the full expense history.
func (s *Service) Breakdown(ctx context.Context, userID string, today time.Time, days int, allTime bool) ([]CategoryView, error) {
	_, snap, err := s.refresh(ctx, userID)
	if err != nil {
		return nil, err
	}

	expenses := snap.Expenses
	if !allTime {
		expenses = analytics.FilterByPeriod(expenses, today, days)
	}

	slices := analytics.CategoryBreakdown(expenses)
	out := make([]CategoryView, 0, len(slices))
	for _, sl := range slices {
		out = append(out, CategoryView{
			Category:   string(sl.Category),
			Amount:     moneyView(sl.Amount),
			Percentage: sl.Percentage,
			Color:      sl.Color,
		})
	}
	return out, nil
}

// MonthView is one month of the spending trend chart.
type MonthView struct {
	Month  string    `json:"month"`
	Amount MoneyView `json:"amount"`
}

// Monthly returns the trailing twelve months of spending.
func (s *Service) Monthly(ctx context.Context, userID string, today time.Time) ([]MonthView, error) {
	_, snap, err := s.refresh(ctx, userID)
	if err != nil {
		return nil, err
	}

	points := analytics.MonthlySpending(snap.Expenses, today)
	out := make([]MonthView, 0, len(points))
	for _, p := range points {
		out = append(out, MonthView{Month: p.Month, Amount: moneyView(p.Amount)})
	}
	return out, nil
}

// TrendView compares this calendar month's spending with the previous
// one.
type TrendView struct {
	CurrentMonth  MoneyView `json:"current_month"`
	PreviousMonth MoneyView `json:"previous_month"`
	ChangePercent float64   `json:"change_percent"`
	HasData       bool      `json:"has_data"`
}

func (s *Service) Trend(ctx context.Context, userID string, today time.Time) (TrendView, error) {
	_, snap, err := s.refresh(ctx, userID)
	if err != nil {
		return TrendView{}, err
	}

	tc := analytics.MonthOverMonth(snap.Expenses, today)
	return TrendView{
		CurrentMonth:  moneyView(tc.CurrentMonth),
		PreviousMonth: moneyView(tc.PreviousMonth),
		ChangePercent: tc.ChangePercent,
		HasData:       tc.HasData,
	}, nil
}

// TopCardView names the card with the highest period spending. Found is
// false when no card saw any spending in the period.
type TopCardView struct {
	Found      bool      `json:"found"`
	CardID     string    `json:"card_id,omitempty"`
	CardName   string    `json:"card_name,omitempty"`
	Spent      MoneyView `json:"spent"`
	PeriodDays int       `json:"period_days"`
}

func (s *Service) TopCard(ctx context.Context, userID string, today time.Time, days int) (TopCardView, error) {
	_, snap, err := s.refresh(ctx, userID)
	if err != nil {
		return TopCardView{}, err
	}

	top, spent, ok := analytics.TopSpendingCard(snap.Cards, snap.Expenses, today, days)
	view := TopCardView{Found: ok, Spent: moneyView(spent), PeriodDays: days}
	if ok {
		view.CardID = top.ID
		view.CardName = top.Name
	}
	return view, nil
}

// CardSpendingView pairs a card with its spending over the period.
type CardSpendingView struct {
	CardID      string    `json:"card_id"`
	CardName    string    `json:"card_name"`
	Spent       MoneyView `json:"spent"`
	Utilization float64   `json:"utilization"`
}

// CardSpending reports period spending and utilization per card, in
// snapshot order.
func (s *Service) CardSpending(ctx context.Context, userID string, today time.Time, days int) ([]CardSpendingView, error) {
	_, snap, err := s.refresh(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]CardSpendingView, 0, len(snap.Cards))
	for _, c := range snap.Cards {
		out = append(out, CardSpendingView{
			CardID:      c.ID,
			CardName:    c.Name,
			Spent:       moneyView(analytics.CardSpending(c.ID, snap.Expenses, today, days)),
			Utilization: c.Utilization(),
		})
	}
	return out, nil
}

// Notifications refreshes the snapshot and derives the alert list with
// the user's dismissals applied.
func (s *Service) Notifications(ctx context.Context, userID string, today time.Time) ([]alerts.Notification, error) {
	m, _, err := s.refresh(ctx, userID)
	if err != nil {
		return nil, err
	}
	return m.Notifications(today), nil
}

// Dismiss hides a notification for the rest of the user's session.
func (s *Service) Dismiss(userID, notificationID string) {
	s.manager(userID).Dismiss(notificationID)
}

// ResetDismissed restores every dismissed notification.
func (s *Service) ResetDismissed(userID string) {
	s.manager(userID).ResetDismissed()
}
