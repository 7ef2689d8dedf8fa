// Package alerts derives the notification list shown on the dashboard
// from the card and offer snapshot. Derivation is pure and idempotent:
// the same inputs and reference date always produce the same
// notification ids, which is what keeps the session's dismissed set
// stable across reloads.
package alerts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shubhamverma8991/credit-tracker/internal/core"
)

const (
	KindDueDate         Kind = "due_date"
	KindHighUtilization Kind = "high_utilization"
	KindOfferExpiry     Kind = "offer_expiry"
)

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type (
	Kind     string
	Priority string

	// Notification is ephemeral: recomputed on every refresh, never
	// stored. The ID is derived from (kind, source id) so repeated
	// derivation over the same data yields identical ids.
	Notification struct {
		ID        string
		Kind      Kind
		Title     string
		Message   string
		Priority  Priority
		CardID    string
		OfferID   string
		CreatedAt time.Time
	}
)

// rank orders priorities for sorting; higher sorts first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// DaysUntil returns the number of whole days from today until the given
// date, rounding partial days up. Dates are expected at day granularity
// so the result is usually exact; the ceil matters only when inputs
// carry a time-of-day component.
func DaysUntil(date, today time.Time) int {
	return int(math.Ceil(date.Sub(today).Hours() / 24))
}

// Derive scans cards and offers and produces the prioritized alert
// list. Rules are evaluated independently, so one card can contribute
// both a due-date and a utilization notification. The result is sorted
// by priority descending with a stable sort: all notifications share
// the evaluation time, so ties keep discovery order.
func Derive(cards []core.Card, offers []core.Offer, today time.Time) []Notification {
	var out []Notification

	for _, card := range cards {
		if n, ok := dueDateAlert(card, today); ok {
			out = append(out, n)
		}
	}
	for _, card := range cards {
		if n, ok := utilizationAlert(card, today); ok {
			out = append(out, n)
		}
	}
	for _, offer := range offers {
		if n, ok := offerExpiryAlert(offer, today); ok {
			out = append(out, n)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.rank() > out[j].Priority.rank()
	})
	return out
}

func dueDateAlert(card core.Card, today time.Time) (Notification, bool) {
	daysUntilDue := DaysUntil(card.DueDate, today)

	switch {
	case daysUntilDue <= 0:
		return Notification{
			ID:    fmt.Sprintf("due-overdue-%s", card.ID),
			Kind:  KindDueDate,
			Title: "Payment Overdue",
			Message: fmt.Sprintf("Your %s payment is %d days overdue. Pay %s immediately to avoid late fees.",
				card.Name, -daysUntilDue, card.MinPayment),
			Priority:  PriorityHigh,
			CardID:    card.ID,
			CreatedAt: today,
		}, true
	case daysUntilDue <= 3:
		priority := PriorityMedium
		if daysUntilDue == 1 {
			priority = PriorityHigh
		}
		return Notification{
			ID:    fmt.Sprintf("due-soon-%s", card.ID),
			Kind:  KindDueDate,
			Title: "Payment Due Soon",
			Message: fmt.Sprintf("Your %s payment of %s is due in %d day%s.",
				card.Name, card.MinPayment, daysUntilDue, plural(daysUntilDue)),
			Priority:  priority,
			CardID:    card.ID,
			CreatedAt: today,
		}, true
	}
	return Notification{}, false
}

func utilizationAlert(card core.Card, today time.Time) (Notification, bool) {
	utilization := card.Utilization()
	if utilization < 80 {
		return Notification{}, false
	}
	priority := PriorityMedium
	if utilization >= 90 {
		priority = PriorityHigh
	}
	return Notification{
		ID:    fmt.Sprintf("utilization-%s", card.ID),
		Kind:  KindHighUtilization,
		Title: "High Credit Utilization",
		Message: fmt.Sprintf("Your %s is %.1f%% utilized. Consider paying down the balance to improve your credit score.",
			card.Name, utilization),
		Priority:  priority,
		CardID:    card.ID,
		CreatedAt: today,
	}, true
}

func offerExpiryAlert(offer core.Offer, today time.Time) (Notification, bool) {
	if !offer.Active {
		return Notification{}, false
	}
	daysUntilExpiry := DaysUntil(offer.ExpiryDate, today)
	if daysUntilExpiry <= 0 || daysUntilExpiry > 7 {
		return Notification{}, false
	}
	priority := PriorityMedium
	if daysUntilExpiry <= 3 {
		priority = PriorityHigh
	}
	return Notification{
		ID:    fmt.Sprintf("offer-expiry-%s", offer.ID),
		Kind:  KindOfferExpiry,
		Title: "Offer Expiring Soon",
		Message: fmt.Sprintf("%s expires in %d day%s. Use it before %s.",
			offer.Title, daysUntilExpiry, plural(daysUntilExpiry),
			offer.ExpiryDate.Format("02/01/2006")),
		Priority:  priority,
		OfferID:   offer.ID,
		CardID:    offer.CardID,
		CreatedAt: today,
	}, true
}

// UpcomingDueCount counts cards whose payment is due within the next
// seven days. This is the coarse summary-badge figure; it deliberately
// uses a wider window than the 3-day due-soon alert and the two
// thresholds must not be merged.
func UpcomingDueCount(cards []core.Card, today time.Time) int {
	count := 0
	for _, card := range cards {
		d := DaysUntil(card.DueDate, today)
		if d > 0 && d <= 7 {
			count++
		}
	}
	return count
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
