package alerts

import (
	"strings"
	"testing"
	"time"

	"github.com/shubhamverma8991/credit-tracker/internal/core"
)

var today = core.NewDate(2025, 6, 15)

func card(id string, due time.Time, limitCents, balanceCents int64) core.Card {
	return core.Card{
		ID:             id,
		UserID:         "user-1",
		Name:           "HDFC Regalia",
		Bank:           "HDFC",
		LastFourDigits: "4321",
		CreditLimit:    core.Money{Cents: limitCents},
		CurrentBalance: core.Money{Cents: balanceCents},
		DueDate:        due,
		MinPayment:     core.Money{Cents: 250000},
		RewardType:     core.RewardPoints,
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"same day", today, 0},
		{"tomorrow", core.NewDate(2025, 6, 16), 1},
		{"five days out", core.NewDate(2025, 6, 20), 5},
		{"five days overdue", core.NewDate(2025, 6, 10), -5},
		{"partial day rounds up", today.Add(6 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.date, today); got != tt.want {
				t.Errorf("DaysUntil = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDeriveOverdue(t *testing.T) {
	cards := []core.Card{card("c1", core.NewDate(2025, 6, 10), 10000000, 1000000)}

	got := Derive(cards, nil, today)
	if len(got) != 1 {
		t.Fatalf("Derive returned %d notifications, want 1", len(got))
	}
	n := got[0]
	if n.Kind != KindDueDate || n.Priority != PriorityHigh {
		t.Errorf("notification = %s/%s, want due_date/high", n.Kind, n.Priority)
	}
	if n.ID != "due-overdue-c1" {
		t.Errorf("ID = %q, want due-overdue-c1", n.ID)
	}
	if !strings.Contains(n.Message, "5 days overdue") {
		t.Errorf("message %q does not mention days overdue", n.Message)
	}
	if !strings.Contains(n.Message, "2500") {
		t.Errorf("message %q does not mention the minimum payment", n.Message)
	}
}

func TestDeriveDueSoon(t *testing.T) {
	tests := []struct {
		name         string
		due          time.Time
		wantCount    int
		wantPriority Priority
	}{
		{"due tomorrow", core.NewDate(2025, 6, 16), 1, PriorityHigh},
		{"due in three days", core.NewDate(2025, 6, 18), 1, PriorityMedium},
		{"due in four days", core.NewDate(2025, 6, 19), 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive([]core.Card{card("c1", tt.due, 10000000, 0)}, nil, today)
			if len(got) != tt.wantCount {
				t.Fatalf("Derive returned %d notifications, want %d", len(got), tt.wantCount)
			}
			if tt.wantCount == 1 {
				if got[0].ID != "due-soon-c1" || got[0].Priority != tt.wantPriority {
					t.Errorf("got %s/%s, want due-soon-c1/%s", got[0].ID, got[0].Priority, tt.wantPriority)
				}
			}
		})
	}
}

func TestDeriveUtilization(t *testing.T) {
	farDue := core.NewDate(2025, 12, 1)
	tests := []struct {
		name         string
		balance      int64
		wantCount    int
		wantPriority Priority
	}{
		{"ninety five percent", 9500000, 1, PriorityHigh},
		{"eighty five percent", 8500000, 1, PriorityMedium},
		{"seventy nine percent", 7900000, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive([]core.Card{card("c1", farDue, 10000000, tt.balance)}, nil, today)
			if len(got) != tt.wantCount {
				t.Fatalf("Derive returned %d notifications, want %d", len(got), tt.wantCount)
			}
			if tt.wantCount == 1 {
				n := got[0]
				if n.Kind != KindHighUtilization || n.Priority != tt.wantPriority {
					t.Errorf("got %s/%s, want high_utilization/%s", n.Kind, n.Priority, tt.wantPriority)
				}
				if n.ID != "utilization-c1" {
					t.Errorf("ID = %q, want utilization-c1", n.ID)
				}
			}
		})
	}
}

func TestDeriveOfferExpiry(t *testing.T) {
	offer := core.Offer{
		ID:         "o1",
		CardID:     "c1",
		Title:      "10% on groceries",
		Category:   core.CategoryGrocery,
		ExpiryDate: core.NewDate(2025, 6, 18),
		Active:     true,
	}

	got := Derive(nil, []core.Offer{offer}, today)
	if len(got) != 1 {
		t.Fatalf("Derive returned %d notifications, want 1", len(got))
	}
	n := got[0]
	if n.Kind != KindOfferExpiry || n.Priority != PriorityHigh {
		t.Errorf("notification = %s/%s, want offer_expiry/high", n.Kind, n.Priority)
	}
	if n.ID != "offer-expiry-o1" {
		t.Errorf("ID = %q, want offer-expiry-o1", n.ID)
	}
	if n.OfferID != "o1" || n.CardID != "c1" {
		t.Errorf("source ids = offer %q card %q", n.OfferID, n.CardID)
	}

	t.Run("inactive offer is skipped", func(t *testing.T) {
		inactive := offer
		inactive.Active = false
		if got := Derive(nil, []core.Offer{inactive}, today); len(got) != 0 {
			t.Errorf("Derive returned %d notifications for inactive offer, want 0", len(got))
		}
	})

	t.Run("expired offer is skipped", func(t *testing.T) {
		expired := offer
		expired.ExpiryDate = core.NewDate(2025, 6, 14)
		if got := Derive(nil, []core.Offer{expired}, today); len(got) != 0 {
			t.Errorf("Derive returned %d notifications for expired offer, want 0", len(got))
		}
	})

	t.Run("seven days out is medium", func(t *testing.T) {
		week := offer
		week.ExpiryDate = core.NewDate(2025, 6, 22)
		got := Derive(nil, []core.Offer{week}, today)
		if len(got) != 1 || got[0].Priority != PriorityMedium {
			t.Fatalf("got %+v, want one medium notification", got)
		}
	})
}

func TestDeriveOrderingAndIdempotence(t *testing.T) {
	cards := []core.Card{
		card("c1", core.NewDate(2025, 6, 18), 10000000, 8500000), // due-soon medium + utilization medium
		card("c2", core.NewDate(2025, 6, 10), 10000000, 9500000), // overdue high + utilization high
	}
	offers := []core.Offer{
		{ID: "o1", CardID: "c1", Title: "Dining deal", Category: core.CategoryDining, ExpiryDate: core.NewDate(2025, 6, 21), Active: true}, // medium
	}

	got := Derive(cards, offers, today)
	if len(got) != 5 {
		t.Fatalf("Derive returned %d notifications, want 5", len(got))
	}

	// High before medium; within a priority, discovery order holds:
	// due-date rules first, then utilization, then offers.
	wantIDs := []string{
		"due-overdue-c2",
		"utilization-c2",
		"due-soon-c1",
		"utilization-c1",
		"offer-expiry-o1",
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, want)
		}
	}

	again := Derive(cards, offers, today)
	for i := range got {
		if again[i].ID != got[i].ID {
			t.Errorf("second derivation position %d = %s, want %s", i, again[i].ID, got[i].ID)
		}
	}
}

func TestUpcomingDueCount(t *testing.T) {
	cards := []core.Card{
		card("c1", core.NewDate(2025, 6, 16), 1, 0), // 1 day
		card("c2", core.NewDate(2025, 6, 22), 1, 0), // 7 days
		card("c3", core.NewDate(2025, 6, 23), 1, 0), // 8 days, out
		card("c4", core.NewDate(2025, 6, 15), 1, 0), // due today, out
		card("c5", core.NewDate(2025, 6, 10), 1, 0), // overdue, out
	}

	if got := UpcomingDueCount(cards, today); got != 2 {
		t.Errorf("UpcomingDueCount = %d, want 2", got)
	}
}

func TestDismissedSet(t *testing.T) {
	cards := []core.Card{card("c1", core.NewDate(2025, 6, 10), 10000000, 0)}
	ns := Derive(cards, nil, today)
	if len(ns) != 1 {
		t.Fatalf("Derive returned %d notifications, want 1", len(ns))
	}

	set := NewDismissedSet()
	set.Dismiss(ns[0].ID)
	set.Dismiss("no-such-notification")

	if got := set.Filter(ns); len(got) != 0 {
		t.Errorf("Filter after dismiss kept %d notifications, want 0", len(got))
	}
	if !set.Contains(ns[0].ID) || set.Len() != 2 {
		t.Errorf("set state = contains %v len %d", set.Contains(ns[0].ID), set.Len())
	}

	// The deterministic id keeps the dismissal effective across a re-derive.
	if got := set.Filter(Derive(cards, nil, today)); len(got) != 0 {
		t.Errorf("Filter after re-derive kept %d notifications, want 0", len(got))
	}

	set.Reset()
	if got := set.Filter(ns); len(got) != 1 {
		t.Errorf("Filter after reset kept %d notifications, want 1", len(got))
	}
}
