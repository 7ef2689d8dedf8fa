// Package session holds the signed-in user's working set: the latest
// snapshot of cards, expenses and offers plus the dismissed
// notifications. All derivation layers read from here instead of
// hitting the store directly.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shubhamverma8991/credit-tracker/internal/alerts"
	"github.com/shubhamverma8991/credit-tracker/internal/core"
	"github.com/shubhamverma8991/credit-tracker/internal/store"
)

var ErrNotSignedIn = errors.New("no user signed in")

// Snapshot is an immutable view of the user's data. Refresh replaces
// it wholesale; nothing mutates it in place.
type Snapshot struct {
	Cards    []core.Card
	Expenses []core.Expense
	Offers   []core.Offer
	LoadedAt time.Time
}

type Manager struct {
	store store.Store

	mu        sync.Mutex
	userID    string
	gen       uint64
	snap      Snapshot
	haveSnap  bool
	dismissed *alerts.DismissedSet
}

func NewManager(st store.Store) *Manager {
	return &Manager{
		store:     st,
		dismissed: alerts.NewDismissedSet(),
	}
}

// SignIn binds the manager to a user. Any previous user's snapshot and
// dismissals are dropped.
func (m *Manager) SignIn(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = userID
	m.gen++
	m.snap = Snapshot{}
	m.haveSnap = false
	m.dismissed.Reset()
}

// SignOut clears the user binding, the snapshot and the dismissed set.
// In-flight refreshes become stale and their results are discarded.
func (m *Manager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = ""
	m.gen++
	m.snap = Snapshot{}
	m.haveSnap = false
	m.dismissed.Reset()
}

// Refresh loads the three collections concurrently and installs them as
// the new snapshot. A refresh that is overtaken by a newer refresh or a
// sign-out discards its result. Failed reads degrade to empty
// collections rather than failing the whole refresh.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	userID := m.userID
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	if userID == "" {
		return ErrNotSignedIn
	}

	var (
		cards    []core.Card
		expenses []core.Expense
		offers   []core.Offer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if cards, err = m.store.ListCards(gctx, userID); err != nil {
			slog.WarnContext(gctx, "Failed to load cards, using empty set", "error", err)
			cards = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if expenses, err = m.store.ListExpenses(gctx, userID, ""); err != nil {
			slog.WarnContext(gctx, "Failed to load expenses, using empty set", "error", err)
			expenses = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if offers, err = m.store.ListOffers(gctx, userID, ""); err != nil {
			slog.WarnContext(gctx, "Failed to load offers, using empty set", "error", err)
			offers = nil
		}
		return nil
	})
	g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen || m.userID != userID {
		slog.DebugContext(ctx, "Discarding stale refresh result", "user_id", userID)
		return nil
	}
	m.snap = Snapshot{
		Cards:    cards,
		Expenses: expenses,
		Offers:   offers,
		LoadedAt: time.Now(),
	}
	m.haveSnap = true
	return nil
}

// Snapshot returns the current snapshot; ok is false until the first
// successful refresh and again after sign-out.
func (m *Manager) Snapshot() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, m.haveSnap
}

// UserID returns the signed-in user, empty when signed out.
func (m *Manager) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID
}

// Notifications derives the alert list from the snapshot with
// dismissed entries removed. Signed out or before the first refresh it
// returns nothing.
func (m *Manager) Notifications(today time.Time) []alerts.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.haveSnap {
		return nil
	}
	return m.dismissed.Filter(alerts.Derive(m.snap.Cards, m.snap.Offers, today))
}

// UpcomingDueCount reports the summary badge for the snapshot.
func (m *Manager) UpcomingDueCount(today time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.haveSnap {
		return 0
	}
	return alerts.UpcomingDueCount(m.snap.Cards, today)
}

func (m *Manager) Dismiss(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dismissed.Dismiss(id)
}

func (m *Manager) ResetDismissed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dismissed.Reset()
}
