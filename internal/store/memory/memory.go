// Package memory is the in-memory Store backend. It is the default
// backend for local runs and the test double for everything above the
// persistence boundary.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shubhamverma8991/credit-tracker/internal/core"
	"github.com/shubhamverma8991/credit-tracker/internal/store"
)

// Store keeps all records in maps guarded by a single mutex. Returned
// slices are fresh copies, so callers can hold them across later
// writes.
type Store struct {
	mu       sync.Mutex
	cards    map[string]core.Card
	expenses map[string]core.Expense
	offers   map[string]core.Offer
	now      func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		cards:    make(map[string]core.Card),
		expenses: make(map[string]core.Expense),
		offers:   make(map[string]core.Offer),
		now:      time.Now,
	}
}

// NewWithClock pins record timestamps for tests.
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

func (s *Store) ListCards(_ context.Context, userID string) ([]core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Card, 0, len(s.cards))
	for _, c := range s.cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) CreateCard(_ context.Context, card core.Card) (core.Card, error) {
	if err := card.Validate(); err != nil {
		return core.Card{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = s.now()
	}
	s.cards[card.ID] = card
	return card, nil
}

// ownsCard reports whether the card exists and belongs to the user.
// Callers hold the mutex.
func (s *Store) ownsCard(userID, cardID string) bool {
	card, ok := s.cards[cardID]
	return ok && card.UserID == userID
}

func (s *Store) UpdateCard(_ context.Context, userID, id string, upd store.CardUpdate) (core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[id]
	if !ok || card.UserID != userID {
		return core.Card{}, store.ErrNotFound
	}
	upd.Apply(&card)
	if err := card.Validate(); err != nil {
		return core.Card{}, err
	}
	s.cards[id] = card
	return card, nil
}

// DeleteCard removes the card together with its expenses and offers,
// mirroring the cascade the sqlite schema enforces.
func (s *Store) DeleteCard(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ownsCard(userID, id) {
		return store.ErrNotFound
	}
	delete(s.cards, id)
	for eid, e := range s.expenses {
		if e.CardID == id {
			delete(s.expenses, eid)
		}
	}
	for oid, o := range s.offers {
		if o.CardID == id {
			delete(s.offers, oid)
		}
	}
	return nil
}

func (s *Store) ListExpenses(_ context.Context, userID, cardID string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if e.UserID != userID {
			continue
		}
		if cardID != "" && e.CardID != cardID {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *Store) CreateExpense(_ context.Context, expense core.Expense) (core.Expense, error) {
	if err := expense.Validate(); err != nil {
		return core.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ownsCard(expense.UserID, expense.CardID) {
		return core.Expense{}, store.ErrNotFound
	}
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = s.now()
	}
	s.expenses[expense.ID] = expense
	return expense, nil
}

func (s *Store) UpdateExpense(_ context.Context, userID, id string, upd store.ExpenseUpdate) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense, ok := s.expenses[id]
	if !ok || expense.UserID != userID {
		return core.Expense{}, store.ErrNotFound
	}
	upd.Apply(&expense)
	if err := expense.Validate(); err != nil {
		return core.Expense{}, err
	}
	// Moving the expense requires the target card too.
	if !s.ownsCard(userID, expense.CardID) {
		return core.Expense{}, store.ErrNotFound
	}
	s.expenses[id] = expense
	return expense, nil
}

func (s *Store) DeleteExpense(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense, ok := s.expenses[id]
	if !ok || expense.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *Store) ListOffers(_ context.Context, userID, cardID string) ([]core.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Offer, 0, len(s.offers))
	for _, o := range s.offers {
		if !s.ownsCard(userID, o.CardID) {
			continue
		}
		if cardID != "" && o.CardID != cardID {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) CreateOffer(_ context.Context, userID string, offer core.Offer) (core.Offer, error) {
	if err := offer.Validate(); err != nil {
		return core.Offer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ownsCard(userID, offer.CardID) {
		return core.Offer{}, store.ErrNotFound
	}
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = s.now()
	}
	s.offers[offer.ID] = offer
	return offer, nil
}

func (s *Store) UpdateOffer(_ context.Context, userID, id string, upd store.OfferUpdate) (core.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, ok := s.offers[id]
	if !ok || !s.ownsCard(userID, offer.CardID) {
		return core.Offer{}, store.ErrNotFound
	}
	upd.Apply(&offer)
	if err := offer.Validate(); err != nil {
		return core.Offer{}, err
	}
	s.offers[id] = offer
	return offer, nil
}

func (s *Store) DeleteOffer(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, ok := s.offers[id]
	if !ok || !s.ownsCard(userID, offer.CardID) {
		return store.ErrNotFound
	}
	delete(s.offers, id)
	return nil
}
