// Package feed decorates a Store with record-change announcements.
// Writes go to the wrapped store first; only successful ones are
// published, and a publish failure never fails the write.
package feed

import (
	"context"
	"log/slog"

	"github.com/shubhamverma8991/credit-tracker/internal/amqp"
	"github.com/shubhamverma8991/credit-tracker/internal/core"
	"github.com/shubhamverma8991/credit-tracker/internal/store"
)

// Publisher is the slice of the AMQP client the feed needs.
type Publisher interface {
	PublishRecordChange(ctx context.Context, msg *amqp.RecordChangeMessage) error
}

type Store struct {
	store.Store
	publisher Publisher
}

var _ store.Store = (*Store)(nil)

func New(inner store.Store, publisher Publisher) *Store {
	return &Store{Store: inner, publisher: publisher}
}

func (s *Store) publish(ctx context.Context, entity, action, id, userID string) {
	msg := amqp.NewRecordChangeMessage(entity, action, id, userID)
	if err := s.publisher.PublishRecordChange(ctx, msg); err != nil {
		slog.WarnContext(ctx, "Failed to publish record change",
			"entity", entity,
			"action", action,
			"id", id,
			"error", err)
	}
}

func (s *Store) CreateCard(ctx context.Context, card core.Card) (core.Card, error) {
	created, err := s.Store.CreateCard(ctx, card)
	if err != nil {
		return created, err
	}
	s.publish(ctx, amqp.EntityCard, amqp.ActionCreated, created.ID, created.UserID)
	return created, nil
}

func (s *Store) UpdateCard(ctx context.Context, userID, id string, upd store.CardUpdate) (core.Card, error) {
	updated, err := s.Store.UpdateCard(ctx, userID, id, upd)
	if err != nil {
		return updated, err
	}
	s.publish(ctx, amqp.EntityCard, amqp.ActionUpdated, updated.ID, updated.UserID)
	return updated, nil
}

func (s *Store) DeleteCard(ctx context.Context, userID, id string) error {
	if err := s.Store.DeleteCard(ctx, userID, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityCard, amqp.ActionDeleted, id, userID)
	return nil
}

func (s *Store) CreateExpense(ctx context.Context, expense core.Expense) (core.Expense, error) {
	created, err := s.Store.CreateExpense(ctx, expense)
	if err != nil {
		return created, err
	}
	s.publish(ctx, amqp.EntityExpense, amqp.ActionCreated, created.ID, created.UserID)
	return created, nil
}

func (s *Store) UpdateExpense(ctx context.Context, userID, id string, upd store.ExpenseUpdate) (core.Expense, error) {
	updated, err := s.Store.UpdateExpense(ctx, userID, id, upd)
	if err != nil {
		return updated, err
	}
	s.publish(ctx, amqp.EntityExpense, amqp.ActionUpdated, updated.ID, updated.UserID)
	return updated, nil
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id string) error {
	if err := s.Store.DeleteExpense(ctx, userID, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityExpense, amqp.ActionDeleted, id, userID)
	return nil
}

func (s *Store) CreateOffer(ctx context.Context, userID string, offer core.Offer) (core.Offer, error) {
	created, err := s.Store.CreateOffer(ctx, userID, offer)
	if err != nil {
		return created, err
	}
	s.publish(ctx, amqp.EntityOffer, amqp.ActionCreated, created.ID, userID)
	return created, nil
}

func (s *Store) UpdateOffer(ctx context.Context, userID, id string, upd store.OfferUpdate) (core.Offer, error) {
	updated, err := s.Store.UpdateOffer(ctx, userID, id, upd)
	if err != nil {
		return updated, err
	}
	s.publish(ctx, amqp.EntityOffer, amqp.ActionUpdated, updated.ID, userID)
	return updated, nil
}

func (s *Store) DeleteOffer(ctx context.Context, userID, id string) error {
	if err := s.Store.DeleteOffer(ctx, userID, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.EntityOffer, amqp.ActionDeleted, id, userID)
	return nil
}
