// Package worker turns record-change messages into backup rows on the
// export sheet.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shubhamverma8991/credit-tracker/internal/amqp"
	"github.com/shubhamverma8991/credit-tracker/internal/core"
	"github.com/shubhamverma8991/credit-tracker/internal/sheets"
	"github.com/shubhamverma8991/credit-tracker/internal/store"
)

// BackupWorker appends expense changes to the backup sheet. The sheet
// is append-only, so card and offer changes and expense deletions are
// acknowledged without writing. Appended ids are remembered in memory
// to keep the startup sweep from duplicating rows within one process
// lifetime.
type BackupWorker struct {
	store  store.Store
	writer sheets.ExpenseWriter

	mu       sync.Mutex
	backedUp map[string]string // expense id -> sheet ref
	users    map[string]struct{}
}

func NewBackupWorker(st store.Store, writer sheets.ExpenseWriter) *BackupWorker {
	return &BackupWorker{
		store:    st,
		writer:   writer,
		backedUp: make(map[string]string),
		users:    make(map[string]struct{}),
	}
}

// TrackUser registers a user for periodic sweeps.
func (w *BackupWorker) TrackUser(userID string) {
	if userID == "" {
		return
	}
	w.mu.Lock()
	w.users[userID] = struct{}{}
	w.mu.Unlock()
}

// HandleChange processes a single record-change message.
func (w *BackupWorker) HandleChange(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	w.TrackUser(msg.UserID)

	if msg.Entity != amqp.EntityExpense {
		slog.DebugContext(ctx, "Skipping non-expense change",
			"entity", msg.Entity,
			"action", msg.Action,
			"id", msg.ID)
		return nil
	}
	if msg.Action == amqp.ActionDeleted {
		slog.DebugContext(ctx, "Skipping expense deletion, backup sheet is append-only",
			"id", msg.ID)
		return nil
	}

	expense, err := w.findExpense(ctx, msg.UserID, msg.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The record was deleted before we got here; nothing to back up.
			slog.WarnContext(ctx, "Expense vanished before backup", "id", msg.ID)
			return nil
		}
		return fmt.Errorf("load expense %s: %w", msg.ID, err)
	}

	return w.appendExpense(ctx, expense)
}

// Sweep appends every expense of the user not yet written in this
// process. It is the recovery path for messages lost while the worker
// was down.
func (w *BackupWorker) Sweep(ctx context.Context, userID string) error {
	expenses, err := w.store.ListExpenses(ctx, userID, "")
	if err != nil {
		return fmt.Errorf("list expenses for sweep: %w", err)
	}

	appended := 0
	for _, e := range expenses {
		w.mu.Lock()
		_, done := w.backedUp[e.ID]
		w.mu.Unlock()
		if done {
			continue
		}
		if err := w.appendExpense(ctx, e); err != nil {
			slog.ErrorContext(ctx, "Failed to back up expense during sweep",
				"id", e.ID, "error", err)
			continue
		}
		appended++
	}

	slog.InfoContext(ctx, "Backup sweep completed",
		"user_id", userID,
		"total", len(expenses),
		"appended", appended)
	return nil
}

// SweepAll runs Sweep for every user seen so far.
func (w *BackupWorker) SweepAll(ctx context.Context) error {
	w.mu.Lock()
	users := make([]string, 0, len(w.users))
	for u := range w.users {
		users = append(users, u)
	}
	w.mu.Unlock()

	var firstErr error
	for _, u := range users {
		if err := w.Sweep(ctx, u); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (w *BackupWorker) findExpense(ctx context.Context, userID, id string) (core.Expense, error) {
	expenses, err := w.store.ListExpenses(ctx, userID, "")
	if err != nil {
		return core.Expense{}, err
	}
	for _, e := range expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, store.ErrNotFound
}

func (w *BackupWorker) appendExpense(ctx context.Context, e core.Expense) error {
	ref, err := w.writer.Append(ctx, e)
	if err != nil {
		return fmt.Errorf("append to backup sheet: %w", err)
	}

	w.mu.Lock()
	w.backedUp[e.ID] = ref
	w.mu.Unlock()

	slog.InfoContext(ctx, "Expense backed up",
		"id", e.ID,
		"sheet_ref", ref,
		"amount_cents", e.Amount.Cents)
	return nil
}
