package worker

import (
	"context"
	"testing"

	"github.com/shubhamverma8991/credit-tracker/internal/amqp"
	"github.com/shubhamverma8991/credit-tracker/internal/core"
	sheetsmem "github.com/shubhamverma8991/credit-tracker/internal/sheets/memory"
	"github.com/shubhamverma8991/credit-tracker/internal/store/memory"
)

func seed(t *testing.T, s *memory.Store) core.Expense {
	t.Helper()
	ctx := context.Background()

	card, err := s.CreateCard(ctx, core.Card{
		UserID:         "user-1",
		Name:           "HDFC Regalia",
		LastFourDigits: "4321",
		CreditLimit:    core.Money{Cents: 10000000},
		DueDate:        core.NewDate(2025, 7, 1),
		RewardType:     core.RewardNone,
	})
	if err != nil {
		t.Fatalf("CreateCard: %v", err)
	}

	expense, err := s.CreateExpense(ctx, core.Expense{
		CardID:      card.ID,
		UserID:      "user-1",
		Amount:      core.Money{Cents: 125000},
		Description: "groceries",
		Category:    core.CategoryGrocery,
		Date:        core.NewDate(2025, 6, 1),
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	return expense
}

func TestHandleChangeAppendsExpense(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	writer := sheetsmem.New()
	w := NewBackupWorker(st, writer)
	expense := seed(t, st)

	msg := amqp.NewRecordChangeMessage(amqp.EntityExpense, amqp.ActionCreated, expense.ID, "user-1")
	if err := w.HandleChange(ctx, msg); err != nil {
		t.Fatalf("HandleChange: %v", err)
	}

	rows := writer.Rows()
	if len(rows) != 1 || rows[0].ID != expense.ID {
		t.Fatalf("backup rows = %+v, want the created expense", rows)
	}
}

func TestHandleChangeSkips(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	writer := sheetsmem.New()
	w := NewBackupWorker(st, writer)
	seed(t, st)

	tests := []struct {
		name string
		msg  *amqp.RecordChangeMessage
	}{
		{"card change", amqp.NewRecordChangeMessage(amqp.EntityCard, amqp.ActionCreated, "c1", "user-1")},
		{"offer change", amqp.NewRecordChangeMessage(amqp.EntityOffer, amqp.ActionUpdated, "o1", "")},
		{"expense deletion", amqp.NewRecordChangeMessage(amqp.EntityExpense, amqp.ActionDeleted, "e1", "user-1")},
		{"vanished expense", amqp.NewRecordChangeMessage(amqp.EntityExpense, amqp.ActionCreated, "gone", "user-1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := w.HandleChange(ctx, tt.msg); err != nil {
				t.Errorf("HandleChange = %v, want nil", err)
			}
		})
	}
	if rows := writer.Rows(); len(rows) != 0 {
		t.Errorf("backup rows = %d, want 0", len(rows))
	}
}

func TestSweepSkipsAlreadyBackedUp(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	writer := sheetsmem.New()
	w := NewBackupWorker(st, writer)
	expense := seed(t, st)

	msg := amqp.NewRecordChangeMessage(amqp.EntityExpense, amqp.ActionCreated, expense.ID, "user-1")
	if err := w.HandleChange(ctx, msg); err != nil {
		t.Fatalf("HandleChange: %v", err)
	}

	if err := w.Sweep(ctx, "user-1"); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if rows := writer.Rows(); len(rows) != 1 {
		t.Errorf("backup rows after sweep = %d, want 1 (no duplicate)", len(rows))
	}

	// A second expense that never got a message is picked up by the sweep.
	if _, err := st.CreateExpense(ctx, core.Expense{
		CardID:      expense.CardID,
		UserID:      "user-1",
		Amount:      core.Money{Cents: 5000},
		Description: "coffee",
		Category:    core.CategoryDining,
		Date:        core.NewDate(2025, 6, 2),
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if err := w.Sweep(ctx, "user-1"); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if rows := writer.Rows(); len(rows) != 2 {
		t.Errorf("backup rows after second sweep = %d, want 2", len(rows))
	}
}
