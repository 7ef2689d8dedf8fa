// Package memory is the in-memory ExpenseWriter used in tests and when
// no spreadsheet is configured.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/shubhamverma8991/credit-tracker/internal/core"
	"github.com/shubhamverma8991/credit-tracker/internal/sheets"
)

type Writer struct {
	mu   sync.Mutex
	rows []core.Expense
}

var _ sheets.ExpenseWriter = (*Writer)(nil)

func New() *Writer {
	return &Writer{}
}

func (w *Writer) Append(_ context.Context, e core.Expense) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rows = append(w.rows, e)
	return strconv.Itoa(len(w.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (w *Writer) Rows() []core.Expense {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]core.Expense, len(w.rows))
	copy(out, w.rows)
	return out
}
