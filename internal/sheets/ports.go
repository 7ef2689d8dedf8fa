// Package sheets defines the backup export boundary. The google
// subpackage implements it against a real spreadsheet; the memory
// subpackage is the test double.
package sheets

import (
	"context"

	"github.com/shubhamverma8991/credit-tracker/internal/core"
)

// ExpenseWriter appends one expense row to the backup sheet and
// returns an opaque reference to the written row.
type ExpenseWriter interface {
	Append(ctx context.Context, e core.Expense) (string, error)
}
