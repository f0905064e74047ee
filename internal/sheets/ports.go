// Package sheets mirrors expense records to an external spreadsheet.
package sheets

import (
	"context"

	"spendtrack/internal/core"
)

// ExpenseAppender writes one expense row to the mirror. Implementations must
// be safe to call repeatedly with the same expense; redelivered events can
// produce duplicate appends, which the mirror tolerates.
type ExpenseAppender interface {
	AppendExpense(ctx context.Context, e core.Expense, ownerEmail string) error
}
