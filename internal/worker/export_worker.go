// Package worker consumes expense events and mirrors them to the spreadsheet.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spendtrack/internal/amqp"
	"spendtrack/internal/core"
	"spendtrack/internal/sheets"
	"spendtrack/internal/storage"
)

// ExportWorker handles expense events from the queue. Created expenses are
// appended to the mirror; deletions are logged only, since the mirror is an
// append-only history.
type ExportWorker struct {
	storage  *storage.SQLiteRepository
	appender sheets.ExpenseAppender
}

func NewExportWorker(storage *storage.SQLiteRepository, appender sheets.ExpenseAppender) *ExportWorker {
	return &ExportWorker{
		storage:  storage,
		appender: appender,
	}
}

// HandleEvent processes one queued event. A nil return acknowledges the
// message; errors cause a requeue.
func (w *ExportWorker) HandleEvent(ctx context.Context, ev *amqp.ExpenseEvent) error {
	switch ev.Kind {
	case amqp.EventExpenseCreated:
		return w.exportCreated(ctx, ev)
	case amqp.EventExpenseDeleted:
		slog.InfoContext(ctx, "expense deleted upstream, mirror keeps its row",
			"expense_id", ev.ExpenseID,
			"user_id", ev.UserID)
		return nil
	default:
		slog.WarnContext(ctx, "dropping event of unknown kind", "kind", ev.Kind)
		return nil
	}
}

func (w *ExportWorker) exportCreated(ctx context.Context, ev *amqp.ExpenseEvent) error {
	expense, err := w.storage.GetExpense(ctx, ev.ExpenseID, ev.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Deleted before we got to it; nothing to mirror.
			slog.WarnContext(ctx, "expense vanished before export",
				"expense_id", ev.ExpenseID,
				"user_id", ev.UserID)
			return nil
		}
		return fmt.Errorf("load expense %d: %w", ev.ExpenseID, err)
	}

	ownerEmail := ""
	if owner, err := w.storage.GetUserByID(ctx, ev.UserID); err == nil {
		ownerEmail = owner.Email
	}

	if err := w.appender.AppendExpense(ctx, expense, ownerEmail); err != nil {
		return fmt.Errorf("append expense %d: %w", ev.ExpenseID, err)
	}

	slog.InfoContext(ctx, "expense exported",
		"expense_id", ev.ExpenseID,
		"user_id", ev.UserID)
	return nil
}
