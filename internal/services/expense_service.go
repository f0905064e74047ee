// Package services orchestrates expense writes across storage and eventing.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"spendtrack/internal/amqp"
	"spendtrack/internal/core"
	"spendtrack/internal/storage"
)

// EventPublisher pushes expense events to the message broker. The AMQP client
// satisfies it; a nil publisher disables eventing.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, ev *amqp.ExpenseEvent) error
}

// ExpenseService persists expense mutations and emits best-effort events for
// the export worker. Publish failures never fail the request; the local write
// is the source of truth.
type ExpenseService struct {
	storage   *storage.SQLiteRepository
	publisher EventPublisher
}

func NewExpenseService(storage *storage.SQLiteRepository, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		storage:   storage,
		publisher: publisher,
	}
}

// Create validates and persists a new expense owned by e.UserID.
func (s *ExpenseService) Create(ctx context.Context, e *core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := s.storage.CreateExpense(ctx, e); err != nil {
		return fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, amqp.NewExpenseCreated(e.ID, e.UserID))
	return nil
}

// Update rewrites the mutable fields of an owned expense.
func (s *ExpenseService) Update(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.storage.UpdateExpense(ctx, e)
}

// Delete removes an owned expense and emits a deletion event.
func (s *ExpenseService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.storage.DeleteExpense(ctx, id, userID); err != nil {
		return err
	}

	s.publish(ctx, amqp.NewExpenseDeleted(id, userID))
	return nil
}

func (s *ExpenseService) Get(ctx context.Context, id, userID int64) (core.Expense, error) {
	return s.storage.GetExpense(ctx, id, userID)
}

func (s *ExpenseService) List(ctx context.Context, userID int64, f storage.Filter) ([]core.Expense, error) {
	return s.storage.ListExpenses(ctx, userID, f)
}

func (s *ExpenseService) publish(ctx context.Context, ev *amqp.ExpenseEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "failed to publish expense event",
			"error", err,
			"kind", ev.Kind,
			"expense_id", ev.ExpenseID)
	}
}
