package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spendtrack/internal/core"
)

// Filter narrows and orders a user's expense listing. Zero values mean "no
// constraint"; the date range only applies when both bounds are set.
type Filter struct {
	Category  string
	StartDate time.Time
	EndDate   time.Time
	SortBy    string
}

// orderClause whitelists sort keys. Anything unrecognized falls back to
// descending date.
func (f Filter) orderClause() string {
	switch f.SortBy {
	case "amount":
		return "amount_cents ASC, id ASC"
	case "-amount":
		return "amount_cents DESC, id ASC"
	case "date":
		return "date ASC, id ASC"
	case "-date":
		return "date DESC, id ASC"
	default:
		return "date DESC, id ASC"
	}
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e *core.Expense) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (user_id, title, amount_cents, category, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Title, e.Amount.Cents, e.Category,
		e.Date.Format(dateLayout), now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create expense id: %w", err)
	}
	e.ID = id
	e.CreatedAt = now
	return nil
}

// GetExpense loads an expense scoped to its owner. A missing row and a row
// owned by someone else are indistinguishable to the caller.
func (r *SQLiteRepository) GetExpense(ctx context.Context, id, userID int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, amount_cents, category, date, created_at
		FROM expenses WHERE id = ? AND user_id = ?`, id, userID)

	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Expense{}, core.ErrNotFound
		}
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// UpdateExpense rewrites the mutable fields (title, amount, category, date),
// scoped to the owner. created_at never changes.
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET title = ?, amount_cents = ?, category = ?, date = ?
		WHERE id = ? AND user_id = ?`,
		e.Title, e.Amount.Cents, e.Category, e.Date.Format(dateLayout), e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ListExpenses returns a user's expenses matching the filter, ordered per its
// sort key. Category matching is a case-insensitive substring; ISO dates
// compare lexicographically so BETWEEN keeps both bounds inclusive.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID int64, f Filter) ([]core.Expense, error) {
	query := `
		SELECT id, user_id, title, amount_cents, category, date, created_at
		FROM expenses WHERE user_id = ?`
	args := []any{userID}

	if f.Category != "" {
		query += ` AND instr(lower(category), lower(?)) > 0`
		args = append(args, f.Category)
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() {
		query += ` AND date BETWEEN ? AND ?`
		args = append(args, f.StartDate.Format(dateLayout), f.EndDate.Format(dateLayout))
	}
	query += ` ORDER BY ` + f.orderClause()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e               core.Expense
		date, createdAt string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount.Cents,
		&e.Category, &date, &createdAt); err != nil {
		return core.Expense{}, err
	}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse expense date %q: %w", date, err)
	}
	e.Date = d
	e.CreatedAt = parseStoredTime(createdAt)
	return e, nil
}
