package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spendtrack/internal/core"
)

// CreateUser inserts a user and fills in its ID and CreatedAt. Uniqueness
// violations come back as core.ErrEmailTaken / core.ErrPhoneTaken.
func (r *SQLiteRepository) CreateUser(ctx context.Context, u *core.User) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, phone, name, password_hash, monthly_budget_cents,
		                   is_active, is_staff, is_superuser, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullString(u.Email), nullString(u.Phone), u.Name, u.PasswordHash,
		u.MonthlyBudget.Cents, u.IsActive, u.IsStaff, u.IsSuperuser,
		now.Format(timeLayout))
	if err != nil {
		switch {
		case isUniqueViolation(err, "users.email"):
			return core.ErrEmailTaken
		case isUniqueViolation(err, "users.phone"):
			return core.ErrPhoneTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create user id: %w", err)
	}
	u.ID = id
	u.CreatedAt = now
	return nil
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id int64) (core.User, error) {
	return r.getUser(ctx, "id = ?", id)
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	return r.getUser(ctx, "email = ?", email)
}

func (r *SQLiteRepository) GetUserByPhone(ctx context.Context, phone string) (core.User, error) {
	return r.getUser(ctx, "phone = ?", phone)
}

func (r *SQLiteRepository) getUser(ctx context.Context, where string, arg any) (core.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, phone, name, password_hash, monthly_budget_cents,
		       is_active, is_staff, is_superuser, created_at
		FROM users WHERE `+where, arg)

	var (
		u            core.User
		email, phone sql.NullString
		createdAt    string
	)
	err := row.Scan(&u.ID, &email, &phone, &u.Name, &u.PasswordHash,
		&u.MonthlyBudget.Cents, &u.IsActive, &u.IsStaff, &u.IsSuperuser, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrNotFound
		}
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	u.Email = email.String
	u.Phone = phone.String
	u.CreatedAt = parseStoredTime(createdAt)
	return u, nil
}

// UpdateProfile overwrites the identity fields and monthly budget of a user.
func (r *SQLiteRepository) UpdateProfile(ctx context.Context, u core.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET email = ?, phone = ?, name = ?, monthly_budget_cents = ?
		WHERE id = ?`,
		nullString(u.Email), nullString(u.Phone), u.Name, u.MonthlyBudget.Cents, u.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users.email"):
			return core.ErrEmailTaken
		case isUniqueViolation(err, "users.phone"):
			return core.ErrPhoneTaken
		}
		return fmt.Errorf("update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) UpdateBudget(ctx context.Context, userID int64, budget core.Money) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET monthly_budget_cents = ? WHERE id = ?`, budget.Cents, userID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// DeleteUser removes the account. Owned expenses go with it via the cascade.
func (r *SQLiteRepository) DeleteUser(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}
