package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"spendtrack/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newTestUser(t *testing.T, repo *SQLiteRepository, email, phone string) core.User {
	t.Helper()
	u := core.User{
		Email:         email,
		Phone:         phone,
		Name:          "Test User",
		PasswordHash:  "x",
		MonthlyBudget: core.DefaultMonthlyBudget,
		IsActive:      true,
	}
	if err := repo.CreateUser(context.Background(), &u); err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return u
}

func addExpense(t *testing.T, repo *SQLiteRepository, userID int64, title string, cents int64, category string, date time.Time) core.Expense {
	t.Helper()
	e := core.Expense{
		UserID:   userID,
		Title:    title,
		Amount:   core.Money{Cents: cents},
		Category: category,
		Date:     date,
	}
	if err := repo.CreateExpense(context.Background(), &e); err != nil {
		t.Fatalf("create test expense: %v", err)
	}
	return e
}

func TestCreateUserUniqueness(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	newTestUser(t, repo, "a@example.com", "5551111")

	dup := core.User{Email: "a@example.com", PasswordHash: "x", MonthlyBudget: core.DefaultMonthlyBudget}
	if err := repo.CreateUser(ctx, &dup); !errors.Is(err, core.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	dupPhone := core.User{Email: "b@example.com", Phone: "5551111", PasswordHash: "x", MonthlyBudget: core.DefaultMonthlyBudget}
	if err := repo.CreateUser(ctx, &dupPhone); !errors.Is(err, core.ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}
}

func TestCreateUserRequiresIdentifier(t *testing.T) {
	repo := newTestRepo(t)

	u := core.User{Name: "nobody", PasswordHash: "x", MonthlyBudget: core.DefaultMonthlyBudget}
	if err := repo.CreateUser(context.Background(), &u); err == nil {
		t.Fatalf("expected error when neither email nor phone is set")
	}
}

func TestUserLookupByEmailAndPhone(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "a@example.com", "5551111")

	byEmail, err := repo.GetUserByEmail(ctx, "a@example.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("lookup by email: id=%d err=%v", byEmail.ID, err)
	}

	byPhone, err := repo.GetUserByPhone(ctx, "5551111")
	if err != nil || byPhone.ID != u.ID {
		t.Fatalf("lookup by phone: id=%d err=%v", byPhone.ID, err)
	}

	if _, err := repo.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUserCascadesToExpenses(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "a@example.com", "")
	other := newTestUser(t, repo, "b@example.com", "")

	day := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	addExpense(t, repo, u.ID, "lunch", 1200, "food", day)
	addExpense(t, repo, u.ID, "bus", 300, "transit", day)
	kept := addExpense(t, repo, other.ID, "rent", 90000, "housing", day)

	if err := repo.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	orphans, err := repo.ListExpenses(ctx, u.ID, Filter{})
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(orphans) != 0 {
		t.Fatalf("expected cascade to delete all expenses, found %d", len(orphans))
	}

	// The other user's records survive.
	if _, err := repo.GetExpense(ctx, kept.ID, other.ID); err != nil {
		t.Fatalf("other user's expense should survive: %v", err)
	}
}

func TestExpenseOwnershipScoping(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	owner := newTestUser(t, repo, "owner@example.com", "")
	stranger := newTestUser(t, repo, "stranger@example.com", "")

	e := addExpense(t, repo, owner.ID, "lunch", 1200, "food",
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	if _, err := repo.GetExpense(ctx, e.ID, stranger.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("get by non-owner: expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteExpense(ctx, e.ID, stranger.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("delete by non-owner: expected ErrNotFound, got %v", err)
	}

	e.Title = "dinner"
	e.UserID = stranger.ID
	if err := repo.UpdateExpense(ctx, e); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("update by non-owner: expected ErrNotFound, got %v", err)
	}

	// Nonexistent ID behaves identically.
	if _, err := repo.GetExpense(ctx, 99999, owner.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("get missing: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateExpenseKeepsCreatedAt(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "a@example.com", "")

	e := addExpense(t, repo, u.ID, "lunch", 1200, "food",
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	e.Title = "brunch"
	e.Amount = core.Money{Cents: 1500}
	if err := repo.UpdateExpense(ctx, e); err != nil {
		t.Fatalf("update expense: %v", err)
	}

	got, err := repo.GetExpense(ctx, e.ID, u.ID)
	if err != nil {
		t.Fatalf("get expense: %v", err)
	}
	if got.Title != "brunch" || got.Amount.Cents != 1500 {
		t.Fatalf("update not applied: %+v", got)
	}
	if !got.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("created_at changed: %v != %v", got.CreatedAt, e.CreatedAt)
	}
}

func TestListExpensesFiltering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "a@example.com", "")

	d := func(day int) time.Time { return time.Date(2025, 5, day, 0, 0, 0, 0, time.UTC) }
	addExpense(t, repo, u.ID, "lunch", 1200, "Food", d(1))
	addExpense(t, repo, u.ID, "groceries", 4500, "food shopping", d(5))
	addExpense(t, repo, u.ID, "bus", 300, "transit", d(10))

	t.Run("category is case-insensitive substring", func(t *testing.T) {
		got, err := repo.ListExpenses(ctx, u.ID, Filter{Category: "FOO"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
	})

	t.Run("date range is inclusive on both ends", func(t *testing.T) {
		got, err := repo.ListExpenses(ctx, u.ID, Filter{StartDate: d(1), EndDate: d(5)})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
	})

	t.Run("range ignored when only one bound is set", func(t *testing.T) {
		got, err := repo.ListExpenses(ctx, u.ID, Filter{StartDate: d(5)})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected all 3 expenses, got %d", len(got))
		}
	})
}

func TestListExpensesSorting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "a@example.com", "")

	d := func(day int) time.Time { return time.Date(2025, 5, day, 0, 0, 0, 0, time.UTC) }
	addExpense(t, repo, u.ID, "cheap", 100, "misc", d(2))
	addExpense(t, repo, u.ID, "pricey", 9900, "misc", d(1))
	addExpense(t, repo, u.ID, "middle", 5000, "misc", d(3))

	cases := []struct {
		sortBy string
		first  string
	}{
		{"amount", "cheap"},
		{"-amount", "pricey"},
		{"date", "pricey"},
		{"-date", "middle"},
		{"", "middle"},        // default: descending date
		{"bogus", "middle"},   // unknown keys fall back to descending date
		{"amount;", "middle"}, // no injection through the sort key
	}
	for _, tc := range cases {
		got, err := repo.ListExpenses(ctx, u.ID, Filter{SortBy: tc.sortBy})
		if err != nil {
			t.Fatalf("sort_by=%q: %v", tc.sortBy, err)
		}
		if len(got) != 3 || got[0].Title != tc.first {
			t.Fatalf("sort_by=%q: expected first %q, got %+v", tc.sortBy, tc.first, got)
		}
	}
}

func TestUpdateBudget(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	u := newTestUser(t, repo, "a@example.com", "")

	if err := repo.UpdateBudget(ctx, u.ID, core.Money{Cents: 123456}); err != nil {
		t.Fatalf("update budget: %v", err)
	}
	got, err := repo.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.MonthlyBudget.Cents != 123456 {
		t.Fatalf("expected budget 123456, got %d", got.MonthlyBudget.Cents)
	}

	if err := repo.UpdateBudget(ctx, 99999, core.Money{Cents: 1}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing user, got %v", err)
	}
}

func TestUpdateProfileUniqueness(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	a := newTestUser(t, repo, "a@example.com", "5551111")
	b := newTestUser(t, repo, "b@example.com", "5552222")

	b.Email = "a@example.com"
	if err := repo.UpdateProfile(ctx, b); !errors.Is(err, core.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	b.Email = "b@example.com"
	b.Phone = a.Phone
	if err := repo.UpdateProfile(ctx, b); !errors.Is(err, core.ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}

	b.Phone = "5553333"
	b.Name = "Renamed"
	if err := repo.UpdateProfile(ctx, b); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	got, _ := repo.GetUserByID(ctx, b.ID)
	if got.Name != "Renamed" || got.Phone != "5553333" {
		t.Fatalf("profile not updated: %+v", got)
	}
}
