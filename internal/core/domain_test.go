package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestUserValidate(t *testing.T) {
	cases := []struct {
		name string
		u    User
		err  error
	}{
		{"email only", User{Email: "a@example.com"}, nil},
		{"phone only", User{Phone: "5551234"}, nil},
		{"both", User{Email: "a@example.com", Phone: "5551234"}, nil},
		{"neither", User{Name: "nobody"}, ErrNoIdentifier},
		{"blank identifiers", User{Email: "  ", Phone: " "}, ErrNoIdentifier},
		{"bad email", User{Email: "not-an-email"}, ErrInvalidEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.u.Validate()
			if tc.err == nil && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestUserValidatePhoneTooLong(t *testing.T) {
	u := User{Phone: strings.Repeat("9", 16)}
	if err := u.Validate(); err == nil {
		t.Fatalf("expected error for 16-digit phone")
	}
}

func TestExpenseValidate(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	good := Expense{
		Title:    "groceries",
		Amount:   Money{Cents: 1234},
		Category: "food",
		Date:     day,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		name string
		e    Expense
	}{
		{"empty title", Expense{Amount: Money{Cents: 1}, Category: "c", Date: day}},
		{"blank title", Expense{Title: "   ", Amount: Money{Cents: 1}, Category: "c", Date: day}},
		{"zero amount", Expense{Title: "t", Category: "c", Date: day}},
		{"empty category", Expense{Title: "t", Amount: Money{Cents: 1}, Date: day}},
		{"zero date", Expense{Title: "t", Amount: Money{Cents: 1}, Category: "c"}},
		{"long title", Expense{Title: strings.Repeat("x", 101), Amount: Money{Cents: 1}, Category: "c", Date: day}},
	}
	for _, tc := range bads {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.e.Validate(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
