package core

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

type (
	// User is an account identity. At least one of Email/Phone is always set.
	User struct {
		ID            int64
		Email         string
		Phone         string
		Name          string
		PasswordHash  string
		MonthlyBudget Money
		IsActive      bool
		IsStaff       bool
		IsSuperuser   bool
		CreatedAt     time.Time
	}

	// Expense is a single expense record owned by exactly one user.
	Expense struct {
		ID        int64
		UserID    int64
		Title     string
		Amount    Money
		Category  string
		Date      time.Time // calendar date, user-chosen
		CreatedAt time.Time // set once at insert
	}
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUserNotFound       = errors.New("User not found")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	ErrPhoneTaken         = errors.New("phone already in use")

	ErrNoIdentifier     = errors.New("either email or phone must be provided")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmptyPassword    = errors.New("password cannot be empty")

	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
)

const (
	maxTitleLen    = 100
	maxCategoryLen = 50
	maxPhoneLen    = 15
	maxNameLen     = 255
)

func (u User) Validate() error {
	if strings.TrimSpace(u.Email) == "" && strings.TrimSpace(u.Phone) == "" {
		return ErrNoIdentifier
	}
	if u.Email != "" {
		if _, err := mail.ParseAddress(u.Email); err != nil {
			return ErrInvalidEmail
		}
	}
	if len(u.Phone) > maxPhoneLen {
		return errors.New("phone too long (max 15 characters)")
	}
	if len(u.Name) > maxNameLen {
		return errors.New("name too long (max 255 characters)")
	}
	return nil
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(e.Title) > maxTitleLen {
		return errors.New("title too long (max 100 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(e.Category) > maxCategoryLen {
		return errors.New("category too long (max 50 characters)")
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}
