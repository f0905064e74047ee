// Package auth owns account creation, credential verification and the
// session lifecycle. No other package establishes or tears down sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"spendtrack/internal/core"
)

// UserStore is the slice of storage the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, u *core.User) error
	GetUserByID(ctx context.Context, id int64) (core.User, error)
	GetUserByEmail(ctx context.Context, email string) (core.User, error)
	GetUserByPhone(ctx context.Context, phone string) (core.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type Service struct {
	store UserStore
}

func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// SignUpInput carries the raw signup form fields.
type SignUpInput struct {
	Name      string
	Email     string
	Phone     string
	Password1 string
	Password2 string
}

// SignUp validates the input, hashes the password and creates the account.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (core.User, error) {
	if in.Password1 == "" {
		return core.User{}, core.ErrEmptyPassword
	}
	if in.Password1 != in.Password2 {
		return core.User{}, core.ErrPasswordMismatch
	}

	u := core.User{
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		MonthlyBudget: core.DefaultMonthlyBudget,
		IsActive:      true,
	}
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password1), bcrypt.DefaultCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	if err := s.store.CreateUser(ctx, &u); err != nil {
		return core.User{}, err
	}
	return u, nil
}

// LogIn resolves the identifier through an ordered list of lookups (email
// first, then phone) and verifies the password. An unresolvable identifier
// yields ErrUserNotFound; a resolved user with a wrong password yields
// ErrInvalidCredentials.
func (s *Service) LogIn(ctx context.Context, identifier, password string) (core.User, error) {
	identifier = strings.TrimSpace(identifier)

	lookups := []func(context.Context, string) (core.User, error){
		s.store.GetUserByEmail,
		s.store.GetUserByPhone,
	}

	var user core.User
	found := false
	for _, lookup := range lookups {
		u, err := lookup(ctx, identifier)
		if err == nil {
			user = u
			found = true
			break
		}
		if !errors.Is(err, core.ErrNotFound) {
			return core.User{}, fmt.Errorf("resolve identifier: %w", err)
		}
	}
	if !found {
		return core.User{}, core.ErrUserNotFound
	}

	if !user.IsActive {
		return core.User{}, core.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return core.User{}, core.ErrInvalidCredentials
	}
	return user, nil
}

// CurrentUser loads the account behind a session's user ID.
func (s *Service) CurrentUser(ctx context.Context, id int64) (core.User, error) {
	return s.store.GetUserByID(ctx, id)
}

// DeleteAccount removes the user; the storage cascade takes the expenses.
func (s *Service) DeleteAccount(ctx context.Context, userID int64) error {
	return s.store.DeleteUser(ctx, userID)
}
