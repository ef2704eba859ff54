package service

import (
	"context"
	"errors"
	"strings"

	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/internal/memorial/store"
	"github.com/willowgate/memorial/pkg/cryptox"
	"github.com/willowgate/memorial/pkg/idx"
	"github.com/willowgate/memorial/pkg/slogx"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSelfDelete         = errors.New("cannot delete own account")
)

type UserService struct {
	Store store.Store
}

// RegisterParams carries a validated registration request.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role // empty means RoleFamily
}

// Register creates a new account with a hashed password. The stored hash is
// never the plaintext. Returns ErrEmailTaken on duplicates and
// ErrPasswordTooShort below the minimum length.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	if len(p.Password) < MinPasswordLength {
		return domain.User{}, ErrPasswordTooShort
	}

	role := p.Role
	if role == "" {
		role = domain.RoleFamily
	}
	if !role.Valid() {
		return domain.User{}, ErrInvalidRole
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New(),
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		Email:        strings.ToLower(strings.TrimSpace(p.Email)),
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID, "role", user.Role)
	return user.Redacted(), nil
}

// Login verifies credentials and returns the account. A missing account and a
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return user.Redacted(), nil
}

// GetByID returns a user without secret fields.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return user.Redacted(), nil
}

// List returns all accounts, newest first, without secret fields.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Redacted()
	}
	return users, nil
}

// Delete removes a user and everything they authored in one transaction.
// An admin may never delete their own account: that yields ErrSelfDelete, a
// domain-specific rejection distinct from a generic forbidden.
func (s *UserService) Delete(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfDelete
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Obituaries().DeleteObituariesByAuthor(ctx, targetID); err != nil {
			return err
		}
		return tx.Users().DeleteUser(ctx, targetID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user deleted with authored obituaries", "user_id", targetID)
	return nil
}
