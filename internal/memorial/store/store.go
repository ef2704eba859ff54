package store

import (
	"context"
	"errors"

	"github.com/willowgate/memorial/internal/memorial/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Obituary sort fields accepted by ListObituaries. The service layer maps API
// parameter names onto these; anything else falls back to SortCreatedAt.
const (
	SortCreatedAt = "created_at"
	SortDeathDate = "death_date"
	SortFirstName = "first_name"
	SortLastName  = "last_name"
	SortViewCount = "view_count"
)

// ObituaryFilter narrows and orders an obituary listing.
type ObituaryFilter struct {
	Published *bool  // nil = any
	AuthorID  string // "" = any
	Search    string // substring over title/first/last/description
	SortBy    string // one of the Sort* constants
	SortDesc  bool
	Page      int // 1-based; 0 disables pagination
	Limit     int
}

// Store is the root data access interface. Concrete drivers (sqlite)
// implement it. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Obituaries() Obituaries
	Comments() Comments

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns nil
	// and rolling back otherwise. Preferred over Tx for multi-step mutations
	// (e.g., cascading user deletion).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up by lowercase email, used during login and
	// duplicate checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// DeleteUser removes the user record only; obituary cleanup is the
	// service's responsibility inside a transaction.
	DeleteUser(ctx context.Context, id string) error
}

type Obituaries interface {
	// GetObituary returns an obituary with its author reference joined.
	GetObituary(ctx context.Context, id string) (domain.Obituary, error)

	// ListObituaries applies the filter and returns the page plus the total
	// matching count (ignoring pagination).
	ListObituaries(ctx context.Context, f ObituaryFilter) ([]domain.Obituary, int64, error)

	CreateObituary(ctx context.Context, o domain.Obituary) error
	UpdateObituary(ctx context.Context, o domain.Obituary) error

	// DeleteObituary removes the record; comments go with it via FK cascade.
	DeleteObituary(ctx context.Context, id string) error

	// DeleteObituariesByAuthor removes everything a user authored. Used when
	// an admin deletes the account.
	DeleteObituariesByAuthor(ctx context.Context, authorID string) error

	// IncrementViewCount bumps view_count by exactly one as a single UPDATE,
	// never a read-modify-write.
	IncrementViewCount(ctx context.Context, id string) error
}

type Comments interface {
	CreateComment(ctx context.Context, c domain.Comment) error
	GetComment(ctx context.Context, id string) (domain.Comment, error)

	// ListComments returns comments for an obituary, newest first, optionally
	// restricted to approved ones.
	ListComments(ctx context.Context, obituaryID string, approvedOnly bool) ([]domain.Comment, error)

	// ListPendingComments returns all unapproved comments across obituaries,
	// newest first, for the moderation queue.
	ListPendingComments(ctx context.Context) ([]domain.Comment, error)

	// ApproveComment flips is_approved and bumps updated_at.
	ApproveComment(ctx context.Context, id string) error

	DeleteComment(ctx context.Context, id string) error
}
