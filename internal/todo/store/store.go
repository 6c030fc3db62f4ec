package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres, mongo) implement this and expose one sub-repository per
// collection.
type Store interface {
	Users() Users
	Todos() Todos

	// ApplyMigrations brings the schema (or indexes, for mongo) up to date.
	ApplyMigrations(ctx context.Context) error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

type Users interface {
	// CreateUser inserts u together with u.Tokens atomically. Returns
	// ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user with its tokens.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login. email must already be normalised.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByToken returns the user only if it holds a token with the
	// given access kind and fingerprint.
	GetUserByToken(ctx context.Context, userID, access, fingerprint string) (domain.User, error)

	// UpdatePasswordHash replaces the stored hash. Returns ErrNotFound for
	// unknown users.
	UpdatePasswordHash(ctx context.Context, userID, hash string, now time.Time) error

	// AddToken appends a session token. Returns ErrNotFound for unknown users.
	AddToken(ctx context.Context, userID string, t domain.Token) error

	// RemoveToken deletes the token with the given fingerprint. Removing a
	// token that is not there is not an error.
	RemoveToken(ctx context.Context, userID, fingerprint string) error

	// DeleteExpiredTokens is housekeeping. It returns how many rows (sql) or
	// users (mongo) were touched.
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// Todos are always addressed through their owner. A todo owned by someone
// else is reported as ErrNotFound.
type Todos interface {
	CreateTodo(ctx context.Context, t domain.Todo) error

	// ListTodos returns the owner's todos in creation order.
	ListTodos(ctx context.Context, ownerID string) ([]domain.Todo, error)

	GetTodo(ctx context.Context, ownerID, id string) (domain.Todo, error)

	// UpdateTodo applies p and returns the updated todo.
	UpdateTodo(ctx context.Context, ownerID, id string, p domain.TodoPatch) (domain.Todo, error)

	// DeleteTodo removes the todo and returns its last state.
	DeleteTodo(ctx context.Context, ownerID, id string) (domain.Todo, error)
}
