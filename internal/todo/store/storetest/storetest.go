// Package storetest is a behavioural test suite every store driver must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Factory returns a migrated, empty store. It is called once per subtest.
type Factory func(t *testing.T) store.Store

// Run executes the suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore) })
	t.Run("Tokens", func(t *testing.T) { testTokens(t, newStore) })
	t.Run("Todos", func(t *testing.T) { testTodos(t, newStore) })
}

// now is truncated to milliseconds, the precision every driver stores.
func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

func newUser(email string, tokens ...domain.Token) domain.User {
	ts := now()
	return domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Tokens:       tokens,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

func newToken(fp string, expiresAt *time.Time) domain.Token {
	return domain.Token{Access: "auth", Fingerprint: fp, CreatedAt: now(), ExpiresAt: expiresAt}
}

func testUsers(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	u := newUser("alice@x.com", newToken("fp-1", nil))
	require.NoError(t, s.Users().CreateUser(ctx, u))

	t.Run("get by id", func(t *testing.T) {
		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, got.Email)
		require.Equal(t, u.PasswordHash, got.PasswordHash)
		require.True(t, u.CreatedAt.Equal(got.CreatedAt))
		require.Len(t, got.Tokens, 1)
		require.Equal(t, "fp-1", got.Tokens[0].Fingerprint)
		require.Nil(t, got.Tokens[0].ExpiresAt)
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := s.Users().GetUserByEmail(ctx, "alice@x.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := newUser("alice@x.com")
		require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

		// The failed insert must not leave a partial user behind
		_, err := s.Users().GetUserByID(ctx, dup.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update password hash", func(t *testing.T) {
		later := now().Add(time.Minute)
		require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "$argon2id$v=19$m=19456,t=2,p=1$bmV3$bmV3", later))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "$argon2id$v=19$m=19456,t=2,p=1$bmV3$bmV3", got.PasswordHash)
		require.True(t, later.Equal(got.UpdatedAt))
		require.Len(t, got.Tokens, 1)

		err = s.Users().UpdatePasswordHash(ctx, idx.New().String(), "x", later)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Users().GetUserByEmail(ctx, "nobody@x.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func testTokens(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)
	users := s.Users()

	u := newUser("bob@x.com", newToken("fp-a", nil))
	require.NoError(t, users.CreateUser(ctx, u))

	t.Run("add and find", func(t *testing.T) {
		require.NoError(t, users.AddToken(ctx, u.ID, newToken("fp-b", nil)))

		got, err := users.GetUserByToken(ctx, u.ID, "auth", "fp-b")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Len(t, got.Tokens, 2)

		_, err = users.GetUserByToken(ctx, u.ID, "auth", "fp-a")
		require.NoError(t, err)
	})

	t.Run("access kind must match", func(t *testing.T) {
		_, err := users.GetUserByToken(ctx, u.ID, "reset", "fp-a")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("add to unknown user", func(t *testing.T) {
		err := users.AddToken(ctx, idx.New().String(), newToken("fp-x", nil))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("remove is precise and idempotent", func(t *testing.T) {
		require.NoError(t, users.RemoveToken(ctx, u.ID, "fp-a"))
		require.NoError(t, users.RemoveToken(ctx, u.ID, "fp-a"))

		_, err := users.GetUserByToken(ctx, u.ID, "auth", "fp-a")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = users.GetUserByToken(ctx, u.ID, "auth", "fp-b")
		require.NoError(t, err)
	})

	t.Run("token of another user", func(t *testing.T) {
		other := newUser("carol@x.com", newToken("fp-carol", nil))
		require.NoError(t, users.CreateUser(ctx, other))

		_, err := users.GetUserByToken(ctx, u.ID, "auth", "fp-carol")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete expired", func(t *testing.T) {
		past := now().Add(-time.Hour)
		future := now().Add(time.Hour)
		require.NoError(t, users.AddToken(ctx, u.ID, newToken("fp-old", &past)))
		require.NoError(t, users.AddToken(ctx, u.ID, newToken("fp-new", &future)))

		n, err := users.DeleteExpiredTokens(ctx, now())
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, int64(1))

		_, err = users.GetUserByToken(ctx, u.ID, "auth", "fp-old")
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := users.GetUserByToken(ctx, u.ID, "auth", "fp-new")
		require.NoError(t, err)
		for _, tok := range got.Tokens {
			if tok.Fingerprint == "fp-new" {
				require.NotNil(t, tok.ExpiresAt)
				require.True(t, future.Equal(*tok.ExpiresAt))
			}
		}
	})
}

func testTodos(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)
	todos := s.Todos()

	owner := newUser("dave@x.com")
	stranger := newUser("eve@x.com")
	require.NoError(t, s.Users().CreateUser(ctx, owner))
	require.NoError(t, s.Users().CreateUser(ctx, stranger))

	mk := func(text string) domain.Todo {
		ts := now()
		return domain.Todo{ID: idx.New().String(), OwnerID: owner.ID, Text: text, CreatedAt: ts, UpdatedAt: ts}
	}

	first, second := mk("first"), mk("second")
	require.NoError(t, todos.CreateTodo(ctx, first))
	require.NoError(t, todos.CreateTodo(ctx, second))

	t.Run("list in creation order", func(t *testing.T) {
		list, err := todos.ListTodos(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "first", list[0].Text)
		require.Equal(t, "second", list[1].Text)

		empty, err := todos.ListTodos(ctx, stranger.ID)
		require.NoError(t, err)
		require.Empty(t, empty)
	})

	t.Run("get is owner scoped", func(t *testing.T) {
		got, err := todos.GetTodo(ctx, owner.ID, first.ID)
		require.NoError(t, err)
		require.Equal(t, "first", got.Text)
		require.False(t, got.Completed)
		require.Nil(t, got.CompletedAt)

		_, err = todos.GetTodo(ctx, stranger.ID, first.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update completion", func(t *testing.T) {
		done := true
		at := now()
		got, err := todos.UpdateTodo(ctx, owner.ID, first.ID, domain.TodoPatch{
			Completed: &done, CompletedAt: &at, UpdatedAt: at,
		})
		require.NoError(t, err)
		require.True(t, got.Completed)
		require.NotNil(t, got.CompletedAt)
		require.True(t, at.Equal(*got.CompletedAt))
		require.Equal(t, "first", got.Text)

		undone := false
		got, err = todos.UpdateTodo(ctx, owner.ID, first.ID, domain.TodoPatch{
			Completed: &undone, UpdatedAt: now(),
		})
		require.NoError(t, err)
		require.False(t, got.Completed)
		require.Nil(t, got.CompletedAt)
	})

	t.Run("update text only", func(t *testing.T) {
		text := "second, edited"
		got, err := todos.UpdateTodo(ctx, owner.ID, second.ID, domain.TodoPatch{Text: &text, UpdatedAt: now()})
		require.NoError(t, err)
		require.Equal(t, text, got.Text)
		require.False(t, got.Completed)
	})

	t.Run("update by stranger", func(t *testing.T) {
		text := "hijacked"
		_, err := todos.UpdateTodo(ctx, stranger.ID, second.ID, domain.TodoPatch{Text: &text, UpdatedAt: now()})
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := todos.GetTodo(ctx, owner.ID, second.ID)
		require.NoError(t, err)
		require.NotEqual(t, "hijacked", got.Text)
	})

	t.Run("delete", func(t *testing.T) {
		_, err := todos.DeleteTodo(ctx, stranger.ID, first.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := todos.DeleteTodo(ctx, owner.ID, first.ID)
		require.NoError(t, err)
		require.Equal(t, first.ID, got.ID)

		_, err = todos.DeleteTodo(ctx, owner.ID, first.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, s.Ping(ctx))
	})
}
