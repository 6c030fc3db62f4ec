package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestTodoLifecycle(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	svc := &TodoService{Store: newTestStore(t), Now: clk.Now}
	owner := registerOwner(t, svc, "alice@x.com")

	created, err := svc.Create(ctx, owner, "  buy milk  ")
	require.NoError(t, err)
	require.Equal(t, "buy milk", created.Text)
	require.False(t, created.Completed)
	require.Nil(t, created.CompletedAt)

	got, err := svc.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)

	deleted, err := svc.Delete(ctx, owner, created.ID)
	require.NoError(t, err)
	require.Equal(t, "buy milk", deleted.Text)

	_, err = svc.Get(ctx, owner, created.ID)
	require.ErrorIs(t, err, ErrTodoNotFound)
}

func TestTodoValidation(t *testing.T) {
	ctx := context.Background()
	svc := &TodoService{Store: newTestStore(t)}
	owner := registerOwner(t, svc, "alice@x.com")

	_, err := svc.Create(ctx, owner, "   ")
	require.ErrorIs(t, err, ErrValidation)

	todo, err := svc.Create(ctx, owner, "write tests")
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(ctx, owner, todo.ID, TodoUpdate{Text: &empty})
	require.ErrorIs(t, err, ErrValidation)

	text := "write more tests"
	updated, err := svc.Update(ctx, owner, todo.ID, TodoUpdate{Text: &text})
	require.NoError(t, err)
	require.Equal(t, text, updated.Text)
	require.False(t, updated.Completed)
}

func TestTodoCompletedAtTracksCompleted(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	svc := &TodoService{Store: newTestStore(t), Now: clk.Now}
	owner := registerOwner(t, svc, "alice@x.com")

	todo, err := svc.Create(ctx, owner, "toggle me")
	require.NoError(t, err)

	yes, no := true, false

	clk.Advance(time.Second)
	first, err := svc.Update(ctx, owner, todo.ID, TodoUpdate{Completed: &yes})
	require.NoError(t, err)
	require.True(t, first.Completed)
	require.NotNil(t, first.CompletedAt)
	require.True(t, clk.Now().Equal(*first.CompletedAt))

	// Text-only update leaves completion alone
	text := "toggled"
	same, err := svc.Update(ctx, owner, todo.ID, TodoUpdate{Text: &text})
	require.NoError(t, err)
	require.True(t, same.Completed)
	require.True(t, first.CompletedAt.Equal(*same.CompletedAt))

	clk.Advance(time.Second)
	cleared, err := svc.Update(ctx, owner, todo.ID, TodoUpdate{Completed: &no})
	require.NoError(t, err)
	require.False(t, cleared.Completed)
	require.Nil(t, cleared.CompletedAt)

	clk.Advance(time.Second)
	again, err := svc.Update(ctx, owner, todo.ID, TodoUpdate{Completed: &yes})
	require.NoError(t, err)
	require.True(t, again.Completed)
	require.NotNil(t, again.CompletedAt)
	require.True(t, again.CompletedAt.After(*first.CompletedAt))
}

func TestTodoOwnership(t *testing.T) {
	ctx := context.Background()
	svc := &TodoService{Store: newTestStore(t)}
	alice := registerOwner(t, svc, "alice@x.com")
	bob := registerOwner(t, svc, "bob@x.com")

	todo, err := svc.Create(ctx, alice, "alice only")
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob, todo.ID)
	require.ErrorIs(t, err, ErrTodoNotFound)

	text := "hijacked"
	_, err = svc.Update(ctx, bob, todo.ID, TodoUpdate{Text: &text})
	require.ErrorIs(t, err, ErrTodoNotFound)

	_, err = svc.Delete(ctx, bob, todo.ID)
	require.ErrorIs(t, err, ErrTodoNotFound)

	list, err := svc.List(ctx, bob)
	require.NoError(t, err)
	require.Empty(t, list)

	got, err := svc.Get(ctx, alice, todo.ID)
	require.NoError(t, err)
	require.Equal(t, "alice only", got.Text)
}

func TestTodoMalformedIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := &TodoService{Store: newTestStore(t)}
	owner := registerOwner(t, svc, "alice@x.com")

	for _, id := range []string{"", "123", "5c0f66b979af55031b34728a", idx.New().String()} {
		_, err := svc.Get(ctx, owner, id)
		require.ErrorIs(t, err, ErrTodoNotFound, id)

		_, err = svc.Delete(ctx, owner, id)
		require.ErrorIs(t, err, ErrTodoNotFound, id)
	}
}

// registerOwner creates a user in the todo service's store and returns its id.
func registerOwner(t *testing.T, todos *TodoService, email string) string {
	t.Helper()

	sessions := newSessionService(t, todos.Store)
	sess, err := sessions.Register(context.Background(), email, "secret1")
	require.NoError(t, err)
	return sess.User.ID
}
