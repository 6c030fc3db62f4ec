package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/todo/pkg/idx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

func TestTodoCRUD(t *testing.T) {
	s := newTestServer(t)
	userID, token := s.register(t, "alice@x.com")

	created := s.createTodo(t, token, "  buy milk ")
	require.Equal(t, "buy milk", created.Text)
	require.False(t, created.Completed)
	require.Nil(t, created.CompletedAt)
	require.Equal(t, userID, created.Creator)

	s.createTodo(t, token, "walk dog")

	rec := s.do(t, http.MethodGet, "/todos", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list todosdk.TodoListResponse
	decode(t, rec, &list)
	require.Len(t, list.Todos, 2)
	require.Equal(t, created.ID, list.Todos[0].ID)

	rec = s.do(t, http.MethodGet, "/todos/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got todosdk.TodoResponse
	decode(t, rec, &got)
	require.Equal(t, created, got.Todo)

	rec = s.do(t, http.MethodPatch, "/todos/"+created.ID, token, todosdk.UpdateTodoRequest{Text: todosdk.String("buy oat milk")})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &got)
	require.Equal(t, "buy oat milk", got.Todo.Text)

	rec = s.do(t, http.MethodDelete, "/todos/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &got)
	require.Equal(t, created.ID, got.Todo.ID)

	rec = s.do(t, http.MethodGet, "/todos/"+created.ID, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, todosdk.ErrorCodeNotFound, errorCode(t, rec))
}

func TestTodoValidation(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "alice@x.com")

	rec := s.do(t, http.MethodPost, "/todos", token, todosdk.CreateTodoRequest{Text: "   "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, todosdk.ErrorCodeValidation, errorCode(t, rec))

	todo := s.createTodo(t, token, "keep")
	rec = s.do(t, http.MethodPatch, "/todos/"+todo.ID, token, map[string]any{"text": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPatch, "/todos/"+todo.ID, token, map[string]any{"completed": "yes"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, todosdk.ErrorCodeInvalidRequest, errorCode(t, rec))
}

func TestTodoCompletion(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "alice@x.com")
	todo := s.createTodo(t, token, "toggle")

	patch := func(completed bool) todosdk.Todo {
		rec := s.do(t, http.MethodPatch, "/todos/"+todo.ID, token, todosdk.UpdateTodoRequest{Completed: todosdk.Bool(completed)})
		require.Equal(t, http.StatusOK, rec.Code)
		var resp todosdk.TodoResponse
		decode(t, rec, &resp)
		return resp.Todo
	}

	done := patch(true)
	require.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)

	open := patch(false)
	require.False(t, open.Completed)
	require.Nil(t, open.CompletedAt)

	again := patch(true)
	require.True(t, again.Completed)
	require.NotNil(t, again.CompletedAt)
	require.GreaterOrEqual(t, *again.CompletedAt, *done.CompletedAt)

	// completedAt is serialised as null, not omitted
	rec := s.do(t, http.MethodPatch, "/todos/"+todo.ID, token, todosdk.UpdateTodoRequest{Completed: todosdk.Bool(false)})
	require.Contains(t, rec.Body.String(), `"completedAt":null`)
}

func TestTodosAreScopedToOwner(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.register(t, "alice@x.com")
	_, bob := s.register(t, "bob@x.com")

	todo := s.createTodo(t, alice, "alice's secret")

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		var body any
		if method == http.MethodPatch {
			body = todosdk.UpdateTodoRequest{Text: todosdk.String("mine now")}
		}
		rec := s.do(t, method, "/todos/"+todo.ID, bob, body)
		require.Equal(t, http.StatusNotFound, rec.Code, method)
	}

	rec := s.do(t, http.MethodGet, "/todos", bob, nil)
	var list todosdk.TodoListResponse
	decode(t, rec, &list)
	require.Empty(t, list.Todos)

	rec = s.do(t, http.MethodGet, "/todos/"+todo.ID, alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got todosdk.TodoResponse
	decode(t, rec, &got)
	require.Equal(t, "alice's secret", got.Todo.Text)
}

func TestUnknownAndMalformedIDs(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "alice@x.com")

	for _, id := range []string{"not-an-id", "5c0f66b979af55031b34728a", idx.New().String()} {
		rec := s.do(t, http.MethodGet, "/todos/"+id, token, nil)
		require.Equal(t, http.StatusNotFound, rec.Code, id)
	}
}

// TestExampleFlowWithSDK drives the router over a real listener with the Go
// client: alice registers, creates a todo, and bob cannot see it.
func TestExampleFlowWithSDK(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := todosdk.NewSDKClient(srv.URL)

	alice, err := client.Register(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, alice.Token())

	todo, err := alice.CreateTodo(ctx, "buy milk")
	require.NoError(t, err)

	bob, err := client.Register(ctx, "bob@x.com", "secret1")
	require.NoError(t, err)

	_, err = bob.GetTodo(ctx, todo.ID)
	require.ErrorIs(t, err, todosdk.ErrNotFound)

	require.NoError(t, alice.Logout(ctx))
	_, err = alice.ListTodos(ctx)
	require.ErrorIs(t, err, todosdk.ErrUnauthorized)

	again, err := client.Login(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)
	todos, err := again.ListTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
}
