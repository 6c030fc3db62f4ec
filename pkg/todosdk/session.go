package todosdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session is bound to one session token. Tokens do not refresh; after
// Logout every call fails with ErrUnauthorized.
type Session struct {
	client *SDKClient
	token  string
	user   *User
}

// Token returns the raw x-auth token.
func (s *Session) Token() string { return s.token }

// User returns the user returned at register/login, nil for sessions built
// with NewSession until Me is called.
func (s *Session) User() *User { return s.user }

// Me fetches the user the token belongs to.
func (s *Session) Me(ctx context.Context) (*User, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/users/me", s.token, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	s.user = &user
	return &user, nil
}

// Logout revokes this session's token. Other sessions stay valid.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, "/users/me/token", s.token, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// CreateTodo adds a todo owned by the session's user.
func (s *Session) CreateTodo(ctx context.Context, text string) (*Todo, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/todos", s.token, CreateTodoRequest{Text: text})
	if err != nil {
		return nil, err
	}

	var todo Todo
	if err := decodeJSON(resp, &todo, http.StatusCreated); err != nil {
		return nil, err
	}
	return &todo, nil
}

// ListTodos returns the session user's todos in creation order.
func (s *Session) ListTodos(ctx context.Context) ([]Todo, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/todos", s.token, nil)
	if err != nil {
		return nil, err
	}

	var out TodoListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Todos, nil
}

// GetTodo fetches one todo. Todos of other users yield ErrNotFound.
func (s *Session) GetTodo(ctx context.Context, id string) (*Todo, error) {
	return s.todoCall(ctx, http.MethodGet, id, nil)
}

// UpdateTodo applies a partial update.
func (s *Session) UpdateTodo(ctx context.Context, id string, req UpdateTodoRequest) (*Todo, error) {
	return s.todoCall(ctx, http.MethodPatch, id, req)
}

// DeleteTodo removes a todo and returns its last state.
func (s *Session) DeleteTodo(ctx context.Context, id string) (*Todo, error) {
	return s.todoCall(ctx, http.MethodDelete, id, nil)
}

func (s *Session) todoCall(ctx context.Context, method, id string, body any) (*Todo, error) {
	resp, err := s.client.doRequest(ctx, method, "/todos/"+url.PathEscape(id), s.token, body)
	if err != nil {
		return nil, err
	}

	var out TodoResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Todo, nil
}

// Bool and String return pointers for UpdateTodoRequest fields.
func Bool(v bool) *bool       { return &v }
func String(v string) *string { return &v }
