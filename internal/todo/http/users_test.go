package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/users", "", todosdk.Credentials{Email: "Alice@X.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get(httpx.AuthHeader))

	var raw map[string]any
	decode(t, rec, &raw)
	require.Equal(t, "alice@x.com", raw["email"])
	require.NotEmpty(t, raw["_id"])
	require.NotContains(t, raw, "password")
	require.NotContains(t, raw, "tokens")
}

func TestRegisterErrors(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice@x.com")

	tests := []struct {
		name string
		body any
		code string
	}{
		{"bad email", todosdk.Credentials{Email: "nope", Password: "secret1"}, todosdk.ErrorCodeValidation},
		{"short password", todosdk.Credentials{Email: "bob@x.com", Password: "123"}, todosdk.ErrorCodeValidation},
		{"email taken", todosdk.Credentials{Email: "ALICE@x.com", Password: "secret1"}, todosdk.ErrorCodeEmailTaken},
		{"not an object", "{", todosdk.ErrorCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/users", "", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Empty(t, rec.Header().Get(httpx.AuthHeader))
			require.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestLoginAndLogout(t *testing.T) {
	s := newTestServer(t)
	userID, first := s.register(t, "alice@x.com")

	rec := s.do(t, http.MethodPost, "/users/login", "", todosdk.Credentials{Email: "alice@x.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	second := rec.Header().Get(httpx.AuthHeader)
	require.NotEmpty(t, second)
	require.NotEqual(t, first, second)

	// Both sessions work
	for _, token := range []string{first, second} {
		rec = s.do(t, http.MethodGet, "/users/me", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var me todosdk.User
		decode(t, rec, &me)
		require.Equal(t, userID, me.ID)
	}

	rec = s.do(t, http.MethodDelete, "/users/me/token", first, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/users/me", first, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, todosdk.ErrorCodeUnauthorized, errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/users/me", second, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice@x.com")

	for _, creds := range []todosdk.Credentials{
		{Email: "alice@x.com", Password: "wrong-one"},
		{Email: "bob@x.com", Password: "secret1"},
	} {
		rec := s.do(t, http.MethodPost, "/users/login", "", creds)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, todosdk.ErrorCodeInvalidCredentials, errorCode(t, rec))
		require.Empty(t, rec.Header().Get(httpx.AuthHeader))
	}
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t)

	var last int
	for i := 0; i < httpx.StrictLimit.Burst+1; i++ {
		last = s.do(t, http.MethodPost, "/users/login", "", todosdk.Credentials{Email: "mallory@x.com", Password: "guess"}).Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)

	// A different email from the same address has its own bucket
	rec := s.do(t, http.MethodPost, "/users/login", "", todosdk.Credentials{Email: "other@x.com", Password: "guess"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthenticatedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/users/me"},
		{http.MethodDelete, "/users/me/token"},
		{http.MethodPost, "/todos"},
		{http.MethodGet, "/todos"},
		{http.MethodGet, "/todos/01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"},
		{http.MethodPatch, "/todos/01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"},
		{http.MethodDelete, "/todos/01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"},
	}

	for _, rt := range routes {
		for _, token := range []string{"", "garbage"} {
			rec := s.do(t, rt.method, rt.path, token, nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s token=%q", rt.method, rt.path, token)

			var body todosdk.ErrorResponse
			decode(t, rec, &body)
			require.Equal(t, todosdk.ErrUnauthorized.Code, body.Error)
			require.Equal(t, todosdk.ErrUnauthorized.Description, body.ErrorDescription)
		}
	}
}

func TestStoreFailureDuringAuthIsServerError(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "alice@x.com")

	require.NoError(t, s.store.Close())

	for _, path := range []string{"/todos", "/users/me"} {
		rec := s.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code, "%s: %s", path, rec.Body.String())
		require.Equal(t, todosdk.ErrorCodeServerError, errorCode(t, rec))
	}
}

func TestOversizedBodyIsRejected(t *testing.T) {
	s := newTestServer(t)
	big := strings.Repeat("a", httpx.MaxBodyBytes)

	rec := s.do(t, http.MethodPost, "/users/login", "", todosdk.Credentials{Email: "alice@x.com", Password: big})
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, todosdk.ErrorCodeRequestTooLarge, errorCode(t, rec))

	_, token := s.register(t, "bob@x.com")
	rec = s.do(t, http.MethodPost, "/todos", token, todosdk.CreateTodoRequest{Text: big})
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
