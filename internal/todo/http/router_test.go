package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/internal/todo/store/drivers/sqlite"
	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cryptox.SetPepper("http-test-pepper")
	os.Exit(m.Run())
}

type testServer struct {
	router *Router
	store  *sqlite.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations(context.Background()))
	t.Cleanup(func() { _ = st.Close() })

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmHS256,
		Issuer:    "todo-test",
		Secret:    []byte("http-test-secret"),
	})
	require.NoError(t, err)

	r := NewRouter(km.KeySet, "test", st, slogx.Discard())
	r.SessionService = &service.SessionService{KeyManager: km, Store: st, Issuer: "todo-test"}
	r.UserService = &service.UserService{Store: st}
	r.TodoService = &service.TodoService{Store: st}
	r.ApplyRoutes()

	return &testServer{router: r, store: st}
}

// do sends a JSON request through the full router.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(httpx.AuthHeader, token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// register creates a user and returns its id and session token.
func (s *testServer) register(t *testing.T, email string) (string, string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/users", "", todosdk.Credentials{Email: email, Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user todosdk.User
	decode(t, rec, &user)

	token := rec.Header().Get(httpx.AuthHeader)
	require.NotEmpty(t, token)
	return user.ID, token
}

func (s *testServer) createTodo(t *testing.T, token, text string) todosdk.Todo {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/todos", token, todosdk.CreateTodoRequest{Text: text})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var todo todosdk.Todo
	decode(t, rec, &todo)
	return todo
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	decode(t, rec, &body)
	if body.Code != "" {
		return body.Code
	}
	return body.Error
}

func TestCommonHeaders(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), httpx.AuthHeader)
	require.NotEmpty(t, rec.Header().Get(slogx.RequestIDHeader))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var live todosdk.HealthResponse
	decode(t, rec, &live)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	rec = s.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ready todosdk.HealthResponse
	decode(t, rec, &ready)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)

	require.NoError(t, s.store.Close())
	rec = s.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	decode(t, rec, &ready)
	require.Equal(t, "degraded", ready.Status)
	require.Equal(t, "error", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)
}

func TestSwaggerIsServed(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/todos/{id}")
}
