package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestNewWiresSQLiteApplication(t *testing.T) {
	dir := t.TempDir()

	cfg := Config{
		Issuer:               "todo-test",
		StoreDriver:          DriverSQLite,
		DatabaseFile:         ":memory:",
		JWTAlgorithm:         "EdDSA",
		PepperFile:           filepath.Join(dir, "pepper"),
		Env:                  "dev",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		ShutdownGracePeriod:  0,
		HousekeepingInterval: 0,
	}

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	req := httptest.NewRequest(http.MethodPost, "/users",
		bytes.NewBufferString(`{"email":"alice@x.com","password":"secret1"}`))
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get(httpx.AuthHeader))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{StoreDriver: "cassandra"})
	require.Error(t, err)
}

func TestInitSessionKeysMissingFile(t *testing.T) {
	cfg := Config{JWTAlgorithm: "EdDSA", JWTKeyFile: filepath.Join(t.TempDir(), "missing.pem")}
	_, err := InitSessionKeys(cfg, nil)
	require.Error(t, err)
}
