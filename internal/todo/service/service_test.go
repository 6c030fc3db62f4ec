package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/internal/todo/store/drivers/sqlite"
	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "todo-test"

func TestMain(m *testing.M) {
	cryptox.SetPepper("service-test-pepper")
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newKeyManager(t *testing.T) *jwtx.KeyManager {
	t.Helper()

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmHS256,
		Issuer:    testIssuer,
		Secret:    []byte("service-test-secret"),
	})
	require.NoError(t, err)
	return km
}

func newSessionService(t *testing.T, st store.Store) *SessionService {
	t.Helper()
	return &SessionService{
		KeyManager: newKeyManager(t),
		Store:      st,
		Issuer:     testIssuer,
	}
}

func sessionClaims(t *testing.T, subject, issuer string, ttl time.Duration, now time.Time) jwtx.Claims {
	t.Helper()
	c, err := jwtx.NewSessionClaims(subject, issuer, ttl, now)
	require.NoError(t, err)
	return c
}

// clock is a manually advanced time source.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock {
	return &clock{t: time.Now().UTC().Truncate(time.Millisecond)}
}
