package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	st := newTestStore(t)

	sessions := newSessionService(t, st)
	sessions.TokenTTL = time.Minute
	sessions.Now = clk.Now

	sess, err := sessions.Register(ctx, "alice@x.com", "secret1")
	require.NoError(t, err)

	hk := NewHousekeepingService(st, slogx.Discard(), 0)
	require.Equal(t, time.Hour, hk.Interval)
	hk.Now = clk.Now

	require.Zero(t, hk.Cleanup(ctx))

	clk.Advance(2 * time.Minute)
	require.EqualValues(t, 1, hk.Cleanup(ctx))

	user, err := st.Users().GetUserByID(ctx, sess.User.ID)
	require.NoError(t, err)
	require.Empty(t, user.Tokens)
}

func TestHousekeepingStartStop(t *testing.T) {
	hk := NewHousekeepingService(newTestStore(t), slogx.Discard(), 10*time.Millisecond)
	hk.Start()
	time.Sleep(30 * time.Millisecond)
	hk.Stop()
}
