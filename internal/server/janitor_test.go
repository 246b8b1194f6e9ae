package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/frondster/frondster/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep(t *testing.T) {
	mClock := quartz.NewMock(t)
	cfg := config.Default()
	cfg.IdleTimeout = config.Duration{Duration: 10 * time.Minute}
	s := NewServerState(cfg, mClock)

	s.mu.Lock()
	_, err := s.acquire("idle")
	require.NoError(t, err)
	watched, err := s.acquire("watched")
	require.NoError(t, err)
	s.mu.Unlock()
	watched.clients["c1"] = &client{id: "c1"}

	mClock.Advance(5 * time.Minute)
	assert.Empty(t, s.Sweep(), "nothing is idle long enough yet")

	mClock.Advance(5 * time.Minute)
	assert.Equal(t, []string{"idle"}, s.Sweep())

	_, err = s.Snapshot("idle")
	assert.ErrorIs(t, err, ErrUnknownGame)
	_, err = s.Snapshot("watched")
	assert.NoError(t, err)

	// Leaving restarts the idle countdown.
	s.leave(watched, watched.clients["c1"])
	mClock.Advance(9 * time.Minute)
	assert.Empty(t, s.Sweep())
	mClock.Advance(time.Minute)
	assert.Equal(t, []string{"watched"}, s.Sweep())
}

func TestJanitorEvictsIdleGames(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	cfg := config.Default()
	cfg.IdleTimeout = config.Duration{Duration: 2 * time.Minute}
	cfg.SweepInterval = config.Duration{Duration: time.Minute}
	s := NewServerState(cfg, mClock)

	s.mu.Lock()
	_, err := s.acquire("idle")
	require.NoError(t, err)
	watched, err := s.acquire("watched")
	require.NoError(t, err)
	s.mu.Unlock()
	watched.clients["c1"] = &client{id: "c1"}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- s.runJanitor(janitorCtx) }()

	// Each tick of the janitor's ticker sweeps; the idle game goes once it
	// has been idle for IdleTimeout.
	require.Eventually(t, func() bool {
		mClock.Advance(cfg.SweepInterval.Duration).MustWait(ctx)
		_, err := s.Snapshot("idle")
		return errors.Is(err, ErrUnknownGame)
	}, 5*time.Second, 10*time.Millisecond)

	_, err = s.Snapshot("watched")
	assert.NoError(t, err, "games with clients are never evicted")

	stopJanitor()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("janitor did not stop")
	}
}
