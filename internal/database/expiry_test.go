package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingDeleter struct {
	mu    sync.Mutex
	calls []time.Time
	n     int64
	err   error
}

func (r *recordingDeleter) DeleteExpiredNotifications(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, now)
	return r.n, r.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExpirySweeper_Sweep_PassesCurrentTime(t *testing.T) {
	req := require.New(t)
	store := &recordingDeleter{n: 3}
	sweeper := NewExpirySweeper(store, time.Minute, quietLogger())
	fixed := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	sweeper.now = func() time.Time { return fixed }

	req.EqualValues(3, sweeper.Sweep(context.Background()))
	req.Equal([]time.Time{fixed}, store.calls)
}

func TestExpirySweeper_Sweep_ErrorIsLoggedNotFatal(t *testing.T) {
	store := &recordingDeleter{err: errors.New("db down")}
	sweeper := NewExpirySweeper(store, time.Minute, quietLogger())

	require.Zero(t, sweeper.Sweep(context.Background()))
}

func TestExpirySweeper_Run_SweepsImmediatelyAndStops(t *testing.T) {
	store := &recordingDeleter{}
	sweeper := NewExpirySweeper(store, time.Hour, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- sweeper.Run(ctx) }()

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.calls) >= 1
	}, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
