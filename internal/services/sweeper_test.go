package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSessionStore struct {
	calls atomic.Int32
}

func (f *fakeSessionStore) DeleteExpired() (int64, error) {
	f.calls.Add(1)
	return 1, nil
}

func TestSessionSweeper_SweepsAndStops(t *testing.T) {
	store := &fakeSessionStore{}
	sweeper := NewSessionSweeper(store, 10*time.Millisecond)

	sweeper.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	sweeper.Stop()

	swept := store.calls.Load()
	assert.GreaterOrEqual(t, swept, int32(1))

	// No further sweeps after Stop returns
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, swept, store.calls.Load())
}
