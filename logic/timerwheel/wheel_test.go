package timerwheel

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxthread/rewardengine/model"
)

func TestWheelFiresAfterDelay(t *testing.T) {
	var mu sync.Mutex
	var fired []model.PostId
	done := make(chan struct{})

	w, err := Open(filepath.Join(t.TempDir(), "wal"), func(id model.PostId) {
		mu.Lock()
		fired = append(fired, id)
		mu.Unlock()
		close(done)
	}, log.Root())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Schedule(7, 10*time.Millisecond))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []model.PostId{7}, fired)
}

func TestWheelReplaysPersistedEntryAfterReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "wal")

	w1, err := Open(dir, func(model.PostId) {}, log.Root())
	require.NoError(t, err)
	require.NoError(t, w1.Schedule(3, time.Hour))
	require.NoError(t, w1.Close())

	fired := make(chan model.PostId, 1)
	w2, err := Open(dir, func(id model.PostId) { fired <- id }, log.Root())
	require.NoError(t, err)
	defer w2.Close()

	// The persisted entry's fire time is an hour in the future relative to
	// when it was scheduled, but replay should still pick it up into the
	// heap without requiring a fresh Schedule call.
	w2.mu.Lock()
	require.Len(t, w2.heap, 1)
	require.Equal(t, model.PostId(3), w2.heap[0].threadId)
	w2.mu.Unlock()
}
