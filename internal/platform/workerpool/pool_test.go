package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jobber-ats/core/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New("error", "console")
	require.NoError(t, err)
	return l
}

// TestPool_ConcurrencyNeverExceedsMax submits far more work than the
// queue can hold, forcing both core workers and semaphore-gated
// overflow workers into play, and asserts the number of jobs running
// at once never crosses max pool workers plus the one submitting
// goroutine that caller-runs back-pressure puts to work.
func TestPool_ConcurrencyNeverExceedsMax(t *testing.T) {
	const core = 2
	const max = 5
	const jobs = 50

	p := New(core, max, 1, newTestLogger(t))

	var inFlight int32
	var peak int32
	var peakMu sync.Mutex
	var wg sync.WaitGroup

	track := func(ctx context.Context) {
		defer wg.Done()
		n := atomic.AddInt32(&inFlight, 1)
		peakMu.Lock()
		if n > peak {
			peak = n
		}
		peakMu.Unlock()
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
	}

	for i := 0; i < jobs; i++ {
		wg.Add(1)
		p.Submit(track)
	}
	wg.Wait()

	require.LessOrEqual(t, int(peak), max+1, "observed concurrency exceeded the configured max plus the caller")
}

func TestPool_Shutdown_DrainsQueuedWork(t *testing.T) {
	p := New(1, 2, 10, newTestLogger(t))

	var completed int32
	for i := 0; i < 5; i++ {
		p.Submit(func(ctx context.Context) {
			atomic.AddInt32(&completed, 1)
		})
	}

	p.Shutdown(time.Second)

	require.Equal(t, int32(5), completed)
}
