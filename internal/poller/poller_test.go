package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type countingMetrics struct {
	mu      sync.Mutex
	results map[string]int
	skipped int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{results: make(map[string]int)}
}

func (m *countingMetrics) IncRefresh(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result]++
}

func (m *countingMetrics) IncRefreshSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped++
}

func (m *countingMetrics) snapshot() (map[string]int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.results))
	for k, v := range m.results {
		out[k] = v
	}
	return out, m.skipped
}

func TestRunRefreshesUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	p := New(10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, nopLogger{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 3 },
		time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}

func TestTickSkipsWhileRefreshInFlight(t *testing.T) {
	metrics := newCountingMetrics()
	release := make(chan struct{})
	var calls atomic.Int32

	p := New(time.Minute, func(ctx context.Context) error {
		calls.Add(1)
		<-release
		return nil
	}, nopLogger{}, metrics)

	ctx := context.Background()
	p.tick(ctx)

	require.Eventually(t, func() bool { return calls.Load() == 1 },
		time.Second, time.Millisecond)

	// overlapping ticks must not start a second refresh
	p.tick(ctx)
	p.tick(ctx)
	assert.Equal(t, int32(1), calls.Load())

	close(release)
	require.Eventually(t, func() bool {
		results, skipped := metrics.snapshot()
		return results["success"] == 1 && skipped == 2
	}, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return !p.inFlight.Load() },
		time.Second, time.Millisecond)

	// with the refresh finished, the next tick fires again
	p.tick(ctx)
	require.Eventually(t, func() bool { return calls.Load() == 2 },
		time.Second, time.Millisecond)
}

func TestTickCountsFailures(t *testing.T) {
	metrics := newCountingMetrics()
	p := New(time.Minute, func(ctx context.Context) error {
		return errors.New("backend unavailable")
	}, nopLogger{}, metrics)

	p.tick(context.Background())

	require.Eventually(t, func() bool {
		results, _ := metrics.snapshot()
		return results["error"] == 1
	}, time.Second, time.Millisecond)

	// a failure releases the guard for the next tick
	require.Eventually(t, func() bool { return !p.inFlight.Load() },
		time.Second, time.Millisecond)
}

func TestTickIgnoresContextCancellation(t *testing.T) {
	metrics := newCountingMetrics()
	p := New(time.Minute, func(ctx context.Context) error {
		return context.Canceled
	}, nopLogger{}, metrics)

	p.tick(context.Background())

	require.Eventually(t, func() bool { return !p.inFlight.Load() },
		time.Second, time.Millisecond)

	// shutdown is not a refresh failure
	results, skipped := metrics.snapshot()
	assert.Empty(t, results)
	assert.Zero(t, skipped)
}
