package cleanup

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingSweeper struct {
	mu    sync.Mutex
	calls int
	idle  time.Duration
}

func (c *countingSweeper) CleanupIdleSessions(idle time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.idle = idle
	return 0
}

func (c *countingSweeper) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestWorkerSweepsUntilCancelled(t *testing.T) {
	s := &countingSweeper{}
	w := NewWorker(s, 30*time.Minute, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for s.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("worker did not stop after cancel")
	}
	if s.count() < 3 {
		t.Fatalf("expected at least 3 sweeps, got %d", s.count())
	}
	if s.idle != 30*time.Minute {
		t.Fatalf("expected idle timeout to be passed through, got %v", s.idle)
	}
}

func TestNewWorkerDefaultsInterval(t *testing.T) {
	w := NewWorker(&countingSweeper{}, time.Minute, 0)
	if w.Interval != 5*time.Minute {
		t.Fatalf("expected default interval, got %v", w.Interval)
	}
}
