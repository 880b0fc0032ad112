package cleanup

import (
	"context"
	"log"
	"time"
)

// SessionSweeper is the part of the game session manager the worker drives
type SessionSweeper interface {
	CleanupIdleSessions(idle time.Duration) int
}

type Worker struct {
	Sessions    SessionSweeper
	IdleTimeout time.Duration
	Interval    time.Duration
}

func NewWorker(sessions SessionSweeper, idleTimeout, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Worker{Sessions: sessions, IdleTimeout: idleTimeout, Interval: interval}
}

// Start runs a sweep immediately and then on every tick until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")
	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() {
	removed := w.Sessions.CleanupIdleSessions(w.IdleTimeout)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d finished game sessions", removed)
	}
}
