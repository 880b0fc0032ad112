package game

import (
	"errors"
	"testing"
	"time"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/internal/repository/redis"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/bot"
)

func TestAIServiceCountersPerPlayer(t *testing.T) {
	svc := NewAIService(bot.DefaultSettings(), nil, time.Hour)

	d, err := svc.SelectMove(1, domain.Position{}, true)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if d.Move != (domain.Move{Row: 1, Col: 1}) || d.Depth != bot.DEFAULT_INITIAL_DEPTH {
		t.Fatalf("expected center at the initial depth, got %+v", d)
	}
	if svc.Depth(1) != bot.DEFAULT_INITIAL_DEPTH+1 {
		t.Fatalf("expected player 1 counter to advance, got %d", svc.Depth(1))
	}
	if svc.Depth(2) != bot.DEFAULT_INITIAL_DEPTH {
		t.Fatalf("expected player 2 to start fresh, got %d", svc.Depth(2))
	}
}

func TestAIServiceDepthSurvivesRestart(t *testing.T) {
	cache := redis.NewMemoryCache()
	svc := NewAIService(bot.DefaultSettings(), cache, time.Hour)
	for i := 0; i < 2; i++ {
		if _, err := svc.SelectMove(5, domain.Position{}, true); err != nil {
			t.Fatalf("select: %v", err)
		}
	}

	restarted := NewAIService(bot.DefaultSettings(), cache, time.Hour)
	if got := restarted.Depth(5); got != bot.DEFAULT_INITIAL_DEPTH+2 {
		t.Fatalf("expected restored depth %d, got %d", bot.DEFAULT_INITIAL_DEPTH+2, got)
	}

	restarted.Reset(5)
	if got := restarted.Depth(5); got != bot.DEFAULT_INITIAL_DEPTH {
		t.Fatalf("expected reset depth, got %d", got)
	}
	again := NewAIService(bot.DefaultSettings(), cache, time.Hour)
	if got := again.Depth(5); got != bot.DEFAULT_INITIAL_DEPTH {
		t.Fatalf("expected the reset to reach the cache, got %d", got)
	}
}

func TestAIServiceRejectsBadPositions(t *testing.T) {
	svc := NewAIService(bot.DefaultSettings(), nil, time.Hour)

	bad := domain.Position{"a": {Direction: [2]int{3, 0}, Content: domain.X}}
	if _, err := svc.SelectMove(1, bad, true); !errors.Is(err, domain.ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}

	won := domain.Position{
		"a": {Direction: [2]int{0, 0}, Content: domain.O},
		"b": {Direction: [2]int{0, 1}, Content: domain.O},
		"c": {Direction: [2]int{0, 2}, Content: domain.O},
	}
	if _, err := svc.SelectMove(1, won, true); !errors.Is(err, domain.ErrGameFinished) {
		t.Fatalf("expected ErrGameFinished, got %v", err)
	}
	if svc.Depth(1) != bot.DEFAULT_INITIAL_DEPTH {
		t.Fatalf("rejected requests must not advance the counter")
	}

	immediate := domain.Position{
		"a": {Direction: [2]int{0, 0}, Content: domain.X},
		"b": {Direction: [2]int{1, 0}, Content: domain.O},
		"c": {Direction: [2]int{0, 1}, Content: domain.X},
		"d": {Direction: [2]int{1, 1}, Content: domain.O},
	}
	d, err := svc.SelectMove(1, immediate, true)
	if err != nil || d.Move != (domain.Move{Row: 0, Col: 2}) || !d.Immediate {
		t.Fatalf("expected instant win at (0,2), got %+v %v", d, err)
	}
}
