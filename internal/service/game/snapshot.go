package game

import (
	"time"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
)

// Snapshot is the client-facing view of a game
type Snapshot struct {
	GameID      string            `json:"gameId"`
	Board       domain.Board      `json:"board"`
	YourMarker  domain.Marker     `json:"yourMarker"`
	AIMarker    domain.Marker     `json:"aiMarker"`
	CurrentTurn domain.Marker     `json:"currentTurn"`
	Status      domain.GameStatus `json:"status"`
	Winner      domain.Marker     `json:"winner"`
	Reason      string            `json:"reason,omitempty"`
	MoveCount   int               `json:"moveCount"`
	AIDepth     int               `json:"aiDepth"`
	LastAIMove  *domain.Move      `json:"lastAiMove,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// LiveGame is a row of the watch list
type LiveGame struct {
	GameID    string    `json:"gameId"`
	Player    string    `json:"player"`
	AIMarker  string    `json:"aiMarker"`
	MoveCount int       `json:"moveCount"`
	StartedAt time.Time `json:"startedAt"`
}
