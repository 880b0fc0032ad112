package game

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/bot"
	"github.com/iamasit07/tic-tac-toe/backend/pkg/uid"
)

const (
	ReasonThreeInARow = "three_in_a_row"
	ReasonDraw        = "draw"
	ReasonAbandoned   = "abandoned"
	ReasonIdle        = "idle_timeout"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotAPlayer   = errors.New("you are not a player in this game")
)

// GameSession is one human-vs-AI game. The AI's search counter lives with
// the game, so every game starts at the configured initial depth.
type GameSession struct {
	GameID         string
	PlayerID       int64
	PlayerUsername string
	Game           *domain.Game
	AI             *bot.Session
	Reason         string
	LastAIMove     *domain.Move
	CreatedAt      time.Time
	LastActivity   time.Time
	FinishedAt     time.Time
	mu             sync.Mutex
	sessionManager *SessionManager
}

type Notifier interface {
	SendMessage(playerID int64, message domain.ServerMessage) error
}

type GameRepository interface {
	SaveGame(rec *domain.GameRecord) error
}

type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

func newGameSession(playerID int64, username string, aiMovesFirst bool, ai *bot.Session, sm *SessionManager) *GameSession {
	now := time.Now()
	return &GameSession{
		GameID:         uid.GenerateGameID(),
		PlayerID:       playerID,
		PlayerUsername: username,
		Game:           domain.NewGame(aiMovesFirst),
		AI:             ai,
		CreatedAt:      now,
		LastActivity:   now,
		sessionManager: sm,
	}
}

func (gs *GameSession) Snapshot() Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.snapshotLocked()
}

func (gs *GameSession) snapshotLocked() Snapshot {
	s := Snapshot{
		GameID:      gs.GameID,
		Board:       gs.Game.Board,
		YourMarker:  gs.Game.HumanMarker(),
		AIMarker:    gs.Game.AIMarker,
		CurrentTurn: gs.Game.CurrentTurn,
		Status:      gs.Game.Status,
		Winner:      gs.Game.Winner,
		Reason:      gs.Reason,
		MoveCount:   gs.Game.MoveCount,
		AIDepth:     gs.AI.Depth(),
		CreatedAt:   gs.CreatedAt,
	}
	if gs.LastAIMove != nil {
		mv := *gs.LastAIMove
		s.LastAIMove = &mv
	}
	return s
}

func (gs *GameSession) IsFinished() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Game.IsFinished()
}

func (gs *GameSession) notify(msg domain.ServerMessage) {
	n := gs.sessionManager.notifier
	if n == nil {
		return
	}
	if err := n.SendMessage(gs.PlayerID, msg); err != nil {
		log.Printf("[GAME] Failed to notify player %d for game %s: %v", gs.PlayerID, gs.GameID, err)
	}
}

func (gs *GameSession) notifyMove(marker domain.Marker, row, col int) {
	board := gs.Game.Board
	r, c := row, col
	gs.notify(domain.ServerMessage{
		Type:        "move_made",
		GameID:      gs.GameID,
		Row:         &r,
		Col:         &c,
		Marker:      marker,
		Board:       &board,
		CurrentTurn: gs.Game.CurrentTurn,
	})
}

func (gs *GameSession) notifyStart() {
	board := gs.Game.Board
	gs.notify(domain.ServerMessage{
		Type:        "game_started",
		GameID:      gs.GameID,
		YourMarker:  gs.Game.HumanMarker(),
		Board:       &board,
		CurrentTurn: gs.Game.CurrentTurn,
		Status:      gs.Game.Status,
	})
}

// HandleMove applies the human's move and, if the game goes on, the AI's reply.
func (gs *GameSession) HandleMove(playerID int64, row, col int) (Snapshot, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if playerID != gs.PlayerID {
		return Snapshot{}, ErrNotAPlayer
	}

	human := gs.Game.HumanMarker()
	if err := gs.Game.MakeMove(human, row, col); err != nil {
		return Snapshot{}, err
	}
	gs.LastActivity = time.Now()
	gs.notifyMove(human, row, col)

	if gs.Game.IsFinished() {
		gs.finishLocked()
		return gs.snapshotLocked(), nil
	}

	if err := gs.playAIMoveLocked(); err != nil {
		return Snapshot{}, err
	}
	return gs.snapshotLocked(), nil
}

// playAIMoveLocked asks the move selector for the AI's reply. Caller holds gs.mu.
func (gs *GameSession) playAIMoveLocked() error {
	if gs.Game.IsFinished() || gs.Game.CurrentTurn != gs.Game.AIMarker {
		return nil
	}

	decision, err := gs.AI.SelectMove(gs.Game.Position(), gs.Game.AIMovesFirst())
	if err != nil {
		return err
	}
	if err := gs.Game.MakeMove(gs.Game.AIMarker, decision.Row, decision.Col); err != nil {
		log.Printf("[AI] Selector returned an illegal move %v in game %s: %v", decision.Move, gs.GameID, err)
		return err
	}

	mv := decision.Move
	gs.LastAIMove = &mv
	log.Printf("[AI] Game %s: played (%d,%d) at depth %d (immediate=%t)",
		gs.GameID, decision.Row, decision.Col, decision.Depth, decision.Immediate)
	gs.notifyMove(gs.Game.AIMarker, decision.Row, decision.Col)

	if gs.Game.IsFinished() {
		gs.finishLocked()
		return nil
	}
	gs.sessionManager.cacheSession(gs)
	return nil
}

// Abandon ends an active game as a loss for the human.
func (gs *GameSession) Abandon(playerID int64) (Snapshot, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if playerID != gs.PlayerID {
		return Snapshot{}, ErrNotAPlayer
	}
	if gs.Game.IsFinished() {
		return Snapshot{}, domain.ErrGameFinished
	}

	log.Printf("[GAME] Game %s abandoned by %s (ID: %d)", gs.GameID, gs.PlayerUsername, gs.PlayerID)
	gs.Game.Abandon()
	gs.Reason = ReasonAbandoned
	gs.finishLocked()
	return gs.snapshotLocked(), nil
}

// expireIfIdle abandons the game when it has not moved since the cutoff.
func (gs *GameSession) expireIfIdle(cutoff time.Time) bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.Game.IsFinished() || gs.LastActivity.After(cutoff) {
		return false
	}
	log.Printf("[GAME] Game %s idle since %s, closing", gs.GameID, gs.LastActivity.Format(time.RFC3339))
	gs.Game.Abandon()
	gs.Reason = ReasonIdle
	gs.finishLocked()
	return true
}

// finishLocked records the outcome, tells the player and persists the game.
func (gs *GameSession) finishLocked() {
	gs.FinishedAt = time.Now()
	if gs.Reason == "" {
		if gs.Game.Status == domain.StatusDraw {
			gs.Reason = ReasonDraw
		} else {
			gs.Reason = ReasonThreeInARow
		}
	}

	board := gs.Game.Board
	gs.notify(domain.ServerMessage{
		Type:   "game_over",
		GameID: gs.GameID,
		Winner: gs.Game.Winner,
		Reason: gs.Reason,
		Board:  &board,
		Status: gs.Game.Status,
	})

	rec := &domain.GameRecord{
		GameID:          gs.GameID,
		PlayerID:        gs.PlayerID,
		PlayerUsername:  gs.PlayerUsername,
		AIMarker:        gs.Game.AIMarker,
		Winner:          gs.Game.Winner,
		Reason:          gs.Reason,
		TotalMoves:      gs.Game.MoveCount,
		DurationSeconds: int(gs.FinishedAt.Sub(gs.CreatedAt).Seconds()),
		CreatedAt:       gs.CreatedAt,
		FinishedAt:      gs.FinishedAt,
		Board:           gs.Game.Board,
	}
	gs.sessionManager.saveGameAsync(rec)
	gs.sessionManager.uncacheSession(gs.GameID)
}

// cachedSession is the form a live game takes in the cache. The board is
// rebuilt by replaying History.
type cachedSession struct {
	GameID         string              `json:"game_id"`
	PlayerID       int64               `json:"player_id"`
	PlayerUsername string              `json:"player_username"`
	AIMarker       domain.Marker       `json:"ai_marker"`
	History        []domain.MoveRecord `json:"history"`
	AIDepth        int                 `json:"ai_depth"`
	LastAIMove     *domain.Move        `json:"last_ai_move,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	LastActivity   time.Time           `json:"last_activity"`
}

func (gs *GameSession) marshalLocked() ([]byte, error) {
	return json.Marshal(cachedSession{
		GameID:         gs.GameID,
		PlayerID:       gs.PlayerID,
		PlayerUsername: gs.PlayerUsername,
		AIMarker:       gs.Game.AIMarker,
		History:        gs.Game.History,
		AIDepth:        gs.AI.Depth(),
		LastAIMove:     gs.LastAIMove,
		CreatedAt:      gs.CreatedAt,
		LastActivity:   gs.LastActivity,
	})
}

func restoreGameSession(data string, settings bot.Settings, sm *SessionManager) (*GameSession, error) {
	var c cachedSession
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, err
	}
	if !c.AIMarker.IsValid() {
		return nil, domain.ErrInvalidMark
	}

	g := domain.NewGame(c.AIMarker == domain.X)
	for _, rec := range c.History {
		if err := g.MakeMove(rec.Content, rec.Direction[0], rec.Direction[1]); err != nil {
			return nil, err
		}
	}
	if g.IsFinished() {
		return nil, domain.ErrGameFinished
	}

	return &GameSession{
		GameID:         c.GameID,
		PlayerID:       c.PlayerID,
		PlayerUsername: c.PlayerUsername,
		Game:           g,
		AI:             bot.RestoreSession(settings, c.AIDepth),
		LastAIMove:     c.LastAIMove,
		CreatedAt:      c.CreatedAt,
		LastActivity:   c.LastActivity,
		sessionManager: sm,
	}, nil
}
