package game

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/bot"
)

const gameKeyPrefix = "game:"

type Options struct {
	Bot      bot.Settings
	CacheTTL time.Duration
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions     map[string]*GameSession // gameID → GameSession
	playerToGame map[int64]string        // playerID → gameID of the current game
	mu           sync.RWMutex
	repo         GameRepository
	cache        CacheRepository // Optional, can be nil
	notifier     Notifier        // Optional, can be nil
	opts         Options
	saves        sync.WaitGroup
}

func NewSessionManager(repo GameRepository, cache CacheRepository, notifier Notifier, opts Options) *SessionManager {
	return &SessionManager{
		sessions:     make(map[string]*GameSession),
		playerToGame: make(map[int64]string),
		repo:         repo,
		cache:        cache,
		notifier:     notifier,
		opts:         opts,
	}
}

// CreateSession starts a new game for the player. Any game the player still
// has running is abandoned first. When the AI opens, its move is already on
// the board in the returned snapshot.
func (sm *SessionManager) CreateSession(playerID int64, username string, aiMovesFirst bool) (*GameSession, Snapshot, error) {
	if old, ok := sm.GetSessionByPlayerID(playerID); ok && !old.IsFinished() {
		if _, err := old.Abandon(playerID); err != nil {
			log.Printf("[SESSION] Could not abandon previous game %s: %v", old.GameID, err)
		}
	}

	gs := newGameSession(playerID, username, aiMovesFirst, bot.NewSession(sm.opts.Bot), sm)

	sm.mu.Lock()
	sm.sessions[gs.GameID] = gs
	sm.playerToGame[playerID] = gs.GameID
	sm.mu.Unlock()

	log.Printf("[SESSION] Created game %s: %s (ID: %d) vs %s, AI plays %s",
		gs.GameID, username, playerID, domain.AIName, gs.Game.AIMarker)

	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.notifyStart()
	if err := gs.playAIMoveLocked(); err != nil {
		return nil, Snapshot{}, err
	}
	// an AI opening has already cached the game
	if gs.LastAIMove == nil {
		sm.cacheSession(gs)
	}
	return gs, gs.snapshotLocked(), nil
}

func (sm *SessionManager) GetSessionByPlayerID(playerID int64) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	gameID, exists := sm.playerToGame[playerID]
	if !exists {
		return nil, false
	}
	gs, exists := sm.sessions[gameID]
	return gs, exists
}

// GetSession finds a game in memory, falling back to the cache for games
// that were live when the process last stopped.
func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	gs, exists := sm.sessions[gameID]
	sm.mu.RUnlock()
	if exists {
		return gs, true
	}
	if sm.cache == nil {
		return nil, false
	}

	data, err := sm.cache.Get(context.Background(), gameKeyPrefix+gameID)
	if err != nil || data == "" {
		return nil, false
	}
	restored, err := restoreGameSession(data, sm.opts.Bot, sm)
	if err != nil {
		log.Printf("[SESSION] Discarding unreadable cached game %s: %v", gameID, err)
		sm.uncacheSession(gameID)
		return nil, false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if gs, exists := sm.sessions[gameID]; exists {
		return gs, true
	}
	sm.sessions[gameID] = restored
	sm.playerToGame[restored.PlayerID] = gameID
	log.Printf("[SESSION] Restored game %s from cache at depth %d", gameID, restored.AI.Depth())
	return restored, true
}

// GetSessionForPlayer returns the game only if the player owns it.
func (sm *SessionManager) GetSessionForPlayer(gameID string, playerID int64) (*GameSession, error) {
	gs, ok := sm.GetSession(gameID)
	if !ok {
		return nil, ErrGameNotFound
	}
	if gs.PlayerID != playerID {
		return nil, ErrNotAPlayer
	}
	return gs, nil
}

// removeSessionLocked removes session from maps without acquiring lock (caller must hold it)
func (sm *SessionManager) removeSessionLocked(gameID string) {
	gs, exists := sm.sessions[gameID]
	if !exists {
		return
	}
	if sm.playerToGame[gs.PlayerID] == gameID {
		delete(sm.playerToGame, gs.PlayerID)
	}
	delete(sm.sessions, gameID)
}

// GetActiveGames lists games still in progress, oldest first.
func (sm *SessionManager) GetActiveGames() []LiveGame {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.sessions))
	for _, gs := range sm.sessions {
		sessions = append(sessions, gs)
	}
	sm.mu.RUnlock()

	games := make([]LiveGame, 0, len(sessions))
	for _, gs := range sessions {
		gs.mu.Lock()
		if !gs.Game.IsFinished() {
			games = append(games, LiveGame{
				GameID:    gs.GameID,
				Player:    gs.PlayerUsername,
				AIMarker:  string(gs.Game.AIMarker),
				MoveCount: gs.Game.MoveCount,
				StartedAt: gs.CreatedAt,
			})
		}
		gs.mu.Unlock()
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].StartedAt.Before(games[j].StartedAt)
	})
	return games
}

// CleanupIdleSessions closes games idle longer than idle and drops finished
// games older than idle. It returns how many sessions were removed.
func (sm *SessionManager) CleanupIdleSessions(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.sessions))
	for _, gs := range sm.sessions {
		sessions = append(sessions, gs)
	}
	sm.mu.RUnlock()

	var stale []string
	for _, gs := range sessions {
		gs.expireIfIdle(cutoff)

		gs.mu.Lock()
		if gs.Game.IsFinished() && !gs.FinishedAt.After(cutoff) {
			stale = append(stale, gs.GameID)
		}
		gs.mu.Unlock()
	}

	sm.mu.Lock()
	for _, id := range stale {
		sm.removeSessionLocked(id)
	}
	sm.mu.Unlock()

	if len(stale) > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", len(stale))
	}
	return len(stale)
}

// Saves game data to database in background to avoid blocking game_over messages
func (sm *SessionManager) saveGameAsync(rec *domain.GameRecord) {
	if sm.repo == nil {
		return
	}
	sm.saves.Add(1)
	go func() {
		defer sm.saves.Done()
		if err := sm.repo.SaveGame(rec); err != nil {
			log.Printf("[GAME] Error saving game %s: %v", rec.GameID, err)
		} else {
			log.Printf("[GAME] Game %s saved successfully", rec.GameID)
		}
	}()
}

// WaitForSaves blocks until every pending save has finished.
func (sm *SessionManager) WaitForSaves() {
	sm.saves.Wait()
}

// cacheSession writes a live game to the cache. Caller holds gs.mu.
func (sm *SessionManager) cacheSession(gs *GameSession) {
	if sm.cache == nil {
		return
	}
	data, err := gs.marshalLocked()
	if err != nil {
		log.Printf("[SESSION] Warning: Failed to encode game %s: %v", gs.GameID, err)
		return
	}
	if err := sm.cache.Set(context.Background(), gameKeyPrefix+gs.GameID, data, sm.opts.CacheTTL); err != nil {
		log.Printf("[SESSION] Warning: Failed to cache game %s: %v", gs.GameID, err)
	}
}

func (sm *SessionManager) uncacheSession(gameID string) {
	if sm.cache == nil {
		return
	}
	if err := sm.cache.Del(context.Background(), gameKeyPrefix+gameID); err != nil {
		log.Printf("[SESSION] Warning: Failed to drop cached game %s: %v", gameID, err)
	}
}
