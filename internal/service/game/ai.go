package game

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/bot"
)

const depthKeyPrefix = "ai_depth:"

// AIService answers one-off move requests for clients that keep the board
// themselves. Each player gets their own depth counter, which survives
// restarts when a cache is configured.
type AIService struct {
	settings bot.Settings
	cache    CacheRepository // Optional, can be nil
	ttl      time.Duration
	mu       sync.Mutex
	sessions map[int64]*bot.Session
}

func NewAIService(settings bot.Settings, cache CacheRepository, ttl time.Duration) *AIService {
	return &AIService{
		settings: settings,
		cache:    cache,
		ttl:      ttl,
		sessions: make(map[int64]*bot.Session),
	}
}

func (s *AIService) session(playerID int64) *bot.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[playerID]; ok {
		return sess
	}

	sess := bot.NewSession(s.settings)
	if s.cache != nil {
		if val, err := s.cache.Get(context.Background(), depthKeyPrefix+strconv.FormatInt(playerID, 10)); err == nil {
			if depth, err := strconv.Atoi(val); err == nil {
				sess = bot.RestoreSession(s.settings, depth)
			}
		}
	}
	s.sessions[playerID] = sess
	return sess
}

// SelectMove validates the position and runs the player's selector on it.
func (s *AIService) SelectMove(playerID int64, position domain.Position, aiMovesFirst bool) (bot.Decision, error) {
	if err := domain.ValidatePosition(position); err != nil {
		return bot.Decision{}, err
	}
	board := domain.ToDenseBoard(position)
	if domain.IsGameOver(&board) {
		return bot.Decision{}, domain.ErrGameFinished
	}

	sess := s.session(playerID)
	decision, err := sess.SelectMove(position, aiMovesFirst)
	s.saveDepth(playerID, sess.Depth())
	return decision, err
}

// Depth is the counter value the player's next request will search with.
func (s *AIService) Depth(playerID int64) int {
	return s.session(playerID).Depth()
}

// Reset drops the player's counter back to the initial depth.
func (s *AIService) Reset(playerID int64) {
	s.mu.Lock()
	delete(s.sessions, playerID)
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Del(context.Background(), depthKeyPrefix+strconv.FormatInt(playerID, 10)); err != nil {
			log.Printf("[AI] Warning: Failed to clear depth for player %d: %v", playerID, err)
		}
	}
}

func (s *AIService) saveDepth(playerID int64, depth int) {
	if s.cache == nil {
		return
	}
	key := depthKeyPrefix + strconv.FormatInt(playerID, 10)
	if err := s.cache.Set(context.Background(), key, strconv.Itoa(depth), s.ttl); err != nil {
		log.Printf("[AI] Warning: Failed to store depth for player %d: %v", playerID, err)
	}
}
