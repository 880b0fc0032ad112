package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/pkg/auth"
	"github.com/iamasit07/tic-tac-toe/backend/pkg/uid"
)

const blockedSessionKeyPrefix = "blocked_session:"

var (
	ErrInvalidUsername    = errors.New("username must be between 3 and 50 characters")
	ErrReservedUsername   = errors.New("username 'BOT' is reserved")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionRevoked     = errors.New("session is blocked/revoked")
)

type PlayerRepository interface {
	CreatePlayer(username, passwordHash string) (*domain.Player, error)
	GetPlayerByUsername(username string) (*domain.Player, error)
	GetPlayerByID(id int64) (*domain.Player, error)
}

type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// AuthResult is what a successful register, login or guest call hands back
type AuthResult struct {
	Token  string
	Player *domain.Player
}

// AuthService handles accounts and token sessions
type AuthService struct {
	repo  PlayerRepository
	cache CacheRepository // Optional, can be nil
}

func NewAuthService(repo PlayerRepository, cache CacheRepository) *AuthService {
	return &AuthService{
		repo:  repo,
		cache: cache,
	}
}

func validateUsername(username string) error {
	if len(username) < 3 || len(username) > 50 {
		return ErrInvalidUsername
	}
	if strings.EqualFold(username, domain.AIName) {
		return ErrReservedUsername
	}
	return nil
}

func (s *AuthService) issue(player *domain.Player) (*AuthResult, error) {
	sessionID, err := uid.GenerateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}
	token, err := auth.GenerateJWT(player.ID, player.Username, sessionID, player.IsGuest)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: token, Player: player}, nil
}

func (s *AuthService) Register(username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := auth.ValidatePasswordStrength(password); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetPlayerByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	player, err := s.repo.CreatePlayer(username, hash)
	if err != nil {
		return nil, err
	}

	log.Printf("[AUTH] Registered player %s (ID: %d)", player.Username, player.ID)
	return s.issue(player)
}

func (s *AuthService) Login(username, password string) (*AuthResult, error) {
	player, err := s.repo.GetPlayerByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if player == nil || !auth.CheckPasswordHash(password, player.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(player)
}

// Guest issues a token for a throwaway player that is never persisted.
// Guest IDs are negative so they can never collide with stored players.
func (s *AuthService) Guest() (*AuthResult, error) {
	id := uid.GenerateGuestID()
	player := &domain.Player{
		ID:        id,
		Username:  fmt.Sprintf("guest_%06d", -id%1000000),
		IsGuest:   true,
		CreatedAt: time.Now(),
	}
	return s.issue(player)
}

// Me resolves the claims to a player. Guests are rebuilt from the claims.
func (s *AuthService) Me(claims *auth.Claims) (*domain.Player, error) {
	if claims.Guest {
		return &domain.Player{ID: claims.PlayerID, Username: claims.Username, IsGuest: true}, nil
	}
	player, err := s.repo.GetPlayerByID(claims.PlayerID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrInvalidCredentials
	}
	return player, nil
}

// BlocklistSession adds a session ID to the cache blocklist with a TTL.
func (s *AuthService) BlocklistSession(sessionID string, ttl time.Duration) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(context.Background(), blockedSessionKeyPrefix+sessionID, "1", ttl)
}

func (s *AuthService) IsSessionBlocked(sessionID string) bool {
	if s.cache == nil {
		return false
	}
	val, err := s.cache.Get(context.Background(), blockedSessionKeyPrefix+sessionID)
	return err == nil && val != ""
}

// ValidateToken checks the signature and the blocklist.
func (s *AuthService) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, err := auth.ValidateJWT(tokenString)
	if err != nil {
		return nil, err
	}
	if s.IsSessionBlocked(claims.SessionID) {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Logout blocklists the session for whatever lifetime its token has left.
func (s *AuthService) Logout(claims *auth.Claims) error {
	ttl := auth.TTL()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.BlocklistSession(claims.SessionID, ttl); err != nil {
		log.Printf("[AUTH] Warning: Failed to blocklist session for %s: %v", claims.Username, err)
		return err
	}
	return nil
}
