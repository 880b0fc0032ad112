package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iamasit07/tic-tac-toe/backend/internal/config"
)

// Claims represents JWT claims for access tokens
type Claims struct {
	PlayerID  int64  `json:"player_id"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
	Guest     bool   `json:"guest,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT creates a signed access token for the player
func GenerateJWT(playerID int64, username, sessionID string, guest bool) (string, error) {
	secret := config.AppConfig.JWTSecret
	ttl := time.Duration(config.AppConfig.JWTExpirationHours) * time.Hour

	claims := &Claims{
		PlayerID:  playerID,
		Username:  username,
		SessionID: sessionID,
		Guest:     guest,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateJWT validates a JWT access token and returns the claims
func ValidateJWT(tokenString string) (*Claims, error) {
	secret := config.AppConfig.JWTSecret

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// TTL is how long tokens issued now stay valid
func TTL() time.Duration {
	return time.Duration(config.AppConfig.JWTExpirationHours) * time.Hour
}
