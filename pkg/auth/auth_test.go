package auth

import (
	"errors"
	"testing"

	"github.com/iamasit07/tic-tac-toe/backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
	BcryptCost = bcrypt.MinCost
	m.Run()
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "alice", "sess-1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.PlayerID != 42 || claims.Username != "alice" || claims.SessionID != "sess-1" || claims.Guest {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(1, "bob", "s", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	config.AppConfig.JWTSecret = "other"
	defer func() { config.AppConfig.JWTSecret = "test-secret" }()

	if _, err := ValidateJWT(token); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestJWTGarbage(t *testing.T) {
	if _, err := ValidateJWT("not.a.token"); err == nil {
		t.Fatalf("expected error for garbage token")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckPasswordHash("correct horse 1", hash) {
		t.Fatalf("expected password to match")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatalf("expected mismatch")
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	if err := ValidatePasswordStrength("abcdefg1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, pw := range []string{"short1", "allletters", "12345678"} {
		if err := ValidatePasswordStrength(pw); !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("expected %q to be rejected", pw)
		}
	}
}
