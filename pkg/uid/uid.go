package uid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

func randomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateGameID returns a 32 character hex game ID
func GenerateGameID() string {
	id, err := randomHex(16)
	if err != nil {
		panic(fmt.Sprintf("uid: crypto/rand failed: %v", err))
	}
	return id
}

// GenerateSessionID generates a cryptographically secure random session ID
func GenerateSessionID() (string, error) {
	id, err := randomHex(32) // 256 bits
	if err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}
	return id, nil
}

// GenerateGuestID returns a negative ID so guests never collide with stored
// players, whose IDs come from the database and are positive.
func GenerateGuestID() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("uid: crypto/rand failed: %v", err))
	}
	// keep 52 bits so the value survives a JSON round trip in browsers
	n := int64(binary.BigEndian.Uint64(b[:]) & (1<<52 - 1))
	return -(n + 1)
}
