package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/game"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/session"
	"github.com/iamasit07/tic-tac-toe/backend/pkg/auth"
)

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	var domainErr domain.Error
	switch {
	case errors.Is(err, domain.ErrGameFinished),
		errors.Is(err, domain.ErrCellOccupied),
		errors.Is(err, domain.ErrNotYourTurn),
		errors.Is(err, session.ErrUsernameTaken):
		return http.StatusConflict
	case errors.As(err, &domainErr),
		errors.Is(err, session.ErrInvalidUsername),
		errors.Is(err, session.ErrReservedUsername),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrInvalidCredentials),
		errors.Is(err, session.ErrSessionRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, game.ErrNotAPlayer):
		return http.StatusForbidden
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
