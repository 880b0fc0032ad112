package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/internal/transport/http/middleware"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type HistoryRepository interface {
	GetPlayerHistory(playerID int64, limit int) ([]domain.GameRecord, error)
	GetGameByID(gameID string) (*domain.GameRecord, error)
}

type HistoryHandler struct {
	GameRepo HistoryRepository
}

func NewHistoryHandler(gameRepo HistoryRepository) *HistoryHandler {
	return &HistoryHandler{GameRepo: gameRepo}
}

type gameHistoryItem struct {
	ID              string        `json:"id"`
	Result          string        `json:"result"` // "win", "loss", "draw"
	EndReason       string        `json:"endReason"`
	AIMarker        domain.Marker `json:"aiMarker"`
	MovesCount      int           `json:"movesCount"`
	DurationSeconds int           `json:"durationSeconds"`
	CreatedAt       time.Time     `json:"createdAt"`
	FinishedAt      time.Time     `json:"finishedAt"`
}

func (h *HistoryHandler) GetHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.GameRepo.GetPlayerHistory(middleware.GetClaims(c).PlayerID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	history := make([]gameHistoryItem, 0, len(records))
	for _, rec := range records {
		history = append(history, gameHistoryItem{
			ID:              rec.GameID,
			Result:          rec.Result(),
			EndReason:       rec.Reason,
			AIMarker:        rec.AIMarker,
			MovesCount:      rec.TotalMoves,
			DurationSeconds: rec.DurationSeconds,
			CreatedAt:       rec.CreatedAt,
			FinishedAt:      rec.FinishedAt,
		})
	}
	c.JSON(http.StatusOK, history)
}

// GetGameDetails returns one finished game. Other players' games read as
// not found.
func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	rec, err := h.GameRepo.GetGameByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if rec == nil || rec.PlayerID != middleware.GetClaims(c).PlayerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"game":   rec,
		"result": rec.Result(),
	})
}
