package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/game"
	"github.com/iamasit07/tic-tac-toe/backend/internal/transport/http/middleware"
)

type AIHandler struct {
	AI *game.AIService
}

func NewAIHandler(ai *game.AIService) *AIHandler {
	return &AIHandler{AI: ai}
}

type aiMoveRequest struct {
	Position  domain.Position `json:"position"`
	IsFirstAI bool            `json:"isFirstAI"`
}

// Move picks the AI's reply for a board the client keeps itself
func (h *AIHandler) Move(c *gin.Context) {
	var req aiMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if req.Position == nil {
		req.Position = domain.Position{}
	}

	claims := middleware.GetClaims(c)
	decision, err := h.AI.SelectMove(claims.PlayerID, req.Position, req.IsFirstAI)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"row":       decision.Row,
		"col":       decision.Col,
		"depth":     decision.Depth,
		"immediate": decision.Immediate,
	})
}

func (h *AIHandler) GetDepth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"depth": h.AI.Depth(middleware.GetClaims(c).PlayerID)})
}

func (h *AIHandler) ResetDepth(c *gin.Context) {
	playerID := middleware.GetClaims(c).PlayerID
	h.AI.Reset(playerID)
	c.JSON(http.StatusOK, gin.H{"depth": h.AI.Depth(playerID)})
}
