package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/game"
	"github.com/iamasit07/tic-tac-toe/backend/internal/transport/http/middleware"
)

type GameHandler struct {
	Sessions *game.SessionManager
}

func NewGameHandler(sm *game.SessionManager) *GameHandler {
	return &GameHandler{Sessions: sm}
}

type newGameRequest struct {
	AIMovesFirst bool `json:"aiMovesFirst"`
}

type moveRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

func (h *GameHandler) Create(c *gin.Context) {
	var req newGameRequest
	// an empty body means the human opens
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	claims := middleware.GetClaims(c)
	_, snap, err := h.Sessions.CreateSession(claims.PlayerID, claims.Username, req.AIMovesFirst)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

func (h *GameHandler) Get(c *gin.Context) {
	gs, err := h.Sessions.GetSessionForPlayer(c.Param("id"), middleware.GetClaims(c).PlayerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gs.Snapshot())
}

func (h *GameHandler) Move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "row and col are required"})
		return
	}

	playerID := middleware.GetClaims(c).PlayerID
	gs, err := h.Sessions.GetSessionForPlayer(c.Param("id"), playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	snap, err := gs.HandleMove(playerID, *req.Row, *req.Col)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *GameHandler) Abandon(c *gin.Context) {
	playerID := middleware.GetClaims(c).PlayerID
	gs, err := h.Sessions.GetSessionForPlayer(c.Param("id"), playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	snap, err := gs.Abandon(playerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
