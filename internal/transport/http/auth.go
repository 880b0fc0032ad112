package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/session"
	"github.com/iamasit07/tic-tac-toe/backend/internal/transport/http/middleware"
	"github.com/iamasit07/tic-tac-toe/backend/pkg/httputil"
)

type AuthHandler struct {
	Auth *session.AuthService
}

func NewAuthHandler(authService *session.AuthService) *AuthHandler {
	return &AuthHandler{Auth: authService}
}

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func respondWithToken(c *gin.Context, status int, res *session.AuthResult) {
	httputil.SetAuthCookie(c.Writer, res.Token)
	c.JSON(status, gin.H{
		"token": res.Token,
		"user":  res.Player,
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	res, err := h.Auth.Register(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondWithToken(c, http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	res, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("[AUTH] %s logged in from %s", res.Player.Username, c.ClientIP())
	respondWithToken(c, http.StatusOK, res)
}

func (h *AuthHandler) Guest(c *gin.Context) {
	res, err := h.Auth.Guest()
	if err != nil {
		respondError(c, err)
		return
	}
	respondWithToken(c, http.StatusCreated, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	player, err := h.Auth.Me(middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":   player,
		"losses": player.Losses(),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(middleware.GetClaims(c)); err != nil {
		respondError(c, err)
		return
	}
	httputil.ClearAuthCookie(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
