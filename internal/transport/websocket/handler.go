package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/game"
	"github.com/iamasit07/tic-tac-toe/backend/pkg/auth"
)

const (
	readWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Auth           TokenValidator
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, validator TokenValidator, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Auth:           validator,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed[origin]
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades the request and runs the connection until it closes
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}
	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readWait))
		return nil
	})

	// 1. Wait for initialization (auth)
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[WS] Read error during init: %v", err)
		conn.Close()
		return
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil || message.Type != "init" || message.JWT == "" {
		log.Printf("[WS] Missing initialization or token")
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "First message must be init with a token"})
		conn.Close()
		return
	}

	claims, err := h.Auth.ValidateToken(message.JWT)
	if err != nil {
		log.Printf("[WS] Invalid token during init: %v", err)
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Invalid token or session expired"})
		conn.Close()
		return
	}
	token := message.JWT
	playerID, username := claims.PlayerID, claims.Username

	log.Printf("[WS] Connection initialized for player: %s (ID: %d)", username, playerID)
	h.ConnManager.AddConnection(playerID, conn)

	done := make(chan struct{})
	go h.keepAlive(playerID, done)

	// 2. Cleanup on exit. Games outlive the socket; idle ones are reaped by
	// the cleanup worker.
	defer func() {
		close(done)
		log.Printf("[WS] Connection closed for player %s", username)
		h.ConnManager.RemoveConnectionIfMatching(playerID, conn)
	}()

	h.resumeGame(playerID)

	// 3. Main message loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Player %d disconnected unexpectedly: %v", playerID, err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.ConnManager.SendError(playerID, "Invalid message format")
			continue
		}

		// every frame re-checks the token so a logout closes live sockets
		if msg.JWT != "" {
			token = msg.JWT
		}
		claims, err := h.Auth.ValidateToken(token)
		if err != nil {
			log.Printf("[WS] Invalid token for player %d: %v", playerID, err)
			h.ConnManager.SendError(playerID, "Session invalidated")
			return
		}
		if claims.PlayerID != playerID {
			log.Printf("[WS] Player mismatch: expected %d, got %d", playerID, claims.PlayerID)
			h.ConnManager.SendError(playerID, "Player mismatch")
			return
		}

		h.processMessage(playerID, username, msg)
	}
}

func (h *Handler) keepAlive(playerID int64, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := h.ConnManager.Ping(playerID); err != nil {
				return
			}
		}
	}
}

// resumeGame replays the state of a game still running for the player
func (h *Handler) resumeGame(playerID int64) {
	gs, ok := h.SessionManager.GetSessionByPlayerID(playerID)
	if !ok || gs.IsFinished() {
		return
	}
	snap := gs.Snapshot()
	h.ConnManager.SendMessage(playerID, domain.ServerMessage{
		Type:        "game_started",
		GameID:      snap.GameID,
		YourMarker:  snap.YourMarker,
		Board:       &snap.Board,
		CurrentTurn: snap.CurrentTurn,
		Status:      snap.Status,
	})
}

func (h *Handler) findGame(playerID int64, gameID string) (*game.GameSession, error) {
	if gameID != "" {
		return h.SessionManager.GetSessionForPlayer(gameID, playerID)
	}
	gs, ok := h.SessionManager.GetSessionByPlayerID(playerID)
	if !ok {
		return nil, game.ErrGameNotFound
	}
	return gs, nil
}

// processMessage routes specific actions. Game updates reach the player
// through the session manager's notifier.
func (h *Handler) processMessage(playerID int64, username string, msg domain.ClientMessage) {
	switch msg.Type {
	case "new_game":
		if _, _, err := h.SessionManager.CreateSession(playerID, username, msg.AIMovesFirst); err != nil {
			h.ConnManager.SendError(playerID, err.Error())
		}

	case "make_move":
		gs, err := h.findGame(playerID, msg.GameID)
		if err != nil {
			h.ConnManager.SendError(playerID, err.Error())
			return
		}
		if _, err := gs.HandleMove(playerID, msg.Row, msg.Col); err != nil {
			h.ConnManager.SendError(playerID, err.Error())
		}

	case "abandon_game":
		gs, err := h.findGame(playerID, msg.GameID)
		if err != nil {
			h.ConnManager.SendError(playerID, err.Error())
			return
		}
		if _, err := gs.Abandon(playerID); err != nil {
			h.ConnManager.SendError(playerID, err.Error())
		}

	default:
		h.ConnManager.SendError(playerID, "Unknown message type: "+msg.Type)
	}
}
