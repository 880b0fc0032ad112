package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/tic-tac-toe/backend/internal/config"
	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/bot"
	"github.com/iamasit07/tic-tac-toe/backend/internal/service/game"
	"github.com/iamasit07/tic-tac-toe/backend/pkg/auth"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
	m.Run()
}

type jwtValidator struct{}

func (jwtValidator) ValidateToken(token string) (*auth.Claims, error) {
	return auth.ValidateJWT(token)
}

func newTestServer(t *testing.T) (*httptest.Server, *game.SessionManager) {
	t.Helper()
	cm := NewConnectionManager()
	sm := game.NewSessionManager(nil, nil, cm, game.Options{Bot: bot.DefaultSettings()})
	h := NewHandler(cm, sm, jwtValidator{}, nil)

	router := gin.New()
	router.GET("/ws", h.HandleWebSocket)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, sm
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) domain.ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg domain.ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func token(t *testing.T, playerID int64, name string) string {
	t.Helper()
	tok, err := auth.GenerateJWT(playerID, name, "sess-"+name, false)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func TestInitRejectsBadToken(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)

	conn.WriteJSON(domain.ClientMessage{Type: "init", JWT: "garbage"})
	if msg := read(t, conn); msg.Type != "error" {
		t.Fatalf("expected an error frame, got %+v", msg)
	}
}

func TestPlayOverWebSocket(t *testing.T) {
	srv, sm := newTestServer(t)
	conn := dial(t, srv)

	conn.WriteJSON(domain.ClientMessage{Type: "init", JWT: token(t, 11, "wendy")})
	conn.WriteJSON(domain.ClientMessage{Type: "new_game", AIMovesFirst: true})

	started := read(t, conn)
	if started.Type != "game_started" || started.YourMarker != domain.O || started.GameID == "" {
		t.Fatalf("unexpected start frame %+v", started)
	}
	opening := read(t, conn)
	if opening.Type != "move_made" || opening.Marker != domain.X || *opening.Row != 1 || *opening.Col != 1 {
		t.Fatalf("expected the AI to open in the center, got %+v", opening)
	}

	conn.WriteJSON(domain.ClientMessage{Type: "make_move", GameID: started.GameID, Row: 1, Col: 1})
	if msg := read(t, conn); msg.Type != "error" || !strings.Contains(msg.Message, "occupied") {
		t.Fatalf("expected an occupied-cell error, got %+v", msg)
	}

	conn.WriteJSON(domain.ClientMessage{Type: "make_move", Row: 0, Col: 0})
	human := read(t, conn)
	if human.Type != "move_made" || human.Marker != domain.O {
		t.Fatalf("expected the human move echoed, got %+v", human)
	}
	reply := read(t, conn)
	if reply.Type != "move_made" || reply.Marker != domain.X || reply.Board.Count() != 3 {
		t.Fatalf("expected the AI reply, got %+v", reply)
	}

	conn.WriteJSON(domain.ClientMessage{Type: "abandon_game"})
	over := read(t, conn)
	if over.Type != "game_over" || over.Status != domain.StatusAbandoned || over.Winner != domain.X {
		t.Fatalf("expected game_over after abandon, got %+v", over)
	}

	if gs, ok := sm.GetSessionByPlayerID(11); !ok || !gs.IsFinished() {
		t.Fatalf("expected the session to be finished")
	}
}

func TestUnknownMessageType(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)

	conn.WriteJSON(domain.ClientMessage{Type: "init", JWT: token(t, 12, "xena")})
	conn.WriteJSON(domain.ClientMessage{Type: "dance"})
	if msg := read(t, conn); msg.Type != "error" {
		t.Fatalf("expected an error frame, got %+v", msg)
	}
}

func TestResumeOnReconnect(t *testing.T) {
	srv, _ := newTestServer(t)
	tok := token(t, 13, "yuri")

	first := dial(t, srv)
	first.WriteJSON(domain.ClientMessage{Type: "init", JWT: tok})
	first.WriteJSON(domain.ClientMessage{Type: "new_game", AIMovesFirst: true})
	started := read(t, first)
	read(t, first)
	first.Close()

	second := dial(t, srv)
	second.WriteJSON(domain.ClientMessage{Type: "init", JWT: tok})
	resumed := read(t, second)
	if resumed.Type != "game_started" || resumed.GameID != started.GameID || resumed.Board[1][1] != domain.X {
		t.Fatalf("expected the running game to be replayed, got %+v", resumed)
	}
}
