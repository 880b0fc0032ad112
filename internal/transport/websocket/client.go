package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/tic-tac-toe/backend/internal/domain"
)

const writeWait = 10 * time.Second

// ConnectionManager tracks one live socket per player
type ConnectionManager struct {
	connections map[int64]*websocket.Conn

	// gorilla connections allow one concurrent writer
	writeMu map[int64]*sync.Mutex

	mu sync.RWMutex // guards the maps
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[int64]*websocket.Conn),
		writeMu:     make(map[int64]*sync.Mutex),
	}
}

// AddConnection registers a socket, closing any older one for the same player
func (cm *ConnectionManager) AddConnection(playerID int64, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[playerID]; exists && oldConn != conn {
		oldConn.Close()
	}

	cm.connections[playerID] = conn
	cm.writeMu[playerID] = &sync.Mutex{}
}

// RemoveConnectionIfMatching only removes conn if it is still the player's
// current socket, so a reconnect is not torn down by the old reader exiting.
func (cm *ConnectionManager) RemoveConnectionIfMatching(playerID int64, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[playerID]; exists && currentConn == conn {
		currentConn.Close()
		cm.deleteLocked(playerID)
	}
}

func (cm *ConnectionManager) deleteLocked(playerID int64) {
	delete(cm.connections, playerID)
	delete(cm.writeMu, playerID)
}

// SendMessage writes a JSON frame to the player. Players without a socket
// are skipped silently.
func (cm *ConnectionManager) SendMessage(playerID int64, message domain.ServerMessage) error {
	return cm.send(playerID, message)
}

func (cm *ConnectionManager) SendError(playerID int64, msg string) error {
	return cm.send(playerID, domain.ErrorMessage{Type: "error", Message: msg})
}

func (cm *ConnectionManager) send(playerID int64, v interface{}) error {
	cm.mu.RLock()
	conn, exists := cm.connections[playerID]
	mu, muExists := cm.writeMu[playerID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// Ping writes a control ping under the player's write lock
func (cm *ConnectionManager) Ping(playerID int64) error {
	cm.mu.RLock()
	conn, exists := cm.connections[playerID]
	mu, muExists := cm.writeMu[playerID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return websocket.ErrCloseSent
	}

	mu.Lock()
	defer mu.Unlock()
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}
