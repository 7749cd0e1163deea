package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"trade_bridge/internal/adaptor"
	"trade_bridge/internal/model"
)

const (
	statusInterval     = 5 * time.Second
	statusPingInterval = 25 * time.Second
	statusPongWait     = 60 * time.Second
	statusWriteWait    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS policy is enforced on the API routes; /ws serves the same page
	},
}

// StatusStreamManager pushes a status snapshot to every /ws client
// immediately on connect and every 5 seconds after, until the client goes
// away or the server shuts down.
type StatusStreamManager struct {
	status adaptor.StatusUseCase
	log    zerolog.Logger

	mu      sync.RWMutex
	clients map[*websocket.Conn]chan struct{}
	closed  bool
}

func NewStatusStreamManager(status adaptor.StatusUseCase, log zerolog.Logger) *StatusStreamManager {
	return &StatusStreamManager{
		status:  status,
		log:     log.With().Str("component", "status_ws").Logger(),
		clients: make(map[*websocket.Conn]chan struct{}),
	}
}

func (m *StatusStreamManager) isClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

func (m *StatusStreamManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if m.isClosed() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	stop := make(chan struct{})

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		conn.Close()
		return
	}
	m.clients[conn] = stop
	m.mu.Unlock()

	m.log.Info().Str("remote", r.RemoteAddr).Msg("client connected")

	go m.writeLoop(r.Context(), conn, stop)

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(statusPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(statusPongWait))
	})

	// Inbound frames are ignored; the read loop only detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				m.log.Warn().Err(err).Msg("websocket read error")
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(statusPongWait))
	}

	m.removeClient(conn)
	m.log.Info().Str("remote", r.RemoteAddr).Msg("client disconnected")
}

// writeLoop is the single writer for a connection: the immediate snapshot,
// the 5-second re-emits and keepalive pings all come from here.
func (m *StatusStreamManager) writeLoop(ctx context.Context, conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()
	pinger := time.NewTicker(statusPingInterval)
	defer pinger.Stop()

	if !m.sendSnapshot(ctx, conn) {
		return
	}

	for {
		select {
		case <-ticker.C:
			if !m.sendSnapshot(ctx, conn) {
				return
			}
		case <-pinger.C:
			deadline := time.Now().Add(statusWriteWait)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}

func (m *StatusStreamManager) sendSnapshot(ctx context.Context, conn *websocket.Conn) bool {
	msg := model.StatusMessage{
		Type: "status",
		Data: m.status.Snapshot(ctx),
	}
	_ = conn.SetWriteDeadline(time.Now().Add(statusWriteWait))
	if err := conn.WriteJSON(msg); err != nil {
		m.log.Debug().Err(err).Msg("status write failed")
		return false
	}
	return true
}

func (m *StatusStreamManager) removeClient(conn *websocket.Conn) {
	m.mu.Lock()
	stop, ok := m.clients[conn]
	if ok {
		delete(m.clients, conn)
	}
	m.mu.Unlock()

	if ok {
		close(stop)
	}
	conn.Close()
}

// Close stops every stream; called once during graceful shutdown.
func (m *StatusStreamManager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	conns := make([]*websocket.Conn, 0, len(m.clients))
	for conn := range m.clients {
		conns = append(conns, conn)
	}
	m.mu.Unlock()

	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(statusWriteWait))
		m.removeClient(conn)
	}
}
