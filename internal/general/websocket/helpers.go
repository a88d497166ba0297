package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"zorp/internal/domain/user"
	"zorp/internal/general/jwt"
	"zorp/internal/general/logger"

	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout   = 5 * time.Second
	wsCloseAckWindow = 2 * time.Second
	wsAuthWindow     = 10 * time.Second
	wsReadTimeout    = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// connWriter serializes writes to websocket connections. gorilla allows
// one concurrent writer per conn, so every write goes through lockOf.
type connWriter struct {
	writeLocks sync.Map // *websocket.Conn -> *sync.Mutex
}

// lockOf returns the mutex for a specific connection.
func (cw *connWriter) lockOf(conn *websocket.Conn) *sync.Mutex {
	if v, ok := cw.writeLocks.Load(conn); ok {
		if mu, ok := v.(*sync.Mutex); ok && mu != nil {
			return mu
		}
	}
	mu := &sync.Mutex{}
	actual, _ := cw.writeLocks.LoadOrStore(conn, mu)
	return actual.(*sync.Mutex)
}

// forget drops the per-connection mutex once the conn is gone.
func (cw *connWriter) forget(conn *websocket.Conn) {
	cw.writeLocks.Delete(conn)
}

// writeJSON marshals v and writes a single TextMessage to the connection.
func (cw *connWriter) writeJSON(conn *websocket.Conn, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	mu := cw.lockOf(conn)
	mu.Lock()
	defer mu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// writeClose sends a close control frame with the given code and reason.
func (cw *connWriter) writeClose(conn *websocket.Conn, code int, reason string) {
	mu := cw.lockOf(conn)
	mu.Lock()
	defer mu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(wsCloseAckWindow),
	)
	cw.writeLocks.Delete(conn)
}

// authError reports a failed handshake to the client.
func (cw *connWriter) authError(conn *websocket.Conn, message string) {
	_ = cw.writeJSON(conn, map[string]any{
		"type":    "auth_error",
		"error":   message,
		"success": false,
	})
}

// authSuccess confirms a finished handshake.
func (cw *connWriter) authSuccess(conn *websocket.Conn, userID string) error {
	return cw.writeJSON(conn, map[string]any{
		"type":      "auth_success",
		"message":   "Authentication successful",
		"success":   true,
		"user_id":   userID,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// upgradeAndAuth upgrades the request and performs the first-frame JWT
// handshake. On failure the connection is already notified and closed.
func upgradeAndAuth(
	cw *connWriter,
	log *logger.Logger,
	mgr *jwt.Manager,
	w http.ResponseWriter,
	r *http.Request,
	roles ...user.Role,
) (*websocket.Conn, *jwt.Claims, bool) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error(r.Context(), "websocket_upgrade_failed", "Failed to upgrade to WebSocket", err, nil)
		return nil, nil, false
	}

	conn.SetReadLimit(1 << 20) // 1 MiB
	if err := conn.SetReadDeadline(time.Now().Add(wsAuthWindow)); err != nil {
		log.Error(r.Context(), "ws_set_deadline_failed", "Failed to set initial read deadline", err, nil)
		cw.authError(conn, "internal server error")
		_ = conn.Close()
		return nil, nil, false
	}

	msgType, firstFrame, err := conn.ReadMessage()
	if err != nil {
		log.Error(r.Context(), "ws_auth_read_failed", "Failed to read auth message", err, nil)
		cw.authError(conn, "authentication timeout: please send auth message within 10 seconds")
		_ = conn.Close()
		return nil, nil, false
	}
	if msgType != websocket.TextMessage {
		log.Error(r.Context(), "ws_auth_invalid_format", "Auth message must be text format", nil, nil)
		cw.authError(conn, "auth message must be in text format")
		_ = conn.Close()
		return nil, nil, false
	}

	res, err := jwt.ValidateWSAuth(firstFrame, mgr, roles...)
	if err != nil {
		log.Error(r.Context(), "ws_auth_failed", "Invalid auth message or token", err, nil)
		cw.authError(conn, "authentication failed: invalid token")
		_ = conn.Close()
		return nil, nil, false
	}

	if err := cw.authSuccess(conn, res.Claims.Subject); err != nil {
		log.Error(r.Context(), "ws_auth_success_failed", "Failed to send auth success message", err, nil)
		_ = conn.Close()
		return nil, nil, false
	}

	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(_ string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	return conn, res.Claims, true
}
