package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"zorp/internal/domain/chat"
	"zorp/internal/domain/user"
	"zorp/internal/general/jwt"
	"zorp/internal/general/logger"

	"github.com/gorilla/websocket"
)

// ChatRoomService is the chat dependency of the socket layer.
type ChatRoomService interface {
	Subscribe(tripID string) ([]chat.Message, <-chan chat.Message, func())
	Send(ctx context.Context, tripID, text string) (chat.Message, error)
}

// ChatSocket serves the per-trip driver chat. The client receives the
// seeded history on connect, then every appended message, including the
// scripted driver replies.
type ChatSocket struct {
	connWriter
	logger *logger.Logger
	jwtMgr *jwt.Manager
	rooms  ChatRoomService
}

// NewChatSocket wires the chat socket.
func NewChatSocket(logger *logger.Logger, jwtMgr *jwt.Manager, rooms ChatRoomService) *ChatSocket {
	return &ChatSocket{logger: logger, jwtMgr: jwtMgr, rooms: rooms}
}

// Connect handles GET /ws/trips/{trip_id}/chat.
func (socket *ChatSocket) Connect(w http.ResponseWriter, r *http.Request) {
	conn, claims, ok := upgradeAndAuth(&socket.connWriter, socket.logger, socket.jwtMgr, w, r, user.RoleCustomer)
	if !ok {
		return
	}
	defer conn.Close()
	defer socket.forget(conn)

	tripID := r.PathValue("trip_id")
	ctx := r.Context()

	history, updates, cancel := socket.rooms.Subscribe(tripID)
	defer cancel()

	if err := socket.writeJSON(conn, map[string]any{"type": "history", "messages": history}); err != nil {
		socket.logger.Error(ctx, "chat_history_send_failed", "Failed to send chat history", err, nil)
		return
	}

	socket.logger.Info(ctx, "chat_ws_connected", "Chat stream opened",
		map[string]any{"trip_id": tripID, "user_id": claims.Subject})

	// push loop: fan room updates out to this client
	pushDone := make(chan struct{})
	go func() {
		defer close(pushDone)
		for msg := range updates {
			if err := socket.writeJSON(conn, map[string]any{"type": "message", "message": msg}); err != nil {
				_ = conn.Close()
				return
			}
		}
	}()

	// read loop: accept sends from the client
	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				socket.logger.Error(ctx, "chat_ws_unexpected_close", "Chat connection closed unexpectedly", err,
					map[string]any{"trip_id": tripID})
			}
			socket.writeClose(conn, websocket.CloseNormalClosure, "bye")
			break
		}

		var msg struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(payload, &msg); err != nil {
			_ = socket.writeJSON(conn, map[string]any{"type": "error", "error": "bad json"})
			continue
		}

		switch msg.Type {
		case "send":
			var body struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(msg.Data, &body); err != nil {
				_ = socket.writeJSON(conn, map[string]any{"type": "error", "error": "bad json"})
				continue
			}
			if _, err := socket.rooms.Send(ctx, tripID, body.Text); err != nil {
				_ = socket.writeJSON(conn, map[string]any{"type": "error", "error": err.Error()})
			}

		default:
			_ = socket.writeJSON(conn, map[string]any{"type": "error", "error": "unknown message type"})
		}
	}

	cancel()
	<-pushDone
}
