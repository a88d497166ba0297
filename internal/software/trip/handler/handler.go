package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"zorp/internal/domain/user"
	"zorp/internal/general/jwt"
	"zorp/internal/general/logger"
	"zorp/internal/general/websocket"
	"zorp/internal/ports"
)

// TripHTTPHandler adapts HTTP requests to the trip service.
type TripHTTPHandler struct {
	svc    ports.TripService
	logger *logger.Logger
	auth   *jwt.Manager
	chat   *websocket.ChatSocket
}

// NewTripHTTPHandler wires an HTTP handler around the trip service.
func NewTripHTTPHandler(svc ports.TripService, logger *logger.Logger, auth *jwt.Manager, chatWS *websocket.ChatSocket) *TripHTTPHandler {
	return &TripHTTPHandler{svc: svc, logger: logger, auth: auth, chat: chatWS}
}

// RegisterRoutes mounts trip endpoints on the provided mux.
func (handler *TripHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /trips",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleOngoingTrips),
	)
	mux.HandleFunc("POST /trips/{trip_id}/release",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleReleasePayment),
	)

	// driver chat; authenticates on its first frame
	mux.HandleFunc("GET /ws/trips/{trip_id}/chat", handler.chat.Connect)

	mux.HandleFunc("GET /health", handler.handleHealth)
}

func (handler *TripHTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	handler.jsonResponse(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// ----- general helpers -----

// jsonResponse encodes data to the HTTP response, with status control on failure.
func (handler *TripHTTPHandler) jsonResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	var buf []byte
	var err error

	if data != nil {
		buf, err = json.Marshal(data)
		if err != nil {
			handler.logger.Error(ctx, "response_encode_failed", "Failed to encode response", err, nil)
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
			return
		}
	} else {
		buf = []byte("{}")
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

// httpError sends a JSON error response with a message.
func (handler *TripHTTPHandler) httpError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
	action := "request_failed"
	if status >= 500 {
		action = "http_internal_error"
	} else if status == http.StatusBadRequest {
		action = "validation_failed"
	}
	handler.logger.Error(ctx, action, msg, err, nil)

	type errBody struct {
		Error string `json:"error"`
	}
	handler.jsonResponse(ctx, w, status, errBody{Error: msg})
}

// withReqID extracts or generates a request ID and adds it to the context.
func (handler *TripHTTPHandler) withReqID(ctx context.Context, r *http.Request) context.Context {
	reqID := r.Header.Get("X-Request-ID")
	if strings.TrimSpace(reqID) == "" {
		reqID = randID()
	}
	return handler.logger.WithRequestID(ctx, reqID)
}

// subjectOf returns the authenticated user's id from JWT claims.
func subjectOf(r *http.Request) string {
	claims := jwt.RequireClaims(r)
	if claims == nil {
		return ""
	}
	return strings.TrimSpace(claims.Subject)
}

// randID generates a random 24-char hex string suitable for request IDs.
func randID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
