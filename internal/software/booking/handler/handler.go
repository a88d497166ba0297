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

// BookingHTTPHandler adapts HTTP requests to the booking and identity services.
type BookingHTTPHandler struct {
	svc      ports.BookingService
	identity ports.IdentityService
	logger   *logger.Logger
	auth     *jwt.Manager
	checkout *websocket.CheckoutSocket
}

// NewBookingHTTPHandler wires an HTTP handler around the booking service.
func NewBookingHTTPHandler(
	svc ports.BookingService,
	identity ports.IdentityService,
	logger *logger.Logger,
	auth *jwt.Manager,
	checkoutWS *websocket.CheckoutSocket,
) *BookingHTTPHandler {
	return &BookingHTTPHandler{svc: svc, identity: identity, logger: logger, auth: auth, checkout: checkoutWS}
}

// RegisterRoutes mounts booking endpoints on the provided mux.
func (handler *BookingHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	// identity
	mux.HandleFunc("POST /auth/login", handler.handleLogin)
	mux.HandleFunc("POST /auth/signup", handler.handleSignup)
	mux.HandleFunc("POST /auth/logout",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer, user.RoleDriver, user.RoleVendor, user.RoleAdmin)(handler.handleLogout),
	)
	mux.HandleFunc("POST /auth/role",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer, user.RoleDriver, user.RoleVendor, user.RoleAdmin)(handler.handleSetRole),
	)
	mux.HandleFunc("GET /auth/me",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer, user.RoleDriver, user.RoleVendor, user.RoleAdmin)(handler.handleMe),
	)

	// map data
	mux.HandleFunc("GET /locations/current", handler.handleCurrentLocation)
	mux.HandleFunc("GET /rides/options", handler.handleRideOptions)
	mux.HandleFunc("GET /rides/history",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleRideHistory),
	)

	// booking drawer sessions
	mux.HandleFunc("POST /bookings",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleOpenSession),
	)
	mux.HandleFunc("GET /bookings/sessions/{session_id}",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleGetSession),
	)
	mux.HandleFunc("PATCH /bookings/sessions/{session_id}/preferences",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleUpdatePreferences),
	)
	mux.HandleFunc("PUT /bookings/sessions/{session_id}/friend",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleSetFriend),
	)
	mux.HandleFunc("POST /bookings/sessions/{session_id}/select",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleSelectRide),
	)
	mux.HandleFunc("POST /bookings/sessions/{session_id}/confirm",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleConfirm),
	)
	mux.HandleFunc("POST /bookings/prefill",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handlePrefill),
	)

	// hand-off preview; misses bounce to the map
	mux.HandleFunc("GET /bookings/preview/{token}", handler.handlePreview)

	// checkout progress stream; authenticates on its first frame
	mux.HandleFunc("GET /ws/checkout/{booking_id}", handler.checkout.Connect)

	mux.HandleFunc("GET /health", handler.handleHealth)
}

func (handler *BookingHTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	handler.jsonResponse(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// ----- general helpers -----

// jsonResponse encodes data to the HTTP response, with status control on failure.
func (handler *BookingHTTPHandler) jsonResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
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
func (handler *BookingHTTPHandler) httpError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
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
func (handler *BookingHTTPHandler) withReqID(ctx context.Context, r *http.Request) context.Context {
	reqID := r.Header.Get("X-Request-ID")
	if strings.TrimSpace(reqID) == "" {
		reqID = randID()
	}
	return handler.logger.WithRequestID(ctx, reqID)
}

// decodeJSON decodes a bounded request body strictly into dst.
func (handler *BookingHTTPHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MiB
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
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
