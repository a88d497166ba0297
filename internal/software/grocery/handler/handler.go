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
	"zorp/internal/ports"
)

// GroceryHTTPHandler adapts HTTP requests to the grocery service.
type GroceryHTTPHandler struct {
	svc    ports.GroceryService
	logger *logger.Logger
	auth   *jwt.Manager
}

// NewGroceryHTTPHandler wires an HTTP handler around the grocery service.
func NewGroceryHTTPHandler(svc ports.GroceryService, logger *logger.Logger, auth *jwt.Manager) *GroceryHTTPHandler {
	return &GroceryHTTPHandler{svc: svc, logger: logger, auth: auth}
}

// RegisterRoutes mounts grocery endpoints on the provided mux.
func (handler *GroceryHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /products", handler.handleProducts)

	mux.HandleFunc("GET /cart",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleGetCart),
	)
	mux.HandleFunc("POST /cart/items",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleAddItem),
	)
	mux.HandleFunc("PATCH /cart/items/{product_id}",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleUpdateQuantity),
	)
	mux.HandleFunc("DELETE /cart/items/{product_id}",
		jwt.AuthMiddlewareFunc(handler.auth, user.RoleCustomer)(handler.handleRemoveItem),
	)

	mux.HandleFunc("GET /health", handler.handleHealth)
}

func (handler *GroceryHTTPHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	handler.jsonResponse(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// ----- general helpers -----

// jsonResponse encodes data to the HTTP response, with status control on failure.
func (handler *GroceryHTTPHandler) jsonResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
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
func (handler *GroceryHTTPHandler) httpError(ctx context.Context, w http.ResponseWriter, status int, msg string, err error) {
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
func (handler *GroceryHTTPHandler) withReqID(ctx context.Context, r *http.Request) context.Context {
	reqID := r.Header.Get("X-Request-ID")
	if strings.TrimSpace(reqID) == "" {
		reqID = randID()
	}
	return handler.logger.WithRequestID(ctx, reqID)
}

// decodeJSON decodes a bounded request body strictly into dst.
func (handler *GroceryHTTPHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
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
