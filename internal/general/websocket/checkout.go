package websocket

import (
	"context"
	"net/http"

	"zorp/internal/domain/user"
	"zorp/internal/general/jwt"
	"zorp/internal/general/logger"
	"zorp/internal/software/checkout"

	"github.com/gorilla/websocket"
)

// CheckoutStarter launches a payment run for a confirmed booking.
type CheckoutStarter interface {
	StartCheckout(ctx context.Context, bookingID string) (*checkout.Run, error)
}

// CheckoutSocket streams checkout progress frames to the paying rider.
// Closing the socket mid-run stops the payment simulation, which is how
// navigating away from the checkout screen cancels the timers.
type CheckoutSocket struct {
	connWriter
	logger  *logger.Logger
	jwtMgr  *jwt.Manager
	starter CheckoutStarter
}

// NewCheckoutSocket wires the checkout progress stream.
func NewCheckoutSocket(logger *logger.Logger, jwtMgr *jwt.Manager, starter CheckoutStarter) *CheckoutSocket {
	return &CheckoutSocket{logger: logger, jwtMgr: jwtMgr, starter: starter}
}

// Connect handles GET /ws/checkout/{booking_id}.
func (socket *CheckoutSocket) Connect(w http.ResponseWriter, r *http.Request) {
	conn, claims, ok := upgradeAndAuth(&socket.connWriter, socket.logger, socket.jwtMgr, w, r, user.RoleCustomer)
	if !ok {
		return
	}
	defer conn.Close()
	defer socket.forget(conn)

	bookingID := r.PathValue("booking_id")
	ctx := socket.logger.WithBookingID(r.Context(), bookingID)

	run, err := socket.starter.StartCheckout(ctx, bookingID)
	if err != nil {
		socket.logger.Error(ctx, "checkout_start_failed", "Failed to start checkout run", err,
			map[string]any{"user_id": claims.Subject})
		_ = socket.writeJSON(conn, map[string]any{"type": "error", "error": "unknown booking"})
		socket.writeClose(conn, websocket.ClosePolicyViolation, "unknown booking")
		return
	}
	defer run.Stop()

	socket.logger.Info(ctx, "checkout_ws_connected", "Checkout progress stream opened",
		map[string]any{"user_id": claims.Subject})

	// drain reads so client-initiated close is noticed; any read error
	// cancels the run via closed
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			socket.logger.Info(ctx, "checkout_ws_abandoned", "Client left before checkout finished", nil)
			return

		case ev, ok := <-run.Events():
			if !ok {
				socket.writeClose(conn, websocket.CloseNormalClosure, "checkout finished")
				return
			}
			if err := socket.writeJSON(conn, ev); err != nil {
				socket.logger.Error(ctx, "checkout_ws_write_failed", "Failed to push progress frame", err, nil)
				return
			}
		}
	}
}
