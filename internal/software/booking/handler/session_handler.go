package handler

import (
	"context"
	"errors"
	"net/http"

	"zorp/internal/domain/booking"
	"zorp/internal/domain/catalog"
	"zorp/internal/ports"
	"zorp/internal/software/booking/service"
)

type preferencesRequest struct {
	Passengers  int     `json:"passengers"`
	RideType    string  `json:"ride_type"`
	Destination *string `json:"destination"`
	Pickup      *string `json:"pickup"`
}

type friendRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type selectRideRequest struct {
	OptionID string `json:"option_id"`
}

type confirmRequest struct {
	Tab string `json:"tab"`
}

type prefillRequest struct {
	RecordID string `json:"record_id"`
}

// ----- Handler: POST /bookings -----

func (handler *BookingHTTPHandler) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	view, err := handler.svc.OpenSession(ctx, subjectOf(r))
	if err != nil {
		handler.httpError(ctx, w, http.StatusInternalServerError, "failed to open booking session", err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusCreated, view)
}

// ----- Handler: GET /bookings/sessions/{session_id} -----

func (handler *BookingHTTPHandler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	view, err := handler.svc.GetSession(ctx, subjectOf(r), r.PathValue("session_id"))
	if err != nil {
		handler.sessionError(ctx, w, err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, view)
}

// ----- Handler: PATCH /bookings/sessions/{session_id}/preferences -----

func (handler *BookingHTTPHandler) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req preferencesRequest
	if err := handler.decodeJSON(w, r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	view, err := handler.svc.UpdatePreferences(ctx, subjectOf(r), ports.UpdatePreferencesInput{
		SessionID:   r.PathValue("session_id"),
		Passengers:  req.Passengers,
		RideClass:   req.RideType,
		Destination: req.Destination,
		Pickup:      req.Pickup,
	})
	if err != nil {
		handler.sessionError(ctx, w, err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, view)
}

// ----- Handler: PUT /bookings/sessions/{session_id}/friend -----

func (handler *BookingHTTPHandler) handleSetFriend(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req friendRequest
	if err := handler.decodeJSON(w, r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	view, err := handler.svc.SetFriendDetails(ctx, subjectOf(r), ports.FriendDetailsInput{
		SessionID: r.PathValue("session_id"),
		Name:      req.Name,
		Phone:     req.Phone,
	})
	if err != nil {
		handler.sessionError(ctx, w, err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, view)
}

// ----- Handler: POST /bookings/sessions/{session_id}/select -----

func (handler *BookingHTTPHandler) handleSelectRide(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req selectRideRequest
	if err := handler.decodeJSON(w, r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	view, err := handler.svc.SelectRide(ctx, subjectOf(r), r.PathValue("session_id"), req.OptionID)
	if err != nil {
		handler.sessionError(ctx, w, err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, view)
}

// ----- Handler: POST /bookings/sessions/{session_id}/confirm -----

func (handler *BookingHTTPHandler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req confirmRequest
	if err := handler.decodeJSON(w, r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	res, err := handler.svc.ConfirmBooking(ctx, subjectOf(r), ports.ConfirmBookingInput{
		SessionID: r.PathValue("session_id"),
		Tab:       req.Tab,
	})
	if err != nil {
		handler.sessionError(ctx, w, err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusCreated, res)
}

// ----- Handler: POST /bookings/prefill -----

func (handler *BookingHTTPHandler) handlePrefill(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req prefillRequest
	if err := handler.decodeJSON(w, r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	view, err := handler.svc.PrefillFromHistory(ctx, subjectOf(r), req.RecordID)
	if err != nil {
		handler.sessionError(ctx, w, err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, view)
}

// sessionError maps session and domain failures to HTTP statuses.
func (handler *BookingHTTPHandler) sessionError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrHistoryNotFound):
		handler.httpError(ctx, w, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, service.ErrNotSessionOwner):
		handler.httpError(ctx, w, http.StatusForbidden, err.Error(), err)
	case errors.Is(err, booking.ErrSessionClosed):
		handler.httpError(ctx, w, http.StatusConflict, err.Error(), err)
	case errors.Is(err, booking.ErrInvalidPassengerCount),
		errors.Is(err, booking.ErrNoRideSelected),
		errors.Is(err, booking.ErrFriendDetailsRequired),
		errors.Is(err, booking.ErrInvalidTab),
		errors.Is(err, catalog.ErrInvalidRideClass),
		errors.Is(err, service.ErrUnknownOption):
		handler.httpError(ctx, w, http.StatusBadRequest, err.Error(), err)
	default:
		handler.httpError(ctx, w, http.StatusInternalServerError, "internal error", err)
	}
}
