package handler

import (
	"errors"
	"net/http"

	"zorp/internal/domain/trip"
	"zorp/internal/software/trip/service"
)

// ----- Handler: GET /trips -----

func (handler *TripHTTPHandler) handleOngoingTrips(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	trips, err := handler.svc.OngoingTrips(ctx, subjectOf(r))
	if err != nil {
		handler.httpError(ctx, w, http.StatusInternalServerError, "failed to load trips", err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, map[string]any{"trips": trips})
}

// ----- Handler: POST /trips/{trip_id}/release -----

func (handler *TripHTTPHandler) handleReleasePayment(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	res, err := handler.svc.ReleasePayment(ctx, subjectOf(r), r.PathValue("trip_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			handler.httpError(ctx, w, http.StatusNotFound, "trip not found", err)
		case errors.Is(err, trip.ErrAlreadyReleased):
			handler.httpError(ctx, w, http.StatusConflict, "payment already released", err)
		case errors.Is(err, trip.ErrNotPaid):
			handler.httpError(ctx, w, http.StatusBadRequest, "payment is not completed yet", err)
		default:
			handler.httpError(ctx, w, http.StatusInternalServerError, "failed to release payment", err)
		}
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, res)
}
