package handler

import (
	"errors"
	"net/http"
	"strconv"

	"zorp/internal/domain/catalog"
)

// ----- Handler: GET /locations/current -----

func (handler *BookingHTTPHandler) handleCurrentLocation(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)
	handler.jsonResponse(ctx, w, http.StatusOK, handler.svc.CurrentLocation(ctx))
}

// ----- Handler: GET /rides/options?passengers=N&type=basic|luxury -----

func (handler *BookingHTTPHandler) handleRideOptions(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	passengers := 0
	if raw := r.URL.Query().Get("passengers"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			handler.httpError(ctx, w, http.StatusBadRequest, "passengers must be a number", err)
			return
		}
		passengers = n
	}

	options, err := handler.svc.RideOptions(ctx, passengers, r.URL.Query().Get("type"))
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidRideClass) {
			handler.httpError(ctx, w, http.StatusBadRequest, "type must be basic or luxury", err)
			return
		}
		handler.httpError(ctx, w, http.StatusInternalServerError, "failed to list ride options", err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, map[string]any{"options": options})
}

// ----- Handler: GET /rides/history -----

func (handler *BookingHTTPHandler) handleRideHistory(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	records, err := handler.svc.RideHistory(ctx, subjectOf(r))
	if err != nil {
		handler.httpError(ctx, w, http.StatusInternalServerError, "failed to load ride history", err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, map[string]any{"rides": records})
}
