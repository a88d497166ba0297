package handler

import "net/http"

// ----- Handler: GET /bookings/preview/{token} -----

// handlePreview claims a hand-off token. The claim is one-shot: reloads,
// stale links, and tokens that never existed all bounce back to the map.
func (handler *BookingHTTPHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	preview, ok := handler.svc.ClaimHandoff(ctx, r.PathValue("token"))
	if !ok {
		http.Redirect(w, r, "/map", http.StatusSeeOther)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, preview)
}
