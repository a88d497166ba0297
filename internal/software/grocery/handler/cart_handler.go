package handler

import (
	"context"
	"errors"
	"net/http"

	"zorp/internal/domain/cart"
	"zorp/internal/ports"
	"zorp/internal/software/grocery/service"
)

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ----- Handler: GET /products -----

func (handler *GroceryHTTPHandler) handleProducts(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	products := handler.svc.Products(ctx)

	handler.jsonResponse(ctx, w, http.StatusOK, map[string]any{"products": products})
}

// ----- Handler: GET /cart -----

func (handler *GroceryHTTPHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	view, err := handler.svc.GetCart(ctx, subjectOf(r))
	if err != nil {
		handler.cartError(ctx, w, err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, view)
}

// ----- Handler: POST /cart/items -----

func (handler *GroceryHTTPHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req addItemRequest
	if err := handler.decodeJSON(w, r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	view, err := handler.svc.AddItem(ctx, subjectOf(r), req.ProductID)
	if err != nil {
		handler.cartError(ctx, w, err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, view)
}

// ----- Handler: PATCH /cart/items/{product_id} -----

func (handler *GroceryHTTPHandler) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req updateQuantityRequest
	if err := handler.decodeJSON(w, r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	view, err := handler.svc.UpdateQuantity(ctx, subjectOf(r), ports.UpdateQuantityInput{
		ProductID: r.PathValue("product_id"),
		Quantity:  req.Quantity,
	})
	if err != nil {
		handler.cartError(ctx, w, err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, view)
}

// ----- Handler: DELETE /cart/items/{product_id} -----

func (handler *GroceryHTTPHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	view, err := handler.svc.RemoveItem(ctx, subjectOf(r), r.PathValue("product_id"))
	if err != nil {
		handler.cartError(ctx, w, err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, view)
}

// cartError maps cart failures onto HTTP statuses.
func (handler *GroceryHTTPHandler) cartError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrItemNotFound):
		handler.httpError(ctx, w, http.StatusNotFound, "item is not in the cart", err)
	case errors.Is(err, service.ErrUnknownProduct):
		handler.httpError(ctx, w, http.StatusBadRequest, "unknown product", err)
	case errors.Is(err, cart.ErrNegativeQuantity):
		handler.httpError(ctx, w, http.StatusBadRequest, "quantity must not be negative", err)
	default:
		handler.httpError(ctx, w, http.StatusInternalServerError, "cart operation failed", err)
	}
}
