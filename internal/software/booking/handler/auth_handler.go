package handler

import (
	"errors"
	"net/http"

	"zorp/internal/domain/user"
	"zorp/internal/ports"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type setRoleRequest struct {
	Role string `json:"role"`
}

// ----- Handler: POST /auth/login -----

func (handler *BookingHTTPHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req loginRequest
	if err := handler.decodeJSON(w, r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	res, err := handler.identity.Login(ctx, ports.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, res)
}

// ----- Handler: POST /auth/signup -----

func (handler *BookingHTTPHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req signupRequest
	if err := handler.decodeJSON(w, r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	res, err := handler.identity.Signup(ctx, ports.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusCreated, res)
}

// ----- Handler: POST /auth/logout -----

func (handler *BookingHTTPHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	if err := handler.identity.Logout(ctx, subjectOf(r)); err != nil {
		handler.httpError(ctx, w, http.StatusInternalServerError, "logout failed", err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// ----- Handler: POST /auth/role -----

func (handler *BookingHTTPHandler) handleSetRole(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	var req setRoleRequest
	if err := handler.decodeJSON(w, r, &req); err != nil {
		handler.httpError(ctx, w, http.StatusBadRequest, "invalid JSON: "+err.Error(), err)
		return
	}

	res, err := handler.identity.SetRole(ctx, subjectOf(r), req.Role)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidRole):
			handler.httpError(ctx, w, http.StatusBadRequest, "role must be one of: customer, driver, vendor, admin", err)
		case errors.Is(err, user.ErrNoUser):
			handler.httpError(ctx, w, http.StatusNotFound, "user not found", err)
		default:
			handler.httpError(ctx, w, http.StatusInternalServerError, "failed to switch role", err)
		}
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, res)
}

// ----- Handler: GET /auth/me -----

func (handler *BookingHTTPHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := handler.withReqID(r.Context(), r)

	res, err := handler.identity.Current(ctx, subjectOf(r))
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			handler.httpError(ctx, w, http.StatusNotFound, "user not found", err)
			return
		}
		handler.httpError(ctx, w, http.StatusInternalServerError, "failed to load profile", err)
		return
	}

	handler.jsonResponse(ctx, w, http.StatusOK, res)
}
