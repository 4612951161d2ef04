package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tickergate/tickergate/internal/api/apierr"
	"github.com/tickergate/tickergate/internal/api/request"
	"github.com/tickergate/tickergate/internal/api/response"
	"github.com/tickergate/tickergate/internal/services/auth"
	"github.com/tickergate/tickergate/internal/services/gate"
)

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	authService *auth.Service
	sessionGate *gate.Gate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, sessionGate *gate.Gate) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionGate: sessionGate,
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.authService.Signup(r.Context(), req.Email, req.Password, req.PasswordConfirm)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.sessionGate.Authenticate(r.Context(), session.Email)
	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.sessionGate.Authenticate(r.Context(), session.Email)
	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionGate.Logout(r.Context()); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Session handles GET /api/v1/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, err := h.authService.CurrentSession(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}
