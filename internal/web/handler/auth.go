package handler

import (
	"errors"
	"net/http"

	"github.com/tickergate/tickergate/internal/model"
	"github.com/tickergate/tickergate/internal/services/auth"
	"github.com/tickergate/tickergate/internal/services/gate"
	"github.com/tickergate/tickergate/internal/web/middleware"
	"github.com/tickergate/tickergate/internal/web/templates/layout"
	"github.com/tickergate/tickergate/internal/web/templates/pages"
)

// AuthHandler handles the signup, login and logout form actions
type AuthHandler struct {
	authService *auth.Service
	sessionGate *gate.Gate
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, sessionGate *gate.Gate) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionGate: sessionGate,
	}
}

// Signup handles the signup form submission. Validation failures re-render
// the auth card inline with the entered email preserved.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderSignupError(w, r, "Invalid form data", "")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	session, err := h.authService.Signup(r.Context(), email, password, confirm)
	if err != nil {
		h.renderSignupError(w, r, signupErrorMessage(err), email)
		return
	}

	h.sessionGate.Authenticate(r.Context(), session.Email)
	middleware.SetFlash(w, "success", "Welcome, "+session.Email+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Login handles the login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form data", "")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	session, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		h.renderLoginError(w, r, loginErrorMessage(err), email)
		return
	}

	h.sessionGate.Authenticate(r.Context(), session.Email)
	middleware.SetFlash(w, "success", "Welcome back, "+session.Email+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles logout: clears the session slot and closes the gate
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionGate.Logout(r.Context()); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, email string) {
	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "Welcome",
		},
		Tab:        pages.TabLogin,
		LoginEmail: email,
		LoginError: errorMsg,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *AuthHandler) renderSignupError(w http.ResponseWriter, r *http.Request, errorMsg, email string) {
	data := pages.HomeData{
		PageData: layout.PageData{
			Title: "Welcome",
		},
		Tab:         pages.TabSignup,
		SignupEmail: email,
		SignupError: errorMsg,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// signupErrorMessage maps a signup failure to its user-facing message
func signupErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrMissingCredentials):
		return "Email and password are required."
	case errors.Is(err, model.ErrSecretTooShort):
		return "Password must be at least 6 characters."
	case errors.Is(err, model.ErrSecretMismatch):
		return "Passwords do not match."
	case errors.Is(err, model.ErrAccountExists):
		return "Account already exists. Try logging in."
	default:
		return "Signup failed. Please try again."
	}
}

// loginErrorMessage maps a login failure to its user-facing message
func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrAccountNotFound):
		return "No account found for this email."
	case errors.Is(err, model.ErrWrongSecret):
		return "Incorrect password."
	default:
		return "Login failed. Please try again."
	}
}
