package handler

import (
	"net/http"

	"github.com/tickergate/tickergate/internal/services/price"
	"github.com/tickergate/tickergate/internal/web/middleware"
	"github.com/tickergate/tickergate/internal/web/templates/layout"
	"github.com/tickergate/tickergate/internal/web/templates/pages"
)

// HomeHandler handles the home page: the auth card when signed out, the
// price dashboard when signed in
type HomeHandler struct {
	ticker *price.Ticker
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(ticker *price.Ticker) *HomeHandler {
	return &HomeHandler{
		ticker: ticker,
	}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())
	flash := middleware.GetFlash(r.Context())

	tab := r.URL.Query().Get("tab")
	if tab != pages.TabSignup {
		tab = pages.TabLogin
	}

	title := "Welcome"
	if email != "" {
		title = "Dashboard"
	}

	data := pages.HomeData{
		PageData: layout.PageData{
			Title: title,
			Email: email,
			Flash: flash,
		},
		Tab: tab,
	}
	if email != "" {
		data.Snapshot = h.ticker.Snapshot()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
