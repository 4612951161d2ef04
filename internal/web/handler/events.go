package handler

import (
	"net/http"

	"github.com/tickergate/tickergate/internal/web/middleware"
	"github.com/tickergate/tickergate/internal/web/sse"
)

// EventsHandler serves the dashboard's live update stream
type EventsHandler struct {
	hub *sse.Hub
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(hub *sse.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
	}
}

// Events handles the SSE connection for price updates
func (h *EventsHandler) Events(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())
	sse.ServeSSE(w, r, h.hub, email)
}
