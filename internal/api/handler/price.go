package handler

import (
	"net/http"

	"github.com/tickergate/tickergate/internal/api/response"
	"github.com/tickergate/tickergate/internal/services/price"
)

// PriceHandler handles the price endpoint
type PriceHandler struct {
	ticker *price.Ticker
}

// NewPriceHandler creates a new price handler
func NewPriceHandler(ticker *price.Ticker) *PriceHandler {
	return &PriceHandler{
		ticker: ticker,
	}
}

// Get handles GET /api/v1/price
func (h *PriceHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.PriceFromSnapshot(h.ticker.Snapshot()))
}
