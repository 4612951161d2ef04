package sse

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/tickergate/tickergate/internal/services/price"
	"github.com/tickergate/tickergate/internal/web/templates/components"
)

// Event names pushed over the dashboard stream
const (
	EventPriceUpdate = "price-update"
)

// Broadcaster pushes rendered price card updates to SSE clients. Wire it to
// the ticker with Listen: every snapshot becomes a price-update event whose
// data is the full card HTML, swapped in wholesale by the dashboard script.
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Listen returns a ticker listener that broadcasts each snapshot
func (b *Broadcaster) Listen() price.Listener {
	return func(snapshot price.Snapshot) {
		b.BroadcastSnapshot(context.Background(), snapshot)
	}
}

// BroadcastSnapshot renders the price card for a snapshot and broadcasts it
func (b *Broadcaster) BroadcastSnapshot(ctx context.Context, snapshot price.Snapshot) {
	html, err := RenderPriceCard(ctx, snapshot)
	if err != nil {
		b.logger.Error("sse failed to render price card", slog.Any("error", err))
		return
	}
	b.hub.BroadcastEvent(EventPriceUpdate, html)
}

// RenderPriceCard renders the price card component as HTML
func RenderPriceCard(ctx context.Context, snapshot price.Snapshot) (string, error) {
	var buf bytes.Buffer
	if err := components.PriceCard(snapshot).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
