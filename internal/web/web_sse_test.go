package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickergate/tickergate/internal/services/price"
)

// TestEventsStreamDeliversPriceUpdates connects to the event stream, pushes a
// snapshot through the broadcaster and checks the rendered card arrives.
func TestEventsStreamDeliversPriceUpdates(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signup("alice@example.com", "hunter2")

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ts.handler.ServeHTTP(rr, req)
	}()

	// Wait for the client to register, then broadcast
	require.Eventually(t, func() bool {
		return ts.app.Hub.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	ts.app.Broadcaster.BroadcastSnapshot(context.Background(), price.Snapshot{
		Quote:     price.Quote{USD: 2500, INR: 207500},
		Countdown: 10,
		Live:      true,
	})

	// Give the handler a moment to flush, then disconnect
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not exit after disconnect")
	}

	body := rr.Body.String()
	assert.Contains(t, body, "event: connected")
	assert.True(t, strings.Contains(body, "event: price-update"), "expected a price-update event, got: %s", body)
	assert.Contains(t, body, "$2,500.00")
}

// TestEventsStreamClosesOnDisconnect checks the client is unregistered when
// the connection drops.
func TestEventsStreamClosesOnDisconnect(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signup("alice@example.com", "hunter2")

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ts.handler.ServeHTTP(rr, req)
	}()

	require.Eventually(t, func() bool {
		return ts.app.Hub.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done

	require.Eventually(t, func() bool {
		return ts.app.Hub.ClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
