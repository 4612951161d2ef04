package factory

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tickergate/tickergate/internal/dependencies/mocks"
	"github.com/tickergate/tickergate/internal/services/auth"
	"github.com/tickergate/tickergate/internal/services/price"
	"github.com/tickergate/tickergate/internal/storage/memory"
)

// StubFetcher serves a controllable quote instead of hitting the real feed
type StubFetcher struct {
	mu    sync.Mutex
	quote price.Quote
	err   error
}

// NewStubFetcher creates a StubFetcher with an initial quote
func NewStubFetcher(quote price.Quote) *StubFetcher {
	return &StubFetcher{quote: quote}
}

// SetQuote changes the quote returned by subsequent fetches
func (f *StubFetcher) SetQuote(quote price.Quote) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quote = quote
	f.err = nil
}

// SetError makes subsequent fetches fail
func (f *StubFetcher) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Fetch implements price.Fetcher
func (f *StubFetcher) Fetch(ctx context.Context) (price.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return price.Quote{}, f.err
	}
	return f.quote, nil
}

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockRandom  *mocks.MockRandom
	StubFetcher *StubFetcher
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	stubFetcher := NewStubFetcher(price.Quote{USD: 2000, INR: 166000})
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		stubFetcher,
		auth.DefaultConfig(),
		price.DefaultConfig(),
		logger,
	)

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		StubFetcher: stubFetcher,
	}
}
