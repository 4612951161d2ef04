package price

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tickergate/tickergate/internal/dependencies/clock"
)

// Direction describes how a quote moved relative to the previous reading
type Direction string

const (
	DirectionNone Direction = ""
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Snapshot is the ticker state pushed to listeners on every tick
type Snapshot struct {
	Quote        Quote
	USDDirection Direction
	INRDirection Direction
	// UpdatedAt is the time of the last successful fetch
	UpdatedAt time.Time
	// Countdown is the number of seconds until the next refresh
	Countdown int
	// Failed is set when the most recent fetch did not succeed
	Failed bool
	// Live is set once at least one fetch has succeeded
	Live bool
}

// Listener receives a snapshot after every tick and every fetch
type Listener func(Snapshot)

// Fetcher retrieves the current quote from the upstream feed
type Fetcher interface {
	Fetch(ctx context.Context) (Quote, error)
}

// Config holds configuration for the polling ticker
type Config struct {
	// RefreshInterval is how often a fresh quote is fetched
	RefreshInterval time.Duration
	// TickInterval is the countdown granularity
	TickInterval time.Duration
}

// DefaultConfig returns default ticker configuration
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 10 * time.Second,
		TickInterval:    time.Second,
	}
}

// Ticker polls the price feed on a fixed interval and fans snapshots out to
// listeners. At most one polling loop is live at a time: Start tears down any
// previous loop before launching a new one.
type Ticker struct {
	fetcher Fetcher
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger

	mu        sync.Mutex
	snapshot  Snapshot
	listeners []Listener
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewTicker creates a stopped Ticker
func NewTicker(fetcher Fetcher, clk clock.Clock, cfg Config, logger *slog.Logger) *Ticker {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultConfig().RefreshInterval
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	return &Ticker{
		fetcher: fetcher,
		clock:   clk,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "price")),
	}
}

// Subscribe registers a listener for snapshot updates. Listeners are called
// sequentially from the polling goroutine and should not block.
func (t *Ticker) Subscribe(listener Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener)
}

// Snapshot returns the current ticker state
func (t *Ticker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot
}

// Running reports whether a polling loop is live
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Start launches the polling loop: an immediate fetch, then a refresh every
// RefreshInterval with a countdown broadcast every TickInterval. Calling
// Start while a loop is live restarts it.
func (t *Ticker) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	// Install the new loop handles and capture the old ones in one critical
	// section, so concurrent Starts each tear down exactly one predecessor
	// and only one loop survives.
	t.mu.Lock()
	oldCancel, oldDone := t.cancel, t.done
	t.cancel = cancel
	t.done = done
	t.mu.Unlock()

	if oldCancel != nil {
		oldCancel()
		<-oldDone
	}

	t.logger.Info("ticker started")
	go t.run(loopCtx, done)
}

// Stop tears down the polling loop and waits for it to exit. Stopping a
// stopped ticker is a no-op. The last snapshot is retained.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	t.logger.Info("ticker stopped")
}

func (t *Ticker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticksPerRefresh := int(t.cfg.RefreshInterval / t.cfg.TickInterval)
	if ticksPerRefresh < 1 {
		ticksPerRefresh = 1
	}

	t.refresh(ctx)
	t.publish(func(s *Snapshot) {
		s.Countdown = ticksPerRefresh
	})

	ticker := time.NewTicker(t.cfg.TickInterval)
	defer ticker.Stop()

	countdown := ticksPerRefresh
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			countdown--
			if countdown <= 0 {
				t.refresh(ctx)
				countdown = ticksPerRefresh
			}
			t.publish(func(s *Snapshot) {
				s.Countdown = countdown
			})
		}
	}
}

// refresh fetches a quote and folds it into the snapshot
func (t *Ticker) refresh(ctx context.Context) {
	quote, err := t.fetcher.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		t.logger.Warn("price fetch failed", slog.String("error", err.Error()))
		t.publish(func(s *Snapshot) {
			s.Failed = true
		})
		return
	}

	now := t.clock.Now()
	t.publish(func(s *Snapshot) {
		if s.Live {
			s.USDDirection = diff(s.Quote.USD, quote.USD, s.USDDirection)
			s.INRDirection = diff(s.Quote.INR, quote.INR, s.INRDirection)
		}
		s.Quote = quote
		s.UpdatedAt = now
		s.Failed = false
		s.Live = true
	})
}

// diff returns the movement direction, keeping the previous direction when
// the quote is unchanged
func diff(prev, next float64, current Direction) Direction {
	switch {
	case next > prev:
		return DirectionUp
	case next < prev:
		return DirectionDown
	default:
		return current
	}
}

// publish applies a mutation to the snapshot under the lock, then notifies
// listeners with the result
func (t *Ticker) publish(mutate func(*Snapshot)) {
	t.mu.Lock()
	mutate(&t.snapshot)
	snapshot := t.snapshot
	listeners := make([]Listener, len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot)
	}
}
