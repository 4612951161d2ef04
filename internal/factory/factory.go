package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tickergate/tickergate/internal/dependencies/clock"
	"github.com/tickergate/tickergate/internal/dependencies/random"
	"github.com/tickergate/tickergate/internal/services/auth"
	"github.com/tickergate/tickergate/internal/services/gate"
	"github.com/tickergate/tickergate/internal/services/price"
	"github.com/tickergate/tickergate/internal/storage"
	"github.com/tickergate/tickergate/internal/storage/memory"
	redisstorage "github.com/tickergate/tickergate/internal/storage/redis"
	"github.com/tickergate/tickergate/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService *auth.Service
	Ticker      *price.Ticker
	SessionGate *gate.Gate
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// PriceConfig holds ticker intervals (optional)
	// If zero value, defaults to price.DefaultConfig()
	PriceConfig price.Config
	// PriceFeedURL overrides the upstream price feed endpoint (optional)
	PriceFeedURL string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	fetcher := price.NewClient(cfg.PriceFeedURL)

	return newWithDependencies(store, clk, rnd, fetcher, cfg.AuthConfig, cfg.PriceConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	fetcher price.Fetcher,
	authCfg auth.Config,
	priceCfg price.Config,
	logger *slog.Logger,
) *App {
	authService := auth.New(store, clk, rnd, authCfg, logger)

	hub := sse.NewHub(logger)
	go hub.Run()

	broadcaster := sse.NewBroadcaster(hub, logger)

	ticker := price.NewTicker(fetcher, clk, priceCfg, logger)
	ticker.Subscribe(broadcaster.Listen())

	// The ticker runs only while the gate is open
	sessionGate := gate.New(authService, logger, ticker)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		AuthService: authService,
		Ticker:      ticker,
		SessionGate: sessionGate,
		Hub:         hub,
		Broadcaster: broadcaster,
	}
}

// Close releases the app's background resources: the polling loop, the SSE
// hub and (when the backend holds connections) the storage layer.
func (a *App) Close() error {
	a.Ticker.Stop()
	a.Hub.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
