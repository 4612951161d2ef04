package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tickergate/tickergate/internal/services/auth"
	"github.com/tickergate/tickergate/internal/services/gate"
	"github.com/tickergate/tickergate/internal/services/price"
	"github.com/tickergate/tickergate/internal/web/handler"
	"github.com/tickergate/tickergate/internal/web/middleware"
	"github.com/tickergate/tickergate/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	SessionGate *gate.Gate
	Ticker      *price.Ticker
	Hub         *sse.Hub
	StaticDir   string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.SessionGate)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.SessionGate)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	homeHandler := handler.NewHomeHandler(cfg.Ticker)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.SessionGate)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Home shows the auth card or the dashboard depending on gate state
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)

	// Auth actions (no auth required)
	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.Use(flashMiddleware)
	authRoutes.Use(optionalAuthMiddleware)
	authRoutes.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes (require an open gate)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/events", eventsHandler.Events).Methods(http.MethodGet)

	return r
}
