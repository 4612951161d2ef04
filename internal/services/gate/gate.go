package gate

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/tickergate/tickergate/internal/model"
)

// State is the gate's authentication state
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// SessionSource provides the persisted session slot
type SessionSource interface {
	CurrentSession(ctx context.Context) (*model.Session, error)
	Logout(ctx context.Context) error
}

// Collaborator is a background worker whose lifecycle follows the gate:
// started when the gate opens, stopped when it closes.
type Collaborator interface {
	Start(ctx context.Context)
	Stop()
}

// Gate tracks whether an authenticated session exists and drives its
// collaborators' lifecycles accordingly. The dashboard's price ticker only
// runs while someone is signed in.
type Gate struct {
	sessions      SessionSource
	collaborators []Collaborator
	logger        *slog.Logger

	mu    sync.Mutex
	state State
	email string
}

// New creates a Gate in the unauthenticated state
func New(sessions SessionSource, logger *slog.Logger, collaborators ...Collaborator) *Gate {
	return &Gate{
		sessions:      sessions,
		collaborators: collaborators,
		logger:        logger.With(slog.String("component", "gate")),
		state:         StateUnauthenticated,
	}
}

// State returns the current gate state
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Email returns the authenticated email, or "" when the gate is closed
func (g *Gate) Email() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.email
}

// Restore reads the persisted session slot and opens the gate if one exists.
// Called once at startup so a session survives a process restart. A stored
// session is trusted as-is; no revalidation against the account collection.
func (g *Gate) Restore(ctx context.Context) error {
	session, err := g.sessions.CurrentSession(ctx)
	if errors.Is(err, model.ErrSessionNotFound) {
		g.logger.Info("no session to restore")
		return nil
	}
	if err != nil {
		return err
	}
	if session.Email == "" {
		return nil
	}

	g.logger.Info("session restored", slog.String("email", session.Email))
	g.open(ctx, session.Email)
	return nil
}

// Authenticate opens the gate for the given email. Idempotent: opening an
// already-open gate just restarts the collaborators.
func (g *Gate) Authenticate(ctx context.Context, email string) {
	g.open(ctx, email)
}

// Logout clears the persisted session and closes the gate. Closing an
// already-closed gate is a no-op apart from the (idempotent) session clear.
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.sessions.Logout(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	wasOpen := g.state == StateAuthenticated
	g.state = StateUnauthenticated
	g.email = ""
	g.mu.Unlock()

	if wasOpen {
		g.logger.Info("gate closed")
	}
	for _, collaborator := range g.collaborators {
		collaborator.Stop()
	}
	return nil
}

func (g *Gate) open(ctx context.Context, email string) {
	g.mu.Lock()
	g.state = StateAuthenticated
	g.email = email
	g.mu.Unlock()

	g.logger.Info("gate opened", slog.String("email", email))

	// Collaborators outlive the request that opened the gate
	ctx = context.WithoutCancel(ctx)
	for _, collaborator := range g.collaborators {
		collaborator.Start(ctx)
	}
}
