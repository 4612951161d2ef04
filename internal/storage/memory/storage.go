package memory

import (
	"context"
	"sync"

	"github.com/tickergate/tickergate/internal/model"
	"github.com/tickergate/tickergate/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts []model.Account
	session  *model.Session
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) ListAccounts(ctx context.Context) ([]model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

func (s *Storage) SaveAccounts(ctx context.Context, accounts []model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = make([]model.Account, len(accounts))
	copy(s.accounts, accounts)
	return nil
}

func (s *Storage) FindAccount(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.FindInAccounts(s.accounts, email)
}

// Session slot operations

func (s *Storage) GetSession(ctx context.Context) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, model.ErrSessionNotFound
	}
	session := *s.session
	return &session, nil
}

func (s *Storage) SetSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.session = &copied
	return nil
}

func (s *Storage) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
