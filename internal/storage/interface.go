package storage

import (
	"context"

	"github.com/tickergate/tickergate/internal/model"
)

// Storage defines the interface for data persistence.
//
// The account collection is read and written as a whole (read-modify-write
// on every signup); the session is a single slot with overwrite semantics.
// Reads are total: a missing or corrupt persisted payload is reported as
// empty/absent, never as a decode error.
type Storage interface {
	// Account operations
	ListAccounts(ctx context.Context) ([]model.Account, error)
	SaveAccounts(ctx context.Context, accounts []model.Account) error
	// FindAccount looks up an account by normalized email.
	// Returns model.ErrAccountNotFound when absent.
	FindAccount(ctx context.Context, email string) (*model.Account, error)

	// Session slot operations
	// GetSession returns model.ErrSessionNotFound when the slot is empty.
	GetSession(ctx context.Context) (*model.Session, error)
	SetSession(ctx context.Context, session *model.Session) error
	ClearSession(ctx context.Context) error
}

// FindInAccounts scans a collection for the account with the given
// normalized email. Shared by adapters: lookup is a linear scan over the
// whole collection, there is no secondary index.
func FindInAccounts(accounts []model.Account, email string) (*model.Account, error) {
	for i := range accounts {
		if accounts[i].Email == email {
			account := accounts[i]
			return &account, nil
		}
	}
	return nil, model.ErrAccountNotFound
}
