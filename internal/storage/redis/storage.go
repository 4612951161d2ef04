package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tickergate/tickergate/internal/model"
	"github.com/tickergate/tickergate/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) ListAccounts(ctx context.Context) ([]model.Account, error) {
	data, err := s.client.Get(ctx, usersKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.Account{}, nil
		}
		return nil, err
	}
	return decodeAccounts(data), nil
}

func (s *Storage) SaveAccounts(ctx context.Context, accounts []model.Account) error {
	if accounts == nil {
		accounts = []model.Account{}
	}
	data, err := json.Marshal(accounts)
	if err != nil {
		return err
	}

	// Whole-collection overwrite; a Redis SET is atomic at the storage layer
	return s.client.Set(ctx, usersKey, data, 0).Err()
}

func (s *Storage) FindAccount(ctx context.Context, email string) (*model.Account, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return storage.FindInAccounts(accounts, email)
}

// Session slot operations

func (s *Storage) GetSession(ctx context.Context) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	session, ok := decodeSession(data)
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) SetSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// Unconditional overwrite of any prior session
	return s.client.Set(ctx, sessionKey, data, 0).Err()
}

func (s *Storage) ClearSession(ctx context.Context) error {
	return s.client.Del(ctx, sessionKey).Err()
}

// decodeAccounts parses the stored account collection. A corrupt payload
// collapses to an empty collection at this boundary: the read stays total
// and the caller never sees a parse error.
func decodeAccounts(data []byte) []model.Account {
	var accounts []model.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return []model.Account{}
	}
	if accounts == nil {
		accounts = []model.Account{}
	}
	return accounts
}

// decodeSession parses the stored session slot, collapsing corrupt payloads
// to absent under the same policy as decodeAccounts.
func decodeSession(data []byte) (*model.Session, bool) {
	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false
	}
	return &session, true
}
