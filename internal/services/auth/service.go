package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/tickergate/tickergate/internal/dependencies/clock"
	"github.com/tickergate/tickergate/internal/dependencies/random"
	"github.com/tickergate/tickergate/internal/model"
	"github.com/tickergate/tickergate/internal/storage"
)

// Service orchestrates the signup and login flows: input validation,
// credential lookup, digest verification and the session slot write.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	cfg     Config
	logger  *slog.Logger
}

// Config holds configuration for the auth service
type Config struct {
	// MinSecretLen is the minimum password length accepted at signup
	MinSecretLen int
	// SaltBytes is the entropy of each per-account salt
	SaltBytes int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		MinSecretLen: 6,
		SaltBytes:    16,
	}
}

// New creates a new auth Service
func New(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.MinSecretLen == 0 {
		cfg.MinSecretLen = DefaultConfig().MinSecretLen
	}
	if cfg.SaltBytes == 0 {
		cfg.SaltBytes = DefaultConfig().SaltBytes
	}
	return &Service{
		storage: store,
		clock:   clk,
		random:  rnd,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "auth")),
	}
}

// Signup registers a new account and establishes a session for it.
//
// Validation runs in order and short-circuits on the first failure:
// missing credentials, secret too short, confirmation mismatch, then
// duplicate account. On success the account is appended to the collection
// (whole-collection read-modify-write) and the session slot is overwritten.
func (s *Service) Signup(ctx context.Context, email, secret, confirm string) (*model.Session, error) {
	email = model.NormalizeEmail(email)

	if email == "" || secret == "" {
		return nil, model.ErrMissingCredentials
	}
	if len(secret) < s.cfg.MinSecretLen {
		return nil, model.ErrSecretTooShort
	}
	if secret != confirm {
		return nil, model.ErrSecretMismatch
	}

	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := storage.FindInAccounts(accounts, email); err == nil {
		return nil, model.ErrAccountExists
	}

	// Per-account salt from crypto/rand; the digest is all that is stored
	salt := s.random.Hex(s.cfg.SaltBytes)
	now := s.clock.Now()

	accounts = append(accounts, model.Account{
		Email:        email,
		Salt:         salt,
		PasswordHash: Digest(salt, secret),
		CreatedAt:    model.NewUnixMilli(now),
	})

	if err := s.storage.SaveAccounts(ctx, accounts); err != nil {
		return nil, err
	}

	s.logger.Info("account created", slog.String("email", email))

	return s.establishSession(ctx, email)
}

// Login verifies a secret against the stored credential record and
// establishes a session. "No account" and "wrong secret" are reported as
// distinct errors.
func (s *Service) Login(ctx context.Context, email, secret string) (*model.Session, error) {
	email = model.NormalizeEmail(email)

	account, err := s.storage.FindAccount(ctx, email)
	if err != nil {
		return nil, err
	}

	computed := Digest(account.Salt, secret)
	if subtle.ConstantTimeCompare([]byte(computed), []byte(account.PasswordHash)) != 1 {
		return nil, model.ErrWrongSecret
	}

	return s.establishSession(ctx, email)
}

// Logout clears the session slot
func (s *Service) Logout(ctx context.Context) error {
	return s.storage.ClearSession(ctx)
}

// CurrentSession returns the session slot, or model.ErrSessionNotFound when
// nobody is authenticated.
func (s *Service) CurrentSession(ctx context.Context) (*model.Session, error) {
	return s.storage.GetSession(ctx)
}

func (s *Service) establishSession(ctx context.Context, email string) (*model.Session, error) {
	session := &model.Session{
		Email:         email,
		EstablishedAt: model.NewUnixMilli(s.clock.Now()),
	}
	if err := s.storage.SetSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
