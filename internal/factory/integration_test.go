package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tickergate/tickergate/internal/model"
	"github.com/tickergate/tickergate/internal/services/gate"
	"github.com/tickergate/tickergate/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.Require().NoError(s.app.Close())
}

// Test: full account lifecycle from signup through restart to logout
func (s *IntegrationSuite) TestAccountLifecycle() {
	// Step 1: Sign up, which also establishes a session
	session, err := s.app.AuthService.Signup(s.ctx, "Alice@Example.com", "hunter2", "hunter2")
	s.Require().NoError(err)
	s.Equal("alice@example.com", session.Email)

	// Step 2: Open the gate as the web handler would after signup
	s.app.SessionGate.Authenticate(s.ctx, session.Email)
	s.Equal(gate.StateAuthenticated, s.app.SessionGate.State())
	s.True(s.app.Ticker.Running())

	// Step 3: A "restart" builds a fresh gate over the same storage and
	// restores the persisted session
	restored := gate.New(s.app.AuthService, testutil.NopLogger(), s.app.Ticker)
	s.Require().NoError(restored.Restore(s.ctx))
	s.Equal(gate.StateAuthenticated, restored.State())
	s.Equal("alice@example.com", restored.Email())

	// Step 4: Log out; the session slot clears and the ticker stops
	s.Require().NoError(restored.Logout(s.ctx))
	s.Equal(gate.StateUnauthenticated, restored.State())
	s.False(s.app.Ticker.Running())

	_, err = s.app.Storage.GetSession(s.ctx)
	s.ErrorIs(err, model.ErrSessionNotFound)

	// The credential record survives logout
	account, err := s.app.Storage.FindAccount(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal("alice@example.com", account.Email)
}

// Test: login after logout reuses the stored credential record
func (s *IntegrationSuite) TestLoginAfterLogout() {
	_, err := s.app.AuthService.Signup(s.ctx, "a@b.com", "abcdef", "abcdef")
	s.Require().NoError(err)
	s.Require().NoError(s.app.SessionGate.Logout(s.ctx))

	_, err = s.app.AuthService.Login(s.ctx, "a@b.com", "wrong-password")
	s.ErrorIs(err, model.ErrWrongSecret)

	session, err := s.app.AuthService.Login(s.ctx, "a@b.com", "abcdef")
	s.Require().NoError(err)
	s.Equal("a@b.com", session.Email)
}

// Test: multiple accounts share the collection but the session slot is single
func (s *IntegrationSuite) TestSingleSessionSlot() {
	_, err := s.app.AuthService.Signup(s.ctx, "a@b.com", "abcdef", "abcdef")
	s.Require().NoError(err)
	_, err = s.app.AuthService.Signup(s.ctx, "c@d.com", "ghijkl", "ghijkl")
	s.Require().NoError(err)

	// The second signup overwrote the slot
	session, err := s.app.Storage.GetSession(s.ctx)
	s.Require().NoError(err)
	s.Equal("c@d.com", session.Email)

	accounts, err := s.app.Storage.ListAccounts(s.ctx)
	s.Require().NoError(err)
	s.Len(accounts, 2)
}

// Test: the default factory config builds a working app on memory storage
func (s *IntegrationSuite) TestFactoryDefaults() {
	app, err := New(Config{})
	s.Require().NoError(err)
	defer func() { s.NoError(app.Close()) }()

	_, err = app.AuthService.Signup(s.ctx, "a@b.com", "abcdef", "abcdef")
	s.Require().NoError(err)
}

// Test: unknown storage type is rejected
func (s *IntegrationSuite) TestFactoryRejectsUnknownStorage() {
	_, err := New(Config{StorageType: "postgres"})
	s.Error(err)
}

// Test: redis storage type requires a config
func (s *IntegrationSuite) TestFactoryRequiresRedisConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}
