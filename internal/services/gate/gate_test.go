package gate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tickergate/tickergate/internal/dependencies/mocks"
	"github.com/tickergate/tickergate/internal/model"
	"github.com/tickergate/tickergate/internal/services/auth"
	"github.com/tickergate/tickergate/internal/storage/memory"
	"github.com/tickergate/tickergate/internal/testutil"
)

// fakeCollaborator records lifecycle calls
type fakeCollaborator struct {
	starts int
	stops  int
}

func (f *fakeCollaborator) Start(ctx context.Context) { f.starts++ }
func (f *fakeCollaborator) Stop()                     { f.stops++ }

type GateSuite struct {
	suite.Suite
	storage      *memory.Storage
	authService  *auth.Service
	collaborator *fakeCollaborator
	gate         *Gate
	ctx          context.Context
}

func TestGateSuite(t *testing.T) {
	suite.Run(t, new(GateSuite))
}

func (s *GateSuite) SetupTest() {
	s.storage = memory.New()
	s.authService = auth.New(
		s.storage,
		mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		mocks.NewMockRandom(),
		auth.DefaultConfig(),
		testutil.NopLogger(),
	)
	s.collaborator = &fakeCollaborator{}
	s.gate = New(s.authService, testutil.NopLogger(), s.collaborator)
	s.ctx = context.Background()
}

func (s *GateSuite) TestStartsUnauthenticated() {
	s.Equal(StateUnauthenticated, s.gate.State())
	s.Empty(s.gate.Email())
	s.Zero(s.collaborator.starts)
}

func (s *GateSuite) TestAuthenticateOpensGate() {
	s.gate.Authenticate(s.ctx, "a@b.com")

	s.Equal(StateAuthenticated, s.gate.State())
	s.Equal("a@b.com", s.gate.Email())
	s.Equal(1, s.collaborator.starts)
}

func (s *GateSuite) TestAuthenticateIsIdempotent() {
	s.gate.Authenticate(s.ctx, "a@b.com")
	s.gate.Authenticate(s.ctx, "a@b.com")

	s.Equal(StateAuthenticated, s.gate.State())
	// Each call restarts the collaborators rather than stacking workers
	s.Equal(2, s.collaborator.starts)
}

func (s *GateSuite) TestLogoutClosesGateAndClearsSession() {
	_, err := s.authService.Signup(s.ctx, "a@b.com", "abcdef", "abcdef")
	s.Require().NoError(err)
	s.gate.Authenticate(s.ctx, "a@b.com")

	s.Require().NoError(s.gate.Logout(s.ctx))

	s.Equal(StateUnauthenticated, s.gate.State())
	s.Empty(s.gate.Email())
	s.Equal(1, s.collaborator.stops)

	_, err = s.storage.GetSession(s.ctx)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *GateSuite) TestLogoutWhenClosedIsHarmless() {
	s.Require().NoError(s.gate.Logout(s.ctx))
	s.Equal(StateUnauthenticated, s.gate.State())
}

func (s *GateSuite) TestRestoreWithNoSessionStaysClosed() {
	s.Require().NoError(s.gate.Restore(s.ctx))

	s.Equal(StateUnauthenticated, s.gate.State())
	s.Zero(s.collaborator.starts)
}

func (s *GateSuite) TestRestoreWithPersistedSessionOpensGate() {
	_, err := s.authService.Signup(s.ctx, "a@b.com", "abcdef", "abcdef")
	s.Require().NoError(err)

	restored := New(s.authService, testutil.NopLogger(), s.collaborator)
	s.Require().NoError(restored.Restore(s.ctx))

	s.Equal(StateAuthenticated, restored.State())
	s.Equal("a@b.com", restored.Email())
	s.Equal(1, s.collaborator.starts)
}

func (s *GateSuite) TestRestoreTrustsDanglingSession() {
	// A session email without a matching account record still opens the gate
	err := s.storage.SetSession(s.ctx, &model.Session{
		Email:         "ghost@b.com",
		EstablishedAt: model.NewUnixMilli(time.Now()),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.gate.Restore(s.ctx))
	s.Equal(StateAuthenticated, s.gate.State())
	s.Equal("ghost@b.com", s.gate.Email())
}

func (s *GateSuite) TestRestoreIgnoresEmptyEmail() {
	err := s.storage.SetSession(s.ctx, &model.Session{
		Email:         "",
		EstablishedAt: model.NewUnixMilli(time.Now()),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.gate.Restore(s.ctx))
	s.Equal(StateUnauthenticated, s.gate.State())
	s.Zero(s.collaborator.starts)
}
