package uow

import (
	"context"

	"cvmatch/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository       *user.FakeUserRepository
	SessionRepository    *user.FakeSessionRepository
	ResetTokenRepository *user.FakeResetTokenRepository
	WasRollbackCalled    bool
	WasCommitCalled      bool
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	sessionRepository *user.FakeSessionRepository,
	resetTokenRepository *user.FakeResetTokenRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:       userRepository,
		SessionRepository:    sessionRepository,
		ResetTokenRepository: resetTokenRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Sessions() user.SessionRepository {
	return c.SessionRepository
}

func (c *FakeUnitOfWorkContext) ResetTokens() user.ResetTokenRepository {
	return c.ResetTokenRepository
}

type FakeUnitOfWork struct {
	Context *FakeUnitOfWorkContext
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	userRepository := user.NewFakeUserRepository()
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			userRepository,
			user.NewFakeSessionRepository(userRepository),
			user.NewFakeResetTokenRepository(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	return u.Context, nil
}
