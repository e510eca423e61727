package resetpassword

import (
	"context"
	"errors"
	"time"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/logging"
	uow "cvmatch/internal/core/domain/unit_of_work"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
)

type Input struct {
	Token       user.RawResetToken
	NewPassword user.RawPassword
}

type Result struct {
	SessionToken user.SessionToken
}

type service struct {
	log                   logging.Logger
	resetTokenRepository  user.ResetTokenRepository
	tokenHasher           user.ResetTokenHasher
	passwordHasher        user.PasswordHasher
	sessionTokenGenerator user.SessionTokenGenerator
	unitOfWork            uow.UnitOfWork
	now                   func() time.Time
}

func New(
	log logging.Logger,
	resetTokenRepository user.ResetTokenRepository,
	tokenHasher user.ResetTokenHasher,
	passwordHasher user.PasswordHasher,
	sessionTokenGenerator user.SessionTokenGenerator,
	unitOfWork uow.UnitOfWork,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if resetTokenRepository == nil {
		panic(e.NewNilArgumentError("resetTokenRepository"))
	}
	if tokenHasher == nil {
		panic(e.NewNilArgumentError("tokenHasher"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionTokenGenerator == nil {
		panic(e.NewNilArgumentError("sessionTokenGenerator"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                   log,
		resetTokenRepository:  resetTokenRepository,
		tokenHasher:           tokenHasher,
		passwordHasher:        passwordHasher,
		sessionTokenGenerator: sessionTokenGenerator,
		unitOfWork:            unitOfWork,
		now:                   now,
	}
}

// Run verifies a raw reset token against the stored hashes, and on a match
// sets the new password, deletes every reset token of that user and creates
// a session, all within one transaction. "No such token", "hash mismatch"
// and "expired" collapse into the same ErrInvalidResetToken.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	activeTokens, err := s.resetTokenRepository.ListActive(ctx, s.now())
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not list active reset tokens.", logging.Entry("err", err))
		return result, err
	}

	var matched *user.ResetToken
	for ix := range activeTokens {
		if s.tokenHasher.ValidateToken(input.Token, activeTokens[ix].TokenHash) {
			matched = &activeTokens[ix]
			break
		}
	}
	if matched == nil {
		s.log.Info(ctx, "Password reset attempted with invalid or expired token.")
		return result, user.ErrInvalidResetToken
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not hash new password.",
			logging.Entry("userID", matched.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	err = uow.Users().SetPassword(ctx, matched.UserID, newPasswordHash)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", matched.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// All rows go, not just the matched one: a concurrently issued second
	// token must not survive consumption.
	err = uow.ResetTokens().DeleteForUser(ctx, matched.UserID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not delete reset tokens.",
			logging.Entry("userID", matched.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	sessionToken := s.sessionTokenGenerator.GenerateToken()
	err = uow.Sessions().Create(ctx, user.CreateSessionInput{
		UserID:    matched.UserID,
		Token:     sessionToken,
		CreatedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not create session after password reset.",
			logging.Entry("userID", matched.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(ctx, "Could not commit unit of work.", logging.Entry("err", err))
		return result, err
	}

	s.log.Info(
		ctx,
		"Password has been reset, new session created.",
		logging.Entry("userID", matched.UserID),
	)
	return Result{SessionToken: sessionToken}, nil
}
