package sendpasswordresettoken

import (
	"context"
	"errors"
	"time"

	c "cvmatch/internal/core/domain/common"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/logging"
	uow "cvmatch/internal/core/domain/unit_of_work"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "forgot-password::" + string(i.Email)
}

// Result carries the raw token only so that test mode can expose it through
// a response header. The caller must never render it otherwise.
type Result struct {
	Token user.RawResetToken
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	unitOfWork     uow.UnitOfWork
	tokenGenerator user.ResetTokenGenerator
	tokenHasher    user.ResetTokenHasher
	tokenSender    user.PasswordResetTokenSender
	validDuration  time.Duration
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	unitOfWork uow.UnitOfWork,
	tokenGenerator user.ResetTokenGenerator,
	tokenHasher user.ResetTokenHasher,
	tokenSender user.PasswordResetTokenSender,
	validDuration time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenHasher == nil {
		panic(e.NewNilArgumentError("tokenHasher"))
	}
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		unitOfWork:     unitOfWork,
		tokenGenerator: tokenGenerator,
		tokenHasher:    tokenHasher,
		tokenSender:    tokenSender,
		validDuration:  validDuration,
		now:            now,
	}
}

// Run succeeds whether or not an account exists for the email: the response
// must not let a caller distinguish the two cases. A token is generated and
// sent only for accounts that own a password credential.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"Password reset requested for unknown email.",
			logging.Entry("email", input.Email),
		)
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !u.HasPassword() {
		s.log.Info(
			ctx,
			"Password reset requested for user without password credential.",
			logging.Entry("userID", u.ID),
		)
		return result, nil
	}

	rawToken := s.tokenGenerator.GenerateResetToken()
	tokenHash, err := s.tokenHasher.HashToken(rawToken)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not hash password reset token.",
			logging.Entry("userID", u.ID),
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

	// Replace-all inside one transaction: at most one valid token exists per
	// user, even when two reset requests race.
	if err := uow.ResetTokens().DeleteForUser(ctx, u.ID); err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not delete previous reset tokens.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	_, err = uow.ResetTokens().Create(ctx, user.CreateResetTokenInput{
		TokenHash: tokenHash,
		UserID:    u.ID,
		ExpiresAt: s.now().Add(s.validDuration),
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not create reset token.",
			logging.Entry("userID", u.ID),
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

	// A notifier outage must not break anti-enumeration: log and still
	// report success.
	if err := s.tokenSender.SendResetToken(ctx, u, rawToken); err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	} else {
		s.log.Info(
			ctx,
			"Password reset token has been sent.",
			logging.Entry("userID", u.ID),
		)
	}
	return Result{Token: rawToken}, nil
}
