package impl

import (
	"context"
	"log/slog"
	"time"

	"signin/config"
	deliverycontext "signin/internal/delivery/context"
	"signin/internal/domain/entity"
	domainerrors "signin/internal/domain/errors"
	"signin/internal/domain/repository"
	"signin/internal/domain/service"
	"signin/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// loginService implements the LoginUsecase interface.
type loginService struct {
	txManager     repository.TransactionManager
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	hashPool      *hashPool
	lookupTimeout time.Duration
	logger        *slog.Logger
}

// LoginServiceParams holds dependencies for LoginService, injected by Fx.
type LoginServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewLoginService is the constructor for loginService.
func NewLoginService(params LoginServiceParams) usecase.LoginUsecase {
	var (
		lookupTimeout   time.Duration
		hashConcurrency int
	)
	if params.Config != nil && params.Config.Auth != nil {
		lookupTimeout = params.Config.Auth.LookupTimeout
		hashConcurrency = params.Config.Auth.HashConcurrency
	}

	return &loginService{
		txManager:     params.TxManager,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		hashPool:      newHashPool(hashConcurrency),
		lookupTimeout: lookupTimeout,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *loginService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login runs lookup, verification and issuance in that order.
func (srv *loginService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed)
	}

	srv.log(ctx).Debug("Starting login", slog.String("username", input.Username))

	user, err := srv.findUser(ctx, input.Username)
	if err != nil {
		srv.log(ctx).Error("Login lookup failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to look up user")
	}

	// Bcrypt runs on both paths so an unknown username costs as much as a wrong password.
	matched := false
	if err := srv.hashPool.Do(ctx, func() {
		if user == nil {
			srv.hasher.CheckDummy(input.Password)

			return
		}
		matched = srv.hasher.Check(input.Password, user.PasswordHash)
	}); err != nil {
		srv.log(ctx).Warn("Login aborted while waiting for hash slot", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.WithStack(err)
	}

	if !matched {
		srv.log(ctx).Info("Login rejected", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.tokenService.Issue(user.Username)
	if err != nil {
		srv.log(ctx).Error("Token issuance failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Info("Login succeeded", slog.String("username", user.Username))

	return &usecase.LoginOutput{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
	}, nil
}

// findUser loads the user in a short read-only transaction bounded by the lookup timeout.
func (srv *loginService) findUser(ctx context.Context, username string) (*entity.User, error) {
	if srv.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, srv.lookupTimeout)
		defer cancel()
	}

	var user *entity.User
	if err := srv.txManager.ExecuteReadOnly(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByUsername(ctx, username)
		if err != nil {
			return errors.Wrap(err, "failed to find user by username")
		}
		user = found

		return nil
	}); err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}
