package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/transport/http/dto"
	appjwt "github.com/Miraines/MoonyAndStarry/account-service/internal/app/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/app/auth/password"
	customErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/model"
	repo "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/repo"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/mail"
	lg "github.com/Miraines/MoonyAndStarry/account-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/infra/metrics"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Requirement selects which tokens a protected operation accepts.
type Requirement int

const (
	RequireAccess Requirement = iota
	RequireFresh
	RequireRefresh
	RequireAny
)

type authService struct {
	userRepo  repo.UserRepo
	blocklist repo.Blocklist
	tokens    jwt.TokenService
	hasher    password.Hasher
	queue     mail.Queue
	v         *validator.Validate
	log       *zap.Logger
	metrics   *metrics.Metrics

	dummyOnce sync.Once
	dummyHash string
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) (int64, error)
	Login(context.Context, dto.LoginDTO) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.Token, error)
	Logout(ctx context.Context, token string) error
	GetUserDetails(ctx context.Context, id int64) (model.User, error)
	Authorize(ctx context.Context, token string, req Requirement) (jwt.Claims, error)
}

type Option func(*authService)

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *authService) { a.metrics = m }
}

func New(
	ur repo.UserRepo,
	bl repo.Blocklist,
	ts jwt.TokenService,
	h password.Hasher,
	q mail.Queue,
	v *validator.Validate,
	log *zap.Logger,
	opts ...Option,
) Service {
	if log == nil {
		log = zap.NewNop()
	}
	a := &authService{
		userRepo: ur, blocklist: bl, tokens: ts, hasher: h, queue: q, v: v, log: log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (id int64, err error) {
	defer func() { a.metrics.Auth("register", err) }()

	if err := validationError(a.v, in); err != nil {
		return 0, err
	}

	exists, err := a.userRepo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return 0, customErrors.WrapInternal(err, "Register")
	}
	if exists {
		return 0, customErrors.ErrAlreadyExists
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return 0, customErrors.WrapInternal(err, "Register")
	}

	id, err = a.userRepo.CreateUser(ctx, model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return 0, customErrors.ErrAlreadyExists
		}
		return 0, customErrors.WrapInternal(err, "Register")
	}

	a.enqueueRegistrationEmail(ctx, in.Email, in.Username)
	return id, nil
}

// enqueueRegistrationEmail is best effort: a failed enqueue never fails the
// registration that triggered it.
func (a *authService) enqueueRegistrationEmail(ctx context.Context, email, username string) {
	job, err := mail.NewJob(mail.KindRegistrationEmail, mail.RegistrationEmail{
		Email:    email,
		Username: username,
	})
	if err == nil {
		err = a.queue.Enqueue(ctx, job)
	}
	if err != nil {
		a.log.Warn("enqueue registration email", lg.Email("user", email), zap.Error(err))
	}
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (pair model.TokenPair, err error) {
	defer func() { a.metrics.Auth("login", err) }()

	if err := validationError(a.v, in); err != nil {
		return model.TokenPair{}, err
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		// Pay the same hashing cost as a wrong password.
		a.verifyDummy(in.Password)
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := a.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}
	if !ok {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	at, err := a.tokens.IssueAccessToken(user.ID, true)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "IssueAccessToken")
	}
	rt, err := a.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "IssueRefreshToken")
	}

	return model.TokenPair{Access: at, Refresh: rt, UserID: user.ID}, nil
}

func (a *authService) verifyDummy(password string) {
	a.dummyOnce.Do(func() {
		h, err := a.hasher.Hash("account-service-dummy-password")
		if err != nil {
			a.log.Warn("dummy hash", zap.Error(err))
			return
		}
		a.dummyHash = h
	})
	if a.dummyHash != "" {
		_, _ = a.hasher.Verify(password, a.dummyHash)
	}
}

func (a *authService) Refresh(ctx context.Context, refreshToken string) (tok model.Token, err error) {
	defer func() { a.metrics.Auth("refresh", err) }()

	claims, err := a.Authorize(ctx, refreshToken, RequireRefresh)
	if err != nil {
		return model.Token{}, err
	}

	uid, err := appjwt.UserID(claims)
	if err != nil {
		return model.Token{}, err
	}

	// Tokens minted from a refresh are never fresh.
	at, err := a.tokens.IssueAccessToken(uid, false)
	if err != nil {
		return model.Token{}, customErrors.WrapInternal(err, "IssueAccessToken")
	}
	return at, nil
}

func (a *authService) Logout(ctx context.Context, token string) (err error) {
	defer func() { a.metrics.Auth("logout", err) }()

	claims, err := a.Authorize(ctx, token, RequireAny)
	if err != nil {
		return err
	}

	if err := a.blocklist.Revoke(ctx, claims.ID, a.tokens.RemainingTTL(claims)); err != nil {
		return customErrors.WrapInternal(err, "Logout")
	}
	return nil
}

func (a *authService) GetUserDetails(ctx context.Context, id int64) (model.User, error) {
	user, err := a.userRepo.GetUserByID(ctx, id)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, customErrors.ErrNotFound
	case err != nil:
		return model.User{}, customErrors.WrapInternal(err, "GetUserDetails")
	}
	return user, nil
}

// Authorize runs the route-protection checks in order: presence, decode and
// expiry, revocation, token type, freshness.
func (a *authService) Authorize(ctx context.Context, token string, req Requirement) (jwt.Claims, error) {
	if token == "" {
		return jwt.Claims{}, customErrors.ErrMissingToken
	}

	claims, err := a.tokens.Decode(token)
	if err != nil {
		return jwt.Claims{}, err
	}

	revoked, err := a.blocklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return jwt.Claims{}, customErrors.WrapInternal(err, "IsRevoked")
	}
	if revoked {
		return jwt.Claims{}, customErrors.ErrTokenRevoked
	}

	switch req {
	case RequireAccess, RequireFresh:
		if claims.Type != model.AccessToken {
			return jwt.Claims{}, customErrors.NewWrongTokenType(string(model.AccessToken))
		}
	case RequireRefresh:
		if claims.Type != model.RefreshToken {
			return jwt.Claims{}, customErrors.NewWrongTokenType(string(model.RefreshToken))
		}
	}

	if req == RequireFresh && !claims.Fresh {
		return jwt.Claims{}, customErrors.ErrFreshTokenRequired
	}
	return claims, nil
}
