package jwt

import (
	"errors"
	"strconv"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/errors"
	jwt2 "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/model"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JwtUtilImpl struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	audience   string
	now        func() time.Time
}

type Option func(*JwtUtilImpl)

// WithClock overrides the time source used for minting and verification.
func WithClock(now func() time.Time) Option {
	return func(j *JwtUtilImpl) { j.now = now }
}

func NewJWTUtil(cfg *config.Config, opts ...Option) (*JwtUtilImpl, error) {
	if cfg.JWTSecret == "" {
		return nil, customErrors.WrapInternal(errors.New("empty secret"), "NewJWTUtil")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, customErrors.WrapInternal(errors.New("non-positive token ttl"), "NewJWTUtil")
	}

	j := &JwtUtilImpl{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

func (j *JwtUtilImpl) IssueAccessToken(userID int64, fresh bool) (model.Token, error) {
	return j.issue(userID, model.AccessToken, fresh, j.accessTTL)
}

func (j *JwtUtilImpl) IssueRefreshToken(userID int64) (model.Token, error) {
	return j.issue(userID, model.RefreshToken, false, j.refreshTTL)
}

func (j *JwtUtilImpl) issue(userID int64, typ model.TokenType, fresh bool, ttl time.Duration) (model.Token, error) {
	jti := uuid.NewString()
	now := j.now()

	claims := jwt2.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
		Type:  typ,
		Fresh: fresh,
	}
	if j.audience != "" {
		claims.Audience = jwt.ClaimStrings{j.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return model.Token{}, customErrors.WrapInternal(err, "sign "+string(typ)+" token")
	}

	return model.Token{
		Raw:       signed,
		JTI:       jti,
		Type:      typ,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (j *JwtUtilImpl) Decode(raw string) (jwt2.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(j.now),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}
	if j.audience != "" {
		opts = append(opts, jwt.WithAudience(j.audience))
	}

	token, err := jwt.ParseWithClaims(raw, &jwt2.Claims{}, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, opts...)
	if err != nil {
		return jwt2.Claims{}, classify(err)
	}

	claims, ok := token.Claims.(*jwt2.Claims)
	if !ok || !token.Valid {
		return jwt2.Claims{}, customErrors.ErrMalformedToken
	}
	if claims.ID == "" || claims.Subject == "" {
		return jwt2.Claims{}, customErrors.ErrMalformedToken
	}
	if claims.Type != model.AccessToken && claims.Type != model.RefreshToken {
		return jwt2.Claims{}, customErrors.ErrMalformedToken
	}
	if claims.Type == model.RefreshToken && claims.Fresh {
		return jwt2.Claims{}, customErrors.ErrMalformedToken
	}
	if _, err := strconv.ParseInt(claims.Subject, 10, 64); err != nil {
		return jwt2.Claims{}, customErrors.ErrMalformedToken
	}

	return *claims, nil
}

// classify maps jwt library failures onto the domain taxonomy; the raw
// library error never leaves this package.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return customErrors.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return customErrors.ErrInvalidSignature
	default:
		return customErrors.ErrMalformedToken
	}
}

func (j *JwtUtilImpl) RemainingTTL(claims jwt2.Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	ttl := claims.ExpiresAt.Time.Sub(j.now())
	if ttl < 0 {
		return 0
	}
	return ttl
}

// UserID parses the numeric subject of claims.
func UserID(claims jwt2.Claims) (int64, error) {
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, customErrors.ErrMalformedToken
	}
	return id, nil
}
