package jwt

import (
	"testing"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/model"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "test",
		Audience:        "test",
	}
}

func TestJWTUtil_AccessRoundTrip(t *testing.T) {
	util, err := NewJWTUtil(testConfig())
	require.NoError(t, err)

	for _, fresh := range []bool{true, false} {
		tok, err := util.IssueAccessToken(42, fresh)
		require.NoError(t, err)
		require.NotEmpty(t, tok.JTI)
		require.Equal(t, model.AccessToken, tok.Type)

		claims, err := util.Decode(tok.Raw)
		require.NoError(t, err)
		require.Equal(t, "42", claims.Subject)
		require.Equal(t, model.AccessToken, claims.Type)
		require.Equal(t, fresh, claims.Fresh)
		require.Equal(t, tok.JTI, claims.ID)
		require.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))

		id, err := UserID(claims)
		require.NoError(t, err)
		require.EqualValues(t, 42, id)
	}
}

func TestJWTUtil_RefreshRoundTrip(t *testing.T) {
	util, _ := NewJWTUtil(testConfig())

	tok, err := util.IssueRefreshToken(7)
	require.NoError(t, err)

	claims, err := util.Decode(tok.Raw)
	require.NoError(t, err)
	require.Equal(t, "7", claims.Subject)
	require.Equal(t, model.RefreshToken, claims.Type)
	require.False(t, claims.Fresh)
}

func TestJWTUtil_UniqueJTI(t *testing.T) {
	util, _ := NewJWTUtil(testConfig())
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok, err := util.IssueAccessToken(1, false)
		require.NoError(t, err)
		require.False(t, seen[tok.JTI], "duplicate jti %s", tok.JTI)
		seen[tok.JTI] = true
	}
}

func TestJWTUtil_AccessShorterThanRefresh(t *testing.T) {
	util, _ := NewJWTUtil(testConfig())
	at, _ := util.IssueAccessToken(1, true)
	rt, _ := util.IssueRefreshToken(1)
	require.True(t, at.ExpiresAt.Before(rt.ExpiresAt))
}

func TestJWTUtil_Malformed(t *testing.T) {
	util, _ := NewJWTUtil(testConfig())
	_, err := util.Decode("bad_token")
	require.ErrorIs(t, err, customErrors.ErrMalformedToken)
	require.True(t, customErrors.IsInvalidToken(err))
}

func TestJWTUtil_WrongSecret(t *testing.T) {
	util, _ := NewJWTUtil(testConfig())
	cfg := testConfig()
	cfg.JWTSecret = "other-secret"
	other, _ := NewJWTUtil(cfg)

	tok, _ := other.IssueAccessToken(1, true)
	_, err := util.Decode(tok.Raw)
	require.ErrorIs(t, err, customErrors.ErrInvalidSignature)
	require.True(t, customErrors.IsInvalidToken(err))
}

func TestJWTUtil_InvalidAlg(t *testing.T) {
	util, _ := NewJWTUtil(testConfig())
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": "1"}).SignedString([]byte("test-secret"))
	_, err := util.Decode(token)
	require.True(t, customErrors.IsInvalidToken(err))
}

func TestJWTUtil_Expired(t *testing.T) {
	util, _ := NewJWTUtil(testConfig())
	past, _ := NewJWTUtil(testConfig(), WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}))

	tok, err := past.IssueAccessToken(1, true)
	require.NoError(t, err)

	_, err = util.Decode(tok.Raw)
	require.ErrorIs(t, err, customErrors.ErrTokenExpired)
	require.False(t, customErrors.IsInvalidToken(err))
}

func TestJWTUtil_InvalidAudience(t *testing.T) {
	util, _ := NewJWTUtil(testConfig())
	cfg := testConfig()
	cfg.Audience = "other"
	other, _ := NewJWTUtil(cfg)

	tok, _ := other.IssueRefreshToken(1)
	_, err := util.Decode(tok.Raw)
	require.True(t, customErrors.IsInvalidToken(err))
}

func TestJWTUtil_InvalidIssuer(t *testing.T) {
	util, _ := NewJWTUtil(testConfig())
	cfg := testConfig()
	cfg.Issuer = "wrong"
	other, _ := NewJWTUtil(cfg)

	tok, _ := other.IssueAccessToken(1, false)
	_, err := util.Decode(tok.Raw)
	require.True(t, customErrors.IsInvalidToken(err))
}

func TestJWTUtil_MissingType(t *testing.T) {
	util, _ := NewJWTUtil(testConfig())
	now := time.Now()
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"jti": "x",
		"iss": "test",
		"aud": "test",
		"iat": now.Unix(),
		"exp": now.Add(time.Minute).Unix(),
	}).SignedString([]byte("test-secret"))

	_, err := util.Decode(token)
	require.ErrorIs(t, err, customErrors.ErrMalformedToken)
}

func TestJWTUtil_RemainingTTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	util, _ := NewJWTUtil(testConfig(), WithClock(func() time.Time { return clock }))

	tok, _ := util.IssueRefreshToken(1)
	claims, err := util.Decode(tok.Raw)
	require.NoError(t, err)
	require.Equal(t, time.Hour, util.RemainingTTL(claims))

	clock = now.Add(45 * time.Minute)
	require.Equal(t, 15*time.Minute, util.RemainingTTL(claims))

	clock = now.Add(2 * time.Hour)
	require.Zero(t, util.RemainingTTL(claims))
}

func TestNewJWTUtil_RejectsEmptySecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""
	_, err := NewJWTUtil(cfg)
	require.True(t, customErrors.IsInternal(err))
}
