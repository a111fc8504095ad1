package jwt

import (
	"time"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/model"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of both access and refresh tokens. Fresh is only ever
// true on access tokens minted by a password login.
type Claims struct {
	jwt.RegisteredClaims
	Type  model.TokenType `json:"type"`
	Fresh bool            `json:"fresh"`
}

type TokenService interface {
	IssueAccessToken(userID int64, fresh bool) (model.Token, error)
	IssueRefreshToken(userID int64) (model.Token, error)
	Decode(raw string) (Claims, error)
	RemainingTTL(claims Claims) time.Duration
}
