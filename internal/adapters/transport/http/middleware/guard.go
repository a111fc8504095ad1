package middleware

import (
	"context"
	"strings"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/transport/http/respond"
	appsvc "github.com/Miraines/MoonyAndStarry/account-service/internal/app/auth/service"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/jwt"
	"github.com/gin-gonic/gin"
)

const claimsKey = "auth.claims"

type Authorizer interface {
	Authorize(ctx context.Context, token string, req appsvc.Requirement) (jwt.Claims, error)
}

// Guard rejects requests whose bearer token does not satisfy req and stores
// the verified claims on the context otherwise.
func Guard(a Authorizer, req appsvc.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.Authorize(c.Request.Context(), BearerToken(c), req)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// BearerToken returns the token from "Authorization: Bearer <token>", or "".
func BearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, tok, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

func Claims(c *gin.Context) (jwt.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return jwt.Claims{}, false
	}
	claims, ok := v.(jwt.Claims)
	return claims, ok
}
