package respond

import (
	"net/http"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/transport/http/dto"
	authErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/errors"
	"github.com/gin-gonic/gin"
)

const (
	MsgMissingToken       = "Request does not contain an access token."
	MsgInvalidToken       = "Signature verification failed."
	MsgTokenExpired       = "The token has expired."
	MsgTokenRevoked       = "The token has been revoked."
	MsgFreshTokenRequired = "Fresh token required."
	MsgAlreadyExists      = "A user with that email already exists."
	MsgInvalidCredentials = "Invalid credentials."
)

// Message writes {"message": msg} with the given status.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.MessageResponse{Message: msg})
}

// Status writes the generic {"code","status","message"} body.
func Status(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Code:    status,
		Status:  http.StatusText(status),
		Message: msg,
	})
}

func token(c *gin.Context, msg, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.TokenErrorResponse{Message: msg, Error: code})
}

// Error maps a domain error onto its HTTP status and body. Internal causes
// are attached to the gin context for the request logger and never echoed.
func Error(c *gin.Context, err error) {
	if v, ok := authErrors.AsValidation(err); ok {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{
			Code:   http.StatusUnprocessableEntity,
			Status: http.StatusText(http.StatusUnprocessableEntity),
			Errors: map[string]map[string][]string{"json": v.Fields},
		})
		return
	}

	switch {
	case authErrors.IsMissingToken(err):
		token(c, MsgMissingToken, "authorization_required")
	case authErrors.IsWrongTokenType(err):
		msg := MsgInvalidToken
		if w, ok := authErrors.AsWrongTokenType(err); ok {
			msg = "Only " + w.Want + " tokens are allowed."
		}
		token(c, msg, "invalid_token")
	case authErrors.IsInvalidToken(err):
		token(c, MsgInvalidToken, "invalid_token")
	case authErrors.IsTokenExpired(err):
		token(c, MsgTokenExpired, "token_expired")
	case authErrors.IsTokenRevoked(err):
		token(c, MsgTokenRevoked, "token_revoked")
	case authErrors.IsFreshTokenRequired(err):
		token(c, MsgFreshTokenRequired, "fresh_token_required")
	case authErrors.IsInvalidCredentials(err):
		Status(c, http.StatusUnauthorized, MsgInvalidCredentials)
	case authErrors.IsAlreadyExists(err):
		Status(c, http.StatusConflict, MsgAlreadyExists)
	case authErrors.IsNotFound(err):
		Status(c, http.StatusNotFound, "")
	case authErrors.IsInvalidArgument(err):
		Status(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		Status(c, http.StatusInternalServerError, "")
	}
}
