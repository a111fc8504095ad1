package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/transport/http/respond"
	appsvc "github.com/Miraines/MoonyAndStarry/account-service/internal/app/auth/service"
	authErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/errors"
	lg "github.com/Miraines/MoonyAndStarry/account-service/internal/infra/log"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck is one named dependency probe run by /health.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Handler struct {
	svc    appsvc.Service
	checks []HealthCheck
	log    *zap.Logger
}

func NewHandler(svc appsvc.Service, log *zap.Logger, checks ...HealthCheck) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, checks: checks, log: log}
}

// bindJSON treats an empty body as an empty object so that missing fields
// surface as validation errors.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		respond.Status(c, http.StatusBadRequest, "Invalid JSON body.")
		return false
	}
	return true
}

func (h *Handler) Register(c *gin.Context) {
	var body dto.RegisterDTO
	if !bindJSON(c, &body) {
		return
	}
	h.log.Info("/register", lg.Email("user", body.Email))

	if _, err := h.svc.Register(c.Request.Context(), body); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Message(c, http.StatusCreated, "User created successfully.")
}

func (h *Handler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if !bindJSON(c, &body) {
		return
	}
	h.log.Info("/login", lg.Email("user", body.Email))

	pair, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokensResponse{
		AccessToken:  pair.Access.Raw,
		RefreshToken: pair.Refresh.Raw,
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	at, err := h.svc.Refresh(c.Request.Context(), middleware.BearerToken(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokensResponse{AccessToken: at.Raw})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.BearerToken(c)); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Message(c, http.StatusOK, "Successfully logged out.")
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, authErrors.ErrNotFound)
		return
	}

	user, err := h.svc.GetUserDetails(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{ID: user.ID, Email: user.Email})
}

func (h *Handler) Protected(c *gin.Context) {
	h.logAccess(c)
	respond.Message(c, http.StatusOK, "This is a protected endpoint.")
}

func (h *Handler) FreshProtected(c *gin.Context) {
	h.logAccess(c)
	respond.Message(c, http.StatusOK, "This is a protected endpoint. You used a fresh token to access it.")
}

// logAccess records which user the guard let through.
func (h *Handler) logAccess(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		return
	}
	h.log.Info("protected access",
		zap.String("path", c.FullPath()),
		zap.String("sub", claims.Subject),
		zap.Bool("fresh", claims.Fresh),
	)
}

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	for _, hc := range h.checks {
		if err := hc.Check(ctx); err != nil {
			h.log.Warn("health check failed", zap.String("dependency", hc.Name), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "dependency": hc.Name})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
}
