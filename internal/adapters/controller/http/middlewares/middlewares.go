package middlewares

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aitbenali/medina-journeys/internal/domain/authz"
	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
	"github.com/aitbenali/medina-journeys/internal/domain/service"
	"github.com/aitbenali/medina-journeys/pkg/logger/types"
)

// SessionCookie is the name of the session cookie. Its value is an opaque
// server-side token.
const SessionCookie = "mj_session"

const userContextKey = "user"

type Middlewares struct {
	logger *types.Logger
	auth   *service.AuthService
}

func New(logger *types.Logger, auth *service.AuthService) *Middlewares {
	return &Middlewares{
		logger: logger,
		auth:   auth,
	}
}

// RequestLogger writes one access log line per request.
func (m *Middlewares) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.logger.Infof("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Authorized resolves the session cookie to a user and stores it on the
// request context. Requests without a valid session are rejected.
func (m *Middlewares) Authorized() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			abort(c, http.StatusUnauthorized, "authentication required")
			return
		}

		user, err := m.auth.UserFromSession(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, errorz.ErrSessionExpired):
				abort(c, http.StatusUnauthorized, "session expired")
			case errors.Is(err, errorz.ErrUserDisabled):
				abort(c, http.StatusForbidden, "account is disabled")
			default:
				m.logger.Errorf("failed to resolve session: %v", err)
				abort(c, http.StatusInternalServerError, "internal error")
			}
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireCapability gates a route group on the central permission table.
func (m *Middlewares) RequireCapability(capability authz.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !authz.Can(user.Role, capability) {
			abort(c, http.StatusForbidden, "insufficient permissions")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Authorized, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*entity.User)
	return user
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
