package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/identity"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/sltrack/backend/internal/infrastructure/config"
	"github.com/sltrack/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Identity headers. The first two are asserted by the trusted reverse proxy
// or platform in front of the API; the override header is honored only for
// development, and only when the fallback is switched on explicitly.
const (
	HeaderRemoteUser        = "X-Remote-User"
	HeaderPlatformPrincipal = "X-MS-Client-Principal-Name"
	HeaderDevOverride       = "X-User-Name"
)

// ContextUserKey is the gin context key carrying the resolved user.
const ContextUserKey = "auth_user"

// UserLookup resolves an asserted username to an active account.
type UserLookup interface {
	FindActiveByUsername(ctx context.Context, username string) (*identity.User, error)
}

// Identity resolves the caller from the trusted identity headers and
// attaches the matching active user to the request context. Requests with
// no resolvable identity, an unknown username or a deactivated account all
// get the same 401; the response never reveals which of the three it was.
// A lookup that could not complete at all answers 503 instead.
func Identity(users UserLookup, authCfg config.AuthConfig, production bool, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := resolveUsername(c, authCfg, production)
		if username == "" {
			abortWith(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		user, err := users.FindActiveByUsername(c.Request.Context(), username)
		if err != nil {
			// A backend outage is not an authentication verdict. Only a
			// completed lookup may produce the uniform 401.
			if shared.IsTransient(err) {
				log.Warn("identity lookup unavailable", zap.Error(err))
				abortWith(c, dto.ErrCodeUnavailable, "Backend temporarily unavailable")
				return
			}
			log.Debug("identity rejected", zap.String("username", username))
			abortWith(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		c.Set(ContextUserKey, user)
		c.Set("auth_username", user.Username)
		c.Next()
	}
}

// resolveUsername walks the header priority order. The development fallback
// requires both a non-production run mode and the explicit opt-in flag, so
// a misconfigured deployment fails closed.
func resolveUsername(c *gin.Context, authCfg config.AuthConfig, production bool) string {
	if u := c.GetHeader(HeaderRemoteUser); u != "" {
		return u
	}
	if u := c.GetHeader(HeaderPlatformPrincipal); u != "" {
		return u
	}
	if production || !authCfg.DevFallbackEnabled {
		return ""
	}
	if u := c.GetHeader(HeaderDevOverride); u != "" {
		return u
	}
	return authCfg.DevUser
}

// CurrentUser returns the authenticated user attached by Identity.
func CurrentUser(c *gin.Context) (*identity.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*identity.User)
	return user, ok
}

func abortWith(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(dto.HTTPStatus(code), dto.NewErrorResponse(code, message))
}
