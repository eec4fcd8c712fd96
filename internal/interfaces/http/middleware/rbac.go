package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/identity"
	"github.com/sltrack/backend/internal/interfaces/http/dto"
)

// RequireRole grants the request iff the resolved role is min or higher.
// The 403 body names the minimum role and nothing else.
func RequireRole(min identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWith(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !user.Role.AtLeast(min) {
			abortWith(c, dto.ErrCodeForbidden, "Requires "+min.String()+" role or higher")
			return
		}
		c.Next()
	}
}

// RequireWrite is the blanket read/write split: any authenticated user may
// GET, every other method needs at least SoftwareAdmin. It composes with
// RequireRole; both checks must pass.
func RequireWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			abortWith(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !user.CanWrite() {
			abortWith(c, dto.ErrCodeForbidden, "Requires "+identity.RoleSoftwareAdmin.String()+" role or higher")
			return
		}
		c.Next()
	}
}
