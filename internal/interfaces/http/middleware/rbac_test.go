package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
)

func rbacRig(role identity.Role, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUserKey, testUser("rbac", role))
		c.Next()
	})
	r.Use(guard)
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/r", ok)
	r.POST("/r", ok)
	r.DELETE("/r", ok)
	return r
}

func serve(r *gin.Engine, method string) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, "/r", nil))
	return w.Code
}

func TestRequireWrite(t *testing.T) {
	t.Run("viewer can read but not write", func(t *testing.T) {
		r := rbacRig(identity.RoleLicenseViewer, RequireWrite())
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet))
		assert.Equal(t, http.StatusForbidden, serve(r, http.MethodPost))
		assert.Equal(t, http.StatusForbidden, serve(r, http.MethodDelete))
	})

	t.Run("software admin can write", func(t *testing.T) {
		r := rbacRig(identity.RoleSoftwareAdmin, RequireWrite())
		assert.Equal(t, http.StatusOK, serve(r, http.MethodPost))
		assert.Equal(t, http.StatusOK, serve(r, http.MethodDelete))
	})

	t.Run("system admin can write", func(t *testing.T) {
		r := rbacRig(identity.RoleSystemAdmin, RequireWrite())
		assert.Equal(t, http.StatusOK, serve(r, http.MethodPost))
	})
}

func TestRequireRole(t *testing.T) {
	guard := RequireRole(identity.RoleSystemAdmin)

	assert.Equal(t, http.StatusForbidden, serve(rbacRig(identity.RoleLicenseViewer, guard), http.MethodGet))
	assert.Equal(t, http.StatusForbidden, serve(rbacRig(identity.RoleSoftwareAdmin, guard), http.MethodGet))
	assert.Equal(t, http.StatusOK, serve(rbacRig(identity.RoleSystemAdmin, guard), http.MethodGet))
}

func TestGuardsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireWrite())
	r.POST("/r", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/r", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
