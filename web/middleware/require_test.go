package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"secondplan/config"
	"secondplan/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newGuardedEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	engine.Use(sessions.Sessions(session.CookieName, store))

	root := engine.Group(config.GetBasePath())
	root.GET("api/bookings", RequireLogin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	root.GET("admin/dashboard", RequireLogin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestRequireLoginHonorsBasePath(t *testing.T) {
	t.Setenv("SP_BASE_PATH", "panel")
	engine := newGuardedEngine()

	// API paths under the base are JSON flows and must not redirect.
	req := httptest.NewRequest(http.MethodGet, "/panel/api/bookings", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	// Browser pages redirect to the login page under the same base.
	req = httptest.NewRequest(http.MethodGet, "/panel/admin/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/panel/login?next=%2Fpanel%2Fadmin%2Fdashboard", w.Header().Get("Location"))
}

func TestRequireLoginAtRootBase(t *testing.T) {
	t.Setenv("SP_BASE_PATH", "")
	engine := newGuardedEngine()

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}
