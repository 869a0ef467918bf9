// Package middleware provides gin middleware guarding the SecondPlan panel:
// authentication, role authorization, CSRF verification, session rotation
// and request throttling.
package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"secondplan/config"
	"secondplan/database/model"
	"secondplan/web/entity"
	"secondplan/web/session"

	"github.com/gin-gonic/gin"
)

// wantsJSON reports whether the client expects a JSON answer rather than an
// HTML redirect flow.
func wantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	if strings.HasPrefix(c.Request.URL.Path, config.GetBasePath()+"api/") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// RequireLogin rejects anonymous requests. HTML flows are redirected to the
// login page remembering the originally requested URL; JSON flows get 401.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.IsLogin(c) {
			c.Next()
			return
		}
		if wantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{
				Success: false,
				Message: "Please log in to continue.",
			})
			return
		}
		next := url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusTemporaryRedirect, config.GetBasePath()+"login?next="+next)
		c.Abort()
	}
}

// RequireRole denies the request unless the session role is in the allowed
// set. The admin role passes every check.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{
				Success: false,
				Message: "Please log in to continue.",
			})
			return
		}
		if user.Role != model.RoleAdmin && !allowed[user.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, entity.Msg{
				Success: false,
				Message: "You do not have permission to access this resource.",
			})
			return
		}
		c.Next()
	}
}
