package middleware

import (
	"net/http"
	"time"

	"secondplan/config"
	"secondplan/web/entity"
	"secondplan/web/session"

	"github.com/gin-gonic/gin"
)

// CsrfGuard verifies the per-session CSRF token on every state-changing
// request. The token travels in the X-CSRF-Token header or the _csrf form
// field and is consumed on successful verification.
func CsrfGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		candidate := c.GetHeader("X-CSRF-Token")
		if candidate == "" {
			candidate = c.PostForm("_csrf")
		}

		ttl := time.Duration(config.GetCsrfTokenTTL()) * time.Second
		if !session.VerifyCsrfToken(c, candidate, ttl) {
			c.AbortWithStatusJSON(http.StatusForbidden, entity.Msg{
				Success: false,
				Message: "Invalid or expired form token. Please reload and try again.",
			})
			return
		}
		c.Next()
	}
}
