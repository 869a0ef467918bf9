package middleware

import (
	"secondplan/logger"
	"secondplan/web/session"

	"github.com/gin-gonic/gin"
)

// SessionRotate reissues session identifiers past their rotation age to
// limit fixation. Anonymous requests pass through untouched.
func SessionRotate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := session.Rotate(c); err != nil {
			logger.Warning("session rotation failed:", err)
		}
		c.Next()
	}
}
