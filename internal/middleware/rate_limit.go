package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/DarshanCode2005/gitmesh/pkg/response"
)

// WorkspaceRateLimit throttles requests per :workspaceId path parameter.
func (m Middleware) WorkspaceRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("workspaceId")
		if !m.limiter.Allow(key) {
			m.l.Warnf(c.Request.Context(), "rate limit exceeded for workspace %s", key)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
