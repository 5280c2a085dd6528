package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/DarshanCode2005/gitmesh/pkg/response"
)

const HeaderInternalKey = "X-Internal-Key"

// InternalAuth admits requests carrying the configured internal key in
// X-Internal-Key or the "key" query parameter.
// With no key configured every request is rejected.
func (m Middleware) InternalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.internalKey == "" {
			m.l.Warnf(c.Request.Context(), "internal endpoint %s called but internal.key is not configured", c.Request.URL.Path)
			response.Forbidden(c)
			return
		}

		key := c.GetHeader(HeaderInternalKey)
		if key == "" {
			key = c.Query("key")
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(m.internalKey)) != 1 {
			m.l.Warnf(c.Request.Context(), "internal auth failed: path=%s client_ip=%s", c.Request.URL.Path, c.ClientIP())
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}
