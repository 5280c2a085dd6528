package middleware

import (
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

type Middleware struct {
	l           log.Logger
	internalKey string
	limiter     *webhook.RateLimiter
}

// New creates the shared middleware set. A nil limiter disables rate limiting.
func New(l log.Logger, internalKey string, limiter *webhook.RateLimiter) Middleware {
	return Middleware{
		l:           l,
		internalKey: internalKey,
		limiter:     limiter,
	}
}
