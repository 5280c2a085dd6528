package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const signaturePrefix = "sha256="

// Sign returns the GitHub style signature of payload: "sha256=" + hex HMAC-SHA256.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify checks signature against the raw payload bytes in constant time.
// With no secret configured or no signature sent there is nothing to check
// and Verify reports true.
func Verify(secret string, payload []byte, signature string) bool {
	if secret == "" || signature == "" {
		return true
	}
	if !strings.HasPrefix(signature, signaturePrefix) {
		return false
	}
	got, err := hex.DecodeString(signature[len(signaturePrefix):])
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(got, mac.Sum(nil))
}

// SignaturePolicy decides whether a delivery's signature is acceptable.
type SignaturePolicy struct {
	// Require rejects deliveries when either the secret or the signature is missing.
	Require bool
}

// Check applies the policy on top of Verify.
func (p SignaturePolicy) Check(secret string, payload []byte, signature string) bool {
	if p.Require && (secret == "" || signature == "") {
		return false
	}
	return Verify(secret, payload, signature)
}

// RateLimiter is a keyed token bucket limiter. Idle keys expire.
type RateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// NewRateLimiter allows requestsPerMin per key with a burst of a tenth of that.
// A non-positive limit returns nil, which allows everything.
func NewRateLimiter(requestsPerMin int) *RateLimiter {
	if requestsPerMin <= 0 {
		return nil
	}
	return &RateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,
			nil,
			time.Minute*5,
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0),
		burst: max(1, requestsPerMin/10),
	}
}

// Allow reports whether a request for key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	if rl == nil {
		return true
	}
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}
