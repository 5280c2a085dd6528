package webhook

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DedupeCache remembers recently processed deliveries per workspace.
// A nil *DedupeCache never reports duplicates.
type DedupeCache struct {
	seen *expirable.LRU[string, struct{}]
}

// NewDedupeCache returns nil unless opts.Enabled.
func NewDedupeCache(opts DedupeOptions) *DedupeCache {
	if !opts.Enabled {
		return nil
	}
	size := opts.Size
	if size <= 0 {
		size = 10000
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &DedupeCache{seen: expirable.NewLRU[string, struct{}](size, nil, ttl)}
}

// Seen reports whether the delivery was already processed.
func (c *DedupeCache) Seen(workspaceID, deliveryID string) bool {
	if c == nil || deliveryID == "" {
		return false
	}
	return c.seen.Contains(dedupeKey(workspaceID, deliveryID))
}

// Remember records a processed delivery.
func (c *DedupeCache) Remember(workspaceID, deliveryID string) {
	if c == nil || deliveryID == "" {
		return
	}
	c.seen.Add(dedupeKey(workspaceID, deliveryID), struct{}{})
}

func dedupeKey(workspaceID, deliveryID string) string {
	return workspaceID + "/" + deliveryID
}
