package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeCache(t *testing.T) {
	assert.Nil(t, NewDedupeCache(DedupeOptions{}))

	var disabled *DedupeCache
	disabled.Remember("w1", "d1")
	assert.False(t, disabled.Seen("w1", "d1"))

	c := NewDedupeCache(DedupeOptions{Enabled: true, Size: 10})
	assert.False(t, c.Seen("w1", "d1"))
	c.Remember("w1", "d1")
	assert.True(t, c.Seen("w1", "d1"))
	assert.False(t, c.Seen("w2", "d1"), "scoped per workspace")

	c.Remember("w1", "")
	assert.False(t, c.Seen("w1", ""), "deliveries without id are never duplicates")
}
