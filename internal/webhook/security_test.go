package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	payload := []byte(`{"action":"opened","issue":{"id":1}}`)
	sig := Sign("s3cret", payload)

	assert.Regexp(t, `^sha256=[0-9a-f]{64}$`, sig)
	assert.True(t, Verify("s3cret", payload, sig))
	assert.False(t, Verify("other", payload, sig))
}

func TestVerifyRejectsAnySingleByteMutation(t *testing.T) {
	payload := []byte(`{"a":1,"b":"two"}`)
	sig := Sign("k", payload)

	for i := range payload {
		mutated := append([]byte(nil), payload...)
		mutated[i] ^= 0x01
		assert.False(t, Verify("k", mutated, sig), "mutation at byte %d", i)
	}
}

func TestVerifyIsOverRawBytes(t *testing.T) {
	// Same JSON value, different bytes.
	compact := []byte(`{"a":1}`)
	spaced := []byte(`{ "a": 1 }`)
	assert.False(t, Verify("k", spaced, Sign("k", compact)))
}

func TestVerifyMalformedSignature(t *testing.T) {
	payload := []byte(`{}`)
	assert.False(t, Verify("k", payload, "sha1=abcd"))
	assert.False(t, Verify("k", payload, "sha256=zz"))
	assert.False(t, Verify("k", payload, "sha256="))
}

func TestVerifySkipsWithoutSecretOrSignature(t *testing.T) {
	payload := []byte(`{"x":true}`)
	assert.True(t, Verify("", payload, "sha256=deadbeef"))
	assert.True(t, Verify("k", payload, ""))
	assert.True(t, Verify("", payload, ""))
}

func TestSignaturePolicy(t *testing.T) {
	payload := []byte(`{}`)
	sig := Sign("k", payload)

	permissive := SignaturePolicy{}
	assert.True(t, permissive.Check("", payload, ""))
	assert.True(t, permissive.Check("k", payload, sig))
	assert.False(t, permissive.Check("k", payload, Sign("x", payload)))

	strict := SignaturePolicy{Require: true}
	assert.False(t, strict.Check("", payload, sig))
	assert.False(t, strict.Check("k", payload, ""))
	assert.True(t, strict.Check("k", payload, sig))
}

func TestRateLimiter(t *testing.T) {
	assert.Nil(t, NewRateLimiter(0))
	var disabled *RateLimiter
	assert.True(t, disabled.Allow("w1"))

	rl := NewRateLimiter(5) // burst of one
	assert.True(t, rl.Allow("w1"))
	assert.False(t, rl.Allow("w1"))
	assert.True(t, rl.Allow("w2"), "keys are independent")
}
