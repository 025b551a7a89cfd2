package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature_Roundtrip(t *testing.T) {
	bodies := []string{
		`{"events":[]}`,
		`{"events":[{"type":"message"}]}`,
		"",
		"ไทย unicode body ✓",
	}

	for _, body := range bodies {
		sig := SignBody([]byte(body), "secret")
		assert.True(t, VerifySignature([]byte(body), sig, "secret"), "body %q must verify against its own digest", body)
	}
}

func TestVerifySignature_Mismatch(t *testing.T) {
	body := []byte(`{"events":[]}`)

	assert.False(t, VerifySignature(body, "not-a-signature", "secret"))
	assert.False(t, VerifySignature(body, SignBody(body, "other-secret"), "secret"))
	// A digest of different bytes must not verify.
	assert.False(t, VerifySignature(body, SignBody([]byte(`{"events":[ ]}`), "secret"), "secret"))
}

func TestVerifySignature_EmptyInputs(t *testing.T) {
	body := []byte("x")

	assert.False(t, VerifySignature(body, "", "secret"), "missing signature never verifies")
	assert.False(t, VerifySignature(body, SignBody(body, ""), ""), "missing secret never verifies; callers surface it as a config error")
}
