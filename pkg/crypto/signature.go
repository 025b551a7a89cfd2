package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SignBody computes the base64-encoded HMAC-SHA256 digest of body, the same
// value LINE sends in the x-line-signature header.
func SignBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks signature against the digest of the exact raw
// request bytes using constant-time comparison. It must run before (or
// independently of) JSON parsing: re-serializing a parsed body may not
// byte-match what was signed.
//
// Returns false for an empty secret; distinguishing a missing secret from a
// mismatch is the caller's job.
func VerifySignature(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := SignBody(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
