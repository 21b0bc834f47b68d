// File: internal/infra/tripay/signature.go
package tripay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the hex-encoded HMAC-SHA256 of payload under secret. Used
// both for the outbound transaction signature and for verifying callbacks.
func Sign(secret, payload []byte) string {
	h := hmac.New(sha256.New, secret)
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks that provided is the HMAC-SHA256 hex digest of
// rawBody under secret. Malformed or empty inputs verify as false; a missing
// signature header is a verification failure, not a missing-data error.
func VerifySignature(rawBody []byte, provided string, secret []byte) bool {
	if len(secret) == 0 || provided == "" {
		return false
	}
	return constantTimeEqual(Sign(secret, rawBody), provided)
}

// constantTimeEqual compares two strings without leaking, through timing,
// how many leading bytes matched. Length mismatch fails immediately (length
// is not secret); equal-length inputs are always folded in full.
func constantTimeEqual(want, got string) bool {
	if len(want) != len(got) {
		return false
	}
	return foldXOR(want, got) == 0
}

// foldXOR accumulates the XOR of every byte pair via bitwise OR. Zero iff
// the strings are identical. Never exits the loop early.
func foldXOR(a, b string) byte {
	var acc byte
	for i := 0; i < len(a); i++ {
		acc |= a[i] ^ b[i]
	}
	return acc
}
