package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash returns the hex-encoded SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashString returns the hex-encoded SHA-256 of s.
func HashString(s string) string {
	return Hash([]byte(s))
}

// hashKey joins parts under a prefix and hashes the result, so keys
// stay fixed-length regardless of input size.
func hashKey(prefix string, parts ...string) string {
	return prefix + ":" + HashString(strings.Join(parts, "\x00"))
}
