package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest computes the stored credential fingerprint: the hex SHA-256 of
// "salt:secret". Deterministic, fixed 64-character output, never fails.
func Digest(salt, secret string) string {
	sum := sha256.Sum256([]byte(salt + ":" + secret))
	return hex.EncodeToString(sum[:])
}
