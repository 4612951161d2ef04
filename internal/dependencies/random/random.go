package random

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// Random provides random value generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// Hex returns a random hex string covering n bytes of entropy
	// (the result is 2n characters long)
	Hex(n int) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fall back to 0 on error (should never happen with crypto/rand)
		return 0
	}
	return int(result.Int64())
}

// Hex returns a random hex string covering n bytes of entropy. Used for
// per-account salts; the source is crypto/rand rather than the weaker
// pseudo-random-plus-timestamp scheme this replaces.
func (r *CryptoRandom) Hex(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		return ""
	}
	return hex.EncodeToString(b)
}
