package mocks

import (
	"strings"

	"github.com/tickergate/tickergate/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// HexResults is a queue of results to return from Hex
	HexResults []string
	hexIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// Hex returns the next queued result, or a zero-filled string of the right
// length so salts stay non-empty in tests that don't care about them
func (r *MockRandom) Hex(n int) string {
	if r.hexIndex >= len(r.HexResults) {
		return strings.Repeat("0", 2*n)
	}
	result := r.HexResults[r.hexIndex]
	r.hexIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueHex adds values to the Hex result queue
func (r *MockRandom) QueueHex(values ...string) {
	r.HexResults = append(r.HexResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.HexResults = nil
	r.hexIndex = 0
}
