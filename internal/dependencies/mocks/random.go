package mocks

import (
	"sync"

	"github.com/mcoot/raidroster/internal/dependencies/random"
)

// MockRandom hands out scripted codes in order, ignoring the requested
// length and alphabet. Once the script runs out it returns "".
type MockRandom struct {
	mu    sync.Mutex
	codes []string
	calls int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom with an empty script
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if len(r.codes) == 0 {
		return ""
	}
	code := r.codes[0]
	r.codes = r.codes[1:]
	return code
}

// QueueString appends codes to the script
func (r *MockRandom) QueueString(codes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = append(r.codes, codes...)
}

// Calls reports how many codes have been requested, including retries
// after a collision
func (r *MockRandom) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
