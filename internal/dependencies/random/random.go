// Package random draws the short codes used as event ids.
package random

import (
	"crypto/rand"
	"io"
)

// Random is swapped for a scripted source in tests
type Random interface {
	// String returns length symbols drawn uniformly from alphabet
	String(length int, alphabet string) string
}

// CryptoRandom draws from a byte source, crypto/rand unless overridden
type CryptoRandom struct {
	source io.Reader
}

// New creates a CryptoRandom backed by crypto/rand
func New() *CryptoRandom {
	return &CryptoRandom{source: rand.Reader}
}

// NewFromReader creates a CryptoRandom that reads its entropy from r
func NewFromReader(r io.Reader) *CryptoRandom {
	return &CryptoRandom{source: r}
}

// String samples one byte per symbol and rejects bytes above the largest
// multiple of len(alphabet), so no symbol is favoured. Alphabets longer than
// 256 symbols, or a source that runs dry, yield "".
func (r *CryptoRandom) String(length int, alphabet string) string {
	n := len(alphabet)
	if length <= 0 || n == 0 || n > 256 {
		return ""
	}
	limit := 256 - 256%n

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		chunk := buf[:length-len(out)]
		if _, err := io.ReadFull(r.source, chunk); err != nil {
			return ""
		}
		for _, b := range chunk {
			if int(b) < limit {
				out = append(out, alphabet[int(b)%n])
			}
		}
	}
	return string(out)
}
