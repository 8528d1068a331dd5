package random

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringUsesAlphabet(t *testing.T) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	r := New()
	for i := 0; i < 50; i++ {
		s := r.String(6, alphabet)
		assert.Len(t, s, 6)
		for _, c := range s {
			assert.True(t, strings.ContainsRune(alphabet, c), "unexpected symbol %q", c)
		}
	}
}

func TestStringRejectsBiasedBytes(t *testing.T) {
	// With a 3 symbol alphabet bytes >= 255 are skipped
	src := bytes.NewReader([]byte{255, 0, 1, 2, 3})
	r := NewFromReader(src)
	assert.Equal(t, "ABC", r.String(3, "ABC"))
}

func TestStringDegenerateInput(t *testing.T) {
	r := New()
	assert.Equal(t, "", r.String(0, "AB"))
	assert.Equal(t, "", r.String(4, ""))
	assert.Equal(t, "", r.String(4, strings.Repeat("x", 257)))
}

func TestStringExhaustedSource(t *testing.T) {
	r := NewFromReader(bytes.NewReader([]byte{1}))
	assert.Equal(t, "", r.String(4, "AB"))
}
