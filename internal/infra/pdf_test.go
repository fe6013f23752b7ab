package infra

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Amoxicillin 500mg", truncate("Amoxicillin 500mg", 38))

	long := strings.Repeat("x", 50)
	assert.Equal(t, strings.Repeat("x", 37)+"…", truncate(long, 38))

	// Multi-byte names must be cut on rune boundaries, never mid-character.
	accented := strings.Repeat("é", 50)
	got := truncate(accented, 38)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 37)+"…", got)
	assert.Equal(t, 38, utf8.RuneCountInString(got))

	// Exactly at the limit stays untouched.
	exact := strings.Repeat("é", 38)
	assert.Equal(t, exact, truncate(exact, 38))
}
