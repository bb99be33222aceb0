package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("sourdough-starter-2020")
	assert.NoError(t, err)
	assert.NotEqual(t, "sourdough-starter-2020", hash)

	assert.True(t, CheckPasswordHash("sourdough-starter-2020", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("bake@dawn")
	assert.NoError(t, err)
	second, err := HashPassword("bake@dawn")
	assert.NoError(t, err)

	// bcrypt salts each hash, so the same password never hashes twice
	// to the same value.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPasswordHash("bake@dawn", first))
	assert.True(t, CheckPasswordHash("bake@dawn", second))
}
