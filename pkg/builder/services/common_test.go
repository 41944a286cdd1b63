package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessExt(t *testing.T) {
	assert.Equal(t, ".json", GuessExt([]byte(`  {"openapi":"3.0.0"}`)))
	assert.Equal(t, ".yaml", GuessExt([]byte("openapi: 3.0.0")))
	assert.Equal(t, ".yaml", GuessExt(nil))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "widgets-api-2024", SanitizeFilename("Widgets API 2024"))
	assert.Equal(t, "a.b_c-d", SanitizeFilename("a.b_c-d"))
	assert.Equal(t, "", SanitizeFilename("   "))
	assert.Equal(t, "", SanitizeFilename("///"))
}
