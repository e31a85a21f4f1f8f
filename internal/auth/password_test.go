package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("senha123")
	require.NoError(t, err)
	require.NotEqual(t, "senha123", hash)

	assert.True(t, CheckPasswordHash("senha123", hash))
	assert.False(t, CheckPasswordHash("senha124", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	a, err := HashPassword("senha123")
	require.NoError(t, err)
	b, err := HashPassword("senha123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
