package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureRandomString(t *testing.T) {
	a, err := GenerateSecureRandomString(StateBytes)
	require.NoError(t, err)
	b, err := GenerateSecureRandomString(StateBytes)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43) // 32 bytes, unpadded base64
	assert.NotContains(t, a, "+")
	assert.NotContains(t, a, "/")
}

func TestGenerateSecureRandomString_RejectsNonPositive(t *testing.T) {
	_, err := GenerateSecureRandomString(0)
	assert.Error(t, err)
}
