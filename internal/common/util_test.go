package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandByteArray(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	require.Len(t, a, 32)
	require.Len(t, b, 32)
	assert.NotEqual(t, a, b)
}

func TestWipeByteArray(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	WipeByteArray(b)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}
