package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	h, err := HashPassword("s3cret!")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret!", h)

	require.True(t, CheckPassword("s3cret!", h))
	require.False(t, CheckPassword("wrong", h))
	require.False(t, CheckPassword("s3cret!", "not-a-hash"))
}

func TestPasswordHashSalted(t *testing.T) {
	h1, err := HashPassword("same")
	require.NoError(t, err)
	h2, err := HashPassword("same")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
