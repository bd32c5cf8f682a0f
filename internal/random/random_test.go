package random_test

import (
	"strings"
	"testing"

	"github.com/myrjola/polyglot/internal/random"
	"github.com/stretchr/testify/require"
)

func TestLetters(t *testing.T) {
	for _, n := range []uint{0, 1, 24, 500} {
		got, err := random.Letters(n)
		require.NoError(t, err)
		require.Len(t, got, int(n))
		require.Empty(t, strings.Trim(got, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"))
	}
}

func TestLettersDiffer(t *testing.T) {
	a, err := random.Letters(24)
	require.NoError(t, err)
	b, err := random.Letters(24)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
