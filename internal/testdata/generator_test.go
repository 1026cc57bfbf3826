package testdata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsersDeterministicAndDistinct(t *testing.T) {
	a := Users(40, 7)
	b := Users(40, 7)
	require.Equal(t, a, b)

	seen := map[string]bool{}
	for _, p := range a {
		require.NotEmpty(t, p.Username)
		require.Contains(t, p.Email, "@")
		require.GreaterOrEqual(t, len(p.Password), 6)
		require.False(t, seen[p.Username], "duplicate username %q", p.Username)
		seen[p.Username] = true
	}
	require.Empty(t, Users(0, 1))
}
