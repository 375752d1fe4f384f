package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b", "b"}, "b"))
	require.Equal(t, -1, FindIndex([]int{1, 2}, 3))
}

func TestDistinct(t *testing.T) {
	t.Run("sorted without duplicates", func(t *testing.T) {
		require.Equal(t, []string{"alice", "bob"}, Distinct([]string{"bob", "alice", "bob", ""}))
	})

	t.Run("empty", func(t *testing.T) {
		require.Empty(t, Distinct([]int{0, 0}))
	})
}

func TestContainsSorted(t *testing.T) {
	ids := []string{"alice", "bob", "carol"}
	require.True(t, ContainsSorted(ids, "bob"))
	require.False(t, ContainsSorted(ids, "dave"))
}
