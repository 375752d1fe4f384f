package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCT(t *testing.T) {
	t.Run("unvisited child is explored first", func(t *testing.T) {
		policy := newUCT(CSquared, 10)
		require.Equal(t, math.Inf(1), policy.evaluate(0, 0))
	})

	t.Run("score adds exploitation and exploration", func(t *testing.T) {
		policy := newUCT(CSquared, 10)
		expected := 3.0/5.0 + math.Sqrt(CSquared*math.Log(10)/5)
		require.InDelta(t, expected, policy.evaluate(3, 5), 1e-9)
	})

	t.Run("less visited child gets a larger bonus", func(t *testing.T) {
		policy := newUCT(CSquared, 100)
		require.Greater(t, policy.evaluate(5, 10), policy.evaluate(50, 100))
	})

	t.Run("parent without visits panics", func(t *testing.T) {
		require.Panics(t, func() { newUCT(CSquared, 0) })
	})
}
