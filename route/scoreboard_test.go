package route_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avelanda/pnroute/route"
)

func TestScoreboard_MissingKeysReadZero(t *testing.T) {
	sb := route.NewScoreboard()

	require.Equal(t, 0, sb.WireScore(42))
	require.Equal(t, 0, sb.PipScore(42))
	require.Equal(t, 0, sb.NetWireScore("n", 42))
	require.Equal(t, 0, sb.NetPipScore("n", 42))
}

func TestScoreboard_IncrementCreatesAndGrows(t *testing.T) {
	sb := route.NewScoreboard()

	sb.IncWireScore(7)
	sb.IncWireScore(7)
	sb.IncPipScore(9)
	sb.IncNetWireScore("a", 7)
	sb.IncNetPipScore("a", 9)
	sb.IncNetPipScore("a", 9)

	require.Equal(t, 2, sb.WireScore(7))
	require.Equal(t, 1, sb.PipScore(9))
	require.Equal(t, 1, sb.NetWireScore("a", 7))
	require.Equal(t, 2, sb.NetPipScore("a", 9))

	// Counters for one net never leak into another.
	require.Equal(t, 0, sb.NetWireScore("b", 7))
	require.Equal(t, 0, sb.NetPipScore("b", 9))
}

func TestScoreboard_Monotone(t *testing.T) {
	sb := route.NewScoreboard()

	last := 0
	for i := 0; i < 50; i++ {
		sb.IncWireScore(3)
		cur := sb.WireScore(3)
		require.Greater(t, cur, last)
		last = cur
	}
}
