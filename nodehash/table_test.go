package nodehash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRUTableDedupesIdenticalFingerprints(t *testing.T) {
	table, err := NewLRUTable[int](0, 8)
	require.NoError(t, err)

	calls := 0
	compile := func() (int, error) {
		calls++
		return calls, nil
	}

	h1, hit1, err := table.Add([]byte("node-a"), compile)
	require.NoError(t, err)
	require.False(t, hit1)

	h2, hit2, err := table.Add([]byte("node-a"), compile)
	require.NoError(t, err)
	require.True(t, hit2)
	require.Equal(t, h1, h2)
	require.Equal(t, 1, calls)
}

func TestLRUTableDistinctFingerprintsCompileSeparately(t *testing.T) {
	table, err := NewLRUTable[int](0, 8)
	require.NoError(t, err)

	calls := 0
	compile := func() (int, error) {
		calls++
		return calls, nil
	}

	h1, _, err := table.Add([]byte("node-a"), compile)
	require.NoError(t, err)
	h2, hit, err := table.Add([]byte("node-b"), compile)
	require.NoError(t, err)
	require.False(t, hit)
	require.NotEqual(t, h1, h2)
	require.Equal(t, 2, table.Len())
}

func TestLRUTableBoundedEvictionStillReturnsValidHandles(t *testing.T) {
	table, err := NewLRUTable[int](2, 2)
	require.NoError(t, err)

	compile := func(v int) func() (int, error) {
		return func() (int, error) { return v, nil }
	}

	h1, _, err := table.Add([]byte("a"), compile(1))
	require.NoError(t, err)
	h2, _, err := table.Add([]byte("b"), compile(2))
	require.NoError(t, err)
	h3, _, err := table.Add([]byte("c"), compile(3))
	require.NoError(t, err)

	require.LessOrEqual(t, table.Len(), 2)
	require.Equal(t, []int{1, 2, 3}, []int{h1, h2, h3})
}
