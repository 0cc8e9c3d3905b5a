package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocReturnsDistinctZeroedRegions(t *testing.T) {
	a := New()
	defer a.Destroy()

	type pair struct{ X, Y int64 }
	p1, err := AllocT[pair](a)
	require.NoError(t, err)
	p2, err := AllocT[pair](a)
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
	assert.Equal(t, pair{}, *p1)
	p1.X = 7
	assert.Equal(t, int64(0), p2.X)
}

func TestAllocGrowsANewBlockOnOverflow(t *testing.T) {
	a := New()
	defer a.Destroy()

	_, err := a.Alloc(DefaultBlockSize - 8)
	require.NoError(t, err)
	before := a.Stats().Blocks

	_, err = a.Alloc(DefaultBlockSize)
	require.NoError(t, err)
	after := a.Stats().Blocks

	assert.Greater(t, after, before)
}

func TestSaveRestoreRewindsBumpPointer(t *testing.T) {
	a := New()
	defer a.Destroy()

	cp := a.Save()
	_, err := a.Alloc(256)
	require.NoError(t, err)
	used := a.Stats().BytesUsed

	a.Restore(cp)
	assert.Less(t, a.Stats().BytesUsed, used)
}

func TestResetFreesExtraBlocksAndRewindsFirst(t *testing.T) {
	a := New()
	defer a.Destroy()

	_, err := a.Alloc(DefaultBlockSize * 2)
	require.NoError(t, err)
	require.Greater(t, a.Stats().Blocks, 1)

	a.Reset()
	stats := a.Stats()
	assert.Equal(t, 1, stats.Blocks)
	assert.Equal(t, 0, stats.BytesUsed)
}

func TestNegativeAllocSizeIsRejected(t *testing.T) {
	a := New()
	defer a.Destroy()

	_, err := a.Alloc(-1)
	require.Error(t, err)
}
