package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightsgoout/depthpricer/internal/fixedpoint"
)

func TestIndexInsertLookupReduce(t *testing.T) {
	idx := NewIndex(8)
	id := HashOrderID("b1")

	require.NoError(t, idx.Insert(id, "b1", Bid, 4425, 100))

	rec, err := idx.Lookup(id)
	require.NoError(t, err)
	assert.Equal(t, Bid, rec.Side)
	assert.Equal(t, fixedpoint.Price(4425), rec.Price)
	assert.Equal(t, fixedpoint.Size(100), rec.Size)

	before, effective, removed, err := idx.Reduce(id, 40)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, fixedpoint.Size(40), effective)
	assert.Equal(t, fixedpoint.Price(4425), before.Price)

	rec, err = idx.Lookup(id)
	require.NoError(t, err)
	assert.Equal(t, fixedpoint.Size(60), rec.Size)
}

func TestIndexReduceBeyondRemainingIsClampedAndRemoves(t *testing.T) {
	idx := NewIndex(8)
	id := HashOrderID("b1")
	require.NoError(t, idx.Insert(id, "b1", Bid, 4425, 100))

	_, effective, removed, err := idx.Reduce(id, 1000)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, fixedpoint.Size(100), effective)

	_, err = idx.Lookup(id)
	assert.ErrorIs(t, err, ErrUnknownOrder)
}

func TestIndexDuplicateInsert(t *testing.T) {
	idx := NewIndex(8)
	id := HashOrderID("x")
	require.NoError(t, idx.Insert(id, "x", Bid, 1, 5))
	err := idx.Insert(id, "x", Ask, 1, 5)
	assert.ErrorIs(t, err, ErrDuplicateOrder)
}

func TestIndexReduceUnknownOrder(t *testing.T) {
	idx := NewIndex(8)
	_, _, _, err := idx.Reduce(HashOrderID("ghost"), 1)
	assert.ErrorIs(t, err, ErrUnknownOrder)
}
