package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightsgoout/depthpricer/internal/fixedpoint"
)

func TestDepthBookAddAggregatesAtSamePrice(t *testing.T) {
	b := NewDepthBook(8)
	b.Add(Bid, 442500, 100)
	b.Add(Bid, 442500, 50)

	assert.Equal(t, fixedpoint.Size(150), b.GrandTotal(Bid))
	assert.Equal(t, 1, b.LevelCount(Bid))
}

func TestDepthBookReduceRemovesEmptyLevel(t *testing.T) {
	b := NewDepthBook(8)
	b.Add(Bid, 442500, 100)

	require.NoError(t, b.Reduce(Bid, 442500, 100))
	assert.Equal(t, fixedpoint.Size(0), b.GrandTotal(Bid))
	assert.Equal(t, 0, b.LevelCount(Bid))
}

func TestDepthBookReduceUnknownLevel(t *testing.T) {
	b := NewDepthBook(8)
	err := b.Reduce(Bid, 1, 1)
	assert.ErrorIs(t, err, ErrLevelNotFound)
}

func TestWalkBestOrdersBidsDescendingAsksAscending(t *testing.T) {
	b := NewDepthBook(8)
	b.Add(Bid, 100, 1)
	b.Add(Bid, 300, 1)
	b.Add(Bid, 200, 1)

	var bidOrder []fixedpoint.Price
	b.WalkBest(Bid, func(price fixedpoint.Price, size fixedpoint.Size) bool {
		bidOrder = append(bidOrder, price)
		return true
	})
	assert.Equal(t, []fixedpoint.Price{300, 200, 100}, bidOrder)

	b.Add(Ask, 105, 1)
	b.Add(Ask, 103, 1)
	b.Add(Ask, 110, 1)

	var askOrder []fixedpoint.Price
	b.WalkBest(Ask, func(price fixedpoint.Price, size fixedpoint.Size) bool {
		askOrder = append(askOrder, price)
		return true
	})
	assert.Equal(t, []fixedpoint.Price{103, 105, 110}, askOrder)
}

func TestSnapshotRespectsMaxLevels(t *testing.T) {
	b := NewDepthBook(8)
	b.Add(Ask, 10, 1)
	b.Add(Ask, 20, 1)
	b.Add(Ask, 30, 1)

	snap := b.Snapshot(Ask, 2)
	require.Len(t, snap, 2)
	assert.Equal(t, fixedpoint.Price(10), snap[0].Price)
	assert.Equal(t, fixedpoint.Price(20), snap[1].Price)
}
