package book

import (
	"errors"

	"github.com/google/btree"

	"github.com/lightsgoout/depthpricer/internal/fixedpoint"
)

// btreeDegree controls the branching factor of the per-side price-level
// trees. Grounded on the pack's own btree-backed order book
// (other_examples' orderbook_btree.go), which uses the same degree for
// the same reason: a handful of price-level comparisons per node beats
// pointer-chasing a balanced binary tree at this scale.
const btreeDegree = 32

type level struct {
	price fixedpoint.Price
	size  fixedpoint.Size
}

func levelLess(a, b level) bool {
	return a.price < b.price
}

var ErrLevelNotFound = errors.New("book: price level not found")

// sideBook is one side's ordered price-level map plus its running grand
// total. Bids and asks share the same ascending-by-price ordering; the
// direction of "best first" iteration is a traversal choice (Descend for
// bids, Ascend for asks), not a different tree shape — this keeps a single
// levelLess comparator for both sides.
type sideBook struct {
	tree  *btree.BTreeG[level]
	total fixedpoint.Size
}

// DepthBook holds the aggregated resting depth for both sides of a single
// instrument. It never stores individual orders — only the per-price
// aggregate size, reconstructed into per-order terms via the Order Index
// when a Reduce arrives (§9, "aggregation over per-order records").
type DepthBook struct {
	bid *sideBook
	ask *sideBook
}

// NewDepthBook constructs an empty book. levelCapacityHint presizes the
// underlying trees' node freelist, bounding allocator churn during
// steady-state inserts the way the teacher's static orderBookEntry arena
// bounded allocation for individual orders.
func NewDepthBook(levelCapacityHint int) *DepthBook {
	if levelCapacityHint <= 0 {
		levelCapacityHint = 64
	}
	fl := btree.NewFreeListG[level](levelCapacityHint)
	return &DepthBook{
		bid: &sideBook{tree: btree.NewWithFreeListG(btreeDegree, levelLess, fl)},
		ask: &sideBook{tree: btree.NewWithFreeListG(btreeDegree, levelLess, fl)},
	}
}

func (b *DepthBook) sideOf(side Side) *sideBook {
	if side == Bid {
		return b.bid
	}
	return b.ask
}

// Add increases the resting size at (side, price) by size, creating the
// level if it did not already exist, and adds size to the side's grand
// total.
func (b *DepthBook) Add(side Side, price fixedpoint.Price, size fixedpoint.Size) {
	sb := b.sideOf(side)
	existing, found := sb.tree.Get(level{price: price})
	if found {
		existing.size += size
		sb.tree.ReplaceOrInsert(existing)
	} else {
		sb.tree.ReplaceOrInsert(level{price: price, size: size})
	}
	sb.total += size
}

// Reduce decreases the resting size at (side, price) by size, removing the
// level entirely if its size reaches zero. The caller (the Order Index) is
// responsible for ensuring size does not exceed the level's current
// aggregate — this mirrors the precondition in §4.2.
func (b *DepthBook) Reduce(side Side, price fixedpoint.Price, size fixedpoint.Size) error {
	sb := b.sideOf(side)
	existing, found := sb.tree.Get(level{price: price})
	if !found {
		return ErrLevelNotFound
	}

	if size >= existing.size {
		sb.total -= existing.size
		sb.tree.Delete(existing)
		return nil
	}

	existing.size -= size
	sb.tree.ReplaceOrInsert(existing)
	sb.total -= size
	return nil
}

// GrandTotal returns the side's aggregate resting size in O(1).
func (b *DepthBook) GrandTotal(side Side) fixedpoint.Size {
	return b.sideOf(side).total
}

// LevelCount reports the number of live price levels on side, for tests and
// diagnostics.
func (b *DepthBook) LevelCount(side Side) int {
	return b.sideOf(side).tree.Len()
}

// WalkBest calls visit for each (price, size) level on side, best price
// first (highest for bids, lowest for asks), stopping early if visit
// returns false. This is the only traversal primitive the Pricer needs.
func (b *DepthBook) WalkBest(side Side, visit func(price fixedpoint.Price, size fixedpoint.Size) bool) {
	sb := b.sideOf(side)
	iter := func(lv level) bool {
		return visit(lv.price, lv.size)
	}
	if side == Bid {
		sb.tree.Descend(iter)
	} else {
		sb.tree.Ascend(iter)
	}
}

// Snapshot returns up to maxLevels (price, size) pairs best-first on side.
// Not part of the wire protocol (§6 is closed and exact) — exported for
// tests and diagnostics.
func (b *DepthBook) Snapshot(side Side, maxLevels int) []Level {
	if maxLevels <= 0 {
		return nil
	}
	out := make([]Level, 0, maxLevels)
	b.WalkBest(side, func(price fixedpoint.Price, size fixedpoint.Size) bool {
		out = append(out, Level{Price: price, Size: size})
		return len(out) < maxLevels
	})
	return out
}

// Level is an exported (price, size) pair for snapshot/inspection use.
type Level struct {
	Price fixedpoint.Price
	Size  fixedpoint.Size
}
