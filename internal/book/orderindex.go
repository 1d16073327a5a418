package book

import (
	"errors"

	"github.com/cespare/xxhash/v2"

	"github.com/lightsgoout/depthpricer/internal/fixedpoint"
)

// OrderID is the hashed form of the external string order identifier.
// Hashing it once at ingest keeps every subsequent index lookup a plain
// 64-bit map probe instead of a string comparison — the design note in
// §9 that motivates this is the hot-path cost of Reduce events.
type OrderID uint64

// HashOrderID derives the internal OrderID from the raw token on the wire.
// xxhash is a non-cryptographic 64-bit hash, the same class of hash §3
// calls for (FNV-1a "or equivalent").
func HashOrderID(raw string) OrderID {
	return OrderID(xxhash.Sum64String(raw))
}

// OrderRecord is the static attribute set of one live resting order.
type OrderRecord struct {
	Raw   string
	Side  Side
	Price fixedpoint.Price
	Size  fixedpoint.Size
}

var (
	ErrDuplicateOrder = errors.New("orderindex: duplicate order id")
	ErrUnknownOrder   = errors.New("orderindex: unknown order id")
	ErrHashCollision  = errors.New("orderindex: hash collision between distinct order ids")
)

// Index maps a hashed OrderID to the order's resting attributes. It is the
// sole component that can resolve a Reduce event's bare order_id + amount
// into the (side, price) pair the Depth Book needs to mutate.
type Index struct {
	entries map[OrderID]OrderRecord
}

// NewIndex builds an index pre-sized for capacityHint live orders, per the
// memory policy in §5/§9: the expected order population should be
// reservable up front so steady-state Add/Reduce processing does not grow
// the map.
func NewIndex(capacityHint int) *Index {
	return &Index{entries: make(map[OrderID]OrderRecord, capacityHint)}
}

// Insert records a newly-arrived order. It fails with ErrDuplicateOrder if
// id is already live, and with ErrHashCollision if id is live but under a
// different raw token (two distinct external ids hashing to the same
// 64-bit OrderID — astronomically unlikely, but checked per §7/§9).
func (idx *Index) Insert(id OrderID, raw string, side Side, price fixedpoint.Price, size fixedpoint.Size) error {
	if existing, ok := idx.entries[id]; ok {
		if existing.Raw != raw {
			return ErrHashCollision
		}
		return ErrDuplicateOrder
	}
	idx.entries[id] = OrderRecord{Raw: raw, Side: side, Price: price, Size: size}
	return nil
}

// Lookup returns the live record for id, or ErrUnknownOrder.
func (idx *Index) Lookup(id OrderID) (OrderRecord, error) {
	rec, ok := idx.entries[id]
	if !ok {
		return OrderRecord{}, ErrUnknownOrder
	}
	return rec, nil
}

// Reduce decrements id's resting size by amount, clamped to the size
// actually remaining (a reduce that over-shoots is treated as a full
// removal, matching the feed's "reduce to zero" semantics). It returns the
// pre-reduction record (so the caller can locate the level to mutate), the
// effective decrement applied, and whether the order was fully removed.
func (idx *Index) Reduce(id OrderID, amount fixedpoint.Size) (before OrderRecord, effective fixedpoint.Size, removed bool, err error) {
	rec, ok := idx.entries[id]
	if !ok {
		return OrderRecord{}, 0, false, ErrUnknownOrder
	}

	before = rec
	effective = amount
	if effective > rec.Size {
		effective = rec.Size
	}

	rec.Size -= effective
	if rec.Size == 0 {
		delete(idx.entries, id)
		return before, effective, true, nil
	}

	idx.entries[id] = rec
	return before, effective, false, nil
}

// Remove deletes id unconditionally. Reduce already deletes an order it
// fully consumes, so Remove is not needed after a Reduce.
func (idx *Index) Remove(id OrderID) {
	delete(idx.entries, id)
}

// Len reports the number of live orders, mainly for tests and diagnostics.
func (idx *Index) Len() int {
	return len(idx.entries)
}
