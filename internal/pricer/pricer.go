// Package pricer implements the cumulative execution pricing algorithm and
// the per-side report-suppression state machine described in spec.md §4.3.
package pricer

import (
	"github.com/lightsgoout/depthpricer/internal/book"
	"github.com/lightsgoout/depthpricer/internal/fixedpoint"
)

// State is the reported state for one side: either a concrete fixed-point
// value or the "unmarketable" sentinel.
type State struct {
	Marketable bool
	Value      fixedpoint.Price
}

func unmarketable() State { return State{Marketable: false} }

// Report describes what, if anything, should be emitted for a side after
// an event. Emit is false when nothing changed and the Pricer produced no
// output.
type Report struct {
	Side       book.Side
	Emit       bool
	Withdrawal bool
	Value      fixedpoint.Price
}

// Pricer tracks, per side, the last state it reported and decides whether
// a fresh evaluation should produce output.
type Pricer struct {
	targetSize fixedpoint.Size
	last       [2]State
	haveLast   [2]bool
}

// New builds a Pricer for a fixed target_size. Neither side has a prior
// report on construction.
func New(targetSize fixedpoint.Size) *Pricer {
	return &Pricer{targetSize: targetSize}
}

// Price walks side best-first on b, accumulating size*price until
// target_size shares are reached. It returns the computed State without
// touching or consulting suppression history — callers needing the
// suppression behaviour use Evaluate.
func (p *Pricer) Price(b *book.DepthBook, side book.Side) State {
	if b.GrandTotal(side) < p.targetSize {
		return unmarketable()
	}

	var remaining = p.targetSize
	var value fixedpoint.Price

	b.WalkBest(side, func(price fixedpoint.Price, size fixedpoint.Size) bool {
		take := remaining
		if size < take {
			take = size
		}
		value += fixedpoint.Price(uint64(take)) * price
		remaining -= take
		return remaining > 0
	})

	return State{Marketable: true, Value: value}
}

// Evaluate re-prices side and compares the result against the last state
// reported for that side, producing a Report that tells the caller whether
// to emit a line and what it should say. This is the suppression logic of
// §4.3: unmarketable-to-unmarketable emits nothing, a transition to
// unmarketable emits a withdrawal, an unchanged concrete value emits
// nothing, and anything else emits the new value.
func (p *Pricer) Evaluate(b *book.DepthBook, side book.Side) Report {
	next := p.Price(b, side)
	idx := sideIndex(side)
	prevKnown := p.haveLast[idx]
	prev := p.last[idx]

	p.last[idx] = next
	p.haveLast[idx] = true

	if !next.Marketable {
		if prevKnown && !prev.Marketable {
			return Report{Side: side}
		}
		if !prevKnown {
			return Report{Side: side}
		}
		return Report{Side: side, Emit: true, Withdrawal: true}
	}

	if prevKnown && prev.Marketable && prev.Value == next.Value {
		return Report{Side: side}
	}

	return Report{Side: side, Emit: true, Value: next.Value}
}

func sideIndex(s book.Side) int {
	if s == book.Bid {
		return 0
	}
	return 1
}
