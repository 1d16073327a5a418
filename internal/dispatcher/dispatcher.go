// Package dispatcher implements the minimal event-driven state machine
// described in spec.md §4.5: for each input event, mutate the Depth Book
// and then re-price only the side that event touched.
package dispatcher

import (
	"github.com/lightsgoout/depthpricer/internal/book"
	"github.com/lightsgoout/depthpricer/internal/fixedpoint"
	"github.com/lightsgoout/depthpricer/internal/pricer"
)

// Kind distinguishes the two event records the wire protocol carries.
type Kind byte

const (
	KindAdd    Kind = 'A'
	KindReduce Kind = 'R'
)

// Event is a single parsed input line. Only the fields relevant to Kind
// are meaningful: Side/Price are unused on a Reduce, since a Reduce
// carries only order_id and a decrement amount (§6).
type Event struct {
	Timestamp int64
	Kind      Kind
	OrderRaw  string
	Side      book.Side
	Price     fixedpoint.Price
	Size      fixedpoint.Size
}

// Dispatcher owns the Order Index, Depth Book, and Pricer for one
// instrument and applies events against them in order. Nothing here holds
// a reference that outlives a single Apply call, matching §5's "no shared
// resources beyond the event dispatcher" model.
type Dispatcher struct {
	index *book.Index
	depth *book.DepthBook
	price *pricer.Pricer
}

// New constructs a Dispatcher. orderCapacityHint and levelCapacityHint
// presize the Order Index and the Depth Book's level trees respectively
// (§5's memory policy, §9's pre-sized containers note).
func New(targetSize fixedpoint.Size, orderCapacityHint, levelCapacityHint int) *Dispatcher {
	return &Dispatcher{
		index: book.NewIndex(orderCapacityHint),
		depth: book.NewDepthBook(levelCapacityHint),
		price: pricer.New(targetSize),
	}
}

// Apply mutates the book for ev and re-prices the side it touched,
// returning the Pricer's report for that side. Apply returns the input
// faults in §7 (DuplicateOrder, HashCollision, UnknownOrder),
// ErrUnknownEventKind for an unrecognised Kind, and the Depth Book's
// ErrLevelNotFound if the index and book ever disagree; once an event is
// well-formed and valid, pricing itself cannot fail.
func (d *Dispatcher) Apply(ev Event) (pricer.Report, error) {
	switch ev.Kind {
	case KindAdd:
		return d.applyAdd(ev)
	case KindReduce:
		return d.applyReduce(ev)
	default:
		return pricer.Report{}, ErrUnknownEventKind
	}
}

func (d *Dispatcher) applyAdd(ev Event) (pricer.Report, error) {
	id := book.HashOrderID(ev.OrderRaw)
	if err := d.index.Insert(id, ev.OrderRaw, ev.Side, ev.Price, ev.Size); err != nil {
		return pricer.Report{}, err
	}
	d.depth.Add(ev.Side, ev.Price, ev.Size)
	return d.price.Evaluate(d.depth, ev.Side), nil
}

func (d *Dispatcher) applyReduce(ev Event) (pricer.Report, error) {
	id := book.HashOrderID(ev.OrderRaw)
	before, effective, _, err := d.index.Reduce(id, ev.Size)
	if err != nil {
		return pricer.Report{}, err
	}
	if err := d.depth.Reduce(before.Side, before.Price, effective); err != nil {
		return pricer.Report{}, err
	}
	return d.price.Evaluate(d.depth, before.Side), nil
}

// Book exposes the underlying Depth Book for diagnostics and tests. Nothing in the hot dispatch path depends on this
// accessor existing.
func (d *Dispatcher) Book() *book.DepthBook { return d.depth }

// OrderCount reports the number of live orders, for diagnostics and tests.
func (d *Dispatcher) OrderCount() int { return d.index.Len() }
