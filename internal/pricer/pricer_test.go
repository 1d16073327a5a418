package pricer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lightsgoout/depthpricer/internal/book"
	"github.com/lightsgoout/depthpricer/internal/fixedpoint"
)

func TestPriceUnmarketableBelowTarget(t *testing.T) {
	b := book.NewDepthBook(8)
	b.Add(book.Bid, 4425, 50)

	p := New(200)
	state := p.Price(b, book.Bid)
	assert.False(t, state.Marketable)
}

func TestPriceWalksMultipleLevels(t *testing.T) {
	b := book.NewDepthBook(8)
	b.Add(book.Bid, 442600, 100)
	b.Add(book.Bid, 442500, 100)

	p := New(200)
	state := p.Price(b, book.Bid)
	assert.True(t, state.Marketable)
	assert.Equal(t, fixedpoint.Price(100*442600+100*442500), state.Value)
}

func TestEvaluateSuppressesUnchangedValue(t *testing.T) {
	b := book.NewDepthBook(8)
	b.Add(book.Bid, 442500, 300)

	p := New(200)
	first := p.Evaluate(b, book.Bid)
	assert.True(t, first.Emit)

	second := p.Evaluate(b, book.Bid)
	assert.False(t, second.Emit)
}

func TestEvaluateEmitsWithdrawalOnlyOnTransition(t *testing.T) {
	b := book.NewDepthBook(8)
	b.Add(book.Bid, 442500, 200)

	p := New(200)
	first := p.Evaluate(b, book.Bid)
	assert.True(t, first.Emit)
	assert.False(t, first.Withdrawal)

	err := b.Reduce(book.Bid, 442500, 200)
	assert.NoError(t, err)

	second := p.Evaluate(b, book.Bid)
	assert.True(t, second.Emit)
	assert.True(t, second.Withdrawal)

	third := p.Evaluate(b, book.Bid)
	assert.False(t, third.Emit)
}

func TestEvaluateNeverReportsOnFirstUnmarketableQuery(t *testing.T) {
	b := book.NewDepthBook(8)
	p := New(200)
	r := p.Evaluate(b, book.Bid)
	assert.False(t, r.Emit)
}

func TestOtherSideUntouched(t *testing.T) {
	b := book.NewDepthBook(8)
	b.Add(book.Bid, 442500, 300)
	b.Add(book.Ask, 442800, 300)

	p := New(200)
	bidReport := p.Evaluate(b, book.Bid)
	askReport := p.Evaluate(b, book.Ask)

	assert.True(t, bidReport.Emit)
	assert.True(t, askReport.Emit)

	bidAgain := p.Evaluate(b, book.Bid)
	assert.False(t, bidAgain.Emit)
}
