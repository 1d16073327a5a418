package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndFormatRoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"44.25", "44.2500"},
		{"44.26", "44.2600"},
		{"0.01", "0.0100"},
		{"100", "100.0000"},
		{"0", "0.0000"},
	}

	for _, c := range cases {
		p, err := Parse(c.in, DefaultPrecision)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, p.Format(DefaultPrecision), c.in)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse("", DefaultPrecision)
	assert.ErrorIs(t, err, ErrEmptyPrice)

	_, err = Parse("4a.25", DefaultPrecision)
	assert.ErrorIs(t, err, ErrBadPrice)

	_, err = Parse("44.25000", DefaultPrecision)
	assert.ErrorIs(t, err, ErrTooManyFrac)
}

func TestFormatLeftPadsSmallValues(t *testing.T) {
	p := Price(5)
	assert.Equal(t, "0.0005", p.Format(4))
}

func TestScaledComparisonIsExact(t *testing.T) {
	a, err := Parse("44.26", 4)
	require.NoError(t, err)
	b, err := Parse("44.25", 4)
	require.NoError(t, err)
	assert.True(t, a > b)
}
