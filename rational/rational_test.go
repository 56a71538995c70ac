package rational_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"q.log/gomory/rational"
)

func TestArithmetic(t *testing.T) {
	a := rational.Frac(1, 3)
	b := rational.Frac(1, 6)

	assert.Equal(t, "1/2", a.Add(b).String())
	assert.Equal(t, "1/6", a.Sub(b).String())
	assert.Equal(t, "1/18", a.Mul(b).String())

	q, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, "2", q.String())
	assert.True(t, q.IsInteger())

	// operands are untouched
	assert.Equal(t, "1/3", a.String())
	assert.Equal(t, "1/6", b.String())
}

func TestDivisionByZero(t *testing.T) {
	_, err := rational.One.Div(rational.Zero)
	require.ErrorIs(t, err, rational.ErrDivisionByZero)

	assert.Panics(t, func() { rational.One.MustDiv(rational.Zero) })
	assert.Panics(t, func() { rational.Frac(1, 0) })
}

func TestZeroValue(t *testing.T) {
	var z rational.Rational
	assert.True(t, z.IsZero())
	assert.True(t, z.IsInteger())
	assert.Equal(t, "0", z.String())
	assert.Equal(t, "5", z.Add(rational.New(5)).String())
}

func TestFloorAndFracPart(t *testing.T) {
	tests := []struct {
		in    rational.Rational
		floor string
		frac  string
	}{
		{rational.Frac(7, 2), "3", "1/2"},
		{rational.Frac(-7, 2), "-4", "1/2"},
		{rational.Frac(-1, 3), "-1", "2/3"},
		{rational.New(4), "4", "0"},
		{rational.New(-4), "-4", "0"},
		{rational.Zero, "0", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.in.String(), func(t *testing.T) {
			assert.Equal(t, tc.floor, tc.in.Floor().String())
			assert.Equal(t, tc.frac, tc.in.FracPart().String())
		})
	}
}

func TestOrdering(t *testing.T) {
	a := rational.Frac(2, 3)
	b := rational.Frac(4, 6)
	c := rational.Frac(3, 4)

	assert.True(t, a.Equal(b))
	assert.True(t, a.Less(c))
	assert.Equal(t, 1, c.Cmp(a))
	assert.Equal(t, -1, a.Neg().Sign())
	assert.Equal(t, "2/3", a.Neg().Abs().String())
	assert.True(t, rational.Frac(3, 3).IsOne())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3", "3"},
		{"-3/4", "-3/4"},
		{"1.25", "5/4"},
		{"1e3", "1000"},
		{"6/4", "3/2"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := rational.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}

	_, err := rational.Parse("x1")
	require.ErrorIs(t, err, rational.ErrSyntax)
}

func TestFromFloat(t *testing.T) {
	got, err := rational.FromFloat(0.1)
	require.NoError(t, err)
	assert.Equal(t, "1/10", got.String())
	assert.InDelta(t, 0.1, got.Float64(), 1e-15)

	_, err = rational.FromFloat(math.NaN())
	require.ErrorIs(t, err, rational.ErrNotFinite)
	_, err = rational.FromFloat(math.Inf(-1))
	require.ErrorIs(t, err, rational.ErrNotFinite)
}

func TestText(t *testing.T) {
	var r rational.Rational
	require.NoError(t, r.UnmarshalText([]byte("5/10")))
	out, err := r.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1/2", string(out))
}
