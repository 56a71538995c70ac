package model_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"q.log/gomory/model"
	"q.log/gomory/rational"
)

func vec(vals ...int64) []rational.Rational {
	out := make([]rational.Rational, len(vals))
	for i, v := range vals {
		out[i] = rational.New(v)
	}
	return out
}

func strs(vals []rational.Rational) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.String()
	}
	return out
}

func TestNewRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		c    []rational.Rational
		a    [][]rational.Rational
		b    []rational.Rational
		rels []model.Relation
		dir  model.Direction
	}{
		{"empty objective", nil, [][]rational.Rational{vec(1)}, vec(1), []model.Relation{model.LessEq}, model.Maximize},
		{"no rows", vec(1), nil, nil, nil, model.Maximize},
		{"short row", vec(1, 2), [][]rational.Rational{vec(1)}, vec(1), []model.Relation{model.LessEq}, model.Maximize},
		{"missing rhs", vec(1), [][]rational.Rational{vec(1), vec(2)}, vec(1), []model.Relation{model.LessEq, model.LessEq}, model.Maximize},
		{"missing relation", vec(1), [][]rational.Rational{vec(1)}, vec(1), nil, model.Maximize},
		{"bad relation", vec(1), [][]rational.Rational{vec(1)}, vec(1), []model.Relation{"<"}, model.Maximize},
		{"bad direction", vec(1), [][]rational.Rational{vec(1)}, vec(1), []model.Relation{model.LessEq}, "up"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.New(tc.c, tc.a, tc.b, tc.rels, tc.dir, false)
			require.ErrorIs(t, err, model.ErrInvalidProblem)
		})
	}
}

func TestCanonicalNegatesMinimize(t *testing.T) {
	m, err := model.New(vec(1, -2), [][]rational.Rational{vec(1, 1)}, vec(2),
		[]model.Relation{model.GreaterEq}, model.Minimize, false)
	require.NoError(t, err)

	c := m.Canonical()
	assert.Equal(t, []string{"-1", "2"}, strs(c.C))
	assert.Equal(t, model.Minimize, c.Direction)
	// input model untouched
	assert.Equal(t, []string{"1", "-2"}, strs(m.C))
}

func TestCanonicalFlipsNegativeRows(t *testing.T) {
	m, err := model.New(vec(1, 1),
		[][]rational.Rational{vec(1, -2), vec(3, 1), vec(-1, 4), vec(2, 2)},
		vec(-5, -1, 3, -4),
		[]model.Relation{model.Equal, model.LessEq, model.GreaterEq, model.GreaterEq},
		model.Maximize, false)
	require.NoError(t, err)

	c := m.Canonical()

	// an "=" row with rhs -5 is negated and stays "="
	assert.Equal(t, []string{"-1", "2"}, strs(c.A[0]))
	assert.Equal(t, "5", c.B[0].String())
	assert.Equal(t, model.Equal, c.Relations[0])

	assert.Equal(t, []string{"-3", "-1"}, strs(c.A[1]))
	assert.Equal(t, model.GreaterEq, c.Relations[1])

	assert.Equal(t, []string{"-1", "4"}, strs(c.A[2]))
	assert.Equal(t, model.GreaterEq, c.Relations[2])

	assert.Equal(t, model.LessEq, c.Relations[3])
	assert.Equal(t, []string{"5", "1", "3", "4"}, strs(c.B))

	assert.Equal(t, "-5", m.B[0].String())
}

func TestSettersAndAddRow(t *testing.T) {
	m := model.NewModel(1, 2)
	require.NoError(t, m.SetC(vec(2, 3)))
	require.NoError(t, m.SetA(vec(1, 1)))
	require.NoError(t, m.SetB(vec(4)))
	require.NoError(t, m.AddRow(vec(1, 3), model.LessEq, rational.New(6)))
	require.NoError(t, m.Validate())

	assert.Equal(t, 2, m.NumRows)
	assert.Equal(t, []model.Relation{model.LessEq, model.LessEq}, m.Relations)

	require.ErrorIs(t, m.SetC(vec(1)), model.ErrInvalidProblem)
	require.ErrorIs(t, m.SetA(vec(1, 2, 3)), model.ErrInvalidProblem)
	require.ErrorIs(t, m.SetB(vec(1, 2, 3)), model.ErrInvalidProblem)
	require.ErrorIs(t, m.AddRow(vec(1), model.LessEq, rational.One), model.ErrInvalidProblem)
	require.ErrorIs(t, m.MultiplyConstraint(5, rational.One), model.ErrInvalidProblem)
	require.ErrorIs(t, m.MultiplyConstraint(0, rational.Zero), model.ErrInvalidProblem)
}

func TestParseRelation(t *testing.T) {
	for in, want := range map[string]model.Relation{
		"<=": model.LessEq, "≤": model.LessEq,
		">=": model.GreaterEq, "≥": model.GreaterEq,
		"=": model.Equal, "==": model.Equal,
	} {
		got, err := model.ParseRelation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := model.ParseRelation("<")
	require.ErrorIs(t, err, model.ErrInvalidProblem)
}

func TestFromFloats(t *testing.T) {
	m, err := model.FromFloats([]float64{0.5, 1}, [][]float64{{0.1, 2}}, []float64{3},
		[]model.Relation{model.LessEq}, model.Maximize, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"1/2", "1"}, strs(m.C))
	assert.Equal(t, "1/10", m.A[0][0].String())
	assert.True(t, m.Integer)
}

func TestReadYAML(t *testing.T) {
	src := `
direction: min
integer: true
objective: [1, "1/2"]
constraints:
  - {coefficients: [1, 1], relation: ">=", rhs: 2}
  - {coefficients: [0.5, -3], relation: "≤", rhs: -1}
`
	m, err := model.ReadYAML(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, model.Minimize, m.Direction)
	assert.True(t, m.Integer)
	assert.Equal(t, []string{"1", "1/2"}, strs(m.C))
	assert.Equal(t, []string{"1/2", "-3"}, strs(m.A[1]))
	assert.Equal(t, []model.Relation{model.GreaterEq, model.LessEq}, m.Relations)
	assert.Equal(t, []string{"2", "-1"}, strs(m.B))
}

func TestReadYAMLErrors(t *testing.T) {
	tests := map[string]string{
		"bad number":    "objective: [x]\nconstraints:\n  - {coefficients: [1], relation: '<=', rhs: 1}\n",
		"bad relation":  "objective: [1]\nconstraints:\n  - {coefficients: [1], relation: '<', rhs: 1}\n",
		"bad direction": "direction: sideways\nobjective: [1]\n",
		"shape":         "objective: [1, 2]\nconstraints:\n  - {coefficients: [1], relation: '<=', rhs: 1}\n",
		"not yaml":      "objective: [1\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := model.ReadYAML(strings.NewReader(src))
			require.ErrorIs(t, err, model.ErrInvalidProblem)
		})
	}
}

func TestPrint(t *testing.T) {
	m, err := model.New(vec(2, 3), [][]rational.Rational{vec(1, 1), vec(1, 3)}, vec(4, 6),
		[]model.Relation{model.LessEq, model.LessEq}, model.Maximize, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	m.PrintC(&buf)
	m.PrintA(&buf)
	m.PrintB(&buf)
	out := buf.String()
	assert.Contains(t, out, "c = ")
	assert.Contains(t, out, "A = ")
	assert.Contains(t, out, "b = ")

	r, c := m.ADense().Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 3.0, m.ADense().At(1, 1))
}

func TestLoadYAML(t *testing.T) {
	m, err := model.LoadYAML("testdata/cut.yaml")
	require.NoError(t, err)
	assert.True(t, m.Integer)
	assert.Equal(t, 1, m.NumRows)
	assert.Equal(t, []string{"2", "2"}, strs(m.A[0]))

	_, err = model.LoadYAML("testdata/missing.yaml")
	require.Error(t, err)
}
