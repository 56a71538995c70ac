package model

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
	"q.log/gomory/rational"
)

type Relation string

const (
	LessEq    Relation = "<="
	GreaterEq Relation = ">="
	Equal     Relation = "="
)

// ParseRelation accepts both the ASCII and the typographic spellings.
func ParseRelation(s string) (Relation, error) {
	switch s {
	case "<=", "≤":
		return LessEq, nil
	case ">=", "≥":
		return GreaterEq, nil
	case "=", "==":
		return Equal, nil
	}
	return "", fmt.Errorf("%w: unknown relation %q", ErrInvalidProblem, s)
}

// Flip is the relation obtained by multiplying both sides by -1.
func (r Relation) Flip() Relation {
	switch r {
	case LessEq:
		return GreaterEq
	case GreaterEq:
		return LessEq
	}
	return r
}

func (r Relation) valid() bool {
	return r == LessEq || r == GreaterEq || r == Equal
}

type Direction string

const (
	Maximize Direction = "max"
	Minimize Direction = "min"
)

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "max", "maximize", "":
		return Maximize, nil
	case "min", "minimize":
		return Minimize, nil
	}
	return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidProblem, s)
}

// Model is a linear program
//
//	max|min  C·x
//	s.t.     A[i]·x  Relations[i]  B[i]
//	         x >= 0
//
// with x integral when Integer is set.
type Model struct {
	//C objective function coefficients
	C []rational.Rational

	//A constraints matrix
	A [][]rational.Rational

	//B constraints rhs
	B []rational.Rational

	Relations []Relation
	Direction Direction
	Integer   bool

	NumRows int
	NumCols int
}

// NewModel returns an all-zero maximization problem with every row "<=".
func NewModel(numRows, numCols int) *Model {
	m := &Model{
		C:         make([]rational.Rational, numCols),
		A:         make([][]rational.Rational, numRows),
		B:         make([]rational.Rational, numRows),
		Relations: make([]Relation, numRows),
		Direction: Maximize,
		NumRows:   numRows,
		NumCols:   numCols,
	}
	for r := 0; r < numRows; r++ {
		m.A[r] = make([]rational.Rational, numCols)
		m.Relations[r] = LessEq
	}
	return m
}

// New builds and validates a model from exact data. The slices are copied.
func New(c []rational.Rational, a [][]rational.Rational, b []rational.Rational, rels []Relation, dir Direction, integer bool) (*Model, error) {
	m := &Model{
		C:         append([]rational.Rational(nil), c...),
		A:         make([][]rational.Rational, len(a)),
		B:         append([]rational.Rational(nil), b...),
		Relations: append([]Relation(nil), rels...),
		Direction: dir,
		Integer:   integer,
		NumRows:   len(a),
		NumCols:   len(c),
	}
	for r, row := range a {
		m.A[r] = append([]rational.Rational(nil), row...)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// FromFloats is New for float input; every value is converted exactly
// through its decimal representation.
func FromFloats(c []float64, a [][]float64, b []float64, rels []Relation, dir Direction, integer bool) (*Model, error) {
	cr, err := floatsToRationals(c)
	if err != nil {
		return nil, fmt.Errorf("%w: objective: %v", ErrInvalidProblem, err)
	}
	ar := make([][]rational.Rational, len(a))
	for r, row := range a {
		if ar[r], err = floatsToRationals(row); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidProblem, r+1, err)
		}
	}
	br, err := floatsToRationals(b)
	if err != nil {
		return nil, fmt.Errorf("%w: rhs: %v", ErrInvalidProblem, err)
	}
	return New(cr, ar, br, rels, dir, integer)
}

func floatsToRationals(vec []float64) ([]rational.Rational, error) {
	out := make([]rational.Rational, len(vec))
	for i, v := range vec {
		r, err := rational.FromFloat(v)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (m *Model) SetC(cVec []rational.Rational) error {
	if len(cVec) != m.NumCols {
		return fmt.Errorf("%w: mismatch number of variables", ErrInvalidProblem)
	}
	m.C = append([]rational.Rational(nil), cVec...)
	return nil
}

// SetA takes the matrix in row-major order.
func (m *Model) SetA(aVec []rational.Rational) error {
	if len(aVec) != m.NumCols*m.NumRows {
		return fmt.Errorf("%w: mismatch number of variables and/or constraints", ErrInvalidProblem)
	}
	for r := 0; r < m.NumRows; r++ {
		m.A[r] = append([]rational.Rational(nil), aVec[r*m.NumCols:(r+1)*m.NumCols]...)
	}
	return nil
}

func (m *Model) SetB(bVec []rational.Rational) error {
	if len(bVec) != m.NumRows {
		return fmt.Errorf("%w: mismatch number of constraints", ErrInvalidProblem)
	}
	m.B = append([]rational.Rational(nil), bVec...)
	return nil
}

func (m *Model) SetRelations(rels []Relation) error {
	if len(rels) != m.NumRows {
		return fmt.Errorf("%w: mismatch number of relations", ErrInvalidProblem)
	}
	m.Relations = append([]Relation(nil), rels...)
	return nil
}

func (m *Model) AddRow(rVec []rational.Rational, rel Relation, rhs rational.Rational) error {
	if len(rVec) != m.NumCols {
		return fmt.Errorf("%w: mismatch number of columns, i.e. wrong len of rVec", ErrInvalidProblem)
	}
	if !rel.valid() {
		return fmt.Errorf("%w: unknown relation %q", ErrInvalidProblem, rel)
	}

	m.A = append(m.A, append([]rational.Rational(nil), rVec...))
	m.B = append(m.B, rhs)
	m.Relations = append(m.Relations, rel)
	m.NumRows++
	return nil
}

// MultiplyConstraint scales row and its rhs by mul, flipping the relation
// when mul is negative.
func (m *Model) MultiplyConstraint(row int, mul rational.Rational) error {
	if row < 0 || row >= m.NumRows {
		return fmt.Errorf("%w: row %d does not exist", ErrInvalidProblem, row)
	}
	if mul.IsZero() {
		return fmt.Errorf("%w: cannot scale row %d by zero", ErrInvalidProblem, row)
	}

	for col := 0; col < m.NumCols; col++ {
		m.A[row][col] = m.A[row][col].Mul(mul)
	}
	m.B[row] = m.B[row].Mul(mul)
	if mul.Sign() < 0 {
		m.Relations[row] = m.Relations[row].Flip()
	}
	return nil
}

// Validate checks that every vector agrees with NumRows and NumCols.
func (m *Model) Validate() error {
	switch {
	case m.NumCols == 0 || len(m.C) != m.NumCols:
		return fmt.Errorf("%w: objective has %d coefficients, want %d > 0", ErrInvalidProblem, len(m.C), m.NumCols)
	case m.NumRows == 0 || len(m.A) != m.NumRows:
		return fmt.Errorf("%w: %d constraint rows, want %d > 0", ErrInvalidProblem, len(m.A), m.NumRows)
	case len(m.B) != m.NumRows:
		return fmt.Errorf("%w: %d right-hand sides for %d rows", ErrInvalidProblem, len(m.B), m.NumRows)
	case len(m.Relations) != m.NumRows:
		return fmt.Errorf("%w: %d relations for %d rows", ErrInvalidProblem, len(m.Relations), m.NumRows)
	case m.Direction != Maximize && m.Direction != Minimize:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidProblem, m.Direction)
	}
	for r, row := range m.A {
		if len(row) != m.NumCols {
			return fmt.Errorf("%w: row %d has %d coefficients, want %d", ErrInvalidProblem, r+1, len(row), m.NumCols)
		}
		if !m.Relations[r].valid() {
			return fmt.Errorf("%w: row %d: unknown relation %q", ErrInvalidProblem, r+1, m.Relations[r])
		}
	}
	return nil
}

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	c := *m
	c.C = append([]rational.Rational(nil), m.C...)
	c.B = append([]rational.Rational(nil), m.B...)
	c.Relations = append([]Relation(nil), m.Relations...)
	c.A = make([][]rational.Rational, len(m.A))
	for r, row := range m.A {
		c.A[r] = append([]rational.Rational(nil), row...)
	}
	return &c
}

// Canonical returns the always-maximize form of m with non-negative right
// hand sides. Direction is kept so the final objective can be reported in
// the caller's sense; m itself is left untouched.
func (m *Model) Canonical() *Model {
	c := m.Clone()
	if c.Direction == Minimize {
		for i := range c.C {
			c.C[i] = c.C[i].Neg()
		}
	}
	minusOne := rational.New(-1)
	for r := 0; r < c.NumRows; r++ {
		if c.B[r].Sign() < 0 {
			_ = c.MultiplyConstraint(r, minusOne)
		}
	}
	return c
}

// CDense, ADense and BDense return decimal approximations for display.
func (m *Model) CDense() *mat.Dense {
	return mat.NewDense(1, m.NumCols, toFloats(m.C))
}

func (m *Model) ADense() *mat.Dense {
	data := make([]float64, 0, m.NumRows*m.NumCols)
	for _, row := range m.A {
		data = append(data, toFloats(row)...)
	}
	return mat.NewDense(m.NumRows, m.NumCols, data)
}

func (m *Model) BDense() *mat.Dense {
	return mat.NewDense(m.NumRows, 1, toFloats(m.B))
}

func toFloats(vec []rational.Rational) []float64 {
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = v.Float64()
	}
	return out
}

func (m *Model) PrintC(w io.Writer) {
	caux := mat.Formatted(m.CDense(), mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "c = %v  (%v)\n", caux, m.Direction)
}

func (m *Model) PrintA(w io.Writer) {
	caux := mat.Formatted(m.ADense(), mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "A = %v\n", caux)
	fmt.Fprintf(w, "rel = %v\n", m.Relations)
}

func (m *Model) PrintB(w io.Writer) {
	caux := mat.Formatted(m.BDense(), mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "b = %v\n", caux)
}
