package simplex

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
	"q.log/gomory/model"
	"q.log/gomory/rational"
)

// Snapshot is an immutable copy of one tableau state. PivotRow and
// PivotColumn are -1 when the step did not pivot.
type Snapshot struct {
	Phase Phase
	Step  int

	Columns []model.Variable
	Basis   []model.Variable
	A       [][]rational.Rational
	B       []rational.Rational
	Delta   []rational.Rational

	PivotRow    int
	PivotColumn int

	// Objective is reported in the caller's direction, except in Phase 1
	// where it is the sum of the artificial variables.
	Objective rational.Rational
}

func (t *Tableau) snapshot(phase Phase, step, row, col int, objective rational.Rational) *Snapshot {
	s := &Snapshot{
		Phase:       phase,
		Step:        step,
		Columns:     append([]model.Variable(nil), t.C...),
		Basis:       append([]model.Variable(nil), t.Basis...),
		A:           make([][]rational.Rational, len(t.A)),
		B:           append([]rational.Rational(nil), t.B...),
		Delta:       append([]rational.Rational(nil), t.ComputeDelta()...),
		PivotRow:    row,
		PivotColumn: col,
		Objective:   objective,
	}
	for i, r := range t.A {
		s.A[i] = append([]rational.Rational(nil), r...)
	}
	return s
}

// Values maps every Regular variable to its value: B[i] when basic in row i,
// 0 otherwise.
func (s *Snapshot) Values() map[string]rational.Rational {
	values := make(map[string]rational.Rational)
	for _, v := range s.Columns {
		if v.Kind == model.Regular {
			values[v.Name] = rational.Zero
		}
	}
	for i, v := range s.Basis {
		if v.Kind == model.Regular {
			values[v.Name] = s.B[i]
		}
	}
	return values
}

// Dense returns [A | b] as decimal approximations.
func (s *Snapshot) Dense() *mat.Dense {
	cols := len(s.Columns) + 1
	d := mat.NewDense(len(s.A), cols, nil)
	for i, row := range s.A {
		for j, v := range row {
			d.Set(i, j, v.Float64())
		}
		d.Set(i, cols-1, s.B[i].Float64())
	}
	return d
}

// Print writes the snapshot for a terminal. Values are approximations.
func (s *Snapshot) Print(w io.Writer) {
	fmt.Fprintf(w, "-------------------- %v, step %d ----------------------\n", s.Phase, s.Step)
	fmt.Fprintf(w, "c     = %v\n", s.Columns)
	fmt.Fprintf(w, "basis = %v\n", s.Basis)

	ab := mat.Formatted(s.Dense(), mat.Prefix("        "), mat.Squeeze())
	fmt.Fprintf(w, "[A|b] = %v\n", ab)
	fmt.Fprintf(w, "delta = %v\n", s.Delta)
	if s.PivotRow >= 0 && s.PivotColumn >= 0 {
		fmt.Fprintf(w, "pivot = (%d, %d) %s enters\n", s.PivotRow, s.PivotColumn, s.Columns[s.PivotColumn].Name)
	}
	fmt.Fprintf(w, "Z = %v\n", s.Objective)
}

// Entry is one history item: either a narrative Note or a Snapshot.
type Entry struct {
	Note     string
	Snapshot *Snapshot
}

func (e Entry) String() string {
	if e.Snapshot != nil {
		return fmt.Sprintf("%v step %d", e.Snapshot.Phase, e.Snapshot.Step)
	}
	return e.Note
}

// History is the ordered trace of a solve.
type History []Entry

func (h History) Snapshots() []*Snapshot {
	var out []*Snapshot
	for _, e := range h {
		if e.Snapshot != nil {
			out = append(out, e.Snapshot)
		}
	}
	return out
}

func (h History) Notes() []string {
	var out []string
	for _, e := range h {
		if e.Snapshot == nil {
			out = append(out, e.Note)
		}
	}
	return out
}

// Last returns the most recent snapshot, or nil.
func (h History) Last() *Snapshot {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Snapshot != nil {
			return h[i].Snapshot
		}
	}
	return nil
}
