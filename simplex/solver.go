// Package simplex solves linear programs exactly with a three phase tableau
// method: artificial elimination, optimization, and Gomory cuts when an
// integral solution is required. Every intermediate tableau is recorded.
package simplex

import (
	"fmt"
	"log/slog"
	"strings"

	"q.log/gomory/model"
	"q.log/gomory/rational"
)

// Result is the outcome of Solve. History is populated on failure too.
type Result struct {
	Status    Status
	Objective rational.Rational
	Values    map[string]rational.Rational
	History   History
}

// Solver owns one tableau for one problem. It is not safe for concurrent
// use; independent problems need independent solvers.
type Solver struct {
	problem   *model.Model
	canonical *model.Model
	tableau   *Tableau

	// objective is the true cost row of every initial column.
	objective []model.Variable

	history History
	logger  *slog.Logger
	maxIter int
	iter    int
	step    int
	solved  bool
}

// New validates m, canonicalizes it and builds the initial tableau, which is
// recorded as the first history entry.
func New(m *model.Model, opts ...Option) (*Solver, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil model", model.ErrInvalidProblem)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	s := &Solver{
		problem: m,
		logger:  discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.canonical = m.Canonical()
	t, err := buildTableau(s.canonical)
	if err != nil {
		return nil, err
	}
	s.tableau = t
	s.objective = append([]model.Variable(nil), t.C...)

	s.note("initial tableau: %d constraints, %d columns", t.NumRows(), t.NumCols())
	s.record(Initial, -1, -1)
	return s, nil
}

// buildTableau adds a slack for every "<=" row, a negative slack plus an
// artificial for every ">=" row, and an artificial for every "=" row. The
// added identity column enters the basis.
func buildTableau(m *model.Model) (*Tableau, error) {
	t := NewTableau(m.C, m.A, m.B)
	for r, rel := range m.Relations {
		var (
			basic model.Variable
			err   error
		)
		switch rel {
		case model.LessEq:
			basic, err = t.AddColumn(model.Slack, rational.Zero, unitColumn(m.NumRows, r, rational.One))
		case model.GreaterEq:
			if _, err = t.AddColumn(model.Slack, rational.Zero, unitColumn(m.NumRows, r, rational.New(-1))); err != nil {
				return nil, err
			}
			basic, err = t.AddColumn(model.Artificial, rational.One, unitColumn(m.NumRows, r, rational.One))
		case model.Equal:
			basic, err = t.AddColumn(model.Artificial, rational.One, unitColumn(m.NumRows, r, rational.One))
		default:
			err = fmt.Errorf("%w: row %d: unknown relation %q", model.ErrInvalidProblem, r+1, rel)
		}
		if err != nil {
			return nil, err
		}
		t.Basis[r] = basic
	}
	return t, nil
}

func unitColumn(n, row int, v rational.Rational) []rational.Rational {
	col := make([]rational.Rational, n)
	col[row] = v
	return col
}

// Tableau exposes the live tableau. Callers must not modify it.
func (s *Solver) Tableau() *Tableau { return s.tableau }

// Problem returns the model as given to New.
func (s *Solver) Problem() *model.Model { return s.problem }

// Canonical returns the always-maximize form actually solved.
func (s *Solver) Canonical() *model.Model { return s.canonical }

// Solve runs the phases to completion. On failure the returned Result still
// carries the history and the terminal status, and the error wraps one of
// ErrInfeasible, ErrUnbounded, ErrNoPivot or ErrIterationLimit.
func (s *Solver) Solve() (*Result, error) {
	if s.solved {
		return nil, ErrSolved
	}
	s.solved = true

	if err := s.solve(); err != nil {
		status := statusOf(err)
		s.note("%v: %v", status, err)
		s.logger.Info("solve failed", "status", status, "err", err, "pivots", s.iter)
		return &Result{Status: status, History: s.history}, err
	}

	status := Optimal
	if s.canonical.Integer {
		status = IntegerOptimal
	}
	final := s.record(Final, -1, -1)
	res := &Result{
		Status:    status,
		Objective: final.Objective,
		Values:    final.Values(),
		History:   s.history,
	}
	s.note("%v: %s", status, s.describe(res))
	res.History = s.history

	s.logger.Info("solve finished", "status", status, "objective", res.Objective, "pivots", s.iter)
	return res, nil
}

func (s *Solver) solve() error {
	if len(s.tableau.ArtificialRows()) > 0 {
		if err := s.phaseOne(); err != nil {
			return err
		}
	}
	if err := s.phaseTwo(); err != nil {
		return err
	}
	if s.canonical.Integer {
		return s.phaseThree()
	}
	return nil
}

// phaseOne replaces the cost row with one scoring 1 per artificial variable
// and pivots until no artificial is basic.
func (s *Solver) phaseOne() error {
	t := s.tableau
	cost := make([]model.Variable, len(t.C))
	for j, v := range t.C {
		if v.Kind == model.Artificial {
			cost[j] = v.WithCoef(rational.One)
		} else {
			cost[j] = v.WithCoef(rational.Zero)
		}
	}
	t.Relink(cost)

	s.logger.Info("phase 1", "artificials", len(t.ArtificialRows()))
	s.note("phase 1: drive %d artificial variables out of the basis", len(t.ArtificialRows()))
	for len(t.ArtificialRows()) > 0 {
		if err := s.tick(); err != nil {
			return err
		}
		col := t.EnteringColumn(Max)
		if t.Delta[col].Sign() <= 0 {
			return s.driveOutArtificials()
		}
		row, err := t.LeavingRow(col)
		if err != nil {
			return fmt.Errorf("%w: phase 1 has no leaving row for %s", ErrInfeasible, t.C[col].Name)
		}
		if err := s.pivot(PhaseOne, row, col); err != nil {
			return err
		}
	}
	return nil
}

// driveOutArtificials handles a Phase 1 optimum that still has artificial
// variables in the basis. They must all be zero for the problem to be
// feasible; each is then swapped for any non-artificial column with a
// non-zero entry in its row, or its row is removed as redundant.
func (s *Solver) driveOutArtificials() error {
	t := s.tableau
	if w := t.Objective(); w.Sign() > 0 {
		return fmt.Errorf("%w: artificial variables sum to %v at the phase 1 optimum", ErrInfeasible, w)
	}
	for rows := t.ArtificialRows(); len(rows) > 0; rows = t.ArtificialRows() {
		i := rows[0]
		col := -1
		for j, v := range t.C {
			if v.Kind != model.Artificial && !t.A[i][j].IsZero() {
				col = j
				break
			}
		}
		if col == -1 {
			s.note("phase 1: row %d is redundant, removing %s", i+1, t.Basis[i].Name)
			t.RemoveRow(i)
			s.record(PhaseOne, -1, -1)
			continue
		}
		if err := s.pivot(PhaseOne, i, col); err != nil {
			return err
		}
	}
	return nil
}

// phaseTwo restores the true cost row, drops the artificial columns and
// optimizes.
func (s *Solver) phaseTwo() error {
	t := s.tableau
	t.Relink(s.objective)
	t.DropArtificials()

	s.logger.Info("phase 2", "rows", t.NumRows(), "columns", t.NumCols())
	s.note("phase 2: optimize the objective")
	s.record(PhaseTwo, -1, -1)
	return s.optimize(PhaseTwo)
}

// optimize pivots on the most negative delta until none is negative.
func (s *Solver) optimize(phase Phase) error {
	t := s.tableau
	for !t.IsOptimal() {
		if err := s.tick(); err != nil {
			return err
		}
		col := t.EnteringColumn(Min)
		row, err := t.LeavingRow(col)
		if err != nil {
			return err
		}
		if err := s.pivot(phase, row, col); err != nil {
			return err
		}
	}
	return nil
}

// phaseThree adds Gomory cuts until every Regular basic value is integral.
func (s *Solver) phaseThree() error {
	t := s.tableau
	for {
		row := t.FractionalRow()
		if row == -1 {
			return nil
		}
		if err := s.tick(); err != nil {
			return err
		}
		src, value := t.Basis[row], t.B[row]
		slack, err := t.AddCut(row)
		if err != nil {
			return err
		}
		s.logger.Info("phase 3", "cut", slack.Name, "source", src.Name, "value", value)
		s.note("phase 3: %s = %v is not integral, add a cut on row %d with slack %s", src.Name, value, row+1, slack.Name)
		s.record(PhaseThree, -1, -1)

		if err := s.restoreFeasibility(); err != nil {
			return err
		}
		if err := s.optimize(PhaseThree); err != nil {
			return err
		}
	}
}

// restoreFeasibility runs reverse pivots while some right-hand side is
// negative.
func (s *Solver) restoreFeasibility() error {
	t := s.tableau
	for {
		row, ok := t.ReverseLeavingRow()
		if !ok {
			return nil
		}
		if err := s.tick(); err != nil {
			return err
		}
		col, err := t.ReverseEnteringColumn(row)
		if err != nil {
			return err
		}
		if err := s.pivot(PhaseThree, row, col); err != nil {
			return err
		}
	}
}

func (s *Solver) pivot(phase Phase, row, col int) error {
	t := s.tableau
	leaving, entering := t.Basis[row], t.C[col]
	if err := t.Pivot(row, col); err != nil {
		return err
	}
	s.logger.Debug("pivot", "phase", phase, "row", row, "column", col,
		"leaving", leaving.Name, "entering", entering.Name)
	s.note("%v: %s leaves the basis, %s enters (row %d, column %d)", phase, leaving.Name, entering.Name, row+1, col+1)
	s.record(phase, row, col)
	return nil
}

func (s *Solver) tick() error {
	s.iter++
	if s.maxIter > 0 && s.iter > s.maxIter {
		return fmt.Errorf("%w: %d", ErrIterationLimit, s.maxIter)
	}
	return nil
}

// objectiveValue is the artificial sum in Phase 1 and the objective in the
// caller's direction otherwise.
func (s *Solver) objectiveValue(phase Phase) rational.Rational {
	t := s.tableau
	if phase == PhaseOne {
		return t.Objective()
	}
	z := rational.Zero
	for i, v := range t.Basis {
		if v.Kind != model.Artificial {
			z = z.Add(v.Coef.Mul(t.B[i]))
		}
	}
	if s.canonical.Direction == model.Minimize {
		z = z.Neg()
	}
	return z
}

func (s *Solver) record(phase Phase, row, col int) *Snapshot {
	snap := s.tableau.snapshot(phase, s.step, row, col, s.objectiveValue(phase))
	s.step++
	s.history = append(s.history, Entry{Snapshot: snap})
	return snap
}

func (s *Solver) note(format string, args ...any) {
	s.history = append(s.history, Entry{Note: fmt.Sprintf(format, args...)})
}

func (s *Solver) describe(res *Result) string {
	var b strings.Builder
	for _, v := range s.tableau.C {
		if v.Kind != model.Regular {
			continue
		}
		fmt.Fprintf(&b, "%s = %v, ", v.Name, res.Values[v.Name])
	}
	fmt.Fprintf(&b, "Z = %v", res.Objective)
	return b.String()
}
