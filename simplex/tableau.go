package simplex

import (
	"fmt"

	"q.log/gomory/model"
	"q.log/gomory/rational"
)

// Mode selects how the entering column is chosen from the delta row.
type Mode int

const (
	// Max picks the largest delta (Phase 1, minimizing the artificial sum).
	Max Mode = iota
	// Min picks the smallest delta (Phase 2, maximizing the objective).
	Min
)

// Tableau is the live simplex state. It owns all of its slices; snapshots
// copy them and never alias.
//
// Invariants: len(Basis) == len(A) == len(B), every row of A has len(C)
// entries, and Delta[j] = Σ_i Basis[i].Coef·A[i][j] − C[j].Coef whenever
// ComputeDelta has run since the last change.
type Tableau struct {
	C     []model.Variable
	A     [][]rational.Rational
	B     []rational.Rational
	Basis []model.Variable
	Delta []rational.Rational

	nextID int
	count  map[model.Kind]int
}

// NewTableau starts a tableau with one Regular column per entry of c and one
// row per entry of b. The basis is filled in by the caller as columns are
// added.
func NewTableau(c []rational.Rational, a [][]rational.Rational, b []rational.Rational) *Tableau {
	t := &Tableau{
		A:     make([][]rational.Rational, len(a)),
		B:     append([]rational.Rational(nil), b...),
		Basis: make([]model.Variable, len(a)),
		count: make(map[model.Kind]int),
	}
	for _, coef := range c {
		t.C = append(t.C, t.newVariable(model.Regular, coef))
	}
	for i, row := range a {
		t.A[i] = append([]rational.Rational(nil), row...)
	}
	t.Delta = make([]rational.Rational, len(t.C))
	return t
}

func (t *Tableau) newVariable(kind model.Kind, coef rational.Rational) model.Variable {
	t.nextID++
	t.count[kind]++
	return model.NewVariable(t.nextID, kind, t.count[kind], coef)
}

// AddColumn appends a new variable whose column is col (one entry per row).
func (t *Tableau) AddColumn(kind model.Kind, coef rational.Rational, col []rational.Rational) (model.Variable, error) {
	if len(col) != len(t.A) {
		return model.Variable{}, fmt.Errorf("%w: column has %d entries for %d rows", model.ErrInvalidProblem, len(col), len(t.A))
	}
	v := t.newVariable(kind, coef)
	t.C = append(t.C, v)
	t.Delta = append(t.Delta, rational.Zero)
	for i := range t.A {
		t.A[i] = append(t.A[i], col[i])
	}
	return v, nil
}

func (t *Tableau) NumRows() int { return len(t.A) }

func (t *Tableau) NumCols() int { return len(t.C) }

// ComputeDelta recomputes the reduced-cost row from scratch.
func (t *Tableau) ComputeDelta() []rational.Rational {
	delta := make([]rational.Rational, len(t.C))
	for j, v := range t.C {
		sum := rational.Zero
		for i, bv := range t.Basis {
			sum = sum.Add(bv.Coef.Mul(t.A[i][j]))
		}
		delta[j] = sum.Sub(v.Coef)
	}
	t.Delta = delta
	return delta
}

// EnteringColumn returns the column with the extreme delta for mode, the
// first one on ties, or -1 for an empty tableau.
func (t *Tableau) EnteringColumn(mode Mode) int {
	delta := t.ComputeDelta()
	best := -1
	for j, d := range delta {
		if best == -1 {
			best = j
			continue
		}
		c := d.Cmp(delta[best])
		if (mode == Max && c > 0) || (mode == Min && c < 0) {
			best = j
		}
	}
	return best
}

// LeavingRow runs the ratio test on col. Rows with a non-positive entry are
// skipped; the first row with the least ratio wins.
func (t *Tableau) LeavingRow(col int) (int, error) {
	best := -1
	var bestRatio rational.Rational
	for i, row := range t.A {
		if row[col].Sign() <= 0 {
			continue
		}
		ratio := t.B[i].MustDiv(row[col])
		if best == -1 || ratio.Less(bestRatio) {
			best, bestRatio = i, ratio
		}
	}
	if best == -1 {
		return -1, fmt.Errorf("%w: column %s has no positive entry", ErrUnbounded, t.C[col].Name)
	}
	return best, nil
}

// Pivot performs Gauss-Jordan elimination on A[row][col] and moves C[col]
// into the basis at row.
func (t *Tableau) Pivot(row, col int) error {
	if row < 0 || row >= len(t.A) || col < 0 || col >= len(t.C) {
		return fmt.Errorf("%w: pivot (%d, %d) outside %dx%d tableau", ErrNoPivot, row, col, len(t.A), len(t.C))
	}
	entering, leaving := t.C[col], t.Basis[row]
	if entering.ID == leaving.ID {
		return fmt.Errorf("%w: %s would replace itself in row %d", ErrNoPivot, entering.Name, row+1)
	}
	p := t.A[row][col]
	if p.IsZero() {
		return fmt.Errorf("%w: zero pivot element at (%d, %d)", ErrNoPivot, row, col)
	}

	pivotRow := make([]rational.Rational, len(t.C))
	for j, v := range t.A[row] {
		pivotRow[j] = v.MustDiv(p)
	}
	pivotB := t.B[row].MustDiv(p)

	for i := range t.A {
		if i == row {
			continue
		}
		f := t.A[i][col]
		if f.IsZero() {
			continue
		}
		for j := range t.A[i] {
			t.A[i][j] = t.A[i][j].Sub(f.Mul(pivotRow[j]))
		}
		t.B[i] = t.B[i].Sub(f.Mul(pivotB))
	}
	t.A[row] = pivotRow
	t.B[row] = pivotB
	t.Basis[row] = entering
	return nil
}

// ReverseLeavingRow returns the row with the most negative right-hand side.
// ok is false when every B is non-negative.
func (t *Tableau) ReverseLeavingRow() (row int, ok bool) {
	row = -1
	for i, b := range t.B {
		if b.Sign() >= 0 {
			continue
		}
		if row == -1 || b.Less(t.B[row]) {
			row = i
		}
	}
	return row, row != -1
}

// ReverseEnteringColumn picks, among the negative entries of row, the column
// minimizing |Delta[j] / A[row][j]|. Entries equal to 0 or 1 are never
// candidates. A row with no candidate cannot become feasible.
func (t *Tableau) ReverseEnteringColumn(row int) (int, error) {
	delta := t.ComputeDelta()
	best := -1
	var bestRatio rational.Rational
	for j, a := range t.A[row] {
		if a.Sign() >= 0 {
			continue
		}
		ratio := delta[j].MustDiv(a).Abs()
		if best == -1 || ratio.Less(bestRatio) {
			best, bestRatio = j, ratio
		}
	}
	if best == -1 {
		return -1, fmt.Errorf("%w: row %d (%s = %v) has no negative entry", ErrInfeasible, row+1, t.Basis[row].Name, t.B[row])
	}
	return best, nil
}

// AddCut appends the Gomory cut generated by basis row src:
//
//	Σ_j −frac(A[src][j])·x_j + s = −frac(B[src])
//
// with s a new slack that enters the basis on the new row.
func (t *Tableau) AddCut(src int) (model.Variable, error) {
	if src < 0 || src >= len(t.A) {
		return model.Variable{}, fmt.Errorf("%w: cut source row %d out of range", ErrNoPivot, src)
	}
	cut := make([]rational.Rational, len(t.C)+1)
	for j, a := range t.A[src] {
		cut[j] = a.FracPart().Neg()
	}
	rhs := t.B[src].FracPart().Neg()

	slack := t.newVariable(model.Slack, rational.Zero)
	for i := range t.A {
		t.A[i] = append(t.A[i], rational.Zero)
	}
	cut[len(t.C)] = rational.One

	t.C = append(t.C, slack)
	t.A = append(t.A, cut)
	t.B = append(t.B, rhs)
	t.Basis = append(t.Basis, slack)
	t.Delta = append(t.Delta, rational.Zero)
	return slack, nil
}

// Relink replaces every column and basis entry whose ID appears in costRow
// with that entry, so both carry the same cost coefficient.
func (t *Tableau) Relink(costRow []model.Variable) {
	byID := make(map[int]model.Variable, len(costRow))
	for _, v := range costRow {
		byID[v.ID] = v
	}
	for j, v := range t.C {
		if w, ok := byID[v.ID]; ok {
			t.C[j] = w
		}
	}
	for i, v := range t.Basis {
		if w, ok := byID[v.ID]; ok {
			t.Basis[i] = w
		}
	}
}

// DropArtificials removes every Artificial column. It must only be called
// once no artificial is basic.
func (t *Tableau) DropArtificials() {
	keep := make([]int, 0, len(t.C))
	for j, v := range t.C {
		if v.Kind != model.Artificial {
			keep = append(keep, j)
		}
	}
	if len(keep) == len(t.C) {
		return
	}

	c := make([]model.Variable, len(keep))
	delta := make([]rational.Rational, len(keep))
	for k, j := range keep {
		c[k] = t.C[j]
		delta[k] = t.Delta[j]
	}
	for i, row := range t.A {
		newRow := make([]rational.Rational, len(keep))
		for k, j := range keep {
			newRow[k] = row[j]
		}
		t.A[i] = newRow
	}
	t.C, t.Delta = c, delta
}

// RemoveRow deletes constraint row i together with its basis entry.
func (t *Tableau) RemoveRow(i int) {
	t.A = append(t.A[:i], t.A[i+1:]...)
	t.B = append(t.B[:i], t.B[i+1:]...)
	t.Basis = append(t.Basis[:i], t.Basis[i+1:]...)
}

// ArtificialRows lists the rows whose basic variable is artificial.
func (t *Tableau) ArtificialRows() []int {
	var rows []int
	for i, v := range t.Basis {
		if v.Kind == model.Artificial {
			rows = append(rows, i)
		}
	}
	return rows
}

// Objective is Σ Basis[i].Coef·B[i] under the current cost row.
func (t *Tableau) Objective() rational.Rational {
	z := rational.Zero
	for i, v := range t.Basis {
		z = z.Add(v.Coef.Mul(t.B[i]))
	}
	return z
}

// IsOptimal reports whether every delta is non-negative.
func (t *Tableau) IsOptimal() bool {
	for _, d := range t.ComputeDelta() {
		if d.Sign() < 0 {
			return false
		}
	}
	return true
}

// FractionalRow returns the first row holding a Regular variable with a
// non-integer value, or -1.
func (t *Tableau) FractionalRow() int {
	for i, v := range t.Basis {
		if v.Kind == model.Regular && !t.B[i].IsInteger() {
			return i
		}
	}
	return -1
}

// Validate checks the structural invariants.
func (t *Tableau) Validate() error {
	if len(t.Basis) != len(t.A) || len(t.B) != len(t.A) {
		return fmt.Errorf("simplex: basis %d, rows %d, rhs %d", len(t.Basis), len(t.A), len(t.B))
	}
	cols := make(map[int]int, len(t.C))
	for _, v := range t.C {
		cols[v.ID]++
	}
	for i, row := range t.A {
		if len(row) != len(t.C) {
			return fmt.Errorf("simplex: row %d has %d entries, want %d", i+1, len(row), len(t.C))
		}
	}
	seen := make(map[int]bool, len(t.Basis))
	for i, v := range t.Basis {
		if cols[v.ID] != 1 {
			return fmt.Errorf("simplex: basis %s (row %d) appears %d times in the cost row", v.Name, i+1, cols[v.ID])
		}
		if seen[v.ID] {
			return fmt.Errorf("simplex: %s is basic twice", v.Name)
		}
		seen[v.ID] = true
	}
	return nil
}
