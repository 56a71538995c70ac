package instance

import (
	"math"
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"
	"q.log/gomory/model"
)

// Reader reads a mps file to construct a model
type Reader struct {
	filename string
}

func NewReader(filename string) *Reader {
	return &Reader{
		filename: filename,
	}
}

// row is one constraint as read from GLPK, before exact conversion.
type row struct {
	coefs []float64
	rel   model.Relation
	rhs   float64
}

// ConstructModelFromFile returns the problem stored in the file. Finite
// column bounds other than x >= 0 become extra constraint rows; a problem
// with any integer column is read as a pure integer program.
func (r *Reader) ConstructModelFromFile() (*model.Model, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(glpk.MPS_FILE, nil, r.filename); err != nil {
		return nil, errors.Wrapf(err, "instance: read %s", r.filename)
	}

	numCols := lp.NumCols()
	if numCols == 0 || lp.NumRows() == 0 {
		return nil, errors.Wrapf(model.ErrInvalidProblem, "instance: %s has no rows or columns", r.filename)
	}

	//populate obj function
	cVec := make([]float64, numCols)
	integer := false
	for c := 1; c <= numCols; c++ {
		cVec[c-1] = lp.ObjCoef(c)
		if lp.ColKind(c) != glpk.CV {
			integer = true
		}
	}

	//populate constraints
	var rows []row
	for i := 1; i <= lp.NumRows(); i++ {
		rowVec := make([]float64, numCols)
		idxs, vals := lp.MatRow(i)
		for k, v := range idxs {
			if v == 0 {
				continue
			}
			rowVec[v-1] = vals[k]
		}
		lb, ub := lp.RowLB(i), lp.RowUB(i)
		rows = append(rows, boundRows(rowVec, lb, ub)...)
	}

	//column bounds other than the implicit x >= 0
	for c := 1; c <= numCols; c++ {
		lb, ub := lp.ColLB(c), lp.ColUB(c)
		if lb == 0 || lb == -math.MaxFloat64 {
			lb = -math.MaxFloat64
		}
		rowVec := make([]float64, numCols)
		rowVec[c-1] = 1
		rows = append(rows, boundRows(rowVec, lb, ub)...)
	}

	dir := model.Minimize
	if lp.ObjDir() == glpk.MAX {
		dir = model.Maximize
	}
	m, err := buildModel(cVec, rows, dir, integer)
	if err != nil {
		return nil, errors.Wrapf(err, "instance: %s", r.filename)
	}
	return m, nil
}

// boundRows turns the range lb <= a·x <= ub into constraint rows; GLPK uses
// ±math.MaxFloat64 for a missing bound.
func boundRows(coefs []float64, lb, ub float64) []row {
	free := func(v float64) bool { return v == -math.MaxFloat64 || v == math.MaxFloat64 }
	switch {
	case free(lb) && free(ub):
		return nil
	case free(lb):
		return []row{{coefs, model.LessEq, ub}}
	case free(ub):
		return []row{{coefs, model.GreaterEq, lb}}
	case lb == ub:
		return []row{{coefs, model.Equal, lb}}
	}
	return []row{{coefs, model.GreaterEq, lb}, {coefs, model.LessEq, ub}}
}

func buildModel(c []float64, rows []row, dir model.Direction, integer bool) (*model.Model, error) {
	a := make([][]float64, len(rows))
	b := make([]float64, len(rows))
	rels := make([]model.Relation, len(rows))
	for i, rw := range rows {
		a[i], rels[i], b[i] = rw.coefs, rw.rel, rw.rhs
	}
	return model.FromFloats(c, a, b, rels, dir, integer)
}
