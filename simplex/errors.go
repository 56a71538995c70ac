package simplex

import "errors"

var (
	ErrInfeasible     = errors.New("simplex: problem is infeasible")
	ErrUnbounded      = errors.New("simplex: problem is unbounded")
	ErrNoPivot        = errors.New("simplex: no pivot found")
	ErrIterationLimit = errors.New("simplex: iteration limit reached")
	ErrSolved         = errors.New("simplex: solver already ran")
)

// Status is the terminal state of a solve.
type Status int

const (
	Unsolved Status = iota
	Optimal
	IntegerOptimal
	Infeasible
	Unbounded
	NoPivotFound
	IterationLimit
)

var statusNames = [...]string{
	Unsolved:       "unsolved",
	Optimal:        "optimal",
	IntegerOptimal: "integer optimal",
	Infeasible:     "infeasible",
	Unbounded:      "unbounded",
	NoPivotFound:   "no pivot found",
	IterationLimit: "iteration limit",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// statusOf maps a terminal error to its status.
func statusOf(err error) Status {
	switch {
	case errors.Is(err, ErrInfeasible):
		return Infeasible
	case errors.Is(err, ErrUnbounded):
		return Unbounded
	case errors.Is(err, ErrNoPivot):
		return NoPivotFound
	case errors.Is(err, ErrIterationLimit):
		return IterationLimit
	}
	return Unsolved
}

// Phase identifies which stage of the method produced a snapshot.
type Phase int

const (
	Initial Phase = iota
	PhaseOne
	PhaseTwo
	PhaseThree
	Final
)

func (p Phase) String() string {
	switch p {
	case Initial:
		return "initial"
	case PhaseOne:
		return "phase 1"
	case PhaseTwo:
		return "phase 2"
	case PhaseThree:
		return "phase 3"
	case Final:
		return "final"
	}
	return "unknown"
}
